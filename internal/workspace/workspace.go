package workspace

// Workspace describes one isolated remote working directory.
//
// The client only ever holds the name; the directory itself lives under a
// server-defined root on the remote executor and is also the working
// directory of every command run in the session.
type Workspace struct {
	Name       string
	Base       string
	KeepOnExit bool
}

// New validates base, draws a unique name for it and returns the workspace.
func New(base string, keepOnExit bool) (Workspace, error) {
	return defaultNamer.Workspace(base, keepOnExit)
}
