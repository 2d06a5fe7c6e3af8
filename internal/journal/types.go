package journal

import "time"

// Session is the journal row of one remote workspace session.
type Session struct {
	ID         string
	Workspace  string
	BaseName   string
	Address    string
	KeepOnExit bool
	OpenedAt   time.Time
	ClosedAt   *time.Time
	// Outcome is "deleted", "kept" or "deletion_failed" once closed.
	Outcome string
	// Cause is the error the session scope was unwinding with, if any.
	Cause string
	// CloseError is the workspace deletion failure, if any.
	CloseError string
}

// Run is one command execution with its transfers.
type Run struct {
	ID        string
	SessionID string
	Command   string
	// ExitCode is nil when the command exchange itself failed.
	ExitCode   *int
	StartedAt  time.Time
	FinishedAt time.Time
	Error      string
	Transfers  []Transfer
}

// Transfer is one completed file movement within a run.
type Transfer struct {
	Identifier string
	Direction  string // upload | download
	LocalPath  string
	RemotePath string
	Bytes      int64
	// Digest is the hex BLAKE3-256 of the transferred bytes.
	Digest string
}
