package session

import (
	"fmt"

	"github.com/mattjoyce/remex/internal/transport"
)

// WorkspaceCreationError reports that the remote workspace could not be
// created. No session exists afterwards and nothing needs cleanup.
type WorkspaceCreationError struct {
	Workspace string
	Err       error
}

func (e *WorkspaceCreationError) Error() string {
	return fmt.Sprintf("create workspace %s: %v", e.Workspace, e.Err)
}

func (e *WorkspaceCreationError) Unwrap() error { return e.Err }

// Unreachable reports whether the executor could not be reached at all, as
// opposed to refusing the request.
func (e *WorkspaceCreationError) Unreachable() bool {
	return transport.IsUnavailable(e.Err)
}

// WorkspaceDeletionError reports that the remote workspace could not be
// deleted on close. The workspace may be orphaned on the remote host.
type WorkspaceDeletionError struct {
	Workspace string
	Err       error
}

func (e *WorkspaceDeletionError) Error() string {
	return fmt.Sprintf("delete workspace %s: %v", e.Workspace, e.Err)
}

func (e *WorkspaceDeletionError) Unwrap() error { return e.Err }
