package staging

import (
	"errors"
	"fmt"
)

// ErrUnknownIdentifier is returned when looking up an identifier that was
// never registered.
var ErrUnknownIdentifier = errors.New("unknown transfer identifier")

// ErrInvalidSessionState is returned when the executor is used outside an
// open session.
var ErrInvalidSessionState = errors.New("session is not open")

// ErrEmptyPath is returned when registering a transfer without a local path.
var ErrEmptyPath = errors.New("local path is empty")

// TransferError reports a failed upload or download. It aborts the rest of
// its phase and the enclosing Run.
type TransferError struct {
	Direction  Direction
	Identifier string
	LocalPath  string
	RemotePath string
	Err        error
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("%s %q (local %s, remote %s): %v", e.Direction, e.Identifier, e.LocalPath, e.RemotePath, e.Err)
}

func (e *TransferError) Unwrap() error { return e.Err }

// ExecutionError reports that the command exchange itself failed. A remote
// process exiting nonzero is not an ExecutionError.
type ExecutionError struct {
	Command   string
	Workspace string
	Err       error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("run %q in workspace %s: %v", e.Command, e.Workspace, e.Err)
}

func (e *ExecutionError) Unwrap() error { return e.Err }
