package transport

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

//go:generate mockgen -destination=mocks/mock_transport.go -package=mocks github.com/mattjoyce/remex/internal/transport Transport

// Transport is the remote executor as seen by a session. Every method is a
// single blocking request/response exchange that succeeds or fails as a
// whole; implementations perform no retries.
type Transport interface {
	// CreateWorkspace creates the named workspace on the executor.
	CreateWorkspace(ctx context.Context, name string) error

	// DeleteWorkspace removes the named workspace and everything in it.
	DeleteWorkspace(ctx context.Context, name string) error

	// UploadFile writes content at remotePath, relative to the executor root.
	UploadFile(ctx context.Context, remotePath string, content []byte) error

	// DownloadFile returns the full contents of remotePath.
	DownloadFile(ctx context.Context, remotePath string) ([]byte, error)

	// RunCmd runs command with workDir as its working directory and returns
	// the exit code and decoded output. A nonzero exit code is not an error.
	RunCmd(ctx context.Context, command, workDir string) (CmdResult, error)
}

// CmdResult is the outcome of a remote command.
type CmdResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// ErrRejected is returned when the executor answered but reported failure.
var ErrRejected = errors.New("remote executor reported failure")

// Code extracts the gRPC status code from anywhere in err's chain.
func Code(err error) codes.Code {
	if err == nil {
		return codes.OK
	}
	var se interface{ GRPCStatus() *status.Status }
	if errors.As(err, &se) {
		return se.GRPCStatus().Code()
	}
	return codes.Unknown
}

// IsUnavailable reports whether err means the executor could not be reached
// in time, as opposed to the executor rejecting the request.
func IsUnavailable(err error) bool {
	switch Code(err) {
	case codes.Unavailable, codes.DeadlineExceeded:
		return true
	}
	return false
}
