package staging

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/zeebo/blake3"

	"github.com/mattjoyce/remex/internal/journal"
	"github.com/mattjoyce/remex/internal/log"
	"github.com/mattjoyce/remex/internal/transport"
)

// Direction is the way a staged file moves.
type Direction int

const (
	Upload Direction = iota + 1
	Download
)

func (d Direction) String() string {
	switch d {
	case Upload:
		return "upload"
	case Download:
		return "download"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// Intent is a registered, not yet executed file transfer. Intents are never
// mutated; re-registering an identifier replaces the intent.
type Intent struct {
	Identifier string
	Direction  Direction
	LocalPath  string
	RemotePath string
}

// RunJournal records finished runs.
type RunJournal interface {
	RecordRun(ctx context.Context, run journal.Run) error
}

// Options configures an Executor.
type Options struct {
	Logger *slog.Logger
	// Journal, when set, receives a record of every Run.
	Journal   RunJournal
	SessionID string
	// Stdout and Stderr receive the decoded output of each command.
	Stdout io.Writer
	Stderr io.Writer
}

// Executor stages transfers for one workspace and runs commands in it with
// strict upload → command → download ordering.
//
// A single mutex covers registration and Run, so concurrent callers are
// serialized; Run holds it for its whole duration.
type Executor struct {
	mu        sync.Mutex
	workspace string
	transport transport.Transport
	intents   map[string]Intent
	order     []string
	closed    bool

	logger    *slog.Logger
	journal   RunJournal
	sessionID string
	stdout    io.Writer
	stderr    io.Writer
	now       func() time.Time
}

// New returns an Executor bound to workspace.
func New(workspace string, t transport.Transport, opts Options) *Executor {
	if opts.Logger == nil {
		opts.Logger = log.WithComponent("staging")
	}
	if opts.Stdout == nil {
		opts.Stdout = io.Discard
	}
	if opts.Stderr == nil {
		opts.Stderr = io.Discard
	}
	return &Executor{
		workspace: workspace,
		transport: t,
		intents:   make(map[string]Intent),
		logger:    log.WithWorkspace(opts.Logger, workspace),
		journal:   opts.Journal,
		sessionID: opts.SessionID,
		stdout:    opts.Stdout,
		stderr:    opts.Stderr,
		now:       time.Now,
	}
}

// Workspace returns the workspace name commands run in.
func (e *Executor) Workspace() string {
	return e.workspace
}

// AddLocalFile registers localPath for upload before every Run and returns
// its remote path, relative to the workspace root. An empty identifier is
// derived from the path. No I/O happens until Run.
func (e *Executor) AddLocalFile(localPath, identifier string) (string, error) {
	remote, err := UploadPath(localPath)
	if err != nil {
		return "", err
	}
	return e.add(Upload, localPath, remote, identifier)
}

// AddRemoteFile registers localPath to be fetched after every Run and
// returns the flat remote name the command should write.
func (e *Executor) AddRemoteFile(localPath, identifier string) (string, error) {
	remote, err := DownloadPath(localPath)
	if err != nil {
		return "", err
	}
	return e.add(Download, localPath, remote, identifier)
}

func (e *Executor) add(dir Direction, localPath, remote, identifier string) (string, error) {
	if identifier == "" {
		identifier = PathIdentifier(localPath)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return "", ErrInvalidSessionState
	}

	if prev, ok := e.intents[identifier]; ok {
		// Last write wins; the identifier keeps its original position.
		e.logger.Debug("Replacing staged transfer",
			"identifier", identifier,
			"previous_direction", prev.Direction.String(),
			"previous_local_path", prev.LocalPath,
		)
	} else {
		e.order = append(e.order, identifier)
	}
	e.intents[identifier] = Intent{
		Identifier: identifier,
		Direction:  dir,
		LocalPath:  localPath,
		RemotePath: remote,
	}
	return remote, nil
}

// RemotePath returns the remote path registered under identifier.
func (e *Executor) RemotePath(identifier string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return "", ErrInvalidSessionState
	}

	in, ok := e.intents[identifier]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownIdentifier, identifier)
	}
	return in.RemotePath, nil
}

// Intents returns the registered intents in registration order.
func (e *Executor) Intents() []Intent {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]Intent, 0, len(e.order))
	for _, id := range e.order {
		out = append(out, e.intents[id])
	}
	return out
}

// Run uploads every staged local file, runs command with the workspace as
// working directory, then downloads every staged remote file. Every call
// re-executes all registered intents. It returns the remote exit code; a
// nonzero code is not an error. On error the exit code is -1.
func (e *Executor) Run(ctx context.Context, command string) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return -1, ErrInvalidSessionState
	}

	rec := journal.Run{
		ID:        uuid.NewString(),
		SessionID: e.sessionID,
		Command:   command,
		StartedAt: e.now(),
	}
	code, err := e.run(ctx, command, &rec)
	rec.FinishedAt = e.now()
	if err != nil {
		rec.Error = err.Error()
	}
	e.record(ctx, rec)
	return code, err
}

func (e *Executor) run(ctx context.Context, command string, rec *journal.Run) (int, error) {
	for _, id := range e.order {
		in := e.intents[id]
		if in.Direction != Upload {
			continue
		}
		tr, err := e.upload(ctx, in)
		if err != nil {
			return -1, err
		}
		rec.Transfers = append(rec.Transfers, tr)
	}

	e.logger.Info("Running remote command", "command", command)
	res, err := e.transport.RunCmd(ctx, command, e.workspace)
	if err != nil {
		return -1, &ExecutionError{Command: command, Workspace: e.workspace, Err: err}
	}
	code := res.ExitCode
	rec.ExitCode = &code
	e.logger.Info("Remote command finished",
		"exit_code", res.ExitCode,
		"stdout_bytes", len(res.Stdout),
		"stderr_bytes", len(res.Stderr),
	)
	if _, err := io.WriteString(e.stdout, res.Stdout); err != nil {
		e.logger.Warn("Failed to write remote stdout", "error", err)
	}
	if _, err := io.WriteString(e.stderr, res.Stderr); err != nil {
		e.logger.Warn("Failed to write remote stderr", "error", err)
	}

	for _, id := range e.order {
		in := e.intents[id]
		if in.Direction != Download {
			continue
		}
		tr, err := e.download(ctx, in)
		if err != nil {
			return -1, err
		}
		rec.Transfers = append(rec.Transfers, tr)
	}

	return res.ExitCode, nil
}

func (e *Executor) upload(ctx context.Context, in Intent) (journal.Transfer, error) {
	remote := path.Join(e.workspace, in.RemotePath)
	fail := func(err error) (journal.Transfer, error) {
		return journal.Transfer{}, &TransferError{
			Direction:  Upload,
			Identifier: in.Identifier,
			LocalPath:  in.LocalPath,
			RemotePath: remote,
			Err:        err,
		}
	}

	content, err := os.ReadFile(in.LocalPath)
	if err != nil {
		return fail(fmt.Errorf("read local file: %w", err))
	}
	if err := e.transport.UploadFile(ctx, remote, content); err != nil {
		return fail(err)
	}

	tr := transferRecord(in, remote, content)
	e.logger.Info("Uploaded file", "identifier", in.Identifier, "remote_path", remote, "bytes", tr.Bytes)
	e.logger.Debug("Upload digest", "identifier", in.Identifier, "blake3", tr.Digest)
	return tr, nil
}

func (e *Executor) download(ctx context.Context, in Intent) (journal.Transfer, error) {
	remote := path.Join(e.workspace, in.RemotePath)
	fail := func(err error) (journal.Transfer, error) {
		return journal.Transfer{}, &TransferError{
			Direction:  Download,
			Identifier: in.Identifier,
			LocalPath:  in.LocalPath,
			RemotePath: remote,
			Err:        err,
		}
	}

	content, err := e.transport.DownloadFile(ctx, remote)
	if err != nil {
		return fail(err)
	}
	if err := os.MkdirAll(filepath.Dir(in.LocalPath), 0o755); err != nil {
		return fail(fmt.Errorf("create local directory: %w", err))
	}
	if err := os.WriteFile(in.LocalPath, content, 0o644); err != nil {
		return fail(fmt.Errorf("write local file: %w", err))
	}

	tr := transferRecord(in, remote, content)
	e.logger.Info("Downloaded file", "identifier", in.Identifier, "local_path", in.LocalPath, "bytes", tr.Bytes)
	e.logger.Debug("Download digest", "identifier", in.Identifier, "blake3", tr.Digest)
	return tr, nil
}

func (e *Executor) record(ctx context.Context, rec journal.Run) {
	if e.journal == nil {
		return
	}
	if err := e.journal.RecordRun(ctx, rec); err != nil {
		e.logger.Warn("Failed to record run in journal", "run_id", rec.ID, "error", err)
	}
}

// Close seals the executor. Every later call fails with
// ErrInvalidSessionState. It waits for an in-flight Run to finish.
func (e *Executor) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
}

func transferRecord(in Intent, remote string, content []byte) journal.Transfer {
	sum := blake3.Sum256(content)
	return journal.Transfer{
		Identifier: in.Identifier,
		Direction:  in.Direction.String(),
		LocalPath:  in.LocalPath,
		RemotePath: remote,
		Bytes:      int64(len(content)),
		Digest:     hex.EncodeToString(sum[:]),
	}
}
