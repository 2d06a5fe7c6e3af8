// Package session owns the lifecycle of one remote workspace: it creates the
// workspace on open, hands out the staging executor bound to it and deletes
// it on close unless the caller asked to keep it.
package session

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mattjoyce/remex/internal/journal"
	"github.com/mattjoyce/remex/internal/log"
	"github.com/mattjoyce/remex/internal/staging"
	"github.com/mattjoyce/remex/internal/transport"
	"github.com/mattjoyce/remex/internal/workspace"
)

// State is the lifecycle position of a Session.
type State int

const (
	StateUnopened State = iota
	StateOpen
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateUnopened:
		return "unopened"
	case StateOpen:
		return "open"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Outcome is what happened to the remote workspace on close.
type Outcome int

const (
	OutcomeDeleted Outcome = iota + 1
	OutcomeKept
	OutcomeDeletionFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeDeleted:
		return "deleted"
	case OutcomeKept:
		return "kept"
	case OutcomeDeletionFailed:
		return "deletion_failed"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Options describes the workspace a session creates.
type Options struct {
	BaseName   string
	KeepOnExit bool
	// Address is the executor address, used for logs and the journal only.
	Address string
}

// Journal records session lifecycle events and runs.
type Journal interface {
	staging.RunJournal
	RecordSessionOpen(ctx context.Context, sess journal.Session) error
	RecordSessionClose(ctx context.Context, sess journal.Session) error
}

// Option customizes Open and Do.
type Option func(*settings)

type settings struct {
	logger  *slog.Logger
	journal Journal
	namer   *workspace.Namer
	stdout  io.Writer
	stderr  io.Writer
}

// WithLogger sets the logger. Defaults to the process logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithJournal records the session and its runs in j.
func WithJournal(j Journal) Option {
	return func(s *settings) { s.journal = j }
}

// WithNamer draws workspace names from n instead of the process-wide namer.
func WithNamer(n *workspace.Namer) Option {
	return func(s *settings) { s.namer = n }
}

// WithOutput forwards remote command output to stdout and stderr.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(s *settings) {
		s.stdout = stdout
		s.stderr = stderr
	}
}

// CloseReport summarizes a close.
type CloseReport struct {
	SessionID string
	Workspace string
	Outcome   Outcome
	// Cause is the error the session scope ended with, if any.
	Cause error
	// Err is the deletion failure, if any.
	Err error
}

// Session is one open remote workspace. The zero value is unopened.
type Session struct {
	mu        sync.Mutex
	state     State
	id        string
	ws        workspace.Workspace
	address   string
	transport transport.Transport
	executor  *staging.Executor
	logger    *slog.Logger
	journal   Journal
}

// Open creates a uniquely named remote workspace and returns the session
// owning it. On failure no workspace exists and there is nothing to close.
func Open(ctx context.Context, t transport.Transport, opts Options, o ...Option) (*Session, error) {
	cfg := settings{}
	for _, fn := range o {
		fn(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = log.Get()
	}

	var (
		ws  workspace.Workspace
		err error
	)
	if cfg.namer != nil {
		ws, err = cfg.namer.Workspace(opts.BaseName, opts.KeepOnExit)
	} else {
		ws, err = workspace.New(opts.BaseName, opts.KeepOnExit)
	}
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	base := log.WithSession(cfg.logger, id)
	logger := log.WithWorkspace(base.With("component", "session"), ws.Name)

	if err := t.CreateWorkspace(ctx, ws.Name); err != nil {
		logger.Error("Failed to create workspace", "address", opts.Address, "error", err)
		return nil, &WorkspaceCreationError{Workspace: ws.Name, Err: err}
	}
	logger.Info("Workspace created", "address", opts.Address, "keep_on_exit", ws.KeepOnExit)

	s := &Session{
		state:     StateOpen,
		id:        id,
		ws:        ws,
		address:   opts.Address,
		transport: t,
		logger:    logger,
		journal:   cfg.journal,
	}
	execOpts := staging.Options{
		Logger:    base.With("component", "staging"),
		SessionID: id,
		Stdout:    cfg.stdout,
		Stderr:    cfg.stderr,
	}
	if cfg.journal != nil {
		execOpts.Journal = cfg.journal
	}
	s.executor = staging.New(ws.Name, t, execOpts)

	if s.journal != nil {
		rec := journal.Session{
			ID:         id,
			Workspace:  ws.Name,
			BaseName:   ws.Base,
			Address:    opts.Address,
			KeepOnExit: ws.KeepOnExit,
			OpenedAt:   time.Now(),
		}
		if err := s.journal.RecordSessionOpen(ctx, rec); err != nil {
			logger.Warn("Failed to record session open in journal", "error", err)
		}
	}
	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// Workspace returns the remote workspace of the session.
func (s *Session) Workspace() workspace.Workspace {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ws
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Executor returns the staging executor bound to the workspace.
func (s *Session) Executor() (*staging.Executor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateOpen {
		return nil, staging.ErrInvalidSessionState
	}
	return s.executor, nil
}

// Close ends the session. cause is the error the caller's work ended with,
// or nil; it is logged and reported but does not change what happens to the
// workspace. Unless KeepOnExit is set the workspace is deleted with exactly
// one call. The session is closed afterwards even if deletion failed.
func (s *Session) Close(ctx context.Context, cause error) (CloseReport, error) {
	s.mu.Lock()
	if s.state != StateOpen {
		s.mu.Unlock()
		return CloseReport{}, staging.ErrInvalidSessionState
	}
	s.state = StateClosed
	s.mu.Unlock()

	// id, ws, transport, executor, logger and journal never change after Open.
	s.executor.Close()

	report := CloseReport{SessionID: s.id, Workspace: s.ws.Name, Cause: cause}
	if cause != nil {
		s.logger.Error("Session ended with error", "error", cause)
	}

	if s.ws.KeepOnExit {
		report.Outcome = OutcomeKept
		s.logger.Info("Keeping workspace")
	} else if err := s.transport.DeleteWorkspace(ctx, s.ws.Name); err != nil {
		report.Outcome = OutcomeDeletionFailed
		report.Err = &WorkspaceDeletionError{Workspace: s.ws.Name, Err: err}
		s.logger.Error("Failed to delete workspace", "error", err)
	} else {
		report.Outcome = OutcomeDeleted
		s.logger.Info("Workspace deleted")
	}

	s.recordClose(ctx, report)
	return report, report.Err
}

func (s *Session) recordClose(ctx context.Context, report CloseReport) {
	if s.journal == nil {
		return
	}
	closedAt := time.Now()
	rec := journal.Session{
		ID:       s.id,
		ClosedAt: &closedAt,
		Outcome:  report.Outcome.String(),
	}
	if report.Cause != nil {
		rec.Cause = report.Cause.Error()
	}
	if report.Err != nil {
		rec.CloseError = report.Err.Error()
	}
	if err := s.journal.RecordSessionClose(ctx, rec); err != nil {
		s.logger.Warn("Failed to record session close in journal", "error", err)
	}
}

// Do opens a session, runs fn with its executor and closes the session on
// every exit path, panics included. If fn fails its error is returned and a
// deletion failure is only logged; otherwise the deletion failure, if any, is
// returned.
func Do(ctx context.Context, t transport.Transport, opts Options, fn func(ctx context.Context, e *staging.Executor) error, o ...Option) (report CloseReport, err error) {
	s, err := Open(ctx, t, opts, o...)
	if err != nil {
		return CloseReport{}, err
	}

	closeCtx := context.WithoutCancel(ctx)
	defer func() {
		if r := recover(); r != nil {
			_, _ = s.Close(closeCtx, fmt.Errorf("panic: %v", r))
			panic(r)
		}
		var closeErr error
		report, closeErr = s.Close(closeCtx, err)
		if err == nil {
			err = closeErr
		}
	}()

	e, err := s.Executor()
	if err != nil {
		return CloseReport{}, err
	}
	return CloseReport{}, fn(ctx, e)
}
