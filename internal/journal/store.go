package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// DefaultListLimit caps ListSessions when no limit is given.
const DefaultListLimit = 20

// ErrNotFound is returned when a session id is not in the journal.
var ErrNotFound = errors.New("session not found in journal")

// Store persists session history in SQLite.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// RecordSessionOpen inserts a freshly opened session.
func (s *Store) RecordSessionOpen(ctx context.Context, sess Session) error {
	if sess.ID == "" {
		return fmt.Errorf("session id is empty")
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO sessions(id, workspace, base_name, address, keep_on_exit, opened_at)
VALUES(?, ?, ?, ?, ?, ?);
`, sess.ID, sess.Workspace, sess.BaseName, sess.Address, sess.KeepOnExit, formatTime(sess.OpenedAt))
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// RecordSessionClose stores the close outcome of a session.
func (s *Store) RecordSessionClose(ctx context.Context, sess Session) error {
	closedAt := time.Now()
	if sess.ClosedAt != nil {
		closedAt = *sess.ClosedAt
	}
	res, err := s.db.ExecContext(ctx, `
UPDATE sessions
SET closed_at = ?, outcome = ?, cause = ?, close_error = ?
WHERE id = ?;
`, formatTime(closedAt), sess.Outcome, nullString(sess.Cause), nullString(sess.CloseError), sess.ID)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, sess.ID)
	}
	return nil
}

// RecordRun stores a run and its transfers atomically.
func (s *Store) RecordRun(ctx context.Context, run Run) error {
	if run.ID == "" {
		return fmt.Errorf("run id is empty")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var exitCode any
	if run.ExitCode != nil {
		exitCode = *run.ExitCode
	}
	_, err = tx.ExecContext(ctx, `
INSERT INTO runs(id, session_id, command, exit_code, started_at, finished_at, last_error)
VALUES(?, ?, ?, ?, ?, ?, ?);
`, run.ID, run.SessionID, run.Command, exitCode, formatTime(run.StartedAt), formatTime(run.FinishedAt), nullString(run.Error))
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for i, tr := range run.Transfers {
		_, err = tx.ExecContext(ctx, `
INSERT INTO transfers(run_id, seq, identifier, direction, local_path, remote_path, bytes, digest)
VALUES(?, ?, ?, ?, ?, ?, ?, ?);
`, run.ID, i, tr.Identifier, tr.Direction, tr.LocalPath, tr.RemotePath, tr.Bytes, nullString(tr.Digest))
		if err != nil {
			return fmt.Errorf("insert transfer %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// ListSessions returns the most recently opened sessions first.
func (s *Store) ListSessions(ctx context.Context, limit int) ([]Session, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT id, workspace, base_name, address, keep_on_exit, opened_at, closed_at, outcome, cause, close_error
FROM sessions
ORDER BY opened_at DESC, rowid DESC
LIMIT ?;
`, limit)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return out, nil
}

// GetSession returns one session by id.
func (s *Store) GetSession(ctx context.Context, id string) (Session, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id, workspace, base_name, address, keep_on_exit, opened_at, closed_at, outcome, cause, close_error
FROM sessions
WHERE id = ?;
`, id)
	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return sess, err
}

// ListRuns returns the runs of a session in execution order, transfers included.
func (s *Store) ListRuns(ctx context.Context, sessionID string) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, session_id, command, exit_code, started_at, finished_at, last_error
FROM runs
WHERE session_id = ?
ORDER BY started_at ASC, rowid ASC;
`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r                   Run
			exitCode            sql.NullInt64
			startedAt, finished string
			lastError           sql.NullString
		)
		if err := rows.Scan(&r.ID, &r.SessionID, &r.Command, &exitCode, &startedAt, &finished, &lastError); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if exitCode.Valid {
			code := int(exitCode.Int64)
			r.ExitCode = &code
		}
		r.StartedAt = parseTime(startedAt)
		r.FinishedAt = parseTime(finished)
		r.Error = lastError.String
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	_ = rows.Close()

	for i := range runs {
		transfers, err := s.listTransfers(ctx, runs[i].ID)
		if err != nil {
			return nil, err
		}
		runs[i].Transfers = transfers
	}
	return runs, nil
}

func (s *Store) listTransfers(ctx context.Context, runID string) ([]Transfer, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT identifier, direction, local_path, remote_path, bytes, digest
FROM transfers
WHERE run_id = ?
ORDER BY seq ASC;
`, runID)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()

	var out []Transfer
	for rows.Next() {
		var (
			tr     Transfer
			digest sql.NullString
		)
		if err := rows.Scan(&tr.Identifier, &tr.Direction, &tr.LocalPath, &tr.RemotePath, &tr.Bytes, &digest); err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		tr.Digest = digest.String
		out = append(out, tr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (Session, error) {
	var (
		sess                             Session
		openedAt                         string
		closedAt, outcome, cause, cerror sql.NullString
	)
	err := row.Scan(&sess.ID, &sess.Workspace, &sess.BaseName, &sess.Address, &sess.KeepOnExit,
		&openedAt, &closedAt, &outcome, &cause, &cerror)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Session{}, err
		}
		return Session{}, fmt.Errorf("scan session: %w", err)
	}
	sess.OpenedAt = parseTime(openedAt)
	if closedAt.Valid {
		t := parseTime(closedAt.String)
		sess.ClosedAt = &t
	}
	sess.Outcome = outcome.String
	sess.Cause = cause.String
	sess.CloseError = cerror.String
	return sess, nil
}

// timeLayout keeps every stored timestamp the same width so that text order
// in SQLite matches chronological order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
