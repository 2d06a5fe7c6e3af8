// Package inspect renders the session journal for humans and scripts.
package inspect

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/mattjoyce/remex/internal/journal"
)

// Source is the read side of the journal.
type Source interface {
	ListSessions(ctx context.Context, limit int) ([]journal.Session, error)
	GetSession(ctx context.Context, id string) (journal.Session, error)
	ListRuns(ctx context.Context, sessionID string) ([]journal.Run, error)
}

// Report is the structured JSON representation of a history report.
type Report struct {
	Sessions []SessionReport `json:"sessions"`
}

// SessionReport is one session with its runs.
type SessionReport struct {
	ID         string      `json:"id"`
	Workspace  string      `json:"workspace"`
	Address    string      `json:"address,omitempty"`
	KeepOnExit bool        `json:"keep_on_exit"`
	OpenedAt   time.Time   `json:"opened_at"`
	ClosedAt   *time.Time  `json:"closed_at,omitempty"`
	Outcome    string      `json:"outcome"`
	Cause      string      `json:"cause,omitempty"`
	CloseError string      `json:"close_error,omitempty"`
	Runs       []RunReport `json:"runs"`
}

// RunReport is one run of a session.
type RunReport struct {
	ID        string           `json:"id"`
	Command   string           `json:"command"`
	ExitCode  *int             `json:"exit_code"`
	Duration  string           `json:"duration"`
	Error     string           `json:"error,omitempty"`
	Transfers []TransferReport `json:"transfers"`
}

// TransferReport is one file movement of a run.
type TransferReport struct {
	Identifier string `json:"identifier"`
	Direction  string `json:"direction"`
	LocalPath  string `json:"local_path"`
	RemotePath string `json:"remote_path"`
	Bytes      int64  `json:"bytes"`
	Digest     string `json:"blake3"`
}

// BuildReport renders a terminal-friendly history of the last limit sessions,
// or of the single session sessionID when set.
func BuildReport(ctx context.Context, src Source, limit int, sessionID string, theme Theme) (string, error) {
	report, err := gatherReportData(ctx, src, limit, sessionID)
	if err != nil {
		return "", err
	}

	if len(report.Sessions) == 0 {
		return theme.Dim.Render("No sessions recorded.") + "\n", nil
	}

	var out strings.Builder
	out.WriteString(theme.Title.Render("Session History") + "\n\n")

	for _, s := range report.Sessions {
		header := lipgloss.JoinHorizontal(lipgloss.Top,
			theme.Header.Render(s.Workspace),
			"  ",
			theme.outcome(s.Outcome).Render(renderUnset(s.Outcome, "open")),
		)
		out.WriteString(header + "\n")
		fmt.Fprintf(&out, "  session   : %s\n", s.ID)
		fmt.Fprintf(&out, "  address   : %s\n", renderUnset(s.Address, "<unknown>"))
		fmt.Fprintf(&out, "  opened    : %s\n", s.OpenedAt.Format(time.RFC3339))
		if s.ClosedAt != nil {
			fmt.Fprintf(&out, "  closed    : %s\n", s.ClosedAt.Format(time.RFC3339))
		}
		if s.Cause != "" {
			fmt.Fprintf(&out, "  cause     : %s\n", s.Cause)
		}
		if s.CloseError != "" {
			fmt.Fprintf(&out, "  close err : %s\n", theme.OutcomeFailed.Render(s.CloseError))
		}

		for i, r := range s.Runs {
			code := "-"
			if r.ExitCode != nil {
				code = fmt.Sprintf("%d", *r.ExitCode)
			}
			fmt.Fprintf(&out, "  [%d] %s %s\n", i+1,
				theme.Highlight.Render(r.Command),
				theme.Dim.Render(fmt.Sprintf("(exit %s, %s)", code, r.Duration)))
			if r.Error != "" {
				fmt.Fprintf(&out, "      error: %s\n", theme.OutcomeFailed.Render(r.Error))
			}
			for _, tr := range r.Transfers {
				fmt.Fprintf(&out, "      %-8s %s -> %s (%d bytes)\n", tr.Direction, tr.LocalPath, tr.RemotePath, tr.Bytes)
			}
		}
		out.WriteString("\n")
	}

	return strings.TrimRight(out.String(), "\n") + "\n", nil
}

// BuildJSONReport returns the machine-readable JSON history report.
func BuildJSONReport(ctx context.Context, src Source, limit int, sessionID string) (string, error) {
	report, err := gatherReportData(ctx, src, limit, sessionID)
	if err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal json report: %w", err)
	}
	return string(data), nil
}

func gatherReportData(ctx context.Context, src Source, limit int, sessionID string) (*Report, error) {
	var sessions []journal.Session
	if sessionID != "" {
		s, err := src.GetSession(ctx, sessionID)
		if err != nil {
			return nil, err
		}
		sessions = []journal.Session{s}
	} else {
		var err error
		sessions, err = src.ListSessions(ctx, limit)
		if err != nil {
			return nil, err
		}
	}

	report := &Report{Sessions: make([]SessionReport, 0, len(sessions))}
	for _, s := range sessions {
		runs, err := src.ListRuns(ctx, s.ID)
		if err != nil {
			return nil, err
		}
		sr := SessionReport{
			ID:         s.ID,
			Workspace:  s.Workspace,
			Address:    s.Address,
			KeepOnExit: s.KeepOnExit,
			OpenedAt:   s.OpenedAt,
			ClosedAt:   s.ClosedAt,
			Outcome:    s.Outcome,
			Cause:      s.Cause,
			CloseError: s.CloseError,
			Runs:       make([]RunReport, 0, len(runs)),
		}
		for _, r := range runs {
			rr := RunReport{
				ID:        r.ID,
				Command:   r.Command,
				ExitCode:  r.ExitCode,
				Duration:  r.FinishedAt.Sub(r.StartedAt).Round(time.Millisecond).String(),
				Error:     r.Error,
				Transfers: make([]TransferReport, 0, len(r.Transfers)),
			}
			for _, tr := range r.Transfers {
				rr.Transfers = append(rr.Transfers, TransferReport{
					Identifier: tr.Identifier,
					Direction:  tr.Direction,
					LocalPath:  tr.LocalPath,
					RemotePath: tr.RemotePath,
					Bytes:      tr.Bytes,
					Digest:     tr.Digest,
				})
			}
			sr.Runs = append(sr.Runs, rr)
		}
		report.Sessions = append(report.Sessions, sr)
	}
	return report, nil
}

func renderUnset(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
