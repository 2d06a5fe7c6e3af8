package inspect

import "github.com/charmbracelet/lipgloss"

// Theme centralizes the styling of history reports.
type Theme struct {
	Title     lipgloss.Style
	Header    lipgloss.Style
	Dim       lipgloss.Style
	Highlight lipgloss.Style

	OutcomeOK     lipgloss.Style
	OutcomeKept   lipgloss.Style
	OutcomeFailed lipgloss.Style
	OutcomeOpen   lipgloss.Style
}

// NewDefaultTheme returns the color theme used on terminals.
func NewDefaultTheme() Theme {
	return Theme{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FAFAFA")),
		Header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#61AFEF")),
		Dim:       lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")),
		Highlight: lipgloss.NewStyle().Foreground(lipgloss.Color("#E5C07B")),

		OutcomeOK:     lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00")),
		OutcomeKept:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFF00")),
		OutcomeFailed: lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000")),
		OutcomeOpen:   lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")),
	}
}

// PlainTheme renders without any styling.
func PlainTheme() Theme {
	s := lipgloss.NewStyle()
	return Theme{
		Title: s, Header: s, Dim: s, Highlight: s,
		OutcomeOK: s, OutcomeKept: s, OutcomeFailed: s, OutcomeOpen: s,
	}
}

func (t Theme) outcome(o string) lipgloss.Style {
	switch o {
	case "deleted":
		return t.OutcomeOK
	case "kept":
		return t.OutcomeKept
	case "deletion_failed":
		return t.OutcomeFailed
	default:
		return t.OutcomeOpen
	}
}

// Section renders a section banner line such as a remote output header.
func (t Theme) Section(title string) string {
	return t.Header.Render(title)
}
