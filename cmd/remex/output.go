package main

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/mattjoyce/remex/internal/inspect"
)

const (
	stdoutBanner = "=====Remote Stdout======="
	stderrBanner = "=====Remote Stderr======="
)

// sectionWriter prints header before every block of remote output. The
// executor hands over each command's stdout and stderr in a single Write.
type sectionWriter struct {
	w      io.Writer
	header string
}

func (s *sectionWriter) Write(p []byte) (int, error) {
	if _, err := io.WriteString(s.w, s.header+"\n"); err != nil {
		return 0, err
	}
	n, err := s.w.Write(p)
	if err != nil {
		return n, err
	}
	if len(p) > 0 && p[len(p)-1] != '\n' {
		if _, err := io.WriteString(s.w, "\n"); err != nil {
			return n, err
		}
	}
	return n, nil
}

// remoteOutput returns the writers remote stdout and stderr are printed to.
// Headers are styled on terminals only.
func remoteOutput(stdout, stderr *os.File) (io.Writer, io.Writer) {
	return &sectionWriter{w: stdout, header: terminalTheme(stdout).Section(stdoutBanner)},
		&sectionWriter{w: stderr, header: terminalTheme(stderr).Section(stderrBanner)}
}

func terminalTheme(f *os.File) inspect.Theme {
	if isatty.IsTerminal(f.Fd()) {
		return inspect.NewDefaultTheme()
	}
	return inspect.PlainTheme()
}
