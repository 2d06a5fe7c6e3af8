package workspace

import (
	"fmt"
	"math/rand/v2"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

const (
	// SuffixMin and SuffixMax bound the random suffix, both inclusive.
	SuffixMin = 1000
	SuffixMax = 999999

	// maxDraws caps redraws when a suffix was already issued.
	maxDraws = 64
)

// Source supplies random integers in [0, n).
type Source interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// Namer issues workspace names of the form <base>_<suffix>. It remembers
// every name it has handed out, so a single process never issues the same
// name twice.
type Namer struct {
	mu     sync.Mutex
	src    Source
	issued map[string]struct{}
}

var defaultNamer = NewNamer(nil)

// NewNamer returns a Namer drawing from src, or from math/rand/v2 when src is nil.
func NewNamer(src Source) *Namer {
	if src == nil {
		src = globalSource{}
	}
	return &Namer{
		src:    src,
		issued: make(map[string]struct{}),
	}
}

// NewName draws a unique workspace name for base from the process-wide Namer.
func NewName(base string) (string, error) {
	return defaultNamer.Name(base)
}

// Name returns a name for base that this Namer has not issued before.
func (n *Namer) Name(base string) (string, error) {
	if err := ValidateBase(base); err != nil {
		return "", err
	}
	base = strings.TrimSpace(base)

	n.mu.Lock()
	defer n.mu.Unlock()

	for range maxDraws {
		suffix := SuffixMin + n.src.IntN(SuffixMax-SuffixMin+1)
		name := base + "_" + strconv.Itoa(suffix)
		if _, seen := n.issued[name]; seen {
			continue
		}
		n.issued[name] = struct{}{}
		return name, nil
	}
	return "", fmt.Errorf("no unused workspace name for base %q after %d draws", base, maxDraws)
}

// Workspace is Name wrapped into a Workspace value.
func (n *Namer) Workspace(base string, keepOnExit bool) (Workspace, error) {
	name, err := n.Name(base)
	if err != nil {
		return Workspace{}, err
	}
	return Workspace{
		Name:       name,
		Base:       strings.TrimSpace(base),
		KeepOnExit: keepOnExit,
	}, nil
}

// ValidateBase rejects base names that cannot be a single remote directory name.
func ValidateBase(base string) error {
	trimmed := strings.TrimSpace(base)
	if trimmed == "" {
		return fmt.Errorf("workspace base name is empty")
	}
	if trimmed == "." || trimmed == ".." {
		return fmt.Errorf("workspace base name %q is invalid", base)
	}
	if strings.Contains(trimmed, "/") || strings.Contains(trimmed, `\`) {
		return fmt.Errorf("workspace base name %q must not contain path separators", base)
	}
	if filepath.Clean(trimmed) != trimmed {
		return fmt.Errorf("workspace base name %q is invalid", base)
	}
	return nil
}
