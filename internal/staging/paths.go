package staging

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

var (
	toSlash      = strings.NewReplacer(":", "/", `\`, "/")
	flatten      = strings.NewReplacer(":", "_", `\`, "_", "/", "_")
	identFlatten = strings.NewReplacer(":", "_", ".", "_", `\`, "_", "/", "_")
)

// UploadPath maps a local file to its place under the workspace root. The
// absolute local directory structure is kept, drive separators become path
// separators and the result is relative ("./..."), so paths the command uses
// resolve inside the workspace. Remote paths always use "/".
func UploadPath(localPath string) (string, error) {
	if localPath == "" {
		return "", ErrEmptyPath
	}
	abs, err := filepath.Abs(localPath)
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", localPath, err)
	}
	p := strings.TrimLeft(path.Clean(toSlash.Replace(abs)), "/")
	if p == "" || p == "." {
		return ".", nil
	}
	return "./" + p, nil
}

// DownloadPath flattens a local path into a single separator-free name: the
// command is expected to produce the file directly in the workspace root.
func DownloadPath(localPath string) (string, error) {
	if localPath == "" {
		return "", ErrEmptyPath
	}
	return flatten.Replace(filepath.Clean(localPath)), nil
}

// PathIdentifier derives the default identifier of a local path. The same
// path always yields the same identifier.
func PathIdentifier(localPath string) string {
	return identFlatten.Replace(filepath.Clean(localPath))
}
