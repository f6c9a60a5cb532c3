package paths

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Default read-only system roots
const (
	Applications       = "/Applications"
	SystemApplications = "/System/Applications"
	UsrLocal           = "/usr/local"
	Opt                = "/opt"
)

// DefaultReadOnlyRoots returns the system directories that may be browsed
// but never written
func DefaultReadOnlyRoots() []string {
	return []string{Applications, SystemApplications, UsrLocal, Opt}
}

// Canonical resolves path to an absolute, symlink-free form.
// The path must exist.
func Canonical(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", err
	}
	return filepath.Clean(resolved), nil
}

// Within reports whether path equals root or lies beneath it.
// Both arguments must be clean absolute paths. Comparison is per segment,
// so /home/al is not within /home/alice.
func Within(root, path string) bool {
	if root == "" || path == "" {
		return false
	}
	if samePath(root, path) {
		return true
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}

// HasParent reports whether path has a filesystem parent distinct from itself
func HasParent(path string) bool {
	return filepath.Dir(path) != path
}

// CanonicalRoots canonicalizes each root, dropping roots that do not exist
// on this machine
func CanonicalRoots(roots []string) []string {
	out := make([]string, 0, len(roots))
	for _, root := range roots {
		if root == "" {
			continue
		}
		resolved, err := Canonical(root)
		if err != nil {
			continue
		}
		if info, err := os.Stat(resolved); err != nil || !info.IsDir() {
			continue
		}
		out = append(out, resolved)
	}
	return out
}

func samePath(a, b string) bool {
	if runtime.GOOS == "windows" {
		return strings.EqualFold(a, b)
	}
	return a == b
}
