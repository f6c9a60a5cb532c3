package filesystem

import (
	"os"
	"path/filepath"

	"github.com/GriffinCanCode/finder/backend/internal/shared/paths"
)

// Level is the outcome of classifying a path against the boundary
type Level int

const (
	Denied Level = iota
	Readable
	Writable
)

func (l Level) String() string {
	switch l {
	case Readable:
		return "readable"
	case Writable:
		return "writable"
	default:
		return "denied"
	}
}

// Trust is a per-call classification of a path
type Trust struct {
	Level  Level
	Path   string // canonical path, empty when denied before resolution
	Reason error  // set when Level is Denied
}

// Boundary describes where the layer may read and write.
// Home is readable and writable; ReadOnlyRoots are readable only.
type Boundary struct {
	Home          string
	ReadOnlyRoots []string
}

// DefaultBoundary builds a boundary from the process home directory and the
// default system roots
func DefaultBoundary() Boundary {
	home, _ := os.UserHomeDir()
	return Boundary{Home: home, ReadOnlyRoots: paths.DefaultReadOnlyRoots()}
}

// Validator classifies caller-supplied paths. It is immutable once built and
// safe for concurrent use. Nothing is cached between calls: every check
// resolves the path again.
type Validator struct {
	home    string
	homeErr error
	roots   []string
}

// NewValidator canonicalizes the boundary. An unresolvable home does not fail
// construction; every later check reports a configuration error instead.
func NewValidator(b Boundary) *Validator {
	v := &Validator{roots: paths.CanonicalRoots(b.ReadOnlyRoots)}
	if b.Home == "" {
		v.homeErr = newError(KindConfiguration, "", "", "cannot determine home directory")
		return v
	}
	home, err := paths.Canonical(b.Home)
	if err != nil {
		v.homeErr = &Error{Kind: KindConfiguration, Message: "cannot resolve home directory", Path: b.Home, Err: err}
		return v
	}
	v.home = home
	return v
}

// Home returns the canonical home directory
func (v *Validator) Home() (string, error) {
	if v.homeErr != nil {
		return "", v.homeErr
	}
	return v.home, nil
}

// ReadOnlyRoots returns the canonical read-only roots that exist on this host
func (v *Validator) ReadOnlyRoots() []string {
	out := make([]string, len(v.roots))
	copy(out, v.roots)
	return out
}

// Classify resolves path and reports its trust level
func (v *Validator) Classify(path string) Trust {
	if path == "" {
		return Trust{Level: Denied, Reason: newError(KindInvalidPath, "", "", "path parameter required")}
	}
	canonical, err := paths.Canonical(path)
	if err != nil {
		return Trust{Level: Denied, Reason: &Error{Kind: KindInvalidPath, Message: "invalid or inaccessible path", Path: path, Err: err}}
	}
	if v.homeErr != nil {
		return Trust{Level: Denied, Path: canonical, Reason: v.homeErr}
	}
	if paths.Within(v.home, canonical) {
		return Trust{Level: Writable, Path: canonical}
	}
	for _, root := range v.roots {
		if paths.Within(root, canonical) {
			return Trust{Level: Readable, Path: canonical}
		}
	}
	return Trust{Level: Denied, Path: canonical, Reason: newError(KindAccessDenied, "", path, "path is outside allowed directories")}
}

// Readable validates path for reading and returns its canonical form
func (v *Validator) Readable(path string) (string, error) {
	t := v.Classify(path)
	if t.Level == Denied {
		return "", t.Reason
	}
	return t.Path, nil
}

// Writable validates path for writing and returns its canonical form.
// Only home and its descendants are writable.
func (v *Validator) Writable(path string) (string, error) {
	t := v.Classify(path)
	switch t.Level {
	case Writable:
		return t.Path, nil
	case Readable:
		return "", newError(KindAccessDenied, "", path, "write access denied: only the home directory is writable")
	default:
		return "", t.Reason
	}
}

// denial reports why a path that does not resolve would be refused, judged
// by its nearest existing ancestor. It returns nil when that ancestor lies
// inside the boundary.
func (v *Validator) denial(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return newError(KindAccessDenied, "", path, "path is outside allowed directories")
	}
	for dir := abs; ; dir = filepath.Dir(dir) {
		if _, err := paths.Canonical(dir); err == nil {
			if t := v.Classify(dir); t.Level == Denied {
				return t.Reason
			}
			return nil
		}
		if !paths.HasParent(dir) {
			return newError(KindAccessDenied, "", path, "path is outside allowed directories")
		}
	}
}
