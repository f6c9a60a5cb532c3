package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/finder/backend/internal/shared/paths"
)

// sandbox is a synthetic boundary: a writable home, a read-only root and an
// unrelated directory outside both
type sandbox struct {
	home    string
	root    string
	outside string
	ops     *FilesystemOps
}

func newSandbox(t *testing.T) *sandbox {
	t.Helper()
	home := canonical(t, t.TempDir())
	root := canonical(t, t.TempDir())
	outside := canonical(t, t.TempDir())

	v := NewValidator(Boundary{Home: home, ReadOnlyRoots: []string{root}})
	return &sandbox{home: home, root: root, outside: outside, ops: NewOps(v, nil, nil)}
}

func (s *sandbox) directory() *DirectoryOps   { return &DirectoryOps{FilesystemOps: s.ops} }
func (s *sandbox) operations() *OperationsOps { return &OperationsOps{FilesystemOps: s.ops} }
func (s *sandbox) search() *SearchOps         { return &SearchOps{FilesystemOps: s.ops} }
func (s *sandbox) preview() *PreviewOps       { return &PreviewOps{FilesystemOps: s.ops} }

func canonical(t *testing.T, path string) string {
	t.Helper()
	c, err := paths.Canonical(path)
	require.NoError(t, err)
	return c
}

func writeFile(t *testing.T, path string, data []byte) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func mkdir(t *testing.T, path string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(path, 0o755))
	return path
}

func names(entries []FileEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func requireKind(t *testing.T, err error, kind Kind) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, kind, KindOf(err), "error: %v", err)
}
