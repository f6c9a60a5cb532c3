package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch(t *testing.T) {
	s := newSandbox(t)
	writeFile(t, filepath.Join(s.home, "Report-2024.pdf"), nil)
	writeFile(t, filepath.Join(s.home, "work", "weekly_report.txt"), nil)
	writeFile(t, filepath.Join(s.home, "work", "notes.txt"), nil)
	mkdir(t, filepath.Join(s.home, "work", "reports"))

	result, err := s.search().Search(context.Background(), s.home, "REPORT")
	require.NoError(t, err)

	assert.Equal(t, []string{"reports", "Report-2024.pdf", "weekly_report.txt"}, names(result.Entries))
	assert.False(t, result.Truncated)
	assert.Zero(t, result.Skipped)
	assert.Equal(t, filepath.Join(s.home, "work", "weekly_report.txt"), result.Entries[2].Path)
}

func TestSearchExcludesRoot(t *testing.T) {
	s := newSandbox(t)
	root := mkdir(t, filepath.Join(s.home, "match"))
	writeFile(t, filepath.Join(root, "match.txt"), nil)

	result, err := s.search().Search(context.Background(), root, "match")
	require.NoError(t, err)

	assert.Equal(t, []string{"match.txt"}, names(result.Entries))
}

func TestSearchEmptyQuery(t *testing.T) {
	s := newSandbox(t)

	for _, q := range []string{"", "   ", "\t\n"} {
		_, err := s.search().Search(context.Background(), s.home, q)
		requireKind(t, err, KindEmptyQuery)
	}
}

func TestSearchLimit(t *testing.T) {
	s := newSandbox(t)
	for d := 0; d < 4; d++ {
		dir := mkdir(t, filepath.Join(s.home, fmt.Sprintf("dir%d", d)))
		for i := 0; i < 300; i++ {
			writeFile(t, filepath.Join(dir, fmt.Sprintf("hit_%03d.txt", i)), nil)
		}
	}

	result, err := s.search().Search(context.Background(), s.home, "hit_")
	require.NoError(t, err)

	assert.Len(t, result.Entries, MaxSearchResults)
	assert.True(t, result.Truncated)
}

func TestSearchExactlyAtLimit(t *testing.T) {
	s := newSandbox(t)
	for i := 0; i < MaxSearchResults; i++ {
		writeFile(t, filepath.Join(s.home, fmt.Sprintf("hit_%04d", i)), nil)
	}

	result, err := s.search().Search(context.Background(), s.home, "hit_")
	require.NoError(t, err)

	assert.Len(t, result.Entries, MaxSearchResults)
	assert.False(t, result.Truncated)
}

func TestSearchStopsAtLimit(t *testing.T) {
	s := newSandbox(t)
	for i := 0; i < MaxSearchResults; i++ {
		writeFile(t, filepath.Join(s.home, fmt.Sprintf("hit_%04d", i)), nil)
	}
	writeFile(t, filepath.Join(s.home, "later", "hit_extra"), nil)

	result, err := s.search().Search(context.Background(), s.home, "hit_")
	require.NoError(t, err)

	assert.Len(t, result.Entries, MaxSearchResults)
	assert.True(t, result.Truncated)
}

func TestSearchCancelled(t *testing.T) {
	s := newSandbox(t)
	writeFile(t, filepath.Join(s.home, "a", "match.txt"), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.search().Search(ctx, s.home, "match")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSearchSkipsUnreadable(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}
	s := newSandbox(t)
	writeFile(t, filepath.Join(s.home, "open", "match.txt"), nil)
	locked := mkdir(t, filepath.Join(s.home, "locked"))
	writeFile(t, filepath.Join(locked, "match.txt"), nil)
	require.NoError(t, os.Chmod(locked, 0))
	t.Cleanup(func() { os.Chmod(locked, 0o755) })

	result, err := s.search().Search(context.Background(), s.home, "match")
	require.NoError(t, err)

	assert.Equal(t, []string{"match.txt"}, names(result.Entries))
	assert.Positive(t, result.Skipped)
}

func TestSearchDoesNotFollowSymlinks(t *testing.T) {
	s := newSandbox(t)
	writeFile(t, filepath.Join(s.outside, "match-secret.txt"), nil)
	if err := os.Symlink(s.outside, filepath.Join(s.home, "portal")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	result, err := s.search().Search(context.Background(), s.home, "match")
	require.NoError(t, err)
	assert.Empty(t, result.Entries)
}

func TestSearchErrors(t *testing.T) {
	s := newSandbox(t)
	file := writeFile(t, filepath.Join(s.home, "f.txt"), nil)
	ctx := context.Background()

	_, err := s.search().Search(ctx, s.outside, "x")
	requireKind(t, err, KindAccessDenied)

	_, err = s.search().Search(ctx, file, "x")
	requireKind(t, err, KindNotADirectory)

	_, err = s.search().Search(ctx, "", "x")
	requireKind(t, err, KindInvalidPath)
}

func TestSearchReadOnlyRoot(t *testing.T) {
	s := newSandbox(t)
	writeFile(t, filepath.Join(s.root, "Tools.app", "Contents", "Info.plist"), nil)

	result, err := s.search().Search(context.Background(), s.root, "info")
	require.NoError(t, err)
	assert.Equal(t, []string{"Info.plist"}, names(result.Entries))
}

func TestGlob(t *testing.T) {
	s := newSandbox(t)
	writeFile(t, filepath.Join(s.home, "main.go"), nil)
	writeFile(t, filepath.Join(s.home, "cmd", "server", "main.go"), nil)
	writeFile(t, filepath.Join(s.home, "cmd", "README.md"), nil)
	ctx := context.Background()

	result, err := s.search().Glob(ctx, s.home, "**/*.go")
	require.NoError(t, err)
	require.Len(t, result.Entries, 2)
	assert.ElementsMatch(t,
		[]string{filepath.Join(s.home, "main.go"), filepath.Join(s.home, "cmd", "server", "main.go")},
		[]string{result.Entries[0].Path, result.Entries[1].Path},
	)

	result, err = s.search().Glob(ctx, s.home, "cmd/*")
	require.NoError(t, err)
	assert.Equal(t, []string{"server", "README.md"}, names(result.Entries))
}

func TestGlobErrors(t *testing.T) {
	s := newSandbox(t)
	ctx := context.Background()

	_, err := s.search().Glob(ctx, s.home, " ")
	requireKind(t, err, KindEmptyQuery)

	_, err = s.search().Glob(ctx, s.home, "[abc")
	requireKind(t, err, KindInvalidName)

	_, err = s.search().Glob(ctx, s.home, "/etc/*")
	requireKind(t, err, KindInvalidName)

	_, err = s.search().Glob(ctx, s.outside, "*")
	requireKind(t, err, KindAccessDenied)
}

func TestGlobLimit(t *testing.T) {
	s := newSandbox(t)
	for i := 0; i < MaxSearchResults+50; i++ {
		writeFile(t, filepath.Join(s.home, fmt.Sprintf("f%04d.log", i)), nil)
	}

	result, err := s.search().Glob(context.Background(), s.home, "*.log")
	require.NoError(t, err)
	assert.Len(t, result.Entries, MaxSearchResults)
	assert.True(t, result.Truncated)
}
