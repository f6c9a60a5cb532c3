package filesystem

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/finder/backend/internal/shared/types"
)

// MaxSearchResults caps every search
const MaxSearchResults = 1000

var errSearchLimit = errors.New("search result limit reached")

// SearchResult is an ordered set of matches plus traversal diagnostics.
// Truncated reports that the result cap cut the traversal short, so more
// matches may exist.
type SearchResult struct {
	Entries   []FileEntry `json:"entries"`
	Skipped   int         `json:"skipped"`
	Truncated bool        `json:"truncated"`
}

// SearchOps handles recursive name search
type SearchOps struct {
	*FilesystemOps
}

// GetTools returns search operation tool definitions
func (s *SearchOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "filesystem.search",
			Name:        "Search Files",
			Description: "Recursively find files and folders whose name contains a query",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Root directory", Required: true},
				{Name: "query", Type: "string", Description: "Case-insensitive name fragment", Required: true},
			},
			Returns: "array",
		},
		{
			ID:          "filesystem.glob",
			Name:        "Glob",
			Description: "Find entries matching a glob with ** patterns",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Root directory", Required: true},
				{Name: "pattern", Type: "string", Description: "Glob pattern (e.g., '**/*.go')", Required: true},
			},
			Returns: "array",
		},
	}
}

// collector accumulates matches from concurrent walkers up to a limit
type collector struct {
	mu        sync.Mutex
	entries   []FileEntry
	skipped   int
	truncated bool
}

func (c *collector) add(entry FileEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.entries) >= MaxSearchResults {
		c.truncated = true
		return errSearchLimit
	}
	c.entries = append(c.entries, entry)
	return nil
}

func (c *collector) skip() {
	c.mu.Lock()
	c.skipped++
	c.mu.Unlock()
}

func (c *collector) full() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries) >= MaxSearchResults
}

func (c *collector) result() *SearchResult {
	sortEntries(c.entries)
	return &SearchResult{Entries: c.entries, Skipped: c.skipped, Truncated: c.truncated}
}

// Search walks directory and returns entries whose name contains query,
// ignoring case. Unreadable subdirectories are skipped.
func (s *SearchOps) Search(ctx context.Context, directory, query string) (result *SearchResult, err error) {
	defer func(start time.Time) { err = s.observe("search", start, err) }(time.Now())

	root, err := s.searchRoot("search", directory)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(query) == "" {
		return nil, newError(KindEmptyQuery, "search", "", "search query cannot be empty")
	}

	needle := strings.ToLower(query)
	c := &collector{entries: []FileEntry{}}
	conf := fastwalk.Config{Follow: false}

	walkErr := fastwalk.Walk(&conf, root, func(p string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			// unreadable directory or vanished entry
			c.skip()
			return nil
		}
		if p == root {
			return nil
		}

		if strings.Contains(strings.ToLower(d.Name()), needle) {
			entry, ok := readEntry(p, d)
			if !ok {
				c.skip()
				return nil
			}
			if err := c.add(entry); err != nil {
				return err
			}
		}
		if d.IsDir() && c.full() {
			c.mu.Lock()
			c.truncated = true
			c.mu.Unlock()
			return errSearchLimit
		}
		return nil
	})

	return s.finish("search", root, c, walkErr)
}

// Glob walks directory and returns entries whose path relative to directory
// matches pattern
func (s *SearchOps) Glob(ctx context.Context, directory, pattern string) (result *SearchResult, err error) {
	defer func(start time.Time) { err = s.observe("glob", start, err) }(time.Now())

	root, err := s.searchRoot("glob", directory)
	if err != nil {
		return nil, err
	}
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return nil, newError(KindEmptyQuery, "glob", "", "glob pattern cannot be empty")
	}
	pattern = filepath.ToSlash(pattern)
	if strings.HasPrefix(pattern, "/") || !doublestar.ValidatePattern(pattern) {
		return nil, newError(KindInvalidName, "glob", pattern, "invalid glob pattern")
	}

	c := &collector{entries: []FileEntry{}}
	walkErr := doublestar.GlobWalk(os.DirFS(root), pattern, func(rel string, d fs.DirEntry) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		entry, ok := readEntry(filepath.Join(root, filepath.FromSlash(rel)), d)
		if !ok {
			c.skip()
			return nil
		}
		return c.add(entry)
	}, doublestar.WithNoFollow())

	return s.finish("glob", root, c, walkErr)
}

func (s *SearchOps) searchRoot(op, directory string) (string, error) {
	root, err := s.Validator.Readable(directory)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(root)
	if err != nil {
		return "", wrapIO(op, root, err)
	}
	if !info.IsDir() {
		return "", newError(KindNotADirectory, op, root, "path is not a directory")
	}
	return root, nil
}

func (s *SearchOps) finish(op, root string, c *collector, walkErr error) (*SearchResult, error) {
	switch {
	case walkErr == nil, errors.Is(walkErr, errSearchLimit):
	case errors.Is(walkErr, context.Canceled), errors.Is(walkErr, context.DeadlineExceeded):
		return nil, walkErr
	default:
		return nil, &Error{Kind: KindIO, Op: op, Path: root, Message: "traversal failed", Err: walkErr}
	}

	result := c.result()
	if result.Skipped > 0 {
		s.Metrics.RecordSkipped(op, result.Skipped)
	}
	s.Logger.Debug("Search finished",
		zap.String("op", op),
		zap.String("path", root),
		zap.Int("matches", len(result.Entries)),
		zap.Int("skipped", result.Skipped),
		zap.Bool("truncated", result.Truncated),
	)
	return result, nil
}
