package filesystem

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/finder/backend/internal/shared/paths"
	"github.com/GriffinCanCode/finder/backend/internal/shared/types"
)

// DirectoryOps handles listing and item lookups
type DirectoryOps struct {
	*FilesystemOps
}

// GetTools returns directory operation tool definitions
func (d *DirectoryOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "filesystem.list",
			Name:        "List Directory",
			Description: "List immediate children of a directory, folders first",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Directory path", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "filesystem.home",
			Name:        "Home Directory",
			Description: "Get the user's home directory",
			Parameters:  []types.Parameter{},
			Returns:     "string",
		},
		{
			ID:          "filesystem.info",
			Name:        "Item Info",
			Description: "Get metadata for a single file or directory",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File or directory path", Required: true},
			},
			Returns: "object",
		},
	}
}

// List enumerates the immediate children of path
func (d *DirectoryOps) List(ctx context.Context, path string) (listing *DirectoryListing, err error) {
	defer func(start time.Time) { err = d.observe("list", start, err) }(time.Now())

	dir, err := d.Validator.Readable(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, wrapIO("list", dir, err)
	}
	if !info.IsDir() {
		return nil, newError(KindNotADirectory, "list", dir, "path is not a directory")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dirEntries, readErr := os.ReadDir(dir)
	if readErr != nil && len(dirEntries) == 0 {
		return nil, &Error{Kind: KindIO, Op: "list", Path: dir, Message: "failed to read directory", Err: readErr}
	}
	if readErr != nil {
		d.Logger.Debug("Partial directory read", zap.String("path", dir), zap.Error(readErr))
	}

	entries := make([]FileEntry, 0, len(dirEntries))
	skipped := 0
	for _, de := range dirEntries {
		entry, ok := readEntry(filepath.Join(dir, de.Name()), de)
		if !ok {
			skipped++
			continue
		}
		entries = append(entries, entry)
	}
	sortEntries(entries)

	if skipped > 0 {
		d.Metrics.RecordSkipped("list", skipped)
		d.Logger.Debug("Skipped vanished entries", zap.String("path", dir), zap.Int("skipped", skipped))
	}

	listing = &DirectoryListing{CurrentPath: dir, Entries: entries, Skipped: skipped}
	if paths.HasParent(dir) {
		parent := filepath.Dir(dir)
		listing.ParentPath = &parent
	}
	return listing, nil
}

// Home returns the home directory of the boundary
func (d *DirectoryOps) Home() (string, error) {
	return d.Validator.Home()
}

// ItemInfo describes a single file or directory
func (d *DirectoryOps) ItemInfo(ctx context.Context, path string) (entry *FileEntry, err error) {
	defer func(start time.Time) { err = d.observe("info", start, err) }(time.Now())

	resolved, err := d.Validator.Readable(path)
	if err != nil {
		if path == "" || KindOf(err) != KindInvalidPath {
			return nil, err
		}
		if denied := d.Validator.denial(path); denied != nil {
			return nil, denied
		}
		if _, statErr := os.Lstat(path); errors.Is(statErr, fs.ErrNotExist) {
			return nil, newError(KindInvalidPath, "info", path, "item does not exist")
		}
		return nil, err
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return nil, &Error{Kind: KindIO, Op: "info", Path: resolved, Message: "failed to get metadata", Err: err}
	}
	e := entryFor(itemPath(path, resolved), info.IsDir(), info)
	return &e, nil
}

// itemPath names an item by its own location, as a listing does: a symlink
// keeps its name under its canonical parent instead of taking its target's.
func itemPath(path, resolved string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return resolved
	}
	if info, err := os.Lstat(abs); err != nil || info.Mode()&fs.ModeSymlink == 0 {
		return resolved
	}
	parent, err := paths.Canonical(filepath.Dir(abs))
	if err != nil {
		return resolved
	}
	return filepath.Join(parent, filepath.Base(abs))
}

// readEntry builds the view of one child. Directory-ness follows symlinks.
// It reports false when the entry vanished between the directory read and
// the metadata read.
func readEntry(path string, de fs.DirEntry) (FileEntry, bool) {
	lst, err := de.Info()
	if errors.Is(err, fs.ErrNotExist) {
		return FileEntry{}, false
	}
	if err != nil {
		return entryFor(path, de.IsDir(), nil), true
	}
	isDir := de.IsDir()
	info := lst
	if lst.Mode()&fs.ModeSymlink != 0 {
		if target, err := os.Stat(path); err == nil {
			isDir = target.IsDir()
			info = target
		}
	}
	return entryFor(path, isDir, info), true
}
