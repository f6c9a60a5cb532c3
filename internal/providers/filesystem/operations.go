package filesystem

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/finder/backend/internal/shared/paths"
	"github.com/GriffinCanCode/finder/backend/internal/shared/types"
)

// OperationsOps handles mutations (create, delete, rename, copy, move)
type OperationsOps struct {
	*FilesystemOps

	// renameFn replaces os.Rename in tests
	renameFn func(oldpath, newpath string) error
}

// GetTools returns mutation tool definitions
func (o *OperationsOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "filesystem.mkdir",
			Name:        "Create Folder",
			Description: "Create a single folder inside a parent directory",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Parent directory", Required: true},
				{Name: "name", Type: "string", Description: "Folder name", Required: true},
			},
			Returns: "string",
		},
		{
			ID:          "filesystem.delete",
			Name:        "Delete",
			Description: "Delete a file, or a directory recursively",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File or directory path", Required: true},
			},
			Returns: "boolean",
		},
		{
			ID:          "filesystem.rename",
			Name:        "Rename",
			Description: "Rename a file or directory within its parent",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Current path", Required: true},
				{Name: "new_name", Type: "string", Description: "New name", Required: true},
			},
			Returns: "string",
		},
		{
			ID:          "filesystem.copy",
			Name:        "Copy",
			Description: "Copy a file or directory into a destination directory",
			Parameters: []types.Parameter{
				{Name: "source", Type: "string", Description: "Source path", Required: true},
				{Name: "destination", Type: "string", Description: "Destination directory", Required: true},
			},
			Returns: "string",
		},
		{
			ID:          "filesystem.move",
			Name:        "Move",
			Description: "Move a file or directory into a destination directory",
			Parameters: []types.Parameter{
				{Name: "source", Type: "string", Description: "Source path", Required: true},
				{Name: "destination", Type: "string", Description: "Destination directory", Required: true},
			},
			Returns: "string",
		},
	}
}

// ValidateName rejects names that are empty, contain a path separator or
// refer to the current or parent directory
func ValidateName(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0) {
		return newError(KindInvalidName, "", name, "invalid name")
	}
	return nil
}

// CreateFolder creates exactly one directory named name inside parent
func (o *OperationsOps) CreateFolder(ctx context.Context, parent, name string) (created string, err error) {
	defer func(start time.Time) { err = o.observe("mkdir", start, err) }(time.Now())

	if err := ValidateName(name); err != nil {
		return "", err
	}
	dir, err := o.Validator.Writable(parent)
	if err != nil {
		return "", err
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return "", newError(KindNotADirectory, "mkdir", dir, "parent is not a directory")
	}

	target := filepath.Join(dir, name)
	if exists(target) {
		return "", newError(KindAlreadyExists, "mkdir", target, "folder already exists")
	}
	if err := os.Mkdir(target, 0o755); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return "", newError(KindAlreadyExists, "mkdir", target, "folder already exists")
		}
		return "", &Error{Kind: KindIO, Op: "mkdir", Path: target, Message: "failed to create folder", Err: err}
	}

	o.Logger.Info("Folder created", zap.String("path", target))
	return target, nil
}

// Delete removes path, recursively when it is a directory. A symlink is
// removed itself, never its target.
func (o *OperationsOps) Delete(ctx context.Context, path string) (err error) {
	defer func(start time.Time) { err = o.observe("delete", start, err) }(time.Now())

	item, err := o.writableItem(path)
	if err != nil {
		return err
	}
	if err := o.refuseHome("delete", item); err != nil {
		return err
	}

	info, err := os.Lstat(item)
	if err != nil {
		return wrapIO("delete", item, err)
	}
	if info.IsDir() {
		err = removeTree(ctx, item)
	} else {
		err = os.Remove(item)
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return &Error{Kind: KindIO, Op: "delete", Path: item, Message: "failed to delete", Err: err}
	}

	o.Logger.Info("Item deleted", zap.String("path", item), zap.Bool("directory", info.IsDir()))
	return nil
}

// Rename renames oldPath to newName within the same parent directory
func (o *OperationsOps) Rename(ctx context.Context, oldPath, newName string) (renamed string, err error) {
	defer func(start time.Time) { err = o.observe("rename", start, err) }(time.Now())

	if err := ValidateName(newName); err != nil {
		return "", err
	}
	item, err := o.writableItem(oldPath)
	if err != nil {
		return "", err
	}
	if err := o.refuseHome("rename", item); err != nil {
		return "", err
	}

	target := filepath.Join(filepath.Dir(item), newName)
	if target == item {
		return target, nil
	}
	if exists(target) && !caseOnlyRename(item, target) {
		return "", newError(KindAlreadyExists, "rename", target, "an item with this name already exists")
	}
	if err := o.rename(item, target); err != nil {
		return "", &Error{Kind: KindIO, Op: "rename", Path: item, Message: "failed to rename item", Err: err}
	}

	o.Logger.Info("Item renamed", zap.String("from", item), zap.String("to", target))
	return target, nil
}

// Copy copies source into destDir, keeping its name
func (o *OperationsOps) Copy(ctx context.Context, source, destDir string) (copied string, err error) {
	defer func(start time.Time) { err = o.observe("copy", start, err) }(time.Now())

	src, dst, err := o.transferEnds("copy", source, destDir, o.Validator.Readable)
	if err != nil {
		return "", err
	}

	target, err := transferTarget("copy", src, filepath.Base(absOrSelf(source)), dst)
	if err != nil {
		return "", err
	}
	if err := copyItem(ctx, src, target); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", &Error{Kind: KindIO, Op: "copy", Path: src, Message: "failed to copy", Err: err}
	}

	o.Logger.Info("Item copied", zap.String("from", src), zap.String("to", target))
	return target, nil
}

// Move moves source into destDir, falling back to copy and delete when the
// two live on different volumes
func (o *OperationsOps) Move(ctx context.Context, source, destDir string) (moved string, err error) {
	defer func(start time.Time) { err = o.observe("move", start, err) }(time.Now())

	src, dst, err := o.transferEnds("move", source, destDir, o.writableItem)
	if err != nil {
		return "", err
	}
	if err := o.refuseHome("move", src); err != nil {
		return "", err
	}

	target, err := transferTarget("move", src, filepath.Base(src), dst)
	if err != nil {
		return "", err
	}

	renameErr := o.rename(src, target)
	if renameErr == nil {
		o.Logger.Info("Item moved", zap.String("from", src), zap.String("to", target))
		return target, nil
	}
	if !isCrossDevice(renameErr) {
		return "", &Error{Kind: KindIO, Op: "move", Path: src, Message: "failed to move item", Err: renameErr}
	}

	o.Logger.Debug("Cross-volume move, copying", zap.String("from", src), zap.String("to", target))
	if err := copyItem(ctx, src, target); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", &Error{Kind: KindIO, Op: "move", Path: src, Message: "failed to copy across volumes", Err: err}
	}
	if err := os.RemoveAll(src); err != nil {
		return "", &Error{Kind: KindIO, Op: "move", Path: src, Message: "copied but failed to remove source", Err: err}
	}

	o.Logger.Info("Item moved across volumes", zap.String("from", src), zap.String("to", target))
	return target, nil
}

func (o *OperationsOps) rename(oldpath, newpath string) error {
	if o.renameFn != nil {
		return o.renameFn(oldpath, newpath)
	}
	return os.Rename(oldpath, newpath)
}

// writableItem validates the item itself for writing. For a symlink the
// link is the item: its parent must be writable and the target is left alone.
func (o *OperationsOps) writableItem(path string) (string, error) {
	if path == "" {
		return o.Validator.Writable(path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", &Error{Kind: KindInvalidPath, Path: path, Message: "invalid or inaccessible path", Err: err}
	}
	info, err := os.Lstat(abs)
	if err != nil || info.Mode()&fs.ModeSymlink == 0 {
		return o.Validator.Writable(abs)
	}
	parent, err := o.Validator.Writable(filepath.Dir(abs))
	if err != nil {
		return "", err
	}
	return filepath.Join(parent, filepath.Base(abs)), nil
}

func (o *OperationsOps) refuseHome(op, path string) error {
	if home, err := o.Validator.Home(); err == nil && home == path {
		return newError(KindAccessDenied, op, path, "the home directory itself cannot be modified")
	}
	return nil
}

// transferEnds validates both ends of a copy or move. Ends that do not
// resolve inside the boundary are reported as missing; ends outside it are
// denied whether or not they exist.
func (o *OperationsOps) transferEnds(op, source, destDir string, resolveSource func(string) (string, error)) (string, string, error) {
	if source == "" {
		return "", "", newError(KindSourceMissing, op, source, "source item does not exist")
	}
	src, err := resolveSource(source)
	if err != nil {
		return "", "", o.missing(op, source, err, KindSourceMissing, "source item does not exist")
	}
	if _, err := os.Stat(src); err != nil {
		return "", "", newError(KindSourceMissing, op, source, "source item does not exist")
	}

	if destDir == "" {
		return "", "", newError(KindDestMissing, op, destDir, "destination directory does not exist")
	}
	dst, err := o.Validator.Writable(destDir)
	if err != nil {
		return "", "", o.missing(op, destDir, err, KindDestMissing, "destination directory does not exist")
	}
	if info, err := os.Stat(dst); err != nil || !info.IsDir() {
		return "", "", newError(KindDestMissing, op, destDir, "destination directory does not exist")
	}
	return src, dst, nil
}

// missing turns an unresolvable path inside the boundary into kind
func (o *OperationsOps) missing(op, path string, err error, kind Kind, message string) error {
	if KindOf(err) != KindInvalidPath {
		return err
	}
	if denied := o.Validator.denial(path); denied != nil {
		return denied
	}
	return newError(kind, op, path, message)
}

// transferTarget computes destDir/name and rejects conflicts and copies of
// a directory into itself
func transferTarget(op, src, name, destDir string) (string, error) {
	target := filepath.Join(destDir, name)
	if exists(target) {
		return "", newError(KindAlreadyExists, op, target, "an item with this name already exists in destination")
	}
	if info, err := os.Lstat(src); err == nil && info.IsDir() && paths.Within(src, destDir) {
		return "", newError(KindInvalidPath, op, destDir, "cannot place a directory inside itself")
	}
	return target, nil
}

// copyItem copies src to dst depth-first. Symlinks inside a tree are
// recreated, not followed.
func copyItem(ctx context.Context, src, dst string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	info, err := os.Lstat(src)
	if err != nil {
		return err
	}
	switch {
	case info.Mode()&fs.ModeSymlink != 0:
		link, err := os.Readlink(src)
		if err != nil {
			return err
		}
		return os.Symlink(link, dst)
	case info.IsDir():
		return copyTree(ctx, src, dst, info.Mode().Perm())
	case info.Mode().IsRegular():
		return copyFile(src, dst, info.Mode().Perm())
	default:
		// devices, sockets and pipes are not copied
		return nil
	}
}

func copyTree(ctx context.Context, src, dst string, perm fs.FileMode) error {
	if err := os.MkdirAll(dst, perm|0o700); err != nil {
		return err
	}
	children, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	for _, child := range children {
		if err := copyItem(ctx, filepath.Join(src, child.Name()), filepath.Join(dst, child.Name())); err != nil {
			return err
		}
	}
	return nil
}

func copyFile(src, dst string, perm fs.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// removeTree deletes a directory depth-first, checking ctx between entries
func removeTree(ctx context.Context, dir string) error {
	children, err := os.ReadDir(dir)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	for _, child := range children {
		if err := ctx.Err(); err != nil {
			return err
		}
		path := filepath.Join(dir, child.Name())
		if child.IsDir() {
			err = removeTree(ctx, path)
		} else {
			err = os.Remove(path)
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	if err := os.Remove(dir); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func isCrossDevice(err error) bool {
	return errors.Is(err, syscall.EXDEV)
}

// caseOnlyRename reports whether target is the same file as item under a
// name differing only in case (case-insensitive volumes)
func caseOnlyRename(item, target string) bool {
	if !strings.EqualFold(filepath.Base(item), filepath.Base(target)) {
		return false
	}
	a, errA := os.Lstat(item)
	b, errB := os.Lstat(target)
	return errA == nil && errB == nil && os.SameFile(a, b)
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

func absOrSelf(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
