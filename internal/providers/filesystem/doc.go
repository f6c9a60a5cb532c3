// Package filesystem implements path-validated file management for the
// Finder backend.
//
// Every path is canonicalized and classified before any work happens:
//   - Writable: inside the home directory
//   - Readable: inside a read-only root (e.g. /Applications)
//   - Denied: anywhere else
//
// The package is organized into operation groups sharing FilesystemOps:
//   - directory: listing, home directory and item info
//   - operations: create folder, delete, rename, copy, move
//   - search: recursive name search and glob matching
//   - preview: text, hex and image previews
//
// Failures are *Error values carrying a Kind; use KindOf or errors.Is with
// the Err* sentinels to classify them.
//
// Example Usage:
//
//	validator := filesystem.NewValidator(filesystem.DefaultBoundary())
//	ops := filesystem.NewOps(validator, logger, metrics)
//	listing, err := (&filesystem.DirectoryOps{FilesystemOps: ops}).List(ctx, "/Users/me/Documents")
package filesystem
