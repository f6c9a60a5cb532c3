package filesystem

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/finder/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/finder/backend/internal/shared/types"
)

// TimeLayout formats modification times (always UTC)
const TimeLayout = "2006-01-02 15:04:05"

// FileEntry is one directory entry as the UI sees it
type FileEntry struct {
	Name     string  `json:"name"`
	Path     string  `json:"path"`
	IsDir    bool    `json:"is_dir"`
	Size     *int64  `json:"size,omitempty"`
	Modified *string `json:"modified,omitempty"`
	Icon     string  `json:"icon"`
}

// DirectoryListing is the result of listing one directory
type DirectoryListing struct {
	CurrentPath string      `json:"current_path"`
	ParentPath  *string     `json:"parent_path,omitempty"`
	Entries     []FileEntry `json:"entries"`
	Skipped     int         `json:"skipped"`
}

// FilePreview is the result of previewing a file.
// Encoding is text for FileType text, hex for binary and base64 for image.
type FilePreview struct {
	FileType string `json:"file_type"`
	Content  string `json:"content"`
	Size     int64  `json:"size"`
	Encoding string `json:"encoding"`
	MIMEType string `json:"mime_type,omitempty"`
	Charset  string `json:"charset,omitempty"`
}

// Recorder receives operation telemetry
type Recorder interface {
	RecordFilesystemOp(op, status string, duration time.Duration)
	RecordFilesystemError(op, kind string)
	RecordSkipped(op string, count int)
}

type nopRecorder struct{}

func (nopRecorder) RecordFilesystemOp(string, string, time.Duration) {}
func (nopRecorder) RecordFilesystemError(string, string)             {}
func (nopRecorder) RecordSkipped(string, int)                        {}

// FilesystemOps holds what every operation group shares
type FilesystemOps struct {
	Validator *Validator
	Logger    *logging.Logger
	Metrics   Recorder
}

// NewOps builds shared state, substituting no-op logging and metrics for nil
func NewOps(validator *Validator, logger *logging.Logger, metrics Recorder) *FilesystemOps {
	if logger == nil {
		logger = &logging.Logger{Logger: zap.NewNop()}
	}
	if metrics == nil {
		metrics = nopRecorder{}
	}
	return &FilesystemOps{Validator: validator, Logger: logger, Metrics: metrics}
}

// observe records duration and outcome of op, returning err unchanged
func (ops *FilesystemOps) observe(op string, start time.Time, err error) error {
	status := "success"
	if err != nil {
		status = "error"
		kind := KindOf(err)
		ops.Metrics.RecordFilesystemError(op, kind.String())
		if kind == KindAccessDenied {
			ops.Logger.Warn("Access denied", zap.String("op", op), zap.Error(err))
		} else {
			ops.Logger.Debug("Operation failed", zap.String("op", op), zap.Error(err))
		}
	}
	ops.Metrics.RecordFilesystemOp(op, status, time.Since(start))
	return err
}

// Success helper
func Success(data map[string]interface{}) (*types.Result, error) {
	return &types.Result{Success: true, Data: data}, nil
}

// Failure helper
func Failure(message string) (*types.Result, error) {
	msg := message
	return &types.Result{Success: false, Error: &msg}, nil
}

// FailureFrom converts an operation error into a result carrying its kind
func FailureFrom(err error) (*types.Result, error) {
	msg := err.Error()
	code := KindOf(err).String()
	return &types.Result{Success: false, Error: &msg, Code: &code}, nil
}

// entryFor builds a FileEntry. info may be nil when metadata could not be
// read; isDir must then come from the directory entry.
func entryFor(path string, isDir bool, info os.FileInfo) FileEntry {
	name := filepath.Base(path)
	entry := FileEntry{
		Name:  name,
		Path:  path,
		IsDir: isDir,
		Icon:  IconFor(name, isDir),
	}
	if info != nil {
		if !isDir {
			size := info.Size()
			entry.Size = &size
		}
		modified := info.ModTime().UTC().Format(TimeLayout)
		entry.Modified = &modified
	}
	return entry
}

// sortEntries orders directories first, then case-insensitively by name
func sortEntries(entries []FileEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].IsDir != entries[j].IsDir {
			return entries[i].IsDir
		}
		return strings.ToLower(entries[i].Name) < strings.ToLower(entries[j].Name)
	})
}
