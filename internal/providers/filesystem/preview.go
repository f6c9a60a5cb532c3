package filesystem

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"github.com/saintfish/chardet"

	"github.com/GriffinCanCode/finder/backend/internal/shared/types"
)

const (
	// MaxPreviewSize is the largest file that can be previewed (10 MiB)
	MaxPreviewSize = 10 * 1024 * 1024

	// HexPreviewBytes is how much of an undecodable text file is dumped
	HexPreviewBytes = 1024

	charsetSample = 64 * 1024
)

// Preview encodings
const (
	EncodingText   = "text"
	EncodingHex    = "hex"
	EncodingBase64 = "base64"
)

// PreviewOps handles file previews
type PreviewOps struct {
	*FilesystemOps
}

// GetTools returns preview tool definitions
func (p *PreviewOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "filesystem.preview",
			Name:        "Preview File",
			Description: "Read a text or image file for display (max 10MB)",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
			},
			Returns: "object",
		},
	}
}

// Preview reads path and encodes it for display according to its extension
func (p *PreviewOps) Preview(ctx context.Context, path string) (preview *FilePreview, err error) {
	defer func(start time.Time) { err = p.observe("preview", start, err) }(time.Now())

	file, err := p.Validator.Readable(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(file)
	if err != nil {
		return nil, &Error{Kind: KindIO, Op: "preview", Path: file, Message: "failed to get file metadata", Err: err}
	}
	if !info.Mode().IsRegular() {
		return nil, newError(KindNotAFile, "preview", file, "path is not a file")
	}
	size := info.Size()
	if size > MaxPreviewSize {
		return nil, newError(KindTooLarge, "preview", file, "file too large for preview (max 10MB)")
	}

	category := PreviewCategory(Extension(filepath.Base(file)))
	if category == CategoryUnsupported {
		return nil, newError(KindUnsupportedType, "preview", file, "file type not supported for preview")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := readCapped(file)
	if err != nil {
		return nil, err
	}

	mime := mimetype.Detect(data).String()
	if category == CategoryImage {
		return &FilePreview{
			FileType: CategoryImage,
			Content:  base64.StdEncoding.EncodeToString(data),
			Size:     size,
			Encoding: EncodingBase64,
			MIMEType: mime,
		}, nil
	}

	if utf8.Valid(data) {
		return &FilePreview{
			FileType: CategoryText,
			Content:  string(data),
			Size:     size,
			Encoding: EncodingText,
			MIMEType: mime,
		}, nil
	}

	return &FilePreview{
		FileType: "binary",
		Content:  HexDump(data, HexPreviewBytes),
		Size:     size,
		Encoding: EncodingHex,
		MIMEType: mime,
		Charset:  guessCharset(data),
	}, nil
}

// HexDump renders up to limit bytes as lowercase hex pairs separated by
// single spaces
func HexDump(data []byte, limit int) string {
	if len(data) > limit {
		data = data[:limit]
	}
	if len(data) == 0 {
		return ""
	}
	var b strings.Builder
	b.Grow(len(data)*3 - 1)
	for i, c := range data {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(hex.EncodeToString([]byte{c}))
	}
	return b.String()
}

// readCapped reads the whole file, failing if it grew past the preview cap
// after it was stat'ed
func readCapped(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &Error{Kind: KindIO, Op: "preview", Path: path, Message: "failed to read file", Err: err}
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxPreviewSize+1))
	if err != nil {
		return nil, &Error{Kind: KindIO, Op: "preview", Path: path, Message: "failed to read file", Err: err}
	}
	if len(data) > MaxPreviewSize {
		return nil, newError(KindTooLarge, "preview", path, "file too large for preview (max 10MB)")
	}
	return data, nil
}

// guessCharset names the most likely legacy encoding of undecodable text.
// It returns "" when detection is inconclusive.
func guessCharset(data []byte) string {
	if len(data) > charsetSample {
		data = data[:charsetSample]
	}
	best, err := chardet.NewTextDetector().DetectBest(data)
	if err != nil || best == nil {
		return ""
	}
	return best.Charset
}
