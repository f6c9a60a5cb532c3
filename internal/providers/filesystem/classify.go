package filesystem

import "strings"

// Preview categories
const (
	CategoryText        = "text"
	CategoryImage       = "image"
	CategoryUnsupported = "unsupported"
)

var iconByExtension = map[string]string{
	"txt": "document-text", "md": "document-text", "rtf": "document-text",
	"pdf": "document", "doc": "document", "docx": "document",
	"xls": "table", "xlsx": "table",
	"ppt": "presentation", "pptx": "presentation",
	"jpg": "photo", "jpeg": "photo", "png": "photo", "gif": "photo", "bmp": "photo", "svg": "photo",
	"mp4": "film", "avi": "film", "mov": "film", "wmv": "film", "flv": "film",
	"mp3": "musical-note", "wav": "musical-note", "flac": "musical-note", "aac": "musical-note",
	"zip": "archive-box", "rar": "archive-box", "7z": "archive-box", "tar": "archive-box", "gz": "archive-box",
	"exe": "cog", "app": "cog", "dmg": "cog",
	"html": "code-bracket", "css": "code-bracket", "js": "code-bracket", "ts": "code-bracket", "json": "code-bracket",
	"rs": "code-bracket", "py": "code-bracket", "java": "code-bracket", "cpp": "code-bracket", "c": "code-bracket",
}

var previewCategories = map[string]string{}

func init() {
	text := []string{
		"txt", "md", "rtf", "log", "csv", "xml", "yaml", "yml", "toml", "ini", "conf",
		"html", "css", "js", "ts", "json", "jsx", "tsx",
		"rs", "py", "java", "cpp", "c", "h", "hpp", "go", "php", "rb", "swift",
		"sh", "bash", "zsh", "fish", "ps1", "bat", "cmd",
	}
	image := []string{
		"jpg", "jpeg", "png", "gif", "bmp", "webp", "svg", "ico",
		"tiff", "tif", "raw", "cr2", "nef", "arw",
	}
	for _, ext := range text {
		previewCategories[ext] = CategoryText
	}
	for _, ext := range image {
		previewCategories[ext] = CategoryImage
	}
}

// Extension returns the lowercase text after the last dot of name, or the
// whole lowercased name when it has no dot
func Extension(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return strings.ToLower(name[i+1:])
	}
	return strings.ToLower(name)
}

// IconFor maps an entry to its semantic icon tag
func IconFor(name string, isDir bool) string {
	if isDir {
		return "folder"
	}
	if icon, ok := iconByExtension[Extension(name)]; ok {
		return icon
	}
	return "document"
}

// PreviewCategory maps a lowercase extension to text, image or unsupported
func PreviewCategory(ext string) string {
	if category, ok := previewCategories[strings.ToLower(ext)]; ok {
		return category
	}
	return CategoryUnsupported
}
