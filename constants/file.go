package constants

import "strings"

// FileFormat is the canonical format name derived from an upload's extension.
type FileFormat string

const (
	PDF  FileFormat = "PDF"
	DOCX FileFormat = "DOCX"
	TEXT FileFormat = "TEXT"
)

// AllowedExtensions holds the file extensions the analyzer accepts uploads for.
var AllowedExtensions = map[string]struct{}{
	"pdf":  {},
	"docx": {},
	"doc":  {},
	"txt":  {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MapExtToFormat maps a filename extension to its FileFormat. Unrecognized
// extensions map to TEXT since extraction falls back to a UTF-8 decode of
// the raw bytes.
func MapExtToFormat(ext string) FileFormat {
	switch NormalizeExt(ext) {
	case "pdf":
		return PDF
	case "docx", "doc":
		return DOCX
	default:
		return TEXT
	}
}
