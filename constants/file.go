package constants

import "strings"

// Canonical format names stored in the format field of fill jobs.
const (
	PDF  = "PDF"
	DOCX = "DOCX"
	XLSX = "XLSX"
	XLS  = "XLS"
	TEXT = "TEXT"
)

// AllowedExtensions holds the default allowed file extensions for tender document ingestion.
var AllowedExtensions = map[string]struct{}{
	"pdf":  {},
	"docx": {},
	"xlsx": {},
	"xls":  {},
	"txt":  {},
	"csv":  {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MapExtToFormat maps a file extension to its canonical format name.
// Returns "" for unsupported extensions.
func MapExtToFormat(ext string) string {
	switch NormalizeExt(ext) {
	case "pdf":
		return PDF
	case "docx":
		return DOCX
	case "xlsx":
		return XLSX
	case "xls":
		return XLS
	case "txt", "csv":
		return TEXT
	default:
		return ""
	}
}
