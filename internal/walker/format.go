package walker

import (
	"path/filepath"
	"strings"
)

// Format is the kind of document a file holds.
type Format string

const (
	FormatUnknown  Format = ""
	FormatPDF      Format = "pdf"
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

var extFormats = map[string]Format{
	".pdf":      FormatPDF,
	".txt":      FormatText,
	".text":     FormatText,
	".md":       FormatMarkdown,
	".markdown": FormatMarkdown,
	".html":     FormatHTML,
	".htm":      FormatHTML,
}

// DetectFormat maps a file name to its document format by extension.
func DetectFormat(name string) Format {
	return extFormats[strings.ToLower(filepath.Ext(name))]
}

// IsText reports whether the format is stored as plain text on disk.
func (f Format) IsText() bool {
	return f == FormatText || f == FormatMarkdown || f == FormatHTML
}
