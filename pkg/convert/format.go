package convert

import (
	"bytes"
	"path/filepath"
	"strings"
)

// Format represents a preset file format
type Format string

const (
	FormatFUSE    Format = "fuse"
	FormatTone    Format = "tone"
	FormatUnknown Format = "unknown"
)

// DetectFormat detects the format of a file based on extension
func DetectFormat(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".fuse", ".xml":
		return FormatFUSE
	case ".json":
		return FormatTone
	default:
		return FormatUnknown
	}
}

// DetectFormatFromContent detects format from file content
func DetectFormatFromContent(data []byte) Format {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return FormatUnknown
	}
	switch trimmed[0] {
	case '<':
		return FormatFUSE
	case '{':
		return FormatTone
	}
	return FormatUnknown
}
