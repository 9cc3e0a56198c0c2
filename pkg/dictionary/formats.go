package dictionary

import (
	"fmt"
	"slices"

	"github.com/bastiangx/phrasematch/internal/utils"
)

// FileFormat represents the pattern file formats
type FileFormat int

const (
	FormatUnknown FileFormat = iota
	FormatText               // key<TAB>text lines
	FormatTOML               // [[entry]] tables
	FormatYAML               // entries: list
)

// FormatInfo contains metadata about a pattern file format
type FormatInfo struct {
	Format      FileFormat
	Description string
	Extensions  []string
}

var supportedFormats = map[FileFormat]FormatInfo{
	FormatText: {
		Format:      FormatText,
		Description: "Plain Text Patterns",
		Extensions:  []string{".txt"},
	},
	FormatTOML: {
		Format:      FormatTOML,
		Description: "TOML Patterns",
		Extensions:  []string{".toml"},
	},
	FormatYAML: {
		Format:      FormatYAML,
		Description: "YAML Patterns",
		Extensions:  []string{".yaml", ".yml"},
	},
}

func (f FileFormat) String() string {
	if info, ok := GetFormatInfo(f); ok {
		return info.Description
	}
	return "Unknown"
}

// DetectFileFormat picks the format from the file extension.
func DetectFileFormat(filename string) (FileFormat, error) {
	ext := utils.Ext(filename)
	for _, format := range []FileFormat{FormatText, FormatTOML, FormatYAML} {
		if slices.Contains(supportedFormats[format].Extensions, ext) {
			return format, nil
		}
	}
	return FormatUnknown, fmt.Errorf("unable to detect format for file %s (extension %q)", filename, ext)
}

// GetFormatInfo returns information about a specific format
func GetFormatInfo(format FileFormat) (FormatInfo, bool) {
	info, exists := supportedFormats[format]
	return info, exists
}
