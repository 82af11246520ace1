package export

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Format is an output encoding
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

var ErrUnsupportedFormat = errors.New("unsupported format")

// Formats lists every supported format
func Formats() []Format {
	return []Format{FormatCSV, FormatJSON, FormatYAML, FormatTOML}
}

// ParseFormat resolves a format name. The empty string means CSV.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

// FormatFromPath infers the format from a file extension, ignoring a
// trailing .gz.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(strings.TrimSuffix(path, ".gz"))
	if ext == "" {
		return "", fmt.Errorf("%w: no extension in %q", ErrUnsupportedFormat, path)
	}
	return ParseFormat(ext[1:])
}

// ContentType returns the MIME type for HTTP responses
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatYAML:
		return "application/yaml"
	case FormatTOML:
		return "application/toml"
	default:
		return "text/csv"
	}
}
