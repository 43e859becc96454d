package render

import (
	"errors"
	"fmt"
)

// Format names an output format.
type Format string

// Output formats supported by the renderers.
const (
	FormatHTML Format = "html"
	FormatXML  Format = "xml"
)

// ErrUnknownFormat is returned for format names that have no renderer.
var ErrUnknownFormat = errors.New("unknown format")

// ParseFormat parses a format name. The empty string selects HTML.
func ParseFormat(name string) (Format, error) {
	switch name {
	case "html", "":
		return FormatHTML, nil
	case "xml":
		return FormatXML, nil
	default:
		return "", fmt.Errorf("%w %q; valid formats: html, xml", ErrUnknownFormat, name)
	}
}

// String returns the format name.
func (f Format) String() string {
	return string(f)
}

// IsValid reports whether f is a known format.
func (f Format) IsValid() bool {
	switch f {
	case FormatHTML, FormatXML:
		return true
	default:
		return false
	}
}

// Extension returns the file extension, dot included, for output in this format.
func (f Format) Extension() string {
	if f == FormatXML {
		return ".xml"
	}
	return ".html"
}
