package export

import (
	"fmt"
	"strings"

	"github.com/c360studio/semstreams/message"
	ssexport "github.com/c360studio/semstreams/vocabulary/export"
)

// Format specifies the output serialization format.
type Format string

const (
	// FormatTurtle produces Turtle (.ttl) output.
	FormatTurtle Format = "turtle"

	// FormatNTriples produces N-Triples (.nt) output.
	FormatNTriples Format = "ntriples"

	// FormatJSONLD produces JSON-LD (.jsonld) output.
	FormatJSONLD Format = "jsonld"
)

// FormatInfo provides metadata about an export format.
type FormatInfo struct {
	// Name is the format identifier.
	Name Format

	// MIMEType is the standard MIME type.
	MIMEType string

	// Extension is the file extension (with dot).
	Extension string

	// Description describes the format.
	Description string

	serializer ssexport.Format
}

// FormatRegistry contains metadata for all supported formats.
var FormatRegistry = map[Format]FormatInfo{
	FormatTurtle: {
		Name:        FormatTurtle,
		MIMEType:    "text/turtle",
		Extension:   ".ttl",
		Description: "Turtle - Terse RDF Triple Language",
		serializer:  ssexport.Turtle,
	},
	FormatNTriples: {
		Name:        FormatNTriples,
		MIMEType:    "application/n-triples",
		Extension:   ".nt",
		Description: "N-Triples - Line-based RDF format",
		serializer:  ssexport.NTriples,
	},
	FormatJSONLD: {
		Name:        FormatJSONLD,
		MIMEType:    "application/ld+json",
		Extension:   ".jsonld",
		Description: "JSON-LD - JSON for Linked Data",
		serializer:  ssexport.JSONLD,
	},
}

// GetFormatInfo returns metadata for a format.
func GetFormatInfo(format Format) (FormatInfo, bool) {
	info, ok := FormatRegistry[format]
	return info, ok
}

// ParseFormat validates a format name. The empty string selects Turtle.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f == "" {
		return FormatTurtle, nil
	}
	if _, ok := FormatRegistry[f]; !ok {
		return "", fmt.Errorf("unsupported format: %s (valid: turtle, ntriples, jsonld)", s)
	}
	return f, nil
}

// Serialize renders triples in the given format. baseIRI anchors any
// subject that is not already an absolute IRI.
func Serialize(triples []message.Triple, format Format, baseIRI string) (string, error) {
	info, ok := GetFormatInfo(format)
	if !ok {
		return "", fmt.Errorf("serialize triples: unsupported format: %s", format)
	}
	out, err := ssexport.SerializeToString(triples, info.serializer, ssexport.WithBaseIRI(baseIRI))
	if err != nil {
		return "", fmt.Errorf("serialize triples: %w", err)
	}
	return out, nil
}
