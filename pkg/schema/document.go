package schema

import (
	"errors"
	"path"
	"strings"
)

// Document pairs raw YAML text with its origin. The parser only ever sees the
// text; the source is kept for error reports and store lookups.
type Document struct {
	source Source
	raw    []byte
}

// NewDocument wraps raw YAML. Both a source and a non-blank payload are
// required.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("schema: source is required")
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return Document{}, errors.New("schema: document " + src.Location() + " is empty")
	}
	return Document{source: src, raw: append([]byte(nil), raw...)}, nil
}

// Source returns the document origin.
func (d Document) Source() Source {
	return d.source
}

// Raw returns a copy of the YAML payload.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

// Location returns the origin identifier, or "" when unknown.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}

// Name derives a short document name from its location: the base name
// without the YAML extension.
func (d Document) Name() string {
	base := path.Base(strings.ReplaceAll(d.Location(), "\\", "/"))
	for _, ext := range []string{".yaml", ".yml"} {
		if strings.HasSuffix(strings.ToLower(base), ext) {
			return base[:len(base)-len(ext)]
		}
	}
	if base == "." || base == "/" {
		return ""
	}
	return base
}
