package schema

import (
	"path"
	"path/filepath"
	"strings"
)

// Source identifies where a form document came from so loaders and error
// reports can name it without the parser knowing how it was read.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates the places a document can be read from.
type SourceKind string

const (
	SourceKindFile   SourceKind = "file"
	SourceKindFS     SourceKind = "fs"
	SourceKindInline SourceKind = "inline"
)

type fileSource struct {
	path string
}

func (s fileSource) Location() string { return s.path }

func (s fileSource) Kind() SourceKind { return SourceKindFile }

// SourceFromFile returns a Source pointing to a file path.
func SourceFromFile(name string) Source {
	return fileSource{path: filepath.Clean(name)}
}

type fsSource struct {
	name string
}

func (s fsSource) Location() string { return s.name }

func (s fsSource) Kind() SourceKind { return SourceKindFS }

// SourceFromFS returns a Source identifying an entry inside an fs.FS.
func SourceFromFS(name string) Source {
	return fsSource{name: path.Clean(name)}
}

type inlineSource struct {
	label string
}

func (s inlineSource) Location() string { return s.label }

func (s inlineSource) Kind() SourceKind { return SourceKindInline }

// SourceInline labels text supplied directly, such as a pasted textarea.
func SourceInline(label string) Source {
	label = strings.TrimSpace(label)
	if label == "" {
		label = "inline"
	}
	return inlineSource{label: label}
}
