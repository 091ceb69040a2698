package loader

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-formschema/pkg/parser"
	"github.com/goliatone/go-formschema/pkg/schema"
)

// Entry is one parsed document. Exactly one of Schema and Errors is set.
type Entry struct {
	Document schema.Document
	Schema   *schema.Schema
	Errors   schema.ParseErrors
}

// Valid reports whether the document parsed cleanly.
func (e Entry) Valid() bool {
	return e.Schema != nil && len(e.Errors) == 0
}

// Store keeps the parsed documents of a directory tree keyed by path. It is
// safe for concurrent readers when treated as immutable after construction.
type Store struct {
	entries map[string]Entry
	order   []string
}

// LoadFS walks fsys and parses every YAML file it finds. Documents that fail
// to parse are recorded with their errors rather than aborting the walk;
// only I/O problems and empty files are returned as errors. A nil fsys
// yields an empty store.
func LoadFS(fsys fs.FS, options ...parser.Option) (*Store, error) {
	store := &Store{entries: make(map[string]Entry)}
	if fsys == nil {
		return store, nil
	}
	p := parser.New(options...)

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isSchemaFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("loader: read %s: %w", path, err)
		}
		doc, err := schema.NewDocument(schema.SourceFromFS(path), data)
		if err != nil {
			return fmt.Errorf("loader: %w", err)
		}

		store.entries[path] = parseEntry(p, doc)
		store.order = append(store.order, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// LoadFile reads and parses a single document from disk.
func LoadFile(name string, options ...parser.Option) (Entry, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return Entry{}, fmt.Errorf("loader: read %s: %w", name, err)
	}
	doc, err := schema.NewDocument(schema.SourceFromFile(name), data)
	if err != nil {
		return Entry{}, fmt.Errorf("loader: %w", err)
	}
	return parseEntry(parser.New(options...), doc), nil
}

func parseEntry(p *parser.Parser, doc schema.Document) Entry {
	result := p.ParseDocument(doc)
	return Entry{Document: doc, Schema: result.Data, Errors: result.Errors}
}

// Entry returns the parsed document stored under path.
func (s *Store) Entry(path string) (Entry, bool) {
	if s == nil {
		return Entry{}, false
	}
	entry, ok := s.entries[path]
	return entry, ok
}

// Schema returns the schema of the first valid document whose name (base
// name without extension) matches name.
func (s *Store) Schema(name string) (*schema.Schema, bool) {
	if s == nil {
		return nil, false
	}
	for _, path := range s.order {
		entry := s.entries[path]
		if entry.Document.Name() == name && entry.Valid() {
			return entry.Schema, true
		}
	}
	return nil, false
}

// Paths lists document paths in walk (lexical) order.
func (s *Store) Paths() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.order...)
}

// Failed returns the entries that did not parse, in walk order.
func (s *Store) Failed() []Entry {
	if s == nil {
		return nil
	}
	var out []Entry
	for _, path := range s.order {
		if entry := s.entries[path]; !entry.Valid() {
			out = append(out, entry)
		}
	}
	return out
}

// Empty reports whether the store holds any documents.
func (s *Store) Empty() bool {
	return s == nil || len(s.entries) == 0
}

func isSchemaFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}
