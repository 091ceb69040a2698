package testsupport

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formschema/pkg/parser"
	"github.com/goliatone/go-formschema/pkg/schema"
)

// LoadDocument reads a fixture and builds a schema.Document using a file
// source. Testing helpers fail the test on error to keep callers concise.
func LoadDocument(t *testing.T, path string) schema.Document {
	t.Helper()

	doc, err := LoadDocumentFromPath(path)
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	return doc
}

// LoadDocumentFromPath returns a Document without requiring testing.T.
func LoadDocumentFromPath(path string) (schema.Document, error) {
	if path == "" {
		return schema.Document{}, errors.New("testsupport: document path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return schema.Document{}, fmt.Errorf("testsupport: read document: %w", err)
	}
	doc, err := schema.NewDocument(schema.SourceFromFile(path), data)
	if err != nil {
		return schema.Document{}, fmt.Errorf("testsupport: new document: %w", err)
	}
	return doc, nil
}

// MustParse parses source and fails the test when the parse does not
// succeed, printing the formatted error list.
func MustParse(t *testing.T, source string, options ...parser.Option) *schema.Schema {
	t.Helper()

	result := parser.New(options...).Parse(source)
	if !result.Success {
		t.Fatalf("parse failed:\n%s", schema.FormatParseErrors(result.Errors))
	}
	return result.Data
}

// MustFail parses source and fails the test when the parse succeeds.
func MustFail(t *testing.T, source string, options ...parser.Option) schema.ParseErrors {
	t.Helper()

	result := parser.New(options...).Parse(source)
	if result.Success {
		t.Fatalf("expected parse to fail, got schema with screens %v", schema.ScreenNames(result.Data))
	}
	if result.Data != nil {
		t.Fatalf("failed parse must not carry data")
	}
	if len(result.Errors) == 0 {
		t.Fatalf("failed parse must carry at least one error")
	}
	return result.Errors
}

// ErrorTypes lists the error kinds of errs in order.
func ErrorTypes(errs []schema.ParseError) []schema.ErrorType {
	out := make([]schema.ErrorType, len(errs))
	for idx, err := range errs {
		out[idx] = err.Type
	}
	return out
}

// FindError returns the first error of kind.
func FindError(errs []schema.ParseError, kind schema.ErrorType) (schema.ParseError, bool) {
	for _, err := range errs {
		if err.Type == kind {
			return err, true
		}
	}
	return schema.ParseError{}, false
}

// WriteGolden writes value as indented JSON when UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	WriteMaybeGolden(t, path, payload)
}

// CompareJSONGolden marshals value and compares it with the JSON golden at
// path, ignoring key order. With UPDATE_GOLDENS set the golden is rewritten
// instead.
func CompareJSONGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") != "" {
		WriteGolden(t, path, value)
		return
	}
	payload, err := json.Marshal(value)
	if err != nil {
		t.Fatalf("marshal value: %v", err)
	}
	var got, want any
	if err := json.Unmarshal(payload, &got); err != nil {
		t.Fatalf("decode value: %v", err)
	}
	if err := json.Unmarshal(MustReadGolden(t, path), &want); err != nil {
		t.Fatalf("decode golden %s: %v", path, err)
	}
	if diff := CompareGolden(want, got); diff != "" {
		t.Fatalf("golden %s mismatch (-want +got):\n%s", path, diff)
	}
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}
