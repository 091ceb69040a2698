package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"

	"github.com/goliatone/go-formschema/pkg/loader"
	"github.com/goliatone/go-formschema/pkg/parser"
	"github.com/goliatone/go-formschema/pkg/schema"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, surveyPicker{}))
}

type report struct {
	location string
	entry    loader.Entry
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, picker screenPicker) int {
	flags := flag.NewFlagSet(filepath.Base(os.Args[0]), flag.ContinueOnError)
	flags.SetOutput(stderr)
	asJSON := flags.Bool("json", false, "print each parsed schema as JSON")
	interactive := flags.Bool("interactive", false, "pick a screen and list its fields")
	strict := flags.Bool("strict", false, "treat unregistered field types as failures")
	pageSize := flags.Int("page-size", 0, "page size for tables built from display_fields")
	noSanitize := flags.Bool("no-sanitize", false, "keep icon markup verbatim")
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), "Usage: %s [flags] paths...\n", flags.Name())
		fmt.Fprintf(flags.Output(), "\nValidate YAML form documents and report every problem found.\n\n")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	paths := flags.Args()
	if len(paths) == 0 {
		flags.Usage()
		return 2
	}

	logger := log.New(stderr, "formschema-lint: ", 0)
	options := []parser.Option{
		parser.WithPageSize(*pageSize),
		parser.WithIconSanitizer(!*noSanitize),
	}
	p := parser.New(options...)

	reports, err := collect(paths, options)
	if err != nil {
		logger.Print(err)
		return 1
	}

	failed := 0
	for _, r := range reports {
		if !r.entry.Valid() {
			failed++
			fmt.Fprintf(stderr, "%s:\n%s\n", r.location, schema.FormatParseErrors(r.entry.Errors))
			continue
		}

		warnings := unknownTypes(p, r.entry.Schema)
		for _, warning := range warnings {
			logger.Printf("%s: %s", r.location, warning)
		}
		if *strict && len(warnings) > 0 {
			failed++
			continue
		}

		switch {
		case *asJSON:
			payload, err := json.MarshalIndent(r.entry.Schema, "", "  ")
			if err != nil {
				logger.Printf("%s: encode: %v", r.location, err)
				failed++
				continue
			}
			fmt.Fprintln(stdout, string(payload))
		case !*interactive:
			fmt.Fprintf(stdout, "%s: ok (%d screens)\n", r.location, len(r.entry.Schema.Screens))
		}
	}

	if *interactive && failed == 0 {
		for _, r := range reports {
			if err := browse(ctx, picker, r, stdout); err != nil {
				if errors.Is(err, errAborted) {
					return 0
				}
				logger.Printf("%s: %v", r.location, err)
				return 1
			}
		}
	}

	if failed > 0 {
		return 1
	}
	return 0
}

// collect parses files directly and walks directories for YAML documents.
func collect(paths []string, options []parser.Option) ([]report, error) {
	var out []report
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			entry, err := loader.LoadFile(path, options...)
			if err != nil {
				return nil, err
			}
			out = append(out, report{location: path, entry: entry})
			continue
		}

		store, err := loader.LoadFS(os.DirFS(path), options...)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		for _, name := range store.Paths() {
			entry, _ := store.Entry(name)
			out = append(out, report{location: filepath.Join(path, filepath.FromSlash(name)), entry: entry})
		}
	}
	return out, nil
}

func unknownTypes(p *parser.Parser, s *schema.Schema) []string {
	var out []string
	var visit func(fields []schema.Field)
	visit = func(fields []schema.Field) {
		for _, field := range fields {
			if !p.KnownType(field.Type) {
				out = append(out, fmt.Sprintf("field %q uses unregistered type %q", field.ID, field.Type))
			}
			if field.Repeater != nil {
				visit(field.Repeater.ItemFields)
			}
			if field.Table != nil && field.Table.Filters != nil {
				visit(field.Table.Filters.Fields)
			}
		}
	}
	for _, screen := range s.Screens {
		visit(screen.Fields)
		if screen.Wizard != nil {
			for _, step := range screen.Wizard.Steps {
				visit(step.Fields)
			}
		}
	}
	for _, component := range s.CommonComponents {
		visit(component.Fields)
	}
	return out
}
