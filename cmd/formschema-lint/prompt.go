package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"github.com/goliatone/go-formschema/pkg/schema"
)

var errAborted = errors.New("formschema-lint: aborted")

// screenPicker abstracts the terminal prompt so browsing can be tested
// without a real terminal.
type screenPicker interface {
	Pick(ctx context.Context, message string, options []string) (int, error)
}

type surveyPicker struct{}

func (surveyPicker) Pick(ctx context.Context, message string, options []string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	var out string
	prompt := &survey.Select{
		Message: message,
		Options: options,
	}
	if err := survey.AskOne(prompt, &out); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return 0, errAborted
		}
		return 0, err
	}
	for idx, option := range options {
		if option == out {
			return idx, nil
		}
	}
	return -1, nil
}

func browse(ctx context.Context, picker screenPicker, r report, w io.Writer) error {
	names := schema.ScreenNames(r.entry.Schema)
	if len(names) == 0 {
		return nil
	}
	idx, err := picker.Pick(ctx, fmt.Sprintf("%s: choose a screen", r.location), names)
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(names) {
		return fmt.Errorf("no screen selected")
	}

	screen, _ := r.entry.Schema.Screen(names[idx])
	fmt.Fprintf(w, "%s (%s)\n", screen.Title, screen.Name)
	printFields(w, screen.Fields, 1)
	if screen.Wizard != nil {
		for _, step := range screen.Wizard.Steps {
			fmt.Fprintf(w, "  step %s\n", step.ID)
			printFields(w, step.Fields, 2)
		}
	}
	for _, action := range screen.Actions {
		fmt.Fprintf(w, "  [%s] %s (%s)\n", action.Style, action.Label, action.Type)
	}
	return nil
}

func printFields(w io.Writer, fields []schema.Field, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, field := range fields {
		marker := ""
		if field.Required {
			marker = " *"
		}
		fmt.Fprintf(w, "%s- %s: %s%s\n", indent, field.ID, field.Type, marker)
		if field.Label != "" && field.Label != field.ID {
			fmt.Fprintf(w, "%s  %s\n", indent, field.Label)
		}
		if field.Repeater != nil {
			printFields(w, field.Repeater.ItemFields, depth+1)
		}
		if field.Table != nil {
			for _, col := range field.Table.Columns {
				fmt.Fprintf(w, "%s  | %s\n", indent, col.Label)
			}
		}
	}
}
