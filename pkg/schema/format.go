package schema

import (
	"fmt"
	"strings"
)

// FormatParseErrors renders one line per error, in accumulation order. Paths
// are included when known and positions are shown 1-indexed.
func FormatParseErrors(errs []ParseError) string {
	if len(errs) == 0 {
		return ""
	}
	lines := make([]string, len(errs))
	for idx, err := range errs {
		lines[idx] = formatParseError(err)
	}
	return strings.Join(lines, "\n")
}

func formatParseError(err ParseError) string {
	var b strings.Builder
	if err.Type != "" {
		fmt.Fprintf(&b, "[%s] ", err.Type)
	}
	b.WriteString(strings.TrimSpace(err.Message))

	var location []string
	if path := strings.TrimSpace(err.Path); path != "" {
		location = append(location, "at "+path)
	}
	if err.Pos != nil {
		location = append(location, fmt.Sprintf("line %d, column %d", err.Pos.Line+1, err.Pos.Column+1))
	}
	if len(location) > 0 {
		fmt.Fprintf(&b, " (%s)", strings.Join(location, ", "))
	}
	return b.String()
}
