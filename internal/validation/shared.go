package validation

import (
	"fmt"
	"slices"
	"strings"
)

// Error collects per-field validation messages keyed by JSON field name.
type Error struct {
	Fields map[string]string
}

// Error joins the field messages in field order so the text is stable.
func (e *Error) Error() string {
	names := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		names = append(names, field)
	}
	slices.Sort(names)

	msgs := make([]string, 0, len(names))
	for _, field := range names {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, e.Fields[field]))
	}
	return strings.Join(msgs, "; ")
}
