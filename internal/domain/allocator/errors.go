package allocator

import (
	"fmt"
	"strings"
)

// SchemaError reports required input columns missing from the export.
// No partial output is produced when the schema is incomplete.
type SchemaError struct {
	Columns []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("input is missing required columns: %s", strings.Join(e.Columns, ", "))
}

// MalformedValueError reports a numeric cell that could not be parsed.
// The whole batch fails rather than skipping the row, so aggregate sums
// are never silently short.
type MalformedValueError struct {
	Line   int // 1-based line number in the source, header included
	Column string
	Value  string
}

func (e *MalformedValueError) Error() string {
	return fmt.Sprintf("line %d: column %q has malformed value %q", e.Line, e.Column, e.Value)
}
