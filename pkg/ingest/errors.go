package ingest

import (
	"fmt"
	"strings"
)

// MissingColumnsError is raised when the input header lacks one or more of
// the required columns. It aborts the whole run before any insert.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("csv missing required columns: %s", strings.Join(e.Columns, ", "))
}

// ShiftMappingError is raised when a Shift label has no entry in the fixed
// shift mapping. It names every offending value and aborts the whole run.
type ShiftMappingError struct {
	Labels []string
}

func (e *ShiftMappingError) Error() string {
	return fmt.Sprintf("unrecognized shift values (update the shift mapping): %s",
		strings.Join(e.Labels, ", "))
}
