package diag

import (
	"markxs/internal/source"
)

// Note attaches secondary context to a diagnostic. Each note should add new
// information rather than repeating the diagnostic message.
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is the central record produced by all parse phases. Once
// appended to a Bag it is never mutated.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}
