package quiz

import "fmt"

// EmptySectionError indicates a section tag matched no questions in the
// bank. The caller must not start a session.
type EmptySectionError struct {
	Section string
}

func (e *EmptySectionError) Error() string {
	return fmt.Sprintf("no questions found for section %q", e.Section)
}

// InvalidIdentifierError indicates the supplied identifier failed the
// minimal validation (must contain "@"). The session is not started.
type InvalidIdentifierError struct {
	Identifier string
}

func (e *InvalidIdentifierError) Error() string {
	return fmt.Sprintf("invalid identifier %q: must contain @", e.Identifier)
}
