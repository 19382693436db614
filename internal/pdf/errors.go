package pdf

import "fmt"

// RenderError is returned when no PDF could be produced.
type RenderError struct {
	Message  string
	Attempts int
	Cause    error
}

func (e *RenderError) Error() string {
	if e.Attempts > 0 {
		return fmt.Sprintf("pdf render error after %d attempt(s): %s: %v", e.Attempts, e.Message, e.Cause)
	}
	return fmt.Sprintf("pdf render error: %s: %v", e.Message, e.Cause)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
