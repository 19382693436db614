package resume

import "fmt"

// ErrMissingRequiredField is returned by Assemble when a required personal
// field is empty. Records are validated before they are stored, so this
// signals a broken caller rather than bad user input.
type ErrMissingRequiredField struct {
	Field string
}

func (e *ErrMissingRequiredField) Error() string {
	return fmt.Sprintf("cannot assemble resume: personalInfo.%s is required", e.Field)
}
