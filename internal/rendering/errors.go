package rendering

import "fmt"

// Render stages reported by RenderError.
const (
	StageDocument = "document"
	StageTemplate = "template"
	StageText     = "text"
)

// RenderError reports which rendering stage failed and why.
type RenderError struct {
	Stage   string
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render %s: %s: %v", e.Stage, e.Message, e.Cause)
	}
	return fmt.Sprintf("render %s: %s", e.Stage, e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
