package playground

import (
	"fmt"

	"github.com/openrag/llm-playground/internal/llm"
)

// ValidationError reports input rejected before any backend call was made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// CallError reports a failure of the backend call itself.
type CallError struct {
	Model   Model
	Kind    llm.ErrorKind
	Type    string // Go type of the underlying error
	Message string
	Err     error
}

func newCallError(model Model, err error) *CallError {
	return &CallError{
		Model:   model,
		Kind:    llm.ClassifyError(err),
		Type:    fmt.Sprintf("%T", err),
		Message: err.Error(),
		Err:     err,
	}
}

func (e *CallError) Error() string {
	return fmt.Sprintf("%s: %s", e.Model, e.Message)
}

func (e *CallError) Unwrap() error { return e.Err }
