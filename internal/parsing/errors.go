// Package parsing holds the typed errors and response clean-up helpers shared by
// the model-backed screening components.
package parsing

import (
	"context"
	"errors"
	"fmt"
)

// APICallError is a failed model request made while screening. Op names the
// screening step (augment candidate, compare candidates) and Model the model
// that was asked, when known.
type APICallError struct {
	Op    string
	Model string
	Cause error
}

func (e *APICallError) Error() string {
	step := e.Op
	if e.Model != "" {
		step = fmt.Sprintf("%s [%s]", e.Op, e.Model)
	}
	if e.Cause != nil {
		return fmt.Sprintf("model call failed: %s: %v", step, e.Cause)
	}
	return fmt.Sprintf("model call failed: %s", step)
}

func (e *APICallError) Unwrap() error { return e.Cause }

// TimedOut reports whether the request ran past its deadline.
func (e *APICallError) TimedOut() bool {
	return errors.Is(e.Cause, context.DeadlineExceeded)
}

// ParseError is model output that could not be read as candidate scores.
// Response keeps the raw text for logging.
type ParseError struct {
	Message  string
	Response string
	Cause    error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("unreadable model output: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("unreadable model output: %s", e.Message)
}

func (e *ParseError) Unwrap() error { return e.Cause }

// ValidationError is model output that was readable but unusable, such as an
// empty candidate comparison.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("unusable model output in %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("unusable model output: %s", e.Message)
}
