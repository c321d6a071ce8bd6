package op

import (
	"errors"
	"fmt"

	"github.com/cinder-ml/cinder/internal/tensor"
)

// Common errors.
var (
	ErrUnknownParam      = errors.New("unknown parameter")
	ErrUnknownOperator   = errors.New("unknown operator type")
	ErrUnsupportedDevice = errors.New("unsupported device")
)

// ParamError reports a malformed or unknown hyperparameter passed to SetParam.
// It is fatal to continued use of the property instance.
type ParamError struct {
	Op    string // operator type string
	Name  string // parameter name
	Value string // offending value, empty for unknown-name errors
	Err   error  // underlying cause
}

// Error implements the error interface.
func (e *ParamError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("%s: parameter %q: bad value %q: %v", e.Op, e.Name, e.Value, e.Err)
	}
	return fmt.Sprintf("%s: parameter %q: %v", e.Op, e.Name, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ParamError) Unwrap() error {
	return e.Err
}

// ShapeError reports mutually inconsistent known shapes during inference.
// It aborts graph construction; it is never a retryable condition.
type ShapeError struct {
	Op   string       // operator type string
	Arg  string       // argument or return name involved
	Want tensor.Shape // shape implied by the rest of the inputs
	Got  tensor.Shape // conflicting shape supplied by the caller
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: shape mismatch for %q: inferred %s, got %s", e.Op, e.Arg, e.Want, e.Got)
}
