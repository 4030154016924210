package boundary

import "fmt"

// RenderError describes a failure raised while rendering the wrapped tree.
// Panics are captured with their value; returned errors are kept in Err.
type RenderError struct {
	Panic any
	Err   error
	Stack []byte
}

func (e *RenderError) Error() string {
	if e == nil {
		return "boundary: render failed"
	}
	if e.Err != nil {
		return "boundary: render failed: " + e.Err.Error()
	}
	return fmt.Sprintf("boundary: render panicked: %v", e.Panic)
}

func (e *RenderError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func newPanicError(value any, stack []byte) *RenderError {
	renderErr := &RenderError{Panic: value, Stack: stack}
	if err, ok := value.(error); ok {
		renderErr.Err = err
	}
	return renderErr
}
