package calculator

import "fmt"

// BackendExecutionError is returned by Run when the backend of a stage fails.
type BackendExecutionError struct {
	Stage string
	Err   error
}

func (e *BackendExecutionError) Error() string {
	return fmt.Sprintf("stage %s: backend execution failed: %v", e.Stage, e.Err)
}

func (e *BackendExecutionError) Unwrap() error {
	return e.Err
}
