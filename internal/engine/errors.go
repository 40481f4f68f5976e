package engine

import (
	"errors"
	"fmt"

	"github.com/edmv-dev/edmv/internal/planner"
)

var (
	// ErrDestinationExists indicates pre-existing destinations aborted the
	// run without a prompt.
	ErrDestinationExists = errors.New("destination exists")

	// ErrExecution indicates an operation failed at the filesystem layer.
	ErrExecution = errors.New("execution failed")
)

// DestinationExistsError carries the pre-existing destinations that aborted
// a non-interactive or --oops run.
type DestinationExistsError struct {
	Collisions []planner.Collision
}

func (e *DestinationExistsError) Error() string {
	if len(e.Collisions) == 1 {
		return fmt.Sprintf("destination exists: %s", e.Collisions[0].Path)
	}
	return fmt.Sprintf("destination exists: %d destinations already exist", len(e.Collisions))
}

func (e *DestinationExistsError) Unwrap() error {
	return ErrDestinationExists
}

// ExecutionError reports the operation that failed and its cause. Operations
// already applied are not undone.
type ExecutionError struct {
	Op  planner.Operation
	Err error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// Is lets callers match ExecutionError against ErrExecution.
func (e *ExecutionError) Is(target error) bool {
	return target == ErrExecution
}
