package planner

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrLineCountMismatch indicates the edited listing has a different
	// number of surviving lines than the catalog has entries.
	ErrLineCountMismatch = errors.New("line count mismatch")

	// ErrUnresolvableTarget indicates an edited line that does not resolve
	// to a usable destination path.
	ErrUnresolvableTarget = errors.New("unresolvable target path")

	// ErrCollision indicates the plan carries fatal destination collisions.
	ErrCollision = errors.New("collision detected")
)

// LineCountMismatchError reports the structural-consistency failure. Only the
// deletion marker is a sanctioned way to delete; inserted or removed lines
// are never guessed at.
type LineCountMismatchError struct {
	Expected int
	Actual   int
}

func (e *LineCountMismatchError) Error() string {
	return fmt.Sprintf("number of lines %d does not match the original %d", e.Actual, e.Expected)
}

func (e *LineCountMismatchError) Unwrap() error {
	return ErrLineCountMismatch
}

// UnresolvableTargetError reports a line whose text cannot become a
// destination path.
type UnresolvableTargetError struct {
	Source string
	Line   string
	Reason string
}

func (e *UnresolvableTargetError) Error() string {
	return fmt.Sprintf("%s: %q for %s", e.Reason, e.Line, e.Source)
}

func (e *UnresolvableTargetError) Unwrap() error {
	return ErrUnresolvableTarget
}

// CollisionError wraps the fatal collisions of an invalid plan.
type CollisionError struct {
	Collisions []Collision
}

func (e *CollisionError) Error() string {
	reasons := make([]string, 0, len(e.Collisions))
	for _, c := range e.Collisions {
		reasons = append(reasons, fmt.Sprintf("%s: %s", c.Path, c.Reason))
	}
	return fmt.Sprintf("collision detected: %s", strings.Join(reasons, "; "))
}

func (e *CollisionError) Unwrap() error {
	return ErrCollision
}
