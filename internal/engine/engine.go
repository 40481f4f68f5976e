// Package engine drives an edmv run end to end.
//
// The engine owns the retry/abort state machine: present the listing to the
// editor, validate the edited text into a plan, resolve failures by prompt
// or abort, and execute the plan one operation at a time. All collaborators
// (filesystem, editor, prompter, clock) are injected.
package engine

import (
	"fmt"

	"github.com/edmv-dev/edmv/internal/clock"
	"github.com/edmv-dev/edmv/internal/editor"
	"github.com/edmv-dev/edmv/internal/fsops"
	"github.com/edmv-dev/edmv/internal/planner"
)

// Engine orchestrates a run. It is the main API surface called by the CLI.
type Engine struct {
	fs       fsops.FS
	launcher editor.Launcher
	prompter Prompter
	clock    clock.Clock
}

// New creates a new Engine with the given dependencies.
func New(fs fsops.FS, launcher editor.Launcher, prompter Prompter, clk clock.Clock) *Engine {
	return &Engine{
		fs:       fs,
		launcher: launcher,
		prompter: prompter,
		clock:    clk,
	}
}

// executeOperation applies a single operation.
func (e *Engine) executeOperation(op planner.Operation) error {
	switch op.Type {
	case planner.OpMkdir:
		return e.fs.MkdirAll(op.TargetAbs, 0755)
	case planner.OpMove:
		return e.fs.Rename(op.SourceAbs, op.TargetAbs)
	case planner.OpCopy:
		return e.fs.Copy(op.SourceAbs, op.TargetAbs)
	case planner.OpDelete:
		if op.Dir {
			return e.fs.RemoveAll(op.SourceAbs)
		}
		return e.fs.Remove(op.SourceAbs)
	default:
		return fmt.Errorf("unknown operation type: %s", op.Type)
	}
}
