package engine

import (
	"time"

	"github.com/edmv-dev/edmv/internal/catalog"
	"github.com/edmv-dev/edmv/internal/config"
	"github.com/edmv-dev/edmv/internal/planner"
)

// RunRequest carries the inputs of a single run.
type RunRequest struct {
	// Catalog is the baseline snapshot built at startup.
	Catalog *catalog.Catalog

	// Options is the assembled configuration.
	Options *config.Options
}

// RunResult reports the outcome of a run.
type RunResult struct {
	// Plan is the last plan that passed validation (nil when the run was
	// aborted before one did).
	Plan *planner.Plan

	// Sequence holds the accepted plan's operations in execution order,
	// staging moves included. Populated for dry runs too.
	Sequence []planner.Operation

	// Applied holds the operations executed, in execution order. On a
	// partial failure it shows how far execution got.
	Applied []planner.Operation

	// Attempts counts the editing passes.
	Attempts int

	// Aborted is true for a clean user-initiated abort.
	Aborted bool

	// DryRun mirrors the request option for reporting.
	DryRun bool

	// Duration is the total run time, editor included.
	Duration time.Duration
}

// Decision is the outcome of an interactive prompt.
type Decision int

const (
	// DecisionAbort ends the run with no further filesystem effect.
	DecisionAbort Decision = iota

	// DecisionEdit re-presents the listing for another editing pass.
	DecisionEdit

	// DecisionProceed accepts the plan despite pre-existing destinations.
	DecisionProceed
)

// Prompter resolves validation failures interactively. The engine never
// reads the terminal itself.
type Prompter interface {
	// ConfirmRetry reports a validation failure and asks whether to re-edit
	// the listing. Returns DecisionEdit or DecisionAbort.
	ConfirmRetry(err error) (Decision, error)

	// ConfirmOverwrite reports destinations that already exist and asks
	// whether to proceed anyway, re-edit, or abort.
	ConfirmOverwrite(collisions []planner.Collision) (Decision, error)
}
