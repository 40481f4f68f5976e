package engine

import (
	"context"

	"github.com/edmv-dev/edmv/internal/listing"
	"github.com/edmv-dev/edmv/internal/planner"
)

// Run drives the full edit/validate/confirm/execute cycle.
//
// States: present the current text to the editor (the catalog encoding on
// the first pass, the just-failed text on retries, so partial edits are not
// lost); validate the edited text into a plan; on failure either prompt for
// another pass or abort; on pre-existing destinations either prompt, abort
// (--oops, non-interactive), or proceed; then execute in sequence order,
// fail-fast, no rollback.
//
// An editor pass that returns the text unchanged is a cancellation: the run
// aborts cleanly with no filesystem effect.
func (e *Engine) Run(ctx context.Context, req *RunRequest) (res *RunResult, err error) {
	opts := req.Options
	start := e.clock.Now()
	res = &RunResult{DryRun: opts.DryRun}
	defer func() {
		res.Duration = e.clock.Now().Sub(start)
	}()

	text, err := listing.Encode(req.Catalog)
	if err != nil {
		return res, err
	}

	interactive := opts.Interactive && !opts.Oops && !opts.Quiet

	for {
		res.Attempts++

		edited, err := e.launcher.Edit(ctx, text)
		if err != nil {
			return res, err
		}
		if edited == text {
			res.Aborted = true
			return res, nil
		}

		records := listing.Decode(edited)
		plan, err := planner.Build(req.Catalog, records, opts, e.fs)
		if err == nil && !plan.Valid() {
			err = &planner.CollisionError{Collisions: plan.Fatal()}
		}
		if err != nil {
			if !interactive {
				return res, err
			}
			decision, perr := e.prompter.ConfirmRetry(err)
			if perr != nil {
				return res, perr
			}
			if decision == DecisionEdit {
				text = edited
				continue
			}
			res.Aborted = true
			return res, nil
		}
		res.Plan = plan

		if exists := plan.Exists(); len(exists) > 0 {
			if !interactive {
				return res, &DestinationExistsError{Collisions: exists}
			}
			decision, perr := e.prompter.ConfirmOverwrite(exists)
			if perr != nil {
				return res, perr
			}
			switch decision {
			case DecisionEdit:
				text = edited
				continue
			case DecisionAbort:
				res.Aborted = true
				return res, nil
			}
			// DecisionProceed: accepted destinations are overwritten.
		}
		break
	}

	seq, err := res.Plan.Sequence(e.fs)
	if err != nil {
		return res, err
	}
	res.Sequence = seq

	if opts.DryRun {
		return res, nil
	}

	for _, op := range seq {
		if err := e.executeOperation(op); err != nil {
			return res, &ExecutionError{Op: op, Err: err}
		}
		res.Applied = append(res.Applied, op)
	}
	return res, nil
}
