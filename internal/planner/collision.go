package planner

import (
	"fmt"
	"os"
	"strings"

	"github.com/edmv-dev/edmv/internal/fsops"
)

// Checker detects destination collisions for candidate operations.
//
// Detection operates on path-string identity and existence checks only; hard
// links and symlink aliases are not resolved. This is a documented
// limitation, not a bug.
type Checker struct {
	fs fsops.FS
}

// NewChecker creates a new Checker.
func NewChecker(fs fsops.FS) *Checker {
	return &Checker{fs: fs}
}

// Check examines a candidate move/copy operation against every other
// operation of the plan. vacated holds the absolute source paths the plan's
// own move operations free up; a pre-existing destination in that set is a
// benign swap or chain, not a collision.
//
// Returns a Collision if one is detected, or nil if the destination is safe.
func (c *Checker) Check(all []Operation, cand Operation, vacated map[string]bool) *Collision {
	for _, o := range all {
		if o.Index == cand.Index {
			continue
		}
		switch o.Type {
		case OpMove, OpCopy:
			// Pairwise checks are reported once, on the later operation.
			if o.Index > cand.Index {
				continue
			}
			if o.TargetAbs == cand.TargetAbs {
				return &Collision{
					Path:   cand.Target,
					Source: cand.Source,
					Reason: "duplicated destination",
					Fatal:  true,
				}
			}
			if within(cand.TargetAbs, o.TargetAbs) || within(o.TargetAbs, cand.TargetAbs) {
				return &Collision{
					Path:   cand.Target,
					Source: cand.Source,
					Reason: fmt.Sprintf("destination should not be included in other destination %s", o.Target),
					Fatal:  true,
				}
			}
		case OpNoop:
			// The paired entry keeps its path, so that path is taken.
			if o.TargetAbs == cand.TargetAbs {
				return &Collision{
					Path:   cand.Target,
					Source: cand.Source,
					Reason: fmt.Sprintf("duplicated destination: %s keeps its path", o.Source),
					Fatal:  true,
				}
			}
		case OpDelete:
			// Deletes run last; landing on a path marked for deletion would
			// destroy the moved content.
			if o.SourceAbs == cand.TargetAbs {
				return &Collision{
					Path:   cand.Target,
					Source: cand.Source,
					Reason: fmt.Sprintf("destination %s is marked for deletion", o.Source),
					Fatal:  true,
				}
			}
		}
	}

	if within(cand.SourceAbs, cand.TargetAbs) {
		return &Collision{
			Path:   cand.Target,
			Source: cand.Source,
			Reason: "destination should not be included in source",
			Fatal:  true,
		}
	}

	exists, err := c.fs.Exists(cand.TargetAbs)
	if err != nil {
		return &Collision{
			Path:   cand.Target,
			Source: cand.Source,
			Reason: fmt.Sprintf("failed to check destination: %v", err),
			Fatal:  true,
		}
	}
	if exists && !vacated[cand.TargetAbs] {
		return &Collision{
			Path:   cand.Target,
			Source: cand.Source,
			Reason: "destination exists",
			Fatal:  false,
		}
	}

	return nil
}

// within reports whether path is strictly inside dir.
func within(dir, path string) bool {
	return strings.HasPrefix(path, dir+string(os.PathSeparator))
}
