package planner

import "fmt"

// Operation type constants
const (
	OpNoop   = "noop"
	OpMove   = "move"
	OpCopy   = "copy"
	OpDelete = "delete"
	OpMkdir  = "mkdir"
)

// Operation represents a single classified filesystem operation.
type Operation struct {
	// Type is the operation type: "noop", "move", "copy", "delete", "mkdir"
	Type string

	// Source is the entry's path as captured (empty for mkdir)
	Source string

	// SourceAbs is the normalized absolute source path (empty for mkdir)
	SourceAbs string

	// Target is the destination as it appeared in the edited line
	// (empty for delete and noop)
	Target string

	// TargetAbs is the normalized absolute destination path; for mkdir it is
	// the directory to create
	TargetAbs string

	// Index is the catalog index of the paired entry (-1 for mkdir and
	// staging operations synthesized during sequencing)
	Index int

	// Dir marks operations whose source is a directory
	Dir bool
}

// Actionable reports whether the operation mutates the filesystem.
func (o Operation) Actionable() bool {
	return o.Type != OpNoop
}

// String renders the operation the way dry-run output shows it.
func (o Operation) String() string {
	switch o.Type {
	case OpMove, OpCopy:
		return fmt.Sprintf("%s %s -> %s", o.Type, o.Source, o.Target)
	case OpDelete:
		return fmt.Sprintf("delete %s", o.Source)
	case OpMkdir:
		return fmt.Sprintf("mkdir %s", o.TargetAbs)
	default:
		return fmt.Sprintf("noop %s", o.Source)
	}
}

// Collision represents a destination problem detected during planning.
type Collision struct {
	// Path is the destination path where the collision was detected
	Path string

	// Source is the entry that produced the colliding operation
	Source string

	// Reason is a human-readable explanation
	Reason string

	// Fatal collisions invalidate the plan; non-fatal ones (destination
	// exists outside the plan's vacating set) are resolved by prompt or by
	// --oops.
	Fatal bool
}

// Plan is the validated, ordered set of operations derived from all pairings.
// It is immutable once built and consumed exactly once.
type Plan struct {
	// Operations holds one classified operation per catalog entry, in
	// pairing order.
	Operations []Operation

	// Dirs are the missing parent directories move/copy targets require,
	// deduplicated and sorted.
	Dirs []string

	// Collisions carries every detected collision, fatal or not.
	Collisions []Collision
}

// Valid reports whether the plan is safe to execute: no fatal collisions.
func (p *Plan) Valid() bool {
	for _, c := range p.Collisions {
		if c.Fatal {
			return false
		}
	}
	return true
}

// Fatal returns the fatal collisions.
func (p *Plan) Fatal() []Collision {
	var out []Collision
	for _, c := range p.Collisions {
		if c.Fatal {
			out = append(out, c)
		}
	}
	return out
}

// Exists returns the non-fatal destination-exists collisions.
func (p *Plan) Exists() []Collision {
	var out []Collision
	for _, c := range p.Collisions {
		if !c.Fatal {
			out = append(out, c)
		}
	}
	return out
}

// Actionable counts the operations that would mutate the filesystem.
func (p *Plan) Actionable() int {
	n := 0
	for _, op := range p.Operations {
		if op.Actionable() {
			n++
		}
	}
	return n
}
