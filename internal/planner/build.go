package planner

import (
	"path/filepath"
	"sort"

	"github.com/edmv-dev/edmv/internal/catalog"
	"github.com/edmv-dev/edmv/internal/config"
	"github.com/edmv-dev/edmv/internal/fsops"
	"github.com/edmv-dev/edmv/internal/listing"
)

// Build reconciles the edited line records against the catalog and produces
// a plan.
//
// Pairing is positional: the Nth surviving line always corresponds to the
// Nth catalog entry. Reordering lines does not reorder entries; it only
// changes which text is associated with which entry.
//
// The returned error covers structural failures (count mismatch,
// unresolvable targets). Collisions never error here: they are carried on
// the plan, and Plan.Valid reports whether any of them is fatal. Build
// performs read-only filesystem queries only.
func Build(c *catalog.Catalog, records []listing.LineRecord, opts *config.Options, fs fsops.FS) (*Plan, error) {
	if len(records) != c.Len() {
		return nil, &LineCountMismatchError{Expected: c.Len(), Actual: len(records)}
	}

	plan := &Plan{Operations: make([]Operation, 0, c.Len())}
	for i, e := range c.Entries {
		rec := records[i]
		if rec.MarkedForDeletion {
			plan.Operations = append(plan.Operations, Operation{
				Type:      OpDelete,
				Source:    e.Text,
				SourceAbs: e.Abs,
				Index:     i,
				Dir:       e.IsDir(),
			})
			continue
		}

		raw := rec.RawText
		if rec.TrailingSeparator && !e.IsDir() {
			return nil, &UnresolvableTargetError{Source: e.Text, Line: raw, Reason: "missing file name"}
		}
		target := filepath.Clean(raw)
		if target == "" || target == "." {
			return nil, &UnresolvableTargetError{Source: e.Text, Line: raw, Reason: "empty target path"}
		}

		if target == e.Path || target == e.Abs {
			plan.Operations = append(plan.Operations, Operation{
				Type:      OpNoop,
				Source:    e.Text,
				SourceAbs: e.Abs,
				TargetAbs: e.Abs,
				Index:     i,
				Dir:       e.IsDir(),
			})
			continue
		}

		opType := OpMove
		if opts.Copy {
			opType = OpCopy
		}
		plan.Operations = append(plan.Operations, Operation{
			Type:      opType,
			Source:    e.Text,
			SourceAbs: e.Abs,
			Target:    target,
			TargetAbs: resolve(c.BaseDir, target),
			Index:     i,
			Dir:       e.IsDir(),
		})
	}

	// Paths freed by the plan's own moves. Copies leave their sources in
	// place and vacate nothing; neither do deletes, which run last.
	vacated := make(map[string]bool)
	for _, op := range plan.Operations {
		if op.Type == OpMove {
			vacated[op.SourceAbs] = true
		}
	}

	checker := NewChecker(fs)
	for _, op := range plan.Operations {
		if op.Type != OpMove && op.Type != OpCopy {
			continue
		}
		if col := checker.Check(plan.Operations, op, vacated); col != nil {
			plan.Collisions = append(plan.Collisions, *col)
		}
	}

	plan.Dirs = missingDirs(plan.Operations, fs)
	return plan, nil
}

// missingDirs collects the parent directories move/copy targets need but the
// filesystem does not have yet.
func missingDirs(ops []Operation, fs fsops.FS) []string {
	seen := make(map[string]bool)
	var dirs []string
	for _, op := range ops {
		if op.Type != OpMove && op.Type != OpCopy {
			continue
		}
		dir := filepath.Dir(op.TargetAbs)
		if dir == "" || seen[dir] {
			continue
		}
		seen[dir] = true
		exists, err := fs.Exists(dir)
		if err == nil && exists {
			continue
		}
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	return dirs
}

// resolve turns a target into an absolute path against the base directory.
func resolve(baseDir, target string) string {
	if filepath.IsAbs(target) {
		return filepath.Clean(target)
	}
	return filepath.Join(baseDir, target)
}
