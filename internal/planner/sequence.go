package planner

import (
	"fmt"

	"github.com/edmv-dev/edmv/internal/fsops"
)

// stagingSuffix names the temporary location used to break move cycles.
const stagingSuffix = ".edmv-cycle"

// Sequence orders the plan's operations for execution: missing parent
// directories first, then moves, then copies, then deletes. Deletes run last
// so moves that vacate a doomed directory's contents happen before it goes.
// Noops are dropped.
//
// Breaking a move cycle needs a staging path; the filesystem is consulted so
// the staging rename never lands on an existing file.
func (p *Plan) Sequence(fs fsops.FS) ([]Operation, error) {
	var seq []Operation
	for _, dir := range p.Dirs {
		seq = append(seq, Operation{Type: OpMkdir, TargetAbs: dir, Index: -1, Dir: true})
	}

	var moves, copies, deletes []Operation
	for _, op := range p.Operations {
		switch op.Type {
		case OpMove:
			moves = append(moves, op)
		case OpCopy:
			copies = append(copies, op)
		case OpDelete:
			deletes = append(deletes, op)
		}
	}
	ordered, err := orderMoves(moves, fs)
	if err != nil {
		return nil, err
	}
	seq = append(seq, ordered...)
	seq = append(seq, copies...)
	seq = append(seq, deletes...)
	return seq, nil
}

// orderMoves sequences moves so that a move landing on a path vacated by
// another move runs after that move. Since sources and targets are each
// unique within a plan, the dependency graph is a set of disjoint chains and
// cycles. Chains unwind from their free end; each cycle is broken by staging
// one source at a temporary name and landing it last.
func orderMoves(moves []Operation, fs fsops.FS) ([]Operation, error) {
	bySource := make(map[string]int, len(moves))
	byTarget := make(map[string]int, len(moves))
	taken := make(map[string]bool, 2*len(moves))
	for i, m := range moves {
		bySource[m.SourceAbs] = i
		byTarget[m.TargetAbs] = i
		taken[m.SourceAbs] = true
		taken[m.TargetAbs] = true
	}

	done := make([]bool, len(moves))
	out := make([]Operation, 0, len(moves))

	for {
		progress := false
		for i, m := range moves {
			if done[i] {
				continue
			}
			if j, blocked := bySource[m.TargetAbs]; blocked && !done[j] {
				continue
			}
			out = append(out, m)
			done[i] = true
			progress = true
		}
		if !progress {
			break
		}
	}

	// Only cycles remain.
	for i, m := range moves {
		if done[i] {
			continue
		}
		tmp, err := stagingPath(fs, m.SourceAbs, taken)
		if err != nil {
			return nil, err
		}
		taken[tmp] = true
		out = append(out, Operation{
			Type:      OpMove,
			Source:    m.Source,
			SourceAbs: m.SourceAbs,
			Target:    tmp,
			TargetAbs: tmp,
			Index:     -1,
			Dir:       m.Dir,
		})
		done[i] = true

		// Unwind the rest of the cycle: the move landing on the staged
		// source goes first, then the move landing on that one's source,
		// and so on back around.
		for cur := byTarget[m.SourceAbs]; cur != i; cur = byTarget[moves[cur].SourceAbs] {
			out = append(out, moves[cur])
			done[cur] = true
		}

		out = append(out, Operation{
			Type:      OpMove,
			Source:    tmp,
			SourceAbs: tmp,
			Target:    m.Target,
			TargetAbs: m.TargetAbs,
			Index:     m.Index,
			Dir:       m.Dir,
		})
	}

	return out, nil
}

// stagingPath picks a staging name next to source that neither the plan nor
// the filesystem occupies. A staging rename must never overwrite a file the
// plan knows nothing about.
func stagingPath(fs fsops.FS, source string, taken map[string]bool) (string, error) {
	for i := 0; ; i++ {
		cand := source + stagingSuffix
		if i > 0 {
			cand = fmt.Sprintf("%s%d", cand, i)
		}
		if taken[cand] {
			continue
		}
		exists, err := fs.Exists(cand)
		if err != nil {
			return "", fmt.Errorf("failed to check staging path %s: %w", cand, err)
		}
		if !exists {
			return cand, nil
		}
	}
}
