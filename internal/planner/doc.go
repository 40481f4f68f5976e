// Package planner reconciles the edited listing against the catalog.
//
// The planner pairs catalog entries with edited lines by position, classifies
// each pair into an operation (noop, move, copy, delete), detects destination
// collisions, and orders the resulting operations for safe execution.
//
// Key responsibilities:
//   - Enforce structural consistency (line count, resolvable targets)
//   - Classify pairings into a Plan of ordered operations
//   - Detect collisions (duplicate, nested, pre-existing destinations)
//   - Sequence execution (mkdir, then moves/copies, then deletes) with
//     cycle-safe move ordering
package planner
