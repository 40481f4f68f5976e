package cli

import (
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/edmv-dev/edmv/internal/planner"
)

// renderOps prints one line per operation, the dry-run format.
func renderOps(ops []planner.Operation) {
	for _, op := range ops {
		PrintDim(op.String())
	}
}

// renderTable prints the execution sequence as a table, used in verbose mode.
// One-path operations carry a placeholder in the column they do not use.
func renderTable(w io.Writer, ops []planner.Operation) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Operation", "Source", "Destination"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT,
	})
	for _, op := range ops {
		var row []string
		switch op.Type {
		case planner.OpMkdir:
			row = []string{op.Type, "-", op.TargetAbs}
		case planner.OpDelete:
			row = []string{op.Type, op.Source, "-"}
		default:
			row = []string{op.Type, op.Source, op.Target}
		}
		table.Append(row)
	}
	table.Render()
}
