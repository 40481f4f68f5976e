package cli

import (
	"bufio"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edmv-dev/edmv/internal/engine"
	"github.com/edmv-dev/edmv/internal/planner"
)

func prompterWith(input string) *ConsolePrompter {
	return &ConsolePrompter{in: bufio.NewReader(strings.NewReader(input))}
}

func TestConfirmRetry(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  engine.Decision
	}{
		{name: "edit", input: "edit\n", want: engine.DecisionEdit},
		{name: "short edit", input: "e\n", want: engine.DecisionEdit},
		{name: "empty defaults to edit", input: "\n", want: engine.DecisionEdit},
		{name: "abort", input: "abort\n", want: engine.DecisionAbort},
		{name: "short abort", input: "A\n", want: engine.DecisionAbort},
		{name: "garbage then abort", input: "what\na\n", want: engine.DecisionAbort},
		{name: "closed stdin aborts", input: "", want: engine.DecisionAbort},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := prompterWith(tt.input)
			got, err := p.ConfirmRetry(errors.New("number of lines 2 does not match the original 3"))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfirmOverwrite(t *testing.T) {
	collisions := []planner.Collision{
		{Path: "taken.txt", Source: "a.txt", Reason: "destination exists"},
	}
	tests := []struct {
		name  string
		input string
		want  engine.Decision
	}{
		{name: "proceed", input: "proceed\n", want: engine.DecisionProceed},
		{name: "short proceed", input: "p\n", want: engine.DecisionProceed},
		{name: "empty defaults to edit", input: "\n", want: engine.DecisionEdit},
		{name: "abort", input: "abort\n", want: engine.DecisionAbort},
		{name: "closed stdin aborts", input: "", want: engine.DecisionAbort},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := prompterWith(tt.input)
			got, err := p.ConfirmOverwrite(collisions)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
