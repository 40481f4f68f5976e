package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/edmv-dev/edmv/internal/engine"
	"github.com/edmv-dev/edmv/internal/planner"
)

var (
	abortAnswer   = regexp.MustCompile(`^a(bort)?$`)
	editAnswer    = regexp.MustCompile(`^e(dit)?$`)
	proceedAnswer = regexp.MustCompile(`^p(roceed)?$`)
)

// ConsolePrompter implements engine.Prompter over stdin. An empty answer
// defaults to another editing pass; end of input aborts.
type ConsolePrompter struct {
	in *bufio.Reader
}

// NewConsolePrompter creates a prompter reading from stdin.
func NewConsolePrompter() *ConsolePrompter {
	return &ConsolePrompter{in: bufio.NewReader(os.Stdin)}
}

// ConfirmRetry reports a validation failure and asks edit-or-abort.
func (p *ConsolePrompter) ConfirmRetry(err error) (engine.Decision, error) {
	PrintWarning(err.Error())
	for {
		fmt.Printf("%sdit or %sbort? > ", accentColor.Sprint("E"), accentColor.Sprint("A"))
		answer, rerr := p.readAnswer()
		if rerr != nil {
			return engine.DecisionAbort, rerr
		}
		switch {
		case answer == "" || editAnswer.MatchString(answer):
			return engine.DecisionEdit, nil
		case abortAnswer.MatchString(answer):
			return engine.DecisionAbort, nil
		}
	}
}

// ConfirmOverwrite reports pre-existing destinations and asks
// proceed-edit-or-abort. Proceeding overwrites.
func (p *ConsolePrompter) ConfirmOverwrite(collisions []planner.Collision) (engine.Decision, error) {
	for _, c := range collisions {
		PrintWarning(fmt.Sprintf("destination exists: %s (for %s)", c.Path, c.Source))
	}
	for {
		fmt.Printf("%sroceed, %sdit or %sbort? > ",
			accentColor.Sprint("P"), accentColor.Sprint("E"), accentColor.Sprint("A"))
		answer, rerr := p.readAnswer()
		if rerr != nil {
			return engine.DecisionAbort, rerr
		}
		switch {
		case proceedAnswer.MatchString(answer):
			return engine.DecisionProceed, nil
		case answer == "" || editAnswer.MatchString(answer):
			return engine.DecisionEdit, nil
		case abortAnswer.MatchString(answer):
			return engine.DecisionAbort, nil
		}
	}
}

func (p *ConsolePrompter) readAnswer() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	if err == io.EOF && line == "" {
		// Stdin closed mid-prompt: treat as abort rather than spinning.
		return "abort", nil
	}
	return strings.ToLower(strings.TrimSpace(line)), nil
}
