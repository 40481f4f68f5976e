// Package editor hands a listing to the user's text editor and reads back
// the result.
//
// The Launcher interface is the suspension point of a run: it blocks until
// the editor process exits. The engine takes it as a capability so the
// retry/abort state machine can be driven by a scripted fake in tests.
package editor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Launcher presents text to the user for editing and returns the edited text.
type Launcher interface {
	Edit(ctx context.Context, text string) (string, error)
}

// ErrNoEditor indicates no usable editor could be resolved.
var ErrNoEditor = errors.New("no editor found; set VISUAL or EDITOR")

// candidates are tried in order when neither VISUAL nor EDITOR is set.
var candidates = []string{"sensible-editor", "editor", "vim", "vi", "nano"}

// ExecLauncher launches a real editor process on a temporary file.
type ExecLauncher struct {
	// Override takes precedence over VISUAL/EDITOR when non-empty.
	Override string
}

// NewExecLauncher creates a launcher with an optional editor override.
func NewExecLauncher(override string) *ExecLauncher {
	return &ExecLauncher{Override: override}
}

// Edit writes text to a temp file, blocks on the editor process, and returns
// the file's final contents.
func (l *ExecLauncher) Edit(ctx context.Context, text string) (string, error) {
	tmp, err := os.CreateTemp("", "edmv-*.txt")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	path := tmp.Name()
	defer func() {
		_ = os.Remove(path)
	}()

	if _, err := tmp.WriteString(text); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("failed to write listing: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	name, args, err := l.resolve()
	if err != nil {
		return "", err
	}

	cmd := exec.CommandContext(ctx, name, append(args, path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("editor %s failed: %w", name, err)
	}

	edited, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read edited listing: %w", err)
	}
	return string(edited), nil
}

// resolve picks the editor command: override, then VISUAL, then EDITOR, then
// the first candidate found on PATH. A configured value may carry arguments
// ("code --wait").
func (l *ExecLauncher) resolve() (string, []string, error) {
	for _, spec := range []string{l.Override, os.Getenv("VISUAL"), os.Getenv("EDITOR")} {
		fields := strings.Fields(spec)
		if len(fields) > 0 {
			return fields[0], fields[1:], nil
		}
	}
	for _, name := range candidates {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil, nil
		}
	}
	return "", nil, ErrNoEditor
}
