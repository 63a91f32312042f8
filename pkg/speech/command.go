package speech

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
)

// ErrNoEngine is returned when no text-to-speech program is installed.
var ErrNoEngine = errors.New("no text-to-speech program found (install espeak-ng or espeak)")

// wordsPerMinute is 0.9 of the usual 175 so explanations read slightly slower.
const wordsPerMinute = 175 * 9 / 10

// CommandEngine speaks by running a system text-to-speech program that reads the
// text from standard input.
type CommandEngine struct {
	Path string
	Args []string
}

// DetectEngine picks say on macOS, otherwise espeak-ng or espeak.
func DetectEngine() (*CommandEngine, error) {
	wpm := strconv.Itoa(wordsPerMinute)
	candidates := []string{"espeak-ng", "espeak"}
	if runtime.GOOS == "darwin" {
		candidates = append([]string{"say"}, candidates...)
	}
	for _, name := range candidates {
		path, err := exec.LookPath(name)
		if err != nil {
			continue
		}
		if name == "say" {
			return &CommandEngine{Path: path, Args: []string{"-r", wpm}}, nil
		}
		return &CommandEngine{Path: path, Args: []string{"-s", wpm, "--stdin"}}, nil
	}
	return nil, ErrNoEngine
}

func (e *CommandEngine) Speak(ctx context.Context, text string) error {
	cmd := exec.CommandContext(ctx, e.Path, e.Args...)
	cmd.Stdin = strings.NewReader(text)
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%s: %w", e.Path, err)
	}
	return nil
}
