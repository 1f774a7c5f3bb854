// Package cli holds the interactive prompts used by the demo host.
package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/manifoldco/promptui"
)

var errNegativeDuration = errors.New("duration must not be negative")

// PromptConfirm asks a yes/no question. Answering no returns false with a
// nil error; Ctrl-C and EOF are returned as errors, see Interrupted.
func PromptConfirm(label string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
		Stdin:     os.Stdin,
		Stdout:    os.Stdout,
	}

	_, err := prompt.Run()

	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, promptui.ErrAbort):
		return false, nil
	default:
		return false, err
	}
}

// PromptDuration asks for a duration such as "300ms". An empty answer
// returns dfl.
func PromptDuration(label string, dfl time.Duration) (time.Duration, error) {
	prompt := promptui.Prompt{
		Label:    label,
		Default:  dfl.String(),
		Validate: validateDuration,
		Stdin:    os.Stdin,
		Stdout:   os.Stdout,
	}

	txt, err := prompt.Run()
	if err != nil {
		return 0, err
	}

	return parseDuration(txt, dfl)
}

func validateDuration(s string) error {
	_, err := parseDuration(s, 0)

	return err
}

func parseDuration(s string, dfl time.Duration) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return dfl, nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration: %w", err)
	}

	if d < 0 {
		return 0, errNegativeDuration
	}

	return d, nil
}

// Interrupted reports whether err means the user hit Ctrl-C or closed stdin.
func Interrupted(err error) bool {
	return errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF)
}
