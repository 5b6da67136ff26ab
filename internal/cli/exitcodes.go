package cli

import (
	"errors"
	"io/fs"

	"github.com/dshills/gutterview/internal/config"
)

// Exit codes for gutterview.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitFailure indicates a general failure.
	ExitFailure = 1

	// ExitCheckFailed indicates render --check found a repaint mismatch.
	ExitCheckFailed = 2

	// ExitConfigError indicates configuration file or flag errors.
	ExitConfigError = 65

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// Errors that select a specific exit code.
var (
	// ErrCheckFailed signals that incremental painting diverged from a
	// full repaint.
	ErrCheckFailed = errors.New("repaint check failed")

	// ErrNotTerminal is returned by view when stdout is not a terminal.
	ErrNotTerminal = errors.New("view needs an interactive terminal")
)

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	var (
		pe *config.ParseError
		ve *config.ValidationError
		pa *fs.PathError
	)
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrCheckFailed):
		return ExitCheckFailed
	case errors.As(err, &pe), errors.As(err, &ve),
		errors.Is(err, config.ErrUnsupportedFormat), errors.Is(err, config.ErrInvalidEnv):
		return ExitConfigError
	case errors.As(err, &pa):
		return ExitIOError
	default:
		return ExitFailure
	}
}
