// Package ui abstracts the interactive terminal prompts used during model
// and template resolution so the workflow can be driven by a scripted fake
// in tests.
package ui

import "errors"

// ErrCancelled is returned when the human explicitly dismisses a prompt.
var ErrCancelled = errors.New("selection cancelled")

// IsCancelled reports whether err is an explicit user cancellation.
func IsCancelled(err error) bool { return errors.Is(err, ErrCancelled) }

// Chooser is the single interactive capability the resolution workflow
// needs. Implementations block the calling goroutine until the human
// answers; there is no timeout and no cancellation path other than the
// human's own cancel action.
type Chooser interface {
	// Choose presents options in the given order and returns the index of
	// the confirmed selection. defaultIndex preselects an option; indexes
	// out of range fall back to the first option. Returns ErrCancelled when
	// the human dismisses the prompt.
	Choose(title string, options []string, defaultIndex int) (int, error)
	// Input asks for one line of free text. Returns ErrCancelled when the
	// human dismisses the prompt.
	Input(title string) (string, error)
}
