// Package backend is the hand-off boundary to the inference backend process
// and its sidecars (api-server, vector store). Supervising those processes is
// outside this repository; the launcher only delivers a fully-resolved spec.
package backend

import (
	"context"

	"github.com/rs/zerolog"

	"llamactl/internal/prompt"
)

// LaunchSpec is everything the backend needs to start serving a resolved model.
type LaunchSpec struct {
	// ModelPath is the local artifact path produced by resolution.
	ModelPath string
	// Template is the prompt format to apply.
	Template prompt.Template
	// ReversePrompt halts generation at the given text; empty disables it.
	ReversePrompt string
	// ContextSize in tokens; 0 means backend default.
	ContextSize uint64
}

// Launcher starts and stops the backend.
type Launcher interface {
	Start(ctx context.Context, spec LaunchSpec) error
	Stop(ctx context.Context) error
}

type notSupportedError struct{ op string }

func (e notSupportedError) Error() string { return e.op + " is not yet supported" }

// IsNotSupported reports whether err marks an operation this build does not
// implement.
func IsNotSupported(err error) bool {
	_, ok := err.(notSupportedError)
	return ok
}

// LogLauncher records the hand-off instead of spawning processes.
type LogLauncher struct {
	Log zerolog.Logger
}

var _ Launcher = LogLauncher{}

func (l LogLauncher) Start(_ context.Context, spec LaunchSpec) error {
	ev := l.Log.Info().
		Str("model", spec.ModelPath).
		Stringer("template", spec.Template)
	if spec.ReversePrompt != "" {
		ev = ev.Str("reverse_prompt", spec.ReversePrompt)
	}
	if spec.ContextSize > 0 {
		ev = ev.Uint64("context_size", spec.ContextSize)
	}
	ev.Msg("handing off to inference backend")
	return nil
}

func (l LogLauncher) Stop(_ context.Context) error {
	return notSupportedError{op: "stop"}
}
