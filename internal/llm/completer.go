// Package llm wraps hosted text-completion APIs behind a single interface.
package llm

import (
	"context"
	"errors"
)

var ErrEmptyCompletion = errors.New("empty completion")

// Completer turns a single instruction text into generated text.
type Completer interface {
	Complete(ctx context.Context, model, prompt string) (string, error)
}
