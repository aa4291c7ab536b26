package llm

import "context"

// Completer sends one prompt to a completion service and returns the raw text
// of the first answer.
type Completer interface {
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
	Name() string
}
