package generator

import "context"

// CompletionRequest is a single-turn chat completion: a system persona and
// one user message, no history, no streaming.
type CompletionRequest struct {
	System      string
	User        string
	Temperature float32
	MaxTokens   int
}

// Generator produces free text conditioned on the request.
type Generator interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
