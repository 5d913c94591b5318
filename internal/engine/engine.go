// Package engine defines the capability interfaces for the shared
// model-execution backend and a multiplexer that serializes access to it.
package engine

import "context"

// TextRequest carries the inputs for a text-generation call.
type TextRequest struct {
	Prompt       string
	Model        string
	MaxTokens    int
	SystemPrompt string
}

// TextGenerator produces text from a prompt using a named model.
type TextGenerator interface {
	GenerateText(ctx context.Context, req TextRequest) (string, error)
}

// SpeechSynthesizer produces one audio buffer for a piece of text.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text, voice string) ([]byte, error)
}

// Embedder produces a fixed-length embedding vector for a text.
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// Backend is the full capability surface of a model-execution engine. Its
// internals (model loading, tokenization, inference) are a black box.
type Backend interface {
	TextGenerator
	SpeechSynthesizer
	Embedder
}
