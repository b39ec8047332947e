package ai

import "context"

// CompletionRequest is a single system+user chat turn.
type CompletionRequest struct {
	System      string
	User        string
	Temperature float64
	MaxTokens   int
	// JSONMode asks the provider to constrain output to a JSON object
	// where it supports that.
	JSONMode bool
}

// Completer is the interface every language model provider implements.
// Implement this interface to add new AI providers.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
	Name() string
}

// ProviderType represents the AI provider type
type ProviderType string

const (
	ProviderOpenAI ProviderType = "openai"
	ProviderOllama ProviderType = "ollama"
	ProviderGemini ProviderType = "gemini"
	ProviderAuto   ProviderType = "auto"
)
