package ai

import (
	"context"
	"fmt"

	"github.com/tinkertanker/discord-summariser/pkg/gemini"
	"github.com/tinkertanker/discord-summariser/pkg/metrics"
)

// Config holds AI provider configuration
type Config struct {
	Provider ProviderType

	OpenAIAPIKey string
	OpenAIModel  string

	GeminiAPIKey string

	OllamaBaseURL string // e.g., "http://localhost:11434"
	OllamaModel   string // e.g., "llama3", "mistral"
}

// geminiCompleter adapts gemini.GeminiService to Completer
type geminiCompleter struct {
	svc *gemini.GeminiService
}

func (g *geminiCompleter) Name() string { return string(ProviderGemini) }

func (g *geminiCompleter) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	return g.svc.Generate(ctx, gemini.GenerateRequest{
		System:      req.System,
		Prompt:      req.User,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		JSON:        req.JSONMode,
	})
}

// instrumented counts every completion by provider and outcome
type instrumented struct {
	Completer
}

func (i instrumented) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	out, err := i.Completer.Complete(ctx, req)
	metrics.RecordCompletion(i.Completer.Name(), err)
	return out, err
}

// NewCompleter creates a Completer based on the config.
// "auto" uses the hosted provider that has a key and falls back to Ollama.
func NewCompleter(cfg Config) (Completer, error) {
	switch cfg.Provider {
	case ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required for OpenAI provider")
		}
		return instrumented{NewOpenAIService(cfg.OpenAIAPIKey, cfg.OpenAIModel)}, nil

	case ProviderGemini:
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required for Gemini provider")
		}
		return instrumented{&geminiCompleter{svc: gemini.NewGeminiService(cfg.GeminiAPIKey)}}, nil

	case ProviderOllama:
		return instrumented{NewOllamaService(cfg.OllamaBaseURL, cfg.OllamaModel)}, nil

	case ProviderAuto, "":
		var hosted Completer
		switch {
		case cfg.OpenAIAPIKey != "":
			hosted = instrumented{NewOpenAIService(cfg.OpenAIAPIKey, cfg.OpenAIModel)}
		case cfg.GeminiAPIKey != "":
			hosted = instrumented{&geminiCompleter{svc: gemini.NewGeminiService(cfg.GeminiAPIKey)}}
		}
		local := instrumented{NewOllamaService(cfg.OllamaBaseURL, cfg.OllamaModel)}
		if hosted == nil {
			return local, nil
		}
		return NewFallbackService(hosted, local), nil

	default:
		return nil, fmt.Errorf("unknown AI provider %q (want openai, gemini, ollama or auto)", cfg.Provider)
	}
}
