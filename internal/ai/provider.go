package ai

import (
	"context"
	"fmt"
)

// Provider is a text-generation backend: one prompt in, one raw response out.
// model selects the backend model code; empty uses the provider default.
type Provider interface {
	Name() string
	Generate(ctx context.Context, model, prompt string, maxTokens int) (string, error)
}

// NewProvider builds a Provider for a registry entry.
func NewProvider(cfg *ProviderConfig) (Provider, error) {
	switch cfg.Type {
	case "anthropic", "claude", "":
		return NewAnthropicProvider(cfg)
	case "openai":
		return NewOpenAIProvider(cfg)
	default:
		// Unknown types are assumed OpenAI-compatible; most hosted gateways are.
		return NewOpenAIProvider(cfg)
	}
}

func providerFor(registry *Registry, model *ModelConfig, cache map[string]Provider) (Provider, error) {
	if p, ok := cache[model.Provider]; ok {
		return p, nil
	}
	pc, ok := registry.GetProvider(model.Provider)
	if !ok {
		return nil, fmt.Errorf("provider not found: %s", model.Provider)
	}
	p, err := NewProvider(pc)
	if err != nil {
		return nil, err
	}
	cache[model.Provider] = p
	return p, nil
}
