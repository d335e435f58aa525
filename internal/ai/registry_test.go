package ai

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kayz/slidesmith/internal/config"
)

func writeRegistryFiles(t *testing.T, providers, models string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	providersPath := filepath.Join(dir, "providers.yaml")
	modelsPath := filepath.Join(dir, "models.yaml")
	if err := os.WriteFile(providersPath, []byte(providers), 0644); err != nil {
		t.Fatalf("write providers: %v", err)
	}
	if err := os.WriteFile(modelsPath, []byte(models), 0644); err != nil {
		t.Fatalf("write models: %v", err)
	}
	return providersPath, modelsPath
}

const testProvidersYAML = `providers:
  - name: anthropic
    type: anthropic
    api_key: sk-test
  - name: local
    type: openai
    base_url: http://localhost:8080/v1
    api_key: none
`

const testModelsYAML = `models:
  - name: sonnet
    code: claude-3-5-sonnet-20241022
    provider: anthropic
    max_tokens: 4096
  - name: local-llama
    code: llama-3.1-8b
    provider: local
`

func TestLoadRegistryFrom(t *testing.T) {
	pp, mp := writeRegistryFiles(t, testProvidersYAML, testModelsYAML)
	r, err := LoadRegistryFrom(pp, mp)
	if err != nil {
		t.Fatalf("LoadRegistryFrom: %v", err)
	}

	p, ok := r.GetProvider("local")
	if !ok || p.Type != "openai" || p.BaseURL != "http://localhost:8080/v1" {
		t.Fatalf("local provider = %+v, ok=%v", p, ok)
	}

	m, ok := r.GetModel("sonnet")
	if !ok || m.Code != "claude-3-5-sonnet-20241022" || m.MaxTokens != 4096 {
		t.Fatalf("sonnet model = %+v, ok=%v", m, ok)
	}

	models := r.ListModels()
	if len(models) != 2 || models[0].Name != "sonnet" || models[1].Name != "local-llama" {
		t.Fatalf("model order = %v", models)
	}
	if def := r.GetDefaultModel(); def == nil || def.Name != "sonnet" {
		t.Fatalf("default model = %+v", def)
	}
}

func TestLoadRegistryFromMissingFiles(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadRegistryFrom(filepath.Join(dir, "p.yaml"), filepath.Join(dir, "m.yaml")); err == nil {
		t.Fatal("expected error for missing registry files")
	}
}

func TestLoadRegistryFromEmptyModels(t *testing.T) {
	pp, mp := writeRegistryFiles(t, testProvidersYAML, "models: []\n")
	if _, err := LoadRegistryFrom(pp, mp); err == nil {
		t.Fatal("expected error for empty models list")
	}
}

func TestSingleModelRegistry(t *testing.T) {
	r, err := SingleModelRegistry(config.AIConfig{
		Provider: "openai", APIKey: "sk-test", Model: "gpt-4o", MaxTokens: 2048,
	})
	if err != nil {
		t.Fatalf("SingleModelRegistry: %v", err)
	}
	def := r.GetDefaultModel()
	if def == nil || def.Code != "gpt-4o" || def.Provider != "openai" || def.MaxTokens != 2048 {
		t.Fatalf("default model = %+v", def)
	}
	if _, ok := r.GetProvider("openai"); !ok {
		t.Fatal("provider not registered")
	}
}

func TestSingleModelRegistryRequiresKey(t *testing.T) {
	if _, err := SingleModelRegistry(config.AIConfig{Model: "gpt-4o"}); err == nil {
		t.Fatal("expected error without api key")
	}
}
