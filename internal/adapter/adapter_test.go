package adapter

import (
	"context"
	"strings"
	"testing"
)

func TestNew_ValidProviders(t *testing.T) {
	for _, provider := range []string{ProviderClaude, ProviderOpenAI, ProviderGemini, ProviderOllama} {
		t.Run(provider, func(t *testing.T) {
			a, err := New(provider, "", "test-key", "")
			if err != nil {
				t.Fatalf("New(%q) error: %v", provider, err)
			}
			if a == nil {
				t.Fatalf("New(%q) returned nil adapter", provider)
			}
			if info := a.Info(); info.Provider != provider {
				t.Errorf("Info().Provider = %q, want %q", info.Provider, provider)
			}
		})
	}
}

func TestNew_InvalidProvider(t *testing.T) {
	_, err := New("invalid", "", "key", "")
	if err == nil {
		t.Error("expected error for invalid provider")
	}
}

func TestNew_OllamaDefaults(t *testing.T) {
	a, err := New(ProviderOllama, "", "", "")
	if err != nil {
		t.Fatalf("New(ollama) error: %v", err)
	}
	info := a.Info()
	if info.Provider != ProviderOllama {
		t.Errorf("provider: got %q", info.Provider)
	}
	if info.EmbeddingDimension == 0 {
		t.Errorf("ollama adapter should report an embedding dimension")
	}
}

func TestClaude_EmbedUnsupported(t *testing.T) {
	a := NewClaude("test-key")
	_, err := a.Embed(context.Background(), []string{"hello"})
	if err == nil {
		t.Fatal("claude has no embedding endpoint; Embed must fail")
	}
	if !strings.Contains(err.Error(), "embed") {
		t.Errorf("error should mention embeddings: %v", err)
	}
}
