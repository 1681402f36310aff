package embedding_test

import (
	"errors"
	"testing"

	"github.com/lexia/lexbrain/internal/embedding"
)

func TestNewEmbedderUnknownProvider(t *testing.T) {
	_, err := embedding.NewEmbedder("pinecone", embedding.Config{})
	if !errors.Is(err, embedding.ErrInvalidProviderType) {
		t.Fatalf("expected ErrInvalidProviderType, got '%v'", err)
	}
}

func TestNewEmbedderNovitaDefaults(t *testing.T) {
	e, err := embedding.NewEmbedder("novita", embedding.Config{})
	if err != nil {
		t.Fatalf("expected nil error, got '%v'", err)
	}
	if e.Dimensions() != 1024 {
		t.Errorf("expected default dimensions 1024, got %d", e.Dimensions())
	}
}

func TestNewEmbedderGemini(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	e, err := embedding.NewEmbedder("gemini", embedding.Config{Dimensions: 768})
	if err != nil {
		t.Fatalf("expected nil error, got '%v'", err)
	}
	if e.Dimensions() != 768 {
		t.Errorf("expected dimensions 768, got %d", e.Dimensions())
	}
}
