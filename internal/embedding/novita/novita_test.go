package novita_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lexia/lexbrain/internal/embedding/novita"
)

func TestEmbedPreservesOrder(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if !strings.HasSuffix(r.URL.Path, "/v3/openai/embeddings") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("failed to decode request body: %v", err)
		}

		// respond out of order on purpose
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[
			{"index":2,"embedding":[3,3]},
			{"index":0,"embedding":[1,1]},
			{"index":1,"embedding":[2,2]}
		]}`))
	}))
	defer srv.Close()

	p := novita.New(srv.URL, "", 2)
	vals, err := p.Embed(t.Context(), []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("expected nil error, got '%v'", err)
	}

	if len(vals) != 3 {
		t.Fatalf("expected 3 vectors, got %d", len(vals))
	}
	for i, want := range []float32{1, 2, 3} {
		if vals[i][0] != want {
			t.Errorf("vector %d: expected leading value %g, got %g", i, want, vals[i][0])
		}
	}

	if gotBody["model"] != novita.DefaultModel {
		t.Errorf("expected model '%s', got '%v'", novita.DefaultModel, gotBody["model"])
	}
	if gotBody["encoding_format"] != "float" {
		t.Errorf("expected encoding_format 'float', got '%v'", gotBody["encoding_format"])
	}
	if input, ok := gotBody["input"].([]any); !ok || len(input) != 3 {
		t.Errorf("expected 3 input chunks, got %v", gotBody["input"])
	}
}

func TestEmbedServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := novita.New(srv.URL, "", 2)
	if _, err := p.Embed(t.Context(), []string{"a", "b"}); err == nil {
		t.Fatal("expected error for non-200 status")
	}
}

func TestEmbedCountMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[{"index":0,"embedding":[1,1]}]}`))
	}))
	defer srv.Close()

	p := novita.New(srv.URL, "", 2)
	if _, err := p.Embed(t.Context(), []string{"a", "b"}); err == nil {
		t.Fatal("expected error when vector count does not match chunk count")
	}
}
