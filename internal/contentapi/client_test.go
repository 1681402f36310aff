package contentapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lexia/lexbrain/internal/contentapi"
	"github.com/lexia/lexbrain/internal/record"
)

func TestPublishNorm(t *testing.T) {
	var gotPath string
	var gotBody map[string]json.RawMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("failed to decode request body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	client := contentapi.NewClient(srv.URL)
	norm := &record.Norm{
		NormID:   19696,
		NormType: "Ley",
		Title:    "Proceso Penal",
		Articles: []record.Article{{Number: 1, Text: "primer articulo"}},
	}

	if err := client.PublishNorm(t.Context(), norm); err != nil {
		t.Fatalf("expected nil error, got '%v'", err)
	}
	if gotPath != "/v1/norms" {
		t.Errorf("expected path '/v1/norms', got '%s'", gotPath)
	}

	raw, ok := gotBody["norm"]
	if !ok {
		t.Fatal("payload missing 'norm' key")
	}
	var sent record.Norm
	if err := json.Unmarshal(raw, &sent); err != nil {
		t.Fatalf("failed to decode sent norm: %v", err)
	}
	if sent.NormID != 19696 || len(sent.Articles) != 1 {
		t.Errorf("unexpected norm payload: %+v", sent)
	}
}

func TestPublishNormRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"errors":{"title":["can't be blank"]}}`, http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	client := contentapi.NewClient(srv.URL)
	err := client.PublishNorm(t.Context(), &record.Norm{NormID: 1})
	if err == nil {
		t.Fatal("expected error for 422 response")
	}
	if !strings.Contains(err.Error(), "422") {
		t.Errorf("expected status code in error, got '%v'", err)
	}
}

func TestPublishSentence(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		var body map[string]record.Sentence
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode request body: %v", err)
		}
		if body["sentence"].ID != "SEF-0001" {
			t.Errorf("unexpected sentence id '%s'", body["sentence"].ID)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	client := contentapi.NewClient(srv.URL)
	err := client.PublishSentence(t.Context(), &record.Sentence{ID: "SEF-0001", Text: "la corte resuelve"})
	if err != nil {
		t.Fatalf("expected nil error, got '%v'", err)
	}
	if gotPath != "/v1/sentences" {
		t.Errorf("expected path '/v1/sentences', got '%s'", gotPath)
	}
}
