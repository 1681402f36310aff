package novita

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/lexia/lexbrain/internal/http"
)

const (
	DefaultEndpoint = "https://api.novita.ai"
	DefaultModel    = "baai/bge-m3"

	embedPath = "/v3/openai/embeddings"
)

type embeddingResponse struct {
	Model string `json:"model"`
	Usage struct {
		TotalTokens  int `json:"total_tokens"`
		PromptTokens int `json:"prompt_tokens"`
	} `json:"usage"`
	Data []struct {
		Index     int       `json:"index"`
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
}

type Provider struct {
	client     http.Client
	model      string
	vectorDims uint
}

func New(endpoint string, model string, dims uint) *Provider {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if model == "" {
		model = DefaultModel
	}
	if dims == 0 {
		dims = 1024
	}

	c := http.NewClient(
		endpoint,
		http.WithApiKey(os.Getenv("NOVITA_API_KEY")),
	)
	return &Provider{
		client:     c,
		model:      model,
		vectorDims: dims,
	}
}

// Embed sends the whole batch in a single request. Vectors are reassembled
// by response index so the i-th chunk always maps to the i-th vector.
func (p *Provider) Embed(ctx context.Context, chunks []string) ([][]float32, error) {
	body, err := p.client.Request(ctx, http.MethodPost, embedPath, map[string]any{
		"input":           chunks,
		"model":           p.model,
		"encoding_format": "float",
	})
	if err != nil {
		return nil, fmt.Errorf("embedding request failed: %w", err)
	}

	var resp embeddingResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to deserialize embedding response: %w", err)
	}

	if len(resp.Data) != len(chunks) {
		return nil, fmt.Errorf("embedding count mismatch: sent %d chunks, received %d vectors", len(chunks), len(resp.Data))
	}

	vals := make([][]float32, len(resp.Data))
	for _, e := range resp.Data {
		if e.Index < 0 || e.Index >= len(vals) {
			return nil, fmt.Errorf("embedding response contains out-of-range index %d", e.Index)
		}
		vals[e.Index] = e.Embedding
	}

	for i, v := range vals {
		if v == nil {
			return nil, fmt.Errorf("embedding response missing vector for chunk %d", i)
		}
	}

	return vals, nil
}

func (p *Provider) Dimensions() uint {
	return p.vectorDims
}
