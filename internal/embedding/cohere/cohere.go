package cohere

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"
)

const embedMaxTexts = 96

type Provider struct {
	client     *cohereclient.Client
	model      string
	vectorDims uint
}

func New(model string, dims uint) *Provider {
	if model == "" {
		model = "embed-multilingual-v3.0"
	}
	if dims == 0 {
		dims = 1024
	}

	c := cohereclient.NewClient(
		cohereclient.WithToken(os.Getenv("COHERE_API_KEY")),
		cohereclient.WithHTTPClient(
			&http.Client{
				Timeout: 60 * time.Second,
			},
		),
	)
	return &Provider{
		client:     c,
		model:      model,
		vectorDims: dims,
	}
}

func (p *Provider) Embed(ctx context.Context, chunks []string) ([][]float32, error) {
	if len(chunks) > embedMaxTexts {
		return nil, fmt.Errorf("length of chunks exceeds limit: accepts '%d', received '%d'", embedMaxTexts, len(chunks))
	}

	resp, err := p.client.V2.Embed(
		ctx,
		&cohere.V2EmbedRequest{
			Texts:          chunks,
			Model:          p.model,
			InputType:      cohere.EmbedInputTypeSearchDocument,
			EmbeddingTypes: []cohere.EmbeddingType{cohere.EmbeddingTypeFloat},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("embedding request failed: %w", err)
	}

	if len(resp.Embeddings.Float) != len(chunks) {
		return nil, fmt.Errorf("embedding count mismatch: sent %d chunks, received %d vectors", len(chunks), len(resp.Embeddings.Float))
	}

	vals := make([][]float32, 0, len(resp.Embeddings.Float))
	for _, emb := range resp.Embeddings.Float {
		f32 := make([]float32, 0, len(emb))
		for _, f := range emb {
			f32 = append(f32, float32(f))
		}
		vals = append(vals, f32)
	}

	return vals, nil
}

func (p *Provider) Dimensions() uint {
	return p.vectorDims
}
