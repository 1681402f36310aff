package openai

import (
	"context"
	"fmt"
	"os"

	"github.com/sashabaranov/go-openai"
)

const embedMaxBatchLength = 2048

type Provider struct {
	client     *openai.Client
	model      string
	vectorDims uint
}

func New(model string, dims uint) *Provider {
	if model == "" {
		model = "text-embedding-3-small"
	}
	if dims == 0 {
		dims = 1024
	}

	c := openai.NewClient(os.Getenv("OPENAI_API_KEY"))
	return &Provider{
		client:     c,
		model:      model,
		vectorDims: dims,
	}
}

func (p *Provider) Embed(ctx context.Context, chunks []string) ([][]float32, error) {
	if len(chunks) > embedMaxBatchLength {
		return nil, fmt.Errorf("length of chunks exceeds limit: accepts '%d', received '%d'", embedMaxBatchLength, len(chunks))
	}

	req := &openai.EmbeddingRequestStrings{
		Input:          chunks,
		Model:          openai.EmbeddingModel(p.model),
		EncodingFormat: "float",
		Dimensions:     int(p.vectorDims),
	}

	res, err := p.client.CreateEmbeddings(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("embedding request failed: %w", err)
	}

	if len(res.Data) != len(chunks) {
		return nil, fmt.Errorf("embedding count mismatch: sent %d chunks, received %d vectors", len(chunks), len(res.Data))
	}

	vals := make([][]float32, len(res.Data))
	for _, e := range res.Data {
		if e.Index < 0 || e.Index >= len(vals) {
			return nil, fmt.Errorf("embedding response contains out-of-range index %d", e.Index)
		}
		vals[e.Index] = e.Embedding
	}

	return vals, nil
}

func (p *Provider) Dimensions() uint {
	return p.vectorDims
}
