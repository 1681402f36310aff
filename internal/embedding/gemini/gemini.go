package gemini

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/genai"
)

type Provider struct {
	client     *genai.Client
	model      string
	vectorDims *int32
}

func New(model string, dims uint) (*Provider, error) {
	if model == "" {
		model = "gemini-embedding-exp-03-07"
	}
	if dims == 0 {
		dims = 1024
	}

	c, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  os.Getenv("GEMINI_API_KEY"),
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gemini client: %w", err)
	}

	p := &Provider{
		client:     c,
		model:      model,
		vectorDims: new(int32),
	}
	*(p.vectorDims) = int32(dims)
	return p, nil
}

func (p *Provider) Embed(ctx context.Context, chunks []string) ([][]float32, error) {
	contents := make([]*genai.Content, 0, len(chunks))
	for _, chunk := range chunks {
		contents = append(contents, genai.NewContentFromText(chunk, genai.RoleUser))
	}

	config := &genai.EmbedContentConfig{
		TaskType:             "RETRIEVAL_DOCUMENT",
		OutputDimensionality: p.vectorDims,
	}

	res, err := p.client.Models.EmbedContent(ctx, p.model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("embedding request failed: %w", err)
	}

	if len(res.Embeddings) != len(chunks) {
		return nil, fmt.Errorf("embedding count mismatch: sent %d chunks, received %d vectors", len(chunks), len(res.Embeddings))
	}

	vals := make([][]float32, 0, len(res.Embeddings))
	for _, e := range res.Embeddings {
		vals = append(vals, e.Values)
	}

	return vals, nil
}

func (p *Provider) Dimensions() uint {
	return uint(*p.vectorDims)
}
