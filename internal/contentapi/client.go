// Package contentapi publishes enriched records to the downstream content
// API. It is deliberately thin: formatting and a single POST per record.
package contentapi

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/lexia/lexbrain/internal/http"
	"github.com/lexia/lexbrain/internal/record"
)

const (
	normsPath     = "/v1/norms"
	sentencesPath = "/v1/sentences"
)

type Client struct {
	client http.Client
}

func NewClient(endpoint string) *Client {
	c := http.NewClient(
		endpoint,
		http.WithApiKey(os.Getenv("CONTENT_API_KEY")),
		http.WithTimeout(30*time.Second),
	)
	return &Client{client: c}
}

func (c *Client) PublishNorm(ctx context.Context, norm *record.Norm) error {
	slog.Info("sending norm to content api", "norm_id", norm.NormID, "articles", len(norm.Articles))

	payload := map[string]any{"norm": norm}
	if _, err := c.client.Request(ctx, http.MethodPost, normsPath, payload); err != nil {
		return fmt.Errorf("failed to publish norm %d: %w", norm.NormID, err)
	}
	return nil
}

func (c *Client) PublishSentence(ctx context.Context, sentence *record.Sentence) error {
	slog.Info("sending sentence to content api", "id", sentence.ID,
		"short_embeddings", len(sentence.ShortEmbeddings), "long_embeddings", len(sentence.LongEmbeddings))

	payload := map[string]any{"sentence": sentence}
	if _, err := c.client.Request(ctx, http.MethodPost, sentencesPath, payload); err != nil {
		return fmt.Errorf("failed to publish sentence %s: %w", sentence.ID, err)
	}
	return nil
}
