package ingestor

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/lexia/lexbrain/internal/ingest"
	"github.com/lexia/lexbrain/internal/record"
)

const defaultEmbedConcurrency = 4

// NormIngestor reads staged IMPO norm JSON and embeds every article.
type NormIngestor struct {
	pipeline    Pipeline
	concurrency int
}

func NewNormIngestor(pipeline Pipeline) *NormIngestor {
	return &NormIngestor{
		pipeline:    pipeline,
		concurrency: defaultEmbedConcurrency,
	}
}

// IngestFile parses the staged norm file and attaches one long embedding
// attribute to each article. Articles whose embedding fails are dropped
// from the norm and logged; the rest of the norm survives.
func (ni *NormIngestor) IngestFile(ctx context.Context, path string) (*record.Norm, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read staged norm: %w", err)
	}

	norm, err := record.ParseNorm(data)
	if err != nil {
		return nil, err
	}

	if len(norm.Articles) == 0 {
		slog.Warn("no articles found in norm", "norm_id", norm.NormID)
		return norm, nil
	}

	slog.Info("embedding norm articles", "norm_id", norm.NormID, "articles", len(norm.Articles))

	embedded := make([]*record.Article, len(norm.Articles))

	var g errgroup.Group
	g.SetLimit(ni.concurrency)
	for i := range norm.Articles {
		g.Go(func() error {
			art := norm.Articles[i]
			res := ni.pipeline.Ingest(ctx, ingestParamsForArticle(&art))
			if res.Failed() {
				slog.Warn("embedding failed for article, skipping",
					"norm_id", norm.NormID, "article", art.Number, "errors", res.Errors())
				return nil
			}

			if len(res.Embeddings) == 0 {
				slog.Warn("embedding service returned no vectors for article, skipping",
					"norm_id", norm.NormID, "article", art.Number)
				return nil
			}

			art.Text = res.Documents[0]
			art.LongEmbeddings = []record.EmbeddingAttribute{{
				Chunk:         res.Documents[0],
				Vector:        res.Embeddings[0],
				EmbeddingType: record.EmbeddingTypeLong,
			}}
			embedded[i] = &art
			return nil
		})
	}

	// article failures are swallowed above; Wait only reports ctx errors
	if err := g.Wait(); err != nil {
		return nil, err
	}

	articles := make([]record.Article, 0, len(embedded))
	for _, art := range embedded {
		if art != nil {
			articles = append(articles, *art)
		}
	}
	norm.Articles = articles

	return norm, nil
}

func ingestParamsForArticle(art *record.Article) ingest.Params {
	return ingest.Params{
		Text:       art.Text,
		RecordID:   art.ImpoURL,
		RecordType: "article",
	}
}
