// Package ingestor turns staged legal documents into records enriched with
// embedding attributes, running the ingestion pipeline per document part.
package ingestor

import (
	"context"

	"github.com/lexia/lexbrain/internal/ingest"
)

// Pipeline is the chunking-and-embedding entry point the ingestors call
// once per text unit. Satisfied by *ingest.Ingestor.
type Pipeline interface {
	Ingest(ctx context.Context, p ingest.Params) *ingest.Result
}
