// Copyright 2025 Lexia
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to use,
// copy, modify, merge, publish, distribute, sublicense, and/or sell copies of the
// Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND,
// EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES
// OF MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND
// NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR COPYRIGHT
// HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY,
// WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR
// OTHER DEALINGS IN THE SOFTWARE.

// Package ingest runs the chunking-and-embedding pipeline for a single
// document: decide whether the text must be split, produce the chunk list,
// request embeddings and return chunks aligned with vectors.
package ingest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lexia/lexbrain/internal/chunker"
	"github.com/lexia/lexbrain/internal/embedding"
	"github.com/lexia/lexbrain/internal/tokenizer"
)

const (
	// DefaultTokenLimit is the embedding model's input capacity.
	DefaultTokenLimit = 8192

	DefaultChunkTokens  = 512
	DefaultChunkOverlap = 0.2
)

// ChunkParams overrides the default chunking configuration for one call.
type ChunkParams struct {
	MaxTokens int
	Overlap   float64
}

type Params struct {
	Text       string
	RecordID   string
	RecordType string

	// TokenLimit is the threshold above which chunking becomes mandatory.
	// Zero means DefaultTokenLimit.
	TokenLimit    int
	ForceChunking bool
	Chunking      *ChunkParams
}

type Ingestor struct {
	splitter *chunker.Splitter
	limits   *chunker.LimitDetector
	embedder embedding.Embedder
}

func New(codec tokenizer.Codec, embedder embedding.Embedder) *Ingestor {
	return &Ingestor{
		splitter: chunker.NewSplitter(codec),
		limits:   chunker.NewLimitDetector(codec),
		embedder: embedder,
	}
}

// Ingest never returns an error: every failure is converted into a failed
// Result at this boundary, so batch callers can move on to the next
// document without special-case fault handling.
func (ing *Ingestor) Ingest(ctx context.Context, p Params) *Result {
	res := &Result{
		RecordID:   p.RecordID,
		RecordType: p.RecordType,
	}

	limit := p.TokenLimit
	if limit <= 0 {
		limit = DefaultTokenLimit
	}

	documents := []string{p.Text}
	if p.ForceChunking || ing.limits.ExceedsLimit(p.Text, limit) {
		slog.Info("applying chunking", "record_id", p.RecordID, "record_type", p.RecordType, "forced", p.ForceChunking)

		params := ChunkParams{MaxTokens: DefaultChunkTokens, Overlap: DefaultChunkOverlap}
		if p.Chunking != nil {
			params = *p.Chunking
		}

		chunks, err := ing.splitter.Split(p.Text, params.MaxTokens, params.Overlap)
		if err != nil {
			res.fail(fmt.Errorf("failed to split document: %w", err))
			return res
		}
		documents = chunks
	}

	slog.Info("generating embeddings", "record_id", p.RecordID, "record_type", p.RecordType, "documents", len(documents))

	vectors, err := ing.embedder.Embed(ctx, documents)
	if err != nil {
		res.fail(fmt.Errorf("failed to generate embeddings: %w", err))
		return res
	}

	if len(vectors) != len(documents) {
		res.fail(fmt.Errorf("embedder returned %d vectors for %d documents", len(vectors), len(documents)))
		return res
	}

	res.Documents = documents
	res.Embeddings = vectors
	return res
}
