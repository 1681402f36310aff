package ingestor

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/lexia/lexbrain/internal/ingest"
	"github.com/lexia/lexbrain/internal/record"
)

// SentenceDocument is a court sentence as delivered by the scraping
// collaborators: plain text plus already-extracted metadata.
type SentenceDocument struct {
	ID           string `json:"id"`
	Number       string `json:"number"`
	Court        string `json:"court"`
	Importance   string `json:"importance"`
	SentenceType string `json:"sentence_type"`
	Date         string `json:"date"`
	FileNumber   string `json:"file_number"`
	Procedure    string `json:"procedure"`
	Text         string `json:"text"`
}

// SentenceIngestor enriches sentences with two embedding flavors:
// short attributes from forced chunking, and one long attribute covering
// the full text.
type SentenceIngestor struct {
	pipeline Pipeline
	chunking *ingest.ChunkParams
}

func NewSentenceIngestor(pipeline Pipeline, chunking *ingest.ChunkParams) *SentenceIngestor {
	return &SentenceIngestor{
		pipeline: pipeline,
		chunking: chunking,
	}
}

func (si *SentenceIngestor) IngestFile(ctx context.Context, path string, embed bool) (*record.Sentence, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read staged sentence: %w", err)
	}

	var doc SentenceDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode sentence JSON: %w", err)
	}

	return si.Ingest(ctx, doc, embed), nil
}

// Ingest never fails outright: an embedding failure on either flavor
// yields an empty attribute list for that flavor and the sentence record
// is still returned. With embed false the record carries metadata and
// text only.
func (si *SentenceIngestor) Ingest(ctx context.Context, doc SentenceDocument, embed bool) *record.Sentence {
	sentence := &record.Sentence{
		ID:           doc.ID,
		Number:       doc.Number,
		Court:        doc.Court,
		Importance:   doc.Importance,
		SentenceType: doc.SentenceType,
		Date:         doc.Date,
		FileNumber:   doc.FileNumber,
		Procedure:    doc.Procedure,
		Text:         doc.Text,
	}
	sentence.ShortEmbeddings = make([]record.EmbeddingAttribute, 0)
	sentence.LongEmbeddings = make([]record.EmbeddingAttribute, 0)

	if !embed || strings.TrimSpace(doc.Text) == "" {
		if strings.TrimSpace(doc.Text) == "" {
			slog.Warn("sentence has no text to embed, skipping", "id", doc.ID)
		}
		return sentence
	}

	short := si.pipeline.Ingest(ctx, ingest.Params{
		Text:          doc.Text,
		RecordID:      doc.ID,
		RecordType:    "chunked_sentence",
		ForceChunking: true,
		Chunking:      si.chunking,
	})
	if short.Success() {
		for i, chunk := range short.Documents {
			sentence.ShortEmbeddings = append(sentence.ShortEmbeddings, record.EmbeddingAttribute{
				Chunk:         chunk,
				Vector:        short.Embeddings[i],
				EmbeddingType: record.EmbeddingTypeShort,
			})
		}
	} else {
		slog.Error("failed to generate short embeddings for sentence", "id", doc.ID, "errors", short.Errors())
	}

	long := si.pipeline.Ingest(ctx, ingest.Params{
		Text:       doc.Text,
		RecordID:   doc.ID,
		RecordType: "sentence",
	})
	if long.Success() && len(long.Embeddings) > 0 {
		sentence.LongEmbeddings = append(sentence.LongEmbeddings, record.EmbeddingAttribute{
			Chunk:         doc.Text,
			Vector:        long.Embeddings[0],
			EmbeddingType: record.EmbeddingTypeLong,
		})
	} else if long.Failed() {
		slog.Error("failed to generate long embeddings for sentence", "id", doc.ID, "errors", long.Errors())
	}

	return sentence
}
