package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/lexia/lexbrain/internal/ingestor"
	"github.com/lexia/lexbrain/internal/record"
	"github.com/lexia/lexbrain/internal/staging"
	"github.com/lexia/lexbrain/internal/transport"
	"github.com/lexia/lexbrain/internal/vector"
)

// Publisher delivers enriched records to the downstream content API.
// Satisfied by contentapi.Client.
type Publisher interface {
	PublishNorm(ctx context.Context, norm *record.Norm) error
	PublishSentence(ctx context.Context, sentence *record.Sentence) error
}

// Handler processes the batch ingestion tasks. One staged document failing
// never halts the batch: the file stays in staging for a later retry and
// the handler moves on to the next one.
type Handler struct {
	transport transport.Transport
	publisher Publisher
	store     vector.Store

	norms     *ingestor.NormIngestor
	sentences *ingestor.SentenceIngestor

	dirs       staging.Dirs
	collection string
	dimensions uint
}

func NewHandler(
	transport transport.Transport,
	publisher Publisher,
	store vector.Store,
	norms *ingestor.NormIngestor,
	sentences *ingestor.SentenceIngestor,
	dirs staging.Dirs,
	collection string,
	dimensions uint,
) *Handler {
	return &Handler{
		transport:  transport,
		publisher:  publisher,
		store:      store,
		norms:      norms,
		sentences:  sentences,
		dirs:       dirs,
		collection: collection,
		dimensions: dimensions,
	}
}

func (h *Handler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	id := uuid.NewString()
	if rw := t.ResultWriter(); rw != nil {
		id = rw.TaskID()
	}

	trace := transport.NewJobTrace(id, t.Type())
	if err := h.transport.SetTrace(ctx, trace); err != nil {
		slog.Error("failed to set trace", "id", id, "err", err)
	}

	var processed, failed int
	var err error

	switch t.Type() {
	case TypeNorms:
		var p normsTaskPayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			return fmt.Errorf("invalid norms task payload: %v (%w)", err, asynq.SkipRetry)
		}
		slog.Info("received norms task", "id", id, "norm_type", p.NormType)
		processed, failed, err = h.processNorms(ctx)

	case TypeSentences:
		var p sentencesTaskPayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			return fmt.Errorf("invalid sentences task payload: %v (%w)", err, asynq.SkipRetry)
		}
		slog.Info("received sentences task", "id", id, "force_chunking", p.ForceChunking)
		processed, failed, err = h.processSentences(ctx, p.ForceChunking)

	default:
		return fmt.Errorf("unrecognized task type (%w)", asynq.SkipRetry)
	}

	trace.Processed = processed
	trace.Failed = failed
	if err != nil {
		trace.Fail(err.Error())
	} else {
		trace.Complete()
	}
	if terr := h.transport.SetTrace(ctx, trace); terr != nil {
		slog.Error("failed to set trace", "id", id, "err", terr)
	}

	slog.Info("batch finished", "id", id, "type", t.Type(), "processed", processed, "failed", failed)
	return err
}

func (h *Handler) processNorms(ctx context.Context) (processed int, failed int, err error) {
	files, err := staging.ListStaged(h.dirs.NormsJSON())
	if err != nil {
		return 0, 0, fmt.Errorf("failed to list staged norms: %v (%w)", err, asynq.SkipRetry)
	}

	if len(files) == 0 {
		slog.Warn("no staged norm files to process")
		return 0, 0, nil
	}

	if err := h.ensureCollection(ctx); err != nil {
		return 0, 0, err
	}

	pending := staging.NewPendingList(h.dirs.NormsLinksFile())
	var done []string

	for i, path := range files {
		slog.Info("processing staged norm", "file", filepath.Base(path), "n", i+1, "total", len(files))

		norm, err := h.norms.IngestFile(ctx, path)
		if err != nil {
			slog.Error("failed to ingest norm, keeping staged copy", "file", filepath.Base(path), "err", err)
			failed++
			continue
		}

		if len(norm.Articles) == 0 {
			slog.Warn("norm has no embedded articles, skipping publish", "norm_id", norm.NormID)
			if url := staging.SourceURL(path); url != "" {
				done = append(done, url)
			}
			h.finishStagedFile(path, h.dirs.NormsProcessed())
			processed++
			continue
		}

		if err := h.publisher.PublishNorm(ctx, norm); err != nil {
			slog.Error("failed to publish norm, keeping staged copy for retry", "norm_id", norm.NormID, "err", err)
			failed++
			continue
		}

		for _, art := range norm.Articles {
			ref := vector.RecordRef{ID: art.ImpoURL, Type: "article"}
			points := vector.CreatePoints(ref, art.LongEmbeddings)
			if err := h.store.Upsert(ctx, h.collection, points); err != nil {
				slog.Error("failed to mirror article vectors", "norm_id", norm.NormID, "article", art.Number, "err", err)
			}
		}

		// the source URL sidecar is keyed on the scraped page URL, which is
		// what the pending-links file holds
		if url := staging.SourceURL(path); url != "" {
			done = append(done, url)
		}
		h.finishStagedFile(path, h.dirs.NormsProcessed())
		processed++
	}

	if err := pending.Remove(done); err != nil {
		slog.Error("failed to update pending links file", "err", err)
	}

	return processed, failed, nil
}

func (h *Handler) processSentences(ctx context.Context, forceChunking bool) (processed int, failed int, err error) {
	files, err := staging.ListStaged(h.dirs.Sentences())
	if err != nil {
		return 0, 0, fmt.Errorf("failed to list staged sentences: %v (%w)", err, asynq.SkipRetry)
	}

	if len(files) == 0 {
		slog.Warn("no staged sentence files to process")
		return 0, 0, nil
	}

	if err := h.ensureCollection(ctx); err != nil {
		return 0, 0, err
	}

	for i, path := range files {
		slog.Info("processing staged sentence", "file", filepath.Base(path), "n", i+1, "total", len(files))

		sentence, err := h.sentences.IngestFile(ctx, path, forceChunking)
		if err != nil {
			slog.Error("failed to ingest sentence, keeping staged copy", "file", filepath.Base(path), "err", err)
			failed++
			continue
		}

		if err := h.publisher.PublishSentence(ctx, sentence); err != nil {
			slog.Error("failed to publish sentence, keeping staged copy for retry", "id", sentence.ID, "err", err)
			failed++
			continue
		}

		attrs := make([]record.EmbeddingAttribute, 0, len(sentence.ShortEmbeddings)+len(sentence.LongEmbeddings))
		attrs = append(attrs, sentence.ShortEmbeddings...)
		attrs = append(attrs, sentence.LongEmbeddings...)
		if len(attrs) > 0 {
			ref := vector.RecordRef{ID: sentence.ID, Type: "sentence"}
			if err := h.store.Upsert(ctx, h.collection, vector.CreatePoints(ref, attrs)); err != nil {
				slog.Error("failed to mirror sentence vectors", "id", sentence.ID, "err", err)
			}
		}

		h.finishStagedFile(path, h.dirs.SentencesProcessed())
		processed++
	}

	return processed, failed, nil
}

func (h *Handler) ensureCollection(ctx context.Context) error {
	if err := h.store.EnsureCollection(ctx, h.collection, h.dimensions); err != nil {
		return fmt.Errorf("failed to ensure vector collection '%s': %w", h.collection, err)
	}
	return nil
}

func (h *Handler) finishStagedFile(path string, processedDir string) {
	if err := staging.MoveTo(path, processedDir); err != nil {
		slog.Error("failed to move processed file", "file", filepath.Base(path), "err", err)
	}
}
