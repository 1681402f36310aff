package worker

import (
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/lexia/lexbrain/internal/contentapi"
	"github.com/lexia/lexbrain/internal/embedding"
	"github.com/lexia/lexbrain/internal/ingest"
	"github.com/lexia/lexbrain/internal/ingestor"
	"github.com/lexia/lexbrain/internal/staging"
	"github.com/lexia/lexbrain/internal/tasks"
	"github.com/lexia/lexbrain/internal/tokenizer"
	"github.com/lexia/lexbrain/internal/transport"
	"github.com/lexia/lexbrain/internal/vector"
)

type Config struct {
	RedisAddr     string
	RedisUsername string
	RedisPassword string
	RedisDB       int

	Concurrency int

	QdrantHost string
	QdrantPort int
	Collection string

	EmbeddingProvider string
	Embedding         embedding.Config

	TokenizerEncoding string
	ContentAPIURL     string
	DataPath          string

	Chunking *ingest.ChunkParams
}

type Worker struct {
	conf Config

	rdb         *redis.Client
	asynqServer *asynq.Server
}

func New(conf Config) *Worker {
	if conf.Concurrency <= 0 {
		conf.Concurrency = 10
	}
	return &Worker{conf: conf}
}

func (w *Worker) Start() error {
	w.rdb = redis.NewClient(&redis.Options{
		Addr:     w.conf.RedisAddr,
		Username: w.conf.RedisUsername,
		Password: w.conf.RedisPassword,
		DB:       w.conf.RedisDB,
	})
	defer w.rdb.Close()

	w.asynqServer = asynq.NewServerFromRedisClient(
		w.rdb,
		asynq.Config{Concurrency: w.conf.Concurrency},
	)

	codec, err := tokenizer.New(w.conf.TokenizerEncoding)
	if err != nil {
		return fmt.Errorf("failed to initialize tokenizer: %w", err)
	}

	embedder, err := embedding.NewEmbedder(w.conf.EmbeddingProvider, w.conf.Embedding)
	if err != nil {
		return fmt.Errorf("failed to initialize embedding provider: %w", err)
	}

	store, err := vector.NewQdrantStore(w.conf.QdrantHost, w.conf.QdrantPort)
	if err != nil {
		return fmt.Errorf("failed to initialize vector store: %w", err)
	}
	defer store.Close()

	dirs := staging.Dirs{Base: w.conf.DataPath}
	if err := dirs.Ensure(); err != nil {
		return err
	}

	pipeline := ingest.New(codec, embedder)

	handler := tasks.NewHandler(
		transport.NewRedisTransport(w.rdb),
		contentapi.NewClient(w.conf.ContentAPIURL),
		store,
		ingestor.NewNormIngestor(pipeline),
		ingestor.NewSentenceIngestor(pipeline, w.conf.Chunking),
		dirs,
		w.conf.Collection,
		embedder.Dimensions(),
	)

	mux := asynq.NewServeMux()
	mux.Handle(tasks.TypeNorms, handler)
	mux.Handle(tasks.TypeSentences, handler)

	return w.asynqServer.Run(mux)
}
