package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/alexflint/go-arg"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/lexia/lexbrain/internal/embedding"
	"github.com/lexia/lexbrain/internal/ingest"
	"github.com/lexia/lexbrain/internal/tasks"
	"github.com/lexia/lexbrain/internal/vector"
	"github.com/lexia/lexbrain/worker"
)

const (
	ProgramName   = "Lexbrain"
	Version       = "v0.1.0"
	RepositoryUrl = "github.com/lexia/lexbrain"
)

type workCmd struct{}

type normsCmd struct {
	NormType string `arg:"--type" default:"law" help:"norm type to process"`
}

type sentencesCmd struct {
	NoChunking bool `arg:"--no-chunking" help:"publish sentence text without chunked embeddings"`
}

type searchCmd struct {
	Query string `arg:"positional,required" help:"query text"`
	Limit uint   `arg:"--limit,-l" default:"5" help:"maximum number of results"`
}

type args struct {
	Work      *workCmd      `arg:"subcommand:work" help:"start the ingestion worker"`
	Norms     *normsCmd     `arg:"subcommand:norms" help:"enqueue a norms ingestion job"`
	Sentences *sentencesCmd `arg:"subcommand:sentences" help:"enqueue a sentences ingestion job"`
	Search    *searchCmd    `arg:"subcommand:search" help:"semantic search over ingested chunks"`

	Config string `arg:"--config,-c" default:"lexbrain.yaml" help:"path to config file"`
}

func (args) Version() string {
	return fmt.Sprintf("%s %s", ProgramName, Version)
}

func (args) Epilogue() string {
	return fmt.Sprintf("For more information visit %s", RepositoryUrl)
}

func main() {
	var args args

	p, err := arg.NewParser(arg.Config{Program: strings.ToLower(ProgramName)}, &args)
	if err != nil {
		log.Fatalf("there was an error in the definition of the Go struct: %v", err)
	}
	p.MustParse(os.Args[1:])

	if p.Subcommand() == nil {
		p.WriteUsage(os.Stdout)
		os.Exit(0)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	slog.SetDefault(logger)

	conf, err := ReadConfig(args.Config)
	if err != nil {
		log.Fatalf("failed to read config '%s': %v", args.Config, err)
	}

	switch cmd := p.Subcommand().(type) {
	case *workCmd:
		err = startWorker(conf)
	case *normsCmd:
		err = enqueueNorms(conf, cmd)
	case *sentencesCmd:
		err = enqueueSentences(conf, cmd)
	case *searchCmd:
		err = runSearch(conf, cmd)
	default:
		p.FailSubcommand("unrecognized command", p.SubcommandNames()...)
	}

	if err != nil {
		log.Fatal(err)
	}
}

func startWorker(conf *config) error {
	var chunking *ingest.ChunkParams
	if conf.Chunking != nil {
		chunking = &ingest.ChunkParams{
			MaxTokens: conf.Chunking.MaxTokens,
			Overlap:   conf.Chunking.Overlap,
		}
	}

	w := worker.New(worker.Config{
		RedisAddr:     conf.Transport.Addr,
		RedisUsername: conf.Transport.Username,
		RedisPassword: conf.Transport.Password,
		RedisDB:       conf.Transport.DB,

		Concurrency: conf.Worker.Workers,

		QdrantHost: conf.VectorStore.Host,
		QdrantPort: conf.VectorStore.Port,
		Collection: conf.VectorStore.Collection,

		EmbeddingProvider: conf.Embedding.Provider,
		Embedding: embedding.Config{
			Endpoint:   conf.Embedding.Endpoint,
			Model:      conf.Embedding.Model,
			Dimensions: conf.Embedding.Dimensions,
		},

		TokenizerEncoding: conf.TokenizerEncoding,
		ContentAPIURL:     conf.ContentAPIURL,
		DataPath:          conf.DataPath,
		Chunking:          chunking,
	})
	return w.Start()
}

func enqueueNorms(conf *config, cmd *normsCmd) error {
	task, err := tasks.NewNormsTask(cmd.NormType)
	if err != nil {
		return err
	}
	return enqueue(conf, task)
}

func enqueueSentences(conf *config, cmd *sentencesCmd) error {
	task, err := tasks.NewSentencesTask(!cmd.NoChunking)
	if err != nil {
		return err
	}
	return enqueue(conf, task)
}

func enqueue(conf *config, task *asynq.Task) error {
	rdb := redis.NewClient(&redis.Options{
		Addr:     conf.Transport.Addr,
		Username: conf.Transport.Username,
		Password: conf.Transport.Password,
		DB:       conf.Transport.DB,
	})
	defer rdb.Close()

	client := asynq.NewClientFromRedisClient(rdb)
	info, err := client.Enqueue(task)
	if err != nil {
		return fmt.Errorf("failed to enqueue task: %w", err)
	}

	slog.Info("task enqueued", "id", info.ID, "type", info.Type, "queue", info.Queue)
	return nil
}

func runSearch(conf *config, cmd *searchCmd) error {
	ctx := context.Background()

	embedder, err := embedding.NewEmbedder(conf.Embedding.Provider, embedding.Config{
		Endpoint:   conf.Embedding.Endpoint,
		Model:      conf.Embedding.Model,
		Dimensions: conf.Embedding.Dimensions,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize embedding provider: %w", err)
	}

	vectors, err := embedder.Embed(ctx, []string{cmd.Query})
	if err != nil {
		return fmt.Errorf("failed to embed query: %w", err)
	}

	store, err := vector.NewQdrantStore(conf.VectorStore.Host, conf.VectorStore.Port)
	if err != nil {
		return fmt.Errorf("failed to initialize vector store: %w", err)
	}
	defer store.Close()

	params := vector.NewQueryParams(
		conf.VectorStore.Collection,
		vectors[0],
		vector.WithPayload(true),
		vector.WithLimit(cmd.Limit),
	)

	hits, err := store.Query(ctx, params)
	if err != nil {
		return fmt.Errorf("search query failed: %w", err)
	}

	for _, hit := range hits {
		fmt.Printf("%.4f\t%s (%s)\n", hit.Score, hit.Payload["record_id"], hit.Payload["embedding_type"])
		fmt.Printf("\t%s\n\n", hit.Payload["chunk"])
	}
	return nil
}
