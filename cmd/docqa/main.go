// Command docqa answers questions over tenant document collections.
//
// Configuration comes from the environment:
//
//	DOCQA_COLLECTIONS  path to the collections TOML file (default ~/.docqa/collections.toml)
//	OPENAI_API_KEY     OpenAI API key for embeddings and chat
//	OLLAMA_HOST        if set, chat completions go to Ollama at this URL instead of OpenAI
//	DATABASE_URL       if set, chunk vectors live in Postgres/pgvector instead of memory
//	REDIS_ADDR         if set, answers are cached in Redis instead of memory
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	cachemem "github.com/custodia-labs/docqa/internal/adapters/driven/cache/memory"
	cacheredis "github.com/custodia-labs/docqa/internal/adapters/driven/cache/redis"
	embeddingopenai "github.com/custodia-labs/docqa/internal/adapters/driven/embedding/openai"
	llmollama "github.com/custodia-labs/docqa/internal/adapters/driven/llm/ollama"
	llmopenai "github.com/custodia-labs/docqa/internal/adapters/driven/llm/openai"
	registryfile "github.com/custodia-labs/docqa/internal/adapters/driven/registry/file"
	vectormem "github.com/custodia-labs/docqa/internal/adapters/driven/vectorstore/memory"
	vectorpg "github.com/custodia-labs/docqa/internal/adapters/driven/vectorstore/pgvector"
	"github.com/custodia-labs/docqa/internal/adapters/driving/cli"
	"github.com/custodia-labs/docqa/internal/chunker"
	"github.com/custodia-labs/docqa/internal/core/ports/driven"
	"github.com/custodia-labs/docqa/internal/core/services"
)

// version is overridden at build time via ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	registry, err := newRegistry()
	if err != nil {
		return err
	}
	defer registry.Close()

	embedder, err := embeddingopenai.New(embeddingopenai.Config{
		APIKey: os.Getenv("OPENAI_API_KEY"),
		Model:  os.Getenv("DOCQA_EMBEDDING_MODEL"),
	})
	if err != nil {
		return err
	}
	defer embedder.Close()

	llm, err := newLLM()
	if err != nil {
		return err
	}
	defer llm.Close()

	index, err := newVectorIndex(ctx, embedder.Dimensions())
	if err != nil {
		return err
	}
	defer index.Close()

	cache, err := newCache(ctx)
	if err != nil {
		return err
	}
	defer cache.Close()

	splitter := chunker.New()
	ingest := services.NewIngestService(registry, embedder, index, splitter)
	retriever := services.NewRetriever(embedder, index)
	assembler := services.NewAssembler()
	generator := services.NewGenerator(llm)
	engine := services.NewEngine(registry, ingest, retriever, assembler, generator,
		services.WithCache(cache, services.DefaultCacheTTL))

	cli.SetEngine(engine)
	cli.SetRegistry(registry)
	cli.SetVersion(version)

	return cli.Execute()
}

func newRegistry() (*registryfile.Registry, error) {
	path := os.Getenv("DOCQA_COLLECTIONS")
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(home, ".docqa", "collections.toml")
	}
	return registryfile.NewRegistry(path)
}

func newLLM() (driven.LLMService, error) {
	if host := os.Getenv("OLLAMA_HOST"); host != "" {
		return llmollama.New(llmollama.Config{
			BaseURL: host,
			Model:   os.Getenv("DOCQA_CHAT_MODEL"),
		}), nil
	}
	return llmopenai.New(llmopenai.Config{
		APIKey: os.Getenv("OPENAI_API_KEY"),
		Model:  os.Getenv("DOCQA_CHAT_MODEL"),
	})
}

func newVectorIndex(ctx context.Context, dimensions int) (driven.VectorIndex, error) {
	if connString := os.Getenv("DATABASE_URL"); connString != "" {
		return vectorpg.New(ctx, vectorpg.Config{
			ConnString: connString,
			Dimensions: dimensions,
		})
	}
	return vectormem.NewIndex(), nil
}

func newCache(ctx context.Context) (driven.AnswerCache, error) {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		return cacheredis.New(ctx, cacheredis.Config{
			Addr:     addr,
			Password: os.Getenv("REDIS_PASSWORD"),
		})
	}
	return cachemem.NewCache(), nil
}
