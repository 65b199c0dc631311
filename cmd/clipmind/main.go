// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/poiesic/clipmind"
	"github.com/poiesic/clipmind/ai"
	"github.com/poiesic/clipmind/ai/openai"
	"github.com/poiesic/clipmind/core"
	"github.com/poiesic/clipmind/ingest"
	"github.com/poiesic/clipmind/reembed"
	"github.com/poiesic/clipmind/storage/badgerstore"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:   "clipmind",
		Usage:  "Retrieval-augmented memory engine for analyzed videos",
		Before: setupLogger,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "submit",
				Usage:  "Ingest one analyzed video from a JSON analysis file",
				Action: submitCommand,
				Flags: append(storeAndAIFlags(),
					&cli.StringFlag{
						Name:     "user",
						Aliases:  []string{"u"},
						Usage:    "User whose library receives the video",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "analysis",
						Aliases:  []string{"a"},
						Usage:    "Path to the JSON video analysis",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "url",
						Usage:    "Source URL of the video",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "account-id",
						Usage: "Account ID of the submitting user",
					},
					&cli.StringFlag{
						Name:  "username",
						Usage: "Username of the submitting user",
					},
					&cli.StringFlag{
						Name:  "display-name",
						Usage: "Display name of the submitting user",
					},
					&cli.StringFlag{
						Name:  "media-type",
						Usage: "Media type of the submission",
						Value: "video",
					},
				),
			},
			{
				Name:      "search",
				Usage:     "Search a user's ingested videos",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: append(storeAndAIFlags(),
					&cli.StringFlag{
						Name:     "user",
						Aliases:  []string{"u"},
						Usage:    "User whose library is searched",
						Required: true,
					},
					&cli.IntFlag{
						Name:    "top-k",
						Aliases: []string{"k"},
						Usage:   "Maximum number of videos to return",
						Value:   5,
					},
				),
			},
			{
				Name:   "stats",
				Usage:  "Print record and namespace counts",
				Action: statsCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "store",
						Aliases:  []string{"s"},
						Usage:    "Path to the vector store directory",
						Required: true,
					},
				},
			},
			{
				Name:   "reembed",
				Usage:  "Reembed all stored records with new embeddings",
				Action: reembedCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "store",
						Aliases:  []string{"s"},
						Usage:    "Path to the vector store directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:     "embedding-model",
						Usage:    "Embedding model name",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of records to process in each batch",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N records",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed operations",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func storeAndAIFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "store",
			Aliases:  []string{"s"},
			Usage:    "Path to the vector store directory",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "host",
			Usage: "OpenAI-compatible service host URL",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: "text-embedding-3-large",
		},
		&cli.StringFlag{
			Name:  "enhancer-model",
			Usage: "Model used for query enhancement",
			Value: "qwen2.5:3b",
		},
	}
}

func openEngine(c *cli.Context) (*clipmind.Engine, error) {
	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithEnhancerModel(c.String("enhancer-model")),
	)
	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	engine, err := clipmind.NewEngine(c.String("store"), clipmind.WithAIConfig(aiConfig))
	if err != nil {
		return nil, fmt.Errorf("failed to open engine: %w", err)
	}
	return engine, nil
}

func submitCommand(c *cli.Context) error {
	ctx := context.Background()

	data, err := os.ReadFile(c.String("analysis"))
	if err != nil {
		return fmt.Errorf("failed to read analysis file: %w", err)
	}

	var analysis core.SourceAnalysis
	if err := json.Unmarshal(data, &analysis); err != nil {
		return fmt.Errorf("failed to parse analysis file: %w", err)
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	sub := core.Submission{
		MediaType:   c.String("media-type"),
		AccountID:   c.String("account-id"),
		Username:    c.String("username"),
		DisplayName: c.String("display-name"),
		SourceURL:   c.String("url"),
	}

	jobID, err := engine.SubmitVideo(ctx, c.String("user"), &analysis, sub)
	if errors.Is(err, ingest.ErrAlreadyProcessed) {
		fmt.Println("Video already processed, nothing to do.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to submit video: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Submitted job %s, waiting for ingestion...\n", jobID)
	engine.WaitForIngestion()

	exists, err := engine.Store().ExistsByURL(ctx, c.String("user"), c.String("url"))
	if err != nil {
		return fmt.Errorf("failed to verify ingestion: %w", err)
	}
	if !exists {
		return fmt.Errorf("ingestion of job %s did not complete", jobID)
	}

	fmt.Println("Video ingested.")
	return nil
}

func searchCommand(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("a search query is required")
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	results, err := engine.Search(context.Background(), c.String("user"), query, c.Int("top-k"))
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(results) == 0 {
		fmt.Println("No matching videos found.")
		return nil
	}

	for i, result := range results {
		fmt.Printf("%d. %s (score %.3f)\n", i+1, result.Title, result.Score)
		fmt.Printf("   %s\n", result.VideoURL)
		if result.Summary != "" {
			fmt.Printf("   %s\n", result.Summary)
		}
		if len(result.Topics) > 0 {
			names := make([]string, len(result.Topics))
			for j, topic := range result.Topics {
				names[j] = topic.Name
			}
			fmt.Printf("   Topics: %s\n", strings.Join(names, ", "))
		}
		fmt.Printf("   Matched chunks: %d (best %.3f, avg %.3f)\n",
			len(result.Chunks), result.MaxScore, result.AvgScore)
	}

	return nil
}

func statsCommand(c *cli.Context) error {
	backend, err := badgerstore.OpenBackend(c.String("store"), false)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer backend.Close()

	store, err := badgerstore.NewStore(backend)
	if err != nil {
		return fmt.Errorf("failed to create store: %w", err)
	}

	stats, err := store.Stats(context.Background())
	if err != nil {
		return fmt.Errorf("failed to read stats: %w", err)
	}

	fmt.Printf("Namespaces: %d\n", stats.Namespaces)
	fmt.Printf("Records:    %d\n", stats.Records)
	return nil
}

func reembedCommand(c *cli.Context) error {
	ctx := context.Background()

	backend, err := badgerstore.OpenBackend(c.String("store"), false)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer backend.Close()

	store, err := badgerstore.NewStore(backend)
	if err != nil {
		return fmt.Errorf("failed to create store: %w", err)
	}

	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		// Enhancer values are unused during reembedding
		ai.WithEnhancerHost(c.String("embedding-host")),
		ai.WithEnhancerModel("dummy"),
	)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	embedder, err := openai.NewEmbedder(aiConfig)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}

	reembedConfig := &reembed.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
	}
	if reembedConfig.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if reembedConfig.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if reembedConfig.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	reembedder := reembed.NewReembedder(store, embedder, reembedConfig, os.Stderr)

	fmt.Fprintf(os.Stderr, "Store: %s\n", c.String("store"))
	fmt.Fprintf(os.Stderr, "Embedding host: %s\n", c.String("embedding-host"))
	fmt.Fprintf(os.Stderr, "Embedding model: %s\n", c.String("embedding-model"))
	fmt.Fprintln(os.Stderr)

	if err := reembedder.Run(ctx); err != nil {
		return fmt.Errorf("reembedding failed: %w", err)
	}

	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
