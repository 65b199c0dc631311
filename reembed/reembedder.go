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

package reembed

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/poiesic/clipmind/ai"
	"github.com/poiesic/clipmind/core"
	"github.com/poiesic/clipmind/storage"
)

// Store is the storage surface the reembedder needs: bulk iteration plus
// write-back.
type Store interface {
	storage.RecordSource
	Upserter
}

// Config holds configuration for the reembedding operation.
type Config struct {
	// BatchSize is the number of records to process in each batch
	BatchSize int

	// ReportInterval is how often to report progress (number of records)
	ReportInterval int

	// MaxRetries is the maximum number of retry attempts for failed operations
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      100,
		ReportInterval: 100,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
	}
}

// Reembedder regenerates the embeddings of every stored record, namespace by
// namespace. Used after switching embedding models.
type Reembedder struct {
	store     Store
	embedder  ai.Embedder
	config    *Config
	progress  io.Writer
	processor *BatchProcessor
}

// NewReembedder creates a new reembedder.
// progress: where to write progress output (typically os.Stderr)
func NewReembedder(store Store, embedder ai.Embedder, config *Config, progress io.Writer) *Reembedder {
	if config == nil {
		config = DefaultConfig()
	}

	return &Reembedder{
		store:     store,
		embedder:  embedder,
		config:    config,
		progress:  progress,
		processor: NewBatchProcessor(store, embedder, config.MaxRetries, config.RetryDelay),
	}
}

// Run executes the reembedding operation across every namespace.
// Progress is reported to the configured writer.
func (r *Reembedder) Run(ctx context.Context) error {
	namespaces, err := r.store.Namespaces(ctx)
	if err != nil {
		return fmt.Errorf("failed to list namespaces: %w", err)
	}

	total := 0
	for _, namespace := range namespaces {
		count := 0
		if err := r.store.Records(ctx, namespace, func(*core.VectorRecord) error {
			count++
			return nil
		}); err != nil {
			return fmt.Errorf("failed to count records in %s: %w", namespace, err)
		}
		total += count
	}

	if total == 0 {
		fmt.Fprintf(r.progress, "No records found in store (0 records)\n")
		return nil
	}

	fmt.Fprintf(r.progress, "Starting reembedding of %d records across %d namespaces (batch size: %d)\n",
		total, len(namespaces), r.config.BatchSize)

	tracker := NewProgressTracker(r.progress, total, r.config.ReportInterval)
	tracker.Start()

	for _, namespace := range namespaces {
		if err := r.reembedNamespace(ctx, namespace, tracker); err != nil {
			return err
		}
	}

	tracker.Finish()

	elapsed := tracker.Elapsed()
	fmt.Fprintf(r.progress, "Reembedding complete. Processed %d records in %v (%.1f records/sec)\n",
		total, elapsed.Round(time.Second), float64(total)/elapsed.Seconds())

	return nil
}

func (r *Reembedder) reembedNamespace(ctx context.Context, namespace string, tracker *ProgressTracker) error {
	var batch []*core.VectorRecord

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := r.processor.Process(ctx, namespace, batch); err != nil {
			return fmt.Errorf("failed to process batch in %s: %w", namespace, err)
		}
		tracker.Increment(len(batch))
		batch = nil
		return nil
	}

	err := r.store.Records(ctx, namespace, func(record *core.VectorRecord) error {
		batch = append(batch, record)
		if len(batch) >= r.config.BatchSize {
			return flush()
		}
		return nil
	})
	if err != nil {
		return err
	}

	return flush()
}
