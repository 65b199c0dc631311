package reembed

import (
	"context"
	"fmt"
	"time"

	"github.com/poiesic/clipmind/ai"
	"github.com/poiesic/clipmind/core"
	"github.com/poiesic/clipmind/ingest"
)

// Upserter is the subset of the vector store needed to write back
// re-embedded records.
type Upserter interface {
	Upsert(ctx context.Context, namespace string, records []*core.VectorRecord) error
}

// BatchProcessor regenerates embeddings for batches of vector records.
type BatchProcessor struct {
	store          Upserter
	embedder       ai.Embedder
	maxRetries     int
	retryBaseDelay time.Duration
}

// NewBatchProcessor creates a new batch processor.
// maxRetries: maximum number of retry attempts for embedding API calls
// retryBaseDelay: base delay for exponential backoff
func NewBatchProcessor(store Upserter, embedder ai.Embedder, maxRetries int, retryBaseDelay time.Duration) *BatchProcessor {
	return &BatchProcessor{
		store:          store,
		embedder:       embedder,
		maxRetries:     maxRetries,
		retryBaseDelay: retryBaseDelay,
	}
}

// Process re-embeds a batch of records and writes them back under their
// namespace. The embeddable text is rebuilt from each record's metadata.
// Vectors are normalized after embedding to ensure compatibility with cosine
// similarity.
func (bp *BatchProcessor) Process(ctx context.Context, namespace string, records []*core.VectorRecord) error {
	if len(records) == 0 {
		return nil
	}

	texts := make([]string, len(records))
	for i, record := range records {
		texts[i] = ingest.RenderContent(&record.Metadata)
	}

	var embeddings [][]float32
	err := RetryWithBackoff(ctx, func() error {
		var err error
		embeddings, err = bp.embedder.EmbedTexts(ctx, texts)
		return err
	}, bp.maxRetries, bp.retryBaseDelay)

	if err != nil {
		return fmt.Errorf("failed to generate embeddings after %d attempts: %w", bp.maxRetries, err)
	}

	if len(embeddings) != len(records) {
		return fmt.Errorf("embedding count mismatch: expected %d, got %d", len(records), len(embeddings))
	}

	for i := range records {
		records[i].Vector = NormalizeVector(embeddings[i])
	}

	if err := bp.store.Upsert(ctx, namespace, records); err != nil {
		return fmt.Errorf("failed to update records: %w", err)
	}

	return nil
}
