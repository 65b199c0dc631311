package openai

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/poiesic/clipmind/ai"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
	"golang.org/x/time/rate"
)

const (
	embedMaxAttempts = 3
	embedRetryDelay  = 500 * time.Millisecond
)

// Embedder implements ai.Embedder using OpenAI-compatible embedding APIs.
// Requests are paced by a token-bucket limiter sized to the configured
// ceiling; batch calls additionally pause between batches.
type Embedder struct {
	embedder   embeddings.Embedder
	limiter    *rate.Limiter
	wait       bool
	batchSize  int
	batchPause time.Duration
	dimensions int
	logger     *slog.Logger
}

// newEmbedder is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newEmbedder(config *ai.Config) (*Embedder, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Create OpenAI client configured for embeddings
	// Use "none" as token for local OpenAI-compatible services that don't require authentication
	client, err := openai.New(
		openai.WithBaseURL(config.EmbeddingHost),
		openai.WithToken("none"),
		openai.WithEmbeddingModel(config.EmbeddingModel),
	)
	if err != nil {
		return nil, err
	}

	embedder, err := embeddings.NewEmbedder(client, embeddings.WithStripNewLines(true))
	if err != nil {
		return nil, err
	}

	perRequest := config.RateWindow / time.Duration(config.RateLimit)
	return &Embedder{
		embedder:   embedder,
		limiter:    rate.NewLimiter(rate.Every(perRequest), config.RateLimit),
		wait:       config.WaitOnRateLimit,
		batchSize:  config.EmbedBatchSize,
		batchPause: config.EmbedBatchPause,
		dimensions: config.EmbeddingDimensions,
		logger:     slog.Default().With("component", "openai-embedder"),
	}, nil
}

// NewEmbedder creates a new embedder using the provided configuration.
//
// Returns ai.Embedder interface to enforce abstraction.
func NewEmbedder(config *ai.Config) (ai.Embedder, error) {
	return newEmbedder(config)
}

// acquire reserves one request slot, blocking until the window allows it or,
// in fail-fast mode, returning ErrRateLimited immediately.
func (e *Embedder) acquire(ctx context.Context) error {
	if e.wait {
		return e.limiter.Wait(ctx)
	}
	if !e.limiter.Allow() {
		return ai.ErrRateLimited
	}
	return nil
}

// EmbedText generates a vector embedding for a single text string.
func (e *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	e.logger.Debug("generating embedding for single text", "length", len(text))

	if err := e.acquire(ctx); err != nil {
		return nil, err
	}

	var result []float32
	err := e.withRetry(ctx, func() error {
		vectors, err := e.embedder.EmbedDocuments(ctx, []string{text})
		if err != nil {
			return err
		}
		if len(vectors) == 0 {
			return ai.ErrEmptyResponse
		}
		result = vectors[0]
		return nil
	})
	if err != nil {
		e.logger.Error("failed to generate embedding", "err", err)
		return nil, err
	}
	if err := e.checkDimensions(result); err != nil {
		return nil, err
	}
	return result, nil
}

// checkDimensions rejects a model response of the wrong vector dimension.
// A mismatch means the configured model changed, and mixing dimensions in
// the vector store would corrupt similarity scoring.
func (e *Embedder) checkDimensions(vector []float32) error {
	if len(vector) != e.dimensions {
		return fmt.Errorf("%w: model returned %d dimensions, expected %d",
			ai.ErrDimensionMismatch, len(vector), e.dimensions)
	}
	return nil
}

// EmbedTexts generates vector embeddings for multiple text strings.
// Texts are processed in fixed-size batches with an inter-batch pause to stay
// under the request ceiling.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	e.logger.Debug("generating embeddings for texts", "count", len(texts))

	result := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += e.batchSize {
		end := min(start+e.batchSize, len(texts))
		batch := texts[start:end]

		if start > 0 && e.batchPause > 0 {
			timer := time.NewTimer(e.batchPause)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, ctx.Err()
			case <-timer.C:
			}
		}

		if err := e.acquire(ctx); err != nil {
			return nil, err
		}

		var vectors [][]float32
		err := e.withRetry(ctx, func() error {
			var err error
			vectors, err = e.embedder.EmbedDocuments(ctx, batch)
			return err
		})
		if err != nil {
			e.logger.Error("failed to generate embeddings", "batch", start/e.batchSize, "err", err)
			return nil, err
		}
		for _, vector := range vectors {
			if err := e.checkDimensions(vector); err != nil {
				return nil, err
			}
		}
		result = append(result, vectors...)
	}

	return result, nil
}

// withRetry retries a transient embedding failure with doubling delay.
func (e *Embedder) withRetry(ctx context.Context, operation func() error) error {
	var lastErr error
	delay := embedRetryDelay
	for attempt := 1; attempt <= embedMaxAttempts; attempt++ {
		lastErr = operation()
		if lastErr == nil {
			return nil
		}
		if attempt == embedMaxAttempts {
			break
		}

		e.logger.Debug("embedding call failed, will retry", "attempt", attempt, "err", lastErr)
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay *= 2
	}
	return lastErr
}
