package ai

import (
	"context"

	"github.com/poiesic/clipmind/core"
)

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings.
	// Implementations process the texts in batches and pace requests to stay
	// under the provider's rate ceiling. The returned slice contains
	// embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// QueryEnhancer expands a raw user query into search terms and hints using a
// language model. Implementations must be thread-safe for concurrent use.
//
// Enhancement is an optional improvement, never a hard dependency: callers
// fall back to FallbackQuery when EnhanceQuery fails.
type QueryEnhancer interface {
	// EnhanceQuery analyzes the query and returns its expanded form: search
	// text, search terms, visual-element hints, topic hints and temporal
	// context. Returns an error if the model call or response parsing fails.
	EnhanceQuery(ctx context.Context, query string) (*core.EnhancedQuery, error)
}

// AIProvider aggregates AI services for convenient initialization and
// lifecycle management. A provider creates and manages Embedder and
// QueryEnhancer instances, ensuring they share configuration and resources.
type AIProvider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// QueryEnhancer returns the query enhancement service.
	// The returned QueryEnhancer is safe for concurrent use.
	QueryEnhancer() QueryEnhancer

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
