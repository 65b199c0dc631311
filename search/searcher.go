package search

import (
	"context"
	"log/slog"
	"strings"

	"github.com/poiesic/clipmind/ai"
	"github.com/poiesic/clipmind/core"
	"github.com/poiesic/clipmind/storage"
)

// defaultTopK is used when the caller does not request a result count.
const defaultTopK = 5

// Searcher provides multi-stage retrieval over a user's ingested videos:
// query enhancement, tiered vector search, per-video aggregation, and hybrid
// re-ranking.
type Searcher struct {
	store     storage.VectorStore
	embedder  ai.Embedder
	enhancer  ai.QueryEnhancer
	retriever *retriever
	logger    *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(store storage.VectorStore, provider ai.AIProvider, opts ...Option) (*Searcher, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	s := &Searcher{
		store:    store,
		embedder: provider.Embedder(),
		enhancer: provider.QueryEnhancer(),
		logger:   slog.Default().With("component", "search"),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	s.retriever = &retriever{store: store, logger: s.logger}
	return s, nil
}

// Search finds the user's videos most relevant to the query.
// Returns at most five results, one per video, ranked by relevance; topK
// widens the candidate pool feeding aggregation and re-ranking.
func (s *Searcher) Search(ctx context.Context, userID, query string, topK int) ([]*core.AggregatedResult, error) {
	return s.SearchWithMonitor(ctx, userID, query, topK, nil)
}

// SearchWithMonitor is Search with stage-by-stage observation hooks.
// The monitor receives callbacks as the query moves through enhancement,
// retrieval, aggregation, and re-ranking.
func (s *Searcher) SearchWithMonitor(ctx context.Context, userID, query string, topK int, monitor SearchMonitor) ([]*core.AggregatedResult, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	if userID == "" {
		return nil, core.ErrEmptyUserID
	}
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	if topK < 1 {
		topK = defaultTopK
	}

	monitor.Start(query)

	// Enhancement failures degrade to a lexical fallback; a broken enhancer
	// must never make search unavailable.
	enhanced, err := s.enhancer.EnhanceQuery(ctx, query)
	usedFallback := false
	if err != nil {
		s.logger.Warn("query enhancement failed, using fallback", "query", query, "err", err)
		enhanced = ai.FallbackQuery(query)
		usedFallback = true
	}
	monitor.AfterEnhancement(enhanced, usedFallback)

	// The enhanced search text is embedded once and reused by every
	// retrieval stage.
	vector, err := s.embedder.EmbedText(ctx, enhanced.SearchText)
	if err != nil {
		s.logger.Error("error embedding query", "query", query, "err", err)
		return nil, err
	}

	matches, err := s.retriever.retrieve(ctx, userID, vector, enhanced, topK, monitor)
	if err != nil {
		s.logger.Error("retrieval failed", "userId", userID, "err", err)
		return nil, err
	}

	results := aggregate(matches, topK)
	monitor.AfterAggregation(results)

	results = rerank(results, enhanced)
	monitor.Finish(results)

	return results, nil
}
