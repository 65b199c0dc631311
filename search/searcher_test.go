package search

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/poiesic/clipmind/ai/mock"
	"github.com/poiesic/clipmind/core"
	"github.com/poiesic/clipmind/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore scripts per-stage query results so the retrieval cascade can be
// exercised without a real vector store.
type fakeStore struct {
	// responses are consumed in call order; one entry per Query call.
	responses []queryResponse
	calls     []storage.Filter
}

type queryResponse struct {
	matches []*core.MatchResult
	err     error
}

func (s *fakeStore) Query(ctx context.Context, namespace string, vector []float32, topK int, filter storage.Filter) ([]*core.MatchResult, error) {
	s.calls = append(s.calls, filter)
	if len(s.responses) == 0 {
		return nil, nil
	}
	response := s.responses[0]
	s.responses = s.responses[1:]
	return response.matches, response.err
}

func (s *fakeStore) Upsert(ctx context.Context, namespace string, records []*core.VectorRecord) error {
	return nil
}

func (s *fakeStore) ExistsByURL(ctx context.Context, namespace, url string) (bool, error) {
	return false, nil
}

func (s *fakeStore) Stats(ctx context.Context) (*storage.Stats, error) {
	return &storage.Stats{}, nil
}

func (s *fakeStore) Close() error { return nil }

func match(videoID string, sequence int, kind core.ChunkKind, score float32) *core.MatchResult {
	return &core.MatchResult{
		Metadata: core.ChunkMetadata{
			VideoID:  videoID,
			VideoURL: "https://videos.example.com/" + videoID,
			Sequence: sequence,
			Kind:     kind,
			Title:    "video " + videoID,
			Summary:  "summary of " + videoID,
		},
		Score: score,
	}
}

func pizzaEnhanced() *core.EnhancedQuery {
	return &core.EnhancedQuery{
		Original:       "how do you make pizza dough",
		SearchText:     "making pizza dough from scratch kneading proofing",
		SearchTerms:    []string{"pizza", "dough", "kneading"},
		VisualElements: []string{"flour", "dough"},
		Topics:         []string{"pizza dough", "baking"},
		Temporal:       core.TemporalContext{Recency: core.RecencyAny},
	}
}

func newTestSearcher(t *testing.T, store storage.VectorStore, enhance func(ctx context.Context, query string) (*core.EnhancedQuery, error)) *Searcher {
	t.Helper()

	embedder := mock.NewMockEmbedder()
	enhancer := mock.NewMockQueryEnhancer()
	if enhance != nil {
		enhancer.EnhanceQueryFunc = enhance
	}
	provider := mock.NewMockProviderWithServices(embedder, enhancer)

	searcher, err := NewSearcher(store, provider)
	require.NoError(t, err)
	return searcher
}

func TestNewSearcherRequiresCollaborators(t *testing.T) {
	_, err := NewSearcher(nil, mock.NewMockProvider())
	assert.ErrorIs(t, err, ErrStoreRequired)

	_, err = NewSearcher(&fakeStore{}, nil)
	assert.ErrorIs(t, err, ErrAIProviderRequired)
}

func TestSearchValidatesInput(t *testing.T) {
	searcher := newTestSearcher(t, &fakeStore{}, nil)
	ctx := context.Background()

	_, err := searcher.Search(ctx, "", "pizza", 5)
	assert.ErrorIs(t, err, core.ErrEmptyUserID)

	_, err = searcher.Search(ctx, "user-1", "   ", 5)
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestSearchUsesFilteredStage(t *testing.T) {
	store := &fakeStore{responses: []queryResponse{
		{matches: []*core.MatchResult{
			match("vid-a", 1, core.ChunkKindComprehensive, 0.9),
			match("vid-b", 1, core.ChunkKindComprehensive, 0.7),
		}},
	}}
	searcher := newTestSearcher(t, store, func(ctx context.Context, query string) (*core.EnhancedQuery, error) {
		return pizzaEnhanced(), nil
	})

	results, err := searcher.Search(context.Background(), "user-1", "how do you make pizza dough", 5)
	require.NoError(t, err)
	require.Len(t, results, 2)

	// Only the filtered stage ran.
	assert.Len(t, store.calls, 1)
	assert.NotNil(t, store.calls[0])
	assert.Equal(t, "vid-a", results[0].VideoID)
	assert.Equal(t, "vid-b", results[1].VideoID)
}

func TestSearchFallsThroughEmptyStages(t *testing.T) {
	store := &fakeStore{responses: []queryResponse{
		{matches: nil},                          // filtered: nothing
		{matches: nil},                          // metadata: nothing
		{matches: []*core.MatchResult{match("vid-a", 1, core.ChunkKindComprehensive, 0.8)}},
	}}
	searcher := newTestSearcher(t, store, func(ctx context.Context, query string) (*core.EnhancedQuery, error) {
		return pizzaEnhanced(), nil
	})

	results, err := searcher.Search(context.Background(), "user-1", "pizza dough", 5)
	require.NoError(t, err)
	require.Len(t, results, 1)

	require.Len(t, store.calls, 3)
	// The final stage is unrestricted.
	assert.Nil(t, store.calls[2])
}

func TestSearchStageErrorsFallThrough(t *testing.T) {
	store := &fakeStore{responses: []queryResponse{
		{err: errors.New("filtered query broke")},
		{err: errors.New("metadata query broke")},
		{matches: []*core.MatchResult{match("vid-a", 1, core.ChunkKindComprehensive, 0.8)}},
	}}
	searcher := newTestSearcher(t, store, func(ctx context.Context, query string) (*core.EnhancedQuery, error) {
		return pizzaEnhanced(), nil
	})

	results, err := searcher.Search(context.Background(), "user-1", "pizza dough", 5)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestSearchFinalStageErrorPropagates(t *testing.T) {
	finalErr := errors.New("store unavailable")
	store := &fakeStore{responses: []queryResponse{
		{matches: nil},
		{matches: nil},
		{err: finalErr},
	}}
	searcher := newTestSearcher(t, store, func(ctx context.Context, query string) (*core.EnhancedQuery, error) {
		return pizzaEnhanced(), nil
	})

	_, err := searcher.Search(context.Background(), "user-1", "pizza dough", 5)
	assert.ErrorIs(t, err, finalErr)
}

func TestSearchEnhancementFailureUsesFallback(t *testing.T) {
	store := &fakeStore{responses: []queryResponse{
		// Fallback queries carry search terms, so the filtered stage still runs.
		{matches: []*core.MatchResult{match("vid-a", 1, core.ChunkKindComprehensive, 0.8)}},
	}}
	searcher := newTestSearcher(t, store, func(ctx context.Context, query string) (*core.EnhancedQuery, error) {
		return nil, errors.New("model offline")
	})

	var seen *core.EnhancedQuery
	var sawFallback bool
	monitor := &recordingMonitor{
		onEnhancement: func(enhanced *core.EnhancedQuery, usedFallback bool) {
			seen = enhanced
			sawFallback = usedFallback
		},
	}

	results, err := searcher.SearchWithMonitor(context.Background(), "user-1", "Pizza Dough", 5, monitor)
	require.NoError(t, err)
	assert.Len(t, results, 1)
	assert.True(t, sawFallback)
	require.NotNil(t, seen)
	assert.Equal(t, "Pizza Dough", seen.SearchText)
	assert.Equal(t, []string{"pizza", "dough"}, seen.SearchTerms)
}

func TestSearchReturnsAtMostFiveResults(t *testing.T) {
	matches := make([]*core.MatchResult, 0, 8)
	for i := 0; i < 8; i++ {
		id := fmt.Sprintf("vid-%d", i)
		matches = append(matches, match(id, 1, core.ChunkKindComprehensive, 0.9))
	}
	store := &fakeStore{responses: []queryResponse{{matches: matches}}}
	searcher := newTestSearcher(t, store, func(ctx context.Context, query string) (*core.EnhancedQuery, error) {
		return pizzaEnhanced(), nil
	})

	// Even with a larger topK, a search yields at most five videos.
	results, err := searcher.Search(context.Background(), "user-1", "pizza dough", 10)
	require.NoError(t, err)
	assert.Len(t, results, maxResults)
}

func TestSearchDropsMatchesBelowFloor(t *testing.T) {
	store := &fakeStore{responses: []queryResponse{
		{matches: []*core.MatchResult{
			match("vid-a", 1, core.ChunkKindComprehensive, 0.9),
			match("vid-b", 1, core.ChunkKindComprehensive, 0.3),
		}},
	}}
	searcher := newTestSearcher(t, store, func(ctx context.Context, query string) (*core.EnhancedQuery, error) {
		return pizzaEnhanced(), nil
	})

	results, err := searcher.Search(context.Background(), "user-1", "pizza dough", 5)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "vid-a", results[0].VideoID)
}

// recordingMonitor captures selected monitor callbacks.
type recordingMonitor struct {
	noopMonitor
	onEnhancement func(*core.EnhancedQuery, bool)
	stages        []RetrievalStage
}

func (m *recordingMonitor) AfterEnhancement(enhanced *core.EnhancedQuery, usedFallback bool) {
	if m.onEnhancement != nil {
		m.onEnhancement(enhanced, usedFallback)
	}
}

func (m *recordingMonitor) AfterRetrieval(stage RetrievalStage, matches []*core.MatchResult) {
	m.stages = append(m.stages, stage)
}

func TestSearchMonitorSeesStage(t *testing.T) {
	store := &fakeStore{responses: []queryResponse{
		{matches: nil},
		{matches: []*core.MatchResult{match("vid-a", 1, core.ChunkKindComprehensive, 0.8)}},
	}}
	searcher := newTestSearcher(t, store, func(ctx context.Context, query string) (*core.EnhancedQuery, error) {
		return pizzaEnhanced(), nil
	})

	monitor := &recordingMonitor{}
	_, err := searcher.SearchWithMonitor(context.Background(), "user-1", "pizza dough", 5, monitor)
	require.NoError(t, err)
	assert.Equal(t, []RetrievalStage{StageMetadata}, monitor.stages)
}

func TestEnhancedFilterSkipsEmptyExpansion(t *testing.T) {
	assert.Nil(t, enhancedFilter(&core.EnhancedQuery{SearchText: "plain"}))
	assert.NotNil(t, enhancedFilter(pizzaEnhanced()))
}
