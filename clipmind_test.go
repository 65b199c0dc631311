package clipmind

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/poiesic/clipmind/ai/mock"
	"github.com/poiesic/clipmind/core"
	"github.com/poiesic/clipmind/ingest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAnalysis() *core.SourceAnalysis {
	return &core.SourceAnalysis{
		Title:   "Making Pizza Dough",
		Summary: "A cook demonstrates kneading and proofing pizza dough from scratch.",
		Scenes: []core.VisualScene{
			{Timestamp: "00:05", Scene: "mixing flour and water", KeyElements: []string{"flour", "water"}},
		},
		Topics:   []core.TopicEntry{{Name: "pizza dough", Relevance: 0.95}},
		Keywords: []string{"pizza", "dough"},
	}
}

func testSubmission(url string) core.Submission {
	return core.Submission{
		MediaType: "video",
		AccountID: "acct-1",
		Username:  "breadhead",
		SourceURL: url,
	}
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()

	// A constant embedding makes every stored chunk a perfect similarity
	// match, so the tests exercise the pipeline rather than the model.
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return []float32{1, 0, 0}, nil
	}
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		out := make([][]float32, len(texts))
		for i := range texts {
			out[i] = []float32{1, 0, 0}
		}
		return out, nil
	}

	engine, err := NewEngine(filepath.Join(t.TempDir(), "test_store"),
		WithProvider(mock.NewMockProviderWithServices(embedder, mock.NewMockQueryEnhancer())),
	)
	require.NoError(t, err)
	t.Cleanup(func() { engine.Close() })
	return engine
}

func TestNewEngine(t *testing.T) {
	engine := newTestEngine(t)

	assert.NotNil(t, engine.Store())
	assert.NotNil(t, engine.Provider())
	assert.NotNil(t, engine.queue)
	assert.NotNil(t, engine.searcher)
}

func TestEngineSubmitAndSearch(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	jobID, err := engine.SubmitVideo(ctx, "user-1", testAnalysis(), testSubmission("https://videos.example.com/pizza"))
	require.NoError(t, err)
	assert.NotEmpty(t, jobID)

	engine.WaitForIngestion()

	exists, err := engine.Store().ExistsByURL(ctx, "user-1", "https://videos.example.com/pizza")
	require.NoError(t, err)
	assert.True(t, exists)

	// Resubmitting the same video is rejected.
	_, err = engine.SubmitVideo(ctx, "user-1", testAnalysis(), testSubmission("https://videos.example.com/pizza"))
	assert.ErrorIs(t, err, ingest.ErrAlreadyProcessed)

	// The mock embedder is deterministic, so the stored chunks are findable.
	results, err := engine.Search(ctx, "user-1", "Making Pizza Dough", 5)
	require.NoError(t, err)
	if assert.NotEmpty(t, results) {
		assert.Equal(t, "Making Pizza Dough", results[0].Title)
		assert.Equal(t, "https://videos.example.com/pizza", results[0].VideoURL)
	}
}

func TestEngineSearchIsolatesUsers(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	_, err := engine.SubmitVideo(ctx, "user-1", testAnalysis(), testSubmission("https://videos.example.com/pizza"))
	require.NoError(t, err)
	engine.WaitForIngestion()

	results, err := engine.Search(ctx, "user-2", "Making Pizza Dough", 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}
