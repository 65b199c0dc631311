package reembed

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/poiesic/clipmind/ai/mock"
	"github.com/poiesic/clipmind/core"
	"github.com/poiesic/clipmind/storage/badgerstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedStore(t *testing.T, store *badgerstore.Store, namespace string, count int) {
	t.Helper()

	records := make([]*core.VectorRecord, count)
	for i := 0; i < count; i++ {
		records[i] = &core.VectorRecord{
			ID:     namespace + "-rec-" + string(rune('a'+i)),
			Vector: []float32{9, 9, 9}, // stale embedding
			Metadata: core.ChunkMetadata{
				VideoID:  "vid-" + string(rune('a'+i)),
				Kind:     core.ChunkKindComprehensive,
				Title:    "title " + string(rune('a'+i)),
				Summary:  "summary",
				Sequence: 1,
			},
		}
	}
	require.NoError(t, store.Upsert(context.Background(), namespace, records))
}

func TestReembedderRunRewritesVectors(t *testing.T) {
	store, err := badgerstore.NewMemoryStore()
	require.NoError(t, err)
	defer store.Close()

	seedStore(t, store, "user-1", 3)
	seedStore(t, store, "user-2", 2)

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		out := make([][]float32, len(texts))
		for i := range texts {
			out[i] = []float32{1, 2, 2}
		}
		return out, nil
	}

	var progress bytes.Buffer
	reembedder := NewReembedder(store, embedder, &Config{
		BatchSize:      2,
		ReportInterval: 1,
		MaxRetries:     2,
		RetryDelay:     time.Millisecond,
	}, &progress)

	require.NoError(t, reembedder.Run(context.Background()))

	// Every record now carries the normalized new embedding.
	want := NormalizeVector([]float32{1, 2, 2})
	for _, namespace := range []string{"user-1", "user-2"} {
		err := store.Records(context.Background(), namespace, func(record *core.VectorRecord) error {
			assert.InDeltaSlice(t, want, record.Vector, 1e-6)
			return nil
		})
		require.NoError(t, err)
	}

	assert.Contains(t, progress.String(), "Starting reembedding of 5 records across 2 namespaces")
	assert.Contains(t, progress.String(), "Reembedding complete")
}

func TestReembedderRunEmptyStore(t *testing.T) {
	store, err := badgerstore.NewMemoryStore()
	require.NoError(t, err)
	defer store.Close()

	var progress bytes.Buffer
	reembedder := NewReembedder(store, mock.NewMockEmbedder(), nil, &progress)

	require.NoError(t, reembedder.Run(context.Background()))
	assert.Contains(t, progress.String(), "No records found")
}

func TestReembedderRunPropagatesEmbedderFailure(t *testing.T) {
	store, err := badgerstore.NewMemoryStore()
	require.NoError(t, err)
	defer store.Close()

	seedStore(t, store, "user-1", 1)

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, errors.New("embedding service down")
	}

	var progress bytes.Buffer
	reembedder := NewReembedder(store, embedder, &Config{
		BatchSize:      10,
		ReportInterval: 10,
		MaxRetries:     2,
		RetryDelay:     time.Millisecond,
	}, &progress)

	err = reembedder.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "embedding service down")
}
