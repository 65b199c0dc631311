package reembed

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/poiesic/clipmind/ai/mock"
	"github.com/poiesic/clipmind/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingUpserter captures upserted batches.
type recordingUpserter struct {
	namespaces []string
	batches    [][]*core.VectorRecord
	err        error
}

func (u *recordingUpserter) Upsert(ctx context.Context, namespace string, records []*core.VectorRecord) error {
	if u.err != nil {
		return u.err
	}
	u.namespaces = append(u.namespaces, namespace)
	u.batches = append(u.batches, records)
	return nil
}

func testRecord(id string) *core.VectorRecord {
	return &core.VectorRecord{
		ID:     id,
		Vector: []float32{9, 9},
		Metadata: core.ChunkMetadata{
			Kind:    core.ChunkKindComprehensive,
			Title:   "title of " + id,
			Summary: "summary",
		},
	}
}

func TestBatchProcessorReembedsAndNormalizes(t *testing.T) {
	upserter := &recordingUpserter{}
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		// The text is rebuilt from metadata, not from the old vector.
		for _, text := range texts {
			assert.Contains(t, text, "Title: title of")
		}
		out := make([][]float32, len(texts))
		for i := range texts {
			out[i] = []float32{0, 3}
		}
		return out, nil
	}

	processor := NewBatchProcessor(upserter, embedder, 2, time.Millisecond)
	records := []*core.VectorRecord{testRecord("a"), testRecord("b")}

	require.NoError(t, processor.Process(context.Background(), "user-1", records))

	require.Len(t, upserter.batches, 1)
	assert.Equal(t, []string{"user-1"}, upserter.namespaces)
	for _, record := range upserter.batches[0] {
		assert.Equal(t, []float32{0, 1}, record.Vector)
	}
}

func TestBatchProcessorEmptyBatch(t *testing.T) {
	processor := NewBatchProcessor(&recordingUpserter{}, mock.NewMockEmbedder(), 2, time.Millisecond)
	require.NoError(t, processor.Process(context.Background(), "user-1", nil))
}

func TestBatchProcessorCountMismatch(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return [][]float32{{1}}, nil
	}

	processor := NewBatchProcessor(&recordingUpserter{}, embedder, 1, time.Millisecond)
	err := processor.Process(context.Background(), "user-1", []*core.VectorRecord{testRecord("a"), testRecord("b")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "embedding count mismatch")
}

func TestBatchProcessorUpsertFailure(t *testing.T) {
	upserter := &recordingUpserter{err: errors.New("disk full")}
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		out := make([][]float32, len(texts))
		for i := range texts {
			out[i] = []float32{1, 0}
		}
		return out, nil
	}

	processor := NewBatchProcessor(upserter, embedder, 1, time.Millisecond)
	err := processor.Process(context.Background(), "user-1", []*core.VectorRecord{testRecord("a")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}
