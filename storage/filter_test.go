package storage

import (
	"testing"

	"github.com/poiesic/clipmind/core"
	"github.com/stretchr/testify/assert"
)

func testMetadata() *core.ChunkMetadata {
	return &core.ChunkMetadata{
		VideoID: "abc123",
		Title:   "Pizza Making Tutorial",
		Summary: "Dough from scratch",
		Kind:    core.ChunkKindComprehensive,
		Scenes: []core.VisualScene{
			{Timestamp: "00:15", Scene: "kneading dough", KeyElements: []string{"flour", "yeast"}},
		},
		Topics:   []core.TopicEntry{{Name: "Pizza Dough", Relevance: 0.9}},
		Keywords: []string{"pizza", "dough", "tutorial"},
	}
}

func TestFilter_Eq(t *testing.T) {
	m := testMetadata()

	assert.True(t, Eq(FieldVideoID, "abc123").Matches(m))
	assert.False(t, Eq(FieldVideoID, "other").Matches(m))
	assert.True(t, Eq(FieldKind, "comprehensive").Matches(m))
	// Eq is exact, not case-insensitive
	assert.False(t, Eq(FieldTitle, "pizza making tutorial").Matches(m))
}

func TestFilter_In(t *testing.T) {
	m := testMetadata()

	t.Run("set membership on topics", func(t *testing.T) {
		assert.True(t, In(FieldTopics, "pizza dough").Matches(m))
		assert.True(t, In(FieldTopics, "Pizza Dough").Matches(m))
		assert.False(t, In(FieldTopics, "pasta").Matches(m))
	})

	t.Run("set membership on keywords", func(t *testing.T) {
		assert.True(t, In(FieldKeywords, "DOUGH").Matches(m))
		assert.False(t, In(FieldKeywords, "bread").Matches(m))
	})

	t.Run("set membership on key elements", func(t *testing.T) {
		assert.True(t, In(FieldKeyElements, "flour", "water").Matches(m))
		assert.False(t, In(FieldKeyElements, "water").Matches(m))
	})

	t.Run("scalar equality", func(t *testing.T) {
		assert.True(t, In(FieldTitle, "pizza making tutorial").Matches(m))
		assert.False(t, In(FieldTitle, "other title").Matches(m))
	})
}

func TestFilter_Exists(t *testing.T) {
	m := testMetadata()
	empty := &core.ChunkMetadata{Title: "   "}

	assert.True(t, Exists(FieldTitle).Matches(m))
	assert.True(t, Exists(FieldTopics).Matches(m))
	assert.False(t, Exists(FieldTitle).Matches(empty))
	assert.False(t, Exists(FieldSummary).Matches(empty))
	assert.False(t, Exists(FieldTopics).Matches(empty))
}

func TestFilter_AndOr(t *testing.T) {
	m := testMetadata()

	matching := And(
		Exists(FieldTitle),
		Exists(FieldSummary),
		Or(
			In(FieldTopics, "pizza dough"),
			In(FieldKeyElements, "spatula"),
		),
	)
	assert.True(t, matching.Matches(m))

	failing := And(
		Exists(FieldTitle),
		Or(
			In(FieldTopics, "pasta"),
			In(FieldKeywords, "bread"),
		),
	)
	assert.False(t, failing.Matches(m))

	t.Run("empty And matches everything", func(t *testing.T) {
		assert.True(t, And().Matches(m))
	})

	t.Run("empty Or matches nothing", func(t *testing.T) {
		assert.False(t, Or().Matches(m))
	})
}
