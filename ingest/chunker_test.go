package ingest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/poiesic/clipmind/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAnalysis() *core.SourceAnalysis {
	return &core.SourceAnalysis{
		Title:   "Making Pizza Dough",
		Summary: "A cook demonstrates kneading and proofing pizza dough from scratch.",
		Scenes: []core.VisualScene{
			{Timestamp: "00:05", Scene: "mixing flour and water", KeyElements: []string{"flour", "water"}},
			{Timestamp: "00:45", Scene: "kneading dough on counter", KeyElements: []string{"dough", "counter"}},
		},
		Audio: core.AudioContent{
			Speech: []core.SpeechLine{
				{Timestamp: "00:10", Text: "Start with high-protein flour."},
			},
			Music: []string{"upbeat acoustic"},
		},
		Topics: []core.TopicEntry{
			{Name: "pizza dough", Relevance: 0.95, Context: "step by step recipe"},
			{Name: "baking", Relevance: 0.6},
		},
		Keywords: []string{"pizza", "dough", "kneading"},
	}
}

func testSubmission() core.Submission {
	return core.Submission{
		MediaType:   "video",
		AccountID:   "acct-1",
		Username:    "breadhead",
		DisplayName: "Bread Head",
		SourceURL:   "https://videos.example.com/watch/abc123",
	}
}

func TestBuildChunksBaseSet(t *testing.T) {
	processedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	chunks, err := BuildChunks(testAnalysis(), testSubmission(), processedAt)
	require.NoError(t, err)

	// Compact visual content stays inside the comprehensive chunk, so only
	// the three always-present chunks are emitted.
	require.Len(t, chunks, 3)

	videoID := core.VideoIDFromURL("https://videos.example.com/watch/abc123")
	assert.Equal(t, videoID+"_comprehensive", chunks[0].ID)
	assert.Equal(t, videoID+"_audio", chunks[1].ID)
	assert.Equal(t, videoID+"_topics", chunks[2].ID)

	assert.Equal(t, core.ChunkKindComprehensive, chunks[0].Metadata.Kind)
	assert.Equal(t, core.ChunkKindAudio, chunks[1].Metadata.Kind)
	assert.Equal(t, core.ChunkKindTopics, chunks[2].Metadata.Kind)

	for i, chunk := range chunks {
		assert.Equal(t, i+1, chunk.Metadata.Sequence)
		assert.Equal(t, 3, chunk.Metadata.TotalChunks)
		assert.Equal(t, videoID, chunk.Metadata.VideoID)
		assert.Equal(t, "Making Pizza Dough", chunk.Metadata.Title)
		assert.Equal(t, "breadhead", chunk.Metadata.Username)
		assert.Equal(t, []string{"pizza", "dough", "kneading"}, chunk.Metadata.Keywords)
		assert.Equal(t, processedAt, chunk.Metadata.ProcessedAt)
	}

	assert.Contains(t, chunks[0].Content, "Making Pizza Dough")
	assert.Contains(t, chunks[0].Content, "kneading dough on counter")
	assert.Contains(t, chunks[1].Content, "high-protein flour")
	assert.Contains(t, chunks[1].Content, "Music: upbeat acoustic")
	assert.Contains(t, chunks[2].Content, "pizza dough (relevance 0.95)")
	assert.Contains(t, chunks[2].Content, "Keywords: pizza, dough, kneading")
}

func TestBuildChunksVisualOverflow(t *testing.T) {
	analysis := testAnalysis()
	analysis.Scenes = nil
	for i := 0; i < 200; i++ {
		analysis.Scenes = append(analysis.Scenes, core.VisualScene{
			Timestamp:   fmt.Sprintf("%02d:%02d", i/60, i%60),
			Scene:       fmt.Sprintf("scene %d: %s", i, strings.Repeat("detail ", 60)),
			KeyElements: []string{fmt.Sprintf("element-%d", i)},
		})
	}
	require.Greater(t, visualContentSize(analysis.Scenes), chunkByteBudget)

	chunks, err := BuildChunks(analysis, testSubmission(), time.Now())
	require.NoError(t, err)
	require.Greater(t, len(chunks), 3)

	// No single chunk may exceed the byte budget.
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk.Content), chunkByteBudget, "chunk %s", chunk.ID)
	}

	// Sub-chunks together cover every scene, in order.
	videoID := core.VideoIDFromURL(testSubmission().SourceURL)
	var covered []core.VisualScene
	seq := 0
	for _, chunk := range chunks {
		if chunk.Metadata.Kind != core.ChunkKindVisual {
			continue
		}
		assert.Equal(t, fmt.Sprintf("%s_visual_%d", videoID, seq), chunk.ID)
		assert.Equal(t, chunk.Metadata.Scenes[0].Timestamp, chunk.Metadata.Timestamp)
		covered = append(covered, chunk.Metadata.Scenes...)
		seq++
	}
	assert.Equal(t, analysis.Scenes, covered)
}

func TestBuildChunksPlaceholders(t *testing.T) {
	analysis := &core.SourceAnalysis{
		Title: "Silent Clip",
	}

	chunks, err := BuildChunks(analysis, testSubmission(), time.Now())
	require.NoError(t, err)
	require.Len(t, chunks, 3)

	assert.Equal(t, "No audio content.", chunks[1].Content)
	assert.Equal(t, "No topics identified.", chunks[2].Content)
}

func TestBuildChunksSummarySnippet(t *testing.T) {
	analysis := testAnalysis()
	analysis.Summary = strings.Repeat("long summary ", 100)

	chunks, err := BuildChunks(analysis, testSubmission(), time.Now())
	require.NoError(t, err)

	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk.Metadata.Summary), summarySnippetLimit)
	}
	// The full summary still lands in the comprehensive content.
	assert.Contains(t, chunks[0].Content, analysis.Summary)
}

func TestBuildChunksRejectsInvalidInput(t *testing.T) {
	_, err := BuildChunks(nil, testSubmission(), time.Now())
	assert.ErrorIs(t, err, core.ErrInvalidAnalysis)

	_, err = BuildChunks(&core.SourceAnalysis{}, testSubmission(), time.Now())
	assert.ErrorIs(t, err, core.ErrEmptyAnalysis)

	_, err = BuildChunks(testAnalysis(), core.Submission{}, time.Now())
	assert.ErrorIs(t, err, core.ErrEmptySourceURL)
}

func TestSplitScenesRespectsBudget(t *testing.T) {
	var scenes []core.VisualScene
	for i := 0; i < 50; i++ {
		scenes = append(scenes, core.VisualScene{
			Scene: strings.Repeat("x", 100),
		})
	}

	groups := splitScenes(scenes, 1024)
	require.NotEmpty(t, groups)

	var total int
	for _, group := range groups {
		assert.NotEmpty(t, group)
		assert.LessOrEqual(t, visualContentSize(group), 1024)
		total += len(group)
	}
	assert.Equal(t, len(scenes), total)
}

func TestTruncateBytesKeepsRunesWhole(t *testing.T) {
	s := "héllo wörld"
	for limit := 0; limit <= len(s); limit++ {
		out := truncateBytes(s, limit)
		assert.LessOrEqual(t, len(out), limit)
		assert.True(t, strings.HasPrefix(s, out))
		assert.Equal(t, out, strings.ToValidUTF8(out, ""))
	}
}
