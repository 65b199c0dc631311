package ingest

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/poiesic/clipmind/core"
)

const (
	// chunkByteBudget bounds the content of any single chunk, leaving
	// headroom under the vector store's metadata size limit.
	chunkByteBudget = 35 * 1024

	// summarySnippetLimit bounds the denormalized summary copied into every
	// chunk's metadata.
	summarySnippetLimit = 280
)

// BuildChunks turns one video analysis plus its submission metadata into the
// set of chunks to embed and store.
//
// It always produces a comprehensive chunk, a dedicated audio chunk and a
// dedicated topics chunk, so audio- and topic-heavy queries can match a
// tightly focused text body. When the rendered visual content exceeds the
// chunk byte budget, the scenes are additionally split into ordered visual
// sub-chunks that together cover every scene.
//
// Missing optional fields degrade to placeholder text; they never abort chunk
// construction.
func BuildChunks(analysis *core.SourceAnalysis, sub core.Submission, processedAt time.Time) ([]*core.Chunk, error) {
	if err := core.ValidateAnalysis(analysis); err != nil {
		return nil, err
	}
	if err := core.ValidateSubmission(&sub); err != nil {
		return nil, err
	}
	if processedAt.IsZero() {
		processedAt = time.Now().UTC()
	}

	videoID := core.VideoIDFromURL(sub.SourceURL)
	base := core.ChunkMetadata{
		VideoID:     videoID,
		VideoURL:    strings.TrimSpace(sub.SourceURL),
		Title:       analysis.Title,
		Summary:     snippet(analysis.Summary, summarySnippetLimit),
		Keywords:    analysis.Keywords,
		AccountID:   sub.AccountID,
		Username:    sub.Username,
		ProcessedAt: processedAt,
	}

	var chunks []*core.Chunk

	// Comprehensive chunk always comes first.
	comprehensive := base
	comprehensive.Kind = core.ChunkKindComprehensive
	comprehensive.Section = "Overview"
	comprehensive.Scenes = analysis.Scenes
	comprehensive.Audio = analysis.Audio
	comprehensive.Topics = analysis.Topics
	chunks = append(chunks, &core.Chunk{
		ID:       videoID + "_comprehensive",
		Content:  truncateBytes(renderComprehensive(analysis), chunkByteBudget),
		Metadata: comprehensive,
	})

	// Visual sub-chunks only when the rendered scenes overflow the budget.
	if visualContentSize(analysis.Scenes) > chunkByteBudget {
		groups := splitScenes(analysis.Scenes, chunkByteBudget)
		for i, group := range groups {
			meta := base
			meta.Kind = core.ChunkKindVisual
			meta.Section = fmt.Sprintf("Visual scenes (%d/%d)", i+1, len(groups))
			meta.Scenes = group
			meta.Timestamp = group[0].Timestamp
			chunks = append(chunks, &core.Chunk{
				ID:       fmt.Sprintf("%s_visual_%d", videoID, i),
				Content:  truncateBytes(renderScenes(group), chunkByteBudget),
				Metadata: meta,
			})
		}
	}

	// Dedicated audio chunk, placeholder text when the video has no audio.
	audio := base
	audio.Kind = core.ChunkKindAudio
	audio.Section = "Audio"
	audio.Audio = analysis.Audio
	chunks = append(chunks, &core.Chunk{
		ID:       videoID + "_audio",
		Content:  truncateBytes(renderAudio(&analysis.Audio), chunkByteBudget),
		Metadata: audio,
	})

	// Dedicated topics chunk.
	topics := base
	topics.Kind = core.ChunkKindTopics
	topics.Section = "Topics"
	topics.Topics = analysis.Topics
	chunks = append(chunks, &core.Chunk{
		ID:       videoID + "_topics",
		Content:  truncateBytes(renderTopics(analysis.Topics, analysis.Keywords), chunkByteBudget),
		Metadata: topics,
	})

	// Fill in sequence numbers now that the set is known.
	for i, chunk := range chunks {
		chunk.Metadata.Sequence = i + 1
		chunk.Metadata.TotalChunks = len(chunks)
	}

	return chunks, nil
}

// RenderContent rebuilds the embeddable text of a stored chunk from its
// metadata. The denormalized metadata carries everything the original
// rendering used, so records can be re-embedded without the source analysis.
func RenderContent(meta *core.ChunkMetadata) string {
	switch meta.Kind {
	case core.ChunkKindVisual:
		return truncateBytes(renderScenes(meta.Scenes), chunkByteBudget)
	case core.ChunkKindAudio:
		audio := meta.Audio
		return truncateBytes(renderAudio(&audio), chunkByteBudget)
	case core.ChunkKindTopics:
		return truncateBytes(renderTopics(meta.Topics, meta.Keywords), chunkByteBudget)
	default:
		analysis := &core.SourceAnalysis{
			Title:    meta.Title,
			Summary:  meta.Summary,
			Scenes:   meta.Scenes,
			Audio:    meta.Audio,
			Topics:   meta.Topics,
			Keywords: meta.Keywords,
		}
		return truncateBytes(renderComprehensive(analysis), chunkByteBudget)
	}
}

func renderComprehensive(analysis *core.SourceAnalysis) string {
	var b strings.Builder

	writeSection(&b, "Title", analysis.Title)
	writeSection(&b, "Summary", analysis.Summary)

	if len(analysis.Scenes) > 0 {
		b.WriteString("Visual scenes:\n")
		b.WriteString(renderScenes(analysis.Scenes))
		b.WriteString("\n")
	}

	b.WriteString("Audio:\n")
	b.WriteString(renderAudio(&analysis.Audio))
	b.WriteString("\n")

	if len(analysis.Topics) > 0 || len(analysis.Keywords) > 0 {
		b.WriteString("Topics:\n")
		b.WriteString(renderTopics(analysis.Topics, analysis.Keywords))
		b.WriteString("\n")
	}

	if len(analysis.TechnicalDetails) > 0 {
		b.WriteString("Technical details:\n")
		for _, key := range sortedKeys(analysis.TechnicalDetails) {
			fmt.Fprintf(&b, "%s: %s\n", key, analysis.TechnicalDetails[key])
		}
	}

	return strings.TrimSpace(b.String())
}

func writeSection(b *strings.Builder, name, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	fmt.Fprintf(b, "%s: %s\n\n", name, value)
}

func renderScene(scene *core.VisualScene) string {
	var b strings.Builder
	if scene.Timestamp != "" {
		fmt.Fprintf(&b, "[%s] ", scene.Timestamp)
	}
	b.WriteString(scene.Scene)
	if len(scene.KeyElements) > 0 {
		fmt.Fprintf(&b, " (key elements: %s)", strings.Join(scene.KeyElements, ", "))
	}
	return b.String()
}

func renderScenes(scenes []core.VisualScene) string {
	lines := make([]string, len(scenes))
	for i := range scenes {
		lines[i] = renderScene(&scenes[i])
	}
	return strings.Join(lines, "\n")
}

func renderAudio(audio *core.AudioContent) string {
	if len(audio.Speech) == 0 && len(audio.Music) == 0 && len(audio.SoundEffects) == 0 {
		return "No audio content."
	}

	var b strings.Builder
	for _, line := range audio.Speech {
		if line.Timestamp != "" {
			fmt.Fprintf(&b, "[%s] ", line.Timestamp)
		}
		b.WriteString(line.Text)
		b.WriteString("\n")
	}
	if len(audio.Music) > 0 {
		fmt.Fprintf(&b, "Music: %s\n", strings.Join(audio.Music, ", "))
	}
	if len(audio.SoundEffects) > 0 {
		fmt.Fprintf(&b, "Sound effects: %s\n", strings.Join(audio.SoundEffects, ", "))
	}
	return strings.TrimSpace(b.String())
}

func renderTopics(topics []core.TopicEntry, keywords []string) string {
	if len(topics) == 0 && len(keywords) == 0 {
		return "No topics identified."
	}

	var b strings.Builder
	for _, topic := range topics {
		fmt.Fprintf(&b, "%s (relevance %.2f)", topic.Name, topic.Relevance)
		if topic.Context != "" {
			fmt.Fprintf(&b, ": %s", topic.Context)
		}
		b.WriteString("\n")
	}
	if len(keywords) > 0 {
		fmt.Fprintf(&b, "Keywords: %s\n", strings.Join(keywords, ", "))
	}
	return strings.TrimSpace(b.String())
}

// visualContentSize is the byte size of the rendered scene list.
func visualContentSize(scenes []core.VisualScene) int {
	size := 0
	for i := range scenes {
		size += len(renderScene(&scenes[i])) + 1 // newline separator
	}
	return size
}

// splitScenes partitions scenes into ordered groups whose rendered text each
// stays within budget. Every scene lands in exactly one group; a scene whose
// own rendering exceeds the budget gets a group of its own (its content is
// truncated later).
func splitScenes(scenes []core.VisualScene, budget int) [][]core.VisualScene {
	var groups [][]core.VisualScene
	var current []core.VisualScene
	currentSize := 0

	for i := range scenes {
		size := len(renderScene(&scenes[i])) + 1
		if len(current) > 0 && currentSize+size > budget {
			groups = append(groups, current)
			current = nil
			currentSize = 0
		}
		current = append(current, scenes[i])
		currentSize += size
	}
	if len(current) > 0 {
		groups = append(groups, current)
	}
	return groups
}

// truncateBytes caps s at limit bytes without splitting a rune.
func truncateBytes(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !isRuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}

func snippet(s string, limit int) string {
	s = strings.TrimSpace(s)
	if len(s) <= limit {
		return s
	}
	return truncateBytes(s, limit)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
