package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"fmt"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique numeric identifier derived from content.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// Identical content always produces the same ID.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// VideoIDFromURL derives the canonical video identifier from a source URL.
// The URL is trimmed of surrounding whitespace first, so differently padded
// submissions of the same URL map to the same video.
func VideoIDFromURL(url string) string {
	return fmt.Sprintf("%016x", uint64(IDFromContent(strings.TrimSpace(url))))
}

// VisualScene describes one visual scene in a video analysis.
type VisualScene struct {
	Timestamp   string
	Scene       string
	KeyElements []string
}

// SpeechLine is one timestamped line of transcribed speech.
type SpeechLine struct {
	Timestamp string
	Text      string
}

// AudioContent summarizes the audio track of a video.
type AudioContent struct {
	Speech       []SpeechLine
	Music        []string
	SoundEffects []string
}

// TopicEntry is one topic identified in a video with its relevance score.
type TopicEntry struct {
	Name      string
	Relevance float64 // 0-1
	Context   string
}

// SourceAnalysis is the externally produced structured description of one video.
// It is immutable once received and consumed exactly once by the chunk builder.
type SourceAnalysis struct {
	Title            string
	Summary          string
	Scenes           []VisualScene
	Audio            AudioContent
	Topics           []TopicEntry
	TechnicalDetails map[string]string
	Keywords         []string
}

// Submission carries the metadata supplied alongside a video analysis.
type Submission struct {
	MediaType   string
	AccountID   string
	Username    string
	DisplayName string
	SourceURL   string
}

// ChunkKind tags the content type of a chunk.
type ChunkKind string

const (
	// ChunkKindComprehensive is the full concatenated analysis text.
	ChunkKindComprehensive ChunkKind = "comprehensive"
	// ChunkKindVisual is a visual-scene sub-chunk emitted when the visual
	// payload exceeds the chunk byte budget.
	ChunkKindVisual ChunkKind = "visual"
	// ChunkKindAudio is the dedicated audio chunk.
	ChunkKindAudio ChunkKind = "audio"
	// ChunkKindTopics is the dedicated topics chunk.
	ChunkKindTopics ChunkKind = "topics"
)

// ChunkMetadata is the denormalized metadata attached to every chunk so that
// any single retrieval hit is independently useful.
type ChunkMetadata struct {
	VideoID     string
	VideoURL    string
	Sequence    int // 1-based position within the video's chunk set
	TotalChunks int
	Kind        ChunkKind
	Section     string
	Title       string
	Summary     string
	Timestamp   string // scene timestamp for visual sub-chunks, empty otherwise
	Scenes      []VisualScene
	Audio       AudioContent
	Topics      []TopicEntry
	Keywords    []string
	AccountID   string
	Username    string
	ProcessedAt time.Time
}

// TopicNames returns the names of the topics in the metadata.
func (m *ChunkMetadata) TopicNames() []string {
	names := make([]string, len(m.Topics))
	for i, t := range m.Topics {
		names[i] = t.Name
	}
	return names
}

// KeyElements returns the union of key elements across the metadata's scenes.
// Order follows first appearance.
func (m *ChunkMetadata) KeyElements() []string {
	seen := make(map[string]bool)
	var elements []string
	for _, scene := range m.Scenes {
		for _, el := range scene.KeyElements {
			if !seen[el] {
				seen[el] = true
				elements = append(elements, el)
			}
		}
	}
	return elements
}

// Chunk is one unit of embeddable content derived from a video analysis.
// Chunks are created once during ingestion and never mutated.
type Chunk struct {
	ID       string
	Content  string
	Metadata ChunkMetadata
}

// VectorRecord is the persisted (id, embedding, metadata) triple.
// IDs are unique within a namespace.
type VectorRecord struct {
	ID       string
	Vector   []float32
	Metadata ChunkMetadata
}

// MatchResult is a raw chunk-level similarity hit from the vector store.
type MatchResult struct {
	Metadata ChunkMetadata
	Score    float32
}

// RankedChunk is a per-chunk entry in an aggregated result, kept so callers
// can see which chunks of a video matched and how well.
type RankedChunk struct {
	Timestamp string
	Sequence  int
	Section   string
	Kind      ChunkKind
	Score     float32
}

// AggregatedResult is the per-video merged view of all chunk-level matches.
type AggregatedResult struct {
	VideoID  string
	VideoURL string
	Title    string
	Summary  string
	Scenes   []VisualScene
	Audio    AudioContent
	Topics   []TopicEntry
	Keywords []string
	Chunks   []RankedChunk
	MaxScore float32
	AvgScore float32
	// Score is the final ranking score: MaxScore adjusted by keyword, visual
	// and topic boosts during re-ranking.
	Score float32
}

// Recency classifies the temporal preference of a query.
type Recency int

const (
	// RecencyAny means no temporal preference.
	RecencyAny Recency = iota + 1
	// RecencyRecent prefers recently processed videos.
	RecencyRecent
	// RecencyOld prefers older videos.
	RecencyOld
)

// String returns the lowercase name of the recency value.
func (r Recency) String() string {
	switch r {
	case RecencyRecent:
		return "recent"
	case RecencyOld:
		return "old"
	default:
		return "any"
	}
}

// ParseRecency maps a string to a Recency value. Unknown values map to RecencyAny.
func ParseRecency(s string) Recency {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "recent":
		return RecencyRecent
	case "old":
		return RecencyOld
	default:
		return RecencyAny
	}
}

// TemporalContext carries the temporal hints extracted from a query.
type TemporalContext struct {
	Timeframe string
	Recency   Recency
}

// EnhancedQuery is the expanded form of a raw user query.
// It is ephemeral and discarded once the retrieval call completes.
type EnhancedQuery struct {
	Original       string
	SearchText     string
	SearchTerms    []string
	VisualElements []string
	Topics         []string
	Temporal       TemporalContext
}

// JobState identifies the lifecycle state of an ingestion job.
type JobState int

const (
	// JobStatePending means the job is queued and waiting for the worker.
	JobStatePending JobState = iota + 1
	// JobStateProcessing means the worker is currently running the job.
	JobStateProcessing
	// JobStateRetryScheduled means a failed job is waiting for its retry delay.
	JobStateRetryScheduled
	// JobStateCompleted means the job finished and its records were stored.
	JobStateCompleted
	// JobStateFailed means the job exhausted its attempts.
	JobStateFailed
)

// String returns a human-readable name for the job state.
func (s JobState) String() string {
	switch s {
	case JobStatePending:
		return "pending"
	case JobStateProcessing:
		return "processing"
	case JobStateRetryScheduled:
		return "retry_scheduled"
	case JobStateCompleted:
		return "completed"
	case JobStateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// IngestionJob is the unit of work that turns one submitted video into
// stored vector records.
type IngestionJob struct {
	ID          string
	UserID      string
	VideoURL    string
	Submission  Submission
	Analysis    *SourceAnalysis
	State       JobState
	Attempts    int
	MaxAttempts int
	EnqueuedAt  time.Time
	ReadyAt     time.Time // earliest time the next attempt may run
	LastAttempt time.Time
	LastError   string
}
