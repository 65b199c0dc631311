package core

import (
	"testing"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "same content produces same ID", content: "test content"},
		{name: "empty string", content: ""},
		{name: "long content", content: "A much longer piece of content that should still hash consistently"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromContent(tt.content)
			id2 := IDFromContent(tt.content)

			if id1 != id2 {
				t.Errorf("IDFromContent() produced different IDs for same content: %d vs %d", id1, id2)
			}
		})
	}
}

func TestIDFromContent_Different(t *testing.T) {
	id1 := IDFromContent("content1")
	id2 := IDFromContent("content2")

	if id1 == id2 {
		t.Errorf("IDFromContent() produced same ID for different content")
	}
}

func TestVideoIDFromURL(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		same bool
	}{
		{
			name: "identical URLs",
			a:    "https://example.com/v/123",
			b:    "https://example.com/v/123",
			same: true,
		},
		{
			name: "whitespace padding is ignored",
			a:    "  https://example.com/v/123  ",
			b:    "https://example.com/v/123",
			same: true,
		},
		{
			name: "different URLs",
			a:    "https://example.com/v/123",
			b:    "https://example.com/v/456",
			same: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idA := VideoIDFromURL(tt.a)
			idB := VideoIDFromURL(tt.b)

			if (idA == idB) != tt.same {
				t.Errorf("VideoIDFromURL() %q vs %q: got %q and %q", tt.a, tt.b, idA, idB)
			}
			if len(idA) != 16 {
				t.Errorf("VideoIDFromURL() returned ID of length %d, want 16", len(idA))
			}
		})
	}
}

func TestChunkMetadata_KeyElements(t *testing.T) {
	meta := ChunkMetadata{
		Scenes: []VisualScene{
			{Timestamp: "00:05", Scene: "kneading", KeyElements: []string{"flour", "yeast"}},
			{Timestamp: "00:15", Scene: "proofing", KeyElements: []string{"yeast", "bowl"}},
		},
	}

	got := meta.KeyElements()
	want := []string{"flour", "yeast", "bowl"}

	if len(got) != len(want) {
		t.Fatalf("KeyElements() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("KeyElements()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestParseRecency(t *testing.T) {
	tests := []struct {
		in   string
		want Recency
	}{
		{"recent", RecencyRecent},
		{"RECENT", RecencyRecent},
		{" old ", RecencyOld},
		{"any", RecencyAny},
		{"", RecencyAny},
		{"bogus", RecencyAny},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseRecency(tt.in); got != tt.want {
				t.Errorf("ParseRecency(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestJobState_String(t *testing.T) {
	tests := []struct {
		state JobState
		want  string
	}{
		{JobStatePending, "pending"},
		{JobStateProcessing, "processing"},
		{JobStateRetryScheduled, "retry_scheduled"},
		{JobStateCompleted, "completed"},
		{JobStateFailed, "failed"},
		{JobState(0), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("JobState(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}
