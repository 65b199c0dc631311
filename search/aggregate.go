// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package search

import (
	"sort"
	"strings"

	"github.com/poiesic/clipmind/core"
)

// aggregate merges chunk-level matches into one result per video. Chunk
// content that was denormalized across sub-chunks is re-merged with
// duplicates removed, so callers see each video once with its full context.
// Results are ordered by best chunk score and truncated to topK.
func aggregate(matches []*core.MatchResult, topK int) []*core.AggregatedResult {
	if len(matches) == 0 {
		return []*core.AggregatedResult{}
	}

	groups := make(map[string][]*core.MatchResult)
	order := make([]string, 0)
	for _, match := range matches {
		videoID := match.Metadata.VideoID
		if _, seen := groups[videoID]; !seen {
			order = append(order, videoID)
		}
		groups[videoID] = append(groups[videoID], match)
	}

	results := make([]*core.AggregatedResult, 0, len(groups))
	for _, videoID := range order {
		results = append(results, mergeVideo(videoID, groups[videoID]))
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MaxScore > results[j].MaxScore
	})
	if len(results) > topK {
		results = results[:topK]
	}
	return results
}

func mergeVideo(videoID string, matches []*core.MatchResult) *core.AggregatedResult {
	// Document order first, so merged scenes and speech read front to back.
	sorted := make([]*core.MatchResult, len(matches))
	copy(sorted, matches)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := &sorted[i].Metadata, &sorted[j].Metadata
		if a.Sequence != b.Sequence {
			return a.Sequence < b.Sequence
		}
		return a.Timestamp < b.Timestamp
	})

	overview := &sorted[0].Metadata
	for i := range sorted {
		meta := &sorted[i].Metadata
		if meta.Sequence == 1 || strings.Contains(strings.ToLower(meta.Section), "overview") {
			overview = meta
			break
		}
	}

	result := &core.AggregatedResult{
		VideoID:  videoID,
		VideoURL: overview.VideoURL,
		Title:    overview.Title,
		Summary:  overview.Summary,
	}

	var total float32
	for _, match := range sorted {
		meta := &match.Metadata
		result.Scenes = mergeScenes(result.Scenes, meta.Scenes)
		mergeAudio(&result.Audio, &meta.Audio)
		result.Topics = mergeTopics(result.Topics, meta.Topics)
		result.Keywords = mergeStrings(result.Keywords, meta.Keywords)
		result.Chunks = appendChunk(result.Chunks, core.RankedChunk{
			Timestamp: meta.Timestamp,
			Sequence:  meta.Sequence,
			Section:   meta.Section,
			Kind:      meta.Kind,
			Score:     match.Score,
		})

		if match.Score > result.MaxScore {
			result.MaxScore = match.Score
		}
		total += match.Score
	}
	result.AvgScore = total / float32(len(sorted))
	result.Score = result.MaxScore

	sort.SliceStable(result.Chunks, func(i, j int) bool {
		return result.Chunks[i].Score > result.Chunks[j].Score
	})

	return result
}

// mergeScenes appends scenes not yet present. A scene with the same
// timestamp and description as an existing one replaces it in place, keeping
// first-appearance order while preferring the later copy.
func mergeScenes(existing, incoming []core.VisualScene) []core.VisualScene {
	index := make(map[string]int, len(existing))
	for i, scene := range existing {
		index[scene.Timestamp+"\x00"+scene.Scene] = i
	}
	for _, scene := range incoming {
		key := scene.Timestamp + "\x00" + scene.Scene
		if i, seen := index[key]; seen {
			existing[i] = scene
			continue
		}
		index[key] = len(existing)
		existing = append(existing, scene)
	}
	return existing
}

// mergeAudio folds incoming audio into dst: speech lines unique by
// timestamp, music and sound effects unioned.
func mergeAudio(dst, incoming *core.AudioContent) {
	seen := make(map[string]bool, len(dst.Speech))
	for _, line := range dst.Speech {
		seen[line.Timestamp] = true
	}
	for _, line := range incoming.Speech {
		if seen[line.Timestamp] {
			continue
		}
		seen[line.Timestamp] = true
		dst.Speech = append(dst.Speech, line)
	}
	dst.Music = mergeStrings(dst.Music, incoming.Music)
	dst.SoundEffects = mergeStrings(dst.SoundEffects, incoming.SoundEffects)
}

// mergeTopics unions topics by name, keeping the highest relevance seen.
func mergeTopics(existing, incoming []core.TopicEntry) []core.TopicEntry {
	index := make(map[string]int, len(existing))
	for i, topic := range existing {
		index[topic.Name] = i
	}
	for _, topic := range incoming {
		if i, seen := index[topic.Name]; seen {
			if topic.Relevance > existing[i].Relevance {
				existing[i] = topic
			}
			continue
		}
		index[topic.Name] = len(existing)
		existing = append(existing, topic)
	}
	return existing
}

func mergeStrings(existing, incoming []string) []string {
	seen := make(map[string]bool, len(existing))
	for _, v := range existing {
		seen[v] = true
	}
	for _, v := range incoming {
		if seen[v] {
			continue
		}
		seen[v] = true
		existing = append(existing, v)
	}
	return existing
}

// appendChunk adds a ranked chunk unless one with the same timestamp and
// sequence is already present.
func appendChunk(chunks []core.RankedChunk, chunk core.RankedChunk) []core.RankedChunk {
	for _, existing := range chunks {
		if existing.Timestamp == chunk.Timestamp && existing.Sequence == chunk.Sequence {
			return chunks
		}
	}
	return append(chunks, chunk)
}
