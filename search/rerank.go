package search

import (
	"sort"
	"strings"

	"github.com/poiesic/clipmind/core"
)

const (
	keywordBoost = 0.2
	visualBoost  = 0.15
	topicBoost   = 0.1

	// maxBoostHits caps how many hits each category may contribute, so a
	// single verbose video cannot crowd out better similarity matches.
	maxBoostHits = 5

	// maxResults caps how many videos a search returns after re-ranking,
	// regardless of the requested topK.
	maxResults = 5
)

// rerank adjusts each result's final score by how well the enhanced query's
// terms line up with the video's title, summary, visual elements, and
// topics, re-sorts, and truncates to maxResults. The underlying similarity
// scores are left intact.
func rerank(results []*core.AggregatedResult, enhanced *core.EnhancedQuery) []*core.AggregatedResult {
	for _, result := range results {
		keywordHits := countTextHits(enhanced.SearchTerms, result.Title, result.Summary)
		visualHits := countVisualHits(enhanced.VisualElements, result)
		topicHits := countTopicHits(enhanced.Topics, result.Topics)

		boost := keywordBoost*float32(keywordHits) +
			visualBoost*float32(visualHits) +
			topicBoost*float32(topicHits)
		result.Score = result.MaxScore * (1 + boost)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results
}

// countTextHits counts query terms appearing in any of the given texts,
// ignoring case. Terms are tokenized first, dropping punctuation and stop
// words.
func countTextHits(terms []string, texts ...string) int {
	hits := 0
	for _, term := range tokenizeAndFilter(strings.Join(terms, " ")) {
		for _, text := range texts {
			if containsFold(text, term) {
				hits++
				break
			}
		}
		if hits == maxBoostHits {
			break
		}
	}
	return hits
}

// countVisualHits counts expected visual elements found among the video's
// scene key elements or scene descriptions.
func countVisualHits(elements []string, result *core.AggregatedResult) int {
	keyElements := make(map[string]bool)
	for _, scene := range result.Scenes {
		for _, el := range scene.KeyElements {
			keyElements[toLower(el)] = true
		}
	}

	hits := 0
	for _, element := range elements {
		element = toLower(element)
		if element == "" {
			continue
		}
		found := keyElements[element]
		if !found {
			for _, scene := range result.Scenes {
				if containsFold(scene.Scene, element) {
					found = true
					break
				}
			}
		}
		if found {
			hits++
			if hits == maxBoostHits {
				break
			}
		}
	}
	return hits
}

// countTopicHits counts expected topics present among the video's topics.
func countTopicHits(expected []string, topics []core.TopicEntry) int {
	names := make([]string, len(topics))
	for i, topic := range topics {
		names[i] = topic.Name
	}
	have := lowerSet(names)

	hits := 0
	for _, topic := range expected {
		if have[toLower(topic)] {
			hits++
			if hits == maxBoostHits {
				break
			}
		}
	}
	return hits
}
