package search

import (
	"fmt"
	"testing"

	"github.com/poiesic/clipmind/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRerankBoostsAgreement(t *testing.T) {
	pizza := &core.AggregatedResult{
		VideoID:  "vid-pizza",
		Title:    "Making Pizza Dough",
		Summary:  "Kneading and proofing dough",
		Scenes:   []core.VisualScene{{Scene: "mixing", KeyElements: []string{"flour", "dough"}}},
		Topics:   []core.TopicEntry{{Name: "Pizza Dough", Relevance: 0.9}},
		MaxScore: 0.7,
		Score:    0.7,
	}
	cats := &core.AggregatedResult{
		VideoID:  "vid-cats",
		Title:    "Funny Cats Compilation",
		Summary:  "Cats doing cat things",
		MaxScore: 0.75,
		Score:    0.75,
	}

	results := rerank([]*core.AggregatedResult{cats, pizza}, pizzaEnhanced())

	// Keyword, visual, and topic agreement outweigh the small similarity gap.
	assert.Equal(t, "vid-pizza", results[0].VideoID)
	assert.Equal(t, "vid-cats", results[1].VideoID)

	// 3 keyword hits (pizza, dough, kneading), 2 visual hits, 1 topic hit.
	expected := float32(0.7) * (1 + 0.2*3 + 0.15*2 + 0.1*1)
	assert.InDelta(t, expected, results[0].Score, 1e-6)

	// Similarity stats are untouched.
	assert.InDelta(t, 0.7, results[0].MaxScore, 1e-6)
	assert.InDelta(t, 0.75, results[1].Score, 1e-6)
}

func TestRerankMatchingIsCaseInsensitive(t *testing.T) {
	result := &core.AggregatedResult{
		Title:    "MAKING PIZZA DOUGH",
		Topics:   []core.TopicEntry{{Name: "PIZZA DOUGH"}},
		MaxScore: 1,
	}

	rerank([]*core.AggregatedResult{result}, pizzaEnhanced())
	// 2 keyword hits in the title plus 1 topic hit.
	assert.InDelta(t, 1*(1+0.2*2+0.1*1), result.Score, 1e-6)
}

func TestRerankCapsCategoryHits(t *testing.T) {
	var terms []string
	title := ""
	for i := 0; i < 20; i++ {
		term := fmt.Sprintf("term%d", i)
		terms = append(terms, term)
		title += term + " "
	}

	result := &core.AggregatedResult{Title: title, MaxScore: 1}
	rerank([]*core.AggregatedResult{result}, &core.EnhancedQuery{SearchTerms: terms})

	require.InDelta(t, 1*(1+0.2*float32(maxBoostHits)), result.Score, 1e-6)
}

func TestRerankCapsResultCount(t *testing.T) {
	var results []*core.AggregatedResult
	for i := 0; i < 8; i++ {
		results = append(results, &core.AggregatedResult{
			VideoID:  fmt.Sprintf("vid-%d", i),
			MaxScore: 0.9 - float32(i)*0.01,
		})
	}

	results = rerank(results, &core.EnhancedQuery{SearchText: "plain"})

	require.Len(t, results, maxResults)
	assert.Equal(t, "vid-0", results[0].VideoID)
	assert.Equal(t, "vid-4", results[maxResults-1].VideoID)
}

func TestRerankIgnoresStopWords(t *testing.T) {
	result := &core.AggregatedResult{Title: "the dough", MaxScore: 1}
	rerank([]*core.AggregatedResult{result}, &core.EnhancedQuery{
		SearchTerms: []string{"the", "dough"},
	})
	assert.InDelta(t, 1*(1+0.2*1), result.Score, 1e-6)
}

func TestRerankTokenizesQueryTerms(t *testing.T) {
	result := &core.AggregatedResult{Title: "making pizza dough", MaxScore: 1}

	// Fallback queries carry raw tokens; punctuation and stop words must not
	// change the boost.
	rerank([]*core.AggregatedResult{result}, &core.EnhancedQuery{
		SearchTerms: []string{"how", "do", "you", "make", "pizza", "dough?"},
	})
	assert.InDelta(t, 1*(1+0.2*2), result.Score, 1e-6)
}

func TestRerankNoExpansionLeavesOrder(t *testing.T) {
	a := &core.AggregatedResult{VideoID: "a", MaxScore: 0.9}
	b := &core.AggregatedResult{VideoID: "b", MaxScore: 0.8}

	results := rerank([]*core.AggregatedResult{a, b}, &core.EnhancedQuery{SearchText: "plain"})

	assert.Equal(t, "a", results[0].VideoID)
	assert.InDelta(t, 0.9, results[0].Score, 1e-6)
}
