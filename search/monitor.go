package search

import "github.com/poiesic/clipmind/core"

// RetrievalStage identifies which tier of the retrieval cascade produced the
// raw matches.
type RetrievalStage int

const (
	// StageFiltered is the metadata-filtered similarity search driven by the
	// enhanced query's terms, topics, and visual elements.
	StageFiltered RetrievalStage = iota + 1
	// StageMetadata is the similarity search restricted to records carrying
	// title and summary metadata.
	StageMetadata
	// StageVector is the unrestricted similarity search.
	StageVector
)

// String returns a human-readable name for the stage.
func (s RetrievalStage) String() string {
	switch s {
	case StageFiltered:
		return "filtered"
	case StageMetadata:
		return "metadata"
	case StageVector:
		return "vector"
	default:
		return "unknown"
	}
}

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query string)
	AfterEnhancement(enhanced *core.EnhancedQuery, usedFallback bool)
	AfterRetrieval(stage RetrievalStage, matches []*core.MatchResult)
	AfterAggregation(results []*core.AggregatedResult)
	Finish(results []*core.AggregatedResult)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                                      {}
func (n *noopMonitor) AfterEnhancement(_ *core.EnhancedQuery, _ bool)      {}
func (n *noopMonitor) AfterRetrieval(_ RetrievalStage, _ []*core.MatchResult) {}
func (n *noopMonitor) AfterAggregation(_ []*core.AggregatedResult)         {}
func (n *noopMonitor) Finish(_ []*core.AggregatedResult)                   {}
