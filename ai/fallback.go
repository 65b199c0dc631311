package ai

import (
	"strings"

	"github.com/poiesic/clipmind/core"
)

// FallbackQuery builds an EnhancedQuery without any model call: the search
// text is the query itself and the search terms are its lowercased
// whitespace-separated tokens. This is the guaranteed floor behavior when
// query enhancement fails; it never errors.
func FallbackQuery(query string) *core.EnhancedQuery {
	return &core.EnhancedQuery{
		Original:    query,
		SearchText:  query,
		SearchTerms: strings.Fields(strings.ToLower(query)),
		Temporal:    core.TemporalContext{Recency: core.RecencyAny},
	}
}
