package mock

import (
	"context"

	"github.com/poiesic/clipmind/ai"
	"github.com/poiesic/clipmind/core"
)

// MockQueryEnhancer is a test double for ai.QueryEnhancer.
// It allows custom behavior injection via function fields.
type MockQueryEnhancer struct {
	// EnhanceQueryFunc is called by EnhanceQuery if set.
	// If nil, uses default tokenization behavior.
	EnhanceQueryFunc func(ctx context.Context, query string) (*core.EnhancedQuery, error)

	callCount int
}

// NewMockQueryEnhancer creates a mock enhancer with default behavior.
// Note: Returns concrete type to allow test assertions via GetMockEnhancer().
func NewMockQueryEnhancer() *MockQueryEnhancer {
	return &MockQueryEnhancer{}
}

// EnhanceQuery returns a deterministic enhancement built from the query's
// own tokens, mirroring the production fallback.
func (m *MockQueryEnhancer) EnhanceQuery(ctx context.Context, query string) (*core.EnhancedQuery, error) {
	m.callCount++

	if m.EnhanceQueryFunc != nil {
		return m.EnhanceQueryFunc(ctx, query)
	}

	return ai.FallbackQuery(query), nil
}

// CallCount returns the number of times EnhanceQuery was called.
func (m *MockQueryEnhancer) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockQueryEnhancer) Reset() {
	m.callCount = 0
	m.EnhanceQueryFunc = nil
}
