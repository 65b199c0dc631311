package ai

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	assert.Equal(t, "http://localhost:11434/v1", cfg.EnhancerHost)
	assert.Equal(t, EmbeddingDimensions, cfg.EmbeddingDimensions)
	assert.Equal(t, 150, cfg.RateLimit)
	assert.Equal(t, 60*time.Second, cfg.RateWindow)
	assert.True(t, cfg.WaitOnRateLimit)
	require.NoError(t, cfg.Validate())
}

func TestNewConfig_Options(t *testing.T) {
	cfg := NewConfig(
		WithHost("http://db.internal:9100"),
		WithEmbeddingModel("text-embedding-3-large"),
		WithEnhancerModel("gpt-4o-mini"),
		WithEmbeddingDimensions(1536),
		WithRateLimit(10, time.Second),
		WithFailOnRateLimit(),
		WithEmbedBatch(5, 50*time.Millisecond),
	)

	require.NoError(t, cfg.Validate())
	// Normalize adds the /v1 suffix
	assert.Equal(t, "http://db.internal:9100/v1", cfg.EmbeddingHost)
	assert.Equal(t, "http://db.internal:9100/v1", cfg.EnhancerHost)
	assert.Equal(t, 1536, cfg.EmbeddingDimensions)
	assert.Equal(t, 10, cfg.RateLimit)
	assert.False(t, cfg.WaitOnRateLimit)
	assert.Equal(t, 5, cfg.EmbedBatchSize)
}

func TestConfig_Validate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing embedding host", func(c *Config) { c.EmbeddingHost = "" }},
		{"missing enhancer host", func(c *Config) { c.EnhancerHost = "" }},
		{"missing embedding model", func(c *Config) { c.EmbeddingModel = "" }},
		{"missing enhancer model", func(c *Config) { c.EnhancerModel = "" }},
		{"zero embedding dimensions", func(c *Config) { c.EmbeddingDimensions = 0 }},
		{"zero rate limit", func(c *Config) { c.RateLimit = 0 }},
		{"zero rate window", func(c *Config) { c.RateWindow = 0 }},
		{"zero batch size", func(c *Config) { c.EmbedBatchSize = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestFallbackQuery(t *testing.T) {
	t.Run("tokenizes and lowercases", func(t *testing.T) {
		q := FallbackQuery("How do you make pizza dough?")

		assert.Equal(t, "How do you make pizza dough?", q.Original)
		assert.Equal(t, "How do you make pizza dough?", q.SearchText)
		assert.Equal(t, []string{"how", "do", "you", "make", "pizza", "dough?"}, q.SearchTerms)
		assert.Empty(t, q.VisualElements)
		assert.Empty(t, q.Topics)
		assert.Equal(t, "any", q.Temporal.Recency.String())
	})

	t.Run("empty query", func(t *testing.T) {
		q := FallbackQuery("")
		assert.Empty(t, q.SearchTerms)
		assert.Equal(t, "", q.SearchText)
	})
}
