// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ai

import (
	"errors"
	"strings"
	"time"
)

// EmbeddingDimensions is the system-wide embedding dimension. Any substitute
// embedding model must match it, or the vector store must be recreated.
const EmbeddingDimensions = 3072

// Config holds configuration for AI service providers.
type Config struct {
	// EmbeddingHost is the base URL for the embedding service API.
	// Example: "http://localhost:11434/v1" for local OpenAI-compatible server
	EmbeddingHost string

	// EnhancerHost is the base URL for the query-enhancement service API.
	// Example: "http://localhost:11434/v1" for local OpenAI-compatible server
	EnhancerHost string

	// EmbeddingModel is the model identifier to use for text embeddings.
	// Example: "text-embedding-3-large"
	EmbeddingModel string

	// EnhancerModel is the model identifier to use for query enhancement.
	// Example: "qwen2.5:3b", "gpt-4o-mini"
	EnhancerModel string

	// EmbeddingDimensions is the expected vector dimension of the embedding
	// model. Responses of any other dimension are rejected. Default:
	// EmbeddingDimensions (3072).
	EmbeddingDimensions int

	// RateLimit is the maximum number of embedding requests allowed per
	// RateWindow. Default: 150.
	RateLimit int

	// RateWindow is the window over which RateLimit applies. Default: 60s.
	RateWindow time.Duration

	// WaitOnRateLimit controls behavior when the ceiling is reached: callers
	// block until the window resets when true (the default), or fail
	// immediately with ErrRateLimited when false.
	WaitOnRateLimit bool

	// EmbedBatchSize is the number of texts per embedding request batch.
	// Default: 20.
	EmbedBatchSize int

	// EmbedBatchPause is the pause between consecutive embedding batches.
	// Default: 200ms.
	EmbedBatchPause time.Duration
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithEmbeddingHost sets the embedding service host URL.
func WithEmbeddingHost(host string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingHost = host
	}
}

// WithEnhancerHost sets the query-enhancement service host URL.
func WithEnhancerHost(host string) ConfigOption {
	return func(c *Config) {
		c.EnhancerHost = host
	}
}

// WithHost sets both embedding and enhancer hosts to the same URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingHost = host
		c.EnhancerHost = host
	}
}

// WithEmbeddingModel sets the embedding model identifier.
func WithEmbeddingModel(model string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingModel = model
	}
}

// WithEnhancerModel sets the enhancer model identifier.
func WithEnhancerModel(model string) ConfigOption {
	return func(c *Config) {
		c.EnhancerModel = model
	}
}

// WithEmbeddingDimensions sets the expected embedding vector dimension.
func WithEmbeddingDimensions(dimensions int) ConfigOption {
	return func(c *Config) {
		c.EmbeddingDimensions = dimensions
	}
}

// WithRateLimit sets the embedding request ceiling per window.
func WithRateLimit(requests int, window time.Duration) ConfigOption {
	return func(c *Config) {
		c.RateLimit = requests
		c.RateWindow = window
	}
}

// WithFailOnRateLimit makes embedding calls fail immediately when the rate
// ceiling is reached instead of blocking until the window resets.
func WithFailOnRateLimit() ConfigOption {
	return func(c *Config) {
		c.WaitOnRateLimit = false
	}
}

// WithEmbedBatch sets the embedding batch size and inter-batch pause.
func WithEmbedBatch(size int, pause time.Duration) ConfigOption {
	return func(c *Config) {
		c.EmbedBatchSize = size
		c.EmbedBatchPause = pause
	}
}

// DefaultConfig returns a Config with sensible defaults for local
// OpenAI-compatible services.
func DefaultConfig() *Config {
	defaultHost := "http://localhost:11434/v1"
	return &Config{
		EmbeddingHost:       defaultHost,
		EnhancerHost:        defaultHost,
		EmbeddingModel:      "text-embedding-3-large",
		EnhancerModel:       "qwen2.5:3b",
		EmbeddingDimensions: EmbeddingDimensions,
		RateLimit:           150,
		RateWindow:          60 * time.Second,
		WaitOnRateLimit:     true,
		EmbedBatchSize:      20,
		EmbedBatchPause:     200 * time.Millisecond,
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
//
// Example:
//
//	cfg := ai.NewConfig(
//	    ai.WithHost("http://localhost:11434/v1"),
//	    ai.WithEmbeddingModel("text-embedding-3-large"),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// It automatically adds the /v1 suffix to hosts if missing, which is required
// by most OpenAI-compatible APIs (Ollama, LocalAI, vLLM, etc).
func (c *Config) Normalize() {
	if c.EmbeddingHost != "" && !strings.HasSuffix(c.EmbeddingHost, "/v1") {
		c.EmbeddingHost = strings.TrimSuffix(c.EmbeddingHost, "/") + "/v1"
	}
	if c.EnhancerHost != "" && !strings.HasSuffix(c.EnhancerHost, "/v1") {
		c.EnhancerHost = strings.TrimSuffix(c.EnhancerHost, "/") + "/v1"
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.EmbeddingHost == "" {
		return errors.New("ai config: EmbeddingHost is required")
	}
	if c.EnhancerHost == "" {
		return errors.New("ai config: EnhancerHost is required")
	}
	if c.EmbeddingModel == "" {
		return errors.New("ai config: EmbeddingModel is required")
	}
	if c.EnhancerModel == "" {
		return errors.New("ai config: EnhancerModel is required")
	}
	if c.EmbeddingDimensions < 1 {
		return errors.New("ai config: EmbeddingDimensions must be positive")
	}
	if c.RateLimit < 1 {
		return errors.New("ai config: RateLimit must be positive")
	}
	if c.RateWindow <= 0 {
		return errors.New("ai config: RateWindow must be positive")
	}
	if c.EmbedBatchSize < 1 {
		return errors.New("ai config: EmbedBatchSize must be positive")
	}
	return nil
}
