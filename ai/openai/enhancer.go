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


package openai

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/poiesic/clipmind/ai"
	"github.com/poiesic/clipmind/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// QueryEnhancer implements ai.QueryEnhancer using OpenAI-compatible chat APIs.
type QueryEnhancer struct {
	client llms.Model
	logger *slog.Logger
}

// enhancement is an internal type used for JSON unmarshaling.
// It matches the structure expected from the LLM.
type enhancement struct {
	SearchText     string   `json:"searchText"`
	SearchTerms    []string `json:"searchTerms"`
	VisualElements []string `json:"visualElements"`
	Topics         []string `json:"topics"`
	Temporal       struct {
		Timeframe string `json:"timeframe"`
		Recency   string `json:"recency"`
	} `json:"temporalContext"`
}

// newQueryEnhancer is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newQueryEnhancer(config *ai.Config) (*QueryEnhancer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Create OpenAI client configured for chat
	// Use "none" as token for local OpenAI-compatible services that don't require authentication
	client, err := openai.New(
		openai.WithBaseURL(config.EnhancerHost),
		openai.WithToken("none"),
		openai.WithModel(config.EnhancerModel),
	)
	if err != nil {
		return nil, err
	}

	return &QueryEnhancer{
		client: client,
		logger: slog.Default().With("component", "openai-enhancer"),
	}, nil
}

// NewQueryEnhancer creates a new query enhancer using the provided configuration.
//
// Returns ai.QueryEnhancer interface to enforce abstraction.
func NewQueryEnhancer(config *ai.Config) (ai.QueryEnhancer, error) {
	return newQueryEnhancer(config)
}

// EnhanceQuery expands a raw query into search terms and hints using the LLM.
// Callers treat any returned error as a signal to use ai.FallbackQuery.
func (e *QueryEnhancer) EnhanceQuery(ctx context.Context, query string) (*core.EnhancedQuery, error) {
	systemPrompt := buildSystemPrompt()
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(systemPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(query),
			},
		},
	}

	// Try up to 3 times in case of malformed JSON
	var result enhancement
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		response, err := e.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			e.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return nil, err
		}

		if len(response.Choices) < 1 {
			e.logger.Debug("no choices returned from model")
			return nil, ai.ErrEmptyResponse
		}

		choice := response.Choices[0]

		// Strip markdown code fences if present
		responseText := strings.TrimSpace(choice.Content)
		responseText = strings.TrimPrefix(responseText, "```json")
		responseText = strings.TrimPrefix(responseText, "```")
		responseText = strings.TrimSuffix(responseText, "```")
		responseText = strings.TrimSpace(responseText)

		// Try to repair common JSON issues
		responseText = repairJSON(responseText)

		if err := json.Unmarshal([]byte(responseText), &result); err != nil {
			lastErr = err
			e.logger.Warn("error parsing enhancer response",
				"attempt", attempt+1,
				"response", responseText,
				"err", err)
			continue
		}

		// Success
		lastErr = nil
		break
	}

	if lastErr != nil {
		e.logger.Error("failed to parse enhancer response after retries", "err", lastErr)
		return nil, lastErr
	}

	enhanced := &core.EnhancedQuery{
		Original:       query,
		SearchText:     strings.TrimSpace(result.SearchText),
		SearchTerms:    lowerAll(result.SearchTerms),
		VisualElements: lowerAll(result.VisualElements),
		Topics:         lowerAll(result.Topics),
		Temporal: core.TemporalContext{
			Timeframe: strings.TrimSpace(result.Temporal.Timeframe),
			Recency:   core.ParseRecency(result.Temporal.Recency),
		},
	}

	// A model that returned valid JSON but no usable expansion is still a
	// failed enhancement.
	if enhanced.SearchText == "" && len(enhanced.SearchTerms) == 0 {
		return nil, ai.ErrEmptyResponse
	}
	if enhanced.SearchText == "" {
		enhanced.SearchText = query
	}

	e.logger.Debug("enhanced query",
		"terms", len(enhanced.SearchTerms),
		"visual", len(enhanced.VisualElements),
		"topics", len(enhanced.Topics))
	return enhanced, nil
}
