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

package clipmind

import (
	"context"
	"log/slog"

	"github.com/poiesic/clipmind/ai"
	"github.com/poiesic/clipmind/ai/openai"
	"github.com/poiesic/clipmind/core"
	"github.com/poiesic/clipmind/ingest"
	"github.com/poiesic/clipmind/search"
	"github.com/poiesic/clipmind/storage/badgerstore"
)

// Engine is the top-level entry point: it owns the vector store, the AI
// provider, the ingestion queue, and the searcher.
type Engine struct {
	backend  *badgerstore.Backend
	store    *badgerstore.Store
	provider ai.AIProvider
	queue    *ingest.Queue
	searcher *search.Searcher
	logger   *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	aiConfig   *ai.Config
	provider   ai.AIProvider
	notifier   ingest.Notifier
	queueOpts  []ingest.Option
	searchOpts []search.Option
	inMemory   bool
}

// WithAIConfig sets the AI provider configuration.
func WithAIConfig(config *ai.Config) EngineOption {
	return func(o *engineOptions) {
		o.aiConfig = config
	}
}

// WithProvider uses the given AI provider instead of constructing one from
// the AI configuration. The engine takes ownership and closes it.
func WithProvider(provider ai.AIProvider) EngineOption {
	return func(o *engineOptions) {
		o.provider = provider
	}
}

// WithNotifier sets the collaborator informed when an ingestion permanently
// fails.
func WithNotifier(notifier ingest.Notifier) EngineOption {
	return func(o *engineOptions) {
		o.notifier = notifier
	}
}

// WithQueueOptions forwards options to the ingestion queue.
func WithQueueOptions(opts ...ingest.Option) EngineOption {
	return func(o *engineOptions) {
		o.queueOpts = append(o.queueOpts, opts...)
	}
}

// WithSearchOptions forwards options to the searcher.
func WithSearchOptions(opts ...search.Option) EngineOption {
	return func(o *engineOptions) {
		o.searchOpts = append(o.searchOpts, opts...)
	}
}

// WithInMemoryStore keeps all records in memory. Intended for tests.
func WithInMemoryStore() EngineOption {
	return func(o *engineOptions) {
		o.inMemory = true
	}
}

// NewEngine opens the vector store at filePath and wires up ingestion and
// search.
func NewEngine(filePath string, opts ...EngineOption) (*Engine, error) {
	options := &engineOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badgerstore.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	store, err := badgerstore.NewStore(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			backend.Close()
			return nil, err
		}
	}

	queueOpts := options.queueOpts
	if options.notifier != nil {
		queueOpts = append(queueOpts, ingest.WithNotifier(options.notifier))
	}
	queue, err := ingest.NewQueue(store, provider.Embedder(), queueOpts...)
	if err != nil {
		provider.Close()
		backend.Close()
		return nil, err
	}

	searcher, err := search.NewSearcher(store, provider, options.searchOpts...)
	if err != nil {
		queue.Release()
		provider.Close()
		backend.Close()
		return nil, err
	}

	return &Engine{
		backend:  backend,
		store:    store,
		provider: provider,
		queue:    queue,
		searcher: searcher,
		logger:   slog.Default(),
	}, nil
}

// SubmitVideo schedules asynchronous ingestion of one analyzed video for the
// user. It returns the job ID, or ingest.ErrAlreadyProcessed when the video
// was ingested before.
func (e *Engine) SubmitVideo(ctx context.Context, userID string, analysis *core.SourceAnalysis, sub core.Submission) (string, error) {
	return e.queue.Enqueue(ctx, userID, analysis, sub)
}

// Search finds the user's videos most relevant to the query, one result per
// video, best first.
func (e *Engine) Search(ctx context.Context, userID, query string, topK int) ([]*core.AggregatedResult, error) {
	return e.searcher.Search(ctx, userID, query, topK)
}

// SearchWithMonitor is Search with stage-by-stage observation hooks.
func (e *Engine) SearchWithMonitor(ctx context.Context, userID, query string, topK int, monitor search.SearchMonitor) ([]*core.AggregatedResult, error) {
	return e.searcher.SearchWithMonitor(ctx, userID, query, topK, monitor)
}

// WaitForIngestion blocks until every queued ingestion job has finished,
// including scheduled retries.
func (e *Engine) WaitForIngestion() {
	e.queue.Wait()
}

// Store exposes the vector store for maintenance tasks.
func (e *Engine) Store() *badgerstore.Store {
	return e.store
}

// Provider exposes the AI provider.
func (e *Engine) Provider() ai.AIProvider {
	return e.provider
}

// Close drains pending ingestion work and releases all resources.
func (e *Engine) Close() error {
	e.queue.Release()

	if err := e.provider.Close(); err != nil {
		e.logger.Error("error closing AI provider", "err", err)
	}

	if err := e.backend.Close(); err != nil {
		e.logger.Error("error closing storage backend", "err", err)
		return err
	}
	return nil
}
