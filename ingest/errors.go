package ingest

import "errors"

var (
	// ErrStoreRequired is returned when no vector store is provided.
	ErrStoreRequired = errors.New("vector store is required")

	// ErrEmbedderRequired is returned when no embedder is provided.
	ErrEmbedderRequired = errors.New("embedder is required")

	// ErrAlreadyProcessed is returned by Enqueue when the submitted video URL
	// has already been ingested for the user.
	ErrAlreadyProcessed = errors.New("video already processed")

	// ErrQueueClosed is returned when enqueuing on a released queue.
	ErrQueueClosed = errors.New("ingestion queue is closed")
)
