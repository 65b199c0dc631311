package storage

import (
	"context"

	"github.com/poiesic/clipmind/core"
)

// VectorStore provides namespaced storage and similarity search for vector
// records. Implementations must be thread-safe and support concurrent access.
//
// The namespace is a mandatory parameter on every call. It partitions records
// per user; an implementation must make cross-namespace reads structurally
// impossible rather than relying on callers to filter.
type VectorStore interface {
	// Upsert writes records into the namespace, idempotent by record ID.
	// Implementations split the records into bounded batches internally.
	// A batch either lands completely or the whole call fails; there are no
	// partial-success semantics, the caller owns retry.
	Upsert(ctx context.Context, namespace string, records []*core.VectorRecord) error

	// Query returns the topK nearest records to the vector within the
	// namespace by cosine similarity, highest first. A nil filter matches
	// everything.
	Query(ctx context.Context, namespace string, vector []float32, topK int, filter Filter) ([]*core.MatchResult, error)

	// ExistsByURL reports whether any record in the namespace has a video URL
	// equal to url after trimming whitespace on both sides of the comparison.
	ExistsByURL(ctx context.Context, namespace, url string) (bool, error)

	// Stats returns record and namespace counts across the whole store.
	Stats(ctx context.Context) (*Stats, error)

	// Close closes the storage backend and releases resources.
	Close() error
}

// RecordSource provides bulk iteration over stored records.
// It is consumed by maintenance tasks such as re-embedding.
type RecordSource interface {
	// Namespaces lists every namespace with at least one record.
	Namespaces(ctx context.Context) ([]string, error)

	// Records calls fn for every record in the namespace.
	// Iteration stops on the first error returned by fn.
	Records(ctx context.Context, namespace string, fn func(*core.VectorRecord) error) error
}

// Stats summarizes the contents of a vector store.
type Stats struct {
	Namespaces int
	Records    int
}
