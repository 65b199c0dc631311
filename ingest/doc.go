// Package ingest turns video analyses into searchable vector records.
//
// BuildChunks renders one analysis into a comprehensive chunk, dedicated
// audio and topics chunks, and, for visually dense videos, ordered visual
// sub-chunks that respect a per-chunk byte budget.
//
// Queue runs ingestion asynchronously: submissions are deduplicated against
// already-stored videos, embedded with a bounded worker pool, and retried
// with a fixed delay before a permanent failure is reported to the user.
package ingest
