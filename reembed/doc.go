// Package reembed regenerates the embeddings of stored vector records with a
// new or updated embedding model.
//
// The embeddable text of each record is rebuilt from its denormalized
// metadata, so no original analyses are needed. The package supports batch
// processing per namespace, progress tracking, retry logic with exponential
// backoff, and vector normalization to ensure compatibility with cosine
// similarity search.
package reembed
