package ai

import "errors"

var (
	// ErrRateLimited is returned by embedding calls when the request ceiling
	// is reached and the client is configured to fail instead of waiting.
	ErrRateLimited = errors.New("embedding rate limit reached")

	// ErrEmptyResponse indicates the model returned no usable output.
	ErrEmptyResponse = errors.New("empty model response")

	// ErrDimensionMismatch indicates the embedding model returned vectors of a
	// different dimension than the configured one.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
)
