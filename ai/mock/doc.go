// Package mock provides test doubles for the ai interfaces.
//
// The doubles default to deterministic behavior (hash-derived embedding
// vectors, fallback-style query enhancement) and support per-test behavior
// injection through function fields.
package mock
