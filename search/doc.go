// Package search answers natural-language questions about a user's ingested
// videos.
//
// A query passes through four stages: enhancement (an LLM expands the query
// into search text, terms, visual elements, topics, and temporal hints, with
// a lexical fallback when the model is unavailable), tiered retrieval
// (filtered, metadata-only, then unrestricted vector search), cross-chunk
// aggregation (chunk hits merged into one result per video), and hybrid
// re-ranking (similarity scores boosted by keyword, visual, and topic
// agreement).
package search
