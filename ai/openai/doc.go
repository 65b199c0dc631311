// Package openai implements the ai interfaces against OpenAI-compatible
// HTTP APIs (OpenAI, Ollama, LocalAI, vLLM) via langchaingo.
//
// The embedder paces requests with a token-bucket limiter sized to the
// configured ceiling and retries transient failures with doubling delay.
// The query enhancer requests JSON-mode output against a fixed schema and
// repairs common formatting mistakes before parsing; parse failures surface
// as errors so callers can fall back to deterministic tokenization.
package openai
