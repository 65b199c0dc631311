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


// Package ai provides abstractions for the AI services used in clipmind.
//
// The package defines interfaces for text embedding and query enhancement.
// It follows the dependency inversion principle: the ingestion and search
// packages depend on these abstractions, never on a concrete provider.
//
// # Design Principles
//
// The package is designed around three key interfaces:
//
//   - Embedder: generates vector embeddings from text, rate-limited and batched
//   - QueryEnhancer: expands a raw query into search terms and hints via an LLM
//   - AIProvider: aggregates AI services for convenient initialization
//
// Query enhancement is treated strictly as an optional improvement. When it
// fails for any reason, callers use FallbackQuery, which tokenizes the raw
// query deterministically and never errors. Retrieval therefore always has a
// floor behavior independent of the language model's availability.
//
// # Implementation Packages
//
//   - ai/openai: production implementation for OpenAI-compatible services
//   - ai/mock: test doubles with injectable behavior
package ai
