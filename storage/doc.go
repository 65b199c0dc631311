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


// Package storage defines the vector store abstraction for clipmind.
//
// The central contract is VectorStore: a namespaced upsert/query/existence
// service for (id, vector, metadata) records. Namespaces partition records per
// user; every call takes the namespace explicitly so that cross-namespace
// leakage is structurally impossible.
//
// # Filters
//
// Query accepts a Filter, a small expression tree of equality, set-membership
// and existence predicates combined with And/Or:
//
//	f := storage.And(
//	    storage.Exists(storage.FieldTitle),
//	    storage.Or(
//	        storage.In(storage.FieldTopics, "pizza dough"),
//	        storage.In(storage.FieldKeywords, "pizza", "dough"),
//	    ),
//	)
//
// Filters are evaluated against chunk metadata by the backend.
//
// # Backends
//
// The badgerstore subpackage provides the bundled BadgerDB implementation.
// Constructors return the VectorStore interface so callers never couple to a
// concrete backend; tests use badgerstore.NewMemoryStore for an in-memory
// instance.
//
// # Thread Safety
//
// All VectorStore implementations must be safe for concurrent use from
// multiple goroutines.
package storage
