// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package search

import (
	"context"
	"log/slog"

	"github.com/poiesic/clipmind/core"
	"github.com/poiesic/clipmind/storage"
)

const (
	// relevanceFloor drops matches whose cosine similarity is too weak to be
	// useful, applied identically at every retrieval stage.
	relevanceFloor = 0.5

	// overFetchFactor widens per-stage candidate sets so cross-chunk
	// aggregation still has topK distinct videos to choose from.
	overFetchFactor = 4
)

// retriever runs the tiered retrieval cascade: a tightly filtered search
// first, then a metadata-existence search, then an unrestricted vector
// search. Earlier stages failing or returning nothing never abort the
// cascade; only the final stage's error is fatal.
type retriever struct {
	store  storage.VectorStore
	logger *slog.Logger
}

func (r *retriever) retrieve(
	ctx context.Context,
	namespace string,
	vector []float32,
	enhanced *core.EnhancedQuery,
	topK int,
	monitor SearchMonitor,
) ([]*core.MatchResult, error) {
	fetch := topK * overFetchFactor

	if filter := enhancedFilter(enhanced); filter != nil {
		matches, err := r.store.Query(ctx, namespace, vector, fetch, filter)
		if err != nil {
			r.logger.Warn("filtered retrieval failed, falling through",
				"namespace", namespace, "err", err)
		} else if matches = aboveFloor(matches); len(matches) > 0 {
			monitor.AfterRetrieval(StageFiltered, matches)
			return matches, nil
		}
	}

	metaFilter := storage.And(
		storage.Exists(storage.FieldTitle),
		storage.Exists(storage.FieldSummary),
	)
	matches, err := r.store.Query(ctx, namespace, vector, fetch, metaFilter)
	if err != nil {
		r.logger.Warn("metadata retrieval failed, falling through",
			"namespace", namespace, "err", err)
	} else if matches = aboveFloor(matches); len(matches) > 0 {
		monitor.AfterRetrieval(StageMetadata, matches)
		return matches, nil
	}

	matches, err = r.store.Query(ctx, namespace, vector, fetch, nil)
	if err != nil {
		return nil, err
	}
	matches = aboveFloor(matches)
	monitor.AfterRetrieval(StageVector, matches)
	return matches, nil
}

// enhancedFilter builds the stage-one filter from the enhanced query's
// expansion sets. It returns nil when the expansion contributes nothing to
// filter on, in which case the stage is skipped.
func enhancedFilter(enhanced *core.EnhancedQuery) storage.Filter {
	var any []storage.Filter
	if len(enhanced.Topics) > 0 {
		any = append(any, storage.In(storage.FieldTopics, enhanced.Topics...))
	}
	if len(enhanced.VisualElements) > 0 {
		any = append(any, storage.In(storage.FieldKeyElements, enhanced.VisualElements...))
	}
	if len(enhanced.SearchTerms) > 0 {
		any = append(any, storage.In(storage.FieldKeywords, enhanced.SearchTerms...))
	}
	if len(any) == 0 {
		return nil
	}

	return storage.And(
		storage.Exists(storage.FieldTitle),
		storage.Exists(storage.FieldSummary),
		storage.Or(any...),
	)
}

func aboveFloor(matches []*core.MatchResult) []*core.MatchResult {
	kept := matches[:0]
	for _, match := range matches {
		if match.Score >= relevanceFloor {
			kept = append(kept, match)
		}
	}
	return kept
}
