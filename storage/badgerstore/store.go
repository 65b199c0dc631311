package badgerstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"sort"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/clipmind/core"
	"github.com/poiesic/clipmind/storage"
)

// upsertBatchSize bounds how many records land in one transaction so a single
// call never exceeds BadgerDB transaction limits.
const upsertBatchSize = 100

// Store implements storage.VectorStore and storage.RecordSource on BadgerDB.
type Store struct {
	backend *Backend
	logger  *slog.Logger
}

var _ storage.VectorStore = (*Store)(nil)
var _ storage.RecordSource = (*Store)(nil)

// NewStore creates a vector store over an open backend.
func NewStore(backend *Backend) (*Store, error) {
	if backend == nil {
		return nil, errors.New("backend required")
	}
	return &Store{
		backend: backend,
		logger:  slog.Default().With("component", "badgerstore"),
	}, nil
}

// OpenStore opens a BadgerDB-backed vector store at the given path.
func OpenStore(filePath string) (*Store, error) {
	backend, err := OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}
	return NewStore(backend)
}

// Close closes the underlying backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

func validateNamespace(namespace string) error {
	if namespace == "" {
		return storage.ErrEmptyNamespace
	}
	if strings.ContainsRune(namespace, ':') {
		return fmt.Errorf("%w: %q contains ':'", storage.ErrInvalidNamespace, namespace)
	}
	return nil
}

// validateDimensions rejects records with missing vectors or disagreeing
// dimensions. A mixed-dimension store would silently score garbage, so the
// mismatch has to surface at the write.
func validateDimensions(records []*core.VectorRecord) error {
	if len(records) == 0 {
		return nil
	}
	want := len(records[0].Vector)
	if want == 0 {
		return fmt.Errorf("%w: record %q has no vector", storage.ErrDimensionMismatch, records[0].ID)
	}
	for _, record := range records[1:] {
		if len(record.Vector) != want {
			return fmt.Errorf("%w: record %q has %d dimensions, expected %d",
				storage.ErrDimensionMismatch, record.ID, len(record.Vector), want)
		}
	}
	return nil
}

// Upsert writes records into the namespace, idempotent by record ID.
// Records are committed in batches of at most upsertBatchSize; each batch
// lands transactionally or the whole call fails upward.
func (s *Store) Upsert(ctx context.Context, namespace string, records []*core.VectorRecord) error {
	if err := validateNamespace(namespace); err != nil {
		return err
	}
	if err := validateDimensions(records); err != nil {
		return err
	}

	for start := 0; start < len(records); start += upsertBatchSize {
		end := min(start+upsertBatchSize, len(records))
		batch := records[start:end]

		err := s.backend.WithTx(func(tx *badger.Txn) error {
			for _, record := range batch {
				key := makeRecordKey(namespace, record.ID)
				if err := tx.Set(key, storage.MarshalVectorRecord(record)); err != nil {
					return err
				}

				// URL index for duplicate detection
				url := strings.TrimSpace(record.Metadata.VideoURL)
				if url != "" {
					urlKey := makeURLKey(namespace, url)
					if err := tx.Set(urlKey, []byte(record.ID)); err != nil {
						return err
					}
				}
			}
			return tx.Commit()
		}, true)
		if err != nil {
			return fmt.Errorf("upsert batch %d-%d: %w", start, end, err)
		}
	}

	s.logger.Debug("upserted records", "namespace", namespace, "count", len(records))
	return nil
}

// Query returns the topK nearest records in the namespace by cosine
// similarity, highest first, restricted to records matching the filter.
func (s *Store) Query(ctx context.Context, namespace string, vector []float32, topK int, filter storage.Filter) ([]*core.MatchResult, error) {
	if err := validateNamespace(namespace); err != nil {
		return nil, err
	}
	if len(vector) == 0 || topK <= 0 {
		return nil, storage.ErrInvalidQuery
	}

	var results []*core.MatchResult
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeRecordPrefix(namespace)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var record *core.VectorRecord
			err := iter.Item().Value(func(val []byte) error {
				var err error
				record, err = storage.UnmarshalVectorRecord(val)
				return err
			})
			if err != nil {
				return err
			}
			if record == nil {
				continue
			}
			// A stored vector of a different dimension means the embedding
			// model changed without re-embedding. Surface it instead of
			// silently scoring zero.
			if len(record.Vector) != len(vector) {
				return fmt.Errorf("%w: query has %d dimensions, record %q has %d",
					storage.ErrDimensionMismatch, len(vector), record.ID, len(record.Vector))
			}

			if filter != nil && !filter.Matches(&record.Metadata) {
				continue
			}

			results = append(results, &core.MatchResult{
				Metadata: record.Metadata,
				Score:    cosineSimilarity(vector, record.Vector),
			})
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

// ExistsByURL reports whether the namespace already holds a record for the
// trimmed URL. A missing index entry is not an error.
func (s *Store) ExistsByURL(ctx context.Context, namespace, url string) (bool, error) {
	if err := validateNamespace(namespace); err != nil {
		return false, err
	}

	exists := false
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		_, err := tx.Get(makeURLKey(namespace, url))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		exists = true
		return nil
	}, false)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// Stats returns record and namespace counts across the whole store.
func (s *Store) Stats(ctx context.Context) (*storage.Stats, error) {
	stats := &storage.Stats{}
	namespaces := make(map[string]bool)

	err := s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(recordPrefix + ":")
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			ns := namespaceFromRecordKey(iter.Item().Key())
			if ns == "" {
				continue
			}
			namespaces[ns] = true
			stats.Records++
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	stats.Namespaces = len(namespaces)
	return stats, nil
}

// Namespaces lists every namespace with at least one record, sorted.
func (s *Store) Namespaces(ctx context.Context) ([]string, error) {
	set := make(map[string]bool)
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(recordPrefix + ":")
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if ns := namespaceFromRecordKey(iter.Item().Key()); ns != "" {
				set[ns] = true
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	namespaces := make([]string, 0, len(set))
	for ns := range set {
		namespaces = append(namespaces, ns)
	}
	slices.Sort(namespaces)
	return namespaces, nil
}

// Records calls fn for every record in the namespace.
func (s *Store) Records(ctx context.Context, namespace string, fn func(*core.VectorRecord) error) error {
	if err := validateNamespace(namespace); err != nil {
		return err
	}

	return s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeRecordPrefix(namespace)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var record *core.VectorRecord
			err := iter.Item().Value(func(val []byte) error {
				var err error
				record, err = storage.UnmarshalVectorRecord(val)
				return err
			})
			if err != nil {
				return err
			}
			if err := fn(record); err != nil {
				return err
			}
		}
		return nil
	}, false)
}

// cosineSimilarity computes the cosine of the angle between two vectors.
// Returns 0 for mismatched lengths or zero vectors.
func cosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float32
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (float32(math.Sqrt(float64(normA))) * float32(math.Sqrt(float64(normB))))
}
