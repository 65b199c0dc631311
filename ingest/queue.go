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

package ingest

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/clipmind/ai"
	"github.com/poiesic/clipmind/core"
	"github.com/poiesic/clipmind/storage"
)

const failureMessage = "Sorry, we couldn't process your video after several attempts. Please try submitting it again later."

// Notifier delivers user-facing messages through an external channel, such as
// a chat bot or an email sender.
type Notifier interface {
	Notify(ctx context.Context, userID, message string) error
}

type noopNotifier struct{}

func (noopNotifier) Notify(context.Context, string, string) error { return nil }

// Queue accepts video analyses and processes them asynchronously: chunking,
// embedding, and storing each submission, with retry scheduling for transient
// failures. Jobs for a given user are processed in arrival order.
type Queue struct {
	store       storage.VectorStore
	embedder    ai.Embedder
	notifier    Notifier
	pool        *ants.Pool
	maxAttempts int
	retryDelay  time.Duration
	logger      *slog.Logger

	mu       sync.Mutex
	cond     *sync.Cond
	jobs     []*core.IngestionJob
	active   map[string]struct{}
	draining bool
	closed   bool
}

func jobKey(userID, url string) string {
	return userID + "\x00" + url
}

// Option configures a Queue.
type Option func(*Queue) error

// WithNotifier sets the collaborator notified when a job exhausts its
// attempts. Default is a no-op.
func WithNotifier(notifier Notifier) Option {
	return func(q *Queue) error {
		if notifier == nil {
			notifier = noopNotifier{}
		}
		q.notifier = notifier
		return nil
	}
}

// WithMaxAttempts sets how many times a job is tried before it is marked
// failed. Default is 3.
func WithMaxAttempts(attempts int) Option {
	return func(q *Queue) error {
		if attempts < 1 {
			attempts = 1
		}
		q.maxAttempts = attempts
		return nil
	}
}

// WithRetryDelay sets the fixed delay before a failed job becomes ready
// again. Default is 5 seconds.
func WithRetryDelay(delay time.Duration) Option {
	return func(q *Queue) error {
		if delay < 0 {
			delay = 0
		}
		q.retryDelay = delay
		return nil
	}
}

// WithPoolSize sets the worker pool size for concurrent chunk embedding.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(q *Queue) error {
		if size < 1 {
			size = 1
		}
		if q.pool != nil {
			q.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		q.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(q *Queue) error {
		if logger == nil {
			logger = slog.Default()
		}
		q.logger = logger
		return nil
	}
}

// NewQueue creates a new ingestion queue.
func NewQueue(store storage.VectorStore, embedder ai.Embedder, opts ...Option) (*Queue, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	q := &Queue{
		store:       store,
		embedder:    embedder,
		notifier:    noopNotifier{},
		pool:        pool,
		maxAttempts: 3,
		retryDelay:  5 * time.Second,
		logger:      slog.Default().With("component", "ingest.queue"),
		active:      make(map[string]struct{}),
	}
	q.cond = sync.NewCond(&q.mu)

	for _, opt := range opts {
		if optErr := opt(q); optErr != nil {
			q.Release()
			return nil, optErr
		}
	}

	return q, nil
}

// Enqueue validates the submission, checks whether the video was already
// ingested for the user, and schedules an ingestion job. It returns the job
// ID, or ErrAlreadyProcessed when the URL is known.
//
// A failed duplicate check is treated as "not ingested": it is better to
// re-process a video than to silently drop a new one.
func (q *Queue) Enqueue(ctx context.Context, userID string, analysis *core.SourceAnalysis, sub core.Submission) (string, error) {
	if userID == "" {
		return "", core.ErrEmptyUserID
	}
	if err := core.ValidateAnalysis(analysis); err != nil {
		return "", err
	}
	if err := core.ValidateSubmission(&sub); err != nil {
		return "", err
	}

	exists, err := q.store.ExistsByURL(ctx, userID, sub.SourceURL)
	if err != nil {
		q.logger.Warn("duplicate check failed, proceeding with ingestion",
			"userId", userID, "url", sub.SourceURL, "err", err)
	} else if exists {
		return "", ErrAlreadyProcessed
	}

	now := time.Now().UTC()
	job := &core.IngestionJob{
		ID:          uuid.NewString(),
		UserID:      userID,
		VideoURL:    sub.SourceURL,
		Submission:  sub,
		Analysis:    analysis,
		State:       core.JobStatePending,
		MaxAttempts: q.maxAttempts,
		EnqueuedAt:  now,
		ReadyAt:     now,
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return "", ErrQueueClosed
	}

	// In-flight duplicate suppression: a queued or currently processing job
	// for the same user and URL means this submission is already covered.
	if _, inFlight := q.active[jobKey(userID, sub.SourceURL)]; inFlight {
		return "", ErrAlreadyProcessed
	}

	q.active[jobKey(userID, sub.SourceURL)] = struct{}{}
	q.jobs = append(q.jobs, job)
	if !q.draining {
		q.draining = true
		go q.drain()
	}

	return job.ID, nil
}

// Wait blocks until the queue is empty and no drain loop is running. It is
// primarily useful in tests and during shutdown.
func (q *Queue) Wait() {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.jobs) > 0 || q.draining {
		q.cond.Wait()
	}
}

// Release waits for in-flight jobs to finish and frees the worker pool.
// The queue should not be used after calling Release.
func (q *Queue) Release() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()

	q.Wait()

	if q.pool != nil {
		q.pool.Release()
	}
}

// drain processes ready jobs until the queue empties. Exactly one drain loop
// runs at a time.
func (q *Queue) drain() {
	defer func() {
		q.mu.Lock()
		if len(q.jobs) > 0 {
			// A job slipped in after the empty check. Keep draining.
			go q.drain()
			q.mu.Unlock()
			return
		}
		q.draining = false
		q.cond.Broadcast()
		q.mu.Unlock()
	}()

	for {
		job, wait := q.next()
		if job == nil {
			if wait <= 0 {
				return
			}
			time.Sleep(wait)
			continue
		}

		q.process(job)

		q.mu.Lock()
		if job.State == core.JobStateCompleted || job.State == core.JobStateFailed {
			delete(q.active, jobKey(job.UserID, job.VideoURL))
		}
		q.cond.Broadcast()
		q.mu.Unlock()
	}
}

// next pops the first ready job in FIFO order. When no job is ready it
// returns the time until the earliest retry becomes due, or zero when the
// queue is empty.
func (q *Queue) next() (*core.IngestionJob, time.Duration) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.jobs) == 0 {
		return nil, 0
	}

	now := time.Now().UTC()
	earliest := time.Duration(-1)
	for i, job := range q.jobs {
		if !job.ReadyAt.After(now) {
			q.jobs = append(q.jobs[:i], q.jobs[i+1:]...)
			job.State = core.JobStateProcessing
			return job, 0
		}
		until := job.ReadyAt.Sub(now)
		if earliest < 0 || until < earliest {
			earliest = until
		}
	}

	if earliest < time.Millisecond {
		earliest = time.Millisecond
	}
	return nil, earliest
}

// process runs one attempt of a job and reschedules or finalizes it.
func (q *Queue) process(job *core.IngestionJob) {
	ctx := context.Background()
	job.Attempts++
	job.LastAttempt = time.Now().UTC()

	// The video may have been ingested by an earlier attempt that failed
	// after its upsert, or by a concurrent submission path. Re-check so
	// retries stay idempotent.
	exists, err := q.store.ExistsByURL(ctx, job.UserID, job.VideoURL)
	if err == nil && exists {
		job.State = core.JobStateCompleted
		q.logger.Info("video already ingested, skipping",
			"jobId", job.ID, "userId", job.UserID, "url", job.VideoURL)
		return
	}

	if err := q.ingest(ctx, job); err != nil {
		q.fail(ctx, job, err)
		return
	}

	job.State = core.JobStateCompleted
	q.logger.Info("video ingested",
		"jobId", job.ID, "userId", job.UserID, "url", job.VideoURL,
		"attempts", job.Attempts)
}

// ingest builds chunks, embeds them concurrently, and upserts the resulting
// records under the user's namespace.
func (q *Queue) ingest(ctx context.Context, job *core.IngestionJob) error {
	chunks, err := BuildChunks(job.Analysis, job.Submission, job.LastAttempt)
	if err != nil {
		return err
	}

	vectors := make([][]float32, len(chunks))
	errs := make([]error, len(chunks))
	var wg sync.WaitGroup

	for i, chunk := range chunks {
		i, chunk := i, chunk
		wg.Add(1)
		if submitErr := q.pool.Submit(func() {
			defer wg.Done()
			vectors[i], errs[i] = q.embedder.EmbedText(ctx, chunk.Content)
		}); submitErr != nil {
			wg.Done()
			errs[i] = submitErr
		}
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return err
	}

	records := make([]*core.VectorRecord, len(chunks))
	for i, chunk := range chunks {
		records[i] = &core.VectorRecord{
			ID:       chunk.ID,
			Vector:   vectors[i],
			Metadata: chunk.Metadata,
		}
	}

	return q.store.Upsert(ctx, job.UserID, records)
}

// fail records the attempt failure and either schedules a retry or, when
// attempts are exhausted, marks the job failed and notifies the user once.
func (q *Queue) fail(ctx context.Context, job *core.IngestionJob, cause error) {
	job.LastError = cause.Error()

	if job.Attempts < job.MaxAttempts {
		job.State = core.JobStateRetryScheduled
		job.ReadyAt = job.LastAttempt.Add(q.retryDelay)
		q.logger.Warn("ingestion attempt failed, retry scheduled",
			"jobId", job.ID, "userId", job.UserID, "url", job.VideoURL,
			"attempt", job.Attempts, "maxAttempts", job.MaxAttempts,
			"retryAt", job.ReadyAt, "err", cause)

		q.mu.Lock()
		q.jobs = append(q.jobs, job)
		q.mu.Unlock()
		return
	}

	job.State = core.JobStateFailed
	q.logger.Error("ingestion failed permanently",
		"jobId", job.ID, "userId", job.UserID, "url", job.VideoURL,
		"attempts", job.Attempts, "err", cause)

	if err := q.notifier.Notify(ctx, job.UserID, failureMessage); err != nil {
		q.logger.Error("failure notification not delivered",
			"jobId", job.ID, "userId", job.UserID, "err", err)
	}
}
