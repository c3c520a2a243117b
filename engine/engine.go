// Package engine maintains the primary record store and its secondary
// indexes atomically, and executes conjunctive queries by intersecting
// per-index posting sets.
package engine

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/telemstore/telemstore/keyset"
	"github.com/telemstore/telemstore/store"
)

// Engine binds one adapter to one backend. It holds exclusive mutation
// rights to the backend; a weighted semaphore of capacity one serializes
// every public entry point, and acquisition respects context cancellation
// so callers suspended on the lock can abort cleanly.
type Engine[T, Q any] struct {
	backend store.Backend
	adapter Adapter[T, Q]
	lock    *semaphore.Weighted
	log     *zap.Logger
	metrics *Metrics
}

// Option configures an Engine.
type Option func(*options)

type options struct {
	log     *zap.Logger
	metrics *Metrics
}

// WithLogger attaches a structured logger.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithMetrics attaches engine instrumentation.
func WithMetrics(m *Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// New builds an engine over backend using adapter.
func New[T, Q any](backend store.Backend, adapter Adapter[T, Q], opts ...Option) *Engine[T, Q] {
	o := options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Engine[T, Q]{
		backend: backend,
		adapter: adapter,
		lock:    semaphore.NewWeighted(1),
		log:     o.log,
		metrics: o.metrics,
	}
}

// Close releases the backend handle.
func (e *Engine[T, Q]) Close() error {
	return e.backend.Close()
}

// Post validates and stores one record together with its index postings.
func (e *Engine[T, Q]) Post(ctx context.Context, rec T) error {
	if err := e.lock.Acquire(ctx, 1); err != nil {
		return err
	}
	defer e.lock.Release(1)

	if err := e.postOne(rec); err != nil {
		e.countError("post")
		return err
	}
	e.countPosted(1)
	return nil
}

// PostMulti stores records atomically: either every record and every
// posting becomes visible at commit, or none do.
func (e *Engine[T, Q]) PostMulti(ctx context.Context, recs []T) error {
	if err := e.lock.Acquire(ctx, 1); err != nil {
		return err
	}
	defer e.lock.Release(1)

	if err := e.backend.StartBatch(); err != nil {
		e.countError("post_multi")
		return err
	}
	for _, rec := range recs {
		if err := e.postOne(rec); err != nil {
			e.backend.RollbackBatch()
			e.countError("post_multi")
			return err
		}
	}
	if err := ctx.Err(); err != nil {
		e.backend.RollbackBatch()
		return err
	}
	if err := e.backend.CommitBatch(); err != nil {
		e.backend.RollbackBatch()
		e.countError("post_multi")
		return err
	}
	e.countPosted(len(recs))
	return nil
}

// postOne runs the single-record write protocol. It writes through the
// backend's pending batch when one is open.
func (e *Engine[T, Q]) postOne(rec T) error {
	if err := e.adapter.Validate(rec); err != nil {
		return err
	}
	primary := e.adapter.PrimaryKey(rec)
	payload, err := e.adapter.EncodePayload(rec)
	if err != nil {
		return err
	}
	if err := e.backend.Put(primary, payload); err != nil {
		return fmt.Errorf("write primary: %w", err)
	}
	for _, p := range e.adapter.Postings(rec, primary) {
		if err := e.backend.CreateIndex(p.Family, primary, p.Key); err != nil {
			return fmt.Errorf("write %s posting: %w", p.Family, err)
		}
	}
	e.log.Debug("posted record", zap.String("primary", primary))
	return nil
}

// Query probes each present predicate's index, intersects the candidate
// sets and fetches the surviving payloads. A query with no predicates
// returns the empty slice without touching the backend.
func (e *Engine[T, Q]) Query(ctx context.Context, q Q) ([]T, error) {
	probes, err := e.adapter.Probes(q)
	if err != nil {
		e.countError("query")
		return nil, err
	}
	if probes.Empty() {
		return []T{}, nil
	}

	if err := e.lock.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer e.lock.Release(1)

	started := time.Now()
	recs, err := e.execute(probes)
	if err != nil {
		e.countError("query")
		return nil, err
	}
	e.observeQuery(time.Since(started))
	e.log.Debug("query executed",
		zap.Int("probes", len(probes.Prefixes)),
		zap.Int("results", len(recs)),
		zap.Duration("took", time.Since(started)))
	return recs, nil
}

func (e *Engine[T, Q]) execute(probes Probes) ([]T, error) {
	var acc keyset.Accumulator
	for _, p := range probes.Prefixes {
		candidates, err := e.backend.QueryIndex(p.Family, p.Prefix)
		if err != nil {
			return nil, err
		}
		acc.Intersect(candidates)
	}
	if tr := probes.TimeRange; tr != nil {
		candidates, err := e.backend.QueryTimestampIndex(store.TimestampFamily, tr.Start, tr.End)
		if err != nil {
			return nil, err
		}
		acc.Intersect(candidates)
	}

	payloads, err := e.backend.GetMulti(acc.Result().Sorted())
	if err != nil {
		return nil, err
	}
	recs := make([]T, 0, len(payloads))
	for _, payload := range payloads {
		rec, err := e.adapter.DecodePayload(payload)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func (e *Engine[T, Q]) countPosted(n int) {
	if e.metrics != nil {
		e.metrics.recordsPosted.Add(float64(n))
	}
}

func (e *Engine[T, Q]) countError(op string) {
	if e.metrics != nil {
		e.metrics.errors.WithLabelValues(op).Inc()
	}
}

func (e *Engine[T, Q]) observeQuery(d time.Duration) {
	if e.metrics != nil {
		e.metrics.queriesServed.Inc()
		e.metrics.queryDuration.Observe(d.Seconds())
	}
}
