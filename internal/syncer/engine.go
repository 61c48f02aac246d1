package syncer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go-inventory-sheets/internal/metrics"
	"go-inventory-sheets/internal/repository"

	"go.uber.org/atomic"
	"go.uber.org/zap"
)

var (
	ErrSyncInProgress      = errors.New("sync already in progress")
	ErrSourceNotConfigured = errors.New("source not configured")
	ErrSyncStopped         = errors.New("sync stopped before completion")
	errCacheWriteFailed    = errors.New("cache write failed")
)

// Source is the read-only upstream of an engine.
type Source[T any] interface {
	Configured() bool
	Fetch(ctx context.Context) ([]T, error)
}

type Options[T any] struct {
	// Name labels logs, metrics and the not-configured message.
	Name        string
	Source      Source[T]
	Store       repository.KVRepository
	CacheKey    string
	LastSyncKey string
	Scheduler   Scheduler
	Logger      *zap.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

type listenerEntry struct {
	id uint64
	fn Listener
}

// Engine polls one source and mirrors its records into a cache key.
//
// A cycle moves the state idle|success|error -> syncing -> success|error.
// On success the cache and last-sync key are written before listeners see
// the success state. On failure the cache is left as it was.
type Engine[T any] struct {
	name        string
	source      Source[T]
	store       repository.KVRepository
	cacheKey    string
	lastSyncKey string
	scheduler   Scheduler
	log         *zap.Logger
	now         func() time.Time

	mu           sync.Mutex
	state        State
	listeners    []listenerEntry
	nextID       uint64
	stopSchedule func()

	running *atomic.Bool
	// epoch changes on every Start and Stop; scheduled cycles from an older
	// epoch do not write the cache
	epoch *atomic.Int64
}

func NewEngine[T any](opts Options[T]) *Engine[T] {
	e := &Engine[T]{
		name:        opts.Name,
		source:      opts.Source,
		store:       opts.Store,
		cacheKey:    opts.CacheKey,
		lastSyncKey: opts.LastSyncKey,
		scheduler:   opts.Scheduler,
		log:         opts.Logger,
		now:         opts.Now,
		state:       State{Status: StatusIdle},
		running:     atomic.NewBool(false),
		epoch:       atomic.NewInt64(0),
	}
	if e.scheduler == nil {
		e.scheduler = NewCronScheduler(nil)
	}
	if e.log == nil {
		e.log = zap.NewNop()
	}
	e.log = e.log.With(zap.String("engine", e.name))
	if e.now == nil {
		e.now = time.Now
	}

	var last time.Time
	if ok, err := e.store.Get(e.lastSyncKey, &last); err != nil {
		e.log.Warn("could not read last sync time", zap.Error(err))
	} else if ok && !last.IsZero() {
		e.state.LastSync = &last
	}
	return e
}

func (e *Engine[T]) Name() string {
	return e.name
}

// roundingScheduler is a Scheduler that cannot run at every interval.
type roundingScheduler interface {
	Effective(interval time.Duration) time.Duration
}

// Start replaces any existing schedule, runs one sync right away and then
// every interval. A scheduler that rounds the interval is logged with both values.
func (e *Engine[T]) Start(interval time.Duration) {
	if r, ok := e.scheduler.(roundingScheduler); ok {
		if effective := r.Effective(interval); effective != interval {
			e.log.Warn("sync interval adjusted to the scheduler's resolution",
				zap.Duration("requested", interval),
				zap.Duration("effective", effective),
			)
			interval = effective
		}
	}

	e.mu.Lock()
	if e.stopSchedule != nil {
		e.stopSchedule()
		e.stopSchedule = nil
	}
	epoch := e.epoch.Inc()
	e.stopSchedule = e.scheduler.Every(interval, func() {
		e.runScheduled(epoch)
	})
	e.mu.Unlock()

	e.log.Info("auto sync started", zap.Duration("interval", interval))
	go e.runScheduled(epoch)
}

// Stop cancels the schedule. A scheduled cycle already fetching finishes its
// request but its result is discarded. Stop is safe to call repeatedly.
func (e *Engine[T]) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.epoch.Inc()
	if e.stopSchedule == nil {
		return
	}
	e.stopSchedule()
	e.stopSchedule = nil
	e.log.Info("auto sync stopped")
}

// Active reports whether a schedule is installed.
func (e *Engine[T]) Active() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stopSchedule != nil
}

// Sync runs exactly one cycle. It returns ErrSyncInProgress without touching
// the state if another cycle is running.
func (e *Engine[T]) Sync(ctx context.Context) error {
	return e.cycle(ctx, 0, false)
}

func (e *Engine[T]) runScheduled(epoch int64) {
	if err := e.cycle(context.Background(), epoch, true); err != nil && !errors.Is(err, ErrSyncInProgress) {
		e.log.Debug("scheduled sync failed", zap.Error(err))
	}
}

func (e *Engine[T]) cycle(ctx context.Context, epoch int64, scheduled bool) error {
	if !e.running.CompareAndSwap(false, true) {
		metrics.SyncAttemptsTotal.WithLabelValues(e.name, metrics.ResultSkipped).Inc()
		return ErrSyncInProgress
	}
	defer e.running.Store(false)

	if scheduled && e.epoch.Load() != epoch {
		metrics.SyncAttemptsTotal.WithLabelValues(e.name, metrics.ResultStale).Inc()
		return nil
	}

	prev := e.State()

	if !e.source.Configured() {
		err := fmt.Errorf("%s %w", e.name, ErrSourceNotConfigured)
		e.transition(State{Status: StatusError, Error: err.Error(), LastSync: prev.LastSync})
		metrics.SyncAttemptsTotal.WithLabelValues(e.name, metrics.ResultError).Inc()
		return err
	}

	e.transition(State{Status: StatusSyncing, LastSync: prev.LastSync})

	started := e.now()
	records, err := e.source.Fetch(ctx)
	metrics.SyncDurationSeconds.WithLabelValues(e.name).Observe(time.Since(started).Seconds())

	if err != nil {
		if scheduled && e.epoch.Load() != epoch {
			e.discard(prev)
			return nil
		}
		e.log.Warn("sync failed", zap.Error(err))
		e.transition(State{Status: StatusError, Error: err.Error(), LastSync: prev.LastSync})
		metrics.SyncAttemptsTotal.WithLabelValues(e.name, metrics.ResultError).Inc()
		return err
	}
	if records == nil {
		records = []T{}
	}

	// the epoch check and the cache write happen under mu so a concurrent
	// Stop either precedes the check or follows the write
	e.mu.Lock()
	if scheduled && e.epoch.Load() != epoch {
		e.mu.Unlock()
		e.discard(prev)
		return nil
	}
	// stores rewrite the cache key under the same key lock, so none of them
	// can put back a list read before this write
	err = e.store.WithLock(e.cacheKey, func() error {
		return e.store.Set(e.cacheKey, records)
	})
	if err != nil {
		e.mu.Unlock()
		err = fmt.Errorf("%w: %v", errCacheWriteFailed, err)
		e.log.Error("sync failed", zap.Error(err))
		e.transition(State{Status: StatusError, Error: err.Error(), LastSync: prev.LastSync})
		metrics.SyncAttemptsTotal.WithLabelValues(e.name, metrics.ResultError).Inc()
		return err
	}
	syncedAt := e.now().UTC()
	if err := e.store.Set(e.lastSyncKey, syncedAt); err != nil {
		e.log.Warn("could not persist last sync time", zap.Error(err))
	}
	e.mu.Unlock()

	metrics.SyncAttemptsTotal.WithLabelValues(e.name, metrics.ResultSuccess).Inc()
	metrics.SyncRecordsCached.WithLabelValues(e.name).Set(float64(len(records)))
	e.log.Debug("sync finished", zap.Int("records", len(records)))
	e.transition(State{Status: StatusSuccess, LastSync: &syncedAt})
	return nil
}

// discard drops the result of a cycle whose schedule was stopped. The state
// before the cycle comes back unless that was idle, which is never re-entered;
// then the cycle ends in error.
func (e *Engine[T]) discard(prev State) {
	e.log.Debug("discarding result of stopped sync")
	metrics.SyncAttemptsTotal.WithLabelValues(e.name, metrics.ResultStale).Inc()
	if prev.Status == StatusIdle {
		err := fmt.Errorf("%s %w", e.name, ErrSyncStopped)
		e.transition(State{Status: StatusError, Error: err.Error(), LastSync: prev.LastSync})
		return
	}
	e.transition(prev)
}

// transition stores s and notifies the listeners registered at this moment.
// A listener removed by an earlier listener in the same round is skipped.
func (e *Engine[T]) transition(s State) {
	e.mu.Lock()
	e.state = s
	snapshot := make([]listenerEntry, len(e.listeners))
	copy(snapshot, e.listeners)
	e.mu.Unlock()

	for _, l := range snapshot {
		if !e.subscribed(l.id) {
			continue
		}
		l.fn(s)
	}
}

func (e *Engine[T]) subscribed(id uint64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, l := range e.listeners {
		if l.id == id {
			return true
		}
	}
	return false
}

// Subscribe calls fn with the current state and then on every transition.
// The returned func unsubscribes and may be called more than once.
func (e *Engine[T]) Subscribe(fn Listener) (unsubscribe func()) {
	e.mu.Lock()
	e.nextID++
	id := e.nextID
	e.listeners = append(e.listeners, listenerEntry{id: id, fn: fn})
	current := e.state
	e.mu.Unlock()

	fn(current)

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		for i, l := range e.listeners {
			if l.id == id {
				e.listeners = append(e.listeners[:i:i], e.listeners[i+1:]...)
				return
			}
		}
	}
}

func (e *Engine[T]) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

func (e *Engine[T]) Info() Info {
	e.mu.Lock()
	state := e.state
	active := e.stopSchedule != nil
	e.mu.Unlock()

	return Info{
		Name:       e.name,
		Configured: e.source.Configured(),
		Status:     state.Status,
		Error:      state.Error,
		LastSync:   state.LastSync,
		Active:     active,
	}
}
