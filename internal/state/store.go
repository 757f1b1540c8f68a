package state

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/vanguard-ops/vanguard/internal/opsapi"
)

// Listener receives each newly published snapshot.
type Listener func(*opsapi.UnifiedState)

// Options configure a Store.
type Options struct {
	// Interval is the polling cadence. Values below one second are clamped;
	// zero selects the default of five seconds.
	Interval time.Duration
	// Logger receives poll and fan-out diagnostics. Nil selects a no-op logger.
	Logger *zap.SugaredLogger
}

const defaultInterval = 5 * time.Second

// Store is the single authoritative holder of the latest good snapshot plus
// error bookkeeping. Snapshots are treated as immutable: a publish swaps the
// reference wholesale, never mutates fields of the held document, so every
// reader observes one consistent generation.
type Store struct {
	mu          sync.RWMutex
	snap        *opsapi.UnifiedState
	lastErr     error
	retries     int
	lastUpdated time.Time

	subscribers []subscriber
	nextID      int

	sched *Scheduler
	log   *zap.SugaredLogger
}

// New builds a Store wired to its own scheduler. The scheduler stays idle
// until the first subscriber arrives.
func New(fetcher opsapi.StateFetcher, opts Options) *Store {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	interval := opts.Interval
	if interval <= 0 {
		interval = defaultInterval
	}
	s := &Store{log: logger}
	s.sched = newScheduler(fetcher, s, interval, logger)
	return s
}

// Publish replaces the current snapshot, clears the error state and notifies
// all subscribers synchronously. It reports false when the snapshot was
// discarded because a newer one is already held; a slow response that lost
// the race must not roll the dashboard backwards.
func (s *Store) Publish(snap *opsapi.UnifiedState) bool {
	if snap == nil {
		return false
	}
	s.mu.Lock()
	if s.snap != nil {
		held := s.snap.ParsedTimestamp()
		incoming := snap.ParsedTimestamp()
		if !held.IsZero() && !incoming.IsZero() && incoming.Before(held) {
			s.mu.Unlock()
			return false
		}
	}
	s.snap = snap
	s.lastErr = nil
	s.retries = 0
	s.lastUpdated = time.Now()
	fns := s.listenerFuncs()
	s.mu.Unlock()

	for _, fn := range fns {
		invoke(s.log, fn, snap)
	}
	return true
}

// ReportError records a fetch failure. The held snapshot is intentionally
// retained: the dashboard keeps showing the last good picture through
// transient backend outages instead of going blank.
func (s *Store) ReportError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = err
	s.retries++
}

// Snapshot returns the current snapshot reference, or nil before the first
// successful fetch. Callers must treat the returned document as read-only.
func (s *Store) Snapshot() *opsapi.UnifiedState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Err returns the most recent fetch error, or nil after a successful fetch.
func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// RetryCount returns the number of consecutive failed fetches.
func (s *Store) RetryCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.retries
}

// LastUpdated returns the wall-clock time of the last successful publish.
func (s *Store) LastUpdated() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastUpdated
}

// Refresh asks the scheduler for an immediate fetch. It is a no-op when a
// fetch is already outstanding.
func (s *Store) Refresh() {
	s.sched.TriggerFetch()
}

// SetInterval adjusts the polling cadence for subsequent cycles.
func (s *Store) SetInterval(d time.Duration) {
	s.sched.SetInterval(d)
}

// PollerRunning reports whether the scheduler loop is active.
func (s *Store) PollerRunning() bool {
	return s.sched.Running()
}

func invoke(log *zap.SugaredLogger, fn Listener, snap *opsapi.UnifiedState) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorw("snapshot listener panicked", "panic", r)
		}
	}()
	fn(snap)
}
