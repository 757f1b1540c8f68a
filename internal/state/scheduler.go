package state

import (
	"context"
	"sync"
	"time"

	"github.com/looplab/fsm"
	"go.uber.org/zap"

	"github.com/vanguard-ops/vanguard/internal/opsapi"
)

// Scheduler states and events. The Idle/Fetching machine is the single-flight
// guard: begin only transitions out of idle, so a second trigger while a
// fetch is outstanding fails the transition and returns immediately.
const (
	stateIdle     = "idle"
	stateFetching = "fetching"

	eventBegin  = "begin"
	eventFinish = "finish"
)

// minInterval bounds backend load regardless of configuration.
const minInterval = time.Second

// fetchBudget caps one fetch end to end so a hung request cannot occupy the
// single-flight slot indefinitely.
const fetchBudget = 15 * time.Second

// Scheduler drives periodic retrieval of the unified state document. Stop
// halts future cycles but never cancels an in-flight request; a late result
// still flows through the normal publish path, where the store's ordering
// guard decides whether it is applied.
type Scheduler struct {
	fetcher opsapi.StateFetcher
	store   *Store
	log     *zap.SugaredLogger

	machine *fsm.FSM

	mu       sync.Mutex
	interval time.Duration
	running  bool
	stop     chan struct{}
}

func newScheduler(fetcher opsapi.StateFetcher, store *Store, interval time.Duration, log *zap.SugaredLogger) *Scheduler {
	if interval < minInterval {
		interval = minInterval
	}
	return &Scheduler{
		fetcher:  fetcher,
		store:    store,
		log:      log,
		interval: interval,
		machine: fsm.NewFSM(
			stateIdle,
			fsm.Events{
				{Name: eventBegin, Src: []string{stateIdle}, Dst: stateFetching},
				{Name: eventFinish, Src: []string{stateFetching}, Dst: stateIdle},
			},
			fsm.Callbacks{},
		),
	}
}

// Start begins an immediate fetch and then repeats at the configured
// interval. Calling Start while already running is a no-op.
func (p *Scheduler) Start() {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return
	}
	p.running = true
	p.stop = make(chan struct{})
	stop := p.stop
	p.mu.Unlock()

	go p.loop(stop)
}

// Stop cancels future cycles. The in-flight request, if any, runs to
// completion.
func (p *Scheduler) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.running {
		return
	}
	p.running = false
	close(p.stop)
}

// Running reports whether the poll loop is active.
func (p *Scheduler) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// SetInterval adjusts the cadence, clamped to the minimum floor. The new
// value takes effect on the next cycle.
func (p *Scheduler) SetInterval(d time.Duration) {
	if d < minInterval {
		d = minInterval
	}
	p.mu.Lock()
	p.interval = d
	p.mu.Unlock()
}

// Interval returns the current polling cadence.
func (p *Scheduler) Interval() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.interval
}

// TriggerFetch starts a fetch unless one is already outstanding. Safe to call
// from any goroutine: concurrent manual triggers plus a timer tick still
// produce exactly one request.
func (p *Scheduler) TriggerFetch() {
	if err := p.machine.Event(context.Background(), eventBegin); err != nil {
		// A fetch is already in flight.
		return
	}
	go p.fetch()
}

func (p *Scheduler) loop(stop chan struct{}) {
	p.TriggerFetch()
	for {
		timer := time.NewTimer(p.Interval())
		select {
		case <-stop:
			timer.Stop()
			return
		case <-timer.C:
			p.TriggerFetch()
		}
	}
}

// fetch performs one retrieval. Failures are reported and swallowed: an
// individual bad cycle never stops the loop.
func (p *Scheduler) fetch() {
	defer func() { _ = p.machine.Event(context.Background(), eventFinish) }()

	ctx, cancel := context.WithTimeout(context.Background(), fetchBudget)
	defer cancel()

	snap, err := p.fetcher.FetchUnifiedState(ctx)
	if err != nil {
		p.store.ReportError(err)
		p.log.Warnw("state poll failed", "error", err)
		return
	}
	if !p.store.Publish(snap) {
		p.log.Infow("discarded superseded poll result", "sync_id", snap.SyncID)
	}
}
