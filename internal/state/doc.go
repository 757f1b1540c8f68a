// Package state is the synchronization core of Vanguard: one store, one
// fetch scheduler, a subscriber registry, and a selection coordinator.
//
// # Overview
//
// Every panel in the dashboard renders from the same unified snapshot. This
// package owns that snapshot and everything around keeping it fresh: a
// scheduler polls the operations backend, a store holds the latest good
// snapshot plus error bookkeeping, and subscribers get pushed every accepted
// update. Selection (which convoy and route the operator has highlighted) is
// coordinated here too, on its own channel, because selection changes must
// not wait for a network round trip.
//
// # Architecture
//
//	Scheduler (goroutine):          Store:                 Subscribers (UI):
//	┌──────────────────┐     ┌──────────────────┐     ┌──────────────────┐
//	│ timer / Refresh  │     │ snapshot         │     │ listener(snap)   │
//	│       ↓          │     │ lastErr, retries │────→│ listener(snap)   │
//	│ FetchUnified...  │────→│ lastUpdated      │     │ ...              │
//	│ (single-flight)  │     │                  │     └──────────────────┘
//	└──────────────────┘     └──────────────────┘
//
// The scheduler is demand-driven. It does not run at process start; the
// first Subscribe starts it and the last unsubscribe stops it. A process
// with no consumers generates no backend traffic.
//
// # Single-Flight Fetching
//
// The scheduler runs at most one fetch at a time. A small two-state machine
// (idle / fetching, via looplab/fsm) guards the transition: TriggerFetch
// attempts the begin event and simply returns false when a fetch is already
// in flight. Manual refresh requests and timer ticks share this guard, so
// hammering the refresh key cannot stack requests.
//
// Stop does not cancel an in-flight fetch. A late response after Stop is
// still published: data that already cost a round trip should not be thrown
// away.
//
// # Ordering Guard
//
// Publish compares the incoming snapshot's timestamp against the held one
// and rejects strictly older data. This protects against a slow response
// overtaking a fast one. Snapshots whose timestamps cannot be parsed pass
// through unguarded; a backend that emits unparseable timestamps should not
// wedge the dashboard on a stale snapshot forever.
//
// # Error Semantics
//
// A failed fetch never discards data. ReportError records the error and
// increments the retry counter while the previous snapshot stays readable,
// so the UI can render stale data with a warning banner instead of going
// blank. The next successful Publish clears both.
//
// # Subscribers
//
// Subscribe registers a listener, synchronously replays the current
// snapshot when one exists (late subscribers never start blank), and
// returns a cancel function. Cancel is idempotent. Listeners are invoked
// outside the store lock, and each invocation is wrapped in a recover so a
// panicking consumer cannot take down the scheduler or starve its siblings.
//
// # Selection
//
// SelectionCoordinator carries the shared convoy and route selection. It is
// deliberately independent of the snapshot channel: selecting a convoy
// broadcasts immediately, and a selection pointing at an entity that has
// since vanished from the snapshot is still a valid selection. Lookups that
// resolve selections against data live in the views package; the
// coordinator stores IDs only.
//
// # Concurrency Model
//
//   - Store: sync.Mutex around all fields; listener calls happen on a
//     copied slice after the lock is released.
//   - Scheduler: fsm guards fetch state; the poll loop owns its timer.
//   - SelectionCoordinator: its own mutex, same copy-then-broadcast shape.
//
// IDs handed to the coordinator are cloned on the way in and out, so a
// caller mutating an *int64 after a set cannot corrupt shared state.
package state
