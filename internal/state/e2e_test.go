package state

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/vanguard-ops/vanguard/internal/opsapi"
)

// TestStore_EndToEndPollCycle walks the full lifecycle: mount, first sync,
// outage with stale data, recovery, unmount.
func TestStore_EndToEndPollCycle(t *testing.T) {
	fetcher := &fakeFetcher{
		steps: []fetchStep{
			{snap: &opsapi.UnifiedState{
				SyncID:    "S1",
				Timestamp: "2026-08-26T10:00:00Z",
				Convoys:   []opsapi.Convoy{{ID: 1, Status: opsapi.ConvoyStatusInTransit}},
			}},
			{err: errors.New("network: connection refused")},
			{snap: &opsapi.UnifiedState{
				SyncID:    "S2",
				Timestamp: "2026-08-26T10:00:10Z",
			}},
		},
	}
	// A huge interval keeps the ticker out of the way; cycles are driven by
	// the initial fetch plus manual refreshes.
	s := New(fetcher, Options{Interval: time.Hour})

	var mu sync.Mutex
	var seen []string
	cancel := s.Subscribe(func(snap *opsapi.UnifiedState) {
		mu.Lock()
		seen = append(seen, snap.SyncID)
		mu.Unlock()
	})

	if !s.PollerRunning() {
		t.Fatal("scheduler idle after subscribe")
	}

	// First poll succeeds.
	waitFor(t, func() bool {
		snap := s.Snapshot()
		return snap != nil && snap.SyncID == "S1"
	}, "first sync")
	if convoys := s.Snapshot().Convoys; len(convoys) != 1 || convoys[0].Status != opsapi.ConvoyStatusInTransit {
		t.Fatalf("S1 convoys = %#v", s.Snapshot().Convoys)
	}

	// Second poll fails: stale-but-available.
	waitFor(t, func() bool { return s.sched.machine.Is(stateIdle) }, "flight resolve")
	s.Refresh()
	waitFor(t, func() bool { return s.Err() != nil }, "error surfaced")
	if snap := s.Snapshot(); snap.SyncID != "S1" {
		t.Fatalf("snapshot after failure = %s, want stale S1", snap.SyncID)
	}
	if s.RetryCount() != 1 {
		t.Fatalf("RetryCount() = %d, want 1", s.RetryCount())
	}

	// Third poll recovers.
	waitFor(t, func() bool { return s.sched.machine.Is(stateIdle) }, "flight resolve")
	s.Refresh()
	waitFor(t, func() bool {
		snap := s.Snapshot()
		return snap != nil && snap.SyncID == "S2"
	}, "recovery")
	if s.Err() != nil || s.RetryCount() != 0 {
		t.Fatalf("error state after recovery: err=%v retries=%d", s.Err(), s.RetryCount())
	}

	mu.Lock()
	gotSeen := append([]string(nil), seen...)
	mu.Unlock()
	if len(gotSeen) != 2 || gotSeen[0] != "S1" || gotSeen[1] != "S2" {
		t.Fatalf("listener saw %v, want [S1 S2]", gotSeen)
	}

	// Unmount: polling stops, no further network calls.
	cancel()
	if s.PollerRunning() {
		t.Fatal("scheduler still running after last unsubscribe")
	}
	calls := fetcher.callCount()
	time.Sleep(50 * time.Millisecond)
	if fetcher.callCount() != calls {
		t.Fatal("network calls continued after last unsubscribe")
	}
}
