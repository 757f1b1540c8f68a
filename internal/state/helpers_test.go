package state

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/vanguard-ops/vanguard/internal/opsapi"
)

// fakeFetcher is a scripted StateFetcher. Each call to FetchUnifiedState pops
// the next step; when gate is non-nil the call blocks until the gate closes.
type fakeFetcher struct {
	mu    sync.Mutex
	calls int
	steps []fetchStep
	gate  chan struct{}
}

type fetchStep struct {
	snap *opsapi.UnifiedState
	err  error
}

func (f *fakeFetcher) FetchUnifiedState(ctx context.Context) (*opsapi.UnifiedState, error) {
	f.mu.Lock()
	f.calls++
	var step fetchStep
	if len(f.steps) > 0 {
		step = f.steps[0]
		f.steps = f.steps[1:]
	}
	gate := f.gate
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if step.err != nil {
		return nil, step.err
	}
	if step.snap != nil {
		return step.snap, nil
	}
	return &opsapi.UnifiedState{SyncID: "default"}, nil
}

func (f *fakeFetcher) FetchConvoyVehicles(ctx context.Context, convoyID int64) ([]opsapi.Vehicle, error) {
	return nil, nil
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func snapshotWith(syncID, timestamp string) *opsapi.UnifiedState {
	return &opsapi.UnifiedState{SyncID: syncID, Timestamp: timestamp}
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", msg)
}
