package state

import (
	"testing"

	"github.com/vanguard-ops/vanguard/internal/opsapi"
)

func TestSelection_BroadcastIsImmediate(t *testing.T) {
	c := NewSelectionCoordinator(nil)

	var got []Selection
	unwatch := c.Watch(func(sel Selection) { got = append(got, sel) })
	defer unwatch()

	id := int64(7)
	c.SetSelectedConvoyID(&id)

	// No poll cycle involved: delivery happens inside the setter.
	if len(got) != 1 || got[0].ConvoyID == nil || *got[0].ConvoyID != 7 {
		t.Fatalf("broadcast = %#v, want one selection with convoy 7", got)
	}

	routeID := int64(3)
	c.SetSelectedRouteID(&routeID)
	if len(got) != 2 || got[1].RouteID == nil || *got[1].RouteID != 3 {
		t.Fatalf("broadcast = %#v, want convoy 7 + route 3", got)
	}
	if got[1].ConvoyID == nil || *got[1].ConvoyID != 7 {
		t.Fatal("route selection clobbered the independent convoy selection")
	}

	c.SetSelectedConvoyID(nil)
	if len(got) != 3 || got[2].ConvoyID != nil {
		t.Fatalf("broadcast = %#v, want cleared convoy selection", got)
	}
}

func TestSelection_DanglingIDIsValid(t *testing.T) {
	// The snapshot knows nothing about convoy 999; selecting it is fine.
	s := New(&fakeFetcher{gate: make(chan struct{})}, Options{})
	s.Publish(&opsapi.UnifiedState{
		SyncID:  "S1",
		Convoys: []opsapi.Convoy{{ID: 1, Status: opsapi.ConvoyStatusInTransit}},
	})

	c := NewSelectionCoordinator(nil)
	id := int64(999)
	c.SetSelectedConvoyID(&id)

	sel := c.Selection()
	if sel.ConvoyID == nil || *sel.ConvoyID != 999 {
		t.Fatalf("Selection() = %#v, want dangling convoy 999 retained", sel)
	}
}

func TestSelection_SurvivesSnapshotReplacement(t *testing.T) {
	s := New(&fakeFetcher{gate: make(chan struct{})}, Options{})
	c := NewSelectionCoordinator(nil)

	id := int64(1)
	c.SetSelectedConvoyID(&id)

	// The selected convoy disappears in the next generation.
	s.Publish(&opsapi.UnifiedState{SyncID: "S1", Convoys: []opsapi.Convoy{{ID: 1}}, Timestamp: "2026-08-26T10:00:00Z"})
	s.Publish(&opsapi.UnifiedState{SyncID: "S2", Convoys: nil, Timestamp: "2026-08-26T10:00:05Z"})

	sel := c.Selection()
	if sel.ConvoyID == nil || *sel.ConvoyID != 1 {
		t.Fatalf("Selection() = %#v, want convoy 1 retained across snapshots", sel)
	}
}

func TestSelection_SetterCopiesID(t *testing.T) {
	c := NewSelectionCoordinator(nil)

	id := int64(5)
	c.SetSelectedConvoyID(&id)
	id = 42 // caller mutates its own pointer afterwards

	sel := c.Selection()
	if sel.ConvoyID == nil || *sel.ConvoyID != 5 {
		t.Fatalf("Selection() = %#v, want convoy 5 unaffected by caller mutation", sel)
	}
}

func TestSelection_WatcherPanicIsolated(t *testing.T) {
	c := NewSelectionCoordinator(nil)

	var delivered bool
	c.Watch(func(Selection) { panic("watcher bug") })
	c.Watch(func(Selection) { delivered = true })

	id := int64(1)
	c.SetSelectedConvoyID(&id)

	if !delivered {
		t.Fatal("second watcher missed delivery after first watcher panicked")
	}
}

func TestSelection_UnwatchStopsDelivery(t *testing.T) {
	c := NewSelectionCoordinator(nil)

	count := 0
	unwatch := c.Watch(func(Selection) { count++ })

	id := int64(1)
	c.SetSelectedConvoyID(&id)
	unwatch()
	unwatch() // idempotent
	c.SetSelectedConvoyID(&id)

	if count != 1 {
		t.Fatalf("delivery count = %d, want 1", count)
	}
}
