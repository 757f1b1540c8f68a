package state

import (
	"sync"

	"go.uber.org/zap"
)

// Selection is the cross-panel highlight: which convoy and which route the
// operator currently has picked. Either id may be nil. An id that does not
// resolve against the current snapshot is still a valid selection; it may
// resolve once the next snapshot arrives, or never.
type Selection struct {
	ConvoyID *int64
	RouteID  *int64
}

// SelectionListener receives every selection change.
type SelectionListener func(Selection)

// SelectionCoordinator owns the shared selection and broadcasts changes on
// its own channel, independent of snapshot publication, so a click propagates
// between panels without waiting for a poll tick. Snapshot replacement never
// clears a selection, even when the referenced entity disappears.
type SelectionCoordinator struct {
	mu       sync.RWMutex
	current  Selection
	watchers []selectionWatcher
	nextID   int
	log      *zap.SugaredLogger
}

type selectionWatcher struct {
	id int
	fn SelectionListener
}

// NewSelectionCoordinator builds a coordinator with both ids unset.
func NewSelectionCoordinator(log *zap.SugaredLogger) *SelectionCoordinator {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &SelectionCoordinator{log: log}
}

// SetSelectedConvoyID updates the convoy selection and broadcasts.
func (c *SelectionCoordinator) SetSelectedConvoyID(id *int64) {
	c.mu.Lock()
	c.current.ConvoyID = cloneID(id)
	sel := c.current
	watchers := c.watcherFuncs()
	c.mu.Unlock()
	broadcast(c.log, watchers, sel)
}

// SetSelectedRouteID updates the route selection and broadcasts.
func (c *SelectionCoordinator) SetSelectedRouteID(id *int64) {
	c.mu.Lock()
	c.current.RouteID = cloneID(id)
	sel := c.current
	watchers := c.watcherFuncs()
	c.mu.Unlock()
	broadcast(c.log, watchers, sel)
}

// Selection returns the current selection.
func (c *SelectionCoordinator) Selection() Selection {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Selection{ConvoyID: cloneID(c.current.ConvoyID), RouteID: cloneID(c.current.RouteID)}
}

// Watch registers a listener for selection changes and returns its
// unsubscribe function.
func (c *SelectionCoordinator) Watch(fn SelectionListener) func() {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.watchers = append(c.watchers, selectionWatcher{id: id, fn: fn})
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			for i, w := range c.watchers {
				if w.id == id {
					c.watchers = append(c.watchers[:i], c.watchers[i+1:]...)
					return
				}
			}
		})
	}
}

// watcherFuncs snapshots the watcher list in registration order. Caller must
// hold c.mu.
func (c *SelectionCoordinator) watcherFuncs() []SelectionListener {
	fns := make([]SelectionListener, len(c.watchers))
	for i, w := range c.watchers {
		fns[i] = w.fn
	}
	return fns
}

func broadcast(log *zap.SugaredLogger, fns []SelectionListener, sel Selection) {
	for _, fn := range fns {
		func() {
			defer func() {
				if r := recover(); r != nil {
					log.Errorw("selection listener panicked", "panic", r)
				}
			}()
			fn(sel)
		}()
	}
}

func cloneID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
