package state

import "sync"

type subscriber struct {
	id int
	fn Listener
}

// Subscribe registers a listener and returns its unsubscribe function. If a
// snapshot already exists it is delivered synchronously before Subscribe
// returns, so a freshly mounted panel never waits for the next poll tick.
// The first subscriber starts the scheduler; removing the last one stops it,
// tying network activity to observed demand.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subscribers = append(s.subscribers, subscriber{id: id, fn: fn})
	first := len(s.subscribers) == 1
	snap := s.snap
	s.mu.Unlock()

	if snap != nil {
		invoke(s.log, fn, snap)
	}
	if first {
		s.sched.Start()
	}

	var once sync.Once
	return func() {
		once.Do(func() { s.unsubscribe(id) })
	}
}

// SubscriberCount returns the number of registered listeners.
func (s *Store) SubscriberCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subscribers)
}

func (s *Store) unsubscribe(id int) {
	s.mu.Lock()
	for i, sub := range s.subscribers {
		if sub.id == id {
			s.subscribers = append(s.subscribers[:i], s.subscribers[i+1:]...)
			break
		}
	}
	last := len(s.subscribers) == 0
	s.mu.Unlock()

	if last {
		s.sched.Stop()
	}
}

// listenerFuncs snapshots the subscriber list in registration order. Caller
// must hold s.mu.
func (s *Store) listenerFuncs() []Listener {
	fns := make([]Listener, len(s.subscribers))
	for i, sub := range s.subscribers {
		fns[i] = sub.fn
	}
	return fns
}
