package testutil

import (
	"runtime"
	"sync"
)

// DrainGC forces garbage collection so that weak references to targets
// that have become unreachable observe them as dead. Two cycles are run
// because a single cycle may still see a stale stack slot keeping the
// target reachable.
func DrainGC() {
	runtime.GC()
	runtime.GC()
}

// RecordingListener records every event delivered to it. It is safe for
// concurrent delivery.
type RecordingListener struct {
	Name string

	mu     sync.Mutex
	events []string
}

// NewRecordingListener creates a RecordingListener with the given name.
func NewRecordingListener(name string) *RecordingListener {
	return &RecordingListener{Name: name}
}

// OnEvent records the delivered event.
func (l *RecordingListener) OnEvent(event string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, event)
}

// Events returns a copy of the events delivered so far.
func (l *RecordingListener) Events() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.events))
	copy(out, l.events)
	return out
}

// Calls returns the number of events delivered so far.
func (l *RecordingListener) Calls() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.events)
}
