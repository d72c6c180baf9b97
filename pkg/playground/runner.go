package playground

import (
	"runtime"

	"github.com/arthur-debert/signals/pkg/multicast"
)

// Listener is the capability set the demo registers with the registry
type Listener interface {
	OnEvent(event string)
}

// EchoListener counts deliveries and reports each one as a trace event
type EchoListener struct {
	Name       string
	Deliveries int

	emit func(TraceEvent)
}

// OnEvent reports the delivery through the runner's trace sink
func (l *EchoListener) OnEvent(event string) {
	l.Deliveries++
	l.emit(TraceEvent{Kind: KindDeliver, Listener: l.Name, Event: event})
}

// TraceEvent kinds emitted by the runner
const (
	KindAdd     = "add"
	KindRemove  = "remove"
	KindDrop    = "drop"
	KindInvoke  = "invoke"
	KindDeliver = "deliver"
	KindPrune   = "prune"
)

// TraceEvent describes one observable moment of a scenario run
type TraceEvent struct {
	Kind     string
	Listener string
	Event    string

	// Count is the registry's handle count after the step, for the
	// step-level kinds. Deliveries carry no count.
	Count int
}

// Runner executes scenarios against a multicast registry. It holds the
// owning references to the listeners it creates; dropping one from the
// runner is what lets the registry's weak handle go dead.
type Runner struct {
	registry  multicast.Registry[Listener]
	listeners map[string]*EchoListener
	dropped   []*EchoListener
	emit      func(TraceEvent)
}

// NewRunner creates a Runner that reports trace events through emit.
// A nil emit discards the trace.
func NewRunner(emit func(TraceEvent)) *Runner {
	if emit == nil {
		emit = func(TraceEvent) {}
	}
	return &Runner{
		registry:  multicast.New[Listener](),
		listeners: make(map[string]*EchoListener),
		emit:      emit,
	}
}

// Run executes every step of the scenario in order
func (r *Runner) Run(s *Scenario) {
	log.Info().Str("title", s.Title).Int("steps", len(s.Steps)).Msg("Running scenario")

	for _, step := range s.Steps {
		switch step.Action {
		case ActionAdd:
			r.addListener(step.Listener)
		case ActionRemove:
			r.removeListener(step.Listener)
		case ActionDrop:
			r.dropListener(step.Listener)
		case ActionInvoke:
			r.invoke(step.Event)
		}
	}
}

// Summary reports the listeners the runner still owns, in no particular
// order, with their delivery counts.
func (r *Runner) Summary() []EchoListener {
	out := make([]EchoListener, 0, len(r.listeners))
	for _, l := range r.listeners {
		out = append(out, *l)
	}
	return out
}

func (r *Runner) addListener(name string) {
	l, ok := r.listeners[name]
	if !ok {
		l = &EchoListener{Name: name, emit: r.emit}
		r.listeners[name] = l
	}
	multicast.Add(r.registry, l)
	r.emit(TraceEvent{Kind: KindAdd, Listener: name, Count: r.registry.Count()})
}

func (r *Runner) removeListener(name string) {
	if l, ok := r.listeners[name]; ok {
		r.registry.Remove(l)
	}
	r.emit(TraceEvent{Kind: KindRemove, Listener: name, Count: r.registry.Count()})
}

// dropListener discards the owning reference and forces collection so
// the registry's handle observes the listener as dead. The delivery
// count the listener accumulated is folded into dropped for summaries.
func (r *Runner) dropListener(name string) {
	r.discard(name)
	collect()
	r.emit(TraceEvent{Kind: KindDrop, Listener: name, Count: r.registry.Count()})
}

// discard is kept out of dropListener so no stack slot still holds the
// listener when collect runs.
func (r *Runner) discard(name string) {
	l, ok := r.listeners[name]
	if !ok {
		return
	}
	delete(r.listeners, name)
	r.dropped = append(r.dropped, &EchoListener{Name: l.Name, Deliveries: l.Deliveries})
}

func (r *Runner) invoke(event string) {
	before := r.registry.Count()
	r.emit(TraceEvent{Kind: KindInvoke, Event: event, Count: before})

	r.registry.Invoke(func(l Listener) {
		l.OnEvent(event)
	})

	if after := r.registry.Count(); after < before {
		r.emit(TraceEvent{Kind: KindPrune, Event: event, Count: after})
	}
}

// Dropped reports listeners whose owning reference was discarded
func (r *Runner) Dropped() []EchoListener {
	out := make([]EchoListener, 0, len(r.dropped))
	for _, l := range r.dropped {
		out = append(out, *l)
	}
	return out
}

// collect runs two GC cycles so weak handles to unreachable listeners
// observe them as dead. One cycle can miss a stale stack slot.
func collect() {
	runtime.GC()
	runtime.GC()
}
