package multicast

import (
	"slices"
	"sync"
	"weak"

	"github.com/arthur-debert/signals/pkg/errors"
	"github.com/arthur-debert/signals/pkg/logging"
)

var log = logging.GetLogger("multicast")

// Registry is a generic, thread-safe multicast delegate for targets
// satisfying the capability set T. Targets are registered through the
// package-level Add function, which is the only way to construct the
// weak handle a registry holds.
type Registry[T any] interface {
	// Remove removes the first handle referring to target. Removing a
	// target that is not registered (or could never have been) is a
	// silent no-op.
	Remove(target T)

	// Invoke calls fn once for every registered target that is still
	// alive when its turn is reached, in registration order. Handles
	// whose referent has been collected are pruned instead of invoked.
	// fn runs with the registry unlocked, so it may call Add, Remove,
	// or Invoke on this registry without deadlocking.
	Invoke(fn func(T))

	// Count returns the number of handles currently in the sequence.
	// Dead handles that have not yet been pruned are included.
	Count() int

	// Clear removes all handles from the registry.
	Clear()

	// add appends a handle. Unexported so that every registration goes
	// through Add, which is where the weak handle is built.
	add(h *handle[T])
}

// handle is an immutable non-owning reference to a registered target.
// resolve returns a strong reference while the referent is alive;
// refers tests reference identity against a candidate target.
type handle[T any] struct {
	resolve func() (T, bool)
	refers  func(candidate any) bool
}

// registry is the internal implementation of Registry
type registry[T any] struct {
	mu      sync.Mutex
	handles []*handle[T]
}

// New creates a new empty Registry instance
func New[T any]() Registry[T] {
	return &registry[T]{}
}

// Add registers target with the registry. The target must be a pointer
// so the registry can hold it weakly and compare it by identity; that
// requirement is enforced by the signature. Registering a nil pointer,
// or a pointer type that does not satisfy the registry's capability set
// T, is a contract violation and panics with an ErrInvalidTarget error.
//
// Registering the same target twice creates two independent handles:
// Invoke will reach it twice and a single Remove drops only one.
func Add[T any, O any](r Registry[T], target *O) {
	if target == nil {
		panic(errors.New(errors.ErrInvalidTarget, "multicast: cannot register a nil target"))
	}
	if _, ok := any(target).(T); !ok {
		panic(errors.Newf(errors.ErrInvalidTarget,
			"multicast: %T does not satisfy the registry's capability set", target).
			WithDetail("target", any(target)))
	}

	ptr := weak.Make(target)
	r.add(&handle[T]{
		resolve: func() (T, bool) {
			if p := ptr.Value(); p != nil {
				return any(p).(T), true
			}
			var zero T
			return zero, false
		},
		refers: func(candidate any) bool {
			p := ptr.Value()
			return p != nil && any(p) == candidate
		},
	})
}

func (r *registry[T]) add(h *handle[T]) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.handles = append(r.handles, h)
	log.Trace().Int("count", len(r.handles)).Msg("target registered")
}

// Remove removes the first handle whose referent is identical to target.
// Dead handles discovered during the scan are pruned as a side effect.
func (r *registry[T]) Remove(target T) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := 0; i < len(r.handles); i++ {
		h := r.handles[i]
		if _, alive := h.resolve(); !alive {
			r.handles = slices.Delete(r.handles, i, i+1)
			i--
			continue
		}
		if h.refers(any(target)) {
			r.handles = slices.Delete(r.handles, i, i+1)
			log.Trace().Int("count", len(r.handles)).Msg("target removed")
			return
		}
	}
}

// Invoke calls fn for every live registered target in registration
// order. The scan walks a snapshot of the handle sequence and
// re-validates each handle under the lock when its turn is reached:
// handles removed before their turn are skipped, dead handles are
// pruned, and handles that survive both checks are resolved to a strong
// reference before the lock is released and fn runs. Each handle is
// visited at most once per call, so callbacks that mutate membership
// cannot cause a skip or a double delivery. Targets added during the
// scan are not part of the snapshot and wait for the next call.
func (r *registry[T]) Invoke(fn func(T)) {
	r.mu.Lock()
	snapshot := slices.Clone(r.handles)
	r.mu.Unlock()

	for _, h := range snapshot {
		r.mu.Lock()
		i := slices.Index(r.handles, h)
		if i < 0 {
			// Removed after the snapshot was taken, before its turn.
			r.mu.Unlock()
			continue
		}
		target, alive := h.resolve()
		if !alive {
			r.handles = slices.Delete(r.handles, i, i+1)
			log.Trace().Int("count", len(r.handles)).Msg("pruned dead handle")
			r.mu.Unlock()
			continue
		}
		r.mu.Unlock()

		fn(target)
	}
}

// Count returns the number of handles currently in the sequence
func (r *registry[T]) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.handles)
}

// Clear removes all handles from the registry
func (r *registry[T]) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.handles = nil
}
