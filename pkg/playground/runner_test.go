package playground

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// traceString flattens an event for easy sequence assertions
func traceString(ev TraceEvent) string {
	switch ev.Kind {
	case KindDeliver:
		return fmt.Sprintf("deliver %s->%s", ev.Event, ev.Listener)
	case KindInvoke, KindPrune:
		return fmt.Sprintf("%s %s n=%d", ev.Kind, ev.Event, ev.Count)
	default:
		return fmt.Sprintf("%s %s n=%d", ev.Kind, ev.Listener, ev.Count)
	}
}

func TestRunnerDefaultScenario(t *testing.T) {
	var trace []string
	r := NewRunner(func(ev TraceEvent) {
		trace = append(trace, traceString(ev))
	})

	r.Run(Default())

	assert.Equal(t, []string{
		"add alpha n=1",
		"add beta n=2",
		"invoke startup n=2",
		"deliver startup->alpha",
		"deliver startup->beta",
		"remove alpha n=1",
		"invoke reload n=1",
		"deliver reload->beta",
		"add gamma n=2",
		"drop gamma n=2",
		"invoke shutdown n=2",
		"deliver shutdown->beta",
		"prune shutdown n=1",
	}, trace)
}

func TestRunnerSummary(t *testing.T) {
	r := NewRunner(nil)
	r.Run(Default())

	byName := make(map[string]EchoListener)
	for _, l := range r.Summary() {
		byName[l.Name] = l
	}

	require.Len(t, byName, 2)
	assert.Equal(t, 1, byName["alpha"].Deliveries, "alpha was removed after the first event")
	assert.Equal(t, 3, byName["beta"].Deliveries, "beta receives every event")

	dropped := r.Dropped()
	require.Len(t, dropped, 1)
	assert.Equal(t, "gamma", dropped[0].Name)
	assert.Equal(t, 0, dropped[0].Deliveries, "gamma died before any event reached it")
}

func TestRunnerUnknownListener(t *testing.T) {
	// remove and drop of names the runner never created are no-ops
	s, err := Parse([]byte(`
[[steps]]
action = "add"
listener = "one"

[[steps]]
action = "remove"
listener = "stranger"

[[steps]]
action = "drop"
listener = "stranger"

[[steps]]
action = "invoke"
event = "ping"
`))
	require.NoError(t, err)

	var delivered []string
	r := NewRunner(func(ev TraceEvent) {
		if ev.Kind == KindDeliver {
			delivered = append(delivered, ev.Listener)
		}
	})
	r.Run(s)

	assert.Equal(t, []string{"one"}, delivered)
}

func TestRunnerReRegistration(t *testing.T) {
	// Adding the same listener twice registers it twice
	s, err := Parse([]byte(`
[[steps]]
action = "add"
listener = "one"

[[steps]]
action = "add"
listener = "one"

[[steps]]
action = "invoke"
event = "ping"
`))
	require.NoError(t, err)

	r := NewRunner(nil)
	r.Run(s)

	byName := make(map[string]EchoListener)
	for _, l := range r.Summary() {
		byName[l.Name] = l
	}
	assert.Equal(t, 2, byName["one"].Deliveries)
}
