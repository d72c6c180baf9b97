package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/signals/pkg/playground"
)

func TestTraceText(t *testing.T) {
	tests := []struct {
		name string
		ev   playground.TraceEvent
		want string
	}{
		{
			name: "add",
			ev:   playground.TraceEvent{Kind: playground.KindAdd, Listener: "alpha", Count: 1},
			want: "+ add alpha (handles: 1)",
		},
		{
			name: "remove",
			ev:   playground.TraceEvent{Kind: playground.KindRemove, Listener: "alpha", Count: 0},
			want: "- remove alpha (handles: 0)",
		},
		{
			name: "drop",
			ev:   playground.TraceEvent{Kind: playground.KindDrop, Listener: "gamma", Count: 2},
			want: "~ drop gamma (handles: 2)",
		},
		{
			name: "invoke",
			ev:   playground.TraceEvent{Kind: playground.KindInvoke, Event: "startup", Count: 2},
			want: `* invoke "startup" (handles: 2)`,
		},
		{
			name: "deliver",
			ev:   playground.TraceEvent{Kind: playground.KindDeliver, Listener: "beta", Event: "startup"},
			want: `beta <- "startup"`,
		},
		{
			name: "prune",
			ev:   playground.TraceEvent{Kind: playground.KindPrune, Event: "shutdown", Count: 1},
			want: "pruned dead handles (handles: 1)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, traceText(tt.ev))
		})
	}
}

func TestDemoCommand(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	t.Run("built-in scenario", func(t *testing.T) {
		scenarioPath = ""
		var buf bytes.Buffer
		rootCmd.SetOut(&buf)
		rootCmd.SetArgs([]string{"demo"})

		require.NoError(t, rootCmd.Execute())

		out := buf.String()
		assert.Contains(t, out, "observer lifecycle")
		assert.Contains(t, out, "+ add alpha (handles: 1)")
		assert.Contains(t, out, `beta <- "shutdown"`)
		assert.Contains(t, out, "pruned dead handles (handles: 1)")
		assert.NotContains(t, out, `gamma <- "shutdown"`)
	})

	t.Run("scenario from file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "demo.toml")
		require.NoError(t, os.WriteFile(path, []byte(`
title = "file scenario"

[[steps]]
action = "add"
listener = "solo"

[[steps]]
action = "invoke"
event = "ping"
`), 0644))

		scenarioPath = ""
		var buf bytes.Buffer
		rootCmd.SetOut(&buf)
		rootCmd.SetArgs([]string{"demo", "--scenario", path})

		require.NoError(t, rootCmd.Execute())

		out := buf.String()
		assert.Contains(t, out, "file scenario")
		assert.Contains(t, out, `solo <- "ping"`)
	})

	t.Run("missing scenario file", func(t *testing.T) {
		scenarioPath = ""
		rootCmd.SetOut(new(bytes.Buffer))
		rootCmd.SetArgs([]string{"demo", "--scenario", filepath.Join(t.TempDir(), "nope.toml")})

		assert.Error(t, rootCmd.Execute())
	})
}
