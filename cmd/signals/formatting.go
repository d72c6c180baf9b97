package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"

	"github.com/arthur-debert/signals/pkg/playground"
	"github.com/arthur-debert/signals/pkg/playground/styles"
)

// colorEnabled reports whether stdout is a terminal that can take
// styled output
func colorEnabled() bool {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return false
	}
	return termenv.ColorProfile() != termenv.Ascii
}

// renderTitle formats the scenario title line
func renderTitle(title string) string {
	if title == "" {
		title = "scenario"
	}
	if !colorEnabled() {
		return title
	}
	return styles.GetStyle("Title").Render(title)
}

// renderTrace formats one trace event, styled by its kind when the
// terminal allows it
func renderTrace(ev playground.TraceEvent) string {
	text := traceText(ev)
	if !colorEnabled() {
		return text
	}
	return styles.GetStyle(ev.Kind).Render(text)
}

func traceText(ev playground.TraceEvent) string {
	switch ev.Kind {
	case playground.KindAdd:
		return fmt.Sprintf("+ add %s (handles: %d)", ev.Listener, ev.Count)
	case playground.KindRemove:
		return fmt.Sprintf("- remove %s (handles: %d)", ev.Listener, ev.Count)
	case playground.KindDrop:
		return fmt.Sprintf("~ drop %s (handles: %d)", ev.Listener, ev.Count)
	case playground.KindInvoke:
		return fmt.Sprintf("* invoke %q (handles: %d)", ev.Event, ev.Count)
	case playground.KindDeliver:
		return fmt.Sprintf("%s <- %q", ev.Listener, ev.Event)
	case playground.KindPrune:
		return fmt.Sprintf("pruned dead handles (handles: %d)", ev.Count)
	default:
		return fmt.Sprintf("%s %s", ev.Kind, ev.Listener)
	}
}

// renderSummary prints a table of every listener the scenario touched
// with its delivery count and whether the runner still owns it
func renderSummary(r *playground.Runner) error {
	type row struct {
		listener playground.EchoListener
		owned    bool
	}

	var rows []row
	for _, l := range r.Summary() {
		rows = append(rows, row{listener: l, owned: true})
	}
	for _, l := range r.Dropped() {
		rows = append(rows, row{listener: l})
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].listener.Name < rows[j].listener.Name
	})

	data := pterm.TableData{{"Listener", "Deliveries", "Owned"}}
	for _, rw := range rows {
		owned := "yes"
		if !rw.owned {
			owned = "dropped"
		}
		data = append(data, []string{
			rw.listener.Name,
			fmt.Sprintf("%d", rw.listener.Deliveries),
			owned,
		})
	}

	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
