// Package playground runs scripted demo scenarios against a multicast
// registry. A scenario is a TOML-described sequence of add, remove,
// drop, and invoke steps; the runner owns the listeners (the owning
// references the registry deliberately does not hold) and reports each
// step as a trace event, so the registry's lifecycle, including the
// silent pruning of listeners whose owner dropped them, can be watched
// from the outside.
package playground
