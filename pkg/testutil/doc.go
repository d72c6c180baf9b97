// Package testutil provides utilities for testing signals components.
//
// Key components:
//   - RecordingListener: a listener that records every event delivered to it
//   - DrainGC: forces collection so weak handles to unreachable targets go dead
//
// All test data should be defined inline, and each test should be
// completely isolated with no shared state.
package testutil
