package testutil

import "github.com/cryptix/tenet/internal/ir"

// MemoryRecorder collects trace events in memory.
//
// Used by tests and the harness to snapshot a network's provenance
// trace without a SQLite store. The network records from inside its
// serialized section, so no locking is needed.
type MemoryRecorder struct {
	events []ir.TraceEvent
}

// NewMemoryRecorder creates an empty recorder.
func NewMemoryRecorder() *MemoryRecorder {
	return &MemoryRecorder{}
}

// Record implements ir.TraceRecorder.
func (r *MemoryRecorder) Record(ev ir.TraceEvent) error {
	r.events = append(r.events, ev)
	return nil
}

// Events returns the recorded events in seq order.
func (r *MemoryRecorder) Events() []ir.TraceEvent {
	out := make([]ir.TraceEvent, len(r.events))
	copy(out, r.events)
	return out
}

// Kinds returns just the event kinds, in order. Convenient for
// asserting the shape of a trace without pinning payloads.
func (r *MemoryRecorder) Kinds() []string {
	kinds := make([]string, len(r.events))
	for i, ev := range r.events {
		kinds[i] = ev.Kind
	}
	return kinds
}

// Reset discards all recorded events.
func (r *MemoryRecorder) Reset() {
	r.events = nil
}
