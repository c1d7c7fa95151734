package ir

// Trace event kinds. One TraceEvent is recorded per externally visible
// state change; firings are recorded so a trace shows why a derived
// write happened.
const (
	// EventAssert is an external add_content call.
	EventAssert = "assert"
	// EventRetract is an external retract_content call.
	EventRetract = "retract"
	// EventDerive is a propagator write applied to a cell.
	EventDerive = "derive"
	// EventLabel is a truth-maintenance label flip observed on a cell's
	// active value.
	EventLabel = "label"
	// EventFire is a propagator firing.
	EventFire = "fire"
)

// TraceEvent is one sequenced entry in a network's provenance trace.
//
// Value carries the canonical JSON rendering of the lattice value so
// traces are byte-comparable across runs (golden files, replay).
type TraceEvent struct {
	Seq        int64  `json:"seq"`
	Kind       string `json:"kind"`
	Cell       int64  `json:"cell,omitempty"`
	Propagator int64  `json:"propagator,omitempty"`
	Informant  string `json:"informant,omitempty"`
	Value      string `json:"value,omitempty"`
	Node       string `json:"node,omitempty"`
	Detail     string `json:"detail,omitempty"`
}

// TraceRecorder receives trace events as the network mutates.
// Implemented by the SQLite store and by in-memory recorders in tests
// and the harness. Recording happens inside the network's serialized
// section, so implementations need not be thread-safe.
type TraceRecorder interface {
	Record(ev TraceEvent) error
}
