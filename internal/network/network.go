package network

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/cryptix/tenet/internal/ir"
	"github.com/cryptix/tenet/internal/jtms"
	"github.com/cryptix/tenet/internal/lattice"
)

// Network owns belief cells, propagators, and the truth maintenance
// system tracking why each value is believed.
//
// All public operations serialize on one mutex and run to quiescence
// before returning: the network and its JTMS are logically a single
// actor. Handles are plain ids; nothing grants direct mutable access.
//
// INVARIANTS:
//   - Every belief's node is a member of the network's JTMS
//   - A derived belief's node is justified by the input nodes that were
//     in at derivation time, never by an assumption informant
//   - A propagator subscribes to a cell iff the cell is one of its inputs
//   - After any public operation returns, the JTMS is at fixpoint
type Network struct {
	mu     sync.Mutex
	clock  *Clock
	tms    *jtms.JTMS
	cells  map[CellID]*cell
	props  map[PropagatorID]*propagator
	order  []PropagatorID // creation order, for the post-retraction rescan
	nonces NonceGenerator
	trace  ir.TraceRecorder
	guard  *refireGuard
	budget *firingBudget
}

// Option allows configuration of network parameters.
type Option func(*Network)

// WithMaxFirings sets the per-operation firing budget.
//
// Default: 10000 (DefaultMaxFirings)
// Use a small value in tests that exercise the budget itself.
func WithMaxFirings(maxFirings int) Option {
	return func(n *Network) {
		n.budget = newFiringBudget(maxFirings)
	}
}

// WithTrace attaches a trace recorder. Every assert, retract, derive,
// firing, and active-value flip is recorded in seq order.
func WithTrace(rec ir.TraceRecorder) Option {
	return func(n *Network) {
		n.trace = rec
	}
}

// WithNonceGenerator replaces the belief-nonce source. Tests use
// testutil.FixedNonceGenerator for byte-stable node identities.
func WithNonceGenerator(gen NonceGenerator) Option {
	return func(n *Network) {
		n.nonces = gen
	}
}

// New creates an empty network with its own JTMS and logical clock.
func New(opts ...Option) *Network {
	n := &Network{
		clock:  NewClock(),
		tms:    jtms.New(),
		cells:  make(map[CellID]*cell),
		props:  make(map[PropagatorID]*propagator),
		nonces: UUIDv7Generator{},
		guard:  newRefireGuard(),
		budget: newFiringBudget(DefaultMaxFirings),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// JTMS returns the network's truth maintenance system for label and
// provenance reads. Callers must not mutate it directly; all writes go
// through the network's operations.
func (n *Network) JTMS() *jtms.JTMS {
	return n.tms
}

// CreateCell creates a cell with the given lattice kind and returns
// its id. Cells are never destroyed within a network's lifetime.
func (n *Network) CreateCell(kind lattice.Kind) CellID {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := CellID(n.clock.Next())
	n.cells[id] = &cell{id: id, kind: kind}
	slog.Debug("cell created", "cell", id, "kind", kind.String())
	return id
}

// CellKind returns the lattice kind of a cell.
func (n *Network) CellKind(id CellID) (lattice.Kind, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	c, ok := n.cells[id]
	if !ok {
		return 0, cellNotFound(id)
	}
	return c.kind, nil
}

// Beliefs returns a copy of the cell's belief records, in assertion
// order. Retracted beliefs remain (their nodes are out); the slice
// only ever grows within a network's lifetime.
func (n *Network) Beliefs(id CellID) ([]Belief, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	c, ok := n.cells[id]
	if !ok {
		return nil, cellNotFound(id)
	}
	out := make([]Belief, len(c.beliefs))
	copy(out, c.beliefs)
	return out, nil
}

// CreatePropagator installs a propagator, subscribes it to its input
// cells, and fires it once immediately so pre-existing values
// propagate. All input cells must exist; output cells need not (writes
// to unknown outputs are silently dropped).
func (n *Network) CreatePropagator(inputs, outputs []CellID, fn Fn, informant string) (PropagatorID, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if informant == jtms.AssumptionInformant {
		return 0, &KernelError{
			Code:      ErrCodeReservedInformant,
			Message:   "the assumption informant is reserved",
			Informant: informant,
		}
	}

	var missing []CellID
	for _, id := range inputs {
		if _, ok := n.cells[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return 0, cellsNotFound(missing)
	}

	id := PropagatorID(n.clock.Next())
	p := &propagator{
		id:        id,
		inputs:    append([]CellID(nil), inputs...),
		outputs:   append([]CellID(nil), outputs...),
		informant: informant,
		fn:        fn,
	}
	n.props[id] = p
	n.order = append(n.order, id)
	for _, in := range inputs {
		n.cells[in].subscribe(id)
	}

	slog.Debug("propagator created", "propagator", id, "informant", informant,
		"inputs", len(inputs), "outputs", len(outputs))

	n.beginWave()
	if err := n.fire(p); err != nil {
		return id, err
	}
	return id, nil
}

// AddContent asserts a value into a cell on behalf of an informant.
//
// The informant is mandatory: every belief must be traceable to its
// source. Re-asserting an informant's still-believed value is a no-op;
// otherwise a fresh assumption node is created (the nonce makes it
// distinguishable from any retracted predecessor). If the cell's
// active value changed, subscribed propagators fire to quiescence
// before the call returns.
func (n *Network) AddContent(id CellID, value lattice.Value, informant string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	c, ok := n.cells[id]
	if !ok {
		return cellNotFound(id)
	}
	if informant == "" {
		return &KernelError{
			Code:    ErrCodeInformantRequired,
			Message: "add_content requires an informant",
			Cells:   []CellID{id},
		}
	}
	if informant == jtms.AssumptionInformant {
		return &KernelError{
			Code:      ErrCodeReservedInformant,
			Message:   "the assumption informant is reserved",
			Cells:     []CellID{id},
			Informant: informant,
		}
	}
	if !c.kind.Accepts(value) {
		return &KernelError{
			Code:      ErrCodeLatticeMismatch,
			Message:   fmt.Sprintf("value %s does not belong to the %s lattice", lattice.Format(value), c.kind),
			Cells:     []CellID{id},
			Informant: informant,
		}
	}
	if lattice.IsNothing(value) {
		return nil // asserting "no information" adds none
	}

	// No-op when the informant already holds this value through an
	// in-labeled node. A retracted (out) twin does not short-circuit:
	// re-adding after retraction creates a fresh node.
	for _, b := range c.beliefs {
		if b.Informant == informant && c.kind.Equal(b.Value, value) && n.nodeIn(b.Node) {
			return nil
		}
	}

	before := c.activeValue(n.nodeIn)

	nonce := n.nonces.Generate()
	node, err := lattice.BeliefID(int64(id), value, informant, nonce)
	if err != nil {
		return fmt.Errorf("add_content: %w", err)
	}
	n.tms.CreateNode(node)
	if err := n.tms.AssumeNode(node); err != nil {
		return fmt.Errorf("add_content: %w", err)
	}
	c.beliefs = append(c.beliefs, Belief{Value: value, Node: node, Informant: informant})

	n.record(ir.TraceEvent{
		Kind:      ir.EventAssert,
		Cell:      int64(id),
		Informant: informant,
		Value:     canonicalValue(value),
		Node:      node,
	})

	after := c.activeValue(n.nodeIn)
	if c.kind.Equal(before, after) {
		return nil
	}

	slog.Debug("content added", "cell", id, "informant", informant,
		"value", lattice.Format(value), "active", lattice.Format(after))

	n.beginWave()
	return n.fireSubscribers(c)
}

// RetractContent retracts every belief in the cell held by the given
// informant. The JTMS relabels to fixpoint, active-value flips are
// recorded, and every propagator in the network re-fires so any cell
// whose view changed gets reconsidered. Retracting an informant with
// no beliefs in the cell is a no-op.
//
// The global rescan is deliberately blunt: label flips can ripple
// anywhere, and re-firing is idempotent on unchanged cells.
func (n *Network) RetractContent(id CellID, informant string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	c, ok := n.cells[id]
	if !ok {
		return cellNotFound(id)
	}

	var retracted bool
	for _, b := range c.beliefs {
		if b.Informant != informant || !n.nodeIn(b.Node) {
			continue
		}
		isAssumption, err := n.tms.IsAssumption(b.Node)
		if err != nil || !isAssumption {
			continue // derived beliefs retract via their antecedents
		}
		before := n.snapshotActive()
		if err := n.tms.RetractAssumption(b.Node); err != nil {
			return fmt.Errorf("retract_content: %w", err)
		}
		retracted = true
		n.record(ir.TraceEvent{
			Kind:      ir.EventRetract,
			Cell:      int64(id),
			Informant: informant,
			Node:      b.Node,
		})
		n.recordFlips(before)
	}
	if !retracted {
		return nil
	}

	slog.Debug("content retracted", "cell", id, "informant", informant)

	n.beginWave()
	for _, pid := range n.order {
		if err := n.fire(n.props[pid]); err != nil {
			return err
		}
	}
	return nil
}

// ReadCell returns the cell's active value: Nothing when no belief is
// in, the common value when all in beliefs agree under the lattice,
// Contradiction otherwise.
func (n *Network) ReadCell(id CellID) (lattice.Value, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	c, ok := n.cells[id]
	if !ok {
		return nil, cellNotFound(id)
	}
	return c.activeValue(n.nodeIn), nil
}

// Support describes one belief currently upholding a cell's active
// value, with the justification that makes its node in.
type Support struct {
	Node          string
	Informant     string
	Value         lattice.Value
	Justification *jtms.Justification
}

// Explain reports the beliefs supporting the cell's current active
// value: one entry for a plain value, every in belief for a
// contradiction, none for Nothing. The justification of an external
// assertion is the assumption justification; a derived belief reports
// the propagator justification whose in-list names its antecedents.
func (n *Network) Explain(id CellID) ([]Support, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	c, ok := n.cells[id]
	if !ok {
		return nil, cellNotFound(id)
	}

	active := c.activeValue(n.nodeIn)
	nodes := c.supportingNodes(active, n.nodeIn)
	supports := make([]Support, 0, len(nodes))
	for _, node := range nodes {
		why, err := n.tms.Why(node)
		if err != nil {
			return nil, fmt.Errorf("explain: %w", err)
		}
		for _, b := range c.beliefs {
			if b.Node == node {
				supports = append(supports, Support{
					Node:          node,
					Informant:     b.Informant,
					Value:         b.Value,
					Justification: why,
				})
				break
			}
		}
	}
	return supports, nil
}

// =============================================================================
// Firing
// =============================================================================

// beginWave resets the per-operation termination guards.
func (n *Network) beginWave() {
	n.guard.reset()
	n.budget.reset()
}

// fireSubscribers fires the cell's subscribers in insertion order.
// Firing recurses depth-first through cascaded changes.
func (n *Network) fireSubscribers(c *cell) error {
	for _, pid := range c.subscribers {
		if err := n.fire(n.props[pid]); err != nil {
			return err
		}
	}
	return nil
}

// fire runs one propagator: read inputs through the active-value
// projection, skip repeats and panics, apply writes as derived adds.
func (n *Network) fire(p *propagator) error {
	if err := n.budget.check(); err != nil {
		return err
	}

	inputs := make([]lattice.Value, len(p.inputs))
	for i, in := range p.inputs {
		inputs[i] = n.cells[in].activeValue(n.nodeIn)
	}

	sig, err := lattice.InputSignature(int64(p.id), inputs)
	if err != nil {
		return fmt.Errorf("fire: %w", err)
	}
	if n.guard.wouldRefire(sig) {
		slog.Debug("firing skipped: signature already fired this wave",
			"propagator", p.id, "informant", p.informant)
		return nil
	}
	n.guard.record(sig)

	n.record(ir.TraceEvent{
		Kind:       ir.EventFire,
		Propagator: int64(p.id),
		Informant:  p.informant,
	})

	writes := runFn(p, inputs)
	for _, w := range writes {
		out, ok := n.cells[w.Cell]
		if !ok {
			slog.Debug("write to unknown cell dropped", "propagator", p.id, "cell", w.Cell)
			continue
		}
		if lattice.IsNothing(w.Value) {
			continue
		}
		if !out.kind.Accepts(w.Value) {
			slog.Warn("kind-mismatched derived write dropped",
				"propagator", p.id, "cell", w.Cell, "value", lattice.Format(w.Value))
			continue
		}
		if err := n.derivedAdd(out, w.Value, p); err != nil {
			return err
		}
	}
	return nil
}

// runFn invokes the propagator function, converting a panic into skip.
// Fixpoint is the retry mechanism: if inputs later change, the
// propagator re-fires.
func runFn(p *propagator, inputs []lattice.Value) (writes []Write) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("propagator panicked; firing treated as skip",
				"propagator", p.id, "informant", p.informant, "panic", r)
			writes = nil
		}
	}()
	return p.fn(inputs)
}

// derivedAdd applies one propagator write as derived content.
//
// A belief with the same informant and an equal value is reused and
// re-justified, so equal-value derivations from the same propagator
// share one node identity. Derived nodes are never assumptions: when
// the JTMS finds no valid justification left, they flip out on their
// own, which is how retraction cascades.
func (n *Network) derivedAdd(c *cell, value lattice.Value, p *propagator) error {
	before := c.activeValue(n.nodeIn)

	var node string
	if idx := c.findBelief(p.informant, value); idx >= 0 {
		node = c.beliefs[idx].Node
	} else {
		nonce := n.nonces.Generate()
		id, err := lattice.BeliefID(int64(c.id), value, p.informant, nonce)
		if err != nil {
			return fmt.Errorf("derived add: %w", err)
		}
		node = id
		n.tms.CreateNode(node)
		c.beliefs = append(c.beliefs, Belief{Value: value, Node: node, Informant: p.informant})
	}

	inList := n.antecedentNodes(p)
	if !n.hasJustification(node, p.informant, inList) {
		if err := n.tms.JustifyNode(node, p.informant, inList, nil); err != nil {
			return fmt.Errorf("derived add: %w", err)
		}
	}

	n.record(ir.TraceEvent{
		Kind:      ir.EventDerive,
		Cell:      int64(c.id),
		Informant: p.informant,
		Value:     canonicalValue(value),
		Node:      node,
	})

	after := c.activeValue(n.nodeIn)
	if c.kind.Equal(before, after) {
		return nil
	}

	n.record(ir.TraceEvent{
		Kind:  ir.EventLabel,
		Cell:  int64(c.id),
		Value: canonicalValue(after),
	})
	return n.fireSubscribers(c)
}

// antecedentNodes collects, per input cell, the nodes supporting the
// value the propagator just read. Cells reading Nothing contribute no
// antecedent.
func (n *Network) antecedentNodes(p *propagator) []string {
	var inList []string
	for _, in := range p.inputs {
		ic := n.cells[in]
		active := ic.activeValue(n.nodeIn)
		inList = append(inList, ic.supportingNodes(active, n.nodeIn)...)
	}
	return inList
}

// hasJustification checks whether the node already carries an
// identical justification, so refires do not accumulate duplicates.
func (n *Network) hasJustification(node, informant string, inList []string) bool {
	justs, err := n.tms.Justifications(node)
	if err != nil {
		return false
	}
	for _, j := range justs {
		if j.Informant == informant && equalStrings(j.InList, inList) && len(j.OutList) == 0 {
			return true
		}
	}
	return false
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// =============================================================================
// Helpers
// =============================================================================

// nodeIn reports whether a JTMS node is currently labeled in.
func (n *Network) nodeIn(node string) bool {
	label, err := n.tms.Label(node)
	return err == nil && label == jtms.In
}

// snapshotActive captures every cell's active value, for flip tracing
// around a retraction.
func (n *Network) snapshotActive() map[CellID]lattice.Value {
	snap := make(map[CellID]lattice.Value, len(n.cells))
	for id, c := range n.cells {
		snap[id] = c.activeValue(n.nodeIn)
	}
	return snap
}

// recordFlips traces every cell whose active value differs from the
// snapshot, in cell-id order for determinism.
func (n *Network) recordFlips(before map[CellID]lattice.Value) {
	ids := make([]CellID, 0, len(n.cells))
	for id := range n.cells {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		c := n.cells[id]
		after := c.activeValue(n.nodeIn)
		if !c.kind.Equal(before[id], after) {
			n.record(ir.TraceEvent{
				Kind:  ir.EventLabel,
				Cell:  int64(id),
				Value: canonicalValue(after),
			})
		}
	}
}

// record stamps and forwards a trace event; tracing is best-effort and
// never fails the surrounding operation.
func (n *Network) record(ev ir.TraceEvent) {
	if n.trace == nil {
		return
	}
	ev.Seq = n.clock.Next()
	if err := n.trace.Record(ev); err != nil {
		slog.Warn("trace record failed", "kind", ev.Kind, "seq", ev.Seq, "error", err)
	}
}

// canonicalValue renders a value for trace payloads.
func canonicalValue(v lattice.Value) string {
	b, err := lattice.MarshalCanonical(v)
	if err != nil {
		return lattice.Format(v)
	}
	return string(b)
}
