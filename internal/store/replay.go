package store

import (
	"context"
	"fmt"

	"github.com/cryptix/tenet/internal/ir"
	"github.com/cryptix/tenet/internal/lattice"
	"github.com/cryptix/tenet/internal/network"
)

// ReplayResult summarizes a replay run.
type ReplayResult struct {
	Asserts  int // external asserts re-applied
	Retracts int // external retracts re-applied
	Skipped  int // derive/fire/label events (the network rederives these)
}

// Replay re-applies the log's external events (asserts and retracts)
// to a network, in seq order. Derived events are skipped: the network
// rederives them through its own propagators, which is the point - a
// replayed network's provenance is rebuilt, not restored.
//
// The target network must have been constructed from the same model as
// the one that produced the log, so cell ids line up (ids are minted
// deterministically from the logical clock).
func Replay(ctx context.Context, s *Store, net *network.Network) (*ReplayResult, error) {
	events, err := s.ReadEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}

	result := &ReplayResult{}
	for _, ev := range events {
		switch ev.Kind {
		case ir.EventAssert:
			kind, err := net.CellKind(network.CellID(ev.Cell))
			if err != nil {
				return nil, fmt.Errorf("replay: event seq %d: %w", ev.Seq, err)
			}
			value, err := lattice.ParseValue([]byte(ev.Value), kind)
			if err != nil {
				return nil, fmt.Errorf("replay: event seq %d: %w", ev.Seq, err)
			}
			if err := net.AddContent(network.CellID(ev.Cell), value, ev.Informant); err != nil {
				return nil, fmt.Errorf("replay: event seq %d: %w", ev.Seq, err)
			}
			result.Asserts++

		case ir.EventRetract:
			if err := net.RetractContent(network.CellID(ev.Cell), ev.Informant); err != nil {
				return nil, fmt.Errorf("replay: event seq %d: %w", ev.Seq, err)
			}
			result.Retracts++

		default:
			result.Skipped++
		}
	}

	return result, nil
}
