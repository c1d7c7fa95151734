package store

import (
	"context"
	"fmt"

	"github.com/cryptix/tenet/internal/ir"
)

// WriteEvent inserts a trace event into the log.
// Uses ON CONFLICT(seq) DO NOTHING for idempotency - replaying a write
// with an already-recorded seq is silently ignored.
func (s *Store) WriteEvent(ctx context.Context, ev ir.TraceEvent) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO events
		(seq, kind, cell, propagator, informant, value, node, detail)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(seq) DO NOTHING
	`,
		ev.Seq,
		ev.Kind,
		ev.Cell,
		ev.Propagator,
		ev.Informant,
		ev.Value,
		ev.Node,
		ev.Detail,
	)
	if err != nil {
		return fmt.Errorf("write event: %w", err)
	}

	return nil
}

// Record implements ir.TraceRecorder so a Store can be attached to a
// network directly via WithTrace. Recording happens inside the
// network's serialized section; there is no caller-supplied context,
// and the write must not outlive the operation, so Background is used.
func (s *Store) Record(ev ir.TraceEvent) error {
	return s.WriteEvent(context.Background(), ev)
}
