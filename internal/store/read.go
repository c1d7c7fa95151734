package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/cryptix/tenet/internal/ir"
)

// ReadEvents returns the full event log in seq order.
// Returns an empty slice (not nil) if the log is empty.
func (s *Store) ReadEvents(ctx context.Context) ([]ir.TraceEvent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, kind, cell, propagator, informant, value, node, detail
		FROM events
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// ReadEventsByKind returns all events of one kind in seq order.
func (s *Store) ReadEventsByKind(ctx context.Context, kind string) ([]ir.TraceEvent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, kind, cell, propagator, informant, value, node, detail
		FROM events
		WHERE kind = ?
		ORDER BY seq ASC
	`, kind)
	if err != nil {
		return nil, fmt.Errorf("query events by kind: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// ReadCellEvents returns all events touching one cell in seq order.
func (s *Store) ReadCellEvents(ctx context.Context, cell int64) ([]ir.TraceEvent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, kind, cell, propagator, informant, value, node, detail
		FROM events
		WHERE cell = ?
		ORDER BY seq ASC
	`, cell)
	if err != nil {
		return nil, fmt.Errorf("query cell events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// LastSeq returns the highest recorded seq, or 0 for an empty log.
// Used to resume a network's clock past the recorded history.
func (s *Store) LastSeq(ctx context.Context) (int64, error) {
	var seq sql.NullInt64
	err := s.db.QueryRowContext(ctx, `SELECT MAX(seq) FROM events`).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("query last seq: %w", err)
	}
	if !seq.Valid {
		return 0, nil
	}
	return seq.Int64, nil
}

// CountByKind returns the number of events per kind.
func (s *Store) CountByKind(ctx context.Context) (map[string]int64, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT kind, COUNT(*) FROM events GROUP BY kind ORDER BY kind
	`)
	if err != nil {
		return nil, fmt.Errorf("count events: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var kind string
		var count int64
		if err := rows.Scan(&kind, &count); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[kind] = count
	}
	return counts, rows.Err()
}

// scanEvents drains rows into trace events.
func scanEvents(rows *sql.Rows) ([]ir.TraceEvent, error) {
	events := []ir.TraceEvent{}
	for rows.Next() {
		var ev ir.TraceEvent
		if err := rows.Scan(
			&ev.Seq,
			&ev.Kind,
			&ev.Cell,
			&ev.Propagator,
			&ev.Informant,
			&ev.Value,
			&ev.Node,
			&ev.Detail,
		); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}
