package cli

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cryptix/tenet/internal/ir"
	"github.com/cryptix/tenet/internal/store"
)

func seedTraceDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trace.db")
	st, err := store.Open(path)
	require.NoError(t, err)
	defer st.Close()

	ctx := context.Background()
	events := []ir.TraceEvent{
		{Seq: 1, Kind: ir.EventAssert, Cell: 1, Informant: "src_a", Value: "3"},
		{Seq: 2, Kind: ir.EventFire, Propagator: 4, Informant: "sum:forward"},
		{Seq: 3, Kind: ir.EventDerive, Cell: 3, Informant: "sum:forward", Value: "8"},
		{Seq: 4, Kind: ir.EventRetract, Cell: 1, Informant: "src_a"},
	}
	for _, ev := range events {
		require.NoError(t, st.WriteEvent(ctx, ev))
	}
	return path
}

func TestTraceCommand_FullLog(t *testing.T) {
	db := seedTraceDB(t)

	out, err := execute(t, "trace", db)
	require.NoError(t, err)
	assert.Contains(t, out, "assert")
	assert.Contains(t, out, "derive")
	assert.Contains(t, out, "src_a")
	assert.Contains(t, out, "value=8")
}

func TestTraceCommand_KindFilter(t *testing.T) {
	db := seedTraceDB(t)

	out, err := execute(t, "trace", "--kind", ir.EventDerive, db)
	require.NoError(t, err)
	assert.Contains(t, out, "derive")
	assert.NotContains(t, out, "assert")
}

func TestTraceCommand_CellFilter(t *testing.T) {
	db := seedTraceDB(t)

	out, err := execute(t, "trace", "--cell", "1", db)
	require.NoError(t, err)
	assert.Contains(t, out, "assert")
	assert.Contains(t, out, "retract")
	assert.NotContains(t, out, "derive")
}

func TestTraceCommand_Counts(t *testing.T) {
	db := seedTraceDB(t)

	out, err := execute(t, "trace", "--counts", db)
	require.NoError(t, err)
	assert.Contains(t, out, "assert")
	assert.Contains(t, out, "1")
}

func TestTraceCommand_JSON(t *testing.T) {
	db := seedTraceDB(t)

	out, err := execute(t, "--format", "json", "trace", db)
	require.NoError(t, err)
	assert.Contains(t, out, `"kind": "assert"`)
	assert.Contains(t, out, `"seq": 1`)
}
