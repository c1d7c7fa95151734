package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/cryptix/tenet/internal/ir"
)

// printJSON writes indented JSON to the command's output.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// formatEvent renders one trace event as a text line.
func formatEvent(ev ir.TraceEvent) string {
	switch ev.Kind {
	case ir.EventAssert:
		return fmt.Sprintf("%6d  assert   cell=%d informant=%s value=%s", ev.Seq, ev.Cell, ev.Informant, ev.Value)
	case ir.EventRetract:
		return fmt.Sprintf("%6d  retract  cell=%d informant=%s", ev.Seq, ev.Cell, ev.Informant)
	case ir.EventDerive:
		return fmt.Sprintf("%6d  derive   cell=%d informant=%s value=%s", ev.Seq, ev.Cell, ev.Informant, ev.Value)
	case ir.EventLabel:
		return fmt.Sprintf("%6d  label    cell=%d value=%s", ev.Seq, ev.Cell, ev.Value)
	case ir.EventFire:
		return fmt.Sprintf("%6d  fire     propagator=%d informant=%s", ev.Seq, ev.Propagator, ev.Informant)
	default:
		return fmt.Sprintf("%6d  %s", ev.Seq, ev.Kind)
	}
}

// sortedKeys returns a string map's keys in sorted order for stable
// text output.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
