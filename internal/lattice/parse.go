package lattice

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ParseValue decodes a canonical JSON value rendering back into a
// lattice value of the given kind. Inverse of MarshalCanonical for
// the payloads the trace store records.
func ParseValue(data []byte, kind Kind) (Value, error) {
	var raw any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parse value: %w", err)
	}

	switch v := raw.(type) {
	case string:
		switch v {
		case "nothing":
			return Nothing{}, nil
		case "contradiction":
			return Contradiction{}, nil
		default:
			return nil, fmt.Errorf("parse value: unknown symbol %q", v)
		}
	case json.Number:
		if kind != KindNumber {
			return nil, fmt.Errorf("parse value: number payload for %s cell", kind)
		}
		f, err := v.Float64()
		if err != nil {
			return nil, fmt.Errorf("parse value: %w", err)
		}
		return Number(f), nil
	case []any:
		if kind != KindSet {
			return nil, fmt.Errorf("parse value: set payload for %s cell", kind)
		}
		elems := make([]int64, 0, len(v))
		for i, e := range v {
			num, ok := e.(json.Number)
			if !ok {
				return nil, fmt.Errorf("parse value: set element %d is not an integer", i)
			}
			n, err := num.Int64()
			if err != nil {
				return nil, fmt.Errorf("parse value: set element %d: %w", i, err)
			}
			elems = append(elems, n)
		}
		return NewSet(elems...), nil
	default:
		return nil, fmt.Errorf("parse value: unsupported payload %T", raw)
	}
}
