package network

import "github.com/cryptix/tenet/internal/lattice"

// Adder installs the bidirectional constraint a + b = sum as three
// propagators:
//
//	[a,b]   -> sum : sum := a + b
//	[sum,a] -> b   : b   := sum - a
//	[sum,b] -> a   : a   := sum - b
//
// Assert any two of the three cells and the third is derived; retract
// one input and the derived value disappears with it. A contradiction
// on any input is forwarded to the propagator's output so it is
// visible downstream.
//
// The name becomes the informant prefix for the three propagators.
func Adder(n *Network, name string, a, b, sum CellID) error {
	if _, err := n.CreatePropagator(
		[]CellID{a, b}, []CellID{sum},
		binaryRule(sum, func(x, y float64) (float64, bool) { return x + y, true }),
		name+":forward",
	); err != nil {
		return err
	}
	if _, err := n.CreatePropagator(
		[]CellID{sum, a}, []CellID{b},
		binaryRule(b, func(s, x float64) (float64, bool) { return s - x, true }),
		name+":backward/b",
	); err != nil {
		return err
	}
	_, err := n.CreatePropagator(
		[]CellID{sum, b}, []CellID{a},
		binaryRule(a, func(s, y float64) (float64, bool) { return s - y, true }),
		name+":backward/a",
	)
	return err
}

// Multiplier installs the bidirectional constraint a * b = product.
// The backward rules guard against division by zero by skipping: a
// zero divisor pins nothing about the other factor.
func Multiplier(n *Network, name string, a, b, product CellID) error {
	if _, err := n.CreatePropagator(
		[]CellID{a, b}, []CellID{product},
		binaryRule(product, func(x, y float64) (float64, bool) { return x * y, true }),
		name+":forward",
	); err != nil {
		return err
	}
	if _, err := n.CreatePropagator(
		[]CellID{product, a}, []CellID{b},
		binaryRule(b, func(p, x float64) (float64, bool) {
			if x == 0 {
				return 0, false
			}
			return p / x, true
		}),
		name+":backward/b",
	); err != nil {
		return err
	}
	_, err := n.CreatePropagator(
		[]CellID{product, b}, []CellID{a},
		binaryRule(a, func(p, y float64) (float64, bool) {
			if y == 0 {
				return 0, false
			}
			return p / y, true
		}),
		name+":backward/a",
	)
	return err
}

// binaryRule builds the conventional guarded propagator body: forward
// contradictions, skip on missing information, otherwise apply the
// numeric rule (which may itself decline, e.g. zero divisors).
func binaryRule(out CellID, rule func(x, y float64) (float64, bool)) Fn {
	return func(inputs []lattice.Value) []Write {
		for _, v := range inputs {
			if lattice.IsContradiction(v) {
				return []Write{{Cell: out, Value: lattice.Contradiction{}}}
			}
		}
		x, xok := inputs[0].(lattice.Number)
		y, yok := inputs[1].(lattice.Number)
		if !xok || !yok {
			return nil
		}
		result, ok := rule(float64(x), float64(y))
		if !ok {
			return nil
		}
		return []Write{{Cell: out, Value: lattice.Number(result)}}
	}
}
