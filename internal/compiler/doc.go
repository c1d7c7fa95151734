// Package compiler turns CUE model files into IR and instantiates
// networks and solver problems from the IR.
//
// A model file declares a network, a problem, or both:
//
//	network: {
//		name: "diamond"
//		cells: {
//			A:  {kind: "number"}
//			K2: {kind: "number", const: 2}
//		}
//		constraints: [
//			{kind: "multiplier", name: "x2", a: "A", b: "K2", out: "B"},
//		]
//	}
//
//	problem: {
//		vars: {
//			x: [1, 2, 3]
//			y: [1, 2, 3]
//		}
//		constraints: [
//			{op: "lt", args: ["x", "y"]},
//		]
//	}
//
// Compilation uses the CUE SDK's Go API directly (not a CLI
// subprocess). Validation is a separate pass that collects every
// error instead of failing fast, so a model author sees all problems
// at once.
package compiler
