// Package gkr implements layered arithmetic circuits and the GKR interactive
// proof that reduces a claim about the circuit's output layer to a claim
// about its input layer, one sum-check instance per layer.
package gkr

import (
	"errors"
	"fmt"
	"math/bits"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/obah/zk-research-implementations/internal/debugmode"
	"github.com/obah/zk-research-implementations/polynomial/multilinear"
)

// Op is a gate operation.
type Op int

const (
	// Add computes left + right.
	Add Op = iota
	// Mul computes left * right.
	Mul
)

// Apply evaluates the gate operation on two field elements.
func (o Op) Apply(left, right fr.Element) fr.Element {
	var out fr.Element
	switch o {
	case Add:
		out.Add(&left, &right)
	case Mul:
		out.Mul(&left, &right)
	}
	return out
}

// Gate wires one output position at layer L to two positions, LeftIdx and
// RightIdx, at layer L+1.
type Gate struct {
	Op       Op
	LeftIdx  int
	RightIdx int
}

// Layer is an ordered list of gates; position i is the i-th gate.
type Layer struct {
	Gates []Gate
}

// Width returns the number of gates in the layer. Invariant: always a power
// of two; pad with identity-zero Add gates wiring to a dedicated zero input
// as needed (see PadGates).
func (l Layer) Width() int { return len(l.Gates) }

// ErrShapeMismatch is returned when an input vector's length does not match
// InputWidth, or a layer's wiring references an out-of-range position.
var ErrShapeMismatch = errors.New("gkr: shape mismatch")

// Circuit is an ordered list of layers, index 0 at the output. InputWidth is
// the width of the (implicit) layer below the last entry in Layers — i.e.
// the expected length of the input vector to Evaluate. For every gate at
// layer L < len(Layers)-1, LeftIdx/RightIdx are valid positions in layer
// L+1; for the last layer, they are valid positions in the input. Every
// layer width and InputWidth are powers of two.
type Circuit struct {
	Layers     []Layer
	InputWidth int
}

// NewCircuit validates and wraps layers with an explicit input width.
func NewCircuit(layers []Layer, inputWidth int) (Circuit, error) {
	if !isPowerOfTwo(inputWidth) {
		return Circuit{}, ErrShapeMismatch
	}
	below := inputWidth
	for i := len(layers) - 1; i >= 0; i-- {
		l := layers[i]
		if !isPowerOfTwo(l.Width()) {
			return Circuit{}, ErrShapeMismatch
		}
		for _, g := range l.Gates {
			if g.LeftIdx < 0 || g.LeftIdx >= below || g.RightIdx < 0 || g.RightIdx >= below {
				return Circuit{}, ErrShapeMismatch
			}
		}
		below = l.Width()
	}
	return Circuit{Layers: layers, InputWidth: inputWidth}, nil
}

// Depth returns the number of non-input layers. Evaluate produces Depth()+1
// value vectors: W_0..W_Depth(), where W_Depth() is the input.
func (c Circuit) Depth() int { return len(c.Layers) }

// width returns the width of layer index idx, where idx == len(Layers)
// denotes the input layer.
func (c Circuit) width(idx int) int {
	if idx < len(c.Layers) {
		return c.Layers[idx].Width()
	}
	return c.InputWidth
}

// Trace holds the per-layer evaluation vectors produced by Evaluate: W[0] is
// the circuit output, W[len(W)-1] is the input.
type Trace struct {
	W [][]fr.Element
}

// Evaluate runs the circuit bottom-up on input, producing W_0..W_d with
// W_d = input. Fails with ErrShapeMismatch if len(input) != InputWidth.
func (c Circuit) Evaluate(input []fr.Element) (Trace, error) {
	if len(input) != c.InputWidth {
		return Trace{}, ErrShapeMismatch
	}

	w := make([][]fr.Element, c.Depth()+1)
	w[c.Depth()] = input

	for l := c.Depth() - 1; l >= 0; l-- {
		below := w[l+1]
		layer := c.Layers[l]
		out := make([]fr.Element, layer.Width())
		for i, g := range layer.Gates {
			out[i] = g.Op.Apply(below[g.LeftIdx], below[g.RightIdx])
		}
		w[l] = out
	}

	trace := Trace{W: w}
	if debugmode.Enabled {
		if err := c.checkWiringConsistency(trace); err != nil {
			return Trace{}, err
		}
	}
	return trace, nil
}

// checkWiringConsistency recomputes every layer from the add_l/mul_l wiring
// predicate MLEs WiringMLEs builds and cross-checks the result against the
// trace Evaluate produced by direct LeftIdx/RightIdx gate application. It is
// the one place that would catch a mismatch between Evaluate's gate-wiring
// addressing and WiringMLEs' a||b||c bit-packing convention — O(width_l *
// width_below^2), too expensive to run on every Evaluate call, so it is
// gated behind debugmode.Enabled.
func (c Circuit) checkWiringConsistency(trace Trace) error {
	for l := 0; l < c.Depth(); l++ {
		add, mul, err := c.WiringMLEs(l)
		if err != nil {
			return err
		}

		below := trace.W[l+1]
		bIn := bitsFor(c.width(l + 1))
		widthBelow := 1 << bIn

		for a, want := range trace.W[l] {
			var got fr.Element
			for b := 0; b < widthBelow; b++ {
				for cIdx := 0; cIdx < widthBelow; cIdx++ {
					idx := (a << (2 * bIn)) | (b << bIn) | cIdx
					addBit := add.Evaluations[idx]
					mulBit := mul.Evaluations[idx]
					if addBit.IsZero() && mulBit.IsZero() {
						continue
					}
					var sum, prod, term fr.Element
					sum.Add(&below[b], &below[cIdx])
					prod.Mul(&below[b], &below[cIdx])
					term.Mul(&addBit, &sum)
					got.Add(&got, &term)
					term.Mul(&mulBit, &prod)
					got.Add(&got, &term)
				}
			}
			if !got.Equal(&want) {
				return fmt.Errorf("gkr: wiring/trace inconsistency at layer %d position %d", l, a)
			}
		}
	}
	return nil
}

// LayerMLE returns the multilinear extension of W_l, indexed by b_l =
// log2(width_l) bits, variable 0 the most-significant bit (same convention
// as package multilinear). Every layer width is validated as a power of two
// at NewCircuit time, so the only way this errors is a Trace built by hand
// outside Circuit.Evaluate.
func (t Trace) LayerMLE(l int) (multilinear.Polynomial, error) {
	return multilinear.New(append([]fr.Element(nil), t.W[l]...))
}

// bitsFor returns log2(width); width must be a power of two (0 and 1 both
// report 0 bits).
func bitsFor(width int) int {
	if width <= 1 {
		return 0
	}
	return bits.Len(uint(width - 1))
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// PadGates pads gates up to the next power of two by appending identity
// zero-outputting Add gates wiring to zeroIdx (expected to hold the field
// element 0 in the layer below). A no-op if gates is already a power-of-two
// length.
func PadGates(gates []Gate, zeroIdx int) []Gate {
	n := len(gates)
	if n == 0 {
		return []Gate{{Op: Add, LeftIdx: zeroIdx, RightIdx: zeroIdx}}
	}
	target := 1
	for target < n {
		target <<= 1
	}
	if target == n {
		return gates
	}
	padded := make([]Gate, target)
	copy(padded, gates)
	for i := n; i < target; i++ {
		padded[i] = Gate{Op: Add, LeftIdx: zeroIdx, RightIdx: zeroIdx}
	}
	return padded
}
