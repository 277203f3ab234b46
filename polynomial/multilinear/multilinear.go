// Package multilinear implements dense multilinear extensions: polynomials
// represented by their 2^n evaluations over the Boolean hypercube {0,1}^n,
// indexed by the n-bit lexicographic enumeration of the cube. Variable 0 is
// the most-significant bit of the index — the one convention every wiring-ML
// construction in package gkr must match.
package multilinear

import (
	"errors"
	"math/bits"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// ErrNotPowerOfTwo is returned when an evaluation vector's length is not a
// power of two.
var ErrNotPowerOfTwo = errors.New("multilinear: evaluation vector length must be a power of two")

// ErrShapeMismatch is returned when an evaluation point's arity does not
// match the polynomial's number of variables.
var ErrShapeMismatch = errors.New("multilinear: shape mismatch")

// Polynomial is the multilinear extension of a function on {0,1}^n, stored
// densely as its 2^n evaluations.
type Polynomial struct {
	Evaluations []fr.Element
}

// New wraps an evaluation vector of length 2^n. Returns ErrNotPowerOfTwo if
// the length isn't an exact power of two, mirroring the same check package
// fft runs on its coefficient/evaluation vectors.
func New(evaluations []fr.Element) (Polynomial, error) {
	n := len(evaluations)
	if n == 0 || n&(n-1) != 0 {
		return Polynomial{}, ErrNotPowerOfTwo
	}
	return Polynomial{Evaluations: evaluations}, nil
}

// NVars returns n = log2(len(evaluations)).
func (p Polynomial) NVars() int {
	if len(p.Evaluations) <= 1 {
		return 0
	}
	return bits.Len(uint(len(p.Evaluations) - 1))
}

// Clone returns a deep copy.
func (p Polynomial) Clone() Polynomial {
	out := make([]fr.Element, len(p.Evaluations))
	copy(out, p.Evaluations)
	return Polynomial{Evaluations: out}
}

// BitsToIndex packs a Boolean point's bits (variable 0 first, i.e.
// most-significant) into a hypercube index.
func BitsToIndex(bitsPoint []int) int {
	idx := 0
	for _, b := range bitsPoint {
		idx = (idx << 1) | (b & 1)
	}
	return idx
}

// Evaluate computes p(r) for r in F^n via iterated partial evaluation, one
// variable per step, halving the working vector each step. O(2^n) total.
func (p Polynomial) Evaluate(r []fr.Element) (fr.Element, error) {
	if len(r) != p.NVars() {
		return fr.Element{}, ErrShapeMismatch
	}
	cur := p.Clone()
	for _, ri := range r {
		cur = partialEvaluateMSB(cur.Evaluations, ri)
	}
	if len(cur.Evaluations) == 0 {
		return fr.Element{}, ErrShapeMismatch
	}
	return cur.Evaluations[0], nil
}

// PartialEvaluate fixes variable varIndex to r and returns the resulting
// polynomial over n-1 variables. varIndex == 0 (the current
// most-significant free variable) uses the low-level half-split fold;
// higher indices pair entries that differ only in bit varIndex (stride
// 2^(n-1-varIndex)), matching the fixed variable-0-is-MSB convention used
// throughout this library.
func (p Polynomial) PartialEvaluate(varIndex int, r fr.Element) (Polynomial, error) {
	n := p.NVars()
	if varIndex < 0 || varIndex >= n {
		return Polynomial{}, ErrShapeMismatch
	}
	if varIndex == 0 {
		return partialEvaluateMSB(p.Evaluations, r), nil
	}

	// Fold every other free variable unchanged by iterating subvectors: split
	// on bit varIndex (counting variable 0 as MSB) rather than bit 0.
	stride := 1 << (n - 1 - varIndex)
	blockSize := stride << 1
	out := make([]fr.Element, len(p.Evaluations)/2)
	outIdx := 0
	for base := 0; base < len(p.Evaluations); base += blockSize {
		for off := 0; off < stride; off++ {
			low := p.Evaluations[base+off]
			high := p.Evaluations[base+stride+off]
			var diff, term fr.Element
			diff.Sub(&high, &low)
			term.Mul(&diff, &r)
			term.Add(&term, &low)
			out[outIdx] = term
			outIdx++
		}
	}
	return Polynomial{Evaluations: out}, nil
}

// partialEvaluateMSB fixes the most-significant variable (variable 0) to r,
// combining the low half (bit=0) and high half (bit=1) via
// v' = (1-r)*v_low + r*v_high = v_low + r*(v_high - v_low).
func partialEvaluateMSB(v []fr.Element, r fr.Element) Polynomial {
	mid := len(v) / 2
	out := make([]fr.Element, mid)
	for i := 0; i < mid; i++ {
		var diff, term fr.Element
		diff.Sub(&v[mid+i], &v[i])
		term.Mul(&diff, &r)
		term.Add(&term, &v[i])
		out[i] = term
	}
	return Polynomial{Evaluations: out}
}

// Add returns the pointwise sum of two MLs of equal length.
func (p Polynomial) Add(q Polynomial) (Polynomial, error) {
	if len(p.Evaluations) != len(q.Evaluations) {
		return Polynomial{}, ErrShapeMismatch
	}
	out := make([]fr.Element, len(p.Evaluations))
	for i := range out {
		out[i].Add(&p.Evaluations[i], &q.Evaluations[i])
	}
	return Polynomial{Evaluations: out}, nil
}

// ScalarMul returns p scaled by c, pointwise.
func (p Polynomial) ScalarMul(c fr.Element) Polynomial {
	out := make([]fr.Element, len(p.Evaluations))
	for i, v := range p.Evaluations {
		out[i].Mul(&v, &c)
	}
	return Polynomial{Evaluations: out}
}
