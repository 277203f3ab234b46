// Package fft implements radix-2 Cooley-Tukey evaluation and interpolation
// of univariate polynomials over power-of-two-sized domains of roots of
// unity, the textbook recursive split-even/odd algorithm.
package fft

import (
	"errors"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/fft"

	"github.com/obah/zk-research-implementations/polynomial/univariate"
)

// ErrNotPowerOfTwo is returned when a coefficient or evaluation vector's
// length is not a power of two.
var ErrNotPowerOfTwo = errors.New("fft: length must be a power of two")

// Evaluate returns p evaluated at every n-th root of unity, n =
// len(p.Coefficients), which must be an exact power of two
// (ErrNotPowerOfTwo otherwise). The i-th entry is p(omega^i) for the
// domain's canonical generator omega.
func Evaluate(p univariate.Polynomial) ([]fr.Element, error) {
	n := len(p.Coefficients)
	if n == 0 || n&(n-1) != 0 {
		return nil, ErrNotPowerOfTwo
	}

	domain := fft.NewDomain(uint64(n))
	values := append([]fr.Element(nil), p.Coefficients...)
	return dft(values, domain.Generator), nil
}

// Interpolate recovers the unique degree-<n polynomial whose evaluations at
// the n-th roots of unity (in the same order Evaluate produces) are
// evaluations.
func Interpolate(evaluations []fr.Element) (univariate.Polynomial, error) {
	n := len(evaluations)
	if n == 0 || n&(n-1) != 0 {
		return univariate.Polynomial{}, ErrNotPowerOfTwo
	}

	domain := fft.NewDomain(uint64(n))
	coeffs := dft(append([]fr.Element(nil), evaluations...), domain.GeneratorInv)

	for i := range coeffs {
		coeffs[i].Mul(&coeffs[i], &domain.CardinalityInv)
	}

	return univariate.New(coeffs), nil
}

// dft is the recursive radix-2 Cooley-Tukey transform: splits values into
// even/odd halves, recurses on each with root^2, and combines with
// root^j twiddle factors.
func dft(values []fr.Element, root fr.Element) []fr.Element {
	n := len(values)
	if n == 1 {
		return values
	}

	even := make([]fr.Element, n/2)
	odd := make([]fr.Element, n/2)
	for i := 0; i < n/2; i++ {
		even[i] = values[2*i]
		odd[i] = values[2*i+1]
	}

	var rootSq fr.Element
	rootSq.Square(&root)

	yEven := dft(even, rootSq)
	yOdd := dft(odd, rootSq)

	y := make([]fr.Element, n)
	var twiddle fr.Element
	twiddle.SetOne()
	for j := 0; j < n/2; j++ {
		var t fr.Element
		t.Mul(&twiddle, &yOdd[j])

		y[j].Add(&yEven[j], &t)
		y[j+n/2].Sub(&yEven[j], &t)

		twiddle.Mul(&twiddle, &root)
	}

	return y
}
