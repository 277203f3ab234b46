// Package univariate implements dense-coefficient univariate polynomials over
// the scalar field: evaluation, Lagrange interpolation, and naive arithmetic.
package univariate

import (
	"errors"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// ErrEmptyPolynomial is returned by operations that require at least one
// coefficient.
var ErrEmptyPolynomial = errors.New("univariate: empty polynomial")

// ErrDuplicateAbscissa is returned by Interpolate when two points share an
// x-coordinate.
var ErrDuplicateAbscissa = errors.New("univariate: duplicate abscissa")

// Polynomial is an ordered sequence of coefficients c0..cd representing
// sum(ci * x^i). The zero value is the empty polynomial.
type Polynomial struct {
	Coefficients []fr.Element
}

// New wraps a coefficient slice, lowest degree first. The slice is taken by
// reference; callers that need an owned copy should clone it first.
func New(coefficients []fr.Element) Polynomial {
	return Polynomial{Coefficients: coefficients}
}

// Degree reports the index of the last non-zero coefficient, or -1 for the
// zero/empty polynomial. Trailing-zero trimming is never required for
// correctness, only for this report.
func (p Polynomial) Degree() int {
	for i := len(p.Coefficients) - 1; i >= 0; i-- {
		if !p.Coefficients[i].IsZero() {
			return i
		}
	}
	return -1
}

// Evaluate computes p(x) via Horner's method, highest coefficient first.
func (p Polynomial) Evaluate(x fr.Element) fr.Element {
	var result fr.Element
	for i := len(p.Coefficients) - 1; i >= 0; i-- {
		result.Mul(&result, &x)
		result.Add(&result, &p.Coefficients[i])
	}
	return result
}

// Point is one (x, y) sample used by Interpolate.
type Point struct {
	X fr.Element
	Y fr.Element
}

// Interpolate returns the unique polynomial of degree <= len(points)-1 that
// passes through every point, via Lagrange basis summation. Fails with
// ErrDuplicateAbscissa if any x-coordinate repeats.
func Interpolate(points []Point) (Polynomial, error) {
	if len(points) == 0 {
		return Polynomial{}, ErrEmptyPolynomial
	}
	for i := 0; i < len(points); i++ {
		for j := i + 1; j < len(points); j++ {
			if points[i].X.Equal(&points[j].X) {
				return Polynomial{}, ErrDuplicateAbscissa
			}
		}
	}

	result := New([]fr.Element{{}})
	for i, pi := range points {
		basis := New([]fr.Element{one()})
		for j, pj := range points {
			if i == j {
				continue
			}
			var denom fr.Element
			denom.Sub(&pi.X, &pj.X)
			denom.Inverse(&denom)

			var negXj fr.Element
			negXj.Neg(&pj.X)

			term := New([]fr.Element{negXj, one()}).scale(denom)
			basis = basis.Mul(term)
		}
		result = result.Add(basis.scale(pi.Y))
	}

	return result, nil
}

// Add returns p + q, padding the shorter operand with zeros.
func (p Polynomial) Add(q Polynomial) Polynomial {
	n := len(p.Coefficients)
	if len(q.Coefficients) > n {
		n = len(q.Coefficients)
	}
	out := make([]fr.Element, n)
	for i := 0; i < n; i++ {
		var a, b fr.Element
		if i < len(p.Coefficients) {
			a = p.Coefficients[i]
		}
		if i < len(q.Coefficients) {
			b = q.Coefficients[i]
		}
		out[i].Add(&a, &b)
	}
	return New(out)
}

// Sub returns p - q, padding the shorter operand with zeros.
func (p Polynomial) Sub(q Polynomial) Polynomial {
	n := len(p.Coefficients)
	if len(q.Coefficients) > n {
		n = len(q.Coefficients)
	}
	out := make([]fr.Element, n)
	for i := 0; i < n; i++ {
		var a, b fr.Element
		if i < len(p.Coefficients) {
			a = p.Coefficients[i]
		}
		if i < len(q.Coefficients) {
			b = q.Coefficients[i]
		}
		out[i].Sub(&a, &b)
	}
	return New(out)
}

// Mul returns p * q via naive O(d1*d2) convolution.
func (p Polynomial) Mul(q Polynomial) Polynomial {
	if len(p.Coefficients) == 0 || len(q.Coefficients) == 0 {
		return New(nil)
	}
	out := make([]fr.Element, len(p.Coefficients)+len(q.Coefficients)-1)
	for i, a := range p.Coefficients {
		if a.IsZero() {
			continue
		}
		for j, b := range q.Coefficients {
			var term fr.Element
			term.Mul(&a, &b)
			out[i+j].Add(&out[i+j], &term)
		}
	}
	return New(out)
}

// scale returns p scaled by c, pointwise.
func (p Polynomial) scale(c fr.Element) Polynomial {
	out := make([]fr.Element, len(p.Coefficients))
	for i, a := range p.Coefficients {
		out[i].Mul(&a, &c)
	}
	return New(out)
}

func one() fr.Element {
	var e fr.Element
	e.SetOne()
	return e
}
