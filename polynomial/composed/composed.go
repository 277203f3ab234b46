// Package composed implements algebraic compositions of multilinear
// polynomials — ProductPoly (pointwise product of MLs) and SumPoly (pointwise
// sum of ProductPolys) — which together form the claim polynomials the
// sum-check prover reduces round by round.
package composed

import (
	"errors"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/obah/zk-research-implementations/polynomial/multilinear"
	"github.com/obah/zk-research-implementations/polynomial/univariate"
)

// ErrShapeMismatch is returned when factors/terms disagree on arity, or when
// an evaluation point's arity is wrong.
var ErrShapeMismatch = errors.New("composed: shape mismatch")

// ErrEmpty is returned by operations on an empty composition.
var ErrEmpty = errors.New("composed: empty composition")

// Polynomial is the capability every object the sum-check prover consumes
// must satisfy: a number of variables, a per-variable degree bound, pointwise
// evaluation, partial evaluation in the first free variable, and reduction to
// a univariate polynomial for one sum-check round. MLAdapter (wrapping a
// multilinear.Polynomial), ProductPoly and SumPoly all implement it.
type Polynomial interface {
	NVars() int
	Degree() int
	Evaluate(point []fr.Element) (fr.Element, error)
	PartialEvaluate(r fr.Element) (Polynomial, error)
	ReduceToUnivariate() (univariate.Polynomial, error)
}

// MLAdapter lets a bare multilinear.Polynomial satisfy the Polynomial
// capability interface (degree 1 in every variable).
type MLAdapter struct {
	ML multilinear.Polynomial
}

func (a MLAdapter) NVars() int { return a.ML.NVars() }

func (a MLAdapter) Degree() int { return 1 }

func (a MLAdapter) Evaluate(point []fr.Element) (fr.Element, error) {
	return a.ML.Evaluate(point)
}

func (a MLAdapter) PartialEvaluate(r fr.Element) (Polynomial, error) {
	folded, err := a.ML.PartialEvaluate(0, r)
	if err != nil {
		return nil, err
	}
	return MLAdapter{ML: folded}, nil
}

func (a MLAdapter) ReduceToUnivariate() (univariate.Polynomial, error) {
	return reduceToUnivariate(a)
}

// ProductPoly is an ordered list of multilinear factors of equal arity; its
// semantics is the pointwise product of the factors. degree = number of
// factors, since sum-check needs degree+1 in any single variable.
type ProductPoly struct {
	Factors []multilinear.Polynomial
}

// NewProductPoly builds a ProductPoly, checking that every factor shares the
// same number of variables.
func NewProductPoly(factors ...multilinear.Polynomial) (ProductPoly, error) {
	if len(factors) == 0 {
		return ProductPoly{}, ErrEmpty
	}
	n := factors[0].NVars()
	for _, f := range factors[1:] {
		if f.NVars() != n {
			return ProductPoly{}, ErrShapeMismatch
		}
	}
	return ProductPoly{Factors: factors}, nil
}

func (p ProductPoly) NVars() int {
	if len(p.Factors) == 0 {
		return 0
	}
	return p.Factors[0].NVars()
}

// Degree returns the number of factors: a ProductPoly of k multilinear
// factors has degree k in any single variable.
func (p ProductPoly) Degree() int { return len(p.Factors) }

func (p ProductPoly) Evaluate(point []fr.Element) (fr.Element, error) {
	result := one()
	for _, f := range p.Factors {
		v, err := f.Evaluate(point)
		if err != nil {
			return fr.Element{}, err
		}
		result.Mul(&result, &v)
	}
	return result, nil
}

// PartialEvaluate fixes the first free variable to r in every factor.
func (p ProductPoly) PartialEvaluate(r fr.Element) (Polynomial, error) {
	out := make([]multilinear.Polynomial, len(p.Factors))
	for i, f := range p.Factors {
		folded, err := f.PartialEvaluate(0, r)
		if err != nil {
			return nil, err
		}
		out[i] = folded
	}
	return ProductPoly{Factors: out}, nil
}

func (p ProductPoly) ReduceToUnivariate() (univariate.Polynomial, error) {
	return reduceToUnivariate(p)
}

// SumPoly is an ordered list of ProductPolys of equal arity; its semantics is
// the pointwise sum of the terms. degree = max term degree.
type SumPoly struct {
	Terms []ProductPoly
}

// NewSumPoly builds a SumPoly, checking that every term shares the same
// number of variables.
func NewSumPoly(terms ...ProductPoly) (SumPoly, error) {
	if len(terms) == 0 {
		return SumPoly{}, ErrEmpty
	}
	n := terms[0].NVars()
	for _, t := range terms[1:] {
		if t.NVars() != n {
			return SumPoly{}, ErrShapeMismatch
		}
	}
	return SumPoly{Terms: terms}, nil
}

func (s SumPoly) NVars() int {
	if len(s.Terms) == 0 {
		return 0
	}
	return s.Terms[0].NVars()
}

func (s SumPoly) Degree() int {
	max := 0
	for _, t := range s.Terms {
		if d := t.Degree(); d > max {
			max = d
		}
	}
	return max
}

func (s SumPoly) Evaluate(point []fr.Element) (fr.Element, error) {
	var result fr.Element
	for _, t := range s.Terms {
		v, err := t.Evaluate(point)
		if err != nil {
			return fr.Element{}, err
		}
		result.Add(&result, &v)
	}
	return result, nil
}

// PartialEvaluate distributes the fixed variable into every term.
func (s SumPoly) PartialEvaluate(r fr.Element) (Polynomial, error) {
	out := make([]ProductPoly, len(s.Terms))
	for i, t := range s.Terms {
		folded, err := t.PartialEvaluate(r)
		if err != nil {
			return nil, err
		}
		out[i] = folded.(ProductPoly)
	}
	return SumPoly{Terms: out}, nil
}

func (s SumPoly) ReduceToUnivariate() (univariate.Polynomial, error) {
	return reduceToUnivariate(s)
}

// reduceToUnivariate holds all but the first variable of f free at
// 0/1-hypercube points and sums over them, evaluating f at X = 0, 1, ..., deg
// and interpolating. Shared by every Polynomial implementation.
func reduceToUnivariate(f Polynomial) (univariate.Polynomial, error) {
	n := f.NVars()
	if n == 0 {
		return univariate.Polynomial{}, ErrEmpty
	}
	degree := f.Degree()

	points := make([]univariate.Point, degree+1)
	for x := 0; x <= degree; x++ {
		xElem := fromInt(x)
		sum, err := sumOverHypercube(f, xElem, n-1)
		if err != nil {
			return univariate.Polynomial{}, err
		}
		points[x] = univariate.Point{X: xElem, Y: sum}
	}
	return univariate.Interpolate(points)
}

// sumOverHypercube evaluates f with its first variable fixed to x and every
// remaining variable ranging over {0,1}^remaining, summing the results.
func sumOverHypercube(f Polynomial, x fr.Element, remaining int) (fr.Element, error) {
	var total fr.Element
	count := 1 << remaining
	for mask := 0; mask < count; mask++ {
		point := make([]fr.Element, remaining+1)
		point[0] = x
		for i := 0; i < remaining; i++ {
			bit := (mask >> (remaining - 1 - i)) & 1
			point[i+1] = fromInt(bit)
		}
		v, err := f.Evaluate(point)
		if err != nil {
			return fr.Element{}, err
		}
		total.Add(&total, &v)
	}
	return total, nil
}

func one() fr.Element {
	var e fr.Element
	e.SetOne()
	return e
}

func fromInt(v int) fr.Element {
	var e fr.Element
	e.SetInt64(int64(v))
	return e
}
