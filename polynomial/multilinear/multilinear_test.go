package multilinear_test

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"github.com/obah/zk-research-implementations/polynomial/multilinear"
)

func elem(v int64) fr.Element {
	var e fr.Element
	e.SetInt64(v)
	return e
}

func randVec(n int) []fr.Element {
	out := make([]fr.Element, n)
	for i := range out {
		out[i].SetInt64(int64(i)*7 + 3)
	}
	return out
}

func TestPartialEvaluateHalvesLength(t *testing.T) {
	v := randVec(8)
	ml, err := multilinear.New(v)
	require.NoError(t, err)
	got, err := ml.PartialEvaluate(1, elem(5))
	require.NoError(t, err)
	require.Len(t, got.Evaluations, 4)
}

func TestNewRejectsNonPowerOfTwoLength(t *testing.T) {
	_, err := multilinear.New([]fr.Element{elem(1), elem(2), elem(3)})
	require.ErrorIs(t, err, multilinear.ErrNotPowerOfTwo)
}

func TestEvaluateAgreesOnBooleanPoints(t *testing.T) {
	v := []fr.Element{elem(0), elem(1), elem(2), elem(3)}
	ml, err := multilinear.New(v)
	require.NoError(t, err)

	for idx, point := range [][]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}} {
		r := make([]fr.Element, len(point))
		for i, b := range point {
			r[i] = elem(int64(b))
		}
		got, err := ml.Evaluate(r)
		require.NoError(t, err)
		require.True(t, got.Equal(&v[idx]))
	}
}

func TestMLEvaluationAgreementProperty(t *testing.T) {
	const n = 3
	v := randVec(1 << n)
	ml, err := multilinear.New(v)
	require.NoError(t, err)

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 40

	properties := gopter.NewProperties(parameters)
	properties.Property("ML(v).evaluate(x) == v[bits_to_index(x)] for x in {0,1}^n", prop.ForAll(
		func(bitsInt []int) bool {
			bitsPoint := make([]int, n)
			for i := 0; i < n; i++ {
				bitsPoint[i] = bitsInt[i] & 1
			}
			r := make([]fr.Element, n)
			for i, b := range bitsPoint {
				r[i] = elem(int64(b))
			}
			got, err := ml.Evaluate(r)
			if err != nil {
				return false
			}
			want := v[multilinear.BitsToIndex(bitsPoint)]
			return got.Equal(&want)
		},
		gen.SliceOfN(n, gen.IntRange(0, 1)),
	))
	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestPartialEvaluationConsistencyProperty(t *testing.T) {
	const n = 3
	v := randVec(1 << n)
	ml, err := multilinear.New(v)
	require.NoError(t, err)

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 30

	properties := gopter.NewProperties(parameters)
	properties.Property("ML(v).partial_evaluate(0,r).evaluate(x') == ML(v).evaluate(r||x')", prop.ForAll(
		func(rVal int64, rest []int) bool {
			r := elem(rVal)
			folded, err := ml.PartialEvaluate(0, r)
			if err != nil {
				return false
			}

			xPrime := make([]fr.Element, n-1)
			for i := 0; i < n-1; i++ {
				xPrime[i] = elem(int64(rest[i] & 1))
			}

			lhs, err := folded.Evaluate(xPrime)
			if err != nil {
				return false
			}

			full := append([]fr.Element{r}, xPrime...)
			rhs, err := ml.Evaluate(full)
			if err != nil {
				return false
			}
			return lhs.Equal(&rhs)
		},
		gen.Int64Range(-1000, 1000),
		gen.SliceOfN(n-1, gen.IntRange(0, 1)),
	))
	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// TestPartialEvaluateGeneralIndexConsistencyProperty checks the general
// varIndex branch of PartialEvaluate (not just varIndex == 0): folding
// variable i to r and evaluating the rest must agree with evaluating the
// full point with r spliced in at position i, for every i in range.
func TestPartialEvaluateGeneralIndexConsistencyProperty(t *testing.T) {
	const n = 3
	v := randVec(1 << n)
	ml, err := multilinear.New(v)
	require.NoError(t, err)

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)
	properties.Property("ML(v).partial_evaluate(i,r).evaluate(rest) == ML(v).evaluate(rest with r spliced in at i)", prop.ForAll(
		func(i int, rVal int64, restBits []int) bool {
			r := elem(rVal)
			folded, err := ml.PartialEvaluate(i, r)
			if err != nil {
				return false
			}

			rest := make([]fr.Element, n-1)
			for j, b := range restBits {
				rest[j] = elem(int64(b & 1))
			}

			lhs, err := folded.Evaluate(rest)
			if err != nil {
				return false
			}

			full := make([]fr.Element, n)
			copy(full[:i], rest[:i])
			full[i] = r
			copy(full[i+1:], rest[i:])

			rhs, err := ml.Evaluate(full)
			if err != nil {
				return false
			}
			return lhs.Equal(&rhs)
		},
		gen.IntRange(0, n-1),
		gen.Int64Range(-1000, 1000),
		gen.SliceOfN(n-1, gen.IntRange(0, 1)),
	))
	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
