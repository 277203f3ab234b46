package composed_test

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"

	"github.com/obah/zk-research-implementations/polynomial/composed"
	"github.com/obah/zk-research-implementations/polynomial/multilinear"
)

func elem(v int64) fr.Element {
	var e fr.Element
	e.SetInt64(v)
	return e
}

func ml(t *testing.T, evaluations ...fr.Element) multilinear.Polynomial {
	t.Helper()
	p, err := multilinear.New(evaluations)
	require.NoError(t, err)
	return p
}

func TestProductPolyEvaluate(t *testing.T) {
	a := ml(t, elem(0), elem(0), elem(0), elem(3))
	b := ml(t, elem(0), elem(0), elem(0), elem(2))

	pp, err := composed.NewProductPoly(a, b)
	require.NoError(t, err)

	got, err := pp.Evaluate([]fr.Element{elem(2), elem(3)})
	require.NoError(t, err)
	require.True(t, got.Equal(elemPtr(216)))
}

func elemPtr(v int64) *fr.Element {
	e := elem(v)
	return &e
}

func TestSumPolyDegreeIsMaxTermDegree(t *testing.T) {
	a := ml(t, elem(1), elem(2), elem(3), elem(4))
	b := ml(t, elem(1), elem(2), elem(3), elem(4))
	c := ml(t, elem(1), elem(2), elem(3), elem(4))

	term1, err := composed.NewProductPoly(a)
	require.NoError(t, err)
	term2, err := composed.NewProductPoly(b, c)
	require.NoError(t, err)

	sp, err := composed.NewSumPoly(term1, term2)
	require.NoError(t, err)
	require.Equal(t, 2, sp.Degree())
}

func TestReduceToUnivariateDegreeMatches(t *testing.T) {
	a := ml(t, elem(1), elem(2), elem(3), elem(4))
	b := ml(t, elem(5), elem(6), elem(7), elem(8))

	pp, err := composed.NewProductPoly(a, b)
	require.NoError(t, err)

	up, err := pp.ReduceToUnivariate()
	require.NoError(t, err)
	require.Equal(t, pp.Degree(), up.Degree())
}
