package gkr_test

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"

	"github.com/obah/zk-research-implementations/gkr"
	"github.com/obah/zk-research-implementations/internal/debugmode"
	"github.com/obah/zk-research-implementations/transcript"
)

func elem(v int64) fr.Element {
	var e fr.Element
	e.SetInt64(v)
	return e
}

// buildMulCircuit builds a 2-layer circuit with a single mul gate
// g = x0*x1 at the output over a 2-element input.
func buildMulCircuit(t *testing.T) gkr.Circuit {
	layer := gkr.Layer{Gates: []gkr.Gate{{Op: gkr.Mul, LeftIdx: 0, RightIdx: 1}}}
	c, err := gkr.NewCircuit([]gkr.Layer{layer}, 2)
	require.NoError(t, err)
	return c
}

func TestSingleMulGateEvaluatesCorrectly(t *testing.T) {
	c := buildMulCircuit(t)
	trace, err := c.Evaluate([]fr.Element{elem(3), elem(4)})
	require.NoError(t, err)
	require.True(t, trace.W[0][0].Equal(elemPtr(12)))
}

func elemPtr(v int64) *fr.Element {
	e := elem(v)
	return &e
}

func TestGKREndToEndAcceptsHonestProofAndRejectsTamperedOutput(t *testing.T) {
	c := buildMulCircuit(t)
	input := []fr.Element{elem(3), elem(4)}
	trace, err := c.Evaluate(input)
	require.NoError(t, err)

	proveTr := transcript.New()
	proof, err := gkr.Prove(proveTr, c, trace)
	require.NoError(t, err)

	verifyTr := transcript.New()
	err = gkr.Verify(verifyTr, c, input, trace.W[0], proof)
	require.NoError(t, err)

	tamperedOutput := []fr.Element{elem(13)}
	badTr := transcript.New()
	err = gkr.Verify(badTr, c, input, tamperedOutput, proof)
	require.Error(t, err)
}

// buildDeeperCircuit builds a 3-layer circuit: 4 mul gates, then 2 add
// gates, then 1 add gate, over an 8-element input.
func buildDeeperCircuit(t *testing.T) gkr.Circuit {
	layer0 := gkr.Layer{Gates: []gkr.Gate{
		{Op: gkr.Mul, LeftIdx: 0, RightIdx: 1},
		{Op: gkr.Mul, LeftIdx: 2, RightIdx: 3},
		{Op: gkr.Mul, LeftIdx: 4, RightIdx: 5},
		{Op: gkr.Mul, LeftIdx: 6, RightIdx: 7},
	}}
	layer1 := gkr.Layer{Gates: []gkr.Gate{
		{Op: gkr.Add, LeftIdx: 0, RightIdx: 1},
		{Op: gkr.Add, LeftIdx: 2, RightIdx: 3},
	}}
	layer2 := gkr.Layer{Gates: []gkr.Gate{
		{Op: gkr.Add, LeftIdx: 0, RightIdx: 1},
	}}
	c, err := gkr.NewCircuit([]gkr.Layer{layer2, layer1, layer0}, 8)
	require.NoError(t, err)
	return c
}

func TestDeeperCircuitEvaluatesAndVerifies(t *testing.T) {
	c := buildDeeperCircuit(t)
	input := []fr.Element{elem(5), elem(2), elem(2), elem(4), elem(10), elem(0), elem(3), elem(3)}

	trace, err := c.Evaluate(input)
	require.NoError(t, err)
	require.True(t, trace.W[0][0].Equal(elemPtr(27)))

	proveTr := transcript.New()
	proof, err := gkr.Prove(proveTr, c, trace)
	require.NoError(t, err)

	verifyTr := transcript.New()
	require.NoError(t, gkr.Verify(verifyTr, c, input, trace.W[0], proof))
}

// TestEvaluateUnderDebugModeRunsWiringConsistencyCheck exercises the
// brute-force wiring/trace cross-check Evaluate runs under debugmode.Enabled,
// on both circuits in this file, to confirm the add_l/mul_l predicates
// WiringMLEs builds agree with the direct gate-wiring Evaluate performs.
func TestEvaluateUnderDebugModeRunsWiringConsistencyCheck(t *testing.T) {
	prev := debugmode.Enabled
	debugmode.Enabled = true
	defer func() { debugmode.Enabled = prev }()

	mulCircuit := buildMulCircuit(t)
	_, err := mulCircuit.Evaluate([]fr.Element{elem(3), elem(4)})
	require.NoError(t, err)

	deeperCircuit := buildDeeperCircuit(t)
	input := []fr.Element{elem(5), elem(2), elem(2), elem(4), elem(10), elem(0), elem(3), elem(3)}
	_, err = deeperCircuit.Evaluate(input)
	require.NoError(t, err)
}
