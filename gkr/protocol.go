package gkr

import (
	"errors"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/obah/zk-research-implementations/logger"
	"github.com/obah/zk-research-implementations/polynomial/composed"
	"github.com/obah/zk-research-implementations/polynomial/multilinear"
	"github.com/obah/zk-research-implementations/sumcheck"
	"github.com/obah/zk-research-implementations/transcript"
)

// LayerOracleMismatchError is returned by Verify when the final sum-check
// oracle value for a layer disagrees with the claimed (u, v) pair.
type LayerOracleMismatchError struct {
	Layer int
}

func (e *LayerOracleMismatchError) Error() string {
	return fmt.Sprintf("gkr: layer %d oracle mismatch", e.Layer)
}

// ErrInputClaimMismatch is returned when the final claim at the input layer
// disagrees with the public input's multilinear extension. Verify also
// returns it when the proof's output claim disagrees with the multilinear
// extension of the claimed output vector.
var ErrInputClaimMismatch = errors.New("gkr: input claim mismatch")

// ErrSumCheckFailed wraps a failed layer sum-check instance.
var ErrSumCheckFailed = errors.New("gkr: layer sum-check failed")

// outerCombine builds the 2*bIn-variable ML whose value at (b,c) is
// op(next[b], next[c]) for every pair of hypercube points, mirroring how two
// independent MLEs over disjoint variable sets compose into a single MLE of
// their combination.
func outerCombine(next []fr.Element, op Op) (multilinear.Polynomial, error) {
	n := len(next)
	out := make([]fr.Element, n*n)
	for b, vb := range next {
		for c, vc := range next {
			out[b*n+c] = op.Apply(vb, vc)
		}
	}
	return multilinear.New(out)
}

// layerClaimPoly builds f_l(b,c) = add*_l*(W_{l+1,b}+W_{l+1,c}) +
// mul*_l*(W_{l+1,b}*W_{l+1,c}) as a SumPoly, after add_l/mul_l have already
// been partially evaluated at r_l (the output-index challenge).
func layerClaimPoly(addStar, mulStar multilinear.Polynomial, next []fr.Element) (composed.SumPoly, error) {
	combinedAdd, err := outerCombine(next, Add)
	if err != nil {
		return composed.SumPoly{}, err
	}
	combinedMul, err := outerCombine(next, Mul)
	if err != nil {
		return composed.SumPoly{}, err
	}

	addTerm, err := composed.NewProductPoly(addStar, combinedAdd)
	if err != nil {
		return composed.SumPoly{}, err
	}
	mulTerm, err := composed.NewProductPoly(mulStar, combinedMul)
	if err != nil {
		return composed.SumPoly{}, err
	}
	return composed.NewSumPoly(addTerm, mulTerm)
}

// fixOutputChallenge partially evaluates a wiring MLE's leading bOut
// variables (the output-index bits) at rl, one variable at a time (variable
// 0 is always the current most-significant free variable).
func fixOutputChallenge(wiring multilinear.Polynomial, rl []fr.Element) (multilinear.Polynomial, error) {
	cur := wiring
	for _, r := range rl {
		next, err := cur.PartialEvaluate(0, r)
		if err != nil {
			return multilinear.Polynomial{}, err
		}
		cur = next
	}
	return cur, nil
}

// Prove constructs a non-interactive GKR proof that trace is the correct
// evaluation trace of circuit on its input layer, using tr to derive every
// challenge via Fiat-Shamir.
func Prove(tr *transcript.Transcript, circuit Circuit, trace Trace) (Proof, error) {
	log := logger.Component("gkr")
	outputMLE, err := trace.LayerMLE(0)
	if err != nil {
		return Proof{}, fmt.Errorf("gkr: output layer: %w", err)
	}

	tr.AppendElements("gkr/output", trace.W[0]...)
	r0 := tr.ChallengeVector(bitsFor(circuit.width(0)))
	outputClaim, err := outputMLE.Evaluate(r0)
	if err != nil {
		return Proof{}, fmt.Errorf("gkr: output claim: %w", err)
	}
	tr.AppendElements("gkr/output_claim", outputClaim)

	proof := Proof{OutputClaim: outputClaim, Layers: make([]LayerProof, circuit.Depth())}

	rl := r0
	claim := outputClaim

	for l := 0; l < circuit.Depth(); l++ {
		log.Debug().Int("layer", l).Msg("gkr: proving layer reduction")

		addMLE, mulMLE, err := circuit.WiringMLEs(l)
		if err != nil {
			return Proof{}, err
		}
		addStar, err := fixOutputChallenge(addMLE, rl)
		if err != nil {
			return Proof{}, err
		}
		mulStar, err := fixOutputChallenge(mulMLE, rl)
		if err != nil {
			return Proof{}, err
		}

		next := trace.W[l+1]
		f, err := layerClaimPoly(addStar, mulStar, next)
		if err != nil {
			return Proof{}, err
		}

		scProof, challenges, err := sumcheck.Prove(tr, f, claim)
		if err != nil {
			return Proof{}, fmt.Errorf("gkr: layer %d: %w", l, err)
		}

		bIn := bitsFor(circuit.width(l + 1))
		bStar, cStar := challenges[:bIn], challenges[bIn:]

		nextMLE, err := trace.LayerMLE(l + 1)
		if err != nil {
			return Proof{}, err
		}
		u, err := nextMLE.Evaluate(bStar)
		if err != nil {
			return Proof{}, err
		}
		v, err := nextMLE.Evaluate(cStar)
		if err != nil {
			return Proof{}, err
		}
		tr.AppendElements("gkr/layer_uv", u, v)

		proof.Layers[l] = LayerProof{SumCheck: scProof, U: u, V: v}

		alpha := tr.Challenge()
		rl = combinePoints(bStar, cStar, alpha)
		claim = combineClaims(u, v, alpha)
	}

	return proof, nil
}

// combinePoints returns b*(1-alpha) + c*alpha, pointwise.
func combinePoints(b, c []fr.Element, alpha fr.Element) []fr.Element {
	out := make([]fr.Element, len(b))
	var oneMinusAlpha fr.Element
	oneMinusAlpha.SetOne()
	oneMinusAlpha.Sub(&oneMinusAlpha, &alpha)
	for i := range b {
		var t1, t2 fr.Element
		t1.Mul(&b[i], &oneMinusAlpha)
		t2.Mul(&c[i], &alpha)
		out[i].Add(&t1, &t2)
	}
	return out
}

// combineClaims returns u*(1-alpha) + v*alpha.
func combineClaims(u, v, alpha fr.Element) fr.Element {
	var oneMinusAlpha, t1, t2, out fr.Element
	oneMinusAlpha.SetOne()
	oneMinusAlpha.Sub(&oneMinusAlpha, &alpha)
	t1.Mul(&u, &oneMinusAlpha)
	t2.Mul(&v, &alpha)
	out.Add(&t1, &t2)
	return out
}

// Verify checks a GKR proof against circuit and the public input, using tr to
// re-derive every challenge. It returns nil iff the proof is accepted.
func Verify(tr *transcript.Transcript, circuit Circuit, input []fr.Element, output []fr.Element, proof Proof) error {
	log := logger.Component("gkr")

	tr.AppendElements("gkr/output", output...)
	r0 := tr.ChallengeVector(bitsFor(circuit.width(0)))

	outputMLE, err := multilinear.New(output)
	if err != nil {
		return fmt.Errorf("gkr: output layer: %w", err)
	}
	wantOutputClaim, err := outputMLE.Evaluate(r0)
	if err != nil {
		return fmt.Errorf("gkr: output claim: %w", err)
	}
	if !wantOutputClaim.Equal(&proof.OutputClaim) {
		return ErrInputClaimMismatch
	}
	tr.AppendElements("gkr/output_claim", proof.OutputClaim)

	rl := r0
	claim := proof.OutputClaim

	for l := 0; l < circuit.Depth(); l++ {
		log.Debug().Int("layer", l).Msg("gkr: verifying layer reduction")

		layerProof := proof.Layers[l]
		bIn := bitsFor(circuit.width(l + 1))
		nVars := 2 * bIn

		challenges, expected, err := sumcheck.Verify(tr, nVars, claim, layerProof.SumCheck)
		if err != nil {
			return fmt.Errorf("%w: layer %d: %v", ErrSumCheckFailed, l, err)
		}
		bStar, cStar := challenges[:bIn], challenges[bIn:]

		addMLE, mulMLE, err := circuit.WiringMLEs(l)
		if err != nil {
			return err
		}
		addStar, err := fixOutputChallenge(addMLE, rl)
		if err != nil {
			return err
		}
		mulStar, err := fixOutputChallenge(mulMLE, rl)
		if err != nil {
			return err
		}

		bcPoint := append(append([]fr.Element{}, bStar...), cStar...)
		addVal, err := addStar.Evaluate(bcPoint)
		if err != nil {
			return err
		}
		mulVal, err := mulStar.Evaluate(bcPoint)
		if err != nil {
			return err
		}

		u, v := layerProof.U, layerProof.V
		var sumUV, prodUV, addTerm, mulTerm, oracle fr.Element
		sumUV.Add(&u, &v)
		prodUV.Mul(&u, &v)
		addTerm.Mul(&addVal, &sumUV)
		mulTerm.Mul(&mulVal, &prodUV)
		oracle.Add(&addTerm, &mulTerm)

		if err := sumcheck.CheckFinal(expected, oracle); err != nil {
			return &LayerOracleMismatchError{Layer: l}
		}

		tr.AppendElements("gkr/layer_uv", u, v)
		alpha := tr.Challenge()
		rl = combinePoints(bStar, cStar, alpha)
		claim = combineClaims(u, v, alpha)
	}

	inputMLE, err := multilinear.New(input)
	if err != nil {
		return fmt.Errorf("gkr: input layer: %w", err)
	}
	finalClaim, err := inputMLE.Evaluate(rl)
	if err != nil {
		return fmt.Errorf("gkr: input evaluation: %w", err)
	}
	if !finalClaim.Equal(&claim) {
		return ErrInputClaimMismatch
	}
	return nil
}
