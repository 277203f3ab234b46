// Package sumcheck implements the interactive sum-check protocol over a
// composed polynomial: reducing a claimed sum over the Boolean hypercube to a
// single evaluation at a transcript-derived point, round by round, with
// challenges drawn via Fiat-Shamir.
package sumcheck

import (
	"errors"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/obah/zk-research-implementations/logger"
	"github.com/obah/zk-research-implementations/polynomial/composed"
	"github.com/obah/zk-research-implementations/polynomial/univariate"
	"github.com/obah/zk-research-implementations/transcript"
)

// RoundCheckFailedError is returned by the verifier when a round polynomial
// does not satisfy g_j(0) + g_j(1) == expected.
type RoundCheckFailedError struct {
	Round int
}

func (e *RoundCheckFailedError) Error() string {
	return fmt.Sprintf("sumcheck: round %d check failed", e.Round)
}

// ErrBadFinalEvaluation is returned when the caller-supplied final oracle
// value disagrees with the verifier's running expectation after the last
// round.
var ErrBadFinalEvaluation = errors.New("sumcheck: final evaluation disagrees with oracle")

// Prove runs the prover side of sum-check on f, whose claimed sum over
// {0,1}^n is sum. It appends every round polynomial to tr and returns the
// proof together with the challenge vector r the verifier will derive while
// checking it.
func Prove(tr *transcript.Transcript, f composed.Polynomial, sum fr.Element) (Proof, []fr.Element, error) {
	n := f.NVars()
	log := logger.Component("sumcheck")
	log.Debug().Int("n_vars", n).Msg("sumcheck: starting prover")

	cur := f
	challenges := make([]fr.Element, 0, n)
	rounds := make([]univariate.Polynomial, 0, n)

	for j := 0; j < n; j++ {
		roundPoly, err := cur.ReduceToUnivariate()
		if err != nil {
			return Proof{}, nil, fmt.Errorf("sumcheck: round %d: %w", j, err)
		}

		tr.AppendElements("sumcheck/round", roundPoly.Coefficients...)
		rj := tr.Challenge()
		challenges = append(challenges, rj)

		next, err := cur.PartialEvaluate(rj)
		if err != nil {
			return Proof{}, nil, fmt.Errorf("sumcheck: round %d partial evaluation: %w", j, err)
		}
		cur = next

		rounds = append(rounds, roundPoly)
		log.Debug().Int("round", j).Msg("sumcheck: round complete")
	}

	return Proof{RoundPolynomials: rounds}, challenges, nil
}

// Verify runs the verifier side of sum-check: it replays the prover's
// transcript appends, checks each round polynomial's boundary condition, and
// returns the drawn challenge vector together with the final expected value
// f(r_0..r_{n-1}), which the caller must check against an oracle (directly,
// or — in GKR — by binding it to the next layer's claim).
func Verify(tr *transcript.Transcript, nVars int, sum fr.Element, proof Proof) ([]fr.Element, fr.Element, error) {
	if len(proof.RoundPolynomials) != nVars {
		return nil, fr.Element{}, fmt.Errorf("sumcheck: expected %d round polynomials, got %d", nVars, len(proof.RoundPolynomials))
	}

	expected := sum
	challenges := make([]fr.Element, 0, nVars)

	for j, roundPoly := range proof.RoundPolynomials {
		zero := roundPoly.Evaluate(fromInt(0))
		one := roundPoly.Evaluate(fromInt(1))
		var boundary fr.Element
		boundary.Add(&zero, &one)
		if !boundary.Equal(&expected) {
			return nil, fr.Element{}, &RoundCheckFailedError{Round: j}
		}

		tr.AppendElements("sumcheck/round", roundPoly.Coefficients...)
		rj := tr.Challenge()
		challenges = append(challenges, rj)

		expected = roundPoly.Evaluate(rj)
	}

	return challenges, expected, nil
}

// CheckFinal compares the verifier's running expectation against a
// caller-supplied oracle value (a direct evaluation, or a GKR layer-claim
// binding), returning ErrBadFinalEvaluation on mismatch.
func CheckFinal(expected, oracle fr.Element) error {
	if !expected.Equal(&oracle) {
		return ErrBadFinalEvaluation
	}
	return nil
}

func fromInt(v int) fr.Element {
	var e fr.Element
	e.SetInt64(int64(v))
	return e
}
