package sumcheck

import "github.com/obah/zk-research-implementations/polynomial/univariate"

// Proof is the sequence of round polynomials a sum-check prover emits, one
// per variable, each as a coefficient list of length degree+1.
type Proof struct {
	RoundPolynomials []univariate.Polynomial
}
