// Package kzg implements the Kate-Zaverucha-Goldberg polynomial commitment
// scheme over bn254: a trusted setup produces an SRS, Commit binds a
// polynomial to a constant-size G1 point, and Open/Verify let a prover
// convince a verifier of a single evaluation without revealing the rest of
// the polynomial.
package kzg

import (
	"errors"
	"io"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/obah/zk-research-implementations/logger"
	"github.com/obah/zk-research-implementations/polynomial/univariate"
)

// ErrDegreeTooHigh is returned by Commit/Open when a polynomial's degree
// exceeds the SRS's supported degree.
var ErrDegreeTooHigh = errors.New("kzg: polynomial degree exceeds SRS size")

// ErrBadOpening is returned by Verify when the pairing check fails.
var ErrBadOpening = errors.New("kzg: opening proof failed pairing check")

// ErrSetupDegreeExceeded is returned by Setup when asked for a non-positive
// degree bound.
var ErrSetupDegreeExceeded = errors.New("kzg: setup degree must be positive")

// SRS is the structured reference string produced by a trusted setup: the
// first D+1 powers of tau in G1, and the G2 generator together with tau*G2,
// the two G2 elements the pairing check needs. Only degree-<=D polynomials
// can be committed against it.
type SRS struct {
	G1    []bn254.G1Affine // {G1, tau*G1, tau^2*G1, ..., tau^D*G1}
	G2Gen bn254.G2Affine   // G2
	G2Tau bn254.G2Affine   // tau*G2
}

// Degree reports the maximum polynomial degree this SRS supports.
func (s SRS) Degree() int { return len(s.G1) - 1 }

// randomElement draws a uniformly random field element from rng; a nil rng
// falls back to crypto/rand via fr.Element.SetRandom.
func randomElement(rng io.Reader) (fr.Element, error) {
	var e fr.Element
	if rng == nil {
		_, err := e.SetRandom()
		return e, err
	}
	buf := make([]byte, fr.Bytes)
	if _, err := io.ReadFull(rng, buf); err != nil {
		return fr.Element{}, err
	}
	e.SetBytes(buf)
	return e, nil
}

// Setup runs the trusted setup for degree-D polynomials, sampling tau from
// rng. The toxic waste (tau) is discarded as soon as the SRS is derived;
// callers that need a reproducible SRS for testing should pass a
// deterministic rng. Real deployments derive tau from a multi-party
// ceremony instead of a single party's randomness.
func Setup(d int, rng io.Reader) (SRS, error) {
	if d <= 0 {
		return SRS{}, ErrSetupDegreeExceeded
	}

	tau, err := randomElement(rng)
	if err != nil {
		return SRS{}, err
	}

	_, _, g1Gen, g2Gen := bn254.Generators()

	powers := make([]fr.Element, d+1)
	powers[0].SetOne()
	for i := 1; i <= d; i++ {
		powers[i].Mul(&powers[i-1], &tau)
	}

	g1 := make([]bn254.G1Affine, d+1)
	for i := range g1 {
		var exp big.Int
		powers[i].BigInt(&exp)
		g1[i].ScalarMultiplication(&g1Gen, &exp)
	}

	var tauBI big.Int
	tau.BigInt(&tauBI)
	var g2Tau bn254.G2Affine
	g2Tau.ScalarMultiplication(&g2Gen, &tauBI)

	logger.Component("kzg").Debug().Int("degree", d).Msg("kzg: trusted setup complete")

	return SRS{G1: g1, G2Gen: g2Gen, G2Tau: g2Tau}, nil
}

// Commit returns [p(tau)]_1, computed as a multi-scalar multiplication of
// p's coefficients against the SRS's G1 powers of tau.
func Commit(srs SRS, p univariate.Polynomial) (bn254.G1Affine, error) {
	if p.Degree() > srs.Degree() {
		return bn254.G1Affine{}, ErrDegreeTooHigh
	}

	var commitment bn254.G1Affine // zero value is the point at infinity

	for i, c := range p.Coefficients {
		if c.IsZero() {
			continue
		}
		var exp big.Int
		c.BigInt(&exp)
		var term bn254.G1Affine
		term.ScalarMultiplication(&srs.G1[i], &exp)
		commitment.Add(&commitment, &term)
	}

	return commitment, nil
}

// Proof is a KZG opening proof: the claimed evaluation y = p(z) and the
// commitment to the quotient polynomial q(X) = (p(X)-y)/(X-z).
type Proof struct {
	Y fr.Element
	Q bn254.G1Affine
}

// Open proves p(z) = y for the y it computes, returning y and a proof that
// a verifier can check against Commit(srs, p) without learning p itself.
func Open(srs SRS, p univariate.Polynomial, z fr.Element) (Proof, error) {
	if p.Degree() > srs.Degree() {
		return Proof{}, ErrDegreeTooHigh
	}

	y := p.Evaluate(z)
	quotient := syntheticDivide(p, z, y)

	qCommit, err := Commit(srs, quotient)
	if err != nil {
		return Proof{}, err
	}

	return Proof{Y: y, Q: qCommit}, nil
}

// syntheticDivide computes q(X) = (p(X) - y) / (X - z) by Ruffini's rule.
// p(z) must equal y; the caller is responsible for that invariant (Open
// always passes the polynomial's own evaluation).
func syntheticDivide(p univariate.Polynomial, z, y fr.Element) univariate.Polynomial {
	c := append([]fr.Element(nil), p.Coefficients...)
	if len(c) == 0 {
		return univariate.New(nil)
	}
	c[0].Sub(&c[0], &y)

	n := len(c)
	if n == 1 {
		return univariate.New(nil)
	}
	q := make([]fr.Element, n-1)
	q[n-2] = c[n-1]
	for i := n - 3; i >= 0; i-- {
		var t fr.Element
		t.Mul(&q[i+1], &z)
		q[i].Add(&c[i+1], &t)
	}

	return univariate.New(q)
}

// Verify checks that C = Commit(srs, p) opens to y at z via proof, using a
// single pairing check:
//
//	e(C - [y]_1 + z * proof.Q, G2) * e(-proof.Q, G2Tau) == 1
//
// which holds iff p(X) - y = (X - z) * q(X), i.e. iff y really is p(z).
func Verify(srs SRS, commitment bn254.G1Affine, z fr.Element, proof Proof) error {
	var yBI, zBI big.Int
	proof.Y.BigInt(&yBI)
	z.BigInt(&zBI)

	var yG1, zQ, lhsG1 bn254.G1Affine
	yG1.ScalarMultiplication(&srs.G1[0], &yBI)
	zQ.ScalarMultiplication(&proof.Q, &zBI)

	lhsG1.Sub(&commitment, &yG1)
	lhsG1.Add(&lhsG1, &zQ)

	var negQ bn254.G1Affine
	negQ.Neg(&proof.Q)

	ok, err := bn254.PairingCheck(
		[]bn254.G1Affine{lhsG1, negQ},
		[]bn254.G2Affine{srs.G2Gen, srs.G2Tau},
	)
	if err != nil {
		return err
	}
	if !ok {
		return ErrBadOpening
	}
	return nil
}
