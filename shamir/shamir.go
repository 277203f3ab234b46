// Package shamir implements (t, n) Shamir secret sharing over the scalar
// field: the secret is the constant term of a random degree-(t-1)
// polynomial, shares are (x, p(x)) samples at random nonzero x, and any t
// shares reconstruct the secret via Lagrange interpolation at x=0.
package shamir

import (
	"errors"
	"io"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/obah/zk-research-implementations/polynomial/univariate"
)

// ErrInvalidThreshold is returned when threshold is not in [1, n].
var ErrInvalidThreshold = errors.New("shamir: threshold must be between 1 and the share count")

// ErrNotEnoughShares is returned by Reconstruct when the share set is
// empty. Reconstruct does not know the threshold, so a non-empty set with
// fewer shares than the threshold is not rejected (see Reconstruct).
var ErrNotEnoughShares = errors.New("shamir: not enough shares to uniquely determine the polynomial")

// Share is one participant's (x, p(x)) sample of the sharing polynomial.
type Share struct {
	X fr.Element
	Y fr.Element
}

// Split samples a random degree-(threshold-1) polynomial with secret as its
// constant term, and returns n shares at distinct random nonzero
// x-coordinates. Any threshold of the n shares reconstruct secret; fewer
// than threshold leave it information-theoretically undetermined.
func Split(secret fr.Element, n, threshold int, rng io.Reader) ([]Share, error) {
	if threshold < 1 || threshold > n {
		return nil, ErrInvalidThreshold
	}

	coeffs := make([]fr.Element, threshold)
	coeffs[0] = secret
	for i := 1; i < threshold; i++ {
		c, err := randomNonzero(rng)
		if err != nil {
			return nil, err
		}
		coeffs[i] = c
	}
	poly := univariate.New(coeffs)

	seen := make(map[fr.Element]struct{}, n)
	shares := make([]Share, n)
	for i := 0; i < n; i++ {
		x, err := randomNonzero(rng)
		if err != nil {
			return nil, err
		}
		for {
			if _, dup := seen[x]; !dup {
				break
			}
			x, err = randomNonzero(rng)
			if err != nil {
				return nil, err
			}
		}
		seen[x] = struct{}{}
		shares[i] = Share{X: x, Y: poly.Evaluate(x)}
	}

	return shares, nil
}

// Reconstruct recovers the secret (the sharing polynomial's value at x=0)
// from a set of shares via Lagrange interpolation. ErrNotEnoughShares is
// only returned for an empty set — callers that know the original threshold
// should pass at least that many shares; with fewer, Reconstruct still
// returns a value, but it is the secret of some degree-(len(shares)-1)
// polynomial consistent with the given shares, not necessarily the one
// actually used to split the secret.
func Reconstruct(shares []Share) (fr.Element, error) {
	if len(shares) == 0 {
		return fr.Element{}, ErrNotEnoughShares
	}

	points := make([]univariate.Point, len(shares))
	for i, s := range shares {
		points[i] = univariate.Point{X: s.X, Y: s.Y}
	}

	poly, err := univariate.Interpolate(points)
	if err != nil {
		return fr.Element{}, err
	}

	var zero fr.Element
	return poly.Evaluate(zero), nil
}

func randomNonzero(rng io.Reader) (fr.Element, error) {
	for {
		var e fr.Element
		var err error
		if rng == nil {
			_, err = e.SetRandom()
		} else {
			buf := make([]byte, fr.Bytes)
			if _, rerr := io.ReadFull(rng, buf); rerr != nil {
				return fr.Element{}, rerr
			}
			e.SetBytes(buf)
		}
		if err != nil {
			return fr.Element{}, err
		}
		if !e.IsZero() {
			return e, nil
		}
	}
}
