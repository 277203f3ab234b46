// Package transcript implements the Fiat-Shamir challenge oracle shared by
// the sum-check, GKR and KZG components: an append-only Keccak-256 state that
// squeezes uniformly-sampled field elements on demand.
package transcript

import (
	"golang.org/x/crypto/sha3"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Transcript is a short-lived, caller-owned Fiat-Shamir state. It is not safe
// for concurrent use; prover and verifier each own one.
type Transcript struct {
	hasher hashState
}

// hashState is the subset of hash.Hash the transcript relies on.
type hashState interface {
	Write(p []byte) (int, error)
	Sum(b []byte) []byte
	Reset()
}

// New returns an empty transcript.
func New() *Transcript {
	return &Transcript{hasher: sha3.NewLegacyKeccak256()}
}

// Append absorbs opaque bytes into the transcript, optionally preceded by a
// caller-chosen label. Prover and verifier must call Append with identical
// arguments, in identical order, for soundness to hold.
func (t *Transcript) Append(label string, preimage []byte) {
	if label != "" {
		t.hasher.Write([]byte(label))
	}
	t.hasher.Write(preimage)
}

// AppendElements appends the canonical big-endian serialization of one or
// more field elements.
func (t *Transcript) AppendElements(label string, elements ...fr.Element) {
	if label != "" {
		t.hasher.Write([]byte(label))
	}
	for _, e := range elements {
		b := e.Bytes()
		t.hasher.Write(b[:])
	}
}

// AppendG1 appends the canonical compressed serialization of one or more G1
// points.
func (t *Transcript) AppendG1(label string, points ...bn254.G1Affine) {
	if label != "" {
		t.hasher.Write([]byte(label))
	}
	for _, p := range points {
		b := p.Bytes()
		t.hasher.Write(b[:])
	}
}

// AppendG2 appends the canonical compressed serialization of one or more G2
// points.
func (t *Transcript) AppendG2(label string, points ...bn254.G2Affine) {
	if label != "" {
		t.hasher.Write([]byte(label))
	}
	for _, p := range points {
		b := p.Bytes()
		t.hasher.Write(b[:])
	}
}

// Challenge squeezes 32 bytes from the current state, reduces them modulo the
// scalar field, and re-absorbs the squeezed output before returning so that
// two consecutive challenges differ even without an intervening Append.
func (t *Transcript) Challenge() fr.Element {
	digest := t.hasher.Sum(nil)
	t.hasher.Reset()
	t.hasher.Write(digest)

	var challenge fr.Element
	challenge.SetBytes(digest)
	return challenge
}

// ChallengeVector draws n independent challenges, in order.
func (t *Transcript) ChallengeVector(n int) []fr.Element {
	out := make([]fr.Element, n)
	for i := range out {
		out[i] = t.Challenge()
	}
	return out
}
