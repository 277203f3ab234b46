// Package merkle implements a fixed-depth binary Merkle tree over the
// scalar field, hashed with Keccak-256: commit to a leaf vector, prove
// membership of one leaf, and verify that proof against a root. Insert and
// Update mutate a tree in place and recompute only the affected root path,
// mirroring a tree that supports incremental leaf updates.
package merkle

import (
	"errors"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"golang.org/x/crypto/sha3"
)

// ErrInvalidDepth is returned by NewTree for a non-positive depth.
var ErrInvalidDepth = errors.New("merkle: depth must be positive")

// ErrIndexOutOfRange is returned by Update/Prove when a leaf index is
// outside [0, 2^depth).
var ErrIndexOutOfRange = errors.New("merkle: leaf index out of range")

// ErrTreeFull is returned by Insert once every leaf slot has been filled.
var ErrTreeFull = errors.New("merkle: tree is full")

// ErrProofLengthMismatch is returned by Verify when a proof has no siblings.
// Verify takes no tree depth, so a non-empty proof of any length is hashed
// up as given and simply fails to match a root of a different depth.
var ErrProofLengthMismatch = errors.New("merkle: proof length mismatch")

// Tree is a fixed-depth binary Merkle tree stored as one slice per level:
// layers[0] holds the leaves, layers[depth] holds the single root.
type Tree struct {
	depth    int
	layers   [][]fr.Element
	nextLeaf int
}

// NewTree builds an all-zero tree with 2^depth leaves.
func NewTree(depth int) (*Tree, error) {
	if depth <= 0 {
		return nil, ErrInvalidDepth
	}

	layers := make([][]fr.Element, depth+1)
	width := 1 << depth
	for l := 0; l <= depth; l++ {
		layers[l] = make([]fr.Element, width)
		width >>= 1
	}
	for l := 1; l <= depth; l++ {
		h := hashPair(layers[l-1][0], layers[l-1][0])
		for i := range layers[l] {
			layers[l][i] = h
		}
	}

	return &Tree{depth: depth, layers: layers}, nil
}

// hashPair returns Keccak256(left.Bytes() || right.Bytes()) reduced modulo
// the scalar field, matching the transcript package's big-endian encoding.
func hashPair(left, right fr.Element) fr.Element {
	h := sha3.NewLegacyKeccak256()
	lb := left.Bytes()
	rb := right.Bytes()
	h.Write(lb[:])
	h.Write(rb[:])

	var out fr.Element
	out.SetBytes(h.Sum(nil))
	return out
}

// hashLeaf returns Keccak256(data.Bytes()) reduced modulo the scalar field.
func hashLeaf(data fr.Element) fr.Element {
	h := sha3.NewLegacyKeccak256()
	b := data.Bytes()
	h.Write(b[:])

	var out fr.Element
	out.SetBytes(h.Sum(nil))
	return out
}

// Root returns the tree's current root hash.
func (t *Tree) Root() fr.Element {
	return t.layers[t.depth][0]
}

// Depth returns the tree's fixed depth.
func (t *Tree) Depth() int { return t.depth }

// Update replaces the leaf at index with Keccak256(data) and recomputes
// every hash on the path from that leaf to the root.
func (t *Tree) Update(index int, data fr.Element) error {
	if index < 0 || index >= len(t.layers[0]) {
		return ErrIndexOutOfRange
	}
	t.layers[0][index] = hashLeaf(data)
	t.recompute(index)
	return nil
}

// Insert places data at the next unfilled leaf slot, in the order slots
// were allocated, and recomputes the affected root path. Returns
// ErrTreeFull once every leaf has been assigned.
func (t *Tree) Insert(data fr.Element) (int, error) {
	if t.nextLeaf >= len(t.layers[0]) {
		return 0, ErrTreeFull
	}
	index := t.nextLeaf
	t.layers[0][index] = hashLeaf(data)
	t.nextLeaf++
	t.recompute(index)
	return index, nil
}

// recompute re-hashes every node on the path from leaf index up to the root.
func (t *Tree) recompute(index int) {
	idx := index
	for l := 0; l < t.depth; l++ {
		sibling := idx ^ 1
		var left, right fr.Element
		if idx%2 == 0 {
			left, right = t.layers[l][idx], t.layers[l][sibling]
		} else {
			left, right = t.layers[l][sibling], t.layers[l][idx]
		}
		idx /= 2
		t.layers[l+1][idx] = hashPair(left, right)
	}
}

// Proof is a Merkle membership proof: the sibling hash at every level from
// the leaf up to the root, and the leaf's index (which determines each
// sibling's left/right placement).
type Proof struct {
	Siblings []fr.Element
	Index    int
}

// Prove returns a membership proof for the leaf at index: the stored
// siblings along its root path. It takes no leaf data; the pre-image is
// supplied to Verify, which hashes it the same way Update/Insert store
// Keccak256(data) rather than the raw value.
func (t *Tree) Prove(index int) (Proof, error) {
	if index < 0 || index >= len(t.layers[0]) {
		return Proof{}, ErrIndexOutOfRange
	}

	siblings := make([]fr.Element, t.depth)
	idx := index
	for l := 0; l < t.depth; l++ {
		siblings[l] = t.layers[l][idx^1]
		idx /= 2
	}
	return Proof{Siblings: siblings, Index: index}, nil
}

// Verify recomputes the root from leaf data and proof and reports whether
// it matches root.
func Verify(root fr.Element, data fr.Element, proof Proof) (bool, error) {
	if len(proof.Siblings) == 0 {
		return false, ErrProofLengthMismatch
	}

	current := hashLeaf(data)
	idx := proof.Index
	for _, sibling := range proof.Siblings {
		if idx%2 == 0 {
			current = hashPair(current, sibling)
		} else {
			current = hashPair(sibling, current)
		}
		idx /= 2
	}

	return current.Equal(&root), nil
}
