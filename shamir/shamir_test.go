package shamir_test

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"

	"github.com/obah/zk-research-implementations/shamir"
)

func elem(v int64) fr.Element {
	var e fr.Element
	e.SetInt64(v)
	return e
}

// TestThresholdReconstruction checks a (3,5) sharing: several 3-share
// subsets of the 5 shares each reconstruct the secret. The below-threshold
// case is covered by TestBelowThresholdDoesNotDetermineSecret.
func TestThresholdReconstruction(t *testing.T) {
	secret := elem(1234)
	shares, err := shamir.Split(secret, 5, 3, nil)
	require.NoError(t, err)
	require.Len(t, shares, 5)

	for _, subset := range [][]int{{0, 1, 2}, {1, 2, 3}, {0, 2, 4}, {2, 3, 4}} {
		got, err := shamir.Reconstruct(pick(shares, subset))
		require.NoError(t, err)
		require.True(t, got.Equal(&secret))
	}
}

func TestBelowThresholdDoesNotDetermineSecret(t *testing.T) {
	secret := elem(777)
	shares, err := shamir.Split(secret, 5, 3, nil)
	require.NoError(t, err)

	got, err := shamir.Reconstruct(pick(shares, []int{0, 1}))
	require.NoError(t, err)
	require.False(t, got.Equal(&secret))
}

func TestReconstructRejectsEmptyShareSet(t *testing.T) {
	_, err := shamir.Reconstruct(nil)
	require.ErrorIs(t, err, shamir.ErrNotEnoughShares)
}

func TestSplitRejectsInvalidThreshold(t *testing.T) {
	_, err := shamir.Split(elem(1), 5, 6, nil)
	require.ErrorIs(t, err, shamir.ErrInvalidThreshold)

	_, err = shamir.Split(elem(1), 5, 0, nil)
	require.ErrorIs(t, err, shamir.ErrInvalidThreshold)
}

func pick(shares []shamir.Share, indices []int) []shamir.Share {
	out := make([]shamir.Share, len(indices))
	for i, idx := range indices {
		out[i] = shares[idx]
	}
	return out
}
