package merkle_test

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"

	"github.com/obah/zk-research-implementations/merkle"
)

func elem(v int64) fr.Element {
	var e fr.Element
	e.SetInt64(v)
	return e
}

func TestInsertThenProveAndVerify(t *testing.T) {
	tree, err := merkle.NewTree(3)
	require.NoError(t, err)

	index, err := tree.Insert(elem(10))
	require.NoError(t, err)
	require.Equal(t, 0, index)

	proof, err := tree.Prove(index)
	require.NoError(t, err)

	ok, err := merkle.Verify(tree.Root(), elem(10), proof)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestUpdateChangesRootAndInvalidatesOldProof(t *testing.T) {
	tree, err := merkle.NewTree(2)
	require.NoError(t, err)

	_, err = tree.Insert(elem(1))
	require.NoError(t, err)
	index, err := tree.Insert(elem(2))
	require.NoError(t, err)

	proof, err := tree.Prove(index)
	require.NoError(t, err)
	oldRoot := tree.Root()

	require.NoError(t, tree.Update(index, elem(99)))
	require.NotEqual(t, oldRoot, tree.Root())

	ok, err := merkle.Verify(tree.Root(), elem(2), proof)
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = merkle.Verify(tree.Root(), elem(99), proof)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestVerifyRejectsWrongLeafData(t *testing.T) {
	tree, err := merkle.NewTree(2)
	require.NoError(t, err)

	index, err := tree.Insert(elem(5))
	require.NoError(t, err)
	proof, err := tree.Prove(index)
	require.NoError(t, err)

	ok, err := merkle.Verify(tree.Root(), elem(6), proof)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestInsertFailsOncePastCapacity(t *testing.T) {
	tree, err := merkle.NewTree(1)
	require.NoError(t, err)

	_, err = tree.Insert(elem(1))
	require.NoError(t, err)
	_, err = tree.Insert(elem(2))
	require.NoError(t, err)

	_, err = tree.Insert(elem(3))
	require.ErrorIs(t, err, merkle.ErrTreeFull)
}
