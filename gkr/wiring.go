package gkr

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/obah/zk-research-implementations/polynomial/multilinear"
)

// WiringMLEs returns add_l and mul_l, the multilinear extensions over
// b_l + 2*b_{l+1} variables (b_l = output-index bits at layer l, b_{l+1} =
// index bits at layer l+1) that are 1 iff the gate at output position a in
// layer l is of the respective kind and wires to (b, c) in layer l+1, else 0.
// Variable 0 is the most-significant bit throughout, matching the a||b||c
// concatenation order: a's bits, then b's bits, then c's bits.
func (c Circuit) WiringMLEs(l int) (add, mul multilinear.Polynomial, err error) {
	layer := c.Layers[l]
	bOut := bitsFor(layer.Width())
	bIn := bitsFor(c.width(l + 1))

	size := 1 << (bOut + 2*bIn)
	addEval := make([]fr.Element, size)
	mulEval := make([]fr.Element, size)

	var one fr.Element
	one.SetOne()

	for a, g := range layer.Gates {
		idx := (a << (2 * bIn)) | (g.LeftIdx << bIn) | g.RightIdx
		switch g.Op {
		case Add:
			addEval[idx] = one
		case Mul:
			mulEval[idx] = one
		}
	}

	add, err = multilinear.New(addEval)
	if err != nil {
		return multilinear.Polynomial{}, multilinear.Polynomial{}, err
	}
	mul, err = multilinear.New(mulEval)
	if err != nil {
		return multilinear.Polynomial{}, multilinear.Polynomial{}, err
	}
	return add, mul, nil
}
