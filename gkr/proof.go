package gkr

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/obah/zk-research-implementations/sumcheck"
)

// LayerProof is one layer's sum-check transcript plus the two claimed
// sub-layer evaluations the prover opens at the sum-check's output point.
type LayerProof struct {
	SumCheck sumcheck.Proof
	U        fr.Element // W_{l+1}(b*)
	V        fr.Element // W_{l+1}(c*)
}

// Proof is a full GKR proof: the output claim and one LayerProof per circuit
// layer, from the output down to the input.
type Proof struct {
	OutputClaim fr.Element
	Layers      []LayerProof
}
