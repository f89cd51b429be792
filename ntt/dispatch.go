package ntt

import (
	"github.com/fhelab/hekl/fastmod"
	"github.com/fhelab/hekl/logging"
	"github.com/fhelab/hekl/simd"
)

// selectTiers picks the forward and inverse kernels for this instance.
// The decision is made once at construction; the transforms then go
// through a monomorphic switch, keeping the butterflies free of dynamic
// dispatch.
func (ntt *NTT) selectTiers() {

	tier := simd.Detect()

	if ntt.n < minVecDegree {
		tier = simd.TierGeneric
	}

	ntt.forwardTier = tier
	if tier == simd.TierAVX512IFMA && ntt.q >= maxModulus52 {
		ntt.forwardTier = simd.TierAVX512DQ
	}

	ntt.inverseTier = tier
	if tier == simd.TierAVX512IFMA && !ntt.inverse52Supported() {
		ntt.inverseTier = simd.TierAVX512DQ
	}

	logging.Logger().Trace().
		Int("N", ntt.n).
		Uint64("q", ntt.q).
		Stringer("forward", ntt.forwardTier).
		Stringer("inverse", ntt.inverseTier).
		Msg("selected NTT kernels")
}

// inverse52Supported verifies that the scaled inverse tables satisfy the
// preconditions of the 52-bit lazy multiplication: every operand below the
// modulus and the whole [0, 4q) butterfly range below 2^52.
func (ntt *NTT) inverse52Supported() bool {

	if ntt.q >= maxModulus52 || ntt.fourQ > fastmod.MaxValue(52) {
		return false
	}

	for _, w := range ntt.rootsBackward[1:] {
		if w >= ntt.q {
			return false
		}
	}

	return ntt.nInv < ntt.q && ntt.nInvOmega < ntt.q
}
