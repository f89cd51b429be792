// Package eltwise implements element-wise modular arithmetic kernels on
// coefficient slices.
package eltwise

import (
	"fmt"

	"github.com/fhelab/hekl/fastmod"
	"github.com/fhelab/hekl/logging"
	"github.com/fhelab/hekl/simd"
)

// maxModulus52 bounds the modulus of the 52-bit kernels.
const maxModulus52 = 1 << 50

// FMAMod evaluates out[i] = (arg1[i]*arg2 + arg3[i]) mod q, with arg2 a
// scalar. arg3 may be nil, in which case out[i] = (arg1[i]*arg2) mod q.
// out may alias arg1 and/or arg3: every output element depends only on
// the same index of the inputs. Requires q != 0, arg2 < q and all input
// coefficients in [0, q).
func FMAMod(arg1 []uint64, arg2 uint64, arg3, out []uint64, q uint64) {

	if q == 0 {
		// Sanity check
		panic(fmt.Errorf("modulus is zero"))
	}

	if arg2 >= q {
		// Sanity check
		panic(fmt.Errorf("scalar %d exceeds modulus %d", arg2, q))
	}

	if len(out) != len(arg1) || (arg3 != nil && len(arg3) != len(arg1)) {
		// Sanity check
		panic(fmt.Errorf("invalid inputs: len(arg1) = %d, len(arg3) = %d, len(out) = %d", len(arg1), len(arg3), len(out)))
	}

	tier := simd.Detect()
	if len(arg1)%8 != 0 || len(arg1) == 0 {
		tier = simd.TierGeneric
	}
	if tier == simd.TierAVX512IFMA && q >= maxModulus52 {
		tier = simd.TierAVX512DQ
	}

	logging.Logger().Trace().
		Int("n", len(arg1)).
		Uint64("q", q).
		Stringer("kernel", tier).
		Msg("selected FMA kernel")

	switch tier {
	case simd.TierAVX512IFMA:
		precon := mustPrecon(arg2, 52, q)
		if arg3 != nil {
			fmaModVec52(arg1, arg2, arg3, out, precon, q)
		} else {
			mulModScalarVec52(arg1, arg2, out, precon, q)
		}
	case simd.TierAVX512DQ:
		precon := mustPrecon(arg2, 64, q)
		if arg3 != nil {
			fmaModVec64(arg1, arg2, arg3, out, precon, q)
		} else {
			mulModScalarVec64(arg1, arg2, out, precon, q)
		}
	default:
		fmaModGeneric(arg1, arg2, arg3, out, q)
	}
}

// MulModScalar evaluates out[i] = (arg1[i]*arg2) mod q, with arg2 a
// scalar. Same contract as FMAMod with a nil arg3.
func MulModScalar(arg1 []uint64, arg2 uint64, out []uint64, q uint64) {
	FMAMod(arg1, arg2, nil, out, q)
}

func mustPrecon(operand uint64, shift int, q uint64) uint64 {
	f, err := fastmod.NewFactor(operand, shift, q)
	if err != nil {
		// Sanity check: the operand was validated against the modulus.
		panic(err)
	}
	return f.BarrettFactor
}

func fmaModGeneric(arg1 []uint64, arg2 uint64, arg3, out []uint64, q uint64) {

	precon := mustPrecon(arg2, 64, q)

	if arg3 != nil {
		for i := range arg1 {
			out[i] = fastmod.AddMod(fastmod.MultiplyModPrecon(arg1[i], arg2, precon, q), arg3[i], q)
		}
		return
	}

	for i := range arg1 {
		out[i] = fastmod.MultiplyModPrecon(arg1[i], arg2, precon, q)
	}
}
