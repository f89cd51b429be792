package ntt

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/fhelab/hekl/fastmod"
	"github.com/fhelab/hekl/simd"
	"github.com/fhelab/hekl/utils/sampling"
)

type testParams struct {
	N int
	Q uint64
}

// testParameters covers the generic-only degrees, the unrolled kernels,
// both 52-bit-compatible and 64-bit-only moduli.
var testParameters = []testParams{
	{2, 5},
	{8, 17},
	{8, 97},
	{16, 97},
	{32, 7681},
	{64, 7681},
	{8, 562949953421729},
	{16, 35184372088961},
	{1024, 68719403009},
	{1024, 1152921504606877697},
}

func testString(opname string, p testParams) string {
	return fmt.Sprintf("%s/N=%d/q=%d", opname, p.N, p.Q)
}

func newTestSampler(tb testing.TB, q uint64) *sampling.UniformSampler {
	prng, err := sampling.NewKeyedPRNG([]byte{'n', 't', 't'})
	require.NoError(tb, err)
	return sampling.NewUniformSampler(prng, q)
}

func TestNewNTTErrors(t *testing.T) {

	for _, tc := range []struct {
		n int
		q uint64
	}{
		{0, 17},
		{1, 17},
		{3, 17},
		{12, 17},
		{8, 0},
		{8, 1},
		{8, 13},          // 13 != 1 mod 16
		{8, (1 << 62) + 1}, // above the modulus bound
	} {
		_, err := NewNTT(tc.n, tc.q)
		require.ErrorIs(t, err, ErrInvalidArguments, "N=%d q=%d", tc.n, tc.q)
	}

	// 2 is not a primitive 16th root of unity mod 17.
	_, err := NewNTTWithRoot(8, 17, 2)
	require.ErrorIs(t, err, ErrInvalidArguments)

	_, err = NewNTTWithRoot(8, 17, 3+17)
	require.ErrorIs(t, err, ErrInvalidArguments)
}

func TestKnownTables(t *testing.T) {

	transform, err := NewNTT(8, 17)
	require.NoError(t, err)

	require.Equal(t, uint64(3), transform.Root())
	require.Equal(t, 8, transform.N())
	require.Equal(t, uint64(17), transform.Modulus())

	require.Equal(t, []uint64{1, 13, 9, 15, 3, 5, 10, 11}, transform.rootsForward)
	require.Equal(t, []uint64{6, 7, 12, 14, 2, 8, 4}, transform.rootsBackward[1:])

	// nInv = 8^-1 mod 17 = 15, nInvOmega = 15 * 4 mod 17.
	require.Equal(t, uint64(15), transform.nInv)
	require.Equal(t, uint64(9), transform.nInvOmega)
}

func TestForwardKnownVectors(t *testing.T) {

	transform, err := NewNTT(8, 17)
	require.NoError(t, err)

	// The NTT of the delta polynomial is the all-one vector.
	x := []uint64{1, 0, 0, 0, 0, 0, 0, 0}
	transform.Forward(x)
	require.Equal(t, []uint64{1, 1, 1, 1, 1, 1, 1, 1}, x)

	// The NTT of X is the bit-reversed sequence of the odd powers of the
	// minimal primitive 16th root of unity mod 17.
	x = []uint64{0, 1, 0, 0, 0, 0, 0, 0}
	transform.Forward(x)
	require.Equal(t, []uint64{3, 14, 5, 12, 10, 7, 11, 6}, x)

	transform, err = NewNTT(8, 97)
	require.NoError(t, err)
	require.Equal(t, uint64(8), transform.Root())

	x = []uint64{1, 2, 3, 4, 5, 6, 7, 8}
	transform.Forward(x)
	require.Equal(t, []uint64{86, 56, 41, 67, 4, 4, 53, 85}, x)
}

func TestForwardAgainstReference(t *testing.T) {

	for _, p := range testParameters {

		t.Run(testString("ForwardAgainstReference", p), func(t *testing.T) {

			transform, err := NewNTT(p.N, p.Q)
			require.NoError(t, err)

			sampler := newTestSampler(t, p.Q)

			for i := 0; i < 8; i++ {

				a := sampler.ReadNew(p.N)

				fast := make([]uint64, p.N)
				copy(fast, a)
				transform.Forward(fast)

				ref := make([]uint64, p.N)
				copy(ref, a)
				transform.ForwardReference(ref)

				if diff := cmp.Diff(ref, fast); diff != "" {
					t.Fatalf("forward mismatch (-reference +fast):\n%s", diff)
				}
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {

	for _, p := range testParameters {

		t.Run(testString("RoundTrip", p), func(t *testing.T) {

			transform, err := NewNTT(p.N, p.Q)
			require.NoError(t, err)

			sampler := newTestSampler(t, p.Q)

			for i := 0; i < 8; i++ {

				a := sampler.ReadNew(p.N)

				x := make([]uint64, p.N)
				copy(x, a)

				transform.Forward(x)
				transform.Inverse(x)

				if diff := cmp.Diff(a, x); diff != "" {
					t.Fatalf("roundtrip mismatch (-input +output):\n%s", diff)
				}
			}
		})
	}
}

func TestLazyRanges(t *testing.T) {

	for _, p := range testParameters {

		t.Run(testString("LazyRanges", p), func(t *testing.T) {

			transform, err := NewNTT(p.N, p.Q)
			require.NoError(t, err)

			sampler := newTestSampler(t, p.Q)
			a := sampler.ReadNew(p.N)

			lazy := make([]uint64, p.N)
			copy(lazy, a)
			transform.ForwardLazy(lazy)

			full := make([]uint64, p.N)
			copy(full, a)
			transform.Forward(full)

			for i := range lazy {
				require.Less(t, lazy[i], transform.fourQ)
				require.Equal(t, full[i], fastmod.ReduceMod(lazy[i], p.Q, 4))
			}

			copy(lazy, full)
			transform.InverseLazy(lazy)

			inv := make([]uint64, p.N)
			copy(inv, full)
			transform.Inverse(inv)

			for i := range lazy {
				require.Less(t, lazy[i], transform.twoQ)
				require.Equal(t, inv[i], fastmod.CRed(lazy[i], p.Q))
			}
		})
	}
}

// TestKernelConsistency checks that the unrolled 64-bit and 52-bit kernels
// are bit-identical to the portable kernel on all inputs in [0, q).
func TestKernelConsistency(t *testing.T) {

	for _, p := range testParameters {

		if p.N < minVecDegree {
			continue
		}

		t.Run(testString("KernelConsistency", p), func(t *testing.T) {

			transform, err := NewNTT(p.N, p.Q)
			require.NoError(t, err)

			sampler := newTestSampler(t, p.Q)

			for i := 0; i < 8; i++ {

				a := sampler.ReadNew(p.N)

				ref := make([]uint64, p.N)
				copy(ref, a)
				transform.forwardLazy64(ref)
				transform.reduce(ref)

				vec := make([]uint64, p.N)
				copy(vec, a)
				transform.forwardLazyVec64(vec)
				transform.reduce(vec)
				require.Equal(t, ref, vec)

				if p.Q < maxModulus52 {
					vec52 := make([]uint64, p.N)
					copy(vec52, a)
					transform.forwardLazyVec52(vec52)
					transform.reduce(vec52)
					require.Equal(t, ref, vec52)
				}

				// Inverse kernels, on a valid bit-reversed-domain input.
				refInv := make([]uint64, p.N)
				copy(refInv, ref)
				transform.inverseLazy64(refInv)
				transform.reduce(refInv)
				require.Equal(t, a, refInv)

				vecInv := make([]uint64, p.N)
				copy(vecInv, ref)
				transform.inverseLazyVec64(vecInv)
				transform.reduce(vecInv)
				require.Equal(t, a, vecInv)

				if p.Q < maxModulus52 {
					vecInv52 := make([]uint64, p.N)
					copy(vecInv52, ref)
					transform.inverseLazyVec52(vecInv52)
					transform.reduce(vecInv52)
					require.Equal(t, a, vecInv52)
				}
			}
		})
	}
}

// TestTierDispatch checks that the public transforms agree across all
// forced kernel tiers.
func TestTierDispatch(t *testing.T) {

	for _, p := range testParameters {

		t.Run(testString("TierDispatch", p), func(t *testing.T) {

			sampler := newTestSampler(t, p.Q)
			a := sampler.ReadNew(p.N)

			var want []uint64

			for _, tier := range []simd.Tier{simd.TierGeneric, simd.TierAVX512DQ, simd.TierAVX512IFMA} {

				restore := simd.Override(tier)

				transform, err := NewNTT(p.N, p.Q)
				require.NoError(t, err)

				x := make([]uint64, p.N)
				copy(x, a)
				transform.Forward(x)

				if want == nil {
					want = append([]uint64(nil), x...)
				} else {
					require.Equal(t, want, x)
				}

				transform.Inverse(x)
				require.Equal(t, a, x)

				restore()
			}
		})
	}
}

func TestInverse52Gate(t *testing.T) {

	restore := simd.Override(simd.TierAVX512IFMA)
	defer restore()

	// 52-bit-compatible modulus: both directions on the IFMA tier.
	transform, err := NewNTT(16, 35184372088961)
	require.NoError(t, err)
	require.Equal(t, simd.TierAVX512IFMA, transform.forwardTier)
	require.Equal(t, simd.TierAVX512IFMA, transform.inverseTier)

	// Modulus above the 52-bit range discipline: both directions fall
	// back to the 64-bit kernels.
	transform, err = NewNTT(1024, 1152921504606877697)
	require.NoError(t, err)
	require.Equal(t, simd.TierAVX512DQ, transform.forwardTier)
	require.Equal(t, simd.TierAVX512DQ, transform.inverseTier)

	// Degrees below the unrolled minimum use the portable kernel.
	transform, err = NewNTT(8, 17)
	require.NoError(t, err)
	require.Equal(t, simd.TierGeneric, transform.forwardTier)
	require.Equal(t, simd.TierGeneric, transform.inverseTier)
}

func TestParametersSerialization(t *testing.T) {

	for _, p := range testParameters {

		t.Run(testString("ParametersSerialization", p), func(t *testing.T) {

			transform, err := NewNTT(p.N, p.Q)
			require.NoError(t, err)

			literal := transform.ParametersLiteral()
			rebuilt, err := NewNTTFromParametersLiteral(literal)
			require.NoError(t, err)
			require.Equal(t, transform, rebuilt)

			data, err := transform.MarshalBinary()
			require.NoError(t, err)
			require.Equal(t, transform.BinarySize(), len(data))

			decoded := new(NTT)
			require.NoError(t, decoded.UnmarshalBinary(data))
			require.Equal(t, transform, decoded)

			// The decoded instance is fully functional.
			sampler := newTestSampler(t, p.Q)
			a := sampler.ReadNew(p.N)
			x := make([]uint64, p.N)
			copy(x, a)
			decoded.Forward(x)
			decoded.Inverse(x)
			require.Equal(t, a, x)
		})
	}
}

func TestTransformPanics(t *testing.T) {

	transform, err := NewNTT(8, 17)
	require.NoError(t, err)

	require.Panics(t, func() { transform.Forward(make([]uint64, 4)) })
	require.Panics(t, func() { transform.Inverse(make([]uint64, 16)) })
	require.Panics(t, func() { transform.ForwardReference(nil) })
}
