// Package ntt implements the negacyclic Number-Theoretic Transform over
// prime fields of up to 62-bit modulus, with per-modulus precomputed
// root-of-unity tables and lazy Harvey butterflies.
package ntt

import (
	"errors"
	"fmt"

	"github.com/fhelab/hekl/fastmod"
	"github.com/fhelab/hekl/simd"
	"github.com/fhelab/hekl/utils"
	"github.com/fhelab/hekl/utils/sampling"
)

// ErrInvalidArguments is returned when non transform-enabling parameters
// are provided.
var ErrInvalidArguments = errors.New("invalid arguments")

// MaxModulusBits is the largest supported modulus bit-size. The lazy
// butterfly range [0, 4q) must fit on 64 bits.
const MaxModulusBits = 62

// maxModulus52 bounds the modulus of the 52-bit kernels: inputs live in
// [0, 4q), which must fit the 52-bit lazy multiplication range.
const maxModulus52 = 1 << 50

// minVecDegree is the smallest transform length handled by the unrolled
// kernels.
const minVecDegree = 16

// NTT stores the precomputation for the negacyclic NTT of length N in the
// ring Z[X]/(X^N+1) mod q. An NTT instance is immutable after construction
// and can be shared across threads for concurrent transforms of disjoint
// buffers.
type NTT struct {
	n    int
	logN int

	q, twoQ, fourQ uint64

	omega    uint64
	omegaInv uint64

	// 2N-th root powers in bit-reversed order; index 0 is unused.
	rootsForward    []uint64
	preconForward64 []uint64
	preconForward52 []uint64 // nil unless q < 2^50

	// Inverse root powers in the order consumed by the inverse
	// butterfly; index 0 is unused.
	rootsBackward    []uint64
	preconBackward64 []uint64
	preconBackward52 []uint64 // nil unless q < 2^50

	// Last inverse level fused with the 1/N normalization.
	nInv              uint64
	nInvOmega         uint64
	preconNInv64      uint64
	preconNInvOmega64 uint64
	preconNInv52      uint64
	preconNInvOmega52 uint64

	forwardTier simd.Tier
	inverseTier simd.Tier
}

// NewNTT creates the NTT precomputation for a transform of length n mod q,
// using the minimal primitive 2n-th root of unity as twiddle base so that
// outputs are reproducible across implementations. n must be a power of
// two larger than 1, q a prime smaller than 2^62 with q = 1 mod 2n.
func NewNTT(n int, q uint64) (*NTT, error) {

	if err := checkParameters(n, q); err != nil {
		return nil, err
	}

	prng, err := sampling.NewPRNG()
	if err != nil {
		return nil, err
	}

	omega, err := fastmod.MinimalPrimitiveRoot(2*uint64(n), q, prng)
	if err != nil {
		return nil, fmt.Errorf("no 2N-th root of unity mod %d: %w", q, err)
	}

	return newNTT(n, q, omega)
}

// NewNTTWithRoot creates the NTT precomputation for a transform of length
// n mod q with the caller-provided primitive 2n-th root of unity omega.
func NewNTTWithRoot(n int, q, omega uint64) (*NTT, error) {

	if err := checkParameters(n, q); err != nil {
		return nil, err
	}

	if omega >= q || !fastmod.IsPrimitiveRoot(omega, 2*uint64(n), q) {
		return nil, fmt.Errorf("%d is not a primitive %d-th root of unity mod %d: %w", omega, 2*n, q, ErrInvalidArguments)
	}

	return newNTT(n, q, omega)
}

func checkParameters(n int, q uint64) error {

	if n < 2 || !fastmod.IsPowerOfTwo(uint64(n)) {
		return fmt.Errorf("transform length must be a power of two larger than 1 but is %d: %w", n, ErrInvalidArguments)
	}

	if q < 2 || q >= 1<<MaxModulusBits {
		return fmt.Errorf("modulus must be in [2, 2^%d) but is %d: %w", MaxModulusBits, q, ErrInvalidArguments)
	}

	if q&(2*uint64(n)-1) != 1 {
		return fmt.Errorf("modulus %d != 1 mod 2N = %d: %w", q, 2*n, ErrInvalidArguments)
	}

	return nil
}

func newNTT(n int, q, omega uint64) (ntt *NTT, err error) {

	ntt = &NTT{
		n:     n,
		logN:  fastmod.MSB(uint64(n)),
		q:     q,
		twoQ:  q << 1,
		fourQ: q << 2,
		omega: omega,
	}

	if ntt.omegaInv, err = fastmod.InverseMod(omega, q); err != nil {
		// Sanity check: a root of unity is always invertible.
		return nil, err
	}

	if err = ntt.genTables(); err != nil {
		return nil, err
	}

	ntt.selectTiers()

	return ntt, nil
}

// genTables fills the forward and backward root power tables and their
// Barrett precomputations.
func (ntt *NTT) genTables() error {

	n, q := ntt.n, ntt.q

	omegaFactor, err := fastmod.NewFactor(ntt.omega, 64, q)
	if err != nil {
		return err
	}

	omegaInvFactor, err := fastmod.NewFactor(ntt.omegaInv, 64, q)
	if err != nil {
		return err
	}

	ntt.rootsForward = make([]uint64, n)
	backward := make([]uint64, n)

	// rootsForward[bitrev(j)] = omega^j; same for the inverse root.
	ntt.rootsForward[0] = 1
	backward[0] = 1
	for j := 1; j < n; j++ {
		prev := utils.BitReverse64(uint64(j-1), ntt.logN)
		next := utils.BitReverse64(uint64(j), ntt.logN)
		ntt.rootsForward[next] = fastmod.MultiplyModPrecon(ntt.rootsForward[prev], ntt.omega, omegaFactor.BarrettFactor, q)
		backward[next] = fastmod.MultiplyModPrecon(backward[prev], ntt.omegaInv, omegaInvFactor.BarrettFactor, q)
	}

	// Reorders the inverse roots to the sequential order consumed by the
	// Gentleman-Sande levels, from N/2 blocks down to the final level.
	ntt.rootsBackward = make([]uint64, n)
	idx := 1
	for m := n >> 1; m >= 1; m >>= 1 {
		for i := 0; i < m; i++ {
			ntt.rootsBackward[idx] = backward[m+i]
			idx++
		}
	}

	if ntt.nInv, err = fastmod.InverseMod(uint64(n), q); err != nil {
		return err
	}
	ntt.nInvOmega = fastmod.MultiplyMod(ntt.nInv, ntt.rootsBackward[n-1], q)

	if ntt.preconForward64, err = preconTable(ntt.rootsForward, 64, q); err != nil {
		return err
	}
	if ntt.preconBackward64, err = preconTable(ntt.rootsBackward, 64, q); err != nil {
		return err
	}
	if ntt.preconNInv64, err = precon(ntt.nInv, 64, q); err != nil {
		return err
	}
	if ntt.preconNInvOmega64, err = precon(ntt.nInvOmega, 64, q); err != nil {
		return err
	}

	if q < maxModulus52 {
		if ntt.preconForward52, err = preconTable(ntt.rootsForward, 52, q); err != nil {
			return err
		}
		if ntt.preconBackward52, err = preconTable(ntt.rootsBackward, 52, q); err != nil {
			return err
		}
		if ntt.preconNInv52, err = precon(ntt.nInv, 52, q); err != nil {
			return err
		}
		if ntt.preconNInvOmega52, err = precon(ntt.nInvOmega, 52, q); err != nil {
			return err
		}
	}

	return nil
}

func precon(operand uint64, shift int, q uint64) (uint64, error) {
	f, err := fastmod.NewFactor(operand, shift, q)
	if err != nil {
		return 0, err
	}
	return f.BarrettFactor, nil
}

func preconTable(operands []uint64, shift int, q uint64) (table []uint64, err error) {
	table = make([]uint64, len(operands))
	for i, op := range operands {
		if table[i], err = precon(op, shift, q); err != nil {
			return nil, err
		}
	}
	return
}

// N returns the transform length.
func (ntt *NTT) N() int {
	return ntt.n
}

// Modulus returns the modulus q.
func (ntt *NTT) Modulus() uint64 {
	return ntt.q
}

// Root returns the primitive 2N-th root of unity underlying the tables.
func (ntt *NTT) Root() uint64 {
	return ntt.omega
}

// Forward evaluates in place the forward negacyclic NTT of x, mapping
// natural order to bit-reversed order. Input and output coefficients are
// in [0, q).
func (ntt *NTT) Forward(x []uint64) {
	ntt.ForwardLazy(x)
	ntt.reduce(x)
}

// ForwardLazy evaluates in place the forward negacyclic NTT of x with
// output values in [0, 4q).
func (ntt *NTT) ForwardLazy(x []uint64) {

	ntt.checkLen(x)

	switch ntt.forwardTier {
	case simd.TierAVX512IFMA:
		ntt.forwardLazyVec52(x)
	case simd.TierAVX512DQ:
		ntt.forwardLazyVec64(x)
	default:
		ntt.forwardLazy64(x)
	}
}

// Inverse evaluates in place the inverse negacyclic NTT of x, mapping
// bit-reversed order to natural order and folding the 1/N normalization
// into the last level. Input and output coefficients are in [0, q).
func (ntt *NTT) Inverse(x []uint64) {
	ntt.InverseLazy(x)
	ntt.reduce(x)
}

// InverseLazy evaluates in place the inverse negacyclic NTT of x with
// output values in [0, 2q).
func (ntt *NTT) InverseLazy(x []uint64) {

	ntt.checkLen(x)

	switch ntt.inverseTier {
	case simd.TierAVX512IFMA:
		ntt.inverseLazyVec52(x)
	case simd.TierAVX512DQ:
		ntt.inverseLazyVec64(x)
	default:
		ntt.inverseLazy64(x)
	}
}

// ForwardReference evaluates the forward transform without any Barrett
// precomputation, using only plain modular arithmetic. It serves as a
// cross-validation oracle for the fast kernels.
func (ntt *NTT) ForwardReference(x []uint64) {

	ntt.checkLen(x)

	n, q := ntt.n, ntt.q

	t := n >> 1
	for m := 1; m < n; m <<= 1 {
		j1 := 0
		for i := 0; i < m; i++ {
			w := ntt.rootsForward[m+i]
			for j := j1; j < j1+t; j++ {
				u := x[j]
				v := fastmod.MultiplyMod(x[j+t], w, q)
				x[j] = fastmod.AddMod(u, v, q)
				x[j+t] = fastmod.SubMod(u, v, q)
			}
			j1 += t << 1
		}
		t >>= 1
	}
}

// reduce brings every coefficient from [0, 4q) to [0, q) with a two-stage
// conditional subtraction.
func (ntt *NTT) reduce(x []uint64) {

	q, twoQ := ntt.q, ntt.twoQ

	for i := range x {
		if x[i] >= twoQ {
			x[i] -= twoQ
		}
		if x[i] >= q {
			x[i] -= q
		}
		assertLess(x[i], q)
	}
}

func (ntt *NTT) checkLen(x []uint64) {
	if len(x) != ntt.n {
		// Sanity check
		panic(fmt.Errorf("invalid input: len(x) = %d != N = %d", len(x), ntt.n))
	}
}
