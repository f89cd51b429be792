package fastmod

import (
	"errors"
	"fmt"
	"math/bits"

	"github.com/fhelab/hekl/utils/sampling"
)

// ErrNotEnoughPrimes is returned when the requested number of NTT-friendly
// primes cannot be found in the target bit-size band.
var ErrNotEnoughPrimes = errors.New("not enough primes in the target range")

// ErrNoPrimitiveRoot is returned when the random search for a primitive
// root of unity exhausts its trial budget.
var ErrNoPrimitiveRoot = errors.New("no primitive root found")

// millerRabinWitnesses is sufficient for a deterministic primality test on
// all 64-bit inputs.
var millerRabinWitnesses = [...]uint64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37}

// IsPrime returns whether n is prime, using the Miller-Rabin test with a
// fixed witness set that is deterministic for 64-bit inputs.
func IsPrime(n uint64) bool {

	if n < 2 {
		return false
	}

	for _, p := range millerRabinWitnesses {
		if n%p == 0 {
			return n == p
		}
	}

	d := n - 1
	var r int
	for d&1 == 0 {
		d >>= 1
		r++
	}

	for _, a := range millerRabinWitnesses {

		x := PowMod(a, d, n)
		if x == 1 || x == n-1 {
			continue
		}

		composite := true
		for i := 0; i < r-1; i++ {
			x = MultiplyMod(x, x, n)
			if x == n-1 {
				composite = false
				break
			}
		}

		if composite {
			return false
		}
	}

	return true
}

// GeneratePrimes returns count distinct primes of the given bit-size, each
// satisfying p = 1 mod 2*nttSize. When preferSmall is true the scan starts
// at 2^bits and moves upward, otherwise it starts at 2^(bits+1) and moves
// downward. The scan stays within the [2^bits, 2^(bits+1)) band and
// returns ErrNotEnoughPrimes on exhaustion.
func GeneratePrimes(count, bitSize int, preferSmall bool, nttSize int) (primes []uint64, err error) {

	if count < 1 {
		return nil, fmt.Errorf("prime count must be positive but is %d", count)
	}

	if nttSize < 1 || !IsPowerOfTwo(uint64(nttSize)) {
		return nil, fmt.Errorf("nttSize must be a positive power of two but is %d", nttSize)
	}

	if bitSize > 61 {
		return nil, fmt.Errorf("bitSize must be at most 61 but is %d", bitSize)
	}

	step := uint64(2 * nttSize)

	if step >= 1<<uint64(bitSize) {
		return nil, fmt.Errorf("2*nttSize = %d does not fit below 2^%d", step, bitSize)
	}

	lower := uint64(1) << uint64(bitSize)
	upper := lower << 1

	// 2*nttSize divides 2^bitSize, so both band ends are aligned on
	// candidates = 1 mod 2*nttSize.
	var candidate uint64
	if preferSmall {
		candidate = lower + 1
	} else {
		candidate = upper + 1 - step
	}

	primes = make([]uint64, 0, count)

	for candidate >= lower && candidate < upper {

		if IsPrime(candidate) {
			primes = append(primes, candidate)
			if len(primes) == count {
				return primes, nil
			}
		}

		if preferSmall {
			candidate += step
		} else {
			candidate -= step
		}
	}

	return nil, fmt.Errorf("found %d/%d primes for bitSize=%d and nttSize=%d: %w", len(primes), count, bitSize, nttSize, ErrNotEnoughPrimes)
}

// IsPrimitiveRoot returns whether root is a primitive degree-th root of
// unity mod q, i.e. root^(degree/2) = -1 mod q. degree must be a power of
// two.
func IsPrimitiveRoot(root, degree, q uint64) bool {

	if !IsPowerOfTwo(degree) {
		// Sanity check
		panic(fmt.Errorf("degree must be a power of two but is %d", degree))
	}

	if degree == 1 {
		return root%q == 1
	}

	return PowMod(root, degree>>1, q) == q-1
}

// primitiveRootTrials bounds the random search of GeneratePrimitiveRoot.
// For a prime q with degree | q-1, each trial succeeds with probability
// 1/2, so the budget is only ever exhausted on invalid inputs.
const primitiveRootTrials = 1024

// GeneratePrimitiveRoot returns a primitive degree-th root of unity mod q,
// found by random trials of g = x^((q-1)/degree). degree must be a power
// of two dividing q-1.
func GeneratePrimitiveRoot(degree, q uint64, prng sampling.PRNG) (uint64, error) {

	if !IsPowerOfTwo(degree) || degree < 2 {
		return 0, fmt.Errorf("degree must be a power of two larger than 1 but is %d", degree)
	}

	if q < 3 || (q-1)%degree != 0 {
		return 0, fmt.Errorf("degree %d does not divide %d-1: %w", degree, q, ErrNoPrimitiveRoot)
	}

	mask := (uint64(1) << uint64(bits.Len64(q-1))) - 1

	for i := 0; i < primitiveRootTrials; i++ {

		g := PowMod(sampling.RandUniform(prng, q, mask), (q-1)/degree, q)

		if IsPrimitiveRoot(g, degree, q) {
			return g, nil
		}
	}

	return 0, fmt.Errorf("exhausted %d trials for degree %d mod %d: %w", primitiveRootTrials, degree, q, ErrNoPrimitiveRoot)
}

// MinimalPrimitiveRoot returns the smallest primitive degree-th root of
// unity mod q. The primitive degree-th roots are exactly the odd powers of
// any one of them, so the minimum does not depend on the root returned by
// the random search.
func MinimalPrimitiveRoot(degree, q uint64, prng sampling.PRNG) (uint64, error) {

	g, err := GeneratePrimitiveRoot(degree, q, prng)
	if err != nil {
		return 0, err
	}

	gSq := MultiplyMod(g, g, q)

	best := g
	cur := g
	for i := uint64(1); i < degree>>1; i++ {
		cur = MultiplyMod(cur, gSq, q)
		if cur < best {
			best = cur
		}
	}

	return best, nil
}
