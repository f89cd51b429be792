// Package fastmod implements modular arithmetic over prime fields of up to
// 62-bit modulus, with Barrett-style precomputed multiplication and the
// lazy reductions used by the transform kernels.
package fastmod

import (
	"errors"
	"fmt"
	"math/bits"
)

// ErrNoInverse is returned when the modular inverse does not exist.
var ErrNoInverse = errors.New("input is not coprime with the modulus")

// AddMod returns (x+y) mod q. Inputs are assumed to be smaller than q.
func AddMod(x, y, q uint64) uint64 {
	return CRed(x+y, q)
}

// SubMod returns (x-y) mod q. Inputs are assumed to be smaller than q.
func SubMod(x, y, q uint64) uint64 {
	return CRed(x+q-y, q)
}

// MultiplyMod returns (x*y) mod q. Inputs are assumed to be smaller than q.
func MultiplyMod(x, y, q uint64) (r uint64) {
	hi, lo := bits.Mul64(x, y)
	_, r = bits.Div64(hi, lo, q)
	return
}

// MultiplyModPrecon returns (x*y) mod q using the precomputed Barrett
// factor yPrecon = floor((y<<64)/q). Inputs are assumed to be smaller
// than q.
func MultiplyModPrecon(x, y, yPrecon, q uint64) uint64 {
	t := MulHi64(x, yPrecon)
	return CRed(x*y-t*q, q)
}

// BarrettReduce64 returns x mod q, with qBarr = floor(2^64/q).
func BarrettReduce64(x, q, qBarr uint64) uint64 {
	t := MulHi64(x, qBarr)
	return CRed(x-t*q, q)
}

// CRed returns a mod q, where a is required to be in the range [0, 2q-1].
func CRed(a, q uint64) uint64 {
	if a >= q {
		return a - q
	}
	return a
}

// ReduceMod returns x mod q, assuming x < inputModFactor*q, via chained
// conditional subtractions. inputModFactor must be 1, 2, 4 or 8.
func ReduceMod(x, q uint64, inputModFactor int) uint64 {
	switch inputModFactor {
	case 1:
		return x
	case 2:
		return CRed(x, q)
	case 4:
		if x >= q<<1 {
			x -= q << 1
		}
		return CRed(x, q)
	case 8:
		if x >= q<<2 {
			x -= q << 2
		}
		if x >= q<<1 {
			x -= q << 1
		}
		return CRed(x, q)
	default:
		// Sanity check
		panic(fmt.Errorf("invalid inputModFactor: must be 1, 2, 4 or 8 but is %d", inputModFactor))
	}
}

// MultiplyModLazy64 returns a value congruent to x*y mod q in the range
// [0, 2q-1], using the precomputed factor yPrecon = floor((y<<64)/q).
// Requires y < q and q < 2^63.
func MultiplyModLazy64(x, y, yPrecon, q uint64) uint64 {
	t := MulHi64(x, yPrecon)
	return x*y - t*q
}

// MultiplyModLazy52 returns a value congruent to x*y mod q in the range
// [0, 2q-1], using the precomputed factor yPrecon = floor((y<<52)/q).
// Requires y < q, x <= 2^52-1 and q <= 2^52-1.
func MultiplyModLazy52(x, y, yPrecon, q uint64) uint64 {
	t := MulHi52(x, yPrecon)
	return x*y - t*q
}

// PowMod performs the modular exponentiation base^exp mod q.
func PowMod(base, exp, q uint64) (r uint64) {
	if q == 1 {
		return 0
	}
	base %= q
	r = 1
	for i := exp; i > 0; i >>= 1 {
		if i&1 == 1 {
			r = MultiplyMod(r, base, q)
		}
		base = MultiplyMod(base, base, q)
	}
	return
}

// InverseMod returns x^-1 mod q, computed with the extended Euclidean
// algorithm. Returns ErrNoInverse if gcd(x, q) != 1.
func InverseMod(x, q uint64) (uint64, error) {

	if q == 0 {
		return 0, fmt.Errorf("modulus is zero: %w", ErrNoInverse)
	}

	x %= q

	var t, newT int64 = 0, 1
	var r, newR = q, x

	for newR != 0 {
		quotient := r / newR
		t, newT = newT, t-int64(quotient)*newT
		r, newR = newR, r-quotient*newR
	}

	if r > 1 {
		return 0, fmt.Errorf("no inverse of %d mod %d: %w", x, q, ErrNoInverse)
	}

	if t < 0 {
		t += int64(q)
	}

	return uint64(t), nil
}
