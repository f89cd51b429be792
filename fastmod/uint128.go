package fastmod

import (
	"math/bits"
)

// MulHi64 returns the high 64 bits of the 128-bit product x*y.
func MulHi64(x, y uint64) (r uint64) {
	r, _ = bits.Mul64(x, y)
	return
}

// MulHi52 returns the 128-bit product x*y logically shifted right by 52.
func MulHi52(x, y uint64) uint64 {
	hi, lo := bits.Mul64(x, y)
	return (hi << 12) | (lo >> 52)
}

// MulHi32 returns the 128-bit product x*y logically shifted right by 32.
func MulHi32(x, y uint64) uint64 {
	hi, lo := bits.Mul64(x, y)
	return (hi << 32) | (lo >> 32)
}

// DivUint128Lo returns the low 64 bits of (hi:lo)/d.
// d must be non-zero.
func DivUint128Lo(hi, lo, d uint64) (r uint64) {
	// The quotient contribution of (hi/d)<<64 vanishes modulo 2^64.
	r, _ = bits.Div64(hi%d, lo, d)
	return
}

// ReverseBits reverses the lowest width bits of x, zeroing all higher bits.
func ReverseBits(x uint64, width int) uint64 {
	return bits.Reverse64(x) >> (64 - width)
}

// MSB returns floor(log2(x)). The result is undefined for x = 0.
func MSB(x uint64) int {
	return bits.Len64(x) - 1
}

// AddUint64 returns a+b mod 2^64 along with the carry bit.
func AddUint64(a, b uint64) (sum, carry uint64) {
	return bits.Add64(a, b, 0)
}

// IsPowerOfTwo returns whether x is a power of two.
func IsPowerOfTwo(x uint64) bool {
	return x != 0 && x&(x-1) == 0
}

// MaxValue returns the maximum value representable on b bits, for b in [0, 64].
func MaxValue(b int) uint64 {
	if b >= 64 {
		return 0xFFFFFFFFFFFFFFFF
	}
	return (1 << uint64(b)) - 1
}
