// Package utils implements small helpers shared across the library.
package utils

import (
	"crypto/rand"
	"encoding/binary"
	"math/bits"

	"golang.org/x/exp/constraints"
)

// BitReverse64 returns the bit-reverse value of the input value, within a context of 2^bitLen.
func BitReverse64(index uint64, bitLen int) uint64 {
	return bits.Reverse64(index) >> (64 - bitLen)
}

// RandUint64 returns a random value between 0 and 0xFFFFFFFFFFFFFFFF.
func RandUint64() uint64 {
	b := []byte{0, 0, 0, 0, 0, 0, 0, 0}
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return binary.BigEndian.Uint64(b)
}

// Min returns the minimum of x and y.
func Min[T constraints.Ordered](x, y T) T {
	if x <= y {
		return x
	}
	return y
}

// Max returns the maximum of x and y.
func Max[T constraints.Ordered](x, y T) T {
	if x >= y {
		return x
	}
	return y
}

// EqualSlice checks the equality between two slices.
func EqualSlice[T comparable](a, b []T) (v bool) {
	if len(a) != len(b) {
		return false
	}
	v = true
	for i := range a {
		v = v && (a[i] == b[i])
	}
	return
}

// Alias1D returns true if x and y share the same base array.
// Taken from http://golang.org/src/pkg/math/big/nat.go#L340 .
func Alias1D[V any](x, y []V) bool {
	return cap(x) > 0 && cap(y) > 0 && &x[0:cap(x)][cap(x)-1] == &y[0:cap(y)][cap(y)-1]
}
