package eltwise

import (
	"unsafe"

	"github.com/fhelab/hekl/fastmod"
)

// fmaMod64 evaluates (x*y + a) mod q with the 64-bit lazy product kept in
// [0, 2q) and the sum reduced with two conditional subtractions.
func fmaMod64(x, y, a, yPrecon, twoQ, q uint64) uint64 {
	r := fastmod.MultiplyModLazy64(x, y, yPrecon, q) + a
	if r >= twoQ {
		r -= twoQ
	}
	return fastmod.CRed(r, q)
}

// fmaMod52 is fmaMod64 on the 52-bit range discipline. Requires q < 2^50.
func fmaMod52(x, y, a, yPrecon, twoQ, q uint64) uint64 {
	r := fastmod.MultiplyModLazy52(x, y, yPrecon, q) + a
	if r >= twoQ {
		r -= twoQ
	}
	return fastmod.CRed(r, q)
}

func fmaModVec64(arg1 []uint64, arg2 uint64, arg3, out []uint64, precon, q uint64) {

	twoQ := q << 1

	for j := 0; j < len(arg1); j += 8 {

		/* #nosec G103 -- behavior and consequences well understood, 8 | len(arg1) */
		x := (*[8]uint64)(unsafe.Pointer(&arg1[j]))
		/* #nosec G103 -- behavior and consequences well understood, 8 | len(arg3) */
		y := (*[8]uint64)(unsafe.Pointer(&arg3[j]))
		/* #nosec G103 -- behavior and consequences well understood, 8 | len(out) */
		z := (*[8]uint64)(unsafe.Pointer(&out[j]))

		z[0] = fmaMod64(x[0], arg2, y[0], precon, twoQ, q)
		z[1] = fmaMod64(x[1], arg2, y[1], precon, twoQ, q)
		z[2] = fmaMod64(x[2], arg2, y[2], precon, twoQ, q)
		z[3] = fmaMod64(x[3], arg2, y[3], precon, twoQ, q)
		z[4] = fmaMod64(x[4], arg2, y[4], precon, twoQ, q)
		z[5] = fmaMod64(x[5], arg2, y[5], precon, twoQ, q)
		z[6] = fmaMod64(x[6], arg2, y[6], precon, twoQ, q)
		z[7] = fmaMod64(x[7], arg2, y[7], precon, twoQ, q)
	}
}

func fmaModVec52(arg1 []uint64, arg2 uint64, arg3, out []uint64, precon, q uint64) {

	twoQ := q << 1

	for j := 0; j < len(arg1); j += 8 {

		/* #nosec G103 -- behavior and consequences well understood, 8 | len(arg1) */
		x := (*[8]uint64)(unsafe.Pointer(&arg1[j]))
		/* #nosec G103 -- behavior and consequences well understood, 8 | len(arg3) */
		y := (*[8]uint64)(unsafe.Pointer(&arg3[j]))
		/* #nosec G103 -- behavior and consequences well understood, 8 | len(out) */
		z := (*[8]uint64)(unsafe.Pointer(&out[j]))

		z[0] = fmaMod52(x[0], arg2, y[0], precon, twoQ, q)
		z[1] = fmaMod52(x[1], arg2, y[1], precon, twoQ, q)
		z[2] = fmaMod52(x[2], arg2, y[2], precon, twoQ, q)
		z[3] = fmaMod52(x[3], arg2, y[3], precon, twoQ, q)
		z[4] = fmaMod52(x[4], arg2, y[4], precon, twoQ, q)
		z[5] = fmaMod52(x[5], arg2, y[5], precon, twoQ, q)
		z[6] = fmaMod52(x[6], arg2, y[6], precon, twoQ, q)
		z[7] = fmaMod52(x[7], arg2, y[7], precon, twoQ, q)
	}
}

func mulModScalarVec64(arg1 []uint64, arg2 uint64, out []uint64, precon, q uint64) {

	for j := 0; j < len(arg1); j += 8 {

		/* #nosec G103 -- behavior and consequences well understood, 8 | len(arg1) */
		x := (*[8]uint64)(unsafe.Pointer(&arg1[j]))
		/* #nosec G103 -- behavior and consequences well understood, 8 | len(out) */
		z := (*[8]uint64)(unsafe.Pointer(&out[j]))

		z[0] = fastmod.CRed(fastmod.MultiplyModLazy64(x[0], arg2, precon, q), q)
		z[1] = fastmod.CRed(fastmod.MultiplyModLazy64(x[1], arg2, precon, q), q)
		z[2] = fastmod.CRed(fastmod.MultiplyModLazy64(x[2], arg2, precon, q), q)
		z[3] = fastmod.CRed(fastmod.MultiplyModLazy64(x[3], arg2, precon, q), q)
		z[4] = fastmod.CRed(fastmod.MultiplyModLazy64(x[4], arg2, precon, q), q)
		z[5] = fastmod.CRed(fastmod.MultiplyModLazy64(x[5], arg2, precon, q), q)
		z[6] = fastmod.CRed(fastmod.MultiplyModLazy64(x[6], arg2, precon, q), q)
		z[7] = fastmod.CRed(fastmod.MultiplyModLazy64(x[7], arg2, precon, q), q)
	}
}

func mulModScalarVec52(arg1 []uint64, arg2 uint64, out []uint64, precon, q uint64) {

	for j := 0; j < len(arg1); j += 8 {

		/* #nosec G103 -- behavior and consequences well understood, 8 | len(arg1) */
		x := (*[8]uint64)(unsafe.Pointer(&arg1[j]))
		/* #nosec G103 -- behavior and consequences well understood, 8 | len(out) */
		z := (*[8]uint64)(unsafe.Pointer(&out[j]))

		z[0] = fastmod.CRed(fastmod.MultiplyModLazy52(x[0], arg2, precon, q), q)
		z[1] = fastmod.CRed(fastmod.MultiplyModLazy52(x[1], arg2, precon, q), q)
		z[2] = fastmod.CRed(fastmod.MultiplyModLazy52(x[2], arg2, precon, q), q)
		z[3] = fastmod.CRed(fastmod.MultiplyModLazy52(x[3], arg2, precon, q), q)
		z[4] = fastmod.CRed(fastmod.MultiplyModLazy52(x[4], arg2, precon, q), q)
		z[5] = fastmod.CRed(fastmod.MultiplyModLazy52(x[5], arg2, precon, q), q)
		z[6] = fastmod.CRed(fastmod.MultiplyModLazy52(x[6], arg2, precon, q), q)
		z[7] = fastmod.CRed(fastmod.MultiplyModLazy52(x[7], arg2, precon, q), q)
	}
}
