package ntt

import (
	"unsafe"

	"github.com/fhelab/hekl/fastmod"
)

// The unrolled kernels process the butterflies of a block eight at a time
// through fixed-size array views, keeping the inner loop free of bound
// checks. Levels whose stride is smaller than eight fall back to the plain
// loop; the dispatch guarantees N >= 16 on these kernels.

// forwardLazyVec64 is the unrolled 64-bit forward kernel, output in [0, 4q).
func (ntt *NTT) forwardLazyVec64(p []uint64) {

	n, q, twoQ := ntt.n, ntt.q, ntt.twoQ
	roots, precon := ntt.rootsForward, ntt.preconForward64

	t := n >> 1
	for m := 1; m < n; m <<= 1 {
		j1 := 0
		if t >= 8 {
			for i := 0; i < m; i++ {
				w, wP := roots[m+i], precon[m+i]
				for jx, jy := j1, j1+t; jx < j1+t; jx, jy = jx+8, jy+8 {

					/* #nosec G103 -- behavior and consequences well understood, 8 | t */
					x := (*[8]uint64)(unsafe.Pointer(&p[jx]))
					/* #nosec G103 -- behavior and consequences well understood, 8 | t */
					y := (*[8]uint64)(unsafe.Pointer(&p[jy]))

					x[0], y[0] = butterflyForward64(x[0], y[0], w, wP, twoQ, q)
					x[1], y[1] = butterflyForward64(x[1], y[1], w, wP, twoQ, q)
					x[2], y[2] = butterflyForward64(x[2], y[2], w, wP, twoQ, q)
					x[3], y[3] = butterflyForward64(x[3], y[3], w, wP, twoQ, q)
					x[4], y[4] = butterflyForward64(x[4], y[4], w, wP, twoQ, q)
					x[5], y[5] = butterflyForward64(x[5], y[5], w, wP, twoQ, q)
					x[6], y[6] = butterflyForward64(x[6], y[6], w, wP, twoQ, q)
					x[7], y[7] = butterflyForward64(x[7], y[7], w, wP, twoQ, q)
				}
				j1 += t << 1
			}
		} else {
			for i := 0; i < m; i++ {
				w, wP := roots[m+i], precon[m+i]
				for j := j1; j < j1+t; j++ {
					p[j], p[j+t] = butterflyForward64(p[j], p[j+t], w, wP, twoQ, q)
				}
				j1 += t << 1
			}
		}
		t >>= 1
	}
}

// forwardLazyVec52 is the unrolled 52-bit forward kernel, output in [0, 4q).
// Requires 4q < 2^52.
func (ntt *NTT) forwardLazyVec52(p []uint64) {

	n, q, twoQ := ntt.n, ntt.q, ntt.twoQ
	roots, precon := ntt.rootsForward, ntt.preconForward52

	t := n >> 1
	for m := 1; m < n; m <<= 1 {
		j1 := 0
		if t >= 8 {
			for i := 0; i < m; i++ {
				w, wP := roots[m+i], precon[m+i]
				for jx, jy := j1, j1+t; jx < j1+t; jx, jy = jx+8, jy+8 {

					/* #nosec G103 -- behavior and consequences well understood, 8 | t */
					x := (*[8]uint64)(unsafe.Pointer(&p[jx]))
					/* #nosec G103 -- behavior and consequences well understood, 8 | t */
					y := (*[8]uint64)(unsafe.Pointer(&p[jy]))

					x[0], y[0] = butterflyForward52(x[0], y[0], w, wP, twoQ, q)
					x[1], y[1] = butterflyForward52(x[1], y[1], w, wP, twoQ, q)
					x[2], y[2] = butterflyForward52(x[2], y[2], w, wP, twoQ, q)
					x[3], y[3] = butterflyForward52(x[3], y[3], w, wP, twoQ, q)
					x[4], y[4] = butterflyForward52(x[4], y[4], w, wP, twoQ, q)
					x[5], y[5] = butterflyForward52(x[5], y[5], w, wP, twoQ, q)
					x[6], y[6] = butterflyForward52(x[6], y[6], w, wP, twoQ, q)
					x[7], y[7] = butterflyForward52(x[7], y[7], w, wP, twoQ, q)
				}
				j1 += t << 1
			}
		} else {
			for i := 0; i < m; i++ {
				w, wP := roots[m+i], precon[m+i]
				for j := j1; j < j1+t; j++ {
					p[j], p[j+t] = butterflyForward52(p[j], p[j+t], w, wP, twoQ, q)
				}
				j1 += t << 1
			}
		}
		t >>= 1
	}
}

// inverseLazyVec64 is the unrolled 64-bit inverse kernel, output in [0, 2q).
func (ntt *NTT) inverseLazyVec64(p []uint64) {

	n, q, twoQ := ntt.n, ntt.q, ntt.twoQ
	roots, precon := ntt.rootsBackward, ntt.preconBackward64

	t := 1
	idx := 1
	for m := n >> 1; m > 1; m >>= 1 {
		j1 := 0
		if t >= 8 {
			for i := 0; i < m; i++ {
				w, wP := roots[idx], precon[idx]
				idx++
				for jx, jy := j1, j1+t; jx < j1+t; jx, jy = jx+8, jy+8 {

					/* #nosec G103 -- behavior and consequences well understood, 8 | t */
					x := (*[8]uint64)(unsafe.Pointer(&p[jx]))
					/* #nosec G103 -- behavior and consequences well understood, 8 | t */
					y := (*[8]uint64)(unsafe.Pointer(&p[jy]))

					x[0], y[0] = butterflyInverse64(x[0], y[0], w, wP, twoQ, q)
					x[1], y[1] = butterflyInverse64(x[1], y[1], w, wP, twoQ, q)
					x[2], y[2] = butterflyInverse64(x[2], y[2], w, wP, twoQ, q)
					x[3], y[3] = butterflyInverse64(x[3], y[3], w, wP, twoQ, q)
					x[4], y[4] = butterflyInverse64(x[4], y[4], w, wP, twoQ, q)
					x[5], y[5] = butterflyInverse64(x[5], y[5], w, wP, twoQ, q)
					x[6], y[6] = butterflyInverse64(x[6], y[6], w, wP, twoQ, q)
					x[7], y[7] = butterflyInverse64(x[7], y[7], w, wP, twoQ, q)
				}
				j1 += t << 1
			}
		} else {
			for i := 0; i < m; i++ {
				w, wP := roots[idx], precon[idx]
				idx++
				for j := j1; j < j1+t; j++ {
					p[j], p[j+t] = butterflyInverse64(p[j], p[j+t], w, wP, twoQ, q)
				}
				j1 += t << 1
			}
		}
		t <<= 1
	}

	h := n >> 1
	nInv, nInvP := ntt.nInv, ntt.preconNInv64
	nInvW, nInvWP := ntt.nInvOmega, ntt.preconNInvOmega64
	for jx, jy := 0, h; jx < h; jx, jy = jx+8, jy+8 {

		/* #nosec G103 -- behavior and consequences well understood, 8 | N/2 */
		x := (*[8]uint64)(unsafe.Pointer(&p[jx]))
		/* #nosec G103 -- behavior and consequences well understood, 8 | N/2 */
		y := (*[8]uint64)(unsafe.Pointer(&p[jy]))

		x[0], y[0] = scaledTailButterfly64(x[0], y[0], nInv, nInvP, nInvW, nInvWP, twoQ, q)
		x[1], y[1] = scaledTailButterfly64(x[1], y[1], nInv, nInvP, nInvW, nInvWP, twoQ, q)
		x[2], y[2] = scaledTailButterfly64(x[2], y[2], nInv, nInvP, nInvW, nInvWP, twoQ, q)
		x[3], y[3] = scaledTailButterfly64(x[3], y[3], nInv, nInvP, nInvW, nInvWP, twoQ, q)
		x[4], y[4] = scaledTailButterfly64(x[4], y[4], nInv, nInvP, nInvW, nInvWP, twoQ, q)
		x[5], y[5] = scaledTailButterfly64(x[5], y[5], nInv, nInvP, nInvW, nInvWP, twoQ, q)
		x[6], y[6] = scaledTailButterfly64(x[6], y[6], nInv, nInvP, nInvW, nInvWP, twoQ, q)
		x[7], y[7] = scaledTailButterfly64(x[7], y[7], nInv, nInvP, nInvW, nInvWP, twoQ, q)
	}
}

// inverseLazyVec52 is the unrolled 52-bit inverse kernel, output in [0, 2q).
// Requires 4q < 2^52; enabled only after the construction-time range check
// of the inverse tables.
func (ntt *NTT) inverseLazyVec52(p []uint64) {

	n, q, twoQ := ntt.n, ntt.q, ntt.twoQ
	roots, precon := ntt.rootsBackward, ntt.preconBackward52

	t := 1
	idx := 1
	for m := n >> 1; m > 1; m >>= 1 {
		j1 := 0
		if t >= 8 {
			for i := 0; i < m; i++ {
				w, wP := roots[idx], precon[idx]
				idx++
				for jx, jy := j1, j1+t; jx < j1+t; jx, jy = jx+8, jy+8 {

					/* #nosec G103 -- behavior and consequences well understood, 8 | t */
					x := (*[8]uint64)(unsafe.Pointer(&p[jx]))
					/* #nosec G103 -- behavior and consequences well understood, 8 | t */
					y := (*[8]uint64)(unsafe.Pointer(&p[jy]))

					x[0], y[0] = butterflyInverse52(x[0], y[0], w, wP, twoQ, q)
					x[1], y[1] = butterflyInverse52(x[1], y[1], w, wP, twoQ, q)
					x[2], y[2] = butterflyInverse52(x[2], y[2], w, wP, twoQ, q)
					x[3], y[3] = butterflyInverse52(x[3], y[3], w, wP, twoQ, q)
					x[4], y[4] = butterflyInverse52(x[4], y[4], w, wP, twoQ, q)
					x[5], y[5] = butterflyInverse52(x[5], y[5], w, wP, twoQ, q)
					x[6], y[6] = butterflyInverse52(x[6], y[6], w, wP, twoQ, q)
					x[7], y[7] = butterflyInverse52(x[7], y[7], w, wP, twoQ, q)
				}
				j1 += t << 1
			}
		} else {
			for i := 0; i < m; i++ {
				w, wP := roots[idx], precon[idx]
				idx++
				for j := j1; j < j1+t; j++ {
					p[j], p[j+t] = butterflyInverse52(p[j], p[j+t], w, wP, twoQ, q)
				}
				j1 += t << 1
			}
		}
		t <<= 1
	}

	h := n >> 1
	nInv, nInvP := ntt.nInv, ntt.preconNInv52
	nInvW, nInvWP := ntt.nInvOmega, ntt.preconNInvOmega52
	for jx, jy := 0, h; jx < h; jx, jy = jx+8, jy+8 {

		/* #nosec G103 -- behavior and consequences well understood, 8 | N/2 */
		x := (*[8]uint64)(unsafe.Pointer(&p[jx]))
		/* #nosec G103 -- behavior and consequences well understood, 8 | N/2 */
		y := (*[8]uint64)(unsafe.Pointer(&p[jy]))

		x[0], y[0] = scaledTailButterfly52(x[0], y[0], nInv, nInvP, nInvW, nInvWP, twoQ, q)
		x[1], y[1] = scaledTailButterfly52(x[1], y[1], nInv, nInvP, nInvW, nInvWP, twoQ, q)
		x[2], y[2] = scaledTailButterfly52(x[2], y[2], nInv, nInvP, nInvW, nInvWP, twoQ, q)
		x[3], y[3] = scaledTailButterfly52(x[3], y[3], nInv, nInvP, nInvW, nInvWP, twoQ, q)
		x[4], y[4] = scaledTailButterfly52(x[4], y[4], nInv, nInvP, nInvW, nInvWP, twoQ, q)
		x[5], y[5] = scaledTailButterfly52(x[5], y[5], nInv, nInvP, nInvW, nInvWP, twoQ, q)
		x[6], y[6] = scaledTailButterfly52(x[6], y[6], nInv, nInvP, nInvW, nInvWP, twoQ, q)
		x[7], y[7] = scaledTailButterfly52(x[7], y[7], nInv, nInvP, nInvW, nInvWP, twoQ, q)
	}
}

// scaledTailButterfly64 computes the last inverse level fused with the 1/N
// scaling: X' = (X + Y)/N, Y' = (X - Y)*W/N mod q, outputs in [0, 2q).
func scaledTailButterfly64(x, y, nInv, nInvP, nInvW, nInvWP, twoQ, q uint64) (uint64, uint64) {
	tx := x + y
	if tx >= twoQ {
		tx -= twoQ
	}
	ty := x + twoQ - y
	return fastmod.MultiplyModLazy64(tx, nInv, nInvP, q), fastmod.MultiplyModLazy64(ty, nInvW, nInvWP, q)
}

// scaledTailButterfly52 is scaledTailButterfly64 on the 52-bit range
// discipline.
func scaledTailButterfly52(x, y, nInv, nInvP, nInvW, nInvWP, twoQ, q uint64) (uint64, uint64) {
	tx := x + y
	if tx >= twoQ {
		tx -= twoQ
	}
	ty := x + twoQ - y
	return fastmod.MultiplyModLazy52(tx, nInv, nInvP, q), fastmod.MultiplyModLazy52(ty, nInvW, nInvWP, q)
}
