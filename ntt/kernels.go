package ntt

import (
	"github.com/fhelab/hekl/fastmod"
)

// butterflyForward64 computes X' = X + W*Y, Y' = X - W*Y mod q.
// Inputs and outputs are in [0, 4q); see Harvey, https://arxiv.org/pdf/1205.2926.pdf.
func butterflyForward64(x, y, w, wPrecon, twoQ, q uint64) (uint64, uint64) {
	if x >= twoQ {
		x -= twoQ
	}
	v := fastmod.MultiplyModLazy64(y, w, wPrecon, q)
	return x + v, x + twoQ - v
}

// butterflyForward52 is butterflyForward64 on the 52-bit range discipline.
// Requires 4q < 2^52.
func butterflyForward52(x, y, w, wPrecon, twoQ, q uint64) (uint64, uint64) {
	if x >= twoQ {
		x -= twoQ
	}
	v := fastmod.MultiplyModLazy52(y, w, wPrecon, q)
	return x + v, x + twoQ - v
}

// butterflyInverse64 computes X' = X + Y, Y' = (X - Y)*W mod q.
// Inputs and outputs are in [0, 2q).
func butterflyInverse64(x, y, w, wPrecon, twoQ, q uint64) (uint64, uint64) {
	tx := x + y
	if tx >= twoQ {
		tx -= twoQ
	}
	return tx, fastmod.MultiplyModLazy64(x+twoQ-y, w, wPrecon, q)
}

// butterflyInverse52 is butterflyInverse64 on the 52-bit range discipline.
// Requires 4q < 2^52.
func butterflyInverse52(x, y, w, wPrecon, twoQ, q uint64) (uint64, uint64) {
	tx := x + y
	if tx >= twoQ {
		tx -= twoQ
	}
	return tx, fastmod.MultiplyModLazy52(x+twoQ-y, w, wPrecon, q)
}

// forwardLazy64 is the portable forward kernel, natural order to
// bit-reversed order, output in [0, 4q).
func (ntt *NTT) forwardLazy64(x []uint64) {

	n, q, twoQ := ntt.n, ntt.q, ntt.twoQ
	roots, precon := ntt.rootsForward, ntt.preconForward64

	t := n >> 1
	for m := 1; m < n; m <<= 1 {
		j1 := 0
		for i := 0; i < m; i++ {
			w, wP := roots[m+i], precon[m+i]
			for j := j1; j < j1+t; j++ {
				if rangeChecks {
					assertLess(x[j], ntt.fourQ)
					assertLess(x[j+t], ntt.fourQ)
				}
				x[j], x[j+t] = butterflyForward64(x[j], x[j+t], w, wP, twoQ, q)
			}
			j1 += t << 1
		}
		t >>= 1
	}
}

// inverseLazy64 is the portable inverse kernel, bit-reversed order to
// natural order, with the last level fused with the 1/N scaling, output
// in [0, 2q).
func (ntt *NTT) inverseLazy64(x []uint64) {

	n, q, twoQ := ntt.n, ntt.q, ntt.twoQ
	roots, precon := ntt.rootsBackward, ntt.preconBackward64

	t := 1
	idx := 1
	for m := n >> 1; m > 1; m >>= 1 {
		j1 := 0
		for i := 0; i < m; i++ {
			w, wP := roots[idx], precon[idx]
			idx++
			for j := j1; j < j1+t; j++ {
				if rangeChecks {
					assertLess(x[j], ntt.twoQ)
					assertLess(x[j+t], ntt.twoQ)
				}
				x[j], x[j+t] = butterflyInverse64(x[j], x[j+t], w, wP, twoQ, q)
			}
			j1 += t << 1
		}
		t <<= 1
	}

	// Last level fused with the 1/N scaling; see Longa & Naehrig,
	// https://eprint.iacr.org/2016/504.pdf.
	h := n >> 1
	nInv, nInvP := ntt.nInv, ntt.preconNInv64
	nInvW, nInvWP := ntt.nInvOmega, ntt.preconNInvOmega64
	for j := 0; j < h; j++ {
		tx := x[j] + x[j+h]
		if tx >= twoQ {
			tx -= twoQ
		}
		ty := x[j] + twoQ - x[j+h]
		x[j] = fastmod.MultiplyModLazy64(tx, nInv, nInvP, q)
		x[j+h] = fastmod.MultiplyModLazy64(ty, nInvW, nInvWP, q)
	}
}
