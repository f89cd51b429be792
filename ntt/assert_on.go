//go:build heklcheck

package ntt

import "fmt"

// rangeChecks enables the butterfly range assertions.
const rangeChecks = true

func assertLess(v, bound uint64) {
	if v >= bound {
		panic(fmt.Errorf("reduction out of range: %d >= %d", v, bound))
	}
}
