// Package simd probes the CPU capabilities relevant to the vectorized
// kernels and exposes the resulting kernel tier.
package simd

import (
	"sync"

	"github.com/klauspost/cpuid/v2"
)

// Tier identifies a family of kernels sharing the same range discipline.
type Tier int

const (
	// TierGeneric is the portable 64-bit reference path.
	TierGeneric Tier = iota
	// TierAVX512DQ is the unrolled 64-bit path, selected on CPUs with
	// 512-bit integer SIMD.
	TierAVX512DQ
	// TierAVX512IFMA is the unrolled 52-bit path, selected on CPUs with
	// 52-bit integer fused multiply-add support. Kernels on this tier
	// additionally require the modulus to fit the 52-bit range
	// discipline (q < 2^50).
	TierAVX512IFMA
)

// String implements fmt.Stringer.
func (t Tier) String() string {
	switch t {
	case TierGeneric:
		return "generic"
	case TierAVX512DQ:
		return "avx512dq"
	case TierAVX512IFMA:
		return "avx512ifma"
	default:
		return "unknown"
	}
}

var (
	once     sync.Once
	detected Tier
	override *Tier
)

// Detect returns the highest kernel tier supported by the CPU.
// The probe runs once; subsequent calls return the cached result.
func Detect() Tier {
	if override != nil {
		return *override
	}
	once.Do(func() {
		switch {
		case cpuid.CPU.Supports(cpuid.AVX512IFMA):
			detected = TierAVX512IFMA
		case cpuid.CPU.Supports(cpuid.AVX512DQ):
			detected = TierAVX512DQ
		default:
			detected = TierGeneric
		}
	})
	return detected
}

// Override forces Detect to return t until the returned restore function
// is called. It is intended for tests that need to exercise every tier
// regardless of the host CPU. Not safe for concurrent use with Detect.
func Override(t Tier) (restore func()) {
	override = &t
	return func() { override = nil }
}
