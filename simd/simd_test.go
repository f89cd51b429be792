package simd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {

	tier := Detect()
	require.Contains(t, []Tier{TierGeneric, TierAVX512DQ, TierAVX512IFMA}, tier)

	// The probe is cached.
	require.Equal(t, tier, Detect())
}

func TestOverride(t *testing.T) {

	tier := Detect()

	restore := Override(TierAVX512IFMA)
	require.Equal(t, TierAVX512IFMA, Detect())
	restore()

	require.Equal(t, tier, Detect())
}

func TestTierString(t *testing.T) {
	require.Equal(t, "generic", TierGeneric.String())
	require.Equal(t, "avx512dq", TierAVX512DQ.String())
	require.Equal(t, "avx512ifma", TierAVX512IFMA.String())
	require.Equal(t, "unknown", Tier(42).String())
}
