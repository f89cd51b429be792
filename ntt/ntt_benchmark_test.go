package ntt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func BenchmarkNTT(b *testing.B) {

	for _, p := range []testParams{
		{1024, 68719403009},
		{1024, 1152921504606877697},
	} {

		transform, err := NewNTT(p.N, p.Q)
		require.NoError(b, err)

		x := newTestSampler(b, p.Q).ReadNew(p.N)

		b.Run(testString("Forward", p), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				transform.Forward(x)
			}
		})

		b.Run(testString("ForwardLazy", p), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				transform.ForwardLazy(x)
			}
		})

		transform.reduce(x)

		b.Run(testString("Inverse", p), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				transform.Inverse(x)
			}
		})
	}
}
