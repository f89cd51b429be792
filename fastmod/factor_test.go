package fastmod

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fhelab/hekl/utils/sampling"
)

func TestNewFactor(t *testing.T) {

	for _, q := range testModuli {

		t.Run(testString("NewFactor", q), func(t *testing.T) {

			prng, err := sampling.NewKeyedPRNG([]byte{'f', 'a', 'c', 't', 'o', 'r'})
			require.NoError(t, err)
			sampler := sampling.NewUniformSampler(prng, q)

			bigQ := new(big.Int).SetUint64(q)
			maskU64 := new(big.Int).SetUint64(0xFFFFFFFFFFFFFFFF)

			for _, shift := range []int{32, 52, 64} {

				operands := append(sampler.ReadNew(64), 0, 1, q-1, q)

				for _, op := range operands {

					f, err := NewFactor(op, shift, q)
					require.NoError(t, err)
					require.Equal(t, op, f.Operand)

					want := new(big.Int).Lsh(new(big.Int).SetUint64(op), uint(shift))
					want.Div(want, bigQ)
					want.And(want, maskU64)

					require.Equal(t, want.Uint64(), f.BarrettFactor)
				}
			}
		})
	}
}

func TestNewFactorErrors(t *testing.T) {

	_, err := NewFactor(1, 48, 17)
	require.ErrorIs(t, err, ErrUnsupportedShift)

	_, err = NewFactor(1, 0, 17)
	require.ErrorIs(t, err, ErrUnsupportedShift)

	_, err = NewFactor(18, 64, 17)
	require.ErrorIs(t, err, ErrOperandTooLarge)
}
