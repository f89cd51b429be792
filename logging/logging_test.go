package logging

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	require.Equal(t, zerolog.Disabled, newLogger("").GetLevel())
	require.Equal(t, zerolog.Disabled, newLogger("not-a-level").GetLevel())
	require.Equal(t, zerolog.TraceLevel, newLogger("trace").GetLevel())
	require.Equal(t, zerolog.DebugLevel, newLogger("debug").GetLevel())
}

func TestLogger(t *testing.T) {
	require.NotNil(t, Logger())
	// Disabled by default: emitting is a no-op.
	Logger().Trace().Msg("noop")
}
