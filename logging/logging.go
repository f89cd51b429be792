// Package logging exposes the library-wide trace logger.
//
// The logger is disabled unless the HEKL_LOG_LEVEL environment variable is
// set to a level recognized by zerolog (e.g. "trace", "debug", "info").
package logging

import (
	"os"

	"github.com/rs/zerolog"
)

// LevelEnvVar is the environment variable selecting the log verbosity.
const LevelEnvVar = "HEKL_LOG_LEVEL"

var logger = newLogger(os.Getenv(LevelEnvVar))

func newLogger(level string) zerolog.Logger {
	lvl := zerolog.Disabled
	if level != "" {
		if parsed, err := zerolog.ParseLevel(level); err == nil {
			lvl = parsed
		}
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(lvl).With().Timestamp().Logger()
}

// Logger returns the library logger.
func Logger() *zerolog.Logger {
	return &logger
}
