// Package telemetry configures the process-wide zerolog logger. kiln is a
// short-lived tool, so there is one console logger on stderr; stdout stays
// reserved for command output.
package telemetry

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup installs the global console logger. Verbose lowers the level to
// debug; the LOG_LEVEL environment variable overrides both.
func Setup(verbose bool) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	switch os.Getenv("LOG_LEVEL") {
	case "trace":
		level = zerolog.TraceLevel
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}
	zerolog.SetGlobalLevel(level)
}

// Component returns a child of the global logger tagged with a component
// name, for subsystems that log more than a line or two.
func Component(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}
