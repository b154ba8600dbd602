// Package logger provides the zerolog logger every binary starts from.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns a logger tagged with the service name. Output is JSON unless
// SMP_ENVIRONMENT=development, which switches to zerolog's console writer.
// The environment variable is read directly because the logger has to exist
// before configuration parsing, whose failures it reports.
func New(serviceName string) zerolog.Logger {
	return zerolog.New(writerFor(os.Getenv("SMP_ENVIRONMENT"))).With().
		Str("service", serviceName).
		Timestamp().
		Logger()
}

func writerFor(environment string) io.Writer {
	if environment == "development" {
		return zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}
	}
	return os.Stdout
}
