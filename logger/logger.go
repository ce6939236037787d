// Package logger holds the process-wide default logger for the tchisla
// CLI, shared by every driver.Context and record.Client the CLI creates.
// It discards everything until SetLogger replaces it; cmd/tchisla never
// calls SetLogger, so --verbose does not turn on depth tracing.
package logger

import "github.com/getamis/sirius/log"

var logger = log.Discard()

func Logger() log.Logger {
	return logger
}

func SetLogger(l log.Logger) {
	logger = l
}
