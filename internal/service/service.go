// Package service runs the agent under the host's service manager: signals
// on macOS and Linux (launchd, systemd), the SCM on Windows.
package service

import "context"

// Name is the service name registered with the OS.
const Name = "SiliconStats"

// Service runs the agent until it is stopped.
type Service interface {
	// Run blocks until runFunc returns or the service is stopped.
	Run(ctx context.Context) error

	// Stop cancels the context given to runFunc.
	Stop() error

	// IsService reports whether a service manager started the process.
	IsService() bool
}

// RunFunc is the agent body. It must return once ctx is cancelled.
type RunFunc func(ctx context.Context) error

// ReportStartupError records a fatal startup error where an operator will
// look for it: a file under logDir, plus the system event log where one
// exists.
func ReportStartupError(logDir string, err error) {
	WriteStartupErrorFile(logDir, err)
	reportToEventLog(err)
}
