// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// Failure indicates a runtime error (storage read or write).
	Failure = 1

	// Usage indicates bad arguments or an unknown row.
	Usage = 2
)
