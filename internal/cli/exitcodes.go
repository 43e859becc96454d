package cli

import (
	"errors"
	"strings"
)

// Exit codes for gocmark.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitConversionFailed indicates that at least one document could not
	// be converted or written.
	ExitConversionFailed = 1

	// ExitUsage indicates invalid command-line usage or configuration.
	ExitUsage = 2
)

// ErrConversionFailed is returned by build when some files failed. The
// failures have already been reported.
var ErrConversionFailed = errors.New("conversion failed")

// UsageError marks errors caused by bad flags, arguments or configuration.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string {
	return e.Err.Error()
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var usage *UsageError
	if errors.As(err, &usage) {
		return ExitUsage
	}
	// Cobra reports unknown commands as plain errors.
	if strings.HasPrefix(err.Error(), "unknown command") {
		return ExitUsage
	}

	return ExitConversionFailed
}
