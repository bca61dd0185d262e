// Package errors owns the user-facing error surface of the habitsync CLI:
// one formatting convention and one fatal-exit path, so every command fails
// the same way on the terminal while the detail still lands in the log file.
package errors

import (
	"fmt"
	"os"

	"github.com/julianstephens/habitsync/internal/logger"
)

// Format renders an error for the terminal with the standard prefix.
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf is Format for a message built from a format string.
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs the error, prints it to stderr, and exits with code 1.
// A nil error is a no-op so callers can pass command results through
// unconditionally.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("Command execution failed", "error", err)
	fmt.Fprintf(os.Stderr, "%s\n", Format(err))
	os.Exit(1)
}

// Fatalf is Fatal for a message built from a format string.
func Fatalf(format string, args ...interface{}) {
	Fatal(fmt.Errorf(format, args...))
}
