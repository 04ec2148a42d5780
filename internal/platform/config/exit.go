package config

import (
	"fmt"
	"os"
)

// Exitf prints a formatted message to stderr and exits with code 1. Entry
// points use it for configuration failures that should not produce a stack
// trace.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
