package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Exitf reports a fatal startup error on stderr, prefixed with the program
// name, and exits with status 1.
func Exitf(format string, args ...any) {
	exitf(os.Stderr, os.Exit, format, args...)
}

func exitf(w io.Writer, exit func(int), format string, args ...any) {
	msg := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	fmt.Fprintf(w, "%s: %s\n", filepath.Base(os.Args[0]), msg)
	exit(1)
}
