// Package main provides the stylecheck CLI for linting CSS files.
package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		// lint has already printed its report
		if !errors.Is(err, errLintFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
