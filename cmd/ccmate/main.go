// Package main is the entry point for the ccmate CLI.
package main

import (
	"fmt"
	"os"

	"github.com/ccmate/ccmate/cmd/ccmate/commands"
	"github.com/ccmate/ccmate/internal/errors"
)

func main() {
	if err := commands.Execute(); err != nil {
		var exitErr *errors.ExitError
		if errors.As(err, &exitErr) {
			if exitErr.Err != nil {
				fmt.Fprintln(os.Stderr, "Error:", exitErr.Err)
			}
			if exitErr.Suggestion != "" {
				fmt.Fprintln(os.Stderr, exitErr.Suggestion)
			}
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(errors.ExitUser)
	}
}
