// Package main is the entry point for the sqfpack CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/sigmundklaa/sqfpack/internal/cmd"
	oerrors "github.com/sigmundklaa/sqfpack/internal/errors"
)

func main() {
	rootCmd := cmd.NewRootCmd()

	if err := rootCmd.Execute(); err != nil {
		var exitErr *oerrors.ExitError
		if errors.As(err, &exitErr) {
			// Already printed by the command layer.
			if !exitErr.Printed {
				fmt.Fprintln(os.Stderr, err)
			}
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(oerrors.ExitCodeFromError(err))
	}
}
