// Package main provides the entry point for the thesisdash CLI.
package main

import (
	"os"

	"github.com/Aman-CERP/thesisdash/cmd/thesisdash/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
