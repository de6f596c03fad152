// Package main provides the rutas CLI: a shared collection of GPS tracks
// curated through import, folder and edit commands, reconciled against a
// single remote state document.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitUserError)
	}
}
