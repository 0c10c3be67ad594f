// Package main provides the CLI entrypoint for graph-copier.
//
// graph-copier is the companion tool of the merge package:
//   - paths lists the attribute paths a merge request document names
//   - inspect reports the mergeable attributes of Go packages without running them
//   - profile prints the effective merge profile after config file and environment
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "graph-copier:", err)
		os.Exit(1)
	}
}
