// Command mdsim drives the 2D molecular-dynamics engine from a YAML
// scenario file. Grounded on the teacher's many single-purpose
// backend/cmd/*/main.go drivers, generalized into one Cobra command
// tree with `run` and `relax` subcommands per SPEC_FULL.md's AMBIENT
// STACK CLI section.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
