// dualextrude converts a single extruder G-code file into a file that
// drives both extruders in lockstep, optionally compensating for
// differing filament diameters.
//
// Usage:
//
//	dualextrude INFILE OUTFILE [flags]
//
// Examples:
//
//	# Same filament on both extruders
//	dualextrude print.gcode print-dual.gcode
//
//	# Different filament diameters (both flags must be given together)
//	dualextrude print.gcode print-dual.gcode --input-diameter 1.75 --added-diameter 3.0
//
// Copyright (C) 2026  Simon Clay
//
// This file may be distributed under the terms of the GNU GPLv3 license.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
