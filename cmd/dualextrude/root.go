// Copyright (C) 2026  Simon Clay
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simon-clay/3dprinting-gcode-dualextruder-processor/pkg/convert"
	"github.com/simon-clay/3dprinting-gcode-dualextruder-processor/pkg/log"
	"github.com/simon-clay/3dprinting-gcode-dualextruder-processor/pkg/profile"
)

var (
	inputDiameter float64
	addedDiameter float64
	profilePath   string
	logLevel      string
	jsonLogs      bool
	quiet         bool
)

var rootCmd = &cobra.Command{
	Use:   "dualextrude INFILE OUTFILE",
	Short: "Generate a both-extruders G-code file from a single extruder file",
	Long: `dualextrude duplicates the extruder speed, temperature and on/off
commands of a single extruder G-code file so both extruders print at
once, splitting the extrusion length across both toolheads.

If the two extruders use different diameter filament, give BOTH
--input-diameter (the filament the file was sliced for) and
--added-diameter (the filament on the second extruder); extrusion
length for the added extruder is rescaled by the filament area ratio.`,
	Args:          cobra.ExactArgs(2),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := buildOptions(cmd, args)
		if err != nil {
			return err
		}
		_, err = convert.Run(opts)
		return err
	},
}

// buildOptions turns the parsed command line into conversion options.
func buildOptions(cmd *cobra.Command, args []string) (convert.Options, error) {
	opts := convert.Options{
		InputPath:  args[0],
		OutputPath: args[1],
	}

	haveInput := cmd.Flags().Changed("input-diameter")
	haveAdded := cmd.Flags().Changed("added-diameter")
	if haveInput != haveAdded {
		return opts, fmt.Errorf("--input-diameter and --added-diameter must be given together")
	}
	if haveInput {
		opts.Diameters = &convert.Diameters{
			Input: inputDiameter,
			Added: addedDiameter,
		}
	}

	if profilePath != "" {
		p, err := profile.Load(profilePath)
		if err != nil {
			return opts, err
		}
		opts.Profile = p
	}

	logger := log.New("dualextrude")
	log.ConfigureFromEnv(logger)
	logger.SetLevel(log.ParseLevel(logLevel))
	if jsonLogs {
		logger.SetFormat(log.FormatJSON)
	}
	if quiet {
		logger.SetLevel(log.ERROR)
	}
	opts.Logger = logger

	return opts, nil
}

func init() {
	rootCmd.Flags().Float64Var(&inputDiameter, "input-diameter", 0,
		"Diameter of the filament used to generate the input file (mm)")
	rootCmd.Flags().Float64Var(&addedDiameter, "added-diameter", 0,
		"Diameter of the filament on the second extruder (mm)")
	rootCmd.Flags().StringVar(&profilePath, "profile", "",
		"YAML conversion profile overriding the built-in constants")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info",
		"Log level: debug, info, warn, error")
	rootCmd.Flags().BoolVar(&jsonLogs, "json-logs", false,
		"Emit logs as JSON")
	rootCmd.Flags().BoolVar(&quiet, "quiet", false,
		"Suppress progress output (errors only)")
}
