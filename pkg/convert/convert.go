// Conversion driver for the dual extruder converter
//
// Sequences the two passes over one input file: detect which extruder
// the file was authored for, then rewrite every line for both. The
// driver is the only place that touches file lifecycle; the passes
// themselves are pure logic over lines and tokens.
//
// Copyright (C) 2026  Simon Clay
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package convert

import (
	"errors"
	"os"

	"github.com/simon-clay/3dprinting-gcode-dualextruder-processor/pkg/gcode"
	"github.com/simon-clay/3dprinting-gcode-dualextruder-processor/pkg/log"
	"github.com/simon-clay/3dprinting-gcode-dualextruder-processor/pkg/profile"
)

// Diameters is an optional pair of filament diameters in millimeters:
// the one the input file was generated for and the one loaded on the
// added extruder. Both are given together or not at all.
type Diameters struct {
	Input float64
	Added float64
}

// Options configures one conversion run.
type Options struct {
	// InputPath is the single extruder G-code file to convert.
	InputPath string

	// OutputPath is created (truncating any existing file) and written
	// strictly forward.
	OutputPath string

	// Diameters, when non-nil, rescales extrusion length for the
	// added extruder. Nil means equal filament: ratio 1.0.
	Diameters *Diameters

	// Profile supplies the tunable constants; nil uses the defaults.
	Profile *profile.Profile

	// Logger receives progress output; nil creates one.
	Logger *log.Logger
}

// Result reports a completed conversion.
type Result struct {
	// Active is the toolhead the input file was authored for.
	Active Toolhead

	// Ratio is the filament area ratio applied to extrusion length.
	Ratio float64

	// LinesChecked is the line count of the detection pass.
	LinesChecked int

	// LinesProcessed is the line count of the transform pass.
	LinesProcessed int
}

// Run converts a single extruder G-code file into a both-extruders
// file. Diameter validation happens before any file is opened;
// detection failures abort before the output file is created; format
// failures abort mid-transform, leaving partial output on disk. File
// handles are released on every exit path.
func Run(opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New("convert")
	}
	prof := opts.Profile
	if prof == nil {
		prof = profile.Default()
	}
	if err := prof.Validate(); err != nil {
		return nil, err
	}

	ratio := 1.0
	if opts.Diameters != nil {
		r, err := AreaRatio(opts.Diameters.Input, opts.Diameters.Added, prof)
		if err != nil {
			return nil, err
		}
		ratio = r
	}

	src := gcode.NewFileSource(opts.InputPath)
	session := NewSession(ratio, prof)

	logger.Info("checking file...")
	checked, err := DetectToolhead(src, session)
	if err != nil {
		var ce *ConvertError
		if errors.As(err, &ce) {
			return nil, err
		}
		return nil, OpenError("open input", opts.InputPath, err)
	}
	logger.Info("%d lines checked", checked)
	logger.Info("file uses %s extruder, adding %s...", session.Active(), added(session.Active()))
	if opts.Diameters != nil {
		logger.Info("input file diameter: %g   added extruder diameter: %g",
			opts.Diameters.Input, opts.Diameters.Added)
	}

	out, err := os.Create(opts.OutputPath)
	if err != nil {
		return nil, OpenError("create output", opts.OutputPath, err)
	}

	processed, terr := Transform(src, session, out)
	cerr := out.Close()
	if terr != nil {
		return nil, terr
	}
	if cerr != nil {
		return nil, OpenError("write output", opts.OutputPath, cerr)
	}

	logger.Info("%d lines processed", processed)
	return &Result{
		Active:         session.Active(),
		Ratio:          ratio,
		LinesChecked:   checked,
		LinesProcessed: processed,
	}, nil
}

// added names the toolhead being added, the opposite of active.
func added(active Toolhead) Toolhead {
	if active == ToolheadRight {
		return ToolheadLeft
	}
	return ToolheadRight
}
