// Per-run conversion state for the dual extruder converter
//
// Copyright (C) 2026  Simon Clay
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package convert

import "github.com/simon-clay/3dprinting-gcode-dualextruder-processor/pkg/profile"

// Toolhead identifies one of the two extruders, or neither.
type Toolhead int

const (
	// ToolheadUnknown means the detector has not run yet.
	ToolheadUnknown Toolhead = iota

	// ToolheadRight is extruder 0 (designator T0 by default).
	ToolheadRight

	// ToolheadLeft is extruder 1 (designator T1 by default).
	ToolheadLeft
)

// String returns a human-readable name for the toolhead.
func (t Toolhead) String() string {
	switch t {
	case ToolheadRight:
		return "right"
	case ToolheadLeft:
		return "left"
	default:
		return "unknown"
	}
}

// Session holds the mutable state of a single conversion run. One
// Session is created per run and passed explicitly to both passes;
// nothing is shared across runs.
//
// active is set exactly once, by the detector. baseline is set at most
// once, on the first extrusion-bearing move. ratio is fixed at
// construction.
type Session struct {
	prof     *profile.Profile
	ratio    float64
	active   Toolhead
	baseline *float64
}

// NewSession creates the state for one conversion run. ratio must be
// positive (1.0 when no diameters were given).
func NewSession(ratio float64, prof *profile.Profile) *Session {
	return &Session{prof: prof, ratio: ratio}
}

// Ratio returns the filament area ratio for this run.
func (s *Session) Ratio() float64 {
	return s.ratio
}

// Active returns the toolhead the input file was authored for.
func (s *Session) Active() Toolhead {
	return s.active
}

// claim records that t is the active toolhead. Claiming one side while
// the other is already claimed is a conflict; claiming the same side
// again is a no-op.
func (s *Session) claim(t Toolhead) error {
	if s.active != ToolheadUnknown && s.active != t {
		return ConflictError()
	}
	s.active = t
	return nil
}

// inactiveDesignator returns the designator token of the toolhead the
// input file does NOT use. Lines addressed to it are dropped by the
// transform pass.
func (s *Session) inactiveDesignator() string {
	if s.active == ToolheadRight {
		return s.prof.Toolhead1
	}
	return s.prof.Toolhead0
}
