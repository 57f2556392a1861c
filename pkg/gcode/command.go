// G-code command classification for the dual extruder converter
//
// Copyright (C) 2026  Simon Clay
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package gcode

// Command identifies one of the G/M codes the converter rewrites.
// Every other verb passes through untouched.
type Command int

const (
	// Unclassified marks a line whose verb is outside the known vocabulary.
	Unclassified Command = iota

	// ExtruderForward is M101 (extruder on, forward)
	ExtruderForward

	// ExtruderReverse is M102 (extruder on, reverse)
	ExtruderReverse

	// ExtruderOff is M103
	ExtruderOff

	// SetTemperature is M104
	SetTemperature

	// SetExtruderSpeed is M108
	SetExtruderSpeed

	// ToolChange is M6
	ToolChange

	// CoordinatedMove is G1
	CoordinatedMove
)

// verbs maps each classified command to its canonical verb string.
var verbs = map[Command]string{
	ExtruderForward:  "M101",
	ExtruderReverse:  "M102",
	ExtruderOff:      "M103",
	SetTemperature:   "M104",
	SetExtruderSpeed: "M108",
	ToolChange:       "M6",
	CoordinatedMove:  "G1",
}

// vocabulary is the inverse lookup used by Classify.
var vocabulary = map[string]Command{
	"M101": ExtruderForward,
	"M102": ExtruderReverse,
	"M103": ExtruderOff,
	"M104": SetTemperature,
	"M108": SetExtruderSpeed,
	"M6":   ToolChange,
	"G1":   CoordinatedMove,
}

// Classify maps a line's leading token to a Command. Matching is exact
// string equality, case sensitive: "m104" and "M1040" are Unclassified,
// and so is an empty verb (blank line).
func Classify(verb string) Command {
	return vocabulary[verb]
}

// Verb returns the canonical verb string for a classified command, or ""
// for Unclassified.
func (c Command) Verb() string {
	return verbs[c]
}

// String returns a human-readable name for the command.
func (c Command) String() string {
	switch c {
	case ExtruderForward:
		return "extruder-forward"
	case ExtruderReverse:
		return "extruder-reverse"
	case ExtruderOff:
		return "extruder-off"
	case SetTemperature:
		return "set-temperature"
	case SetExtruderSpeed:
		return "set-extruder-speed"
	case ToolChange:
		return "tool-change"
	case CoordinatedMove:
		return "coordinated-move"
	default:
		return "unclassified"
	}
}
