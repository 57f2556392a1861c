// Extruder usage detection pass for the dual extruder converter
//
// A single forward pass over the input determines which extruder the
// file was authored for. Only two kinds of line carry a signal: the
// extruder on commands when followed by a toolhead designator, and set
// temperature commands pairing a designator with a positive temperature.
//
// Copyright (C) 2026  Simon Clay
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package convert

import (
	"strings"

	"github.com/simon-clay/3dprinting-gcode-dualextruder-processor/pkg/gcode"
)

// DetectToolhead runs the detection pass over src, recording the active
// toolhead in the session. It returns the number of lines examined.
//
// Observing both extruders active is a ConflictError; observing neither
// over the whole file is a UsageError. Both abort before any output
// file exists.
func DetectToolhead(src gcode.LineSource, s *Session) (int, error) {
	lines := 0
	err := src.Each(func(n int, line string) error {
		lines = n
		tokens := gcode.Tokenize(line)
		switch gcode.Classify(gcode.Verb(tokens)) {
		case gcode.ExtruderForward, gcode.ExtruderReverse:
			return s.claimFromDesignator(tokens)
		case gcode.SetTemperature:
			return s.claimFromTemperature(tokens)
		}
		return nil
	})
	if err != nil {
		return lines, err
	}
	if s.active == ToolheadUnknown {
		return lines, UsageError()
	}
	return lines, nil
}

// claimFromDesignator handles the extruder on commands: a designator in
// the token right after the verb claims that toolhead. Anything else,
// including a bare verb, carries no signal.
func (s *Session) claimFromDesignator(tokens []string) error {
	if len(tokens) < 2 {
		return nil
	}
	switch tokens[1] {
	case s.prof.Toolhead0:
		return s.claim(ToolheadRight)
	case s.prof.Toolhead1:
		return s.claim(ToolheadLeft)
	}
	return nil
}

// claimFromTemperature handles set temperature lines: every remaining
// token is scanned, recording which designators appear and the last
// seen temperature value. A strictly positive temperature claims each
// toolhead whose designator appeared; standby lines (S0) claim nothing.
func (s *Session) claimFromTemperature(tokens []string) error {
	var sawT0, sawT1 bool
	temp := 0
	for _, tok := range tokens[1:] {
		switch tok {
		case s.prof.Toolhead0:
			sawT0 = true
		case s.prof.Toolhead1:
			sawT1 = true
		default:
			if strings.HasPrefix(tok, s.prof.TemperatureMarker) {
				if v, ok := leadingInt(tok[1:]); ok {
					temp = v
				}
			}
		}
	}
	if sawT0 && temp > 0 {
		if err := s.claim(ToolheadRight); err != nil {
			return err
		}
	}
	if sawT1 && temp > 0 {
		if err := s.claim(ToolheadLeft); err != nil {
			return err
		}
	}
	return nil
}
