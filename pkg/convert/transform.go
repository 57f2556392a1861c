// Line transform pass for the dual extruder converter
//
// Second forward pass over the input. Each line is tokenized,
// classified and rewritten into zero, one or two output lines: commands
// for the unused extruder are dropped, extruder control commands are
// duplicated for both toolheads, and coordinated moves have their
// extrusion length split into the two channels, rescaled by the
// filament area ratio against the baseline. The extrusion split is
// derived from "Dual Extrude Both Extruders at Once for Replicator" by
// thorstadg on thingiverse.com.
//
// Copyright (C) 2026  Simon Clay
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package convert

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/simon-clay/3dprinting-gcode-dualextruder-processor/pkg/gcode"
)

// Transform runs the rewrite pass over src, writing converted lines to
// w immediately and in order. The session must already carry the active
// toolhead from the detection pass. Returns the number of input lines
// processed.
//
// A FormatError aborts mid-run, leaving whatever output was already
// written; it cites the 1-based source line number.
func Transform(src gcode.LineSource, s *Session, w io.Writer) (int, error) {
	bw := bufio.NewWriter(w)
	notUsed := s.inactiveDesignator()

	lines := 0
	err := src.Each(func(n int, line string) error {
		lines = n
		tokens := gcode.Tokenize(line)
		cmd := gcode.Classify(gcode.Verb(tokens))

		var out string
		var err error
		switch cmd {
		case gcode.ExtruderForward, gcode.ExtruderReverse, gcode.ExtruderOff, gcode.ToolChange:
			out = s.duplicateCommand(cmd, tokens, notUsed)
		case gcode.SetTemperature:
			out = s.rewriteTemperature(cmd, tokens, notUsed)
		case gcode.SetExtruderSpeed:
			out, err = s.rewriteSpeed(cmd, tokens, notUsed, n)
		case gcode.CoordinatedMove:
			out, err = s.rewriteMove(cmd, tokens, n)
		default:
			// Outside the vocabulary: pass through untouched.
			out = line + "\n"
		}
		if err != nil {
			return err
		}
		if out == "" {
			return nil
		}
		if _, err := bw.WriteString(out); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		// Keep whatever already reached w; no rollback.
		bw.Flush()
		return lines, err
	}
	if err := bw.Flush(); err != nil {
		return lines, err
	}
	return lines, nil
}

// duplicateCommand handles the extruder on/off and tool change
// commands: dropped when addressed to the unused extruder, otherwise
// issued once per toolhead.
func (s *Session) duplicateCommand(cmd gcode.Command, tokens []string, notUsed string) string {
	if len(tokens) > 1 && tokens[1] == notUsed {
		return ""
	}
	verb := cmd.Verb()
	return fmt.Sprintf("%s %s\n%s %s\n", verb, s.prof.Toolhead1, verb, s.prof.Toolhead0)
}

// rewriteTemperature handles set temperature commands. The temperature
// is taken from the first marker-prefixed token (0 when absent) and the
// command is issued once per toolhead.
func (s *Session) rewriteTemperature(cmd gcode.Command, tokens []string, notUsed string) string {
	temp := 0
	haveTemp := false
	for _, tok := range tokens[1:] {
		if tok == notUsed {
			return ""
		}
		if !haveTemp && strings.HasPrefix(tok, s.prof.TemperatureMarker) {
			if v, ok := leadingInt(tok[1:]); ok {
				temp = v
				haveTemp = true
			}
		}
	}
	verb := cmd.Verb()
	return fmt.Sprintf("%s %s%d %s\n%s %s%d %s\n",
		verb, s.prof.TemperatureMarker, temp, s.prof.Toolhead1,
		verb, s.prof.TemperatureMarker, temp, s.prof.Toolhead0)
}

// rewriteSpeed handles set extruder speed commands. The speed token is
// carried verbatim and the command issued once per toolhead. A missing
// or overlong speed token aborts the run.
func (s *Session) rewriteSpeed(cmd gcode.Command, tokens []string, notUsed string, n int) (string, error) {
	speed := ""
	for _, tok := range tokens[1:] {
		if tok == notUsed {
			return "", nil
		}
		if strings.HasPrefix(tok, s.prof.SpeedMarker) {
			if len(tok) > s.prof.MaxArgumentLength {
				return "", FormatError(n, "speed command too long")
			}
			speed = tok
		}
	}
	if speed == "" {
		return "", FormatError(n, "no speed in command")
	}
	verb := cmd.Verb()
	return fmt.Sprintf("%s %s %s\n%s %s %s\n",
		verb, speed, s.prof.Toolhead1,
		verb, speed, s.prof.Toolhead0), nil
}

// rewriteMove handles coordinated moves. Extrusion parameters (the
// extrusion marker or either channel marker) are split into the two
// channels: the active toolhead's channel echoes the source value
// verbatim while the added toolhead's channel carries the value
// rescaled by the area ratio against the baseline, rounded half-up to
// five decimals. The first extrusion-bearing move establishes the
// baseline and is emitted unscaled on both channels. All other tokens
// are copied verbatim in order.
func (s *Session) rewriteMove(cmd gcode.Command, tokens []string, n int) (string, error) {
	var sb strings.Builder
	sb.WriteString(cmd.Verb())

	for _, tok := range tokens[1:] {
		if !s.isExtrusionToken(tok) {
			sb.WriteByte(' ')
			sb.WriteString(tok)
			continue
		}
		if len(tok) > s.prof.MaxArgumentLength {
			return "", FormatError(n, "E parameter too long")
		}

		// Value may fail to parse (bare marker); treated as zero, the
		// raw text still echoes through the source channel.
		raw := tok[1:]
		value, _ := strconv.ParseFloat(raw, 64)

		if s.baseline == nil {
			sb.WriteString(fmt.Sprintf(" %s%s %s%s", s.prof.ChannelA, raw, s.prof.ChannelB, raw))
			v := value
			s.baseline = &v
			continue
		}

		// A value below the baseline is a retract, not an error.
		newE := round5(((value - *s.baseline) * s.ratio) + *s.baseline)
		if s.active == ToolheadRight {
			sb.WriteString(fmt.Sprintf(" %s%.5f %s%s", s.prof.ChannelB, newE, s.prof.ChannelA, raw))
		} else {
			sb.WriteString(fmt.Sprintf(" %s%.5f %s%s", s.prof.ChannelA, newE, s.prof.ChannelB, raw))
		}
	}
	sb.WriteByte('\n')
	return sb.String(), nil
}

// isExtrusionToken reports whether a move token carries extrusion
// length: the canonical extrusion marker or either split channel
// marker.
func (s *Session) isExtrusionToken(tok string) bool {
	return strings.HasPrefix(tok, s.prof.ExtrusionMarker) ||
		strings.HasPrefix(tok, s.prof.ChannelA) ||
		strings.HasPrefix(tok, s.prof.ChannelB)
}

// round5 rounds half-up to five decimal places.
func round5(x float64) float64 {
	return math.Floor(x*100000+0.5) / 100000
}

// leadingInt parses the leading decimal integer of s, with an optional
// sign. It mirrors a C sscanf %d: "200.5" yields 200, a bare sign or
// empty string yields nothing.
func leadingInt(str string) (int, bool) {
	i := 0
	if i < len(str) && (str[i] == '-' || str[i] == '+') {
		i++
	}
	j := i
	for j < len(str) && str[j] >= '0' && str[j] <= '9' {
		j++
	}
	if j == i {
		return 0, false
	}
	v, err := strconv.Atoi(str[:j])
	if err != nil {
		return 0, false
	}
	return v, true
}
