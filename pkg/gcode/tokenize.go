// Line tokenizing for the dual extruder converter
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package gcode

import "strings"

// Tokenize splits a raw line into its whitespace-delimited fields. The
// full token list is materialized up front and consumed by index; there
// is no resumable cursor state between calls. A blank line yields an
// empty (nil) slice.
func Tokenize(line string) []string {
	return strings.Fields(line)
}

// Verb returns the leading token of a line, or "" for a blank line.
func Verb(tokens []string) string {
	if len(tokens) == 0 {
		return ""
	}
	return tokens[0]
}
