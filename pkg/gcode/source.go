// Restartable line sources for the dual extruder converter
//
// The converter makes two full forward passes over the same input: one to
// detect which extruder the file was authored for, one to rewrite it. A
// LineSource is a finite sequence of lines that can be replayed from the
// start, so both passes are guaranteed to observe the identical lines.
//
// Copyright (C) 2026  Simon Clay
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package gcode

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// maxLineBytes bounds a single scanned line. G-code lines are short in
// practice (~1000 bytes); this only guards against pathological input.
const maxLineBytes = 1 << 20

// LineSource yields the lines of an input, restartable from the start.
// Lines are delivered without their trailing newline.
type LineSource interface {
	// Each calls fn once per line, in order, with the 1-based line
	// number. A non-nil error from fn stops iteration and is returned
	// unchanged. Any resource held during iteration is released on
	// every exit path.
	Each(fn func(n int, line string) error) error
}

// FileSource reads lines from a file on disk, reopening it for each
// pass. Memory stays flat no matter how large the print file is.
type FileSource struct {
	path string
}

// NewFileSource returns a LineSource backed by the file at path. The
// file is not opened until the first Each call.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Path returns the backing file path.
func (s *FileSource) Path() string {
	return s.path
}

// Each reopens the file and scans it front to back.
func (s *FileSource) Each(fn func(n int, line string) error) error {
	f, err := os.Open(s.path)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 4096), maxLineBytes)

	n := 0
	for scanner.Scan() {
		n++
		if err := fn(n, scanner.Text()); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", s.path, err)
	}
	return nil
}

// MemorySource replays a retained slice of lines. Used by tests and by
// callers that already hold the document in memory.
type MemorySource struct {
	lines []string
}

// NewMemorySource returns a LineSource over the given lines.
func NewMemorySource(lines []string) *MemorySource {
	return &MemorySource{lines: lines}
}

// ParseMemorySource splits a whole document into a MemorySource. A
// trailing newline does not produce a final empty line.
func ParseMemorySource(doc string) *MemorySource {
	doc = strings.TrimSuffix(doc, "\n")
	if doc == "" {
		return &MemorySource{}
	}
	return &MemorySource{lines: strings.Split(doc, "\n")}
}

// Each replays the retained lines in order.
func (s *MemorySource) Each(fn func(n int, line string) error) error {
	for i, line := range s.lines {
		if err := fn(i+1, line); err != nil {
			return err
		}
	}
	return nil
}
