// Tests for line tokenizing and restartable line sources.
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package gcode

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	cases := []struct {
		line string
		want []string
	}{
		{"", nil},
		{"   ", nil},
		{"G1 X10 E5", []string{"G1", "X10", "E5"}},
		{"  M104   S200\tT0 ", []string{"M104", "S200", "T0"}},
	}

	for _, c := range cases {
		got := Tokenize(c.line)
		if len(got) == 0 && len(c.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("Tokenize(%q) = %v, want %v", c.line, got, c.want)
		}
	}
}

func TestVerbToken(t *testing.T) {
	if got := Verb(Tokenize("G1 X10")); got != "G1" {
		t.Errorf("Verb = %q, want G1", got)
	}
	if got := Verb(Tokenize("   ")); got != "" {
		t.Errorf("Verb of blank line = %q, want empty", got)
	}
}

// collect drains a source into a slice, checking 1-based numbering.
func collect(t *testing.T, src LineSource) []string {
	t.Helper()
	var lines []string
	err := src.Each(func(n int, line string) error {
		if n != len(lines)+1 {
			t.Fatalf("line number %d, want %d", n, len(lines)+1)
		}
		lines = append(lines, line)
		return nil
	})
	if err != nil {
		t.Fatalf("Each failed: %v", err)
	}
	return lines
}

func TestMemorySourceReplay(t *testing.T) {
	src := NewMemorySource([]string{"M104 S200 T0", "G1 X10 E5"})

	first := collect(t, src)
	second := collect(t, src)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("replay differs: %v vs %v", first, second)
	}
	if len(first) != 2 {
		t.Errorf("expected 2 lines, got %d", len(first))
	}
}

func TestParseMemorySource(t *testing.T) {
	src := ParseMemorySource("a\nb\n")
	if got := collect(t, src); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("got %v, want [a b]", got)
	}

	if got := collect(t, ParseMemorySource("")); len(got) != 0 {
		t.Errorf("empty doc yielded %v", got)
	}
}

func TestFileSourceRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.gcode")
	content := "M104 S200 T0\nG1 X10 E5\nG1 X20 E8\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	src := NewFileSource(path)
	first := collect(t, src)
	second := collect(t, src)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("passes saw different lines: %v vs %v", first, second)
	}
	want := []string{"M104 S200 T0", "G1 X10 E5", "G1 X20 E8"}
	if !reflect.DeepEqual(first, want) {
		t.Errorf("got %v, want %v", first, want)
	}
}

func TestFileSourceMissing(t *testing.T) {
	src := NewFileSource(filepath.Join(t.TempDir(), "nope.gcode"))
	err := src.Each(func(n int, line string) error { return nil })
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !os.IsNotExist(err) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestEachStopsOnError(t *testing.T) {
	src := NewMemorySource([]string{"one", "two", "three"})
	sentinel := errors.New("stop")

	calls := 0
	err := src.Each(func(n int, line string) error {
		calls++
		if n == 2 {
			return sentinel
		}
		return nil
	})

	if !errors.Is(err, sentinel) {
		t.Errorf("expected sentinel error, got %v", err)
	}
	if calls != 2 {
		t.Errorf("expected iteration to stop after 2 calls, got %d", calls)
	}
}
