// Structured logging tests
//
// Copyright (C) 2026  Simon Clay
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestLoggerBasic(t *testing.T) {
	var buf bytes.Buffer
	logger := New("test")
	logger.SetWriter(&buf)
	logger.SetLevel(DEBUG)
	logger.SetColorize(false)

	logger.Info("hello %s", "world")

	output := buf.String()
	if !strings.Contains(output, "[INFO ]") {
		t.Errorf("expected INFO level, got: %s", output)
	}
	if !strings.Contains(output, "test:") {
		t.Errorf("expected prefix 'test:', got: %s", output)
	}
	if !strings.Contains(output, "hello world") {
		t.Errorf("expected message 'hello world', got: %s", output)
	}
}

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := New("test")
	logger.SetWriter(&buf)
	logger.SetColorize(false)

	// Default level is INFO, so DEBUG should be filtered
	logger.SetLevel(INFO)
	logger.Debug("debug message")
	if buf.Len() != 0 {
		t.Errorf("expected DEBUG to be filtered, got: %s", buf.String())
	}

	logger.Info("info message")
	if !strings.Contains(buf.String(), "info message") {
		t.Errorf("expected INFO to pass, got: %s", buf.String())
	}

	buf.Reset()

	logger.SetLevel(ERROR)
	logger.Warn("warn message")
	if buf.Len() != 0 {
		t.Errorf("expected WARN to be filtered at ERROR level, got: %s", buf.String())
	}
	logger.Error("error message")
	if !strings.Contains(buf.String(), "error message") {
		t.Errorf("expected ERROR to pass, got: %s", buf.String())
	}
}

func TestLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New("test")
	logger.SetWriter(&buf)
	logger.SetFormat(FormatJSON)
	logger.SetLevel(DEBUG)

	logger.Info("json test")

	var entry jsonLogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse JSON: %v, output: %s", err, buf.String())
	}

	if entry.Level != "INFO" {
		t.Errorf("expected level INFO, got: %s", entry.Level)
	}
	if entry.Logger != "test" {
		t.Errorf("expected logger 'test', got: %s", entry.Logger)
	}
	if entry.Message != "json test" {
		t.Errorf("expected message 'json test', got: %s", entry.Message)
	}
}

func TestLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New("test")
	logger.SetWriter(&buf)
	logger.SetColorize(false)

	logger.InfoFields("converted", Fields{"lines": 42, "ratio": 1.0})

	output := buf.String()
	if !strings.Contains(output, "lines=42") {
		t.Errorf("expected field 'lines=42', got: %s", output)
	}
	if !strings.Contains(output, "ratio=1") {
		t.Errorf("expected field 'ratio=1', got: %s", output)
	}
}

func TestLoggerWithPrefix(t *testing.T) {
	var buf bytes.Buffer
	logger := New("parent")
	logger.SetWriter(&buf)
	logger.SetColorize(false)

	child := logger.WithPrefix("child")
	child.Info("from child")

	if !strings.Contains(buf.String(), "child:") {
		t.Errorf("expected child prefix, got: %s", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want LogLevel
	}{
		{"debug", DEBUG},
		{"DEBUG", DEBUG},
		{"info", INFO},
		{"warn", WARN},
		{"warning", WARN},
		{"error", ERROR},
		{"bogus", INFO},
	}
	for _, c := range cases {
		if got := ParseLevel(c.in); got != c.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}
