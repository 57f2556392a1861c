// Structured logging for the dual extruder converter
//
// Provides a small leveled logger with support for:
// - Log levels (DEBUG, INFO, WARN, ERROR)
// - Structured fields (key-value pairs)
// - Text and JSON output formats
// - ANSI colors when writing to a terminal
// - Per-component loggers with prefixes
//
// Copyright (C) 2026  Simon Clay
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package log

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"
)

// LogLevel represents the severity of a log message
type LogLevel int

const (
	// DEBUG level for detailed debugging information
	DEBUG LogLevel = iota

	// INFO level for general informational messages
	INFO

	// WARN level for warning messages
	WARN

	// ERROR level for error messages
	ERROR
)

// String returns the string representation of the log level
func (l LogLevel) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel parses a string into a LogLevel
func ParseLevel(s string) LogLevel {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return DEBUG
	case "INFO":
		return INFO
	case "WARN", "WARNING":
		return WARN
	case "ERROR":
		return ERROR
	default:
		return INFO
	}
}

// OutputFormat specifies the output format for log messages
type OutputFormat int

const (
	// FormatText outputs human-readable text format
	FormatText OutputFormat = iota
	// FormatJSON outputs machine-readable JSON format
	FormatJSON
)

// Fields is a map of structured logging fields
type Fields map[string]interface{}

// Logger is the main logging interface
type Logger struct {
	mu         sync.Mutex
	prefix     string
	writer     io.Writer
	level      LogLevel
	timeFormat string
	colorize   bool
	outFormat  OutputFormat
}

// ANSI color codes for terminal output
var (
	ansiColors = map[LogLevel]string{
		DEBUG: "\x1b[36m", // Cyan
		INFO:  "\x1b[32m", // Green
		WARN:  "\x1b[33m", // Yellow
		ERROR: "\x1b[31m", // Red
	}
	ansiReset = "\x1b[0m"
)

// New creates a new logger with the given prefix writing to stderr.
// Colors are enabled only when stderr is a terminal and NO_COLOR is
// unset.
func New(prefix string) *Logger {
	return &Logger{
		prefix:     prefix,
		writer:     os.Stderr,
		level:      INFO,
		timeFormat: "2006-01-02 15:04:05.000",
		colorize:   os.Getenv("NO_COLOR") == "" && term.IsTerminal(int(os.Stderr.Fd())),
		outFormat:  FormatText,
	}
}

// SetLevel sets the minimum log level
func (l *Logger) SetLevel(level LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// SetWriter sets the output writer (e.g., for testing)
func (l *Logger) SetWriter(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.writer = w
}

// SetColorize enables or disables colorized output
func (l *Logger) SetColorize(enable bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.colorize = enable
}

// SetFormat sets the output format (FormatText or FormatJSON)
func (l *Logger) SetFormat(format OutputFormat) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.outFormat = format
}

// WithPrefix returns a new logger with a modified prefix
func (l *Logger) WithPrefix(prefix string) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	return &Logger{
		prefix:     prefix,
		writer:     l.writer,
		level:      l.level,
		timeFormat: l.timeFormat,
		colorize:   l.colorize,
		outFormat:  l.outFormat,
	}
}

// formatText formats the log message as text
func (l *Logger) formatText(level LogLevel, msg string, fields Fields) string {
	var sb strings.Builder

	sb.WriteString(time.Now().Format(l.timeFormat))
	sb.WriteString(" [")
	sb.WriteString(fmt.Sprintf("%-5s", level.String()))
	sb.WriteString("] ")

	if l.colorize {
		sb.WriteString(ansiColors[level])
	}
	sb.WriteString(l.prefix)
	if l.colorize {
		sb.WriteString(ansiReset)
	}
	sb.WriteString(": ")
	sb.WriteString(msg)

	if len(fields) > 0 {
		sb.WriteString(" {")
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for i, k := range keys {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(k)
			sb.WriteString("=")
			sb.WriteString(fmt.Sprintf("%v", fields[k]))
		}
		sb.WriteString("}")
	}

	sb.WriteString("\n")
	return sb.String()
}

// jsonLogEntry is the structure for JSON formatted log entries
type jsonLogEntry struct {
	Timestamp string                 `json:"timestamp"`
	Level     string                 `json:"level"`
	Logger    string                 `json:"logger"`
	Message   string                 `json:"message"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
}

// formatJSON formats the log message as JSON
func (l *Logger) formatJSON(level LogLevel, msg string, fields Fields) string {
	entry := jsonLogEntry{
		Timestamp: time.Now().Format(time.RFC3339Nano),
		Level:     level.String(),
		Logger:    l.prefix,
		Message:   msg,
		Fields:    fields,
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Sprintf(`{"error":"failed to marshal log entry: %v"}`+"\n", err)
	}
	return string(data) + "\n"
}

// log writes a message at the given level
func (l *Logger) log(level LogLevel, msg string, args []interface{}, fields Fields) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level {
		return
	}

	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}

	var output string
	if l.outFormat == FormatJSON {
		output = l.formatJSON(level, msg, fields)
	} else {
		output = l.formatText(level, msg, fields)
	}
	fmt.Fprint(l.writer, output)
}

// Debug logs a message at DEBUG level
func (l *Logger) Debug(msg string, args ...interface{}) {
	l.log(DEBUG, msg, args, nil)
}

// Info logs a message at INFO level
func (l *Logger) Info(msg string, args ...interface{}) {
	l.log(INFO, msg, args, nil)
}

// Warn logs a message at WARN level
func (l *Logger) Warn(msg string, args ...interface{}) {
	l.log(WARN, msg, args, nil)
}

// Error logs a message at ERROR level
func (l *Logger) Error(msg string, args ...interface{}) {
	l.log(ERROR, msg, args, nil)
}

// InfoFields logs a message with structured fields at INFO level
func (l *Logger) InfoFields(msg string, fields Fields) {
	l.log(INFO, msg, nil, fields)
}

// DebugFields logs a message with structured fields at DEBUG level
func (l *Logger) DebugFields(msg string, fields Fields) {
	l.log(DEBUG, msg, nil, fields)
}

// ConfigureFromEnv applies environment-based configuration to the logger.
// Environment variables:
//   - DUALEXTRUDE_LOG_LEVEL: DEBUG, INFO, WARN, ERROR
//   - DUALEXTRUDE_LOG_FORMAT: text, json
//   - NO_COLOR: any non-empty value disables colors
func ConfigureFromEnv(l *Logger) {
	if levelStr := os.Getenv("DUALEXTRUDE_LOG_LEVEL"); levelStr != "" {
		l.SetLevel(ParseLevel(levelStr))
	}
	if formatStr := os.Getenv("DUALEXTRUDE_LOG_FORMAT"); formatStr != "" {
		switch strings.ToLower(formatStr) {
		case "json":
			l.SetFormat(FormatJSON)
		case "text":
			l.SetFormat(FormatText)
		}
	}
	if os.Getenv("NO_COLOR") != "" {
		l.SetColorize(false)
	}
}
