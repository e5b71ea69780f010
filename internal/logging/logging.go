// ABOUTME: Subsystem logging to stderr
// ABOUTME: Keeps stdout clean for MCP stdio framing
package logging

import (
	"log"
	"os"
	"strings"
)

var debugEnabled = os.Getenv("FEEDLOG_DEBUG") != ""

func init() {
	log.SetOutput(os.Stderr)
}

// Info logs an informational message (always shown)
func Info(subsystem, format string, args ...any) {
	log.Printf("[%s] "+format, append([]any{subsystem}, args...)...)
}

// Debug logs a debug message (only shown if FEEDLOG_DEBUG is set)
func Debug(subsystem, format string, args ...any) {
	if debugEnabled {
		log.Printf("[%s] "+format, append([]any{subsystem}, args...)...)
	}
}

// Truncate shortens a string to maxLen for one-line logs
func Truncate(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.TrimSpace(s)
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
