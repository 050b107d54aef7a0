package tui

import (
	"fmt"
	"log"
	"strings"
	"sync"
)

// Global log panel instance
var (
	globalLogPanel *LogPanelModel
	logPanelMu     sync.RWMutex
)

// SetLogPanel sets the global log panel for capturing logs
func SetLogPanel(panel *LogPanelModel) {
	logPanelMu.Lock()
	defer logPanelMu.Unlock()
	globalLogPanel = panel
}

// GetLogPanel returns the global log panel
func GetLogPanel() *LogPanelModel {
	logPanelMu.RLock()
	defer logPanelMu.RUnlock()
	return globalLogPanel
}

// LogDebug logs a debug message
func LogDebug(format string, args ...interface{}) {
	logMessage(LevelDebug, format, args...)
}

// LogInfo logs an info message
func LogInfo(format string, args ...interface{}) {
	logMessage(LevelInfo, format, args...)
}

// LogWarn logs a warning message
func LogWarn(format string, args ...interface{}) {
	logMessage(LevelWarn, format, args...)
}

// LogErr logs an error message
func LogErr(format string, args ...interface{}) {
	logMessage(LevelErr, format, args...)
}

// logMessage sends a message to the global log panel
func logMessage(level LogLevel, format string, args ...interface{}) {
	addEntry(level, fmt.Sprintf(format, args...))
}

func addEntry(level LogLevel, msg string) {
	// Clean up the message (remove newlines at end)
	msg = strings.TrimRight(msg, "\n\r")

	logPanelMu.RLock()
	panel := globalLogPanel
	logPanelMu.RUnlock()

	if panel != nil {
		panel.AddEntry(level, msg)
	}
}

// panelWriter feeds standard log output into the log panel, one entry
// per line, using the "[LEVEL]" prefix for the severity.
type panelWriter struct{}

func (panelWriter) Write(p []byte) (int, error) {
	for _, line := range strings.Split(string(p), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		level, msg := parseLogLevel(line)
		addEntry(level, msg)
	}
	return len(p), nil
}

// InitLogging routes the standard logger into the log panel so nothing is
// written to the terminal under the alt screen. Call this early in main.
func InitLogging() {
	log.SetOutput(panelWriter{})
	log.SetFlags(0)
}

// parseLogLevel attempts to parse a log level from a message prefix
// Returns the level and the message with prefix removed
func parseLogLevel(msg string) (LogLevel, string) {
	msg = strings.TrimSpace(msg)

	prefixes := []struct {
		tag   string
		level LogLevel
	}{
		{"[DEBUG]", LevelDebug},
		{"[INFO]", LevelInfo},
		{"[WARN]", LevelWarn},
		{"[WARNING]", LevelWarn},
		{"[ERR]", LevelErr},
		{"[ERROR]", LevelErr},
	}
	for _, p := range prefixes {
		if rest, ok := strings.CutPrefix(msg, p.tag); ok {
			return p.level, strings.TrimSpace(rest)
		}
	}

	// Default to info if no prefix found
	return LevelInfo, msg
}
