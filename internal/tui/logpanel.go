package tui

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// LogLevel represents the severity of a log message
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelErr
)

// String returns the display string for a log level
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelErr:
		return "ERR"
	default:
		return "???"
	}
}

var levelStyles = map[LogLevel]lipgloss.Style{
	LevelDebug: lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")),
	LevelInfo:  lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA")),
	LevelWarn:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FFAA00")),
	LevelErr:   lipgloss.NewStyle().Foreground(ColorError).Bold(true),
}

// LogEntry represents a single log message
type LogEntry struct {
	Time    time.Time
	Level   LogLevel
	Message string
}

// LogPanelModel is the collapsible panel showing engine and source logs.
// Entries may be added from any goroutine.
type LogPanelModel struct {
	mu          sync.RWMutex
	entries     []LogEntry
	maxEntries  int
	width       int
	visible     bool
	filterLevel LogLevel // Show this level and above
}

// LogPanelHeight is the panel height including its border when visible.
const LogPanelHeight = 8

// MaxLogEntries is the maximum number of log entries to keep
const MaxLogEntries = 1000

// NewLogPanelModel creates a new log panel
func NewLogPanelModel() *LogPanelModel {
	return &LogPanelModel{
		entries:     make([]LogEntry, 0, MaxLogEntries),
		maxEntries:  MaxLogEntries,
		filterLevel: LevelInfo,
	}
}

// AddEntry adds a log entry to the panel
func (m *LogPanelModel) AddEntry(level LogLevel, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Circular buffer behavior - remove oldest if at capacity
	if len(m.entries) >= m.maxEntries {
		m.entries = m.entries[1:]
	}
	m.entries = append(m.entries, LogEntry{Time: time.Now(), Level: level, Message: message})
}

// SetWidth sets the panel width
func (m *LogPanelModel) SetWidth(width int) {
	m.width = width
}

// Toggle toggles panel visibility
func (m *LogPanelModel) Toggle() {
	m.visible = !m.visible
}

// IsVisible returns whether the panel is visible
func (m *LogPanelModel) IsVisible() bool {
	return m.visible
}

// Height returns the lines the panel takes on screen.
func (m *LogPanelModel) Height() int {
	if !m.visible {
		return 0
	}
	return LogPanelHeight
}

// SetFilterLevel shows only entries at level and above.
func (m *LogPanelModel) SetFilterLevel(level LogLevel) {
	m.filterLevel = level
}

// CycleFilter cycles through filter levels
func (m *LogPanelModel) CycleFilter() {
	m.filterLevel = (m.filterLevel + 1) % 4
}

// FilterLevel returns the current filter level
func (m *LogPanelModel) FilterLevel() LogLevel {
	return m.filterLevel
}

// filteredEntries returns entries matching the current filter
func (m *LogPanelModel) filteredEntries() []LogEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var filtered []LogEntry
	for _, e := range m.entries {
		if e.Level >= m.filterLevel {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// Latest returns the newest entry at or above level.
func (m *LogPanelModel) Latest(level LogLevel) (LogEntry, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := len(m.entries) - 1; i >= 0; i-- {
		if m.entries[i].Level >= level {
			return m.entries[i], true
		}
	}
	return LogEntry{}, false
}

// View renders the newest entries inside a rounded border.
func (m *LogPanelModel) View() string {
	if !m.visible || m.width < 20 {
		return ""
	}

	contentHeight := LogPanelHeight - 2
	contentWidth := m.width - 2

	filtered := m.filteredEntries()
	if len(filtered) > contentHeight {
		filtered = filtered[len(filtered)-contentHeight:]
	}
	lines := make([]string, 0, contentHeight)
	for _, e := range filtered {
		lines = append(lines, formatEntry(e, contentWidth))
	}
	for len(lines) < contentHeight {
		lines = append(lines, "")
	}

	title := fmt.Sprintf(" Logs [%s+] ", m.filterLevel)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(contentWidth).
		Render(strings.Join(lines, "\n"))

	// Splice the title into the top border.
	boxLines := strings.Split(box, "\n")
	top := []rune(ansi.Strip(boxLines[0]))
	if len(top) > len(title)+2 {
		boxLines[0] = lipgloss.NewStyle().Foreground(ColorBorder).Render(string(top[:2])) +
			KeyHintStyle.Bold(true).Render(title) +
			lipgloss.NewStyle().Foreground(ColorBorder).Render(string(top[2+len([]rune(title)):]))
	}
	return strings.Join(boxLines, "\n")
}

// formatEntry renders "HH:MM:SS.mmm [LEVEL] message" truncated to width.
func formatEntry(e LogEntry, width int) string {
	stamp := lipgloss.NewStyle().Foreground(lipgloss.Color("#555555")).Render(e.Time.Format("15:04:05.000"))
	level := levelStyles[e.Level].Render(fmt.Sprintf("[%-5s]", e.Level))
	return ansi.Truncate(stamp+" "+level+" "+e.Message, width, "…")
}

// Clear removes all log entries
func (m *LogPanelModel) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = m.entries[:0]
}

// EntryCount returns the total number of entries
func (m *LogPanelModel) EntryCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
