package tui

import (
	"strings"
	"testing"
)

func TestLogPanelModel_Basic(t *testing.T) {
	panel := NewLogPanelModel()

	// Initially not visible
	if panel.IsVisible() {
		t.Error("Panel should not be visible initially")
	}
	if panel.Height() != 0 {
		t.Errorf("Hidden panel height = %d, want 0", panel.Height())
	}

	panel.Toggle()
	if !panel.IsVisible() {
		t.Error("Panel should be visible after toggle")
	}
	if panel.Height() != LogPanelHeight {
		t.Errorf("Visible panel height = %d, want %d", panel.Height(), LogPanelHeight)
	}

	panel.Toggle()
	if panel.IsVisible() {
		t.Error("Panel should not be visible after second toggle")
	}
}

func TestLogPanelModel_Filter(t *testing.T) {
	panel := NewLogPanelModel()

	if panel.FilterLevel() != LevelInfo {
		t.Errorf("Expected default filter level INFO, got %s", panel.FilterLevel())
	}

	panel.AddEntry(LevelDebug, "debug")
	panel.AddEntry(LevelInfo, "info")
	panel.AddEntry(LevelWarn, "warn")
	panel.AddEntry(LevelErr, "error")

	tests := []struct {
		level LogLevel
		want  int
	}{
		{LevelDebug, 4},
		{LevelInfo, 3},
		{LevelWarn, 2},
		{LevelErr, 1},
	}
	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			panel.SetFilterLevel(tt.level)
			if got := len(panel.filteredEntries()); got != tt.want {
				t.Errorf("With %s filter, expected %d entries, got %d", tt.level, tt.want, got)
			}
		})
	}
}

func TestLogPanelModel_CycleFilter(t *testing.T) {
	panel := NewLogPanelModel()
	panel.SetFilterLevel(LevelErr)

	panel.CycleFilter()
	if panel.FilterLevel() != LevelDebug {
		t.Errorf("CycleFilter from ERR should wrap to DEBUG, got %s", panel.FilterLevel())
	}
	panel.CycleFilter()
	if panel.FilterLevel() != LevelInfo {
		t.Errorf("CycleFilter from DEBUG should go to INFO, got %s", panel.FilterLevel())
	}
}

func TestLogPanelModel_CircularBuffer(t *testing.T) {
	panel := NewLogPanelModel()

	// Fill beyond capacity
	for i := 0; i < MaxLogEntries+100; i++ {
		panel.AddEntry(LevelInfo, "message")
	}

	if panel.EntryCount() != MaxLogEntries {
		t.Errorf("Expected %d entries (max), got %d", MaxLogEntries, panel.EntryCount())
	}
}

func TestLogPanelModel_Clear(t *testing.T) {
	panel := NewLogPanelModel()

	panel.AddEntry(LevelInfo, "message 1")
	panel.AddEntry(LevelInfo, "message 2")
	panel.Clear()

	if panel.EntryCount() != 0 {
		t.Errorf("Expected 0 entries after clear, got %d", panel.EntryCount())
	}
}

func TestLogPanelModel_Latest(t *testing.T) {
	panel := NewLogPanelModel()

	if _, ok := panel.Latest(LevelDebug); ok {
		t.Error("Latest on an empty panel should report false")
	}

	panel.AddEntry(LevelErr, "fetch failed")
	panel.AddEntry(LevelInfo, "loaded")

	e, ok := panel.Latest(LevelWarn)
	if !ok || e.Message != "fetch failed" {
		t.Errorf("Latest(WARN) = %q, %v; want \"fetch failed\"", e.Message, ok)
	}
	e, ok = panel.Latest(LevelDebug)
	if !ok || e.Message != "loaded" {
		t.Errorf("Latest(DEBUG) = %q, %v; want \"loaded\"", e.Message, ok)
	}
}

func TestLogPanelModel_View(t *testing.T) {
	panel := NewLogPanelModel()
	panel.SetWidth(80)

	// View should be empty when not visible
	if view := panel.View(); view != "" {
		t.Error("View should be empty when panel is not visible")
	}

	panel.Toggle()
	panel.AddEntry(LevelInfo, "test message")
	panel.AddEntry(LevelDebug, "hidden message")

	view := panel.View()
	if !strings.Contains(view, "Logs [INFO+]") {
		t.Error("View should contain the title with the filter level")
	}
	if !strings.Contains(view, "test message") {
		t.Error("View should contain the info entry")
	}
	if strings.Contains(view, "hidden message") {
		t.Error("View should not contain entries below the filter level")
	}
	if got := len(strings.Split(view, "\n")); got != LogPanelHeight {
		t.Errorf("View has %d lines, want %d", got, LogPanelHeight)
	}
}

func TestLogPanelModel_ViewShowsNewest(t *testing.T) {
	panel := NewLogPanelModel()
	panel.SetWidth(80)
	panel.Toggle()

	for i := 0; i < 20; i++ {
		panel.AddEntry(LevelInfo, strings.Repeat("x", i))
	}
	panel.AddEntry(LevelInfo, "newest")

	view := panel.View()
	if !strings.Contains(view, "newest") {
		t.Error("View should end with the newest entry")
	}
	if got := len(strings.Split(view, "\n")); got != LogPanelHeight {
		t.Errorf("View has %d lines, want %d", got, LogPanelHeight)
	}
}

func TestLogPanelModel_ViewTooNarrow(t *testing.T) {
	panel := NewLogPanelModel()
	panel.SetWidth(10)
	panel.Toggle()
	if view := panel.View(); view != "" {
		t.Errorf("View at width 10 = %q, want empty", view)
	}
}

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelErr, "ERR"},
		{LogLevel(9), "???"},
	}

	for _, tc := range tests {
		if tc.level.String() != tc.expected {
			t.Errorf("Level %d String() = %s, expected %s", tc.level, tc.level.String(), tc.expected)
		}
	}
}
