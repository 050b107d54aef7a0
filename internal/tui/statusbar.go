package tui

import (
	"fmt"
	"strings"

	"github.com/STRML/tscroll/internal/scroller"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// StatusBarModel represents the bottom status bar
type StatusBarModel struct {
	width    int
	source   string
	info     scroller.PageInfo
	hasInfo  bool
	lang     scroller.InfoLanguage
	filter   string
	fetching bool
	spinner  string
	err      error
	hints    []key.Binding
}

// NewStatusBarModel creates a new status bar
func NewStatusBarModel() StatusBarModel {
	return StatusBarModel{
		lang:  scroller.DefaultInfoLanguage(),
		hints: keys.hints(),
	}
}

// View renders the status bar
func (s StatusBarModel) View() string {
	sourceStyle := lipgloss.NewStyle().
		Background(ColorAccent).
		Foreground(lipgloss.Color("#FFFFFF")).
		Padding(0, 1).
		Bold(true)
	left := sourceStyle.Render(s.source)

	switch {
	case s.err != nil:
		left += " " + ErrorStyle.Render("error: "+s.err.Error())
	case s.hasInfo:
		left += " " + scroller.FormatInfo(s.info, s.lang)
	}
	if s.filter != "" {
		left += " " + PromptStyle.Render(fmt.Sprintf("/%s", s.filter))
	}
	if s.fetching && s.spinner != "" {
		left += " " + s.spinner
	}

	parts := make([]string, 0, len(s.hints))
	for _, b := range s.hints {
		h := b.Help()
		parts = append(parts, KeyHint(h.Key, h.Desc))
	}
	right := strings.Join(parts, " ")

	// Calculate padding to right-align hints; drop them when space is short
	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right) - 2 // 2 for padding
	if padding < 1 {
		right = ""
		padding = 1
	}

	return StatusBarStyle.Width(s.width).MaxHeight(1).Render(left + strings.Repeat(" ", padding) + right)
}

// SetWidth sets the status bar width
func (s *StatusBarModel) SetWidth(width int) {
	s.width = width
}

// SetSource sets the name of the source being viewed
func (s *StatusBarModel) SetSource(name string) {
	s.source = name
}

// SetPageInfo sets the visible page
func (s *StatusBarModel) SetPageInfo(info scroller.PageInfo) {
	s.info = info
	s.hasInfo = true
}

// SetFilter sets the active filter shown next to the info text
func (s *StatusBarModel) SetFilter(filter string) {
	s.filter = filter
}

// SetFetching shows spinner while a page request is in flight
func (s *StatusBarModel) SetFetching(fetching bool, spinner string) {
	s.fetching = fetching
	s.spinner = spinner
}

// SetError replaces the info text with err; nil clears it
func (s *StatusBarModel) SetError(err error) {
	s.err = err
}
