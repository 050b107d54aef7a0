package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the navigation bindings of the grid view.
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	HalfUp   key.Binding
	HalfDown key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Goto     key.Binding
	Filter   key.Binding
	Clear    key.Binding
	Logs     key.Binding
	LogLevel key.Binding
	Measure  key.Binding
	Reload   key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	HalfUp:   key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("^u", "half page up")),
	HalfDown: key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("^d", "half page down")),
	PageUp:   key.NewBinding(key.WithKeys("pgup", "b"), key.WithHelp("pgup", "page up")),
	PageDown: key.NewBinding(key.WithKeys("pgdown", " ", "f"), key.WithHelp("pgdn", "page down")),
	Top:      key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top")),
	Bottom:   key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "bottom")),
	Goto:     key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "goto")),
	Filter:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
	Clear:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear filter")),
	Logs:     key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "logs")),
	LogLevel: key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "log level")),
	Measure:  key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "measure")),
	Reload:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// hints are the bindings advertised in the status bar.
func (k keyMap) hints() []key.Binding {
	return []key.Binding{k.Filter, k.Goto, k.Top, k.Bottom, k.Logs, k.Quit}
}
