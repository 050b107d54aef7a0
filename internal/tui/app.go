package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/STRML/tscroll/internal/scroller"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const toastDuration = 2 * time.Second

// wheelLines is how far one mouse wheel notch scrolls.
const wheelLines = 3

// Version info - set by main via SetVersionInfo
var (
	versionInfo = "dev"
	commitHash  = "unknown"
)

// SetVersionInfo sets the version info logged at startup
func SetVersionInfo(version, commit string) {
	versionInfo = version
	commitHash = commit
}

// cancelledMsg is sent when the app context is cancelled.
type cancelledMsg struct{}

// promptMode selects what the input line is collecting.
type promptMode int

const (
	promptNone promptMode = iota
	promptFilter
	promptGoto
)

// AppModel is the main application model
type AppModel struct {
	ctx         context.Context // App-level context for cancellation
	grid        *Grid
	session     *scroller.Session
	cfg         scroller.Config
	statusBar   StatusBarModel
	logPanel    *LogPanelModel
	prompt      textinput.Model
	promptMode  promptMode
	spinner     spinner.Model
	width       int
	height      int
	quitting    bool
	toast       string    // Temporary notification message
	toastExpiry time.Time // When toast should disappear
}

// NewAppModel creates the application around grid. The scroller session is
// attached once the terminal size is known.
func NewAppModel(ctx context.Context, grid *Grid, cfg scroller.Config) AppModel {
	panel := NewLogPanelModel()
	if cfg.Debug {
		panel.SetFilterLevel(LevelDebug)
	}
	SetLogPanel(panel)

	prompt := textinput.New()
	prompt.PromptStyle = PromptStyle
	prompt.CharLimit = 256

	spin := spinner.New()
	spin.Spinner = spinner.MiniDot
	spin.Style = lipgloss.NewStyle().Foreground(ColorAccent)

	sb := NewStatusBarModel()
	sb.SetSource(grid.Source().Name())

	return AppModel{
		ctx:       ctx,
		grid:      grid,
		cfg:       cfg,
		statusBar: sb,
		logPanel:  panel,
		prompt:    prompt,
		spinner:   spin,
	}
}

// Session returns the scroller session, nil until the first resize.
func (m AppModel) Session() *scroller.Session {
	return m.session
}

// Init starts listening for grid wakes
func (m AppModel) Init() tea.Cmd {
	LogInfo("tscroll %s (%s) viewing %s", versionInfo, commitHash, m.grid.Source().Name())
	return tea.Batch(m.grid.WaitForWake(), m.spinner.Tick, m.waitForCancel())
}

func (m AppModel) waitForCancel() tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		<-ctx.Done()
		return cancelledMsg{}
	}
}

// chromeHeight is every line that is not grid body.
func (m AppModel) chromeHeight() int {
	lines := 2 // header + status bar
	lines += m.logPanel.Height()
	if m.promptMode != promptNone {
		lines++
	}
	return lines
}

// Update handles messages
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.statusBar.SetWidth(msg.Width)
		m.logPanel.SetWidth(msg.Width)
		m.prompt.Width = max(msg.Width-4, 1)
		m.grid.SetChrome(m.chromeHeight())
		m.grid.SetSize(msg.Width, msg.Height)
		if m.session == nil {
			return m, m.attach()
		}
		return m, nil

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress {
			return m, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.grid.ScrollBy(-wheelLines * m.rowHeight())
		case tea.MouseButtonWheelDown:
			m.grid.ScrollBy(wheelLines * m.rowHeight())
		}
		return m, nil

	case tea.KeyMsg:
		if m.promptMode != promptNone {
			return m.updatePrompt(msg)
		}
		return m.handleKey(msg)

	case cancelledMsg:
		m.quitting = true
		m.grid.Destroy()
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, m.grid.Update(msg)
}

// attach starts the scroller session and renders the first page.
func (m *AppModel) attach() tea.Cmd {
	session, err := scroller.Attach(m.grid, m.grid, m.cfg)
	if err != nil {
		LogErr("attach scroller: %v", err)
		m.showToast(err.Error())
		return m.grid.Draw()
	}
	m.session = session
	return m.grid.Draw()
}

func (m AppModel) rowHeight() float64 {
	if m.session != nil {
		if rh := m.session.Metrics().RowHeight; rh > 0 {
			return rh
		}
	}
	return 1
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	body := float64(m.grid.BodyHeight())
	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		m.grid.Destroy()
		return m, tea.Quit
	case key.Matches(msg, keys.Up):
		m.grid.ScrollBy(-m.rowHeight())
	case key.Matches(msg, keys.Down):
		m.grid.ScrollBy(m.rowHeight())
	case key.Matches(msg, keys.HalfUp):
		m.grid.ScrollBy(-max(body/2, 1))
	case key.Matches(msg, keys.HalfDown):
		m.grid.ScrollBy(max(body/2, 1))
	case key.Matches(msg, keys.PageUp):
		m.grid.ScrollBy(-max(body, 1))
	case key.Matches(msg, keys.PageDown):
		m.grid.ScrollBy(max(body, 1))
	case key.Matches(msg, keys.Top):
		m.grid.SetScrollTop(0)
	case key.Matches(msg, keys.Bottom):
		m.grid.ScrollToBottom()
	case key.Matches(msg, keys.Filter):
		m.openPrompt(promptFilter, "/", m.grid.Filter())
		return m, textinput.Blink
	case key.Matches(msg, keys.Goto):
		m.openPrompt(promptGoto, ":", "")
		return m, textinput.Blink
	case key.Matches(msg, keys.Clear):
		if m.grid.Filter() != "" {
			return m, m.grid.SetFilter("")
		}
	case key.Matches(msg, keys.Logs):
		m.logPanel.Toggle()
		m.grid.SetChrome(m.chromeHeight())
	case key.Matches(msg, keys.LogLevel):
		m.logPanel.CycleFilter()
	case key.Matches(msg, keys.Measure):
		if m.session != nil {
			m.session.Measure()
			m.grid.AdjustLayout()
		}
	case key.Matches(msg, keys.Reload):
		return m, m.grid.Draw()
	}
	return m, nil
}

func (m *AppModel) openPrompt(mode promptMode, prefix, value string) {
	m.promptMode = mode
	m.prompt.Prompt = prefix
	m.prompt.SetValue(value)
	m.prompt.CursorEnd()
	m.prompt.Focus()
	m.grid.SetChrome(m.chromeHeight())
}

func (m *AppModel) closePrompt() {
	m.promptMode = promptNone
	m.prompt.Blur()
	m.grid.SetChrome(m.chromeHeight())
}

func (m AppModel) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.closePrompt()
		return m, nil
	case tea.KeyEnter:
		mode := m.promptMode
		value := strings.TrimSpace(m.prompt.Value())
		m.closePrompt()
		switch mode {
		case promptFilter:
			return m, m.grid.SetFilter(value)
		case promptGoto:
			m.gotoRow(value)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

// gotoRow scrolls to a 1-based row number; "1,000" is accepted.
func (m *AppModel) gotoRow(value string) {
	if value == "" || m.session == nil {
		return
	}
	n, err := strconv.Atoi(strings.ReplaceAll(value, ",", ""))
	if err != nil || n < 1 {
		m.showToast(fmt.Sprintf("not a row number: %q", value))
		return
	}
	m.session.ScrollToRow(n - 1)
}

func (m *AppModel) showToast(msg string) {
	m.toast = msg
	m.toastExpiry = time.Now().Add(toastDuration)
}

// View renders the grid, the optional log panel and prompt, and the status bar
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}

	var footer []string
	if m.logPanel.IsVisible() {
		footer = append(footer, m.logPanel.View())
	}
	if m.promptMode != promptNone {
		footer = append(footer, m.prompt.View())
	}

	sb := m.statusBar
	sb.SetFilter(m.grid.Filter())
	sb.SetFetching(m.grid.Fetching(), m.spinner.View())
	sb.SetError(m.grid.Err())
	if m.session != nil {
		sb.SetPageInfo(m.session.PageInfo())
	}
	status := sb.View()
	if m.toast != "" && time.Now().Before(m.toastExpiry) {
		status = StatusBarStyle.Width(m.width).Render(ErrorStyle.Render(m.toast))
	}
	footer = append(footer, status)

	return m.padBody(m.grid.View(), lipgloss.JoinVertical(lipgloss.Left, footer...))
}

// padBody places footer on the last lines of the terminal, filling the gap
// a grid shorter than the screen leaves.
func (m AppModel) padBody(body, footer string) string {
	gap := m.height - lipgloss.Height(body) - lipgloss.Height(footer)
	if gap <= 0 {
		return body + "\n" + footer
	}
	return body + "\n" + strings.Repeat(strings.Repeat(" ", m.width)+"\n", gap) + footer
}
