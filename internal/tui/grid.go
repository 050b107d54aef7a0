package tui

import (
	"context"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/STRML/tscroll/internal/scroller"
	"github.com/STRML/tscroll/internal/source"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

const (
	// fetchTimeout bounds one page request against a source.
	fetchTimeout = 30 * time.Second

	maxColumnWidth = 40
	columnGap      = 1
	scrollbarWidth = 1
)

// GridOptions configures the grid's own layout.
type GridOptions struct {
	// Height is "auto", a length like "20px" or "50vh", or empty to fill
	// the space left by the rest of the screen.
	Height        string
	MaxHeight     string
	RowSeparators bool
}

// gridWakeMsg is delivered when the grid has work for the event loop.
type gridWakeMsg struct{}

// fetchResultMsg carries the rows of one page request.
type fetchResultMsg struct {
	seq        int
	start      int
	rows       [][]string
	total      int
	unfiltered int
	err        error
}

// Grid is the table component the scroller virtualizes. It renders a
// window of rows fetched from a source and exposes the layout the
// scroller measures and positions. One line is one unit of height.
//
// Scroller callbacks may arrive from timer goroutines, so all state is
// guarded by mu. Listeners are always invoked without mu held.
type Grid struct {
	mu   sync.Mutex
	src  source.Source
	opts GridOptions

	columns []string
	widths  []int

	width      int
	termHeight int
	chrome     int
	bodyHeight int
	attached   bool

	filter     string
	total      int
	unfiltered int

	reqStart  int
	reqLength int

	displayStart int
	rows         [][]string
	lines        []string

	spacer    float64
	offset    float64
	scrollTop float64
	scrollbar bool

	fetchSeq int
	fetching bool
	err      error

	wake         chan struct{}
	redrawWanted bool
	destroyed    bool

	scrollL  listenerSet
	resizeL  listenerSet
	redrawL  listenerSet
	destroyL listenerSet
}

var (
	_ scroller.Host              = (*Grid)(nil)
	_ scroller.View              = (*Grid)(nil)
	_ scroller.UnfilteredCounter = (*Grid)(nil)
)

// NewGrid creates a grid over src. The first page is rendered by Draw.
func NewGrid(src source.Source, opts GridOptions) *Grid {
	g := &Grid{
		src:     src,
		opts:    opts,
		columns: src.Columns(),
		wake:    make(chan struct{}, 1),
	}
	g.widths = g.headerWidthsLocked()
	return g
}

func (g *Grid) autoHeight() bool {
	return g.opts.Height == "auto"
}

// termUnits resolves lengths against the terminal without taking g.mu.
type termUnits float64

func (u termUnits) WindowHeight() float64 { return float64(u) }
func (termUnits) RootFontSize() float64   { return 1 }
func (termUnits) FontSize() float64       { return 1 }

// SetSize applies the terminal size and notifies resize listeners.
func (g *Grid) SetSize(width, height int) {
	g.mu.Lock()
	g.width = width
	g.termHeight = height
	g.attached = width > 0 && height > 0
	g.relayoutLocked()
	g.mu.Unlock()
	g.resizeL.fire()
}

// SetChrome sets the number of lines the rest of the screen takes, and
// notifies resize listeners when it changes.
func (g *Grid) SetChrome(lines int) {
	g.mu.Lock()
	changed := g.chrome != lines
	g.chrome = lines
	g.relayoutLocked()
	g.mu.Unlock()
	if changed {
		g.resizeL.fire()
	}
}

// relayoutLocked recomputes the body height. In auto mode the scroller
// sizes the body through SetHeight; here it is only clamped to the space
// available.
func (g *Grid) relayoutLocked() {
	avail := max(g.termHeight-g.chrome, 0)
	units := termUnits(g.termHeight)
	switch {
	case g.autoHeight():
		if g.bodyHeight == 0 {
			g.bodyHeight = avail
		}
	case g.opts.Height != "":
		g.bodyHeight = int(scroller.ParseLength(g.opts.Height, units))
	case g.opts.MaxHeight != "":
		g.bodyHeight = int(scroller.ParseLength(g.opts.MaxHeight, units))
	default:
		g.bodyHeight = avail
	}
	g.bodyHeight = clampInt(g.bodyHeight, 0, avail)
	g.clampScrollLocked()
	g.adjustLocked()
}

// Draw fetches the staged window as a host-initiated render.
func (g *Grid) Draw() tea.Cmd {
	return g.fetchCmd()
}

// SetFilter applies a filter, returns to the top and redraws.
func (g *Grid) SetFilter(filter string) tea.Cmd {
	g.mu.Lock()
	if filter == g.filter {
		g.mu.Unlock()
		return nil
	}
	g.filter = filter
	g.reqStart = 0
	g.scrollTop = 0
	g.widths = g.headerWidthsLocked()
	g.mu.Unlock()
	return g.fetchCmd()
}

// Filter returns the active filter.
func (g *Grid) Filter() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.filter
}

// Fetching reports whether a page request is in flight.
func (g *Grid) Fetching() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.fetching
}

// Err returns the error of the last page request.
func (g *Grid) Err() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.err
}

// Source returns the source the grid reads from.
func (g *Grid) Source() source.Source {
	return g.src
}

// BodyHeight returns the number of body lines.
func (g *Grid) BodyHeight() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.bodyHeight
}

// ScrollBy moves the view by delta lines.
func (g *Grid) ScrollBy(delta float64) {
	g.SetScrollTop(g.ScrollTop() + delta)
}

// ScrollToBottom moves to the last line.
func (g *Grid) ScrollToBottom() {
	g.mu.Lock()
	top := g.maxScrollLocked()
	g.mu.Unlock()
	g.SetScrollTop(top)
}

// Destroy notifies before-destroy listeners. Further redraw requests are
// ignored.
func (g *Grid) Destroy() {
	g.mu.Lock()
	if g.destroyed {
		g.mu.Unlock()
		return
	}
	g.destroyed = true
	g.mu.Unlock()
	g.destroyL.fire()
}

// WaitForWake returns a command that blocks until the grid needs the
// event loop, then yields a gridWakeMsg. Re-issue it after each wake.
func (g *Grid) WaitForWake() tea.Cmd {
	ch := g.wake
	return func() tea.Msg {
		<-ch
		return gridWakeMsg{}
	}
}

// signal wakes the event loop without blocking; wakes coalesce.
func (g *Grid) signal() {
	select {
	case g.wake <- struct{}{}:
	default:
	}
}

// Update handles grid messages.
func (g *Grid) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case gridWakeMsg:
		g.mu.Lock()
		wanted := g.redrawWanted && !g.destroyed
		g.redrawWanted = false
		g.mu.Unlock()

		cmds := []tea.Cmd{g.WaitForWake()}
		if wanted {
			cmds = append(cmds, g.fetchCmd())
		}
		return tea.Batch(cmds...)

	case fetchResultMsg:
		g.applyFetch(msg)
	}
	return nil
}

func (g *Grid) fetchCmd() tea.Cmd {
	g.mu.Lock()
	g.fetchSeq++
	seq := g.fetchSeq
	q := source.Query{Filter: g.filter, Start: g.reqStart, Length: g.reqLength}
	g.fetching = true
	src := g.src
	g.mu.Unlock()

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		return fetchPage(ctx, src, seq, q)
	}
}

func fetchPage(ctx context.Context, src source.Source, seq int, q source.Query) fetchResultMsg {
	res := fetchResultMsg{seq: seq, start: q.Start}
	total, err := src.Count(ctx, q.Filter)
	if err != nil {
		res.err = err
		return res
	}
	unfiltered := total
	if q.Filter != "" {
		if unfiltered, err = src.Count(ctx, ""); err != nil {
			res.err = err
			return res
		}
	}
	rows, err := src.Fetch(ctx, q)
	if err != nil {
		res.err = err
		return res
	}
	res.rows = rows
	res.total = total
	res.unfiltered = unfiltered
	return res
}

// applyFetch installs the rows of the latest request and tells redraw
// listeners the render completed. Superseded results are dropped.
func (g *Grid) applyFetch(msg fetchResultMsg) {
	g.mu.Lock()
	if msg.seq != g.fetchSeq || g.destroyed {
		g.mu.Unlock()
		return
	}
	g.fetching = false
	if msg.err != nil {
		g.err = msg.err
		g.mu.Unlock()
		LogErr("fetch from row %d of %s: %v", msg.start, g.src.Name(), msg.err)
		return
	}
	g.err = nil
	g.total = msg.total
	g.unfiltered = msg.unfiltered
	g.displayStart = msg.start
	g.rows = msg.rows
	g.growWidthsLocked(msg.rows)
	g.renderBlockLocked()
	g.mu.Unlock()

	g.redrawL.fire()
}

func (g *Grid) headerWidthsLocked() []int {
	widths := make([]int, len(g.columns))
	for i, c := range g.columns {
		widths[i] = min(runewidth.StringWidth(c), maxColumnWidth)
	}
	return widths
}

// growWidthsLocked widens columns to fit rows. Columns never shrink while
// scrolling so the layout stays put.
func (g *Grid) growWidthsLocked(rows [][]string) {
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(g.widths); i++ {
			if w := min(runewidth.StringWidth(row[i]), maxColumnWidth); w > g.widths[i] {
				g.widths[i] = w
			}
		}
	}
}

func (g *Grid) contentWidthLocked() int {
	w := g.width
	if g.scrollbar {
		w -= scrollbarWidth
	}
	return max(w, 0)
}

// renderCellsLocked lays a row out in fixed-width columns.
func (g *Grid) renderCellsLocked(row []string) string {
	var b strings.Builder
	for i, w := range g.widths {
		if i > 0 {
			b.WriteString(strings.Repeat(" ", columnGap))
		}
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		cell = strings.ReplaceAll(cell, "\n", " ")
		b.WriteString(runewidth.FillRight(ansi.Truncate(cell, w, "…"), w))
	}
	return ansi.Truncate(b.String(), g.contentWidthLocked(), "")
}

// stripedLocked reports whether the i-th row of the block is drawn
// striped. Stripes follow the record index, so a record keeps its stripe
// whichever window it is rendered in.
func (g *Grid) stripedLocked(i int) bool {
	return (g.displayStart+i)%2 == 1
}

// renderBlockLocked renders the fetched rows into body lines.
func (g *Grid) renderBlockLocked() {
	width := g.contentWidthLocked()
	lines := make([]string, 0, len(g.rows)*2)
	for i, row := range g.rows {
		style := RowStyle
		if g.stripedLocked(i) {
			style = StripeStyle
		}
		lines = append(lines, style.Width(width).Render(g.renderCellsLocked(row)))
		if g.opts.RowSeparators {
			lines = append(lines, SeparatorStyle.Render(strings.Repeat("─", width)))
		}
	}
	g.lines = lines
}

func (g *Grid) maxScrollLocked() float64 {
	return math.Max(0, g.spacer-float64(g.bodyHeight))
}

func (g *Grid) clampScrollLocked() {
	g.scrollTop = math.Max(0, math.Min(g.scrollTop, g.maxScrollLocked()))
}

func (g *Grid) adjustLocked() {
	g.scrollbar = g.spacer > float64(g.bodyHeight)
	g.renderBlockLocked()
}

// View renders the header and the body lines under the scroll offset.
func (g *Grid) View() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.width <= 0 {
		return ""
	}
	width := g.contentWidthLocked()
	header := HeaderStyle.Width(g.width).Render(ansi.Truncate(g.renderCellsLocked(g.columns), g.width, ""))

	top := int(g.scrollTop)
	offset := int(g.offset)
	body := make([]string, g.bodyHeight)
	for i := range body {
		rel := top + i - offset
		var line string
		if rel >= 0 && rel < len(g.lines) {
			line = g.lines[rel]
		} else if g.total > 0 {
			line = PlaceholderStyle.Render(strings.Repeat("·", min(width, 3)))
		}
		body[i] = lipgloss.NewStyle().Width(width).MaxWidth(width).Render(line)
	}

	if g.scrollbar {
		bar := scrollbarColumn(g.bodyHeight, g.scrollTop, g.spacer)
		for i := range body {
			body[i] += bar[i]
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, append([]string{header}, body...)...)
}

// scrollbarColumn renders a one-column scrollbar whose thumb covers the
// visible share of the content.
func scrollbarColumn(height int, top, content float64) []string {
	col := make([]string, height)
	if height <= 0 || content <= 0 {
		return col
	}
	thumb := clampInt(int(math.Round(float64(height)*float64(height)/content)), 1, height)
	pos := int(math.Round(top / content * float64(height)))
	pos = clampInt(pos, 0, height-thumb)
	for i := range col {
		if i >= pos && i < pos+thumb {
			col[i] = ScrollThumbStyle.Render("┃")
		} else {
			col[i] = ScrollTrackStyle.Render("│")
		}
	}
	return col
}

// Host

func (g *Grid) TotalRecords() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.total
}

func (g *Grid) UnfilteredRecords() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.unfiltered
}

func (g *Grid) DisplayStart() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.displayStart
}

func (g *Grid) SetRequestedWindow(start, length int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.reqStart = start
	g.reqLength = length
}

func (g *Grid) RequestRedraw() {
	g.mu.Lock()
	if g.destroyed {
		g.mu.Unlock()
		return
	}
	g.redrawWanted = true
	g.mu.Unlock()
	g.signal()
}

func (g *Grid) OnRedrawComplete(fn func()) scroller.Disposer { return g.redrawL.add(fn) }
func (g *Grid) OnBeforeDestroy(fn func()) scroller.Disposer  { return g.destroyL.add(fn) }
func (g *Grid) OnScroll(fn func()) scroller.Disposer         { return g.scrollL.add(fn) }
func (g *Grid) OnResize(fn func()) scroller.Disposer         { return g.resizeL.add(fn) }

func (g *Grid) Paginated() bool  { return true }
func (g *Grid) ServerSide() bool { return g.src.ServerSide() }

// Layout

func (g *Grid) WindowHeight() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return float64(g.termHeight)
}

func (g *Grid) RootFontSize() float64 { return 1 }
func (g *Grid) FontSize() float64     { return 1 }

func (g *Grid) Attached() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.attached
}

func (g *Grid) RenderedHeight() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return float64(g.bodyHeight)
}

func (g *Grid) StyleHeight() string {
	if g.autoHeight() {
		return ""
	}
	return g.opts.Height
}

func (g *Grid) StyleMaxHeight() string { return g.opts.MaxHeight }

func (g *Grid) SetHeight(h float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.bodyHeight = max(int(h), 0)
	g.clampScrollLocked()
	g.adjustLocked()
}

func (g *Grid) ParentInnerHeight() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return float64(g.termHeight)
}

// WrapperOuterHeight is the header line plus the rest of the screen.
func (g *Grid) WrapperOuterHeight() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return float64(g.chrome)
}

// RowSampler

func (g *Grid) SampleRows(n int) [][]string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.rows) > n {
		return g.rows[:n]
	}
	return g.rows
}

// MeasureRows renders rows as the first, middle and last rows of a body
// and returns their line counts.
func (g *Grid) MeasureRows(rows [][]string) []float64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]float64, len(rows))
	for i, row := range rows {
		style := RowStyle
		switch {
		case i == 0:
			style = firstRowStyle
		case i == len(rows)-1:
			style = lastRowStyle
		case g.opts.RowSeparators:
			style = separatedRowStyle
		}
		out[i] = float64(lipgloss.Height(style.Render(g.renderCellsLocked(row))))
	}
	return out
}

// Canvas

func (g *Grid) SetSpacerHeight(h float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.spacer = h
	g.clampScrollLocked()
}

func (g *Grid) SetContentOffset(y float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.offset = y
}

// AdjustLayout re-renders for the current scrollbar state and wakes the
// event loop, since it may be called from a timer.
func (g *Grid) AdjustLayout() {
	g.mu.Lock()
	g.adjustLocked()
	g.mu.Unlock()
	g.signal()
}

func (g *Grid) ResetLayout() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.spacer = 0
	g.offset = 0
	g.clampScrollLocked()
	g.adjustLocked()
}

func (g *Grid) ScrollTop() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.scrollTop
}

// SetScrollTop clamps top to the content and notifies scroll listeners.
func (g *Grid) SetScrollTop(top float64) {
	g.mu.Lock()
	g.scrollTop = math.Floor(top)
	g.clampScrollLocked()
	g.mu.Unlock()
	g.scrollL.fire()
}

// listenerSet is a set of callbacks invoked in subscription order.
type listenerSet struct {
	mu   sync.Mutex
	next int
	fns  map[int]func()
}

func (l *listenerSet) add(fn func()) scroller.Disposer {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.fns == nil {
		l.fns = make(map[int]func())
	}
	id := l.next
	l.next++
	l.fns[id] = fn
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.fns, id)
	}
}

func (l *listenerSet) fire() {
	l.mu.Lock()
	ids := make([]int, 0, len(l.fns))
	for id := range l.fns {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]func(), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, l.fns[id])
	}
	l.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

func (l *listenerSet) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.fns)
}
