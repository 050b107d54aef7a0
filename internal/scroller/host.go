package scroller

// Disposer releases a subscription. Calling it more than once is a no-op.
type Disposer func()

// Host is the table component that owns the records and their pagination.
// Hosts are compared by identity, so implementations should be pointers.
//
// The session calls SetRequestedWindow and the getters while holding its
// own lock; hosts must not call back into the session from them.
type Host interface {
	// TotalRecords returns the number of records after filtering.
	TotalRecords() int

	// DisplayStart returns the first record index of the last completed render.
	DisplayStart() int

	// SetRequestedWindow stages the pagination parameters for the next render.
	SetRequestedWindow(start, length int)

	// RequestRedraw starts an asynchronous fetch and render of the staged
	// window. Completion is signalled through OnRedrawComplete listeners.
	RequestRedraw()

	OnRedrawComplete(fn func()) Disposer
	OnBeforeDestroy(fn func()) Disposer

	// Paginated reports whether the host renders a window of records.
	Paginated() bool

	// ServerSide reports whether a render incurs a remote fetch.
	ServerSide() bool
}

// UnfilteredCounter is implemented by hosts that filter records.
type UnfilteredCounter interface {
	UnfilteredRecords() int
}

// Units resolves relative length units.
type Units interface {
	// WindowHeight is the height of the whole display, for vh.
	WindowHeight() float64
	// RootFontSize is used for rem.
	RootFontSize() float64
	// FontSize is the element font size, used for em.
	FontSize() float64
}

// Layout exposes the geometry of the scroll container.
type Layout interface {
	Units

	// Attached reports whether the container is laid out on screen.
	Attached() bool
	// RenderedHeight is the laid out height of the container.
	RenderedHeight() float64
	// StyleHeight and StyleMaxHeight are the configured heights as length
	// strings, used while the container is not attached.
	StyleHeight() string
	StyleMaxHeight() string

	// SetHeight applies an explicit container height (auto height mode).
	SetHeight(h float64)
	// ParentInnerHeight is the space available to the whole table.
	ParentInnerHeight() float64
	// WrapperOuterHeight is the height taken by the table outside the
	// scroll container.
	WrapperOuterHeight() float64
}

// RowSampler gives access to representative rows for measuring row height.
type RowSampler interface {
	// SampleRows returns up to n rows from the current content.
	SampleRows(n int) [][]string
	// MeasureRows lays the rows out in a detached container, styled as
	// consecutive table rows, and returns the height of each.
	MeasureRows(rows [][]string) []float64
}

// Canvas receives positioning updates after each render.
type Canvas interface {
	// SetSpacerHeight sets the virtual height of the scrollable content.
	SetSpacerHeight(h float64)
	// SetContentOffset places the rendered rows at a virtual offset.
	SetContentOffset(y float64)
	// AdjustLayout recalculates layout that depends on the scrollbar.
	AdjustLayout()
	// ResetLayout removes the spacer and content offset.
	ResetLayout()
}

// View is the scroll container the session drives.
type View interface {
	Layout
	RowSampler
	Canvas

	ScrollTop() float64
	// SetScrollTop moves the container and emits a scroll notification,
	// like a user scroll would.
	SetScrollTop(top float64)

	OnScroll(fn func()) Disposer
	OnResize(fn func()) Disposer
}
