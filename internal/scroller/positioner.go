package scroller

// positioner sizes the spacer to the full virtual content and places the
// rendered rows under the scroll offset they belong to.
type positioner struct {
	canvas  Canvas
	applied float64
}

func newPositioner(c Canvas) *positioner {
	return &positioner{canvas: c}
}

// ContentHeight is the virtual height of total records. An empty set
// still occupies one row.
func ContentHeight(rowHeight float64, total int) float64 {
	if total < 1 {
		total = 1
	}
	return rowHeight * float64(total)
}

// Position applies the spacer height and content offset for a render that
// starts at displayStart. It reports whether the spacer was resized.
func (p *positioner) Position(rowHeight float64, total, displayStart int) bool {
	resized := false
	if h := ContentHeight(rowHeight, total); h != p.applied {
		p.applied = h
		p.canvas.SetSpacerHeight(h)
		// The scrollbar may have appeared or gone, changing the usable width.
		p.canvas.AdjustLayout()
		resized = true
	}
	p.canvas.SetContentOffset(float64(displayStart) * rowHeight)
	return resized
}

// Reset forgets the applied spacer and restores the canvas.
func (p *positioner) Reset() {
	p.applied = 0
	p.canvas.ResetLayout()
}
