package scroller

import "math"

// NoLowerBound is the lower boundary of a window that starts at the first
// record. Scroll offsets are never negative, so it never triggers.
const NoLowerBound = -1.0

// Window is the contiguous slice of records requested from the host.
type Window struct {
	Start  int
	Length int
}

// End returns the index one past the last record of the window.
func (w Window) End() int {
	return w.Start + w.Length
}

// Boundaries bound the scroll offsets, in lines, that the current window
// can serve without a redraw.
type Boundaries struct {
	Lower float64
	Upper float64
}

// Contains reports whether a scroll offset stays inside [Lower, Upper).
func (b Boundaries) Contains(scrollTop float64) bool {
	return scrollTop >= b.Lower && scrollTop < b.Upper
}

// forcedBoundaries contain no offset, so the next plan always changes.
var forcedBoundaries = Boundaries{Lower: math.Inf(1), Upper: math.Inf(-1)}

// Unplanned returns boundaries that contain no scroll offset, for planning
// a window from scratch.
func Unplanned() Boundaries {
	return forcedBoundaries
}

// PlanResult is the outcome of Plan.
type PlanResult struct {
	Window     Window
	Boundaries Boundaries
	Changed    bool
	MaxStart   int // total - length, may be negative
}

// WindowLength returns the number of rows fetched for a viewport: the
// visible rows plus bufferFactor viewports on each side.
func WindowLength(capacity int, bufferFactor float64) int {
	if capacity <= 0 {
		return 0
	}
	c := float64(capacity)
	return int(math.Floor(c + 2*c*bufferFactor))
}

// Plan computes the window for a scroll offset and, when the offset has
// left prev, the boundaries around that window. When Changed is false the
// returned boundaries are prev.
func Plan(scrollTop float64, m Metrics, cfg Config, total int, prev Boundaries) PlanResult {
	length := WindowLength(m.Capacity, cfg.BufferFactor)
	maxStart := total - length
	res := PlanResult{
		Window:     Window{Length: length},
		Boundaries: prev,
		MaxStart:   maxStart,
	}
	if !m.Valid() {
		return res
	}

	rows := float64(m.Capacity)
	top := scrollTop/m.RowHeight - cfg.BufferFactor*rows
	top = math.Min(top, float64(maxStart))
	top = math.Max(top, 0)
	topRow := int(math.Floor(top))

	// Windows start on even rows so alternate row striping does not flip
	// between renders. A start clamped to an odd maxStart stays odd, since
	// moving it would leave the last records out of the window.
	if topRow%2 != 0 && topRow != maxStart {
		topRow--
	}
	res.Window.Start = topRow

	res.Changed = scrollTop < prev.Lower || scrollTop >= prev.Upper
	if !res.Changed {
		return res
	}

	scale := cfg.BoundaryScale
	half := rows / 2
	l := float64(length)
	if topRow <= 0 {
		res.Boundaries.Lower = NoLowerBound
	} else {
		res.Boundaries.Lower = (float64(topRow) + l*(1-scale) - half) * m.RowHeight
	}
	if topRow >= maxStart {
		res.Boundaries.Upper = (float64(maxStart)+l)*m.RowHeight + 1
	} else {
		res.Boundaries.Upper = (float64(topRow) + l*scale - half) * m.RowHeight
	}
	return res
}
