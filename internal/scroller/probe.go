package scroller

import "math"

// sampleSize is the number of rows laid out to measure a row height.
// The middle one is measured so first/last row styling does not skew it.
const sampleSize = 3

// Metrics describes the rendering environment of the viewport.
type Metrics struct {
	RowHeight      float64
	ViewportHeight float64
	Capacity       int // rows that fit in the viewport
}

// Valid reports whether the metrics can be used for window planning.
func (m Metrics) Valid() bool {
	return m.RowHeight > 0 && m.Capacity > 0
}

// Probe measures row height and viewport height.
type Probe struct {
	layout  Layout
	sampler RowSampler
	cfg     Config
}

// NewProbe creates a probe over a container and its rows.
func NewProbe(layout Layout, sampler RowSampler, cfg Config) *Probe {
	return &Probe{layout: layout, sampler: sampler, cfg: cfg}
}

// Measure applies auto height if configured and returns fresh metrics.
// Capacity is 0 when either height could not be resolved.
func (p *Probe) Measure() Metrics {
	p.applyAutoHeight()

	return NewMetrics(p.rowHeight(), p.viewportHeight())
}

// NewMetrics derives the row capacity of a viewport.
func NewMetrics(rowHeight, viewportHeight float64) Metrics {
	m := Metrics{RowHeight: rowHeight, ViewportHeight: viewportHeight}
	if rowHeight > 0 && viewportHeight > 0 {
		m.Capacity = int(math.Floor(viewportHeight / rowHeight))
	}
	return m
}

func (p *Probe) applyAutoHeight() {
	if !p.cfg.AutoHeight {
		return
	}
	p.layout.SetHeight(0)
	h := p.layout.ParentInnerHeight() - p.layout.WrapperOuterHeight() - p.cfg.ChromeAllowance
	if h < 0 || math.IsNaN(h) {
		h = 0
	}
	p.layout.SetHeight(math.Floor(h))
}

func (p *Probe) rowHeight() float64 {
	if !p.cfg.RowHeight.IsAuto() {
		return p.cfg.RowHeight.Value()
	}

	rows := p.sampler.SampleRows(sampleSize)
	if len(rows) > sampleSize {
		rows = rows[:sampleSize]
	}
	sample := make([][]string, 0, sampleSize)
	sample = append(sample, rows...)
	for len(sample) < sampleSize {
		sample = append(sample, []string{" "})
	}

	heights := p.sampler.MeasureRows(sample)
	if len(heights) < 2 {
		return 0
	}
	h := heights[1]
	if h <= 0 || math.IsNaN(h) || math.IsInf(h, 0) {
		return 0
	}
	return h
}

func (p *Probe) viewportHeight() float64 {
	var h float64
	if p.layout.Attached() {
		h = p.layout.RenderedHeight()
	} else {
		h = ParseLength(p.layout.StyleHeight(), p.layout)
	}
	// A collapsed container falls back to its max height.
	if h <= 0 {
		h = ParseLength(p.layout.StyleMaxHeight(), p.layout)
	}
	if h < 0 || math.IsNaN(h) {
		return 0
	}
	return h
}
