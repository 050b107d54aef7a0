package scroller

import "testing"

func TestContentHeight(t *testing.T) {
	tests := []struct {
		rowHeight float64
		total     int
		want      float64
	}{
		{20, 10000, 200000},
		{1, 3, 3},
		{2, 0, 2},
		{2, -1, 2},
	}
	for _, tt := range tests {
		if got := ContentHeight(tt.rowHeight, tt.total); got != tt.want {
			t.Errorf("ContentHeight(%v, %d) = %v, want %v", tt.rowHeight, tt.total, got, tt.want)
		}
		// Dividing back recovers the row count of a non-empty set.
		if tt.total > 0 && int(ContentHeight(tt.rowHeight, tt.total)/tt.rowHeight) != tt.total {
			t.Errorf("ContentHeight(%v, %d) does not divide back", tt.rowHeight, tt.total)
		}
	}
}

func TestPositionerAppliesSpacerOnce(t *testing.T) {
	h := NewMockHost(100, 10)
	p := newPositioner(h)

	if !p.Position(2, 100, 4) {
		t.Error("first Position should resize the spacer")
	}
	if h.Spacer != 200 || h.Offset != 8 {
		t.Errorf("spacer, offset = %v, %v, want 200, 8", h.Spacer, h.Offset)
	}
	if p.Position(2, 100, 10) {
		t.Error("Position with an unchanged total should not resize")
	}
	if h.SpacerCalls != 1 || h.Adjusts != 1 {
		t.Errorf("SpacerCalls, Adjusts = %d, %d, want 1, 1", h.SpacerCalls, h.Adjusts)
	}
	if h.Offset != 20 {
		t.Errorf("offset = %v, want 20", h.Offset)
	}

	p.Reset()
	if h.Resets != 1 || h.Spacer != 0 {
		t.Errorf("Reset left spacer %v after %d resets", h.Spacer, h.Resets)
	}
	if !p.Position(2, 100, 0) {
		t.Error("Position after Reset should resize again")
	}
}
