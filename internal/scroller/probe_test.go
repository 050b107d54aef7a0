package scroller

import "testing"

type testUnits struct {
	window, root, font float64
}

func (u testUnits) WindowHeight() float64 { return u.window }
func (u testUnits) RootFontSize() float64 { return u.root }
func (u testUnits) FontSize() float64     { return u.font }

func TestParseLength(t *testing.T) {
	u := testUnits{window: 40, root: 1, font: 2}
	tests := []struct {
		in   string
		want float64
	}{
		{"20px", 20},
		{"0.5px", 0.5},
		{".5px", 0.5},
		{"+3px", 3},
		{"-3px", -3},
		{"50vh", 20},
		{"100vh", 40},
		{"2rem", 2},
		{"1.5em", 3},
		{"20", 0},
		{"20 px", 0},
		{"20pt", 0},
		{"auto", 0},
		{"", 0},
		{"px", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLength(tt.in, u); got != tt.want {
				t.Errorf("ParseLength(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsLength(t *testing.T) {
	for _, s := range []string{"20px", "50vh", "1.5rem", ".5em"} {
		if !IsLength(s) {
			t.Errorf("IsLength(%q) = false", s)
		}
	}
	for _, s := range []string{"", "auto", "20", "px", "20 px", "20%"} {
		if IsLength(s) {
			t.Errorf("IsLength(%q) = true", s)
		}
	}
}

func TestParseLengthWithoutUnits(t *testing.T) {
	if got := ParseLength("50vh", nil); got != 0 {
		t.Errorf("ParseLength without units = %v, want 0", got)
	}
	if got := ParseLength("12px", nil); got != 12 {
		t.Errorf("ParseLength(12px) without units = %v, want 12", got)
	}
}

func TestProbeFixedRowHeight(t *testing.T) {
	h := NewMockHost(100, 25)
	h.RowLines = 7 // ignored
	cfg := DefaultConfig()
	cfg.RowHeight = FixedRowHeight(2)

	m := NewProbe(h, h, cfg).Measure()
	if m.RowHeight != 2 {
		t.Errorf("RowHeight = %v, want 2", m.RowHeight)
	}
	if m.Capacity != 12 {
		t.Errorf("Capacity = %d, want 12", m.Capacity)
	}
}

func TestProbeMeasuresMiddleRow(t *testing.T) {
	h := NewMockHost(100, 30)
	h.Rows = [][]string{{"a"}, {"b"}, {"c"}, {"d"}}
	var sampled int
	h.RowLinesFn = func(i int, row []string) float64 {
		sampled++
		switch i {
		case 0:
			return 3 // top rule
		case 2:
			return 4 // bottom rule
		default:
			return 2
		}
	}

	m := NewProbe(h, h, DefaultConfig()).Measure()
	if sampled != 3 {
		t.Errorf("measured %d rows, want 3", sampled)
	}
	if m.RowHeight != 2 {
		t.Errorf("RowHeight = %v, want 2", m.RowHeight)
	}
	if m.Capacity != 15 {
		t.Errorf("Capacity = %d, want 15", m.Capacity)
	}
}

func TestProbePadsSample(t *testing.T) {
	h := NewMockHost(1, 10)
	h.Rows = [][]string{{"only"}}
	var got [][]string
	h.RowLinesFn = func(i int, row []string) float64 {
		got = append(got, row)
		return 1
	}

	NewProbe(h, h, DefaultConfig()).Measure()
	if len(got) != 3 {
		t.Fatalf("sample has %d rows, want 3", len(got))
	}
	if got[0][0] != "only" {
		t.Errorf("first sample row = %v, want the live row", got[0])
	}
	if got[1][0] != " " || got[2][0] != " " {
		t.Errorf("padding rows = %v %v, want blank rows", got[1], got[2])
	}
}

func TestProbeDetachedUsesStyleHeight(t *testing.T) {
	h := NewMockHost(100, 0)
	h.IsAttached = false
	h.Window = 40
	h.Height = "20px"

	m := NewProbe(h, h, DefaultConfig()).Measure()
	if m.ViewportHeight != 20 {
		t.Errorf("ViewportHeight = %v, want 20", m.ViewportHeight)
	}

	h.Height = ""
	h.MaxHeight = "50vh"
	m = NewProbe(h, h, DefaultConfig()).Measure()
	if m.ViewportHeight != 20 {
		t.Errorf("ViewportHeight from max height = %v, want 20", m.ViewportHeight)
	}
}

func TestProbeCollapsedAttachedUsesMaxHeight(t *testing.T) {
	h := NewMockHost(100, 0)
	h.MaxHeight = "12px"

	m := NewProbe(h, h, DefaultConfig()).Measure()
	if m.ViewportHeight != 12 {
		t.Errorf("ViewportHeight = %v, want 12", m.ViewportHeight)
	}
}

func TestProbeAutoHeight(t *testing.T) {
	h := NewMockHost(100, 999)
	h.Parent = 50
	h.Wrapper = 5.5
	cfg := DefaultConfig()
	cfg.AutoHeight = true
	cfg.ChromeAllowance = 2

	m := NewProbe(h, h, cfg).Measure()
	if len(h.HeightLog) != 2 || h.HeightLog[0] != 0 || h.HeightLog[1] != 42 {
		t.Errorf("HeightLog = %v, want [0 42]", h.HeightLog)
	}
	if m.ViewportHeight != 42 {
		t.Errorf("ViewportHeight = %v, want 42", m.ViewportHeight)
	}
	if m.Capacity != 42 {
		t.Errorf("Capacity = %d, want 42", m.Capacity)
	}
}

func TestProbeAutoHeightClampsToZero(t *testing.T) {
	h := NewMockHost(100, 999)
	h.Parent = 3
	h.Wrapper = 5
	cfg := DefaultConfig()
	cfg.AutoHeight = true

	m := NewProbe(h, h, cfg).Measure()
	if h.Rendered != 0 {
		t.Errorf("applied height = %v, want 0", h.Rendered)
	}
	if m.Valid() {
		t.Error("metrics of a zero-height viewport should not be valid")
	}
}

func TestProbeZeroRowHeight(t *testing.T) {
	h := NewMockHost(100, 20)
	h.RowLines = 0

	m := NewProbe(h, h, DefaultConfig()).Measure()
	if m.Capacity != 0 {
		t.Errorf("Capacity = %d, want 0", m.Capacity)
	}
	if m.Valid() {
		t.Error("Valid() = true, want false")
	}
}

func TestProbeIsIdempotent(t *testing.T) {
	h := NewMockHost(100, 999)
	h.Parent = 40
	cfg := DefaultConfig()
	cfg.AutoHeight = true
	cfg.ChromeAllowance = 0

	p := NewProbe(h, h, cfg)
	first := p.Measure()
	second := p.Measure()
	if first != second {
		t.Errorf("Measure() = %+v then %+v, want equal", first, second)
	}
}
