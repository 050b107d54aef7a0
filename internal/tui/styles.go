package tui

import (
	"fmt"
	"math"
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

// hexToRGB converts a hex color string to RGB values
func hexToRGB(hex string) (r, g, b int) {
	if len(hex) == 0 {
		return 0, 0, 0
	}
	if hex[0] == '#' {
		hex = hex[1:]
	}
	if len(hex) != 6 {
		return 0, 0, 0
	}
	rVal, _ := strconv.ParseInt(hex[0:2], 16, 64)
	gVal, _ := strconv.ParseInt(hex[2:4], 16, 64)
	bVal, _ := strconv.ParseInt(hex[4:6], 16, 64)
	return int(rVal), int(gVal), int(bVal)
}

// rgbToHex converts RGB values to a hex color string
func rgbToHex(r, g, b int) string {
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}

// rgbToHSL converts RGB (0-255) to HSL (h: 0-360, s: 0-1, l: 0-1)
func rgbToHSL(r, g, b int) (h, s, l float64) {
	rf := float64(r) / 255.0
	gf := float64(g) / 255.0
	bf := float64(b) / 255.0

	maxC := math.Max(rf, math.Max(gf, bf))
	minC := math.Min(rf, math.Min(gf, bf))
	delta := maxC - minC

	l = (maxC + minC) / 2.0

	if delta == 0 {
		return 0, 0, l
	}
	if l < 0.5 {
		s = delta / (maxC + minC)
	} else {
		s = delta / (2.0 - maxC - minC)
	}

	switch maxC {
	case rf:
		h = (gf - bf) / delta
		if gf < bf {
			h += 6
		}
	case gf:
		h = (bf-rf)/delta + 2
	case bf:
		h = (rf-gf)/delta + 4
	}
	h *= 60
	return h, s, l
}

// hslToRGB converts HSL (h: 0-360, s: 0-1, l: 0-1) to RGB (0-255)
func hslToRGB(h, s, l float64) (r, g, b int) {
	if s == 0 {
		v := int(math.Round(l * 255))
		return v, v, v
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	hNorm := h / 360.0

	hueToRGB := func(t float64) float64 {
		if t < 0 {
			t += 1
		}
		if t > 1 {
			t -= 1
		}
		if t < 1.0/6.0 {
			return p + (q-p)*6*t
		}
		if t < 0.5 {
			return q
		}
		if t < 2.0/3.0 {
			return p + (q-p)*(2.0/3.0-t)*6
		}
		return p
	}

	r = clampInt(int(math.Round(hueToRGB(hNorm+1.0/3.0)*255)), 0, 255)
	g = clampInt(int(math.Round(hueToRGB(hNorm)*255)), 0, 255)
	b = clampInt(int(math.Round(hueToRGB(hNorm-1.0/3.0)*255)), 0, 255)
	return r, g, b
}

// clampInt clamps an int to a range
func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// MuteColor reduces the saturation and brightness of a hex color.
// saturationFactor: 0.0 = grayscale, 1.0 = original saturation
// brightnessFactor: multiplier for lightness (1.0 = no change)
func MuteColor(hex string, saturationFactor, brightnessFactor float64) lipgloss.Color {
	h, s, l := rgbToHSL(hexToRGB(hex))
	s *= saturationFactor
	l = math.Max(0, math.Min(1, l*brightnessFactor))
	return lipgloss.Color(rgbToHex(hslToRGB(h, s, l)))
}

// Colors
const (
	hexAccent = "#7C3AED"
	hexBorder = "#444444"
)

var (
	ColorAccent = lipgloss.Color(hexAccent)
	ColorBorder = lipgloss.Color(hexBorder)
	ColorDim    = lipgloss.Color("#666666")
	ColorError  = lipgloss.Color("#FF4444")

	// Stripes and the scrollbar track are muted accents so they read
	// as part of the same palette.
	ColorStripe = MuteColor(hexAccent, 0.35, 0.25)
	ColorTrack  = MuteColor(hexAccent, 0.2, 0.45)
)

// Grid styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(ColorAccent)

	RowStyle = lipgloss.NewStyle()

	StripeStyle = lipgloss.NewStyle().
			Background(ColorStripe)

	SeparatorStyle = lipgloss.NewStyle().
			Foreground(ColorBorder)

	PlaceholderStyle = lipgloss.NewStyle().
				Foreground(ColorDim)

	ScrollThumbStyle = lipgloss.NewStyle().
				Foreground(ColorAccent)

	ScrollTrackStyle = lipgloss.NewStyle().
				Foreground(ColorTrack)

	// Sample rows are measured as the first, a middle and the last row of
	// a table body: the first carries the top rule, the last the bottom rule.
	firstRowStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), true, false, false, false)

	lastRowStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, true, false)

	separatedRowStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder(), false, false, true, false)
)

// Status bar styles
var (
	StatusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#333333")).
			Foreground(lipgloss.Color("#FFFFFF")).
			Padding(0, 1)

	KeyHintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	KeyStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	PromptStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)
)

// KeyHint renders a key hint like "[/]filter"
func KeyHint(key, action string) string {
	return KeyStyle.Render("["+key+"]") + KeyHintStyle.Render(action)
}
