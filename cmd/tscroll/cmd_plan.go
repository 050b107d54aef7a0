package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/STRML/tscroll/internal/scroller"
)

// planArgs are the inputs of a single window plan.
type planArgs struct {
	viewport float64
	total    int
	scroll   float64
}

// parsePlanArgs reads --viewport, --total and --scroll.
func parsePlanArgs(args []string) (planArgs, error) {
	var p planArgs
	seen := map[string]bool{}
	for i := 0; i < len(args); i++ {
		name, value, hasValue := strings.Cut(args[i], "=")
		if !hasValue {
			if i+1 >= len(args) {
				return p, fmt.Errorf("flag %s needs a value", name)
			}
			value = args[i+1]
			i++
		}
		var err error
		switch name {
		case "--viewport":
			p.viewport, err = strconv.ParseFloat(value, 64)
		case "--total":
			p.total, err = strconv.Atoi(value)
		case "--scroll":
			p.scroll, err = strconv.ParseFloat(value, 64)
		default:
			return p, fmt.Errorf("unknown plan flag %s", name)
		}
		if err != nil {
			return p, fmt.Errorf("invalid %s %q: %w", name, value, err)
		}
		seen[name] = true
	}
	if !seen["--viewport"] || !seen["--total"] {
		return p, fmt.Errorf("plan needs --viewport and --total")
	}
	if p.viewport <= 0 || p.total < 0 || p.scroll < 0 {
		return p, fmt.Errorf("viewport must be positive, total and scroll non-negative")
	}
	return p, nil
}

// formatPlan renders a plan for the terminal.
func formatPlan(m scroller.Metrics, res scroller.PlanResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "row height:  %v\n", m.RowHeight)
	fmt.Fprintf(&b, "viewport:    %v (%d rows)\n", m.ViewportHeight, m.Capacity)
	fmt.Fprintf(&b, "window:      start %d, length %d (rows %d to %d)\n",
		res.Window.Start, res.Window.Length, res.Window.Start, res.Window.End()-1)
	fmt.Fprintf(&b, "max start:   %d\n", res.MaxStart)
	lower := "none"
	if res.Boundaries.Lower != scroller.NoLowerBound {
		lower = strconv.FormatFloat(res.Boundaries.Lower, 'f', -1, 64)
	}
	fmt.Fprintf(&b, "boundaries:  lower %s, upper %v\n", lower, res.Boundaries.Upper)
	return b.String()
}

// runPlan prints the window and boundaries the engine plans for a scroll
// offset. An auto row height plans with one line per row.
func runPlan(w io.Writer, cfg scroller.Config, args []string) error {
	p, err := parsePlanArgs(args)
	if err != nil {
		return err
	}
	rh := cfg.RowHeight.Value()
	if cfg.RowHeight.IsAuto() {
		rh = 1
	}
	m := scroller.NewMetrics(rh, p.viewport)
	if !m.Valid() {
		return fmt.Errorf("viewport %v holds no rows of height %v", p.viewport, rh)
	}
	res := scroller.Plan(p.scroll, m, cfg, p.total, scroller.Unplanned())
	_, err = io.WriteString(w, formatPlan(m, res))
	return err
}
