package scroller

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"
)

// Defaults applied by DefaultConfig.
const (
	DefaultServerThrottle  = 200 * time.Millisecond
	DefaultBufferFactor    = 2.0
	DefaultBoundaryScale   = 0.5
	DefaultResizeDebounce  = 500 * time.Millisecond
	DefaultChromeAllowance = 10.0
)

// RowHeight is either "auto" (measured from sample rows) or a fixed height.
type RowHeight struct {
	fixed float64
}

// AutoRowHeight returns a row height that is measured from the host's rows.
func AutoRowHeight() RowHeight {
	return RowHeight{}
}

// FixedRowHeight returns a row height that is used verbatim.
// Non-positive values mean auto.
func FixedRowHeight(h float64) RowHeight {
	if h < 0 {
		h = 0
	}
	return RowHeight{fixed: h}
}

// IsAuto reports whether the row height must be measured.
func (r RowHeight) IsAuto() bool {
	return r.fixed <= 0
}

// Value returns the fixed height, or 0 for auto.
func (r RowHeight) Value() float64 {
	return r.fixed
}

func (r RowHeight) String() string {
	if r.IsAuto() {
		return "auto"
	}
	return strconv.FormatFloat(r.fixed, 'f', -1, 64)
}

// ParseRowHeight parses "auto" or a positive number.
func ParseRowHeight(s string) (RowHeight, error) {
	if s == "" || s == "auto" {
		return AutoRowHeight(), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return RowHeight{}, fmt.Errorf("invalid row height %q: want \"auto\" or a positive number", s)
	}
	return FixedRowHeight(v), nil
}

// MarshalJSON encodes auto as the string "auto" and fixed heights as numbers.
func (r RowHeight) MarshalJSON() ([]byte, error) {
	if r.IsAuto() {
		return []byte(`"auto"`), nil
	}
	return json.Marshal(r.fixed)
}

// UnmarshalJSON accepts "auto" or a number.
func (r *RowHeight) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, err := ParseRowHeight(s)
		if err != nil {
			return err
		}
		*r = parsed
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("row height must be \"auto\" or a number: %w", err)
	}
	*r = FixedRowHeight(v)
	return nil
}

// Config tunes a virtualization session. It is copied on Attach and not
// modified afterwards.
type Config struct {
	// RowHeight is "auto" or a fixed height in lines.
	RowHeight RowHeight

	// ServerThrottle rate-limits scroll-driven redraws for server-side hosts.
	// Zero disables throttling.
	ServerThrottle time.Duration

	// BufferFactor is how many viewports of rows are fetched on each side
	// of the visible rows.
	BufferFactor float64

	// BoundaryScale moves the redraw boundaries between 0 (redraw on every
	// scroll) and 1 (redraw once the loaded window is exhausted).
	BoundaryScale float64

	// AutoHeight sizes the viewport from the space left in its parent.
	AutoHeight bool

	// ChromeAllowance is subtracted from the parent height in AutoHeight mode.
	ChromeAllowance float64

	// ResizeDebounce is the quiet period before a resize re-measures.
	ResizeDebounce time.Duration

	// Debug logs every boundary crossing.
	Debug bool

	// Scheduler drives throttle and debounce timers. Nil uses the system clock.
	Scheduler Scheduler
}

// DefaultConfig returns the default session configuration.
func DefaultConfig() Config {
	return Config{
		RowHeight:       AutoRowHeight(),
		ServerThrottle:  DefaultServerThrottle,
		BufferFactor:    DefaultBufferFactor,
		BoundaryScale:   DefaultBoundaryScale,
		ChromeAllowance: DefaultChromeAllowance,
		ResizeDebounce:  DefaultResizeDebounce,
	}
}

// Validate checks the numeric ranges of the configuration.
func (c Config) Validate() error {
	var errs []error
	if c.BufferFactor < 0 {
		errs = append(errs, fmt.Errorf("buffer factor %v must be >= 0", c.BufferFactor))
	}
	if c.BoundaryScale < 0 || c.BoundaryScale > 1 {
		errs = append(errs, fmt.Errorf("boundary scale %v must be within [0,1]", c.BoundaryScale))
	}
	if c.ServerThrottle < 0 {
		errs = append(errs, fmt.Errorf("server throttle %v must be >= 0", c.ServerThrottle))
	}
	if c.ResizeDebounce < 0 {
		errs = append(errs, fmt.Errorf("resize debounce %v must be >= 0", c.ResizeDebounce))
	}
	return errors.Join(errs...)
}

func (c Config) scheduler() Scheduler {
	if c.Scheduler != nil {
		return c.Scheduler
	}
	return systemScheduler{}
}
