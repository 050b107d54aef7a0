package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/STRML/tscroll/internal/config"
	"github.com/STRML/tscroll/internal/scroller"
)

// parseCommand determines which subcommand to run.
// Bare "tscroll" and a bare source spec both mean "view".
func parseCommand(args []string) string {
	if len(args) == 0 {
		return "view"
	}
	switch args[0] {
	case "view", "plan", "info", "help", "version":
		return args[0]
	case "--version", "-v":
		return "version"
	case "--help", "-h":
		return "help"
	}
	if strings.HasPrefix(args[0], "-") {
		return "help"
	}
	return "view"
}

// globalFlags override values from the config file. Empty strings are
// unset.
type globalFlags struct {
	rowHeight string
	throttle  string
	buffer    string
	scale     string
	height    string
	debug     bool
}

var valueFlags = map[string]func(*globalFlags, string){
	"--row-height": func(f *globalFlags, v string) { f.rowHeight = v },
	"--throttle":   func(f *globalFlags, v string) { f.throttle = v },
	"--buffer":     func(f *globalFlags, v string) { f.buffer = v },
	"--scale":      func(f *globalFlags, v string) { f.scale = v },
	"--height":     func(f *globalFlags, v string) { f.height = v },
}

// parseFlags extracts global flags from args and returns the remaining
// args, which keep subcommand flags. Both "--flag value" and
// "--flag=value" are accepted.
func parseFlags(args []string) (globalFlags, []string, error) {
	var flags globalFlags
	rest := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--debug" {
			flags.debug = true
			continue
		}
		name, value, hasValue := strings.Cut(arg, "=")
		set, ok := valueFlags[name]
		if !ok {
			rest = append(rest, arg)
			continue
		}
		if !hasValue {
			if i+1 >= len(args) {
				return flags, nil, fmt.Errorf("flag %s needs a value", name)
			}
			value = args[i+1]
			i++ // skip value
		}
		set(&flags, value)
	}
	return flags, rest, nil
}

// apply writes the set flags over cfg.
func (f globalFlags) apply(cfg *config.GlobalConfig) error {
	if f.rowHeight != "" {
		rh, err := scroller.ParseRowHeight(f.rowHeight)
		if err != nil {
			return err
		}
		cfg.Scroller.RowHeight = rh
	}
	if f.throttle != "" {
		d, err := parseMillis(f.throttle)
		if err != nil {
			return fmt.Errorf("invalid --throttle: %w", err)
		}
		cfg.Scroller.ServerThrottleMs = int(d / time.Millisecond)
	}
	if f.buffer != "" {
		v, err := strconv.ParseFloat(f.buffer, 64)
		if err != nil {
			return fmt.Errorf("invalid --buffer %q: %w", f.buffer, err)
		}
		cfg.Scroller.BufferFactor = v
	}
	if f.scale != "" {
		v, err := strconv.ParseFloat(f.scale, 64)
		if err != nil {
			return fmt.Errorf("invalid --scale %q: %w", f.scale, err)
		}
		cfg.Scroller.BoundaryScale = v
	}
	if f.height != "" {
		cfg.Height = f.height
	}
	if f.debug {
		cfg.Scroller.Debug = true
	}
	return nil
}

// parseMillis accepts a bare number of milliseconds or a Go duration.
func parseMillis(s string) (time.Duration, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return time.Duration(n) * time.Millisecond, nil
	}
	return time.ParseDuration(s)
}
