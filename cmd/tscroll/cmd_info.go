package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/STRML/tscroll/internal/scroller"
	"github.com/STRML/tscroll/internal/source"
	"github.com/dustin/go-humanize"
)

// defaultInfoViewport is the body height assumed when none is given.
const defaultInfoViewport = 20

// parseInfoArgs splits the source spec from an optional --viewport.
func parseInfoArgs(args []string) (spec string, viewport float64, err error) {
	viewport = defaultInfoViewport
	for i := 0; i < len(args); i++ {
		name, value, hasValue := strings.Cut(args[i], "=")
		if name != "--viewport" {
			if spec != "" {
				return "", 0, fmt.Errorf("unexpected argument %q", args[i])
			}
			spec = args[i]
			continue
		}
		if !hasValue {
			if i+1 >= len(args) {
				return "", 0, fmt.Errorf("flag --viewport needs a value")
			}
			value = args[i+1]
			i++
		}
		viewport, err = strconv.ParseFloat(value, 64)
		if err != nil || viewport <= 0 {
			return "", 0, fmt.Errorf("invalid --viewport %q", value)
		}
	}
	return spec, viewport, nil
}

// formatInfo describes a source paged through a viewport.
func formatInfo(src source.Source, total int, m scroller.Metrics, cfg scroller.Config) string {
	pagination := "client"
	if src.ServerSide() {
		pagination = "server"
	}
	info := scroller.PageInfo{
		Start:          0,
		End:            min(m.Capacity, total),
		Length:         m.Capacity,
		RecordsTotal:   total,
		RecordsDisplay: total,
		ServerSide:     src.ServerSide(),
	}

	var b strings.Builder
	fmt.Fprintf(&b, "source:      %s\n", src.Name())
	fmt.Fprintf(&b, "columns:     %s\n", strings.Join(src.Columns(), ", "))
	fmt.Fprintf(&b, "records:     %s\n", humanize.Comma(int64(total)))
	fmt.Fprintf(&b, "pagination:  %s\n", pagination)
	if m.Valid() {
		pages := (total + m.Capacity - 1) / m.Capacity
		fmt.Fprintf(&b, "viewport:    %d rows per page, %s pages\n", m.Capacity, humanize.Comma(int64(pages)))
		fmt.Fprintf(&b, "window:      %d rows per fetch\n", scroller.WindowLength(m.Capacity, cfg.BufferFactor))
	}
	b.WriteString(scroller.FormatInfo(info, scroller.DefaultInfoLanguage()))
	b.WriteString("\n")
	return b.String()
}

// runInfo prints record counts and paging for a source.
func runInfo(ctx context.Context, w io.Writer, cfg scroller.Config, args []string) error {
	spec, viewport, err := parseInfoArgs(args)
	if err != nil {
		return err
	}
	if spec == "" {
		return fmt.Errorf("info needs a source")
	}

	src, err := source.Open(ctx, spec)
	if err != nil {
		return fmt.Errorf("failed to open source: %w", err)
	}
	defer src.Close()

	total, err := src.Count(ctx, "")
	if err != nil {
		return fmt.Errorf("failed to count records: %w", err)
	}

	rh := cfg.RowHeight.Value()
	if cfg.RowHeight.IsAuto() {
		rh = 1
	}
	_, err = io.WriteString(w, formatInfo(src, total, scroller.NewMetrics(rh, viewport), cfg))
	return err
}
