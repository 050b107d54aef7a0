package scroller

import (
	"math"
	"strings"

	"github.com/dustin/go-humanize"
)

// PageInfo is a read-only projection of the session for status displays.
// Start is the first visible record, Length the number of visible rows.
type PageInfo struct {
	Page           int
	Pages          int
	Start          int
	End            int
	Length         int
	RecordsTotal   int
	RecordsDisplay int
	ServerSide     bool
}

func pageInfo(scrollTop float64, m Metrics, total, unfiltered int, serverSide bool) PageInfo {
	info := PageInfo{
		RecordsTotal:   unfiltered,
		RecordsDisplay: total,
		ServerSide:     serverSide,
		Pages:          1,
	}
	if !m.Valid() {
		info.End = total
		info.Length = total
		return info
	}

	start := int(math.Ceil(scrollTop / m.RowHeight))
	if start < 0 {
		start = 0
	}
	if start > total {
		start = total
	}
	length := m.Capacity
	info.Start = start
	info.Length = length
	info.End = min(start+length, total)
	info.Page = start / length
	info.Pages = int(math.Ceil(float64(total) / float64(length)))
	return info
}

// InfoLanguage holds the templates of the info line. Templates may use the
// macros _START_, _END_, _TOTAL_, _MAX_, _PAGE_ and _PAGES_.
type InfoLanguage struct {
	Info         string
	InfoEmpty    string
	InfoFiltered string
	InfoPostFix  string
}

// DefaultInfoLanguage returns the English info templates.
func DefaultInfoLanguage() InfoLanguage {
	return InfoLanguage{
		Info:         "Showing _START_ to _END_ of _TOTAL_ entries",
		InfoEmpty:    "Showing 0 to 0 of 0 entries",
		InfoFiltered: "(filtered from _MAX_ total entries)",
	}
}

// FormatInfo renders the info line for a page, with thousands separators.
func FormatInfo(info PageInfo, lang InfoLanguage) string {
	out := lang.InfoEmpty
	if info.RecordsDisplay > 0 {
		out = lang.Info
	}
	if info.RecordsDisplay != info.RecordsTotal && lang.InfoFiltered != "" {
		out += " " + lang.InfoFiltered
	}
	out += lang.InfoPostFix

	start := info.Start + 1
	page, pages := 1, 1
	if info.Length > 0 {
		page = int(math.Ceil(float64(start) / float64(info.Length)))
		pages = int(math.Ceil(float64(info.RecordsDisplay) / float64(info.Length)))
	}

	r := strings.NewReplacer(
		"_START_", formatNumber(start),
		"_END_", formatNumber(info.End),
		"_MAX_", formatNumber(info.RecordsTotal),
		"_TOTAL_", formatNumber(info.RecordsDisplay),
		"_PAGES_", formatNumber(pages),
		"_PAGE_", formatNumber(page),
	)
	return r.Replace(out)
}

func formatNumber(n int) string {
	return humanize.Comma(int64(n))
}
