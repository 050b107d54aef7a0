package tui

import (
	"errors"
	"strings"
	"testing"

	"github.com/STRML/tscroll/internal/scroller"
)

func TestStatusBarModel_View(t *testing.T) {
	sb := NewStatusBarModel()
	sb.SetWidth(160)
	sb.SetSource("seq:10000")
	sb.SetPageInfo(scroller.PageInfo{Start: 0, End: 10, Length: 10, RecordsTotal: 10000, RecordsDisplay: 10000})

	view := sb.View()

	if !strings.Contains(view, "seq:10000") {
		t.Error("View should contain the source name")
	}
	if !strings.Contains(view, "Showing 1 to 10 of 10,000 entries") {
		t.Errorf("View should contain the info text, got %q", view)
	}
	for _, hint := range []string{"filter", "goto", "quit"} {
		if !strings.Contains(view, hint) {
			t.Errorf("View should contain key hint %q", hint)
		}
	}
}

func TestStatusBarModel_View_Filtered(t *testing.T) {
	sb := NewStatusBarModel()
	sb.SetWidth(200)
	sb.SetSource("events.csv")
	sb.SetFilter("error")
	sb.SetPageInfo(scroller.PageInfo{Start: 0, End: 10, Length: 10, RecordsTotal: 500, RecordsDisplay: 42})

	view := sb.View()
	if !strings.Contains(view, "/error") {
		t.Error("View should show the active filter")
	}
	if !strings.Contains(view, "(filtered from 500 total entries)") {
		t.Error("View should show the unfiltered total")
	}
}

func TestStatusBarModel_View_Error(t *testing.T) {
	sb := NewStatusBarModel()
	sb.SetWidth(160)
	sb.SetSource("docker")
	sb.SetPageInfo(scroller.PageInfo{RecordsTotal: 3, RecordsDisplay: 3, End: 3, Length: 3})
	sb.SetError(errors.New("daemon unreachable"))

	view := sb.View()
	if !strings.Contains(view, "daemon unreachable") {
		t.Error("View should show the error")
	}
	if strings.Contains(view, "Showing") {
		t.Error("Error should replace the info text")
	}

	sb.SetError(nil)
	if !strings.Contains(sb.View(), "Showing") {
		t.Error("Clearing the error should restore the info text")
	}
}

func TestStatusBarModel_View_Fetching(t *testing.T) {
	sb := NewStatusBarModel()
	sb.SetWidth(160)
	sb.SetSource("docker")

	sb.SetFetching(true, "*spin*")
	if !strings.Contains(sb.View(), "*spin*") {
		t.Error("View should show the spinner while fetching")
	}
	sb.SetFetching(false, "*spin*")
	if strings.Contains(sb.View(), "*spin*") {
		t.Error("View should hide the spinner when idle")
	}
}

func TestStatusBarModel_View_NarrowDropsHints(t *testing.T) {
	sb := NewStatusBarModel()
	sb.SetWidth(30)
	sb.SetSource("seq:10")

	view := sb.View()
	if strings.Contains(view, "quit") {
		t.Error("Hints should be dropped when they do not fit")
	}
	if strings.Contains(view, "\n") {
		t.Error("Status bar should stay on one line")
	}
}

func TestStatusBarModel_NoInfoBeforeAttach(t *testing.T) {
	sb := NewStatusBarModel()
	sb.SetWidth(160)
	sb.SetSource("seq:10")
	if strings.Contains(sb.View(), "Showing") {
		t.Error("View should not show info before a page is known")
	}
}
