package formatter

import (
	"fmt"
	"time"

	"github.com/alexanderramin/scholia/internal/domain"
)

// FormatTimer renders one time entry with its elapsed time at now.
func FormatTimer(e *domain.TimeEntry, ticketTitle string, now time.Time) string {
	state := StyleGreen.Render("● running")
	if !e.Running() {
		state = StyleDim.Render("■ stopped")
	}
	s := fmt.Sprintf("%s  %s  %s", state, Bold(ticketTitle), FormatDuration(e.Elapsed(now)))
	if e.Note != "" {
		s += "  " + Dim(e.Note)
	}
	return s
}

func FormatTimeSummary(sum domain.TimeSummary, ticketTitle string) string {
	return fmt.Sprintf("%s: %s over %d sessions", Bold(ticketTitle), FormatDuration(sum.Total), sum.Entries)
}
