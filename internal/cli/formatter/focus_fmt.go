package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/scholia/internal/progress"
)

// FormatFocus renders today's focus list, numbered in rank order.
func FormatFocus(items []progress.FocusItem, today time.Time) string {
	if len(items) == 0 {
		return Dim("Nothing needs attention today.")
	}
	var b strings.Builder
	b.WriteString(Header("Today's focus") + "\n")
	for i, it := range items {
		fmt.Fprintf(&b, "%d. %s %s\n", i+1, Bold(it.Task.Title), reasonBadge(it))
		fmt.Fprintf(&b, "   %s  %s", Dim(it.TicketTitle), PriorityBadge(it.Priority))
		if it.Task.Deadline != nil {
			fmt.Fprintf(&b, "  %s", Deadline(it.Task.Deadline, today))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func reasonBadge(it progress.FocusItem) string {
	switch {
	case it.DueToday:
		return StyleRed.Render("due today")
	case it.Overdue:
		return StyleRed.Render("overdue")
	}
	return StyleBlue.Render("next up")
}
