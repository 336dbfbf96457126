package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/scholia/internal/domain"
)

// FormatTodos renders the todo list in position order.
func FormatTodos(todos []*domain.Todo) string {
	if len(todos) == 0 {
		return Dim("No todos.")
	}
	var b strings.Builder
	for i, t := range todos {
		title := t.Title
		if t.Done {
			title = StyleDim.Strikethrough(true).Render(title)
		}
		fmt.Fprintf(&b, "%2d. %s %s %s\n", i+1, Checkbox(t.Done), title, TruncID(t.ID))
	}
	return strings.TrimRight(b.String(), "\n")
}
