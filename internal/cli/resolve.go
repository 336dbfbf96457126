package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/scholia/internal/domain"
)

// resolveTicketID accepts a full ticket ID or a unique prefix of one.
func resolveTicketID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("ticket ID is required")
	}
	tickets, err := app.Tickets.List(ctx)
	if err != nil {
		return "", err
	}
	ids := make([]string, len(tickets))
	for i, t := range tickets {
		ids[i] = t.ID
	}
	return matchID("ticket", ids, input)
}

// resolveTask finds a task of the ticket by full ID or unique prefix.
func resolveTask(t *domain.Ticket, input string) (string, error) {
	ids := make([]string, len(t.Tasks))
	for i, task := range t.Tasks {
		ids[i] = task.ID
	}
	return matchID("task", ids, input)
}

func resolveTodoID(ctx context.Context, app *App, input string) (string, error) {
	todos, err := app.Todos.List(ctx)
	if err != nil {
		return "", err
	}
	ids := make([]string, len(todos))
	for i, t := range todos {
		ids[i] = t.ID
	}
	return matchID("todo", ids, input)
}

func matchID(kind string, ids []string, input string) (string, error) {
	for _, id := range ids {
		if id == input {
			return id, nil
		}
	}
	var matches []string
	for _, id := range ids {
		if strings.HasPrefix(id, input) {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%s not found: %q", kind, input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%s ID prefix %q is ambiguous (%d matches)", kind, input, len(matches))
	}
}

func parsePhaseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("phase ID %q must be a positive integer", s)
	}
	return id, nil
}

// parseDateFlag parses an optional YYYY-MM-DD flag value.
func parseDateFlag(flag, value string) (*time.Time, error) {
	d, err := domain.ParseOptionalDate(value)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s %q: use YYYY-MM-DD", flag, value)
	}
	return d, nil
}
