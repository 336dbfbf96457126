package domain

import (
	"fmt"
	"strings"
)

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// ValidPriorities is the canonical set of accepted priority strings.
var ValidPriorities = map[Priority]bool{
	PriorityLow: true, PriorityMedium: true, PriorityHigh: true,
}

// ParsePriority accepts a priority name case-insensitively. Empty means Medium.
func ParsePriority(s string) (Priority, error) {
	if s == "" {
		return PriorityMedium, nil
	}
	for p := range ValidPriorities {
		if strings.EqualFold(s, string(p)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("priority %q must be one of Low, Medium, High", s)
}

type TicketStatus string

const (
	StatusPlanned    TicketStatus = "planned"
	StatusInProgress TicketStatus = "in-progress"
	StatusCompleted  TicketStatus = "completed"
)

// ValidStatuses is the canonical set of accepted ticket status strings.
var ValidStatuses = map[TicketStatus]bool{
	StatusPlanned: true, StatusInProgress: true, StatusCompleted: true,
}

// TaskSource records who created a task.
type TaskSource string

const (
	SourceManual   TaskSource = "manual"
	SourceAutoFill TaskSource = "autofill"
	SourceAIPlan   TaskSource = "ai_plan"
)
