// Package planner turns model output into ticket plans and todo orderings.
package planner

// PlanDraft is the JSON document the model returns for a plan request.
type PlanDraft struct {
	Phases []PhaseDraft `json:"phases"`
}

type PhaseDraft struct {
	Name      string      `json:"name"`
	StartDate string      `json:"start_date"`
	EndDate   string      `json:"end_date"`
	Tasks     []TaskDraft `json:"tasks"`
}

type TaskDraft struct {
	Title    string `json:"title"`
	Deadline string `json:"deadline,omitempty"`
}

// TodoOrder is the JSON document the model returns for a prioritization
// request: todo IDs, most important first.
type TodoOrder struct {
	Order     []string `json:"order"`
	Rationale string   `json:"rationale,omitempty"`
}
