package llm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testPlan struct {
	Title  string   `json:"title"`
	Weight float64  `json:"weight"`
	Steps  []string `json:"steps"`
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want testPlan
	}{
		{"clean", `{"title":"Lit review","weight":0.5}`, testPlan{Title: "Lit review", Weight: 0.5}},
		{"fenced", "```json\n{\"title\":\"Draft\",\"weight\":1}\n```", testPlan{Title: "Draft", Weight: 1}},
		{"surrounding prose", "Here you go:\n{\"title\":\"Pilot\"}\nGood luck!", testPlan{Title: "Pilot"}},
		{"braces inside strings", `{"title":"use {curly} \"quotes\""}`, testPlan{Title: `use {curly} "quotes"`}},
		{"line comment", "{\n\"title\":\"A\", // the title\n\"weight\":2\n}", testPlan{Title: "A", Weight: 2}},
		{"block comment", `{"title":"B" /* note */, "steps":["x"]}`, testPlan{Title: "B", Steps: []string{"x"}}},
		{"leading dot number", `{"title":"C","weight":.8}`, testPlan{Title: "C", Weight: 0.8}},
		{"negative leading dot", `{"title":"D","weight":-.25}`, testPlan{Title: "D", Weight: -0.25}},
		{"dot inside string kept", `{"title":".5 scale"}`, testPlan{Title: ".5 scale"}},
		{"nested objects", `{"title":"E","steps":["{not}","json"]} trailing {"title":"F"}`, testPlan{Title: "E", Steps: []string{"{not}", "json"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSON[testPlan](tt.raw, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractJSON_Rejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"no object", "I don't know what you mean."},
		{"unbalanced", `{"title":"A"`},
		{"broken syntax", `{"title":"A", broken}`},
		{"unknown field", `{"title":"A","surprise":true}`},
		{"wrong type", `{"title":7}`},
		{"unterminated comment", `{"title":"A" /* oops }`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractJSON[testPlan](tt.raw, nil)
			assert.ErrorIs(t, err, ErrInvalidOutput)
		})
	}
}

func TestExtractJSON_Validator(t *testing.T) {
	requireTitle := func(p testPlan) error {
		if p.Title == "" {
			return errors.New("title is required")
		}
		return nil
	}

	_, err := ExtractJSON(`{"weight":1}`, requireTitle)
	assert.ErrorIs(t, err, ErrInvalidOutput)
	assert.Contains(t, err.Error(), "validation failed")

	got, err := ExtractJSON(`{"title":"ok"}`, requireTitle)
	require.NoError(t, err)
	assert.Equal(t, "ok", got.Title)
}
