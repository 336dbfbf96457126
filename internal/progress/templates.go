package progress

import (
	"fmt"
	"strings"
)

type archetype struct {
	name   string
	titles [5]string
}

// archetypes is matched in declaration order; the first hit wins.
var archetypes = []archetype{
	{"Literature Review", [5]string{
		"Search recent publications on topic",
		"Review and summarize key papers",
		"Create annotated bibliography",
		"Identify research gaps",
		"Update literature matrix",
	}},
	{"Experimental Design", [5]string{
		"Define research hypotheses",
		"Select variables and controls",
		"Draft experiment protocol",
		"Plan sample size and power",
		"Review design with advisor",
	}},
	{"Data Collection", [5]string{
		"Prepare data collection instruments",
		"Recruit participants or sources",
		"Run pilot collection",
		"Collect primary data",
		"Clean and validate raw data",
	}},
	{"Analysis & Results", [5]string{
		"Run descriptive statistics",
		"Perform primary analysis",
		"Create figures and tables",
		"Interpret key findings",
		"Check robustness of results",
	}},
	{"Report Writing", [5]string{
		"Outline report structure",
		"Draft main sections",
		"Write abstract and conclusion",
		"Format references",
		"Proofread and revise draft",
	}},
	{"Introduction & Background", [5]string{
		"Define problem statement",
		"Summarize background context",
		"State research questions",
		"Draft introduction section",
		"Align background with objectives",
	}},
	{"Methodology & Results", [5]string{
		"Document methodology steps",
		"Justify chosen methods",
		"Compile results summary",
		"Draft methodology section",
		"Draft results section",
	}},
}

var genericTitleFormats = [5]string{
	"Complete %s activities",
	"Review %s progress",
	"Document %s findings",
	"Prepare %s deliverables",
	"Finalize %s milestone",
}

// TemplateTitles returns the five template task titles for a phase name.
// A phase matches an archetype when either name contains the other,
// ignoring case. Unmatched (or empty) names get generic titles built from
// the phase name.
func TemplateTitles(phaseName string) []string {
	name := strings.ToLower(strings.TrimSpace(phaseName))
	if name != "" {
		for _, a := range archetypes {
			key := strings.ToLower(a.name)
			if strings.Contains(name, key) || strings.Contains(key, name) {
				return append([]string(nil), a.titles[:]...)
			}
		}
	}

	label := strings.TrimSpace(phaseName)
	if label == "" {
		label = "phase"
	}
	out := make([]string, len(genericTitleFormats))
	for i, f := range genericTitleFormats {
		out[i] = fmt.Sprintf(f, label)
	}
	return out
}

// ArchetypeNames lists the known phase archetypes in match order.
func ArchetypeNames() []string {
	names := make([]string, len(archetypes))
	for i, a := range archetypes {
		names[i] = a.name
	}
	return names
}
