// Package template holds the fixed catalog of document templates.
package template

// Template describes one document layout offering.
type Template struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Sections    []string `json:"sections"`
}

var catalog = []Template{
	{
		ID:          "standard",
		Name:        "Standard CIM",
		Description: "Complete CIM with all standard sections",
		Sections: []string{
			"executive_summary",
			"company_overview",
			"financial_analysis",
			"market_analysis",
			"investment_highlights",
			"risk_factors",
			"roi_projections",
		},
	},
	{
		ID:          "quick",
		Name:        "Quick Overview",
		Description: "Condensed CIM for preliminary review",
		Sections: []string{
			"executive_summary",
			"financial_analysis",
			"investment_highlights",
		},
	},
	{
		ID:          "detailed",
		Name:        "Detailed Analysis",
		Description: "In-depth CIM with extended financial modeling",
		Sections: []string{
			"executive_summary",
			"company_overview",
			"financial_analysis",
			"market_analysis",
			"competitive_analysis",
			"investment_highlights",
			"risk_factors",
			"roi_projections",
			"management_team",
			"appendix",
		},
	},
}

// All returns every template in catalog order.
func All() []Template {
	out := make([]Template, len(catalog))
	copy(out, catalog)
	return out
}

// Get looks a template up by ID.
func Get(id string) (Template, bool) {
	for _, t := range catalog {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}

// Sections returns the section list for a template, nil for an
// unknown ID.
func Sections(id string) []string {
	t, ok := Get(id)
	if !ok {
		return nil
	}
	return t.Sections
}

// Valid reports whether the ID names a known template.
func Valid(id string) bool {
	_, ok := Get(id)
	return ok
}
