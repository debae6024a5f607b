package domain

import "strings"

// Filter selects projects for display. The same predicate backs the list endpoint and the
// client-side browser, so the two cannot disagree on the same input list.
type Filter struct {
	// Category keeps only projects of that category; "" and CategoryAll mean no filter.
	Category string
	// Technology keeps projects with a techStack entry containing it, case-insensitively.
	// An empty string means no filter. Whitespace is not trimmed.
	Technology string
	// IncludeUnpublished disables the published-only default.
	IncludeUnpublished bool
}

// Match reports whether p passes every active criterion.
func (f Filter) Match(p Project) bool {
	if !f.IncludeUnpublished && !p.Published {
		return false
	}
	if f.Category != "" && f.Category != CategoryAll && string(p.Category) != f.Category {
		return false
	}
	if f.Technology != "" && !usesTechnology(p, strings.ToLower(f.Technology)) {
		return false
	}
	return true
}

// Apply returns the matching projects in their original order. The result is never nil.
func (f Filter) Apply(projects []Project) []Project {
	out := make([]Project, 0, len(projects))
	for _, p := range projects {
		if f.Match(p) {
			out = append(out, p)
		}
	}
	return out
}

func usesTechnology(p Project, query string) bool {
	for _, tech := range p.TechStack {
		if strings.Contains(strings.ToLower(tech), query) {
			return true
		}
	}
	return false
}
