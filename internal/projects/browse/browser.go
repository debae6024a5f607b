// Package browse re-filters an already fetched project list as the viewer changes
// the category selector or the technology search box.
package browse

import (
	"fmt"
	"strings"

	"github.com/devfolio/portfolio-api/internal/projects/domain"
)

// Browser holds the base list and the current filter selection. Every setter recomputes
// the visible list immediately. It is not safe for concurrent use.
type Browser struct {
	all      []domain.Project
	filter   domain.Filter
	filtered []domain.Project
}

// New starts with category "all" and an empty technology search.
func New(projects []domain.Project) *Browser {
	b := &Browser{
		filter: domain.Filter{Category: domain.CategoryAll, IncludeUnpublished: true},
	}
	b.SetProjects(projects)
	return b
}

// SetProjects replaces the base list, e.g. after a fresh fetch.
func (b *Browser) SetProjects(projects []domain.Project) {
	b.all = append([]domain.Project(nil), projects...)
	b.recompute()
}

// SetCategory accepts a category label or "all".
func (b *Browser) SetCategory(category string) {
	if category == "" {
		category = domain.CategoryAll
	}
	b.filter.Category = category
	b.recompute()
}

func (b *Browser) SetTechnology(query string) {
	b.filter.Technology = query
	b.recompute()
}

// ClearFilters resets category to "all" and technology to "".
func (b *Browser) ClearFilters() {
	b.filter.Category = domain.CategoryAll
	b.filter.Technology = ""
	b.recompute()
}

func (b *Browser) Category() string { return b.filter.Category }

func (b *Browser) Technology() string { return b.filter.Technology }

// Visible returns the filtered list in base-list order.
func (b *Browser) Visible() []domain.Project {
	return append([]domain.Project(nil), b.filtered...)
}

// Total is the size of the base list.
func (b *Browser) Total() int { return len(b.all) }

// Empty reports whether the current filters hide everything.
func (b *Browser) Empty() bool { return len(b.filtered) == 0 }

// Summary renders e.g. "Showing 2 of 3 projects in AI Engineer using python".
func (b *Browser) Summary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Showing %d of %d projects", len(b.filtered), len(b.all))
	if b.filter.Category != domain.CategoryAll {
		fmt.Fprintf(&sb, " in %s", b.filter.Category)
	}
	if b.filter.Technology != "" {
		fmt.Fprintf(&sb, " using %s", b.filter.Technology)
	}
	return sb.String()
}

func (b *Browser) recompute() {
	b.filtered = b.filter.Apply(b.all)
}
