package domain

import (
	"fmt"
	"net/url"
	"strings"
)

// Category is the role label a project is filed under.
type Category string

const (
	CategorySoftware        Category = "Software Engineer"
	CategoryComputerScience Category = "Computer Science Engineer"
	CategoryAI              Category = "AI Engineer"
	CategoryDevOps          Category = "DevOps Engineer"
)

// CategoryAll is the filter sentinel meaning "every category". It is never stored on a record.
const CategoryAll = "all"

// Categories lists the closed set in display order.
var Categories = []Category{
	CategoryAI,
	CategorySoftware,
	CategoryDevOps,
	CategoryComputerScience,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Project is one portfolio item. Field names follow the JSON document layout of the store.
type Project struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	FullDescription string   `json:"fullDescription"`
	Category        Category `json:"category"`
	TechStack       []string `json:"techStack"`
	GithubURL       string   `json:"githubUrl,omitempty"`
	DemoURL         string   `json:"demoUrl,omitempty"`
	Impact          []string `json:"impact"`
	Featured        bool     `json:"featured"`
	CreatedAt       Date     `json:"createdAt"`
	UpdatedAt       Date     `json:"updatedAt"`
	Published       bool     `json:"published"`
}

// ImpactPreview returns the first impact entry, which cards show as a teaser.
func (p Project) ImpactPreview() string {
	if len(p.Impact) == 0 {
		return ""
	}
	return p.Impact[0]
}

// NewProject is the create payload: a project without id or dates.
type NewProject struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	FullDescription string   `json:"fullDescription"`
	Category        Category `json:"category"`
	TechStack       []string `json:"techStack"`
	GithubURL       string   `json:"githubUrl,omitempty"`
	DemoURL         string   `json:"demoUrl,omitempty"`
	Impact          []string `json:"impact"`
	Featured        bool     `json:"featured"`
	Published       bool     `json:"published"`
}

// Build turns the payload into a stored record with the given id and creation date.
func (n NewProject) Build(id string, today Date) Project {
	return Project{
		ID:              id,
		Title:           n.Title,
		Description:     n.Description,
		FullDescription: n.FullDescription,
		Category:        n.Category,
		TechStack:       nonNil(n.TechStack),
		GithubURL:       n.GithubURL,
		DemoURL:         n.DemoURL,
		Impact:          nonNil(n.Impact),
		Featured:        n.Featured,
		CreatedAt:       today,
		UpdatedAt:       today,
		Published:       n.Published,
	}
}

// Validate checks the payload against the data model. Only enforced when strict validation
// is switched on; the default create path is permissive.
func (n NewProject) Validate() error {
	return n.Build("", Date{}).Validate()
}

// Validate checks the editable fields of a record: known category, absolute URLs, and the
// texts a published project needs. Id and dates are not checked.
func (p Project) Validate() error {
	var problems []string

	if p.Category != "" && !p.Category.Valid() {
		problems = append(problems, fmt.Sprintf("unknown category %q", p.Category))
	}
	if p.Published {
		if strings.TrimSpace(p.Title) == "" {
			problems = append(problems, "title is required for a published project")
		}
		if strings.TrimSpace(p.Description) == "" {
			problems = append(problems, "description is required for a published project")
		}
		if strings.TrimSpace(p.FullDescription) == "" {
			problems = append(problems, "fullDescription is required for a published project")
		}
	}
	if p.GithubURL != "" && !isAbsoluteURL(p.GithubURL) {
		problems = append(problems, "githubUrl must be an absolute URL")
	}
	if p.DemoURL != "" && !isAbsoluteURL(p.DemoURL) {
		problems = append(problems, "demoUrl must be an absolute URL")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidProject, strings.Join(problems, "; "))
	}
	return nil
}

// Patch is a partial update. Nil fields are left untouched. Id and dates are not patchable.
type Patch struct {
	Title           *string   `json:"title,omitempty"`
	Description     *string   `json:"description,omitempty"`
	FullDescription *string   `json:"fullDescription,omitempty"`
	Category        *Category `json:"category,omitempty"`
	TechStack       []string  `json:"techStack,omitempty"`
	GithubURL       *string   `json:"githubUrl,omitempty"`
	DemoURL         *string   `json:"demoUrl,omitempty"`
	Impact          []string  `json:"impact,omitempty"`
	Featured        *bool     `json:"featured,omitempty"`
	Published       *bool     `json:"published,omitempty"`
}

// ApplyTo merges the supplied fields into p.
func (pt Patch) ApplyTo(p *Project) {
	if pt.Title != nil {
		p.Title = *pt.Title
	}
	if pt.Description != nil {
		p.Description = *pt.Description
	}
	if pt.FullDescription != nil {
		p.FullDescription = *pt.FullDescription
	}
	if pt.Category != nil {
		p.Category = *pt.Category
	}
	if pt.TechStack != nil {
		p.TechStack = pt.TechStack
	}
	if pt.GithubURL != nil {
		p.GithubURL = *pt.GithubURL
	}
	if pt.DemoURL != nil {
		p.DemoURL = *pt.DemoURL
	}
	if pt.Impact != nil {
		p.Impact = pt.Impact
	}
	if pt.Featured != nil {
		p.Featured = *pt.Featured
	}
	if pt.Published != nil {
		p.Published = *pt.Published
	}
}

// CheckInvariants reports every violation of the store invariants: unique ids and
// updatedAt not before createdAt.
func CheckInvariants(projects []Project) []error {
	var errs []error
	seen := make(map[string]int, len(projects))
	for i, p := range projects {
		if p.ID == "" {
			errs = append(errs, fmt.Errorf("project #%d: empty id", i))
		} else if first, dup := seen[p.ID]; dup {
			errs = append(errs, fmt.Errorf("project #%d: id %q already used by project #%d", i, p.ID, first))
		} else {
			seen[p.ID] = i
		}
		if p.UpdatedAt.Before(p.CreatedAt.Time) {
			errs = append(errs, fmt.Errorf("project %q: updatedAt %s is before createdAt %s", p.ID, p.UpdatedAt, p.CreatedAt))
		}
	}
	return errs
}

func isAbsoluteURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && u.IsAbs() && u.Host != ""
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
