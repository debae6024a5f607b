package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestCategory_Valid(t *testing.T) {
	for _, c := range Categories {
		assert.True(t, c.Valid(), c)
	}
	assert.False(t, Category(CategoryAll).Valid())
	assert.False(t, Category("Data Engineer").Valid())
	assert.False(t, Category("").Valid())
}

func TestNewProject_Build(t *testing.T) {
	today := DateOf(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	p := NewProject{Title: "X", Category: CategoryAI}.Build("abc123xyz", today)

	assert.Equal(t, "abc123xyz", p.ID)
	assert.Equal(t, today, p.CreatedAt)
	assert.Equal(t, today, p.UpdatedAt)
	assert.NotNil(t, p.TechStack)
	assert.NotNil(t, p.Impact)
}

func TestNewProject_Validate(t *testing.T) {
	valid := NewProject{
		Title:           "Fraud detector",
		Description:     "Flags odd payments",
		FullDescription: "Gradient boosted trees over payment features.",
		Category:        CategoryAI,
		GithubURL:       "https://github.com/example/fraud",
		Published:       true,
	}
	require.NoError(t, valid.Validate())

	draft := NewProject{Title: "", Published: false}
	assert.NoError(t, draft.Validate(), "drafts may be incomplete")

	tests := []struct {
		name   string
		mutate func(*NewProject)
	}{
		{"unknown category", func(n *NewProject) { n.Category = "Chef" }},
		{"published without title", func(n *NewProject) { n.Title = "  " }},
		{"published without description", func(n *NewProject) { n.Description = "" }},
		{"published without full description", func(n *NewProject) { n.FullDescription = "" }},
		{"relative github url", func(n *NewProject) { n.GithubURL = "github.com/example" }},
		{"bad demo url", func(n *NewProject) { n.DemoURL = "/demo" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := valid
			tt.mutate(&n)
			err := n.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidProject))
		})
	}
}

func TestPatch_ApplyTo(t *testing.T) {
	base := Project{
		ID:        "p1",
		Title:     "Old",
		Category:  CategorySoftware,
		TechStack: []string{"Go"},
		Impact:    []string{"Cut latency"},
		Featured:  true,
	}

	t.Run("empty patch changes nothing", func(t *testing.T) {
		p := base
		Patch{}.ApplyTo(&p)
		assert.Equal(t, base, p)
	})

	t.Run("supplied fields replace", func(t *testing.T) {
		p := base
		Patch{
			Title:     ptr("New"),
			Category:  ptr(CategoryDevOps),
			TechStack: []string{"Terraform"},
			Featured:  ptr(false),
			Published: ptr(true),
		}.ApplyTo(&p)

		assert.Equal(t, "p1", p.ID)
		assert.Equal(t, "New", p.Title)
		assert.Equal(t, CategoryDevOps, p.Category)
		assert.Equal(t, []string{"Terraform"}, p.TechStack)
		assert.Equal(t, []string{"Cut latency"}, p.Impact)
		assert.False(t, p.Featured)
		assert.True(t, p.Published)
	})

	t.Run("empty slice clears", func(t *testing.T) {
		p := base
		Patch{Impact: []string{}}.ApplyTo(&p)
		assert.Empty(t, p.Impact)
	})
}

func TestProject_ImpactPreview(t *testing.T) {
	assert.Equal(t, "", Project{}.ImpactPreview())
	assert.Equal(t, "first", Project{Impact: []string{"first", "second"}}.ImpactPreview())
}

func TestCheckInvariants(t *testing.T) {
	jan := DateOf(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	feb := DateOf(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))

	ok := []Project{
		{ID: "a", CreatedAt: jan, UpdatedAt: feb},
		{ID: "b", CreatedAt: jan, UpdatedAt: jan},
	}
	assert.Empty(t, CheckInvariants(ok))

	bad := []Project{
		{ID: "a", CreatedAt: jan, UpdatedAt: jan},
		{ID: "a", CreatedAt: jan, UpdatedAt: jan},
		{ID: "", CreatedAt: jan, UpdatedAt: jan},
		{ID: "c", CreatedAt: feb, UpdatedAt: jan},
	}
	assert.Len(t, CheckInvariants(bad), 3)
}
