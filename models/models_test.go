package models

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContactNormalizesInput(t *testing.T) {
	c := NewContact("  Ada  ", "  Ada@Example.COM ", " Hello ", "  hi there \n")

	assert.Equal(t, "Ada", c.Name)
	assert.Equal(t, "ada@example.com", c.Email)
	assert.Equal(t, "Hello", c.Subject)
	assert.Equal(t, "hi there", c.Message)
	assert.Equal(t, ContactStatusNew, c.Status)
	assert.False(t, c.CreatedAt.IsZero())
	assert.True(t, c.Complete())

	assert.False(t, NewContact("Ada", "ada@example.com", "   ", "msg").Complete())
}

func TestProjectNormalizeDefaults(t *testing.T) {
	p := Project{Title: " T ", Description: "D", Link: " https://x ", Technologies: []string{" Go", "Rust "}}
	p.Normalize()

	assert.Equal(t, "T", p.Title)
	assert.Equal(t, "https://x", p.Link)
	assert.Equal(t, []string{"Go", "Rust"}, []string(p.Technologies))
	assert.Equal(t, DefaultProjectImage, p.Image)
	assert.Equal(t, ProjectStatusInProgress, p.Status)
	assert.False(t, p.Featured)

	empty := Project{}
	empty.Normalize()
	assert.NotNil(t, empty.Technologies)
	assert.Len(t, empty.Technologies, 0)
}

func TestProjectValidation(t *testing.T) {
	p := Project{
		Title:       strings.Repeat("a", 101),
		Description: "ok",
		Link:        "https://example.com",
		Status:      "Abandoned",
	}

	err := Validate(&p)
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.ElementsMatch(t, []string{
		"Title cannot be more than 100 characters",
		"Status must be one of: In Progress, Completed, On Hold",
	}, verr.Messages)

	p.Title = "Fine"
	p.Status = ProjectStatusOnHold
	assert.NoError(t, Validate(&p))
}

func TestSkillCategoryValidationReportsItemMessages(t *testing.T) {
	c := SkillCategory{
		Category: "Tools",
		Items:    []SkillItem{{Name: "", Color: "bg-red-500"}, {Name: strings.Repeat("x", 51), Color: "bg-red-500"}},
	}

	var verr *ValidationError
	require.ErrorAs(t, Validate(&c), &verr)
	assert.Equal(t, []string{
		"Skill name is required",
		"Skill name cannot be more than 50 characters",
	}, verr.Messages)

	missing := SkillCategory{}
	require.ErrorAs(t, Validate(&missing), &verr)
	assert.Equal(t, []string{"Category name is required"}, verr.Messages)
}

func TestAddSkillRejectsCaseInsensitiveDuplicate(t *testing.T) {
	c := SkillCategory{Category: "Tools", Items: []SkillItem{{Name: "Git", Color: "bg-red-500"}}}

	assert.ErrorIs(t, c.AddSkill(SkillItem{Name: "git"}), ErrSkillExists)
	assert.Len(t, c.Items, 1)

	require.NoError(t, c.AddSkill(SkillItem{Name: "Go"}))
	assert.Equal(t, []SkillItem{
		{Name: "Git", Color: "bg-red-500"},
		{Name: "Go", Color: DefaultSkillColor},
	}, []SkillItem(c.Items))
}

func TestRemoveSkillIsCaseSensitive(t *testing.T) {
	c := SkillCategory{Items: []SkillItem{{Name: "Git", Color: "a"}, {Name: "Go", Color: "b"}}}

	assert.Equal(t, 0, c.RemoveSkill("git"))
	assert.Len(t, c.Items, 2)

	assert.Equal(t, 1, c.RemoveSkill("Git"))
	assert.Equal(t, []SkillItem{{Name: "Go", Color: "b"}}, []SkillItem(c.Items))
}

func TestTouchUpdatedAt(t *testing.T) {
	c := SkillCategory{}
	c.TouchUpdatedAt()
	created := c.CreatedAt
	require.False(t, created.IsZero())

	c.TouchUpdatedAt()
	assert.Equal(t, created, c.CreatedAt)
	assert.False(t, c.UpdatedAt.Before(created))
}

func TestPaginate(t *testing.T) {
	cases := []struct {
		total int64
		limit int
		pages int64
	}{
		{0, 20, 0},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{101, 50, 3},
	}
	for _, tc := range cases {
		p := NewPage(1, tc.limit, 10).Paginate(tc.total)
		assert.Equal(t, tc.pages, p.Pages, "total=%d limit=%d", tc.total, tc.limit)
	}

	page := NewPage(0, -3, 50)
	assert.Equal(t, Page{Number: 1, Limit: 50}, page)
	assert.Equal(t, 100, NewPage(3, 50, 20).Offset())
}

func TestFindColumnMismatches(t *testing.T) {
	got := findColumnMismatches([]string{"id", "zeta", "title", "alpha"}, []string{"id", "title"})
	assert.Equal(t, []string{"alpha", "zeta"}, got)
}

func TestNewPageClampsOversizedRequests(t *testing.T) {
	page := NewPage(1, 1_000_000_000_000, 20)
	assert.Equal(t, MaxPageLimit, page.Limit)
	assert.Equal(t, Pagination{Page: 1, Limit: MaxPageLimit, Total: 250, Pages: 3}, page.Paginate(250))

	far := NewPage(math.MaxInt, MaxPageLimit, 20)
	assert.Equal(t, MaxPageNumber, far.Number)
	assert.Positive(t, far.Offset())
}

func TestContactEmailMustBeAnAddress(t *testing.T) {
	var verr *ValidationError
	require.ErrorAs(t, Validate(NewContact("Ada", "not-an-email", "Hi", "Hello")), &verr)
	assert.Equal(t, []string{"Please enter a valid email"}, verr.Messages)

	assert.NoError(t, Validate(NewContact("Ada", " Ada@Example.com ", "Hi", "Hello")))
}
