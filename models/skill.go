package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// DefaultSkillColor is the badge color used when none is given.
const DefaultSkillColor = "bg-blue-500"

// ErrSkillExists is returned by AddSkill when the category already holds a
// skill with the same name, ignoring case.
var ErrSkillExists = errors.New("skill already exists in this category")

// SkillItem is a single badge inside a category. It has no identity of its
// own and is addressed by name.
type SkillItem struct {
	Name  string `json:"name" validate:"required,max=50"`
	Color string `json:"color" validate:"required"`
}

// SkillCategory groups skill badges displayed together
type SkillCategory struct {
	ID        uuid.UUID                      `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Category  string                         `json:"category" db:"category" gorm:"type:varchar(100);not null" validate:"required,max=100"`
	Items     datatypes.JSONSlice[SkillItem] `json:"items" db:"items" gorm:"type:jsonb;not null" validate:"dive"`
	Order     int                            `json:"order" db:"display_order" gorm:"column:display_order;not null;default:0;index"`
	CreatedAt time.Time                      `json:"createdAt" db:"created_at" gorm:"not null;autoCreateTime:false"`
	UpdatedAt time.Time                      `json:"updatedAt" db:"updated_at" gorm:"not null;autoUpdateTime:false"`
}

// SkillCategorySummary is the lightweight projection used for navigation.
type SkillCategorySummary struct {
	ID       uuid.UUID `json:"id" gorm:"column:id"`
	Category string    `json:"category" gorm:"column:category"`
	Order    int       `json:"order" gorm:"column:display_order"`
}

// SkillCategoryFilter narrows a category listing by a case-insensitive
// substring of the category name.
type SkillCategoryFilter struct {
	Category string
}

// Normalize trims names and fills in missing badge colors.
func (c *SkillCategory) Normalize() {
	c.Category = strings.TrimSpace(c.Category)
	items := make(datatypes.JSONSlice[SkillItem], 0, len(c.Items))
	for _, item := range c.Items {
		items = append(items, item.normalized())
	}
	c.Items = items
}

// HasSkill reports whether an item with the given name exists, ignoring case.
func (c *SkillCategory) HasSkill(name string) bool {
	name = strings.TrimSpace(name)
	for _, item := range c.Items {
		if strings.EqualFold(item.Name, name) {
			return true
		}
	}
	return false
}

// AddSkill appends item unless a skill with the same name already exists.
func (c *SkillCategory) AddSkill(item SkillItem) error {
	item = item.normalized()
	if c.HasSkill(item.Name) {
		return ErrSkillExists
	}
	c.Items = append(c.Items, item)
	return nil
}

// RemoveSkill drops every item whose name equals name exactly and returns
// how many were removed. The match is case-sensitive.
func (c *SkillCategory) RemoveSkill(name string) int {
	kept := make(datatypes.JSONSlice[SkillItem], 0, len(c.Items))
	for _, item := range c.Items {
		if item.Name != name {
			kept = append(kept, item)
		}
	}
	removed := len(c.Items) - len(kept)
	c.Items = kept
	return removed
}

// TouchUpdatedAt refreshes UpdatedAt, and CreatedAt on first save.
func (c *SkillCategory) TouchUpdatedAt() {
	now := time.Now().UTC()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
}

func (i SkillItem) normalized() SkillItem {
	i.Name = strings.TrimSpace(i.Name)
	i.Color = strings.TrimSpace(i.Color)
	if i.Color == "" {
		i.Color = DefaultSkillColor
	}
	return i
}
