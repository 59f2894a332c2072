package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Project statuses accepted by the status column.
const (
	ProjectStatusInProgress = "In Progress"
	ProjectStatusCompleted  = "Completed"
	ProjectStatusOnHold     = "On Hold"
)

// DefaultProjectImage is used when a project is created without an image.
const DefaultProjectImage = "/project-placeholder.jpg"

// Project represents a portfolio entry
type Project struct {
	ID           uuid.UUID                   `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Title        string                      `json:"title" db:"title" gorm:"type:varchar(100);not null" validate:"required,max=100"`
	Description  string                      `json:"description" db:"description" gorm:"type:varchar(1000);not null" validate:"required,max=1000"`
	Link         string                      `json:"link" db:"link" gorm:"type:text;not null" validate:"required"`
	Technologies datatypes.JSONSlice[string] `json:"technologies" db:"technologies" gorm:"type:jsonb;not null"`
	Image        string                      `json:"image" db:"image" gorm:"type:text;not null"`
	Status       string                      `json:"status" db:"status" gorm:"type:text;not null;index" validate:"oneof='In Progress' Completed 'On Hold'"`
	Featured     bool                        `json:"featured" db:"featured" gorm:"not null;index"`
	CreatedAt    time.Time                   `json:"createdAt" db:"created_at" gorm:"not null;index;autoCreateTime:false"`
	UpdatedAt    time.Time                   `json:"updatedAt" db:"updated_at" gorm:"not null;autoUpdateTime:false"`
}

// ProjectFilter narrows a project listing. A nil Featured means no filter.
type ProjectFilter struct {
	Status   string
	Featured *bool
}

// Normalize trims the text fields and fills in defaults for the optional ones.
func (p *Project) Normalize() {
	p.Title = strings.TrimSpace(p.Title)
	p.Description = strings.TrimSpace(p.Description)
	p.Link = strings.TrimSpace(p.Link)

	technologies := make(datatypes.JSONSlice[string], 0, len(p.Technologies))
	for _, tech := range p.Technologies {
		technologies = append(technologies, strings.TrimSpace(tech))
	}
	p.Technologies = technologies

	if p.Image == "" {
		p.Image = DefaultProjectImage
	}
	if p.Status == "" {
		p.Status = ProjectStatusInProgress
	}
}

// TouchUpdatedAt refreshes UpdatedAt, and CreatedAt on first save.
func (p *Project) TouchUpdatedAt() {
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
}
