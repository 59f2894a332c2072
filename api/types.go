package api

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rpupo63/portfolio-site-backend/services"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	authHandler          authHandler
	healthHandler        healthHandler
	contactHandler       contactHandler
	projectHandler       projectHandler
	skillCategoryHandler skillCategoryHandler
}

type contactStore interface {
	Add(ctx context.Context, contact *models.Contact) error
	FindPage(ctx context.Context, filter models.ContactFilter, page models.Page) ([]*models.Contact, int64, error)
}

type projectStore interface {
	FindPage(ctx context.Context, filter models.ProjectFilter, page models.Page) ([]*models.Project, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
	Add(ctx context.Context, project *models.Project) error
	Update(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type skillCategoryStore interface {
	ListSummaries(ctx context.Context) ([]models.SkillCategorySummary, error)
	FindPage(ctx context.Context, filter models.SkillCategoryFilter, page models.Page) ([]*models.SkillCategory, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.SkillCategory, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Add(ctx context.Context, category *models.SkillCategory) error
	Mutate(ctx context.Context, id uuid.UUID, fn func(*models.SkillCategory) error) (*models.SkillCategory, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type pinger interface {
	Ping(ctx context.Context) error
}

type contactNotifier interface {
	NotifyContact(ctx context.Context, contact models.Contact) services.NotifyResult
}

// repositories is everything the handlers need from the persistence layer.
type repositories struct {
	contacts        contactStore
	projects        projectStore
	skillCategories skillCategoryStore
	health          pinger
}

func repositoriesFrom(db database.Database) repositories {
	return repositories{
		contacts:        db.ContactRepo(),
		projects:        db.ProjectRepo(),
		skillCategories: db.SkillCategoryRepo(),
		health:          db,
	}
}
