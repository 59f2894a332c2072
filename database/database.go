package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/rpupo63/portfolio-site-backend/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

type Database struct {
	db                *gorm.DB
	contactRepo       *ContactRepo
	projectRepo       *ProjectRepo
	skillCategoryRepo *SkillCategoryRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:                db,
		contactRepo:       NewContactRepo(db),
		projectRepo:       NewProjectRepo(db),
		skillCategoryRepo: NewSkillCategoryRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) ContactRepo() *ContactRepo {
	return d.contactRepo
}

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) SkillCategoryRepo() *SkillCategoryRepo {
	return d.skillCategoryRepo
}

// Ping checks that the primary connection is usable.
func (d Database) Ping(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Migrate brings the schema up to date with the models and creates the
// indexes gorm tags cannot express.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	// Category names are unique ignoring case.
	err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_skill_categories_category_lower ON skill_categories (lower(category))`).Error
	if err != nil {
		return fmt.Errorf("create category name index: %w", err)
	}
	return nil
}

// UseReplica routes plain reads to the given replica DSNs. Writes and
// anything inside a transaction stay on the primary.
func UseReplica(db *gorm.DB, replicaDSNs ...string) error {
	var replicas []gorm.Dialector
	for _, dsn := range replicaDSNs {
		if dsn = strings.TrimSpace(dsn); dsn != "" {
			replicas = append(replicas, postgres.New(postgres.Config{DSN: dsn, PreferSimpleProtocol: true}))
		}
	}
	if len(replicas) == 0 {
		return nil
	}

	return db.Use(dbresolver.Register(dbresolver.Config{
		Replicas: replicas,
		Policy:   dbresolver.RandomPolicy{},
	}))
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern turns s into an ILIKE pattern matching s literally anywhere.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
