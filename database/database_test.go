package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB starts a throwaway Postgres, migrates it and returns a handle.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping database test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	ctr, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("portfolio"),
		tcpostgres.WithUsername("portfolio"),
		tcpostgres.WithPassword("portfolio"),
		tcpostgres.BasicWaitStrategies(),
	)
	t.Cleanup(func() {
		if ctr != nil {
			require.NoError(t, ctr.Terminate(context.Background()))
		}
	})
	require.NoError(t, err)

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	return db
}

func newCategory(name string, order int, items ...models.SkillItem) *models.SkillCategory {
	c := &models.SkillCategory{Category: name, Order: order, Items: datatypes.JSONSlice[models.SkillItem](items)}
	c.Normalize()
	c.TouchUpdatedAt()
	return c
}

func TestRepositories(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	d := New(db)

	require.NoError(t, d.Ping(ctx))

	t.Run("contacts are listed newest first and filtered by status", func(t *testing.T) {
		older := models.NewContact("Ann", "ann@example.com", "Hi", "First")
		older.CreatedAt = time.Now().UTC().Add(-time.Hour)
		newer := models.NewContact("Bob", "bob@example.com", "Hey", "Second")
		read := models.NewContact("Cid", "cid@example.com", "Yo", "Third")
		read.Status = "read"

		for _, c := range []*models.Contact{older, newer, read} {
			require.NoError(t, d.ContactRepo().Add(ctx, c))
			assert.NotEqual(t, uuid.Nil, c.ID)
		}

		contacts, total, err := d.ContactRepo().FindPage(ctx, models.ContactFilter{Status: models.ContactStatusNew}, models.NewPage(1, 1, 50))
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
		require.Len(t, contacts, 1)
		assert.Equal(t, "Bob", contacts[0].Name)
	})

	t.Run("project technologies keep their order", func(t *testing.T) {
		p := &models.Project{Title: "Compiler", Description: "Toy compiler", Link: "https://example.com",
			Technologies: datatypes.JSONSlice[string]{"Go", "Rust"}}
		p.Normalize()
		p.TouchUpdatedAt()
		require.NoError(t, d.ProjectRepo().Add(ctx, p))

		found, err := d.ProjectRepo().FindByID(ctx, p.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, datatypes.JSONSlice[string]{"Go", "Rust"}, found.Technologies)
		assert.Equal(t, models.DefaultProjectImage, found.Image)

		featured := false
		projects, total, err := d.ProjectRepo().FindPage(ctx, models.ProjectFilter{Featured: &featured}, models.NewPage(1, 20, 20))
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		assert.Len(t, projects, 1)

		projects, _, err = d.ProjectRepo().FindPage(ctx, models.ProjectFilter{}, models.NewPage(1_000_000_000, 1_000_000_000_000, 20))
		require.NoError(t, err)
		assert.Empty(t, projects)

		deleted, err := d.ProjectRepo().Delete(ctx, p.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = d.ProjectRepo().Delete(ctx, p.ID)
		require.NoError(t, err)
		assert.False(t, deleted)

		missing, err := d.ProjectRepo().FindByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("category names are unique ignoring case", func(t *testing.T) {
		require.NoError(t, d.SkillCategoryRepo().Add(ctx, newCategory("Tools", 3)))

		exists, err := d.SkillCategoryRepo().ExistsByName(ctx, "TOOLS")
		require.NoError(t, err)
		assert.True(t, exists)

		err = d.SkillCategoryRepo().Add(ctx, newCategory("tools", 4))
		assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey), "got %v", err)
	})

	t.Run("category filter matches literally", func(t *testing.T) {
		require.NoError(t, d.SkillCategoryRepo().Add(ctx, newCategory("100% Backend", 1)))

		matched, total, err := d.SkillCategoryRepo().FindPage(ctx, models.SkillCategoryFilter{Category: "0% back"}, models.NewPage(1, 50, 50))
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		require.Len(t, matched, 1)
		assert.Equal(t, "100% Backend", matched[0].Category)

		_, total, err = d.SkillCategoryRepo().FindPage(ctx, models.SkillCategoryFilter{Category: "%"}, models.NewPage(1, 50, 50))
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)

		summaries, err := d.SkillCategoryRepo().ListSummaries(ctx)
		require.NoError(t, err)
		require.Len(t, summaries, 2)
		assert.Equal(t, "100% Backend", summaries[0].Category)
		assert.Equal(t, 3, summaries[1].Order)
	})

	t.Run("mutate saves under a row lock and rolls back on error", func(t *testing.T) {
		c := newCategory("Languages", 5, models.SkillItem{Name: "Git"})
		require.NoError(t, d.SkillCategoryRepo().Add(ctx, c))

		updated, err := d.SkillCategoryRepo().Mutate(ctx, c.ID, func(sc *models.SkillCategory) error {
			return sc.AddSkill(models.SkillItem{Name: "Go"})
		})
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Len(t, updated.Items, 2)

		_, err = d.SkillCategoryRepo().Mutate(ctx, c.ID, func(sc *models.SkillCategory) error {
			sc.RemoveSkill("Git")
			return models.ErrSkillExists
		})
		assert.ErrorIs(t, err, models.ErrSkillExists)

		reloaded, err := d.SkillCategoryRepo().FindByID(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"Git", "Go"}, []string{reloaded.Items[0].Name, reloaded.Items[1].Name})

		none, err := d.SkillCategoryRepo().Mutate(ctx, uuid.New(), func(*models.SkillCategory) error {
			t.Fatal("callback must not run for a missing category")
			return nil
		})
		require.NoError(t, err)
		assert.Nil(t, none)
	})

	t.Run("seed replaces projects and categories", func(t *testing.T) {
		require.NoError(t, Seed(ctx, db))

		var projects, categories int64
		require.NoError(t, db.Model(&models.Project{}).Count(&projects).Error)
		require.NoError(t, db.Model(&models.SkillCategory{}).Count(&categories).Error)
		assert.EqualValues(t, 6, projects)
		assert.EqualValues(t, 3, categories)

		summaries, err := d.SkillCategoryRepo().ListSummaries(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Frontend Development", summaries[0].Category)
	})
}

func TestContainsPatternEscapesWildcards(t *testing.T) {
	assert.Equal(t, `%50\% off\_now\\%`, containsPattern(`50% off_now\`))
}
