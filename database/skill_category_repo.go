package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SkillCategoryRepo struct {
	db *gorm.DB
}

func NewSkillCategoryRepo(db *gorm.DB) *SkillCategoryRepo {
	return &SkillCategoryRepo{db}
}

// ListSummaries returns id, name and order of every category in display order.
func (r *SkillCategoryRepo) ListSummaries(ctx context.Context) ([]models.SkillCategorySummary, error) {
	summaries := []models.SkillCategorySummary{}
	err := r.db.WithContext(ctx).
		Model(&models.SkillCategory{}).
		Select("id", "category", "display_order").
		Order("display_order ASC, created_at ASC").
		Scan(&summaries).Error
	return summaries, err
}

// FindPage returns one page of full categories in display order and the
// total number matching the filter.
func (r *SkillCategoryRepo) FindPage(ctx context.Context, filter models.SkillCategoryFilter, page models.Page) ([]*models.SkillCategory, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.SkillCategory{})
	if filter.Category != "" {
		query = query.Where("category ILIKE ?", containsPattern(filter.Category))
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	categories := []*models.SkillCategory{}
	err := query.Session(&gorm.Session{}).Order("display_order ASC, created_at ASC").Offset(page.Offset()).Limit(page.Limit).Find(&categories).Error
	return categories, total, err
}

// FindByID returns a category by its ID, or nil if there is none
func (r *SkillCategoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.SkillCategory, error) {
	var category models.SkillCategory
	err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// ExistsByName reports whether a category with this name exists, ignoring case.
func (r *SkillCategoryRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.SkillCategory{}).
		Where("lower(category) = lower(?)", name).
		Count(&count).Error
	return count > 0, err
}

// Add inserts a new category. A name clash surfaces as gorm.ErrDuplicatedKey.
func (r *SkillCategoryRepo) Add(ctx context.Context, category *models.SkillCategory) error {
	return r.db.WithContext(ctx).Create(category).Error
}

// Mutate loads the category with a row lock, applies fn and saves the result
// in one transaction. It returns nil, nil if the category does not exist.
// Any error from fn aborts the transaction and is returned unchanged.
func (r *SkillCategoryRepo) Mutate(ctx context.Context, id uuid.UUID, fn func(*models.SkillCategory) error) (*models.SkillCategory, error) {
	var category *models.SkillCategory
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var locked models.SkillCategory
		err := tx.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
			First(&locked, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		if err := fn(&locked); err != nil {
			return err
		}
		if err := tx.Save(&locked).Error; err != nil {
			return err
		}
		category = &locked
		return nil
	})
	if err != nil {
		return nil, err
	}
	return category, nil
}

// Delete removes a category by id and reports whether it existed
func (r *SkillCategoryRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.SkillCategory{}, "id = ?", id)
	return result.RowsAffected > 0, result.Error
}
