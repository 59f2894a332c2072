package database

import (
	"context"

	"github.com/rpupo63/portfolio-site-backend/models"
	"gorm.io/gorm"
)

type ContactRepo struct {
	db *gorm.DB
}

func NewContactRepo(db *gorm.DB) *ContactRepo {
	return &ContactRepo{db}
}

// Add inserts a new contact submission
func (r *ContactRepo) Add(ctx context.Context, contact *models.Contact) error {
	return r.db.WithContext(ctx).Create(contact).Error
}

// FindPage returns one page of contacts, newest first, and the total number
// of contacts matching the filter.
func (r *ContactRepo) FindPage(ctx context.Context, filter models.ContactFilter, page models.Page) ([]*models.Contact, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Contact{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	contacts := []*models.Contact{}
	err := query.Session(&gorm.Session{}).Order("created_at DESC").Offset(page.Offset()).Limit(page.Limit).Find(&contacts).Error
	return contacts, total, err
}
