package api

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site-backend/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func paginate[T any](items []T, page models.Page) []T {
	start := page.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := start + page.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

type fakeContactStore struct {
	mu       sync.Mutex
	contacts []*models.Contact
	addErr   error
}

func (s *fakeContactStore) Add(_ context.Context, contact *models.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.addErr != nil {
		return s.addErr
	}
	contact.ID = uuid.New()
	s.contacts = append(s.contacts, contact)
	return nil
}

func (s *fakeContactStore) FindPage(_ context.Context, filter models.ContactFilter, page models.Page) ([]*models.Contact, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var matched []*models.Contact
	for _, c := range s.contacts {
		if filter.Status == "" || c.Status == filter.Status {
			matched = append(matched, c)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
	return paginate(matched, page), int64(len(matched)), nil
}

func (s *fakeContactStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.contacts)
}

type fakeProjectStore struct {
	mu       sync.Mutex
	projects map[uuid.UUID]*models.Project
}

func newFakeProjectStore() *fakeProjectStore {
	return &fakeProjectStore{projects: map[uuid.UUID]*models.Project{}}
}

func copyProject(p *models.Project) *models.Project {
	cp := *p
	cp.Technologies = append(datatypes.JSONSlice[string]{}, p.Technologies...)
	return &cp
}

func (s *fakeProjectStore) FindPage(_ context.Context, filter models.ProjectFilter, page models.Page) ([]*models.Project, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	matched := []*models.Project{}
	for _, p := range s.projects {
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if filter.Featured != nil && p.Featured != *filter.Featured {
			continue
		}
		matched = append(matched, copyProject(p))
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
	return paginate(matched, page), int64(len(matched)), nil
}

func (s *fakeProjectStore) FindByID(_ context.Context, id uuid.UUID) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[id]
	if !ok {
		return nil, nil
	}
	return copyProject(p), nil
}

func (s *fakeProjectStore) Add(_ context.Context, project *models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	project.ID = uuid.New()
	s.projects[project.ID] = copyProject(project)
	return nil
}

func (s *fakeProjectStore) Update(_ context.Context, project *models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects[project.ID] = copyProject(project)
	return nil
}

func (s *fakeProjectStore) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.projects[id]
	delete(s.projects, id)
	return ok, nil
}

// fakeSkillCategoryStore enforces case-insensitive name uniqueness the way
// the lower(category) index does.
type fakeSkillCategoryStore struct {
	mu         sync.Mutex
	categories map[uuid.UUID]*models.SkillCategory
	// hideExisting makes ExistsByName always report false, as if a
	// concurrent insert landed between the check and the write.
	hideExisting bool
}

func newFakeSkillCategoryStore() *fakeSkillCategoryStore {
	return &fakeSkillCategoryStore{categories: map[uuid.UUID]*models.SkillCategory{}}
}

func copyCategory(c *models.SkillCategory) *models.SkillCategory {
	cp := *c
	cp.Items = append(datatypes.JSONSlice[models.SkillItem]{}, c.Items...)
	return &cp
}

func (s *fakeSkillCategoryStore) nameTaken(name string, except uuid.UUID) bool {
	for id, c := range s.categories {
		if id != except && strings.EqualFold(c.Category, name) {
			return true
		}
	}
	return false
}

func (s *fakeSkillCategoryStore) sorted() []*models.SkillCategory {
	all := make([]*models.SkillCategory, 0, len(s.categories))
	for _, c := range s.categories {
		all = append(all, copyCategory(c))
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Order != all[j].Order {
			return all[i].Order < all[j].Order
		}
		return all[i].CreatedAt.Before(all[j].CreatedAt)
	})
	return all
}

func (s *fakeSkillCategoryStore) ListSummaries(_ context.Context) ([]models.SkillCategorySummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	summaries := []models.SkillCategorySummary{}
	for _, c := range s.sorted() {
		summaries = append(summaries, models.SkillCategorySummary{ID: c.ID, Category: c.Category, Order: c.Order})
	}
	return summaries, nil
}

func (s *fakeSkillCategoryStore) FindPage(_ context.Context, filter models.SkillCategoryFilter, page models.Page) ([]*models.SkillCategory, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	matched := []*models.SkillCategory{}
	for _, c := range s.sorted() {
		if strings.Contains(strings.ToLower(c.Category), strings.ToLower(filter.Category)) {
			matched = append(matched, c)
		}
	}
	return paginate(matched, page), int64(len(matched)), nil
}

func (s *fakeSkillCategoryStore) FindByID(_ context.Context, id uuid.UUID) (*models.SkillCategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.categories[id]
	if !ok {
		return nil, nil
	}
	return copyCategory(c), nil
}

func (s *fakeSkillCategoryStore) ExistsByName(_ context.Context, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hideExisting {
		return false, nil
	}
	return s.nameTaken(name, uuid.Nil), nil
}

func (s *fakeSkillCategoryStore) Add(_ context.Context, category *models.SkillCategory) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.nameTaken(category.Category, uuid.Nil) {
		return gorm.ErrDuplicatedKey
	}
	category.ID = uuid.New()
	s.categories[category.ID] = copyCategory(category)
	return nil
}

func (s *fakeSkillCategoryStore) Mutate(_ context.Context, id uuid.UUID, fn func(*models.SkillCategory) error) (*models.SkillCategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.categories[id]
	if !ok {
		return nil, nil
	}
	working := copyCategory(stored)
	if err := fn(working); err != nil {
		return nil, err
	}
	if s.nameTaken(working.Category, id) {
		return nil, gorm.ErrDuplicatedKey
	}
	s.categories[id] = copyCategory(working)
	return working, nil
}

func (s *fakeSkillCategoryStore) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.categories[id]
	delete(s.categories, id)
	return ok, nil
}

// seed stores a category directly, bypassing the handlers.
func (s *fakeSkillCategoryStore) seed(name string, order int, items ...models.SkillItem) *models.SkillCategory {
	c := &models.SkillCategory{Category: name, Order: order, Items: datatypes.JSONSlice[models.SkillItem](items)}
	c.Normalize()
	c.TouchUpdatedAt()
	if err := s.Add(context.Background(), c); err != nil {
		panic(err)
	}
	return c
}

type fakePinger struct {
	err error
}

func (p fakePinger) Ping(context.Context) error {
	return p.err
}

var errRelayDown = errors.New("dial tcp: connect: connection refused")
