package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

const (
	defaultSkillCategoryLimit = 50

	actionAddSkill    = "add-skill"
	actionRemoveSkill = "remove-skill"
)

type skillCategoryHandler struct {
	responder         Responder
	logger            zerolog.Logger
	skillCategoryRepo skillCategoryStore
}

func newSkillCategoryHandler(skillCategoryRepo skillCategoryStore) skillCategoryHandler {
	logger := log.With().Str("handlerName", "skillCategoryHandler").Logger()

	return skillCategoryHandler{
		responder:         NewResponder(logger),
		logger:            logger,
		skillCategoryRepo: skillCategoryRepo,
	}
}

type createSkillCategoryRequest struct {
	Category string             `json:"category"`
	Items    []models.SkillItem `json:"items"`
	Order    int                `json:"order"`
}

type updateCategoryRequest struct {
	Action   string              `json:"action"`
	Skill    *models.SkillItem   `json:"skill"`
	Category *string             `json:"category"`
	Items    *[]models.SkillItem `json:"items"`
	Order    *int                `json:"order"`
}

type skillCategoryListResponse struct {
	Success         bool                    `json:"success"`
	SkillCategories []*models.SkillCategory `json:"skillCategories"`
	Pagination      models.Pagination       `json:"pagination"`
}

type skillCategoryCreatedResponse struct {
	Success       bool                  `json:"success"`
	SkillCategory *models.SkillCategory `json:"skillCategory"`
}

type categoryResponse struct {
	Success  bool                  `json:"success"`
	Category *models.SkillCategory `json:"category"`
}

type categorySummariesResponse struct {
	Success    bool                          `json:"success"`
	Categories []models.SkillCategorySummary `json:"categories"`
}

// getSkillCategories lists full categories with their skills, in display order
func (h skillCategoryHandler) getSkillCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := queryPage(r, defaultSkillCategoryLimit)
		filter := models.SkillCategoryFilter{Category: r.URL.Query().Get("category")}

		categories, total, err := h.skillCategoryRepo.FindPage(r.Context(), filter, page)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "skill categories", err))
			return
		}

		h.responder.WriteJSON(w, skillCategoryListResponse{
			Success:         true,
			SkillCategories: categories,
			Pagination:      page.Paginate(total),
		})
	}
}

// getCategorySummaries lists id, name and order of every category
func (h skillCategoryHandler) getCategorySummaries() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summaries, err := h.skillCategoryRepo.ListSummaries(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "skill categories", err))
			return
		}

		h.responder.WriteJSON(w, categorySummariesResponse{Success: true, Categories: summaries})
	}
}

func (h skillCategoryHandler) getCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		category, err := h.skillCategoryRepo.FindByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "skill category", err))
			return
		}
		if category == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("Category not found"))
			return
		}

		h.responder.WriteJSON(w, categoryResponse{Success: true, Category: category})
	}
}

// createSkillCategory creates a category together with its initial skills
func (h skillCategoryHandler) createSkillCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createSkillCategoryRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		category, err := h.create(r.Context(), req.Category, req.Items, req.Order)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, skillCategoryCreatedResponse{Success: true, SkillCategory: category})
	}
}

// createCategory creates an empty category; any items in the body are ignored
func (h skillCategoryHandler) createCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createSkillCategoryRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		category, err := h.create(r.Context(), req.Category, nil, req.Order)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, categoryResponse{Success: true, Category: category})
	}
}

// create checks the name up front for a friendly error; the unique index on
// lower(category) still catches a concurrent insert of the same name.
func (h skillCategoryHandler) create(ctx context.Context, name string, items []models.SkillItem, order int) (*models.SkillCategory, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errs.NewBadRequestError("Category name is required")
	}

	exists, err := h.skillCategoryRepo.ExistsByName(ctx, name)
	if err != nil {
		return nil, wrapDatabaseError("find", "skill category", err)
	}
	if exists {
		return nil, errs.NewConflictError("Category already exists")
	}

	category := &models.SkillCategory{
		Category: name,
		Items:    datatypes.JSONSlice[models.SkillItem](items),
		Order:    order,
	}
	category.Normalize()
	category.TouchUpdatedAt()

	if err := models.Validate(category); err != nil {
		return nil, validationError("", err)
	}

	if err := h.skillCategoryRepo.Add(ctx, category); err != nil {
		if errs.IsDuplicateKey(err) {
			return nil, errs.NewConflictError("Category already exists").WithCause(err)
		}
		return nil, wrapDatabaseError("create", "skill category", err)
	}

	h.logger.Info().Str("categoryId", category.ID.String()).Str("category", category.Category).Msg("skill category created")
	return category, nil
}

// updateCategory adds a skill, removes a skill, or replaces the fields
// present in the body, depending on action. The category is locked for the
// duration of the change.
func (h skillCategoryHandler) updateCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req updateCategoryRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		category, err := h.skillCategoryRepo.Mutate(r.Context(), id, req.applyTo)
		if err != nil {
			if errs.IsDuplicateKey(err) {
				err = errs.NewConflictError("Category already exists").WithCause(err)
			}
			h.responder.WriteError(w, wrapDatabaseError("update", "skill category", err))
			return
		}
		if category == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("Category not found"))
			return
		}

		h.responder.WriteJSON(w, categoryResponse{Success: true, Category: category})
	}
}

func (req updateCategoryRequest) applyTo(category *models.SkillCategory) error {
	switch {
	case req.Action == actionAddSkill && req.Skill != nil:
		if strings.TrimSpace(req.Skill.Name) == "" {
			return errs.NewBadRequestError("Skill name is required")
		}
		if err := category.AddSkill(*req.Skill); errors.Is(err, models.ErrSkillExists) {
			return errs.NewConflictError("Skill already exists in this category")
		}

	case req.Action == actionRemoveSkill && req.Skill != nil:
		category.RemoveSkill(req.Skill.Name)

	default:
		if req.Category != nil && strings.TrimSpace(*req.Category) != "" {
			category.Category = *req.Category
		}
		if req.Items != nil {
			category.Items = datatypes.JSONSlice[models.SkillItem](*req.Items)
		}
		if req.Order != nil {
			category.Order = *req.Order
		}
	}

	category.Normalize()
	category.TouchUpdatedAt()
	if err := models.Validate(category); err != nil {
		return validationError("", err)
	}
	return nil
}

func (h skillCategoryHandler) deleteCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		deleted, err := h.skillCategoryRepo.Delete(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "skill category", err))
			return
		}
		if !deleted {
			h.responder.WriteError(w, errs.NewNotFoundError("Category not found"))
			return
		}

		h.responder.WriteJSON(w, deletedResponse{
			Success: true,
			Message: "Category deleted successfully",
		})
	}
}
