package api

import (
	"net/http"
	"strings"

	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

const defaultProjectLimit = 20

type projectHandler struct {
	responder   Responder
	logger      zerolog.Logger
	projectRepo projectStore
}

func newProjectHandler(projectRepo projectStore) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		projectRepo: projectRepo,
	}
}

type createProjectRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Link         string   `json:"link"`
	Technologies []string `json:"technologies"`
	Image        string   `json:"image"`
	Status       string   `json:"status"`
	Featured     bool     `json:"featured"`
}

// updateProjectRequest only overwrites the fields that are present
type updateProjectRequest struct {
	Title        *string   `json:"title"`
	Description  *string   `json:"description"`
	Link         *string   `json:"link"`
	Technologies *[]string `json:"technologies"`
	Image        *string   `json:"image"`
	Status       *string   `json:"status"`
	Featured     *bool     `json:"featured"`
}

type projectResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Project *models.Project `json:"project"`
}

type projectListResponse struct {
	Success    bool              `json:"success"`
	Projects   []*models.Project `json:"projects"`
	Pagination models.Pagination `json:"pagination"`
}

type deletedResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// getProjects lists projects, newest first
// @Summary List projects
// @Tags Projects
// @Produce json
// @Param status query string false "Project status"
// @Param featured query bool false "Only featured (true) or only non-featured projects"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} projectListResponse
// @Router /api/projects [get]
func (h projectHandler) getProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		page := queryPage(r, defaultProjectLimit)

		filter := models.ProjectFilter{Status: query.Get("status")}
		if query.Has("featured") {
			featured := query.Get("featured") == "true"
			filter.Featured = &featured
		}

		projects, total, err := h.projectRepo.FindPage(r.Context(), filter, page)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "projects", err))
			return
		}

		h.responder.WriteJSON(w, projectListResponse{
			Success:    true,
			Projects:   projects,
			Pagination: page.Paginate(total),
		})
	}
}

// getProject retrieves a specific project by ID
// @Summary Get project
// @Tags Projects
// @Produce json
// @Param id path string true "Project ID" format(uuid)
// @Success 200 {object} projectResponse
// @Failure 400 {object} errorResponse "Invalid id"
// @Failure 404 {object} errorResponse "Project not found"
// @Router /api/projects/{id} [get]
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := pathID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.projectRepo.FindByID(r.Context(), projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("Project not found"))
			return
		}

		h.responder.WriteJSON(w, projectResponse{Success: true, Project: project})
	}
}

// createProject creates a new project
// @Summary Create project
// @Tags Projects
// @Accept json
// @Produce json
// @Param project body createProjectRequest true "Project data"
// @Success 201 {object} projectResponse
// @Failure 400 {object} errorResponse "Missing or invalid fields"
// @Router /api/projects [post]
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createProjectRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project := &models.Project{
			Title:        req.Title,
			Description:  req.Description,
			Link:         req.Link,
			Technologies: datatypes.JSONSlice[string](req.Technologies),
			Image:        strings.TrimSpace(req.Image),
			Status:       strings.TrimSpace(req.Status),
			Featured:     req.Featured,
		}
		project.Normalize()

		if project.Title == "" || project.Description == "" || project.Link == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("Title, description, and link are required"))
			return
		}

		project.TouchUpdatedAt()
		if err := models.Validate(project); err != nil {
			h.responder.WriteError(w, validationError("Validation failed", err))
			return
		}

		if err := h.projectRepo.Add(r.Context(), project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "project", err))
			return
		}

		h.logger.Info().Str("projectId", project.ID.String()).Msg("project created")
		h.responder.WriteJSONStatus(w, http.StatusCreated, projectResponse{
			Success: true,
			Message: "Project created successfully",
			Project: project,
		})
	}
}

// updateProject overwrites the fields present in the body
// @Summary Update project
// @Tags Projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID" format(uuid)
// @Param project body updateProjectRequest true "Fields to change"
// @Success 200 {object} projectResponse
// @Failure 400 {object} errorResponse "Invalid id or fields"
// @Failure 404 {object} errorResponse "Project not found"
// @Router /api/projects/{id} [put]
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := pathID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req updateProjectRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.projectRepo.FindByID(r.Context(), projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("Project not found"))
			return
		}

		req.applyTo(project)
		project.Normalize()
		project.TouchUpdatedAt()

		if err := models.Validate(project); err != nil {
			h.responder.WriteError(w, validationError("Validation failed", err))
			return
		}

		if err := h.projectRepo.Update(r.Context(), project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "project", err))
			return
		}

		h.responder.WriteJSON(w, projectResponse{
			Success: true,
			Message: "Project updated successfully",
			Project: project,
		})
	}
}

func (req updateProjectRequest) applyTo(project *models.Project) {
	if req.Title != nil {
		project.Title = *req.Title
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.Link != nil {
		project.Link = *req.Link
	}
	if req.Technologies != nil {
		project.Technologies = datatypes.JSONSlice[string](*req.Technologies)
	}
	if req.Image != nil {
		project.Image = strings.TrimSpace(*req.Image)
	}
	if req.Status != nil {
		project.Status = strings.TrimSpace(*req.Status)
	}
	if req.Featured != nil {
		project.Featured = *req.Featured
	}
}

// deleteProject deletes a project by ID
// @Summary Delete project
// @Tags Projects
// @Produce json
// @Param id path string true "Project ID" format(uuid)
// @Success 200 {object} deletedResponse
// @Failure 404 {object} errorResponse "Project not found"
// @Router /api/projects/{id} [delete]
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := pathID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		deleted, err := h.projectRepo.Delete(r.Context(), projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "project", err))
			return
		}
		if !deleted {
			h.responder.WriteError(w, errs.NewNotFoundError("Project not found"))
			return
		}

		h.responder.WriteJSON(w, deletedResponse{
			Success: true,
			Message: "Project deleted successfully",
		})
	}
}
