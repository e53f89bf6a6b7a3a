package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"pixelperfect/internal/api/middleware"
	"pixelperfect/internal/database"
	"pixelperfect/internal/store"
)

// ProjectHandler serves the portfolio showcase. Reads are public; every
// mutation sits behind the admin gate.
type ProjectHandler struct {
	projects store.ProjectStore
}

// NewProjectHandler constructs the handler.
func NewProjectHandler(projects store.ProjectStore) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

// List returns every project.
func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.projects.All(c.Request.Context())
	if err != nil {
		middleware.LoggerFromContext(c).Error("list projects", slog.Any("error", err))
		Internal(c)
		return
	}
	c.JSON(http.StatusOK, projects)
}

// Featured returns the projects flagged for the home page.
func (h *ProjectHandler) Featured(c *gin.Context) {
	projects, err := h.projects.Featured(c.Request.Context())
	if err != nil {
		middleware.LoggerFromContext(c).Error("list featured projects", slog.Any("error", err))
		Internal(c)
		return
	}
	c.JSON(http.StatusOK, projects)
}

// ByCategory returns projects matching the category exactly.
func (h *ProjectHandler) ByCategory(c *gin.Context) {
	projects, err := h.projects.ByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		middleware.LoggerFromContext(c).Error("list projects by category", slog.Any("error", err))
		Internal(c)
		return
	}
	c.JSON(http.StatusOK, projects)
}

// Get returns one project by id.
func (h *ProjectHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		NotFound(c, "project not found")
		return
	}

	project, err := h.projects.ByID(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		NotFound(c, "project not found")
		return
	}
	if err != nil {
		middleware.LoggerFromContext(c).Error("load project", slog.Any("error", err))
		Internal(c)
		return
	}
	c.JSON(http.StatusOK, project)
}

type projectRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Category    string `json:"category" binding:"required"`
	Client      string `json:"client" binding:"required"`
	ImageURL    string `json:"imageUrl" binding:"required"`
	Featured    bool   `json:"featured"`
}

// Create persists a new project.
func (h *ProjectHandler) Create(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ValidationFailed(c, "invalid project data", err)
		return
	}

	project := database.Project{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Client:      req.Client,
		ImageURL:    req.ImageURL,
		Featured:    req.Featured,
	}
	if err := h.projects.Create(c.Request.Context(), &project); err != nil {
		middleware.LoggerFromContext(c).Error("create project", slog.Any("error", err))
		Internal(c)
		return
	}
	c.JSON(http.StatusCreated, project)
}

// projectUpdateRequest uses pointers so absent fields are left untouched.
type projectUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Client      *string `json:"client"`
	ImageURL    *string `json:"imageUrl"`
	Featured    *bool   `json:"featured"`
}

func (r projectUpdateRequest) changes() map[string]any {
	changes := map[string]any{}
	if r.Title != nil {
		changes["title"] = *r.Title
	}
	if r.Description != nil {
		changes["description"] = *r.Description
	}
	if r.Category != nil {
		changes["category"] = *r.Category
	}
	if r.Client != nil {
		changes["client"] = *r.Client
	}
	if r.ImageURL != nil {
		changes["image_url"] = *r.ImageURL
	}
	if r.Featured != nil {
		changes["featured"] = *r.Featured
	}
	return changes
}

// Update merges the provided fields onto an existing project.
func (h *ProjectHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		NotFound(c, "project not found")
		return
	}

	var req projectUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ValidationFailed(c, "invalid project data", err)
		return
	}

	project, err := h.projects.Update(c.Request.Context(), id, req.changes())
	if errors.Is(err, store.ErrNotFound) {
		NotFound(c, "project not found")
		return
	}
	if err != nil {
		middleware.LoggerFromContext(c).Error("update project", slog.Any("error", err))
		Internal(c)
		return
	}
	c.JSON(http.StatusOK, project)
}

// Delete hard-removes a project.
func (h *ProjectHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		NotFound(c, "project not found")
		return
	}

	deleted, err := h.projects.Delete(c.Request.Context(), id)
	if err != nil {
		middleware.LoggerFromContext(c).Error("delete project", slog.Any("error", err))
		Internal(c)
		return
	}
	if !deleted {
		NotFound(c, "project not found")
		return
	}
	c.Status(http.StatusNoContent)
}
