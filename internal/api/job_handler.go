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

// JobHandler serves the careers page. The public read path only ever sees
// active openings; an inactive opening is reported as missing, not
// forbidden, so visibility and existence stay indistinguishable.
type JobHandler struct {
	jobs store.JobOpeningStore
}

// NewJobHandler constructs the handler.
func NewJobHandler(jobs store.JobOpeningStore) *JobHandler {
	return &JobHandler{jobs: jobs}
}

// List returns the active openings.
func (h *JobHandler) List(c *gin.Context) {
	jobs, err := h.jobs.Active(c.Request.Context())
	if err != nil {
		middleware.LoggerFromContext(c).Error("list active jobs", slog.Any("error", err))
		Internal(c)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

// ListAll returns every opening, inactive included. Admin only.
func (h *JobHandler) ListAll(c *gin.Context) {
	jobs, err := h.jobs.All(c.Request.Context())
	if err != nil {
		middleware.LoggerFromContext(c).Error("list all jobs", slog.Any("error", err))
		Internal(c)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

// Get returns one opening by id. Inactive openings resolve only for admins.
func (h *JobHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		NotFound(c, "job not found")
		return
	}

	job, err := h.jobs.ByID(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		NotFound(c, "job not found")
		return
	}
	if err != nil {
		middleware.LoggerFromContext(c).Error("load job", slog.Any("error", err))
		Internal(c)
		return
	}

	if !job.Active {
		principal, ok := middleware.PrincipalFromContext(c)
		if !ok || !principal.IsAdmin {
			NotFound(c, "job not found")
			return
		}
	}
	c.JSON(http.StatusOK, job)
}

type jobRequest struct {
	Title       string `json:"title" binding:"required"`
	Location    string `json:"location" binding:"required"`
	Type        string `json:"type" binding:"required"`
	Salary      string `json:"salary" binding:"required"`
	Description string `json:"description" binding:"required"`
	Active      *bool  `json:"active"`
}

// Create persists a new opening. Active defaults to true when omitted.
func (h *JobHandler) Create(c *gin.Context) {
	var req jobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ValidationFailed(c, "invalid job data", err)
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}
	job := database.JobOpening{
		Title:       req.Title,
		Location:    req.Location,
		Type:        req.Type,
		Salary:      req.Salary,
		Description: req.Description,
		Active:      active,
	}
	if err := h.jobs.Create(c.Request.Context(), &job); err != nil {
		middleware.LoggerFromContext(c).Error("create job", slog.Any("error", err))
		Internal(c)
		return
	}
	c.JSON(http.StatusCreated, job)
}

type jobUpdateRequest struct {
	Title       *string `json:"title"`
	Location    *string `json:"location"`
	Type        *string `json:"type"`
	Salary      *string `json:"salary"`
	Description *string `json:"description"`
	Active      *bool   `json:"active"`
}

func (r jobUpdateRequest) changes() map[string]any {
	changes := map[string]any{}
	if r.Title != nil {
		changes["title"] = *r.Title
	}
	if r.Location != nil {
		changes["location"] = *r.Location
	}
	if r.Type != nil {
		changes["type"] = *r.Type
	}
	if r.Salary != nil {
		changes["salary"] = *r.Salary
	}
	if r.Description != nil {
		changes["description"] = *r.Description
	}
	if r.Active != nil {
		changes["active"] = *r.Active
	}
	return changes
}

// Update merges the provided fields onto an existing opening.
func (h *JobHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		NotFound(c, "job not found")
		return
	}

	var req jobUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ValidationFailed(c, "invalid job data", err)
		return
	}

	job, err := h.jobs.Update(c.Request.Context(), id, req.changes())
	if errors.Is(err, store.ErrNotFound) {
		NotFound(c, "job not found")
		return
	}
	if err != nil {
		middleware.LoggerFromContext(c).Error("update job", slog.Any("error", err))
		Internal(c)
		return
	}
	c.JSON(http.StatusOK, job)
}

// Delete hard-removes an opening. Applications keep their jobId reference;
// nothing cascades.
func (h *JobHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		NotFound(c, "job not found")
		return
	}

	deleted, err := h.jobs.Delete(c.Request.Context(), id)
	if err != nil {
		middleware.LoggerFromContext(c).Error("delete job", slog.Any("error", err))
		Internal(c)
		return
	}
	if !deleted {
		NotFound(c, "job not found")
		return
	}
	c.Status(http.StatusNoContent)
}
