package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"pixelperfect/internal/api/middleware"
	"pixelperfect/internal/database"
	"pixelperfect/internal/store"
)

// ServiceHandler serves the services page content.
type ServiceHandler struct {
	services store.ServiceStore
}

// NewServiceHandler constructs the handler.
func NewServiceHandler(services store.ServiceStore) *ServiceHandler {
	return &ServiceHandler{services: services}
}

// List returns every service.
func (h *ServiceHandler) List(c *gin.Context) {
	services, err := h.services.All(c.Request.Context())
	if err != nil {
		middleware.LoggerFromContext(c).Error("list services", slog.Any("error", err))
		Internal(c)
		return
	}
	c.JSON(http.StatusOK, services)
}

// Get returns one service by id.
func (h *ServiceHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		NotFound(c, "service not found")
		return
	}

	service, err := h.services.ByID(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		NotFound(c, "service not found")
		return
	}
	if err != nil {
		middleware.LoggerFromContext(c).Error("load service", slog.Any("error", err))
		Internal(c)
		return
	}
	c.JSON(http.StatusOK, service)
}

type serviceRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Icon        string   `json:"icon" binding:"required"`
	Features    []string `json:"features" binding:"required"`
}

// Create persists a new service.
func (h *ServiceHandler) Create(c *gin.Context) {
	var req serviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ValidationFailed(c, "invalid service data", err)
		return
	}

	service := database.Service{
		Title:       req.Title,
		Description: req.Description,
		Icon:        req.Icon,
		Features:    datatypes.NewJSONSlice(req.Features),
	}
	if err := h.services.Create(c.Request.Context(), &service); err != nil {
		middleware.LoggerFromContext(c).Error("create service", slog.Any("error", err))
		Internal(c)
		return
	}
	c.JSON(http.StatusCreated, service)
}

type serviceUpdateRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Icon        *string  `json:"icon"`
	Features    []string `json:"features"`
}

func (r serviceUpdateRequest) changes() map[string]any {
	changes := map[string]any{}
	if r.Title != nil {
		changes["title"] = *r.Title
	}
	if r.Description != nil {
		changes["description"] = *r.Description
	}
	if r.Icon != nil {
		changes["icon"] = *r.Icon
	}
	if r.Features != nil {
		changes["features"] = datatypes.NewJSONSlice(r.Features)
	}
	return changes
}

// Update merges the provided fields onto an existing service.
func (h *ServiceHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		NotFound(c, "service not found")
		return
	}

	var req serviceUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ValidationFailed(c, "invalid service data", err)
		return
	}

	service, err := h.services.Update(c.Request.Context(), id, req.changes())
	if errors.Is(err, store.ErrNotFound) {
		NotFound(c, "service not found")
		return
	}
	if err != nil {
		middleware.LoggerFromContext(c).Error("update service", slog.Any("error", err))
		Internal(c)
		return
	}
	c.JSON(http.StatusOK, service)
}

// Delete hard-removes a service.
func (h *ServiceHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		NotFound(c, "service not found")
		return
	}

	deleted, err := h.services.Delete(c.Request.Context(), id)
	if err != nil {
		middleware.LoggerFromContext(c).Error("delete service", slog.Any("error", err))
		Internal(c)
		return
	}
	if !deleted {
		NotFound(c, "service not found")
		return
	}
	c.Status(http.StatusNoContent)
}
