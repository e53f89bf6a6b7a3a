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

// ProductHandler serves the products catalog. URL-shaped fields are checked
// at this boundary; the store persists whatever passed validation.
type ProductHandler struct {
	products store.ProductStore
}

// NewProductHandler constructs the handler.
func NewProductHandler(products store.ProductStore) *ProductHandler {
	return &ProductHandler{products: products}
}

// List returns every product.
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.products.All(c.Request.Context())
	if err != nil {
		middleware.LoggerFromContext(c).Error("list products", slog.Any("error", err))
		Internal(c)
		return
	}
	c.JSON(http.StatusOK, products)
}

// Featured returns the products flagged as popular.
func (h *ProductHandler) Featured(c *gin.Context) {
	products, err := h.products.Popular(c.Request.Context())
	if err != nil {
		middleware.LoggerFromContext(c).Error("list popular products", slog.Any("error", err))
		Internal(c)
		return
	}
	c.JSON(http.StatusOK, products)
}

// ByCategory returns products matching the category exactly.
func (h *ProductHandler) ByCategory(c *gin.Context) {
	products, err := h.products.ByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		middleware.LoggerFromContext(c).Error("list products by category", slog.Any("error", err))
		Internal(c)
		return
	}
	c.JSON(http.StatusOK, products)
}

// Get returns one product by id.
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		NotFound(c, "product not found")
		return
	}

	product, err := h.products.ByID(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		NotFound(c, "product not found")
		return
	}
	if err != nil {
		middleware.LoggerFromContext(c).Error("load product", slog.Any("error", err))
		Internal(c)
		return
	}
	c.JSON(http.StatusOK, product)
}

type productRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Category    string   `json:"category" binding:"required"`
	Price       string   `json:"price" binding:"required"`
	Features    []string `json:"features" binding:"required"`
	ImageURL    string   `json:"imageUrl" binding:"required,url"`
	Screenshots []string `json:"screenshots" binding:"omitempty,dive,url"`
	DemoURL     string   `json:"demoUrl" binding:"omitempty,url"`
	IsPopular   bool     `json:"isPopular"`
}

// Create persists a new product.
func (h *ProductHandler) Create(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ValidationFailed(c, "invalid product data", err)
		return
	}

	product := database.Product{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Features:    datatypes.NewJSONSlice(req.Features),
		ImageURL:    req.ImageURL,
		Screenshots: datatypes.NewJSONSlice(req.Screenshots),
		DemoURL:     req.DemoURL,
		IsPopular:   req.IsPopular,
	}
	if err := h.products.Create(c.Request.Context(), &product); err != nil {
		middleware.LoggerFromContext(c).Error("create product", slog.Any("error", err))
		Internal(c)
		return
	}
	c.JSON(http.StatusCreated, product)
}

type productUpdateRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Price       *string  `json:"price"`
	Features    []string `json:"features"`
	ImageURL    *string  `json:"imageUrl" binding:"omitempty,url"`
	Screenshots []string `json:"screenshots" binding:"omitempty,dive,url"`
	DemoURL     *string  `json:"demoUrl" binding:"omitempty,url"`
	IsPopular   *bool    `json:"isPopular"`
}

func (r productUpdateRequest) changes() map[string]any {
	changes := map[string]any{}
	if r.Name != nil {
		changes["name"] = *r.Name
	}
	if r.Description != nil {
		changes["description"] = *r.Description
	}
	if r.Category != nil {
		changes["category"] = *r.Category
	}
	if r.Price != nil {
		changes["price"] = *r.Price
	}
	if r.Features != nil {
		changes["features"] = datatypes.NewJSONSlice(r.Features)
	}
	if r.ImageURL != nil {
		changes["image_url"] = *r.ImageURL
	}
	if r.Screenshots != nil {
		changes["screenshots"] = datatypes.NewJSONSlice(r.Screenshots)
	}
	if r.DemoURL != nil {
		changes["demo_url"] = *r.DemoURL
	}
	if r.IsPopular != nil {
		changes["is_popular"] = *r.IsPopular
	}
	return changes
}

// Update merges the provided fields onto an existing product.
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		NotFound(c, "product not found")
		return
	}

	var req productUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ValidationFailed(c, "invalid product data", err)
		return
	}

	product, err := h.products.Update(c.Request.Context(), id, req.changes())
	if errors.Is(err, store.ErrNotFound) {
		NotFound(c, "product not found")
		return
	}
	if err != nil {
		middleware.LoggerFromContext(c).Error("update product", slog.Any("error", err))
		Internal(c)
		return
	}
	c.JSON(http.StatusOK, product)
}

// Delete hard-removes a product.
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		NotFound(c, "product not found")
		return
	}

	deleted, err := h.products.Delete(c.Request.Context(), id)
	if err != nil {
		middleware.LoggerFromContext(c).Error("delete product", slog.Any("error", err))
		Internal(c)
		return
	}
	if !deleted {
		NotFound(c, "product not found")
		return
	}
	c.Status(http.StatusNoContent)
}
