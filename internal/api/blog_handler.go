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

// BlogHandler serves the blog. Drafts are invisible to the public path: an
// unpublished article answers 404, not 403, so a caller cannot learn that a
// draft exists.
type BlogHandler struct {
	articles store.BlogArticleStore
}

// NewBlogHandler constructs the handler.
func NewBlogHandler(articles store.BlogArticleStore) *BlogHandler {
	return &BlogHandler{articles: articles}
}

// List returns the published articles.
func (h *BlogHandler) List(c *gin.Context) {
	articles, err := h.articles.Published(c.Request.Context())
	if err != nil {
		middleware.LoggerFromContext(c).Error("list published articles", slog.Any("error", err))
		Internal(c)
		return
	}
	c.JSON(http.StatusOK, articles)
}

// ListAll returns every article, drafts included. Admin only.
func (h *BlogHandler) ListAll(c *gin.Context) {
	articles, err := h.articles.All(c.Request.Context())
	if err != nil {
		middleware.LoggerFromContext(c).Error("list all articles", slog.Any("error", err))
		Internal(c)
		return
	}
	c.JSON(http.StatusOK, articles)
}

// Get returns one article by id. Drafts resolve only for admins.
func (h *BlogHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		NotFound(c, "article not found")
		return
	}

	article, err := h.articles.ByID(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		NotFound(c, "article not found")
		return
	}
	if err != nil {
		middleware.LoggerFromContext(c).Error("load article", slog.Any("error", err))
		Internal(c)
		return
	}

	if !article.Published {
		principal, ok := middleware.PrincipalFromContext(c)
		if !ok || !principal.IsAdmin {
			NotFound(c, "article not found")
			return
		}
	}
	c.JSON(http.StatusOK, article)
}

type blogArticleRequest struct {
	Title          string `json:"title" binding:"required"`
	Content        string `json:"content" binding:"required"`
	Excerpt        string `json:"excerpt" binding:"required"`
	Category       string `json:"category" binding:"required"`
	ImageURL       string `json:"imageUrl" binding:"required"`
	AuthorName     string `json:"authorName" binding:"required"`
	AuthorImageURL string `json:"authorImageUrl" binding:"required"`
	Published      bool   `json:"published"`
}

// Create persists a new article. Published defaults to false, so new
// content starts as a draft.
func (h *BlogHandler) Create(c *gin.Context) {
	var req blogArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ValidationFailed(c, "invalid article data", err)
		return
	}

	article := database.BlogArticle{
		Title:          req.Title,
		Content:        req.Content,
		Excerpt:        req.Excerpt,
		Category:       req.Category,
		ImageURL:       req.ImageURL,
		AuthorName:     req.AuthorName,
		AuthorImageURL: req.AuthorImageURL,
		Published:      req.Published,
	}
	if err := h.articles.Create(c.Request.Context(), &article); err != nil {
		middleware.LoggerFromContext(c).Error("create article", slog.Any("error", err))
		Internal(c)
		return
	}
	c.JSON(http.StatusCreated, article)
}

type blogArticleUpdateRequest struct {
	Title          *string `json:"title"`
	Content        *string `json:"content"`
	Excerpt        *string `json:"excerpt"`
	Category       *string `json:"category"`
	ImageURL       *string `json:"imageUrl"`
	AuthorName     *string `json:"authorName"`
	AuthorImageURL *string `json:"authorImageUrl"`
	Published      *bool   `json:"published"`
}

func (r blogArticleUpdateRequest) changes() map[string]any {
	changes := map[string]any{}
	if r.Title != nil {
		changes["title"] = *r.Title
	}
	if r.Content != nil {
		changes["content"] = *r.Content
	}
	if r.Excerpt != nil {
		changes["excerpt"] = *r.Excerpt
	}
	if r.Category != nil {
		changes["category"] = *r.Category
	}
	if r.ImageURL != nil {
		changes["image_url"] = *r.ImageURL
	}
	if r.AuthorName != nil {
		changes["author_name"] = *r.AuthorName
	}
	if r.AuthorImageURL != nil {
		changes["author_image_url"] = *r.AuthorImageURL
	}
	if r.Published != nil {
		changes["published"] = *r.Published
	}
	return changes
}

// Update merges the provided fields onto an existing article.
func (h *BlogHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		NotFound(c, "article not found")
		return
	}

	var req blogArticleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ValidationFailed(c, "invalid article data", err)
		return
	}

	article, err := h.articles.Update(c.Request.Context(), id, req.changes())
	if errors.Is(err, store.ErrNotFound) {
		NotFound(c, "article not found")
		return
	}
	if err != nil {
		middleware.LoggerFromContext(c).Error("update article", slog.Any("error", err))
		Internal(c)
		return
	}
	c.JSON(http.StatusOK, article)
}

// Delete hard-removes an article.
func (h *BlogHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		NotFound(c, "article not found")
		return
	}

	deleted, err := h.articles.Delete(c.Request.Context(), id)
	if err != nil {
		middleware.LoggerFromContext(c).Error("delete article", slog.Any("error", err))
		Internal(c)
		return
	}
	if !deleted {
		NotFound(c, "article not found")
		return
	}
	c.Status(http.StatusNoContent)
}
