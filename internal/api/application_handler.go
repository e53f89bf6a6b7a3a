package api

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/dutchcoders/go-clamd"
	"github.com/gin-gonic/gin"

	"pixelperfect/internal/api/middleware"
	"pixelperfect/internal/database"
	"pixelperfect/internal/store"
)

// resumeContentTypes is the attachment allow-list: PDF, Word, plain text.
var resumeContentTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"text/plain": true,
}

// ApplicationHandler accepts public job applications with an optional résumé
// attachment and exposes the admin review surface. The attachment is checked
// before anything is persisted; a rejected file rejects the whole
// submission. Accepted files are stored inline on the record as a data URI,
// a deliberate simplification at this volume over a blob store.
type ApplicationHandler struct {
	applications store.JobApplicationStore
	maxBytes     int64
	clamdAddr    string
}

// NewApplicationHandler constructs the handler. An empty clamdAddr skips
// virus scanning.
func NewApplicationHandler(applications store.JobApplicationStore, maxBytes int64, clamdAddr string) *ApplicationHandler {
	return &ApplicationHandler{
		applications: applications,
		maxBytes:     maxBytes,
		clamdAddr:    clamdAddr,
	}
}

type applicationForm struct {
	JobID       *uint  `form:"jobId"`
	FirstName   string `form:"firstName" binding:"required"`
	LastName    string `form:"lastName" binding:"required"`
	Email       string `form:"email" binding:"required,email"`
	Position    string `form:"position" binding:"required"`
	CoverLetter string `form:"coverLetter"`
}

// Submit handles the public multipart submission.
func (h *ApplicationHandler) Submit(c *gin.Context) {
	var form applicationForm
	if err := c.ShouldBind(&form); err != nil {
		ValidationFailed(c, "invalid application data", err)
		return
	}

	logger := middleware.LoggerFromContext(c)

	var resumeURL *string
	file, err := c.FormFile("resume")
	switch {
	case errors.Is(err, http.ErrMissingFile):
		// résumé is optional
	case err != nil:
		BadRequest(c, "invalid application data")
		return
	default:
		dataURI, fieldErr := h.encodeResume(file)
		if fieldErr != "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":  "invalid application data",
				"fields": gin.H{"resume": fieldErr},
			})
			return
		}
		resumeURL = &dataURI
	}

	application := database.JobApplication{
		JobID:     form.JobID,
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     form.Email,
		Position:  form.Position,
		ResumeURL: resumeURL,
	}
	if form.CoverLetter != "" {
		application.CoverLetter = &form.CoverLetter
	}

	if err := h.applications.Create(c.Request.Context(), &application); err != nil {
		logger.Error("create application", slog.Any("error", err))
		Internal(c)
		return
	}

	logger.Info("application received",
		slog.Uint64("application_id", uint64(application.ID)),
		slog.String("email", application.Email),
	)
	c.JSON(http.StatusCreated, gin.H{"message": "Application submitted successfully"})
}

// encodeResume validates the attachment and returns it as a data URI. The
// returned string is empty iff the field error is set.
func (h *ApplicationHandler) encodeResume(file *multipart.FileHeader) (string, string) {
	if file.Size > h.maxBytes {
		return "", fmt.Sprintf("must not exceed %d bytes", h.maxBytes)
	}

	contentType := file.Header.Get("Content-Type")
	if !resumeContentTypes[contentType] {
		return "", "must be a PDF, Word document, or plain text file"
	}

	reader, err := file.Open()
	if err != nil {
		return "", "could not be read"
	}
	defer reader.Close()

	data, err := io.ReadAll(io.LimitReader(reader, h.maxBytes+1))
	if err != nil {
		return "", "could not be read"
	}
	if int64(len(data)) > h.maxBytes {
		return "", fmt.Sprintf("must not exceed %d bytes", h.maxBytes)
	}

	if h.clamdAddr != "" {
		if err := h.scanResume(data); err != nil {
			return "", "failed the malware scan"
		}
	}

	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data), ""
}

func (h *ApplicationHandler) scanResume(data []byte) error {
	client := clamd.NewClamd(h.clamdAddr)
	abort := make(chan bool)
	defer close(abort)

	results, err := client.ScanStream(bytes.NewReader(data), abort)
	if err != nil {
		return fmt.Errorf("scan resume: %w", err)
	}
	for result := range results {
		if result.Status != clamd.RES_OK {
			return fmt.Errorf("resume flagged: %s", result.Description)
		}
	}
	return nil
}

// List returns every application. Admin only.
func (h *ApplicationHandler) List(c *gin.Context) {
	applications, err := h.applications.All(c.Request.Context())
	if err != nil {
		middleware.LoggerFromContext(c).Error("list applications", slog.Any("error", err))
		Internal(c)
		return
	}
	c.JSON(http.StatusOK, applications)
}

// Get returns one application by id. Admin only.
func (h *ApplicationHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		NotFound(c, "application not found")
		return
	}

	application, err := h.applications.ByID(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		NotFound(c, "application not found")
		return
	}
	if err != nil {
		middleware.LoggerFromContext(c).Error("load application", slog.Any("error", err))
		Internal(c)
		return
	}
	c.JSON(http.StatusOK, application)
}

// ByJob returns the applications referencing one opening. Admin only. The
// reference is soft, so this also works for openings deleted since.
func (h *ApplicationHandler) ByJob(c *gin.Context) {
	jobID, ok := idParam(c, "jobId")
	if !ok {
		NotFound(c, "job not found")
		return
	}

	applications, err := h.applications.ByJobID(c.Request.Context(), jobID)
	if err != nil {
		middleware.LoggerFromContext(c).Error("list applications by job", slog.Any("error", err))
		Internal(c)
		return
	}
	c.JSON(http.StatusOK, applications)
}

// Delete hard-removes an application. Admin only.
func (h *ApplicationHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		NotFound(c, "application not found")
		return
	}

	deleted, err := h.applications.Delete(c.Request.Context(), id)
	if err != nil {
		middleware.LoggerFromContext(c).Error("delete application", slog.Any("error", err))
		Internal(c)
		return
	}
	if !deleted {
		NotFound(c, "application not found")
		return
	}
	c.Status(http.StatusNoContent)
}
