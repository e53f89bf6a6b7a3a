package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

func Error(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

func BadRequest(c *gin.Context, msg string) { Error(c, http.StatusBadRequest, msg) }
func Unauthorized(c *gin.Context)           { Error(c, http.StatusUnauthorized, "invalid credentials") }
func Forbidden(c *gin.Context)              { Error(c, http.StatusForbidden, "forbidden") }
func NotFound(c *gin.Context, msg string)   { Error(c, http.StatusNotFound, msg) }
func Conflict(c *gin.Context, msg string)   { Error(c, http.StatusConflict, msg) }
func Internal(c *gin.Context)               { Error(c, http.StatusInternalServerError, "internal error") }

// ValidationFailed renders a 400 with a per-field error map so a client can
// surface every offending field at once, not just the first.
func ValidationFailed(c *gin.Context, msg string, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		BadRequest(c, msg)
		return
	}

	fields := make(gin.H, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = validationMessage(fe)
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": msg, "fields": fields})
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid absolute URL"
	case "min":
		return "is too short"
	case "max":
		return "is too long"
	default:
		return "is invalid"
	}
}
