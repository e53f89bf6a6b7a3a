package api

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pixelperfect/internal/database"
)

var applicantFields = map[string]string{
	"firstName": "Jane",
	"lastName":  "Doe",
	"email":     "jane.doe@example.com",
	"position":  "Senior Web Designer",
}

func TestApplicationSubmitWithResume(t *testing.T) {
	env := newTestEnv(t)

	resume := []byte("%PDF-1.4 fake resume content")
	body, contentType := newApplicationForm(t, applicantFields, "resume.pdf", "application/pdf", resume)

	rec := env.do(t, http.MethodPost, "/api/applications", body, contentType, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "Application submitted successfully", decodeJSON(t, rec)["message"])

	var stored database.JobApplication
	require.NoError(t, env.db.First(&stored).Error)
	assert.Equal(t, "Jane", stored.FirstName)
	assert.Equal(t, "jane.doe@example.com", stored.Email)
	require.NotNil(t, stored.ResumeURL)
	assert.True(t, strings.HasPrefix(*stored.ResumeURL, "data:application/pdf;base64,"))
}

func TestApplicationSubmitWithoutResume(t *testing.T) {
	env := newTestEnv(t)

	body, contentType := newApplicationForm(t, applicantFields, "", "", nil)
	rec := env.do(t, http.MethodPost, "/api/applications", body, contentType, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var stored database.JobApplication
	require.NoError(t, env.db.First(&stored).Error)
	assert.Nil(t, stored.ResumeURL)
}

func TestApplicationRejectsOversizeResume(t *testing.T) {
	env := newTestEnv(t)

	oversize := make([]byte, 5*1024*1024+1)
	body, contentType := newApplicationForm(t, applicantFields, "resume.pdf", "application/pdf", oversize)

	rec := env.do(t, http.MethodPost, "/api/applications", body, contentType, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	payload := decodeJSON(t, rec)
	fields, ok := payload["fields"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, fields, "resume")

	var count int64
	require.NoError(t, env.db.Model(&database.JobApplication{}).Count(&count).Error)
	assert.Zero(t, count, "a rejected attachment must reject the whole submission")
}

func TestApplicationRejectsDisallowedType(t *testing.T) {
	env := newTestEnv(t)

	body, contentType := newApplicationForm(t, applicantFields, "resume.png", "image/png", []byte("not a resume"))
	rec := env.do(t, http.MethodPost, "/api/applications", body, contentType, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	payload := decodeJSON(t, rec)
	fields, ok := payload["fields"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, fields["resume"], "PDF")

	var count int64
	require.NoError(t, env.db.Model(&database.JobApplication{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestApplicationValidatesFields(t *testing.T) {
	env := newTestEnv(t)

	body, contentType := newApplicationForm(t, map[string]string{
		"firstName": "Jane",
		"email":     "not-an-email",
	}, "", "", nil)

	rec := env.do(t, http.MethodPost, "/api/applications", body, contentType, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	payload := decodeJSON(t, rec)
	fields, ok := payload["fields"].(map[string]any)
	require.True(t, ok, rec.Body.String())
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "lastName")
	assert.Contains(t, fields, "position")
}

func TestApplicationAdminSurface(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "admin", "admin-password", true)
	cookie := env.login(t, "admin", "admin-password")

	fields := map[string]string{}
	for k, v := range applicantFields {
		fields[k] = v
	}
	fields["jobId"] = "7"
	body, contentType := newApplicationForm(t, fields, "", "", nil)
	rec := env.do(t, http.MethodPost, "/api/applications", body, contentType, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	// the listing is admin only
	rec = env.do(t, http.MethodGet, "/api/applications", nil, "", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/applications", nil, "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"email":"jane.doe@example.com"`)

	rec = env.do(t, http.MethodGet, "/api/applications/job/7", nil, "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"firstName":"Jane"`)

	rec = env.do(t, http.MethodGet, "/api/applications/job/8", nil, "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))

	rec = env.do(t, http.MethodGet, "/api/applications/1", nil, "", cookie)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodDelete, "/api/applications/1", nil, "", cookie)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/applications/1", nil, "", cookie)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
