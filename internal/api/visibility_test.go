package api

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedJobs(t *testing.T, env *testEnv, cookie *http.Cookie) {
	t.Helper()
	for _, body := range []gin.H{
		{"title": "Senior Designer", "location": "Remote", "type": "Full-time", "salary": "$90k", "description": "d", "active": true},
		{"title": "Archived Role", "location": "Remote", "type": "Full-time", "salary": "$80k", "description": "d", "active": false},
	} {
		rec := env.doJSON(t, http.MethodPost, "/api/jobs", body, cookie)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}
}

func TestJobListingsHideInactive(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "admin", "admin-password", true)
	cookie := env.login(t, "admin", "admin-password")
	seedJobs(t, env, cookie)

	public := env.do(t, http.MethodGet, "/api/jobs", nil, "", nil)
	require.Equal(t, http.StatusOK, public.Code)
	assert.Contains(t, public.Body.String(), "Senior Designer")
	assert.NotContains(t, public.Body.String(), "Archived Role")

	all := env.do(t, http.MethodGet, "/api/jobs/all", nil, "", cookie)
	require.Equal(t, http.StatusOK, all.Code)
	assert.Contains(t, all.Body.String(), "Archived Role")

	denied := env.do(t, http.MethodGet, "/api/jobs/all", nil, "", nil)
	assert.Equal(t, http.StatusForbidden, denied.Code)
}

func TestInactiveJobResolvesOnlyForAdmins(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "admin", "admin-password", true)
	env.createUser(t, "visitor", "password123", false)
	adminCookie := env.login(t, "admin", "admin-password")
	seedJobs(t, env, adminCookie)

	public := env.do(t, http.MethodGet, "/api/jobs/2", nil, "", nil)
	assert.Equal(t, http.StatusNotFound, public.Code)

	visitorCookie := env.login(t, "visitor", "password123")
	visitor := env.do(t, http.MethodGet, "/api/jobs/2", nil, "", visitorCookie)
	assert.Equal(t, http.StatusNotFound, visitor.Code)

	admin := env.do(t, http.MethodGet, "/api/jobs/2", nil, "", adminCookie)
	require.Equal(t, http.StatusOK, admin.Code)
	assert.Contains(t, admin.Body.String(), "Archived Role")

	// active openings resolve for everyone
	active := env.do(t, http.MethodGet, "/api/jobs/1", nil, "", nil)
	assert.Equal(t, http.StatusOK, active.Code)
}

func TestJobCreateDefaultsToActive(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "admin", "admin-password", true)
	cookie := env.login(t, "admin", "admin-password")

	rec := env.doJSON(t, http.MethodPost, "/api/jobs", gin.H{
		"title": "Open Role", "location": "Remote", "type": "Contract", "salary": "$70k", "description": "d",
	}, cookie)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, true, decodeJSON(t, rec)["active"])
}

func seedArticles(t *testing.T, env *testEnv, cookie *http.Cookie) {
	t.Helper()
	for _, body := range []gin.H{
		{"title": "Published Post", "content": "c", "excerpt": "e", "category": "Design", "imageUrl": "http://x", "authorName": "A", "authorImageUrl": "http://a", "published": true},
		{"title": "Draft Post", "content": "c", "excerpt": "e", "category": "Design", "imageUrl": "http://x", "authorName": "A", "authorImageUrl": "http://a", "published": false},
	} {
		rec := env.doJSON(t, http.MethodPost, "/api/blog", body, cookie)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}
}

func TestBlogListingsHideDrafts(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "admin", "admin-password", true)
	cookie := env.login(t, "admin", "admin-password")
	seedArticles(t, env, cookie)

	public := env.do(t, http.MethodGet, "/api/blog", nil, "", nil)
	require.Equal(t, http.StatusOK, public.Code)
	assert.Contains(t, public.Body.String(), "Published Post")
	assert.NotContains(t, public.Body.String(), "Draft Post")

	all := env.do(t, http.MethodGet, "/api/blog/all", nil, "", cookie)
	require.Equal(t, http.StatusOK, all.Code)
	assert.Contains(t, all.Body.String(), "Draft Post")

	denied := env.do(t, http.MethodGet, "/api/blog/all", nil, "", nil)
	assert.Equal(t, http.StatusForbidden, denied.Code)
}

func TestDraftArticleResolvesOnlyForAdmins(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "admin", "admin-password", true)
	cookie := env.login(t, "admin", "admin-password")
	seedArticles(t, env, cookie)

	public := env.do(t, http.MethodGet, "/api/blog/2", nil, "", nil)
	assert.Equal(t, http.StatusNotFound, public.Code)

	admin := env.do(t, http.MethodGet, "/api/blog/2", nil, "", cookie)
	require.Equal(t, http.StatusOK, admin.Code)
	assert.Contains(t, admin.Body.String(), "Draft Post")
}

func TestPublishingADraftMakesItPublic(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "admin", "admin-password", true)
	cookie := env.login(t, "admin", "admin-password")
	seedArticles(t, env, cookie)

	rec := env.doJSON(t, http.MethodPut, "/api/blog/2", gin.H{"published": true}, cookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	public := env.do(t, http.MethodGet, "/api/blog/2", nil, "", nil)
	assert.Equal(t, http.StatusOK, public.Code)
}
