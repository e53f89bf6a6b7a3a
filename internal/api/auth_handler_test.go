package api

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pixelperfect/internal/database"
)

func TestRegisterCreatesNonAdminAndLogsIn(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(t, http.MethodPost, "/api/register", gin.H{
		"username": "alice",
		"password": "password123",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	payload := decodeJSON(t, rec)
	assert.Equal(t, "alice", payload["username"])
	assert.Equal(t, false, payload["isAdmin"])

	// registration logs the new account in
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	me := env.do(t, http.MethodGet, "/api/user", nil, "", cookies[0])
	assert.Equal(t, http.StatusOK, me.Code)
}

func TestRegisterIgnoresIsAdminInBody(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(t, http.MethodPost, "/api/register", gin.H{
		"username": "eve",
		"password": "password123",
		"isAdmin":  true,
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, false, decodeJSON(t, rec)["isAdmin"])

	var user database.User
	require.NoError(t, env.db.Where("username = ?", "eve").First(&user).Error)
	assert.False(t, user.IsAdmin, "request tampering must not escalate")
}

func TestRegisterDuplicateUsername(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "taken", "password123", false)

	rec := env.doJSON(t, http.MethodPost, "/api/register", gin.H{
		"username": "taken",
		"password": "password123",
	}, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegisterStoresHashedPassword(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(t, http.MethodPost, "/api/register", gin.H{
		"username": "bob",
		"password": "password123",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var user database.User
	require.NoError(t, env.db.Where("username = ?", "bob").First(&user).Error)
	assert.NotEqual(t, "password123", user.PasswordHash)
	assert.NotContains(t, user.PasswordHash, "password123")
}

func TestLoginFailureIsUniform(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "alice", "password123", false)

	missing := env.doJSON(t, http.MethodPost, "/api/login", gin.H{
		"username": "nobody",
		"password": "password123",
	}, nil)
	mismatch := env.doJSON(t, http.MethodPost, "/api/login", gin.H{
		"username": "alice",
		"password": "wrong-password",
	}, nil)

	assert.Equal(t, http.StatusUnauthorized, missing.Code)
	assert.Equal(t, http.StatusUnauthorized, mismatch.Code)
	// the caller cannot tell which branch failed
	assert.Equal(t, missing.Body.String(), mismatch.Body.String())
}

func TestLoginThenMeThenLogout(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "alice", "password123", false)

	cookie := env.login(t, "alice", "password123")

	me := env.do(t, http.MethodGet, "/api/user", nil, "", cookie)
	require.Equal(t, http.StatusOK, me.Code)
	assert.Equal(t, "alice", decodeJSON(t, me)["username"])

	logout := env.do(t, http.MethodPost, "/api/logout", nil, "", cookie)
	assert.Equal(t, http.StatusOK, logout.Code)

	// the session record is destroyed, not just the cookie
	me = env.do(t, http.MethodGet, "/api/user", nil, "", cookie)
	assert.Equal(t, http.StatusUnauthorized, me.Code)
}

func TestLogoutIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "alice", "password123", false)
	cookie := env.login(t, "alice", "password123")

	first := env.do(t, http.MethodPost, "/api/logout", nil, "", cookie)
	second := env.do(t, http.MethodPost, "/api/logout", nil, "", cookie)
	bare := env.do(t, http.MethodPost, "/api/logout", nil, "", nil)

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, http.StatusOK, bare.Code)
}

func TestMeWithoutSession(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/user", nil, "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionSurvivesButUserDeletionEndsIt(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice", "password123", false)
	cookie := env.login(t, "alice", "password123")

	require.NoError(t, env.db.Delete(&database.User{}, user.ID).Error)

	// the session record still exists, but it no longer resolves to a principal
	rec := env.do(t, http.MethodGet, "/api/user", nil, "", cookie)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
