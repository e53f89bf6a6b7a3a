package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	stdhttp "net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"pixelperfect/internal/api/middleware"
	"pixelperfect/internal/auth"
	"pixelperfect/internal/config"
	"pixelperfect/internal/database"
	"pixelperfect/internal/session"
	"pixelperfect/internal/store"
)

// AuthHandler handles registration, login, logout, and the current-user
// endpoint. Authentication failures are uniform: an unknown username and a
// wrong password produce the same response.
type AuthHandler struct {
	users        store.UserStore
	sessions     session.Store
	redis        redis.UniversalClient
	logger       *slog.Logger
	login        config.LoginConfig
	sessionTTL   time.Duration
	cookieDomain string
}

// NewAuthHandler constructs the handler. redisClient may be nil, which
// disables login rate limiting and lockout.
func NewAuthHandler(
	users store.UserStore,
	sessions session.Store,
	redisClient redis.UniversalClient,
	logger *slog.Logger,
	login config.LoginConfig,
	sessionTTL time.Duration,
	cookieDomain string,
) *AuthHandler {
	return &AuthHandler{
		users:        users,
		sessions:     sessions,
		redis:        redisClient,
		logger:       logger,
		login:        login,
		sessionTTL:   sessionTTL,
		cookieDomain: cookieDomain,
	}
}

// registerRequest deliberately has no isAdmin field: registration can never
// produce an admin account, no matter what the body carries.
type registerRequest struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// Register creates a non-admin account and logs it in.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ValidationFailed(c, "invalid registration data", err)
		return
	}

	ctx := c.Request.Context()
	logger := h.loggerFromContext(c).With(slog.String("username", req.Username))

	if _, err := h.users.ByUsername(ctx, req.Username); err == nil {
		logger.Info("register conflict: user already exists")
		Conflict(c, "username already taken")
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		logger.Error("register lookup failed", slog.Any("error", err))
		Internal(c)
		return
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		logger.Error("hash password failed", slog.Any("error", err))
		Internal(c)
		return
	}

	user := database.User{
		Username:     req.Username,
		PasswordHash: hashed,
		IsAdmin:      false,
	}
	if err := h.users.Create(ctx, &user); err != nil {
		logger.Error("create user failed", slog.Any("error", err))
		Internal(c)
		return
	}

	logger.Info("user registered", slog.Uint64("user_id", uint64(user.ID)))
	h.establishSession(c, user, http.StatusCreated)
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login verifies the credentials and issues a fresh session.
func (h *AuthHandler) Login(c *gin.Context) {
	ip := c.ClientIP()
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ValidationFailed(c, "invalid login data", err)
		return
	}

	ctx := c.Request.Context()
	logger := h.loggerFromContext(c).With(slog.String("username", req.Username))
	username := strings.ToLower(req.Username)

	if h.redis != nil {
		rateKey := "rate:login:" + ip + ":" + username + ":" + time.Now().UTC().Format("2006010215")
		count, err := incrWithTTL(ctx, h.redis, rateKey, time.Hour)
		if err != nil {
			count = 0
		}
		if count > int64(h.login.RateLimitPerHour) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}

		if ttl, _ := h.redis.TTL(ctx, "lock:login:"+username).Result(); ttl > 0 {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "account temporarily locked"})
			return
		}
	}

	user, err := h.users.ByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			logger.Info("login failed: user not found")
			h.recordLoginFailure(ctx, username)
			Unauthorized(c)
			return
		}
		logger.Error("login query failed", slog.Any("error", err))
		Internal(c)
		return
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		logger.Info("login failed: password mismatch", slog.Uint64("user_id", uint64(user.ID)))
		h.recordLoginFailure(ctx, username)
		Unauthorized(c)
		return
	}

	if h.redis != nil {
		_ = h.redis.Del(ctx, "lock:login:fail:"+username).Err()
	}

	logger.Info("login succeeded", slog.Uint64("user_id", uint64(user.ID)))
	h.establishSession(c, *user, http.StatusOK)
}

// Logout destroys the session record and clears the cookie. Logging out
// twice, or with no session at all, succeeds the same way.
func (h *AuthHandler) Logout(c *gin.Context) {
	if id, err := c.Cookie(middleware.SessionCookieName); err == nil && id != "" {
		if err := h.sessions.Destroy(c.Request.Context(), id); err != nil {
			h.loggerFromContext(c).Error("destroy session failed", slog.Any("error", err))
			Internal(c)
			return
		}
	}

	h.clearSessionCookie(c)
	c.Status(http.StatusOK)
}

// Me returns the authenticated principal.
func (h *AuthHandler) Me(c *gin.Context) {
	principal, ok := middleware.PrincipalFromContext(c)
	if !ok {
		Unauthorized(c)
		return
	}
	c.JSON(http.StatusOK, principal)
}

func (h *AuthHandler) establishSession(c *gin.Context, user database.User, status int) {
	id, err := h.sessions.Create(c.Request.Context(), user.ID)
	if err != nil {
		h.loggerFromContext(c).Error("create session failed", slog.Any("error", err))
		Internal(c)
		return
	}

	h.setSessionCookie(c, id)
	c.JSON(status, middleware.Principal{
		UserID:   user.ID,
		Username: user.Username,
		IsAdmin:  user.IsAdmin,
	})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, id string) {
	maxAge := int(h.sessionTTL.Seconds())
	if maxAge <= 0 {
		maxAge = int(time.Hour.Seconds())
	}
	stdhttp.SetCookie(c.Writer, &stdhttp.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    id,
		MaxAge:   maxAge,
		Path:     "/",
		Secure:   h.isHTTPSRequest(c),
		HttpOnly: true,
		SameSite: stdhttp.SameSiteLaxMode,
		Domain:   h.getCookieDomain(),
		Expires:  time.Now().Add(h.sessionTTL),
	})
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	stdhttp.SetCookie(c.Writer, &stdhttp.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		MaxAge:   -1,
		Path:     "/",
		Secure:   h.isHTTPSRequest(c),
		HttpOnly: true,
		SameSite: stdhttp.SameSiteLaxMode,
		Domain:   h.getCookieDomain(),
	})
}

func (h *AuthHandler) recordLoginFailure(ctx context.Context, username string) {
	if h.redis == nil {
		return
	}
	failKey := "lock:login:fail:" + username
	count, err := h.redis.Incr(ctx, failKey).Result()
	if err != nil {
		return
	}
	if count == 1 {
		_ = h.redis.Expire(ctx, failKey, h.login.LockTTL()).Err()
	}
	if count >= int64(h.login.LockThreshold) {
		_ = h.redis.Set(ctx, "lock:login:"+username, "1", h.login.LockTTL()).Err()
	}
}

func (h *AuthHandler) loggerFromContext(c *gin.Context) *slog.Logger {
	if logger := middleware.LoggerFromContext(c); logger != nil {
		return logger
	}
	if h.logger != nil {
		return h.logger
	}
	return slog.Default()
}

func (h *AuthHandler) isHTTPSRequest(c *gin.Context) bool {
	if c.Request == nil {
		return false
	}
	if c.Request.TLS != nil {
		return true
	}
	return strings.EqualFold(c.Request.Header.Get("X-Forwarded-Proto"), "https")
}

func (h *AuthHandler) getCookieDomain() string { return strings.TrimSpace(h.cookieDomain) }
