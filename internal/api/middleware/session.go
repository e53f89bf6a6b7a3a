package middleware

import (
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"

	"pixelperfect/internal/session"
	"pixelperfect/internal/store"
)

// SessionCookieName is the HTTP-only cookie holding the session identifier.
const SessionCookieName = "pp_session"

const principalKey = "principal"

// Principal is the authenticated identity attached to a request after
// session resolution.
type Principal struct {
	UserID   uint   `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
}

// CurrentUser resolves the session cookie to a Principal and stores it on
// the context. It never aborts: public routes run with no principal, and the
// admin gate decides what that means. The user row is re-read on every
// request so a changed isAdmin flag or a deleted account takes effect
// immediately, even while the session record itself is still alive.
func CurrentUser(sessions session.Store, users store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(SessionCookieName)
		if err != nil || id == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		userID, err := sessions.Get(ctx, id)
		if err != nil {
			LoggerFromContext(c).Error("resolve session", slog.Any("error", err))
			c.Next()
			return
		}
		if userID == session.NoUser {
			c.Next()
			return
		}

		user, err := users.ByID(ctx, userID)
		if err != nil {
			if !errors.Is(err, store.ErrNotFound) {
				LoggerFromContext(c).Error("load session user", slog.Any("error", err))
			}
			c.Next()
			return
		}

		c.Set(principalKey, Principal{
			UserID:   user.ID,
			Username: user.Username,
			IsAdmin:  user.IsAdmin,
		})
		c.Next()
	}
}

// PrincipalFromContext returns the resolved principal, if any.
func PrincipalFromContext(c *gin.Context) (Principal, bool) {
	value, ok := c.Get(principalKey)
	if !ok {
		return Principal{}, false
	}
	principal, ok := value.(Principal)
	return principal, ok
}
