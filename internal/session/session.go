// Package session issues and resolves server-side sessions. A session maps
// an opaque identifier, held by the client in an HTTP-only cookie, to a user
// id. Sessions expire on their own schedule, independent of the user records
// they reference.
package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"
)

const idBytes = 32

// Store is the session record lifecycle. Get returns ("", nil) when the
// session is absent, expired, or destroyed; a successful Get slides the
// expiry forward. Destroy is idempotent.
type Store interface {
	Create(ctx context.Context, userID uint) (string, error)
	Get(ctx context.Context, id string) (uint, error)
	Destroy(ctx context.Context, id string) error
}

// Get's zero return for "no session" uses userID 0, which is never a valid
// primary key.
const NoUser uint = 0

// NewID generates an unguessable session identifier from the system CSPRNG.
// It carries no information derived from the user id or the clock.
func NewID() (string, error) {
	buf := make([]byte, idBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func validTTL(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return time.Hour
	}
	return ttl
}
