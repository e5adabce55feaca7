package auth

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"riseadvertising/internal/model"
)

// Session is the signed-in user as seen by request handlers. It is derived
// from a validated access token and travels in the request context.
type Session struct {
	UserID    uuid.UUID  `json:"user_id"`
	Email     string     `json:"email"`
	Role      model.Role `json:"role"`
	IsAdmin   bool       `json:"is_admin"`
	IsEditor  bool       `json:"is_editor"`
	TokenID   string     `json:"-"`
	ExpiresAt time.Time  `json:"expires_at"`
}

// SessionFromClaims builds a Session from access token claims.
func SessionFromClaims(claims *Claims) (*Session, error) {
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, ErrInvalidToken
	}
	s := &Session{
		UserID:   userID,
		Email:    claims.Email,
		Role:     claims.Role,
		IsAdmin:  claims.Role == model.RoleAdmin,
		IsEditor: claims.Role == model.RoleAdmin || claims.Role == model.RoleEditor,
		TokenID:  claims.ID,
	}
	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time
	}
	return s, nil
}

type sessionKey struct{}

// WithSession returns a copy of ctx carrying s.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFrom returns the session stored in ctx, or nil.
func SessionFrom(ctx context.Context) *Session {
	s, _ := ctx.Value(sessionKey{}).(*Session)
	return s
}

// AccessTokenCookie carries the access token for browser sessions.
const AccessTokenCookie = "access_token"

// TokenFromRequest reads the bearer token from the Authorization header,
// falling back to the access token cookie.
func TokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	if ck, err := r.Cookie(AccessTokenCookie); err == nil {
		return ck.Value
	}
	return ""
}
