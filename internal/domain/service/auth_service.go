package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Session is an authenticated identity issued by the auth service,
// valid until sign-out or token expiry.
type Session struct {
	UID          string
	Email        string
	DisplayName  string
	IDToken      string
	RefreshToken string
	ExpiresAt    time.Time
}

// Expired reports whether the session's ID token has expired. When the
// auth service did not report an expiry, the exp claim is read from the
// token without signature verification; the token is never trusted
// locally beyond that.
func (s *Session) Expired() bool {
	if s == nil {
		return true
	}
	expiry := s.ExpiresAt
	if expiry.IsZero() {
		claims := jwt.RegisteredClaims{}
		parser := jwt.NewParser()
		if _, _, err := parser.ParseUnverified(s.IDToken, &claims); err != nil || claims.ExpiresAt == nil {
			return false
		}
		expiry = claims.ExpiresAt.Time
	}
	return time.Now().After(expiry)
}

// AuthService wraps the backend's authentication API. Failures are
// returned as *errors.AppError values carrying one of the fixed
// user-facing categories; nothing is thrown across this boundary.
type AuthService interface {
	SignIn(ctx context.Context, email, password string) (*Session, error)
	// SignUp creates the account, then sets the display name as a second
	// step. A display-name failure after account creation is returned as
	// an error but the account is not rolled back.
	SignUp(ctx context.Context, email, password, displayName string) (*Session, error)
	SendPasswordReset(ctx context.Context, email string) error
	UpdateDisplayName(ctx context.Context, uid, displayName string) error
}

// SessionStore holds the active session and pushes session-or-nil values
// to subscribers.
type SessionStore interface {
	// Current reads the active session synchronously from cached state,
	// or nil when signed out.
	Current() *Session
	Set(session *Session)
	// SignOut is a synchronous, local-only invalidation.
	SignOut()
	// Subscribe returns a stream that fires once immediately with the
	// current value and again on every sign-in/sign-out. The returned
	// func detaches the listener and closes the channel.
	Subscribe() (<-chan *Session, func())
}
