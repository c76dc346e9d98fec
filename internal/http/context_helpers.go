package httpx

import (
	"context"

	domainauth "github.com/target/gradebook/internal/domain/auth"
)

// sessionKey is an unexported context key type to avoid collisions across packages.
type sessionKey struct{}

// requestLogKey carries fields that inner handlers report back to Logging.
type requestLogKey struct{}

type requestLog struct {
	userID string
}

// SetSessionInContext returns a child context that carries the given session.
// If session is nil, the original ctx is returned unchanged.
func SetSessionInContext(ctx context.Context, session *domainauth.Session) context.Context {
	if session == nil {
		return ctx
	}
	if rl, ok := ctx.Value(requestLogKey{}).(*requestLog); ok {
		rl.userID = session.UserID
	}
	return context.WithValue(ctx, sessionKey{}, session)
}

// SessionFromContext returns the session stored by RequireSession.
func SessionFromContext(ctx context.Context) (*domainauth.Session, bool) {
	if session, ok := ctx.Value(sessionKey{}).(*domainauth.Session); ok && session != nil {
		return session, true
	}
	return nil, false
}
