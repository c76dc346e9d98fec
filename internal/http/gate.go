package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	domainauth "github.com/target/gradebook/internal/domain/auth"
	"github.com/target/gradebook/internal/service"
)

// SessionProvider resolves the identity behind a session id.
// It returns service.ErrNoSession when there is none; any other error is a provider failure.
type SessionProvider interface {
	CurrentSession(ctx context.Context, sessionID string) (*domainauth.Session, error)
}

// Authorize resolves the caller's identity with exactly one provider query.
//
// The returned error is service.ErrNoSession when the caller is not signed in. Any other
// error means the provider could not answer and must not be treated as signed out.
func Authorize(r *http.Request, provider SessionProvider) (*domainauth.Session, error) {
	var sessionID string
	if c, err := r.Cookie(SessionCookieName); err == nil {
		sessionID = c.Value
	}
	return provider.CurrentSession(r.Context(), sessionID)
}

// GateOptions configures RequireSession.
type GateOptions struct {
	Sessions SessionProvider
	Logger   *slog.Logger
	// Errors renders the browser error page; plain text is used when nil.
	Errors *TemplateRenderer
}

// RequireSession admits only requests with a current identity and stores it in the
// request context. Signed-out browsers are sent to the sign-in page, API callers get 401.
// Provider failures end the request with 500.
func RequireSession(opts GateOptions) func(http.Handler) http.Handler {
	if opts.Sessions == nil {
		panic("RequireSession requires a session provider") //nolint:forbidigo // Fail fast during server setup.
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := Authorize(r, opts.Sessions)
			switch {
			case err == nil:
				next.ServeHTTP(w, r.WithContext(SetSessionInContext(r.Context(), session)))
			case errors.Is(err, service.ErrNoSession):
				if IsBrowserRequest(r) {
					redirectToSignIn(w, r)
					return
				}
				WriteError(w, ErrorParams{Code: http.StatusUnauthorized, ErrCode: "unauthorized"})
			default:
				logger.ErrorContext(r.Context(), "session lookup failed",
					slog.String("path", r.URL.Path),
					slog.String("method", r.Method),
					slog.Any("error", err))
				if IsBrowserRequest(r) {
					renderErrorPage(w, r, opts.Errors, http.StatusInternalServerError)
					return
				}
				WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "session_unavailable"})
			}
		})
	}
}

// SignInURL returns the sign-in route carrying a same-origin return path.
func SignInURL(returnTo string) string {
	u := url.URL{Path: SignInPath}
	if returnTo = safeRedirectPath(returnTo); returnTo != "/" {
		q := url.Values{}
		q.Set("redirect_uri", returnTo)
		u.RawQuery = q.Encode()
	}
	return u.String()
}

func redirectToSignIn(w http.ResponseWriter, r *http.Request) {
	target := SignInURL(redirectPathForRequest(r))
	if IsHTMX(r) {
		SetHXRedirect(w, target)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func redirectPathForRequest(r *http.Request) string {
	if IsHTMX(r) {
		if current := safeRedirectFromURL(r.Header.Get("Hx-Current-Url")); current != "/" {
			return current
		}
	}
	return safeRedirectPath(r.URL.RequestURI())
}

func safeRedirectFromURL(raw string) string {
	u, err := url.Parse(raw)
	if raw == "" || err != nil {
		return "/"
	}
	if u.IsAbs() {
		return safeRedirectPath(u.RequestURI())
	}
	return safeRedirectPath(raw)
}

// safeRedirectPath keeps redirects on this origin. It returns "/" for anything that is not
// a rooted relative path.
func safeRedirectPath(candidate string) string {
	if candidate == "" {
		return "/"
	}
	u, err := url.Parse(candidate)
	if err != nil || u.IsAbs() || u.Host != "" || len(u.Path) == 0 || u.Path[0] != '/' {
		return "/"
	}
	// "//host" and "/\host" are treated as scheme-relative by browsers.
	if len(candidate) > 1 && (candidate[1] == '/' || candidate[1] == '\\') {
		return "/"
	}
	return candidate
}
