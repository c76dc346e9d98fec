package httpx

import (
	"context"
	"io/fs"
	"log/slog"
	"net/http"
	"os"

	gradebook "github.com/target/gradebook"
	domainauth "github.com/target/gradebook/internal/domain/auth"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth        AuthServiceInterface
	Roster      RosterReader
	Diagnostics DiagnosticsRunner
	// ReadinessChecks back /readyz; keys name the dependency.
	ReadinessChecks map[string]func(context.Context) error
	Web             WebOptions
	Logger          *slog.Logger
}

// WebOptions configures the browser-facing side of the router.
type WebOptions struct {
	CookieDomain     string
	PasswordResetURL string
	// IsDev loads templates and static files from disk instead of the embedded copies.
	IsDev bool
	// TemplateFS overrides template discovery; tests point it at the source tree.
	TemplateFS fs.FS
}

// NewRouter creates and configures a new HTTP router with browser middleware.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}
	mux := http.NewServeMux()

	renderer := setupRenderer(services.Web, logger)
	gate := RequireSession(GateOptions{Sessions: services.Auth, Logger: logger, Errors: renderer})
	adminOnly := RequireRole(domainauth.RoleAdmin, renderer)

	mux.HandleFunc("GET /healthz", healthHandler)
	mux.Handle("GET /readyz", readinessHandler(services.ReadinessChecks, logger))
	mux.Handle("GET /static/", staticHandler(services.Web.IsDev, logger))

	registerAuthRoutes(mux, &AuthHandlers{
		Svc:          services.Auth,
		CookieDomain: services.Web.CookieDomain,
		Logger:       logger,
		Errors:       renderer,
	})

	adminAPI := &AdminHandlers{Diagnostics: services.Diagnostics, Logger: logger}
	mux.Handle("GET "+DiagnosticsPath, chain(http.HandlerFunc(adminAPI.RunDiagnostics), gate, adminOnly))

	if renderer != nil {
		ui := &UIHandlers{
			T:                renderer,
			Roster:           services.Roster,
			Diagnostics:      services.Diagnostics,
			PasswordResetURL: services.Web.PasswordResetURL,
			Logger:           logger,
		}
		registerUIRoutes(mux, ui, uiRouteConfig{gate: gate, adminOnly: adminOnly})
	}

	return BrowserDetection()(mux)
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers) {
	mux.HandleFunc("GET /auth/login", h.Login)
	mux.HandleFunc("GET /auth/callback", h.Callback)
	mux.HandleFunc("POST "+SignOutPath, h.Logout)
	mux.HandleFunc("GET /auth/status", h.Status)
}

type uiRouteConfig struct {
	gate      func(http.Handler) http.Handler
	adminOnly func(http.Handler) http.Handler
}

func registerUIRoutes(mux *http.ServeMux, h *UIHandlers, cfg uiRouteConfig) {
	signedIn := func(fn http.HandlerFunc) http.Handler { return cfg.gate(fn) }
	admin := func(fn http.HandlerFunc) http.Handler { return chain(fn, cfg.gate, cfg.adminOnly) }

	mux.HandleFunc("GET "+SignInPath, h.SignIn)
	mux.Handle("GET /{$}", http.RedirectHandler(DashboardPath, http.StatusFound))

	mux.Handle("GET "+ProtectedPath, signedIn(h.ProtectedIndex))
	mux.Handle("GET "+DashboardPath, signedIn(h.Dashboard))
	mux.Handle("GET /protected/reset-password", signedIn(h.ResetPassword))
	mux.Handle("GET /protected/reset-password/confirm", signedIn(h.ResetPasswordConfirm))
	mux.Handle("GET /protected/admin", admin(h.Admin))
	mux.Handle("GET /protected/admin/{section}", admin(h.Admin))

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if !IsBrowserRequest(r) {
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found"})
			return
		}
		h.NotFound(w, r)
	})
}

// setupRenderer picks the template source: an explicit FS, the source tree in dev mode,
// or the embedded copy.
func setupRenderer(web WebOptions, logger *slog.Logger) *TemplateRenderer {
	templateFS := web.TemplateFS
	if templateFS == nil {
		if web.IsDev {
			templateFS = os.DirFS(TemplatePathFromRoot)
		} else {
			sub, err := fs.Sub(gradebook.TemplateFS, TemplatePathFromRoot)
			if err != nil {
				logger.Error("failed to open embedded templates", slog.Any("error", err))
				return nil
			}
			templateFS = sub
		}
	}

	tr, err := NewTemplateRenderer(TemplateRendererConfig{TemplateFS: templateFS, Logger: logger})
	if err != nil {
		logger.Error("failed to create template renderer", slog.Any("error", err))
		return nil
	}
	return tr
}

// staticHandler serves /static/* from disk in dev mode and from the embedded copy otherwise.
func staticHandler(isDev bool, logger *slog.Logger) http.Handler {
	var files http.FileSystem = http.Dir("frontend/static")
	if !isDev {
		sub, err := fs.Sub(gradebook.StaticFS, "frontend/static")
		if err != nil {
			logger.Error("failed to open embedded static assets", slog.Any("error", err))
		} else {
			files = http.FS(sub)
		}
	}
	fileServer := http.StripPrefix("/static/", http.FileServer(files))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isDev {
			w.Header().Set("Cache-Control", "no-cache")
		} else {
			w.Header().Set("Cache-Control", "public, max-age=3600")
		}
		fileServer.ServeHTTP(w, r)
	})
}
