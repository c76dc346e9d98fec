package httpx

import (
	"context"
	"errors"
	"html"
	"log/slog"
	"net/http"
	"net/url"

	domainauth "github.com/target/gradebook/internal/domain/auth"
	"github.com/target/gradebook/internal/domain/layout"
	"github.com/target/gradebook/internal/domain/roster"
	apperrors "github.com/target/gradebook/internal/errors"
	"github.com/target/gradebook/internal/http/ui/viewmodel"
	"github.com/target/gradebook/internal/service"
)

// RosterReader lists the students visible to a signed-in user.
type RosterReader interface {
	ListStudents(ctx context.Context, session *domainauth.Session) ([]roster.StudentSummary, error)
}

var _ RosterReader = (*service.RosterService)(nil)

// UIHandlers serves browser-facing routes.
type UIHandlers struct {
	T           *TemplateRenderer
	Roster      RosterReader
	Diagnostics DiagnosticsRunner
	// PasswordResetURL is the identity provider's self-service page, if it has one.
	PasswordResetURL string
	Logger           *slog.Logger
}

// logger returns the configured logger or falls back to slog.Default().
func (h *UIHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// PageMeta contains metadata for page rendering.
type PageMeta struct {
	Title       string
	PageTitle   string
	CurrentPage string
}

// publicChrome is used outside the authenticated area, where there is no dashboard.
//
//nolint:gochecknoglobals // read-only
var publicChrome = layout.Decision{ShowSidebar: false, ContentLayout: layout.ContentCentered}

// buildLayout constructs shared layout metadata from the request and its session.
// Sidebar visibility and content arrangement are decided here, once, from the path.
func buildLayout(r *http.Request, meta PageMeta) viewmodel.Layout {
	l := viewmodel.Layout{
		Title:         meta.Title,
		PageTitle:     meta.PageTitle,
		CurrentPage:   meta.CurrentPage,
		Path:          r.URL.Path,
		ShowSidebar:   publicChrome.ShowSidebar,
		ContentLayout: publicChrome.ContentLayout,
	}

	if session, ok := SessionFromContext(r.Context()); ok {
		decision := layout.ComputeVisibility(r.URL.Path)
		l.ShowSidebar = decision.ShowSidebar
		l.ContentLayout = decision.ContentLayout
		l.IsAuthenticated = true
		l.IsAdmin = session.IsAdmin()
		l.User = &viewmodel.User{
			FirstName: session.FirstName,
			LastName:  session.LastName,
			Email:     session.Email,
			Role:      string(session.Role),
		}
	}
	return l
}

// render writes either the full page or, for htmx swaps, the content fragment with an
// updated document title.
func (h *UIHandlers) render(w http.ResponseWriter, r *http.Request, page viewmodel.LayoutProvider) {
	l := page.LayoutData()
	if !WantsPartial(r) {
		if err := h.T.RenderFull(w, page); err != nil {
			h.templateFailed(w, r, err)
		}
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write([]byte(`<title>` + html.EscapeString(l.Title) + `</title>`)); err != nil {
		h.logger().Error("failed to write partial document title", "error", err)
		return
	}
	if err := h.T.RenderPartial(w, l.CurrentPage, page); err != nil {
		h.templateFailed(w, r, err)
	}
}

func (h *UIHandlers) templateFailed(w http.ResponseWriter, r *http.Request, err error) {
	h.logger().Error("template rendering failed", "error", err, "path", r.URL.Path, "method", r.Method)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// SignIn renders the public sign-in page.
// GET /sign-in?redirect_uri=<path>&signed_out=1.
func (h *UIHandlers) SignIn(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	login := url.URL{Path: "/auth/login"}
	if target := safeRedirectPath(q.Get("redirect_uri")); target != "/" {
		login.RawQuery = url.Values{"redirect_uri": []string{target}}.Encode()
	}

	h.render(w, r, &viewmodel.SignInPage{
		Layout:    buildLayout(r, PageMeta{Title: "Sign in", PageTitle: "Sign in", CurrentPage: PageSignIn}),
		LoginURL:  login.String(),
		SignedOut: q.Get(signedOutQuery) == "1",
	})
}

// ProtectedIndex sends /protected to the dashboard.
func (h *UIHandlers) ProtectedIndex(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, DashboardPath, http.StatusFound)
}

// Dashboard lists the caller's students through the row-level-security client.
// GET /protected/dashboard.
func (h *UIHandlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	page := &viewmodel.DashboardPage{
		Layout: buildLayout(r, PageMeta{Title: "Dashboard", PageTitle: "My students", CurrentPage: PageDashboard}),
	}

	session, _ := SessionFromContext(r.Context())
	students, err := h.Roster.ListStudents(r.Context(), session)
	if err != nil {
		h.logger().ErrorContext(r.Context(), "list students failed", "error", err)
		page.Error = userFacingDataError(err)
	}
	page.Students = students

	h.render(w, r, page)
}

// ResetPassword renders the first reset-password step.
// GET /protected/reset-password.
func (h *UIHandlers) ResetPassword(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, &viewmodel.ResetPasswordPage{
		Layout:      buildLayout(r, PageMeta{Title: "Reset password", PageTitle: "Reset password", CurrentPage: PageResetPassword}),
		ProviderURL: h.PasswordResetURL,
	})
}

// ResetPasswordConfirm renders the confirmation step.
// GET /protected/reset-password/confirm.
func (h *UIHandlers) ResetPasswordConfirm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, &viewmodel.ResetPasswordPage{
		Layout: buildLayout(r, PageMeta{
			Title:       "Password updated",
			PageTitle:   "Password updated",
			CurrentPage: PageResetPasswordConfirm,
		}),
		ProviderURL: h.PasswordResetURL,
	})
}

//nolint:gochecknoglobals // static admin navigation
var adminSections = []viewmodel.AdminSection{
	{Slug: "", Label: "Overview"},
	{Slug: "users", Label: "Users"},
	{Slug: "reports", Label: "Reports"},
}

// Admin renders the admin area. Every section shows the diagnostics report; the users
// section lists accounts from it.
// GET /protected/admin and /protected/admin/{section}.
func (h *UIHandlers) Admin(w http.ResponseWriter, r *http.Request) {
	section := r.PathValue("section")
	known := false
	sections := make([]viewmodel.AdminSection, len(adminSections))
	for i, s := range adminSections {
		s.Active = s.Slug == section
		known = known || s.Active
		sections[i] = s
	}
	if !known {
		renderErrorPage(w, r, h.T, http.StatusNotFound)
		return
	}

	page := &viewmodel.AdminPage{
		Layout:   buildLayout(r, PageMeta{Title: "Administration", PageTitle: "Administration", CurrentPage: PageAdmin}),
		Sections: sections,
		Section:  section,
	}

	report, err := h.Diagnostics.Run(r.Context())
	if err != nil {
		h.logger().ErrorContext(r.Context(), "admin diagnostics failed", "error", err)
		page.Error = userFacingDataError(err)
	}
	page.Diagnostics = report

	h.render(w, r, page)
}

// NotFound renders the 404 page.
func (h *UIHandlers) NotFound(w http.ResponseWriter, r *http.Request) {
	renderErrorPage(w, r, h.T, http.StatusNotFound)
}

func userFacingDataError(err error) string {
	switch {
	case apperrors.IsConfiguration(err):
		return "The student records service is not configured yet."
	case apperrors.IsPermission(err):
		return "You do not have access to these records."
	case errors.Is(err, context.DeadlineExceeded), apperrors.IsTimeout(err):
		return "Loading records timed out. Please try again."
	default:
		return "Student records could not be loaded. Please try again."
	}
}
