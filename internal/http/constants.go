package httpx

// Route paths shared by handlers, redirects and templates.
const (
	SignInPath       = "/sign-in"
	ProtectedPath    = "/protected"
	DashboardPath    = "/protected/dashboard"
	SignOutPath      = "/auth/logout"
	DiagnosticsPath  = "/api/admin/diagnostics"
	signedOutQuery   = "signed_out"
	postSignOutPath  = SignInPath + "?" + signedOutQuery + "=1"
	defaultAfterAuth = DashboardPath
)

// Cookie names.
const (
	SessionCookieName   = "session_id"
	stateCookieName     = "oauth_state"
	nonceCookieName     = "oauth_nonce"
	postLoginCookieName = "post_login_redirect"
	// oauthCookieMaxAge bounds the sign-in round trip, in seconds.
	oauthCookieMaxAge = 600
)

// CurrentPage identifiers used in templates and navigation.
const (
	PageSignIn               = "sign-in"
	PageDashboard            = "dashboard"
	PageResetPassword        = "reset-password"
	PageResetPasswordConfirm = "reset-password-confirm"
	PageAdmin                = "admin"
)

// Template paths used for loading templates in tests and production.
const (
	TemplatePathFromRoot = "frontend/templates"
	TemplatePathFromTest = "../../frontend/templates"
)

//nolint:gochecknoglobals // static read-only lookup for templates
var contentTemplates = map[string]string{
	PageSignIn:               "sign-in-content",
	PageDashboard:            "dashboard-content",
	PageResetPassword:        "reset-password-content",
	PageResetPasswordConfirm: "reset-password-confirm-content",
	PageAdmin:                "admin-content",
}

// ContentTemplateFor returns the content template for the given CurrentPage.
// Falls back to dashboard-content for unknown pages.
func ContentTemplateFor(currentPage string) string {
	if name, ok := contentTemplates[currentPage]; ok {
		return name
	}
	return "dashboard-content"
}
