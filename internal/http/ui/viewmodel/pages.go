package viewmodel

import (
	"github.com/target/gradebook/internal/domain/roster"
)

// SignInPage is rendered at /sign-in.
type SignInPage struct {
	Layout
	LoginURL  string
	SignedOut bool
}

// LayoutData implements LayoutProvider.
func (p *SignInPage) LayoutData() *Layout { return &p.Layout }

// DashboardPage lists the signed-in user's students.
type DashboardPage struct {
	Layout
	Students []roster.StudentSummary
	Error    string
}

// LayoutData implements LayoutProvider.
func (p *DashboardPage) LayoutData() *Layout { return &p.Layout }

// ResetPasswordPage backs both reset-password steps.
type ResetPasswordPage struct {
	Layout
	// ProviderURL is where the identity provider manages passwords; empty when unknown.
	ProviderURL string
}

// LayoutData implements LayoutProvider.
func (p *ResetPasswordPage) LayoutData() *Layout { return &p.Layout }

// AdminSection is an entry in the admin area's own navigation.
type AdminSection struct {
	Slug   string
	Label  string
	Active bool
}

// AdminPage is the admin overview and its sections.
type AdminPage struct {
	Layout
	Sections    []AdminSection
	Section     string
	Diagnostics *roster.Diagnostics
	Error       string
}

// LayoutData implements LayoutProvider.
func (p *AdminPage) LayoutData() *Layout { return &p.Layout }

// ErrorPage is rendered by the error layout.
type ErrorPage struct {
	Layout
	Status  int
	Message string
}

// LayoutData implements LayoutProvider.
func (p *ErrorPage) LayoutData() *Layout { return &p.Layout }
