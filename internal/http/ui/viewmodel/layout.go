package viewmodel

import "github.com/target/gradebook/internal/domain/layout"

// User represents the authenticated user context exposed to templates.
type User struct {
	FirstName string
	LastName  string
	Email     string
	Role      string
}

// DisplayName prefers the full name and falls back to the email address.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.Email
	}
}

// Layout captures shared chrome metadata (titles, navigation state, auth flags).
type Layout struct {
	Title           string
	PageTitle       string
	CurrentPage     string
	Path            string
	IsAuthenticated bool
	IsAdmin         bool
	User            *User

	// ShowSidebar and ContentLayout come from layout.ComputeVisibility for the request path.
	ShowSidebar   bool
	ContentLayout layout.ContentLayout
}

// Centered reports whether the content region is narrowed to a centered column.
func (l Layout) Centered() bool { return l.ContentLayout == layout.ContentCentered }

// LayoutProvider exposes layout metadata for renderer utilities.
type LayoutProvider interface {
	LayoutData() *Layout
}
