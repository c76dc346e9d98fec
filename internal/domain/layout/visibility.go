// Package layout decides which dashboard chrome a protected route gets.
package layout

import "strings"

// Route prefixes that change the dashboard chrome.
const (
	ResetPasswordPrefix = "/protected/reset-password"
	AdminPrefix         = "/protected/admin"
)

// ContentLayout describes how the main content region is arranged.
type ContentLayout string

const (
	ContentFull     ContentLayout = "full"
	ContentCentered ContentLayout = "centered"
)

// Decision is the chrome computed for a single request.
type Decision struct {
	ShowSidebar   bool          `json:"showSidebar"`
	ContentLayout ContentLayout `json:"contentLayout"`
}

type rule struct {
	name     string
	match    func(path string) bool
	decision Decision
}

// rules is evaluated top-down; the first match wins.
var rules = []rule{
	{
		name:     "reset-password",
		match:    underPrefix(ResetPasswordPrefix),
		decision: Decision{ShowSidebar: false, ContentLayout: ContentCentered},
	},
	{
		name:     "admin",
		match:    underPrefix(AdminPrefix),
		decision: Decision{ShowSidebar: false, ContentLayout: ContentFull},
	},
}

var defaultDecision = Decision{ShowSidebar: true, ContentLayout: ContentFull}

// ComputeVisibility returns the chrome for path. It is pure.
func ComputeVisibility(path string) Decision {
	for _, r := range rules {
		if r.match(path) {
			return r.decision
		}
	}
	return defaultDecision
}

// underPrefix matches prefix itself or any path below it on a segment boundary,
// so "/protected/admin2" is not under "/protected/admin".
func underPrefix(prefix string) func(string) bool {
	return func(path string) bool {
		return path == prefix || strings.HasPrefix(path, prefix+"/")
	}
}
