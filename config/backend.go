package config

import (
	"strings"
	"time"
)

// BackendConfig holds the hosted backend's REST endpoint and credentials.
//
// None of these are required at process start: the standard and privileged data
// clients check the values they need when they are constructed.
type BackendConfig struct {
	// URL is the project endpoint, e.g. https://abc.supabase.co.
	URL string `env:"SUPABASE_URL"`

	// PublicURL is read from the browser-facing variable name and used when URL is unset.
	PublicURL string `env:"NEXT_PUBLIC_SUPABASE_URL"`

	// AnonKey is the public API key sent by row-level-security enforced requests.
	AnonKey string `env:"SUPABASE_ANON_KEY"`

	// ServiceRoleKey bypasses row-level security. Server-side only.
	ServiceRoleKey string `env:"SUPABASE_SERVICE_ROLE_KEY"`

	// JWTSecret signs the short-lived per-user tokens of the standard client.
	JWTSecret string `env:"SUPABASE_JWT_SECRET"`

	// RequestTimeout bounds each backend round-trip.
	RequestTimeout time.Duration `env:"SUPABASE_REQUEST_TIMEOUT" envDefault:"10s"`
}

// Sanitize trims values and applies the URL fallback.
func (b *BackendConfig) Sanitize() {
	b.URL = strings.TrimRight(strings.TrimSpace(b.URL), "/")
	b.PublicURL = strings.TrimRight(strings.TrimSpace(b.PublicURL), "/")
	if b.URL == "" {
		b.URL = b.PublicURL
	}
	b.AnonKey = strings.TrimSpace(b.AnonKey)
	b.ServiceRoleKey = strings.TrimSpace(b.ServiceRoleKey)
	b.JWTSecret = strings.TrimSpace(b.JWTSecret)
	if b.RequestTimeout <= 0 {
		b.RequestTimeout = 10 * time.Second
	}
}
