package config

import (
	"reflect"
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
)

func setRequiredAuthEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ADMIN_GROUP", "school-admins")
	t.Setenv("TEACHER_GROUP", "teachers")
}

func TestAppConfig_ParseAuthEnv(t *testing.T) {
	t.Setenv("AUTH_MODE", "oauth")
	t.Setenv("ADMIN_GROUP", "cn=admins,ou=groups,dc=example,dc=org")
	t.Setenv("TEACHER_GROUP", "cn=teachers,ou=groups,dc=example,dc=org")
	t.Setenv("OAUTH_CLIENT_ID", "app-client")
	t.Setenv("OAUTH_CLIENT_SECRET", "super-secret")
	t.Setenv("OAUTH_REDIRECT_URL", "https://app.example.com/auth/callback")
	t.Setenv("OAUTH_DISCOVERY_URL", "https://login.example.com/.well-known/openid-configuration")
	t.Setenv("OAUTH_SCOPE", "openid profile email")
	t.Setenv("OAUTH_GROUPS_CLAIM", "realm_access.roles")
	t.Setenv("DEV_AUTH_USER_ID", "dev-user")
	t.Setenv("DEV_AUTH_EMAIL", "dev@example.com")
	t.Setenv("DEV_AUTH_FIRST_NAME", "Ada")
	t.Setenv("DEV_AUTH_LAST_NAME", "Lovelace")
	t.Setenv("DEV_AUTH_GROUPS", "admins;teachers")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}

	expected := AuthConfig{
		Mode: AuthModeOAuth,
		OAuth: OAuthConfig{
			ClientID:     "app-client",
			ClientSecret: "super-secret",
			RedirectURL:  "https://app.example.com/auth/callback",
			Scope:        "openid profile email",
			DiscoveryURL: "https://login.example.com/.well-known/openid-configuration",
			GroupsClaim:  "realm_access.roles",
		},
		DevAuth: DevAuthConfig{
			UserID:    "dev-user",
			Email:     "dev@example.com",
			FirstName: "Ada",
			LastName:  "Lovelace",
			Groups:    []string{"admins", "teachers"},
		},
		AdminGroup:   "cn=admins,ou=groups,dc=example,dc=org",
		TeacherGroup: "cn=teachers,ou=groups,dc=example,dc=org",
	}

	if !reflect.DeepEqual(cfg.Auth, expected) {
		t.Fatalf("unexpected auth configuration:\nexpected: %#v\ngot:      %#v", expected, cfg.Auth)
	}
}

func TestAppConfig_RequiresRoleGroups(t *testing.T) {
	t.Setenv("ADMIN_GROUP", "")
	t.Setenv("TEACHER_GROUP", "")

	var cfg AppConfig
	if err := env.Parse(&cfg); err == nil {
		t.Fatal("expected error when role groups are missing")
	}
}

func TestAuthMode_UnmarshalText(t *testing.T) {
	var m AuthMode
	if err := m.UnmarshalText([]byte("MOCK")); err != nil || m != AuthModeMock {
		t.Fatalf("UnmarshalText(MOCK) = %v, %q", err, m)
	}
	if err := m.UnmarshalText([]byte("saml")); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}

func TestBackendConfig_ParseAndSanitize(t *testing.T) {
	setRequiredAuthEnv(t)
	t.Setenv("SUPABASE_URL", " https://abc.supabase.co/ ")
	t.Setenv("SUPABASE_ANON_KEY", "anon")
	t.Setenv("SUPABASE_SERVICE_ROLE_KEY", " service ")
	t.Setenv("SUPABASE_JWT_SECRET", "secret")
	t.Setenv("NEXT_PUBLIC_SUPABASE_URL", "")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	want := BackendConfig{
		URL:            "https://abc.supabase.co",
		AnonKey:        "anon",
		ServiceRoleKey: "service",
		JWTSecret:      "secret",
		RequestTimeout: 10 * time.Second,
	}
	if !reflect.DeepEqual(cfg.Backend, want) {
		t.Fatalf("unexpected backend configuration:\nexpected: %#v\ngot:      %#v", want, cfg.Backend)
	}
}

func TestBackendConfig_PublicURLFallback(t *testing.T) {
	b := BackendConfig{PublicURL: "https://public.supabase.co/"}
	b.Sanitize()
	if b.URL != "https://public.supabase.co" {
		t.Fatalf("URL = %q, want fallback to public URL", b.URL)
	}

	b = BackendConfig{URL: "https://private.example.com", PublicURL: "https://public.supabase.co"}
	b.Sanitize()
	if b.URL != "https://private.example.com" {
		t.Fatalf("URL = %q, explicit URL should win", b.URL)
	}
}

func TestBackendConfig_MissingSecretsDoNotFailParse(t *testing.T) {
	setRequiredAuthEnv(t)
	t.Setenv("SUPABASE_SERVICE_ROLE_KEY", "")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("missing backend secrets must not fail process start: %v", err)
	}
	if cfg.Backend.ServiceRoleKey != "" {
		t.Fatalf("unexpected service role key %q", cfg.Backend.ServiceRoleKey)
	}
}

func TestHTTPConfig_Sanitize(t *testing.T) {
	h := HTTPConfig{CompressionLevel: 42, CookieDomain: " .Example.COM "}
	h.Sanitize()
	if h.CompressionLevel != 9 {
		t.Errorf("CompressionLevel = %d, want 9", h.CompressionLevel)
	}
	if h.CookieDomain != "example.com" {
		t.Errorf("CookieDomain = %q, want example.com", h.CookieDomain)
	}

	h = HTTPConfig{CompressionLevel: -1}
	h.Sanitize()
	if h.CompressionLevel != 1 {
		t.Errorf("CompressionLevel = %d, want 1", h.CompressionLevel)
	}
}

func TestHTTPConfig_Validate(t *testing.T) {
	tests := []struct {
		domain  string
		wantErr bool
	}{
		{domain: "", wantErr: false},
		{domain: "localhost", wantErr: false},
		{domain: "grades.school.example.com", wantErr: false},
		{domain: "com", wantErr: true},
		{domain: "co.uk", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.domain, func(t *testing.T) {
			h := HTTPConfig{CookieDomain: tt.domain}
			err := h.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate(%q) error = %v, wantErr %v", tt.domain, err, tt.wantErr)
			}
		})
	}
}

func TestAppConfig_ValidateRejectsMockAuthOutsideDev(t *testing.T) {
	cfg := AppConfig{Auth: AuthConfig{Mode: AuthModeMock}}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected mock auth to be rejected outside dev mode")
	}
	cfg.IsDev = true
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
