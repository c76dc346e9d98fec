package bootstrap

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/target/gradebook/config"
	"github.com/target/gradebook/internal/adapters/authroles"
	"github.com/target/gradebook/internal/adapters/devauth"
	"github.com/target/gradebook/internal/adapters/oidc"
	redisadapter "github.com/target/gradebook/internal/adapters/redis"
	"github.com/target/gradebook/internal/ports"
	"github.com/target/gradebook/internal/service"
)

// SessionKeyPrefix namespaces session keys in Redis.
const SessionKeyPrefix = "session:"

// AuthConfig contains configuration for auth service.
type AuthConfig struct {
	Auth        config.AuthConfig
	IsDev       bool
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
	// SessionDuration applies to dev sign-ins; OIDC sessions follow the ID token expiry.
	SessionDuration time.Duration
}

// NewSessionStore returns the Redis-backed session store every process shares.
func NewSessionStore(client redis.UniversalClient) *redisadapter.SessionStore {
	return redisadapter.NewSessionStoreWithPrefix(client, SessionKeyPrefix)
}

// BuildAuthService creates the auth service for the configured mode. The application
// cannot serve protected pages without one, so every misconfiguration is an error.
func BuildAuthService(cfg AuthConfig) (*service.AuthService, error) {
	if cfg.RedisClient == nil {
		return nil, errors.New("auth: redis client is required for the session store")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	provider, err := buildProvider(cfg)
	if err != nil {
		return nil, err
	}

	logger.Info("auth configured", "mode", cfg.Auth.Mode)
	return service.NewAuthService(service.AuthServiceOptions{
		Provider: provider,
		Sessions: NewSessionStore(cfg.RedisClient),
		Roles: authroles.StaticRoleMapper{
			AdminGroup:   cfg.Auth.AdminGroup,
			TeacherGroup: cfg.Auth.TeacherGroup,
		},
	}), nil
}

//nolint:ireturn // the provider is picked at runtime from AUTH_MODE.
func buildProvider(cfg AuthConfig) (ports.AuthProvider, error) {
	switch cfg.Auth.Mode {
	case config.AuthModeMock:
		if !cfg.IsDev {
			return nil, fmt.Errorf("auth: AUTH_MODE=%s requires DEV=true", cfg.Auth.Mode)
		}
		dev := cfg.Auth.DevAuth
		prov, err := devauth.NewProvider(devauth.Config{
			UserID:          dev.UserID,
			Email:           dev.Email,
			FirstName:       dev.FirstName,
			LastName:        dev.LastName,
			Groups:          dev.Groups,
			SessionDuration: cfg.SessionDuration,
		})
		if err != nil {
			return nil, fmt.Errorf("auth: dev provider: %w", err)
		}
		return prov, nil

	case config.AuthModeOAuth:
		oauth := cfg.Auth.OAuth
		if oauth.DiscoveryURL == "" || oauth.ClientID == "" || oauth.ClientSecret == "" {
			return nil, errors.New("auth: OAUTH_DISCOVERY_URL, OAUTH_CLIENT_ID and OAUTH_CLIENT_SECRET are required")
		}
		prov, err := oidc.NewProvider(oidc.ProviderConfig{
			ClientID:     oauth.ClientID,
			ClientSecret: oauth.ClientSecret,
			RedirectURL:  oauth.RedirectURL,
			Scope:        oauth.Scope,
			DiscoveryURL: oauth.DiscoveryURL,
			GroupsClaim:  oauth.GroupsClaim,
		})
		if err != nil {
			return nil, fmt.Errorf("auth: oidc provider: %w", err)
		}
		return prov, nil

	default:
		return nil, fmt.Errorf("auth: unsupported mode %q", cfg.Auth.Mode)
	}
}
