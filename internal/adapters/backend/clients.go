package backend

import (
	"net/http"
	"time"

	"github.com/target/gradebook/config"
	apperrors "github.com/target/gradebook/internal/errors"
	"github.com/target/gradebook/internal/ports"
)

// StandardClient reads as one signed-in user. Row-level security applies.
type StandardClient struct {
	*transport
	subject string
}

// Subject implements ports.StandardDataClient.
func (c *StandardClient) Subject() string { return c.subject }

// PrivilegedClient reads with the service role and bypasses row-level security.
// It must only be built by server-side administrative code, one per operation.
type PrivilegedClient struct {
	*transport
}

// BypassesRowSecurity implements ports.PrivilegedDataClient.
func (c *PrivilegedClient) BypassesRowSecurity() bool { return true }

var (
	_ ports.StandardDataClient      = (*StandardClient)(nil)
	_ ports.PrivilegedDataClient    = (*PrivilegedClient)(nil)
	_ ports.PrivilegedClientFactory = (*Factory)(nil)
	_ ports.StandardClientFactory   = (*Factory)(nil)
)

// Factory builds data clients from the backend configuration. It validates the settings
// each variant needs at construction time and performs no I/O itself.
type Factory struct {
	cfg        config.BackendConfig
	httpClient *http.Client
	now        func() time.Time
}

// FactoryOptions configures a Factory.
type FactoryOptions struct {
	Config     config.BackendConfig
	HTTPClient *http.Client // optional; defaults to a client bounded by Config.RequestTimeout
}

// NewFactory creates a Factory. Missing credentials are reported when a client is requested.
func NewFactory(opts FactoryOptions) *Factory {
	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Config.RequestTimeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}
	return &Factory{cfg: opts.Config, httpClient: hc, now: time.Now}
}

// NewPrivilegedClient returns a fresh service-role client. It fails with a configuration
// error, before any network call, when the endpoint or the service-role key is unset.
//
//nolint:ireturn // callers depend on the port so they cannot pick the variant by accident.
func (f *Factory) NewPrivilegedClient() (ports.PrivilegedDataClient, error) {
	if f.cfg.URL == "" {
		return nil, apperrors.MissingSetting("SUPABASE_URL")
	}
	if f.cfg.ServiceRoleKey == "" {
		return nil, apperrors.MissingSetting("SUPABASE_SERVICE_ROLE_KEY")
	}
	key := f.cfg.ServiceRoleKey
	return &PrivilegedClient{transport: &transport{
		baseURL: f.cfg.URL,
		client:  f.httpClient,
		auth: func(req *http.Request) error {
			req.Header.Set("apikey", key)
			req.Header.Set("Authorization", "Bearer "+key)
			return nil
		},
	}}, nil
}

// NewStandardClient returns a client scoped to user. Its token is minted once here and
// expires shortly after; the client never refreshes it.
//
//nolint:ireturn // see NewPrivilegedClient.
func (f *Factory) NewStandardClient(user ports.Principal) (ports.StandardDataClient, error) {
	switch {
	case f.cfg.URL == "":
		return nil, apperrors.MissingSetting("SUPABASE_URL")
	case f.cfg.AnonKey == "":
		return nil, apperrors.MissingSetting("SUPABASE_ANON_KEY")
	case f.cfg.JWTSecret == "":
		return nil, apperrors.MissingSetting("SUPABASE_JWT_SECRET")
	case user.UserID == "":
		return nil, apperrors.Validation("standard client requires a user id")
	}

	token, err := mintRLSToken(f.cfg.JWTSecret, user, f.now())
	if err != nil {
		return nil, err
	}
	anon := f.cfg.AnonKey
	return &StandardClient{
		subject: user.UserID,
		transport: &transport{
			baseURL: f.cfg.URL,
			client:  f.httpClient,
			auth: func(req *http.Request) error {
				req.Header.Set("apikey", anon)
				req.Header.Set("Authorization", "Bearer "+token)
				return nil
			},
		},
	}, nil
}
