package httpx

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/target/gradebook/internal/adapters/authroles"
	domainauth "github.com/target/gradebook/internal/domain/auth"
	"github.com/target/gradebook/internal/domain/roster"
	authmocks "github.com/target/gradebook/internal/mocks/auth"
	"github.com/target/gradebook/internal/service"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// countingAuth wraps the real auth service and counts identity lookups.
type countingAuth struct {
	*service.AuthService
	lookups atomic.Int32
}

func (c *countingAuth) CurrentSession(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	c.lookups.Add(1)
	return c.AuthService.CurrentSession(ctx, sessionID)
}

type fixture struct {
	store  *authmocks.MemorySessionStore
	auth   *countingAuth
	roster *stubRoster
	diag   *stubDiagnostics
	router http.Handler
}

const (
	teacherSessionID = "sess-teacher"
	adminSessionID   = "sess-admin"
)

func teacherSession() domainauth.Session {
	return domainauth.Session{
		ID:        teacherSessionID,
		UserID:    "teacher-1",
		FirstName: "Grace",
		LastName:  "Hopper",
		Email:     "grace.hopper@school.example",
		Role:      domainauth.RoleTeacher,
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func adminSession() domainauth.Session {
	return domainauth.Session{
		ID:        adminSessionID,
		UserID:    "admin-1",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@school.example",
		Role:      domainauth.RoleAdmin,
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

// newFixture builds the full router over an in-memory session store holding a teacher
// and an admin session.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	if _, err := os.Stat(TemplatePathFromTest); err != nil {
		t.Skipf("templates not available: %v", err)
	}

	store := authmocks.NewMemorySessionStore(teacherSession(), adminSession())
	auth := &countingAuth{AuthService: service.NewAuthService(service.AuthServiceOptions{
		Provider: authmocks.NewMockAuthProvider(),
		Sessions: store,
		Roles:    authroles.StaticRoleMapper{AdminGroup: "admins", TeacherGroup: "teachers"},
	})}
	f := &fixture{
		store:  store,
		auth:   auth,
		roster: &stubRoster{},
		diag:   &stubDiagnostics{report: twoUsersThreeStudents()},
	}
	f.router = NewRouter(RouterServices{
		Auth:        auth,
		Roster:      f.roster,
		Diagnostics: f.diag,
		Web:         WebOptions{TemplateFS: os.DirFS(TemplatePathFromTest)},
		Logger:      discardLogger(),
	})
	return f
}

func (f *fixture) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func browserGet(path, sessionID string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	if sessionID != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: sessionID})
	}
	return req
}

type stubRoster struct {
	students []roster.StudentSummary
	err      error
	calls    atomic.Int32
}

func (s *stubRoster) ListStudents(_ context.Context, _ *domainauth.Session) ([]roster.StudentSummary, error) {
	s.calls.Add(1)
	return s.students, s.err
}

type stubDiagnostics struct {
	report *roster.Diagnostics
	err    error
	calls  atomic.Int32
}

func (s *stubDiagnostics) Run(context.Context) (*roster.Diagnostics, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return s.report, nil
}

func twoUsersThreeStudents() *roster.Diagnostics {
	return &roster.Diagnostics{
		TotalUsers:    2,
		TotalStudents: 3,
		Users: []roster.UserProfile{
			{ID: "u1", FirstName: "Ada", LastName: "Lovelace", Email: "ada@school.example", Role: "admin"},
			{ID: "u2", FirstName: "Grace", LastName: "Hopper", Email: "grace.hopper@school.example", Role: "teacher"},
		},
	}
}

func requireTemplateRenderer(t *testing.T) *TemplateRenderer {
	t.Helper()
	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: os.DirFS(TemplatePathFromTest),
		Logger:     discardLogger(),
	})
	if err != nil {
		t.Skipf("templates not available: %v", err)
	}
	require.NotNil(t, tr)
	return tr
}
