package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/target/gradebook/config"
	"github.com/target/gradebook/internal/adapters/backend"
	apperrors "github.com/target/gradebook/internal/errors"
	"github.com/target/gradebook/internal/service"
)

func apiGet(path, sessionID string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Accept", "application/json")
	if sessionID != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: sessionID})
	}
	return req
}

func TestRunDiagnostics(t *testing.T) {
	t.Run("reports counts and users", func(t *testing.T) {
		f := newFixture(t)
		rec := f.do(t, apiGet(DiagnosticsPath, adminSessionID))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{
			"success": true,
			"message": "Database connection verified",
			"data": {
				"totalUsers": 2,
				"totalStudents": 3,
				"users": [
					{"id":"u1","first_name":"Ada","last_name":"Lovelace","email":"ada@school.example","role":"admin"},
					{"id":"u2","first_name":"Grace","last_name":"Hopper","email":"grace.hopper@school.example","role":"teacher"}
				]
			}
		}`, rec.Body.String())
	})

	t.Run("missing configuration", func(t *testing.T) {
		f := newFixture(t)
		f.diag.err = apperrors.MissingSetting("SUPABASE_SERVICE_ROLE_KEY")

		rec := f.do(t, apiGet(DiagnosticsPath, adminSessionID))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"error":"Backend is not configured","details":"SUPABASE_SERVICE_ROLE_KEY is not set"}`, rec.Body.String())
	})

	t.Run("query failure", func(t *testing.T) {
		f := newFixture(t)
		f.diag.err = apperrors.Upstream("backend request failed", errors.New("connection reset"))

		rec := f.do(t, apiGet(DiagnosticsPath, adminSessionID))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Database query failed", body["error"])
		assert.Contains(t, body["details"], "connection reset")
	})

	t.Run("teachers are refused", func(t *testing.T) {
		f := newFixture(t)
		rec := f.do(t, apiGet(DiagnosticsPath, teacherSessionID))

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, int32(0), f.diag.calls.Load())
	})

	t.Run("anonymous callers get 401", func(t *testing.T) {
		f := newFixture(t)
		rec := f.do(t, httptest.NewRequest(http.MethodGet, DiagnosticsPath, nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, int32(0), f.diag.calls.Load())
	})
}

// TestRunDiagnostics_AgainstBackend drives the endpoint through the real privileged client
// against a stand-in REST server.
func TestRunDiagnostics_AgainstBackend(t *testing.T) {
	var sawServiceKey atomic.Bool
	rest := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("apikey") == "service-key" && r.Header.Get("Authorization") == "Bearer service-key" {
			sawServiceKey.Store(true)
		}
		switch {
		case r.Method == http.MethodHead && strings.HasSuffix(r.URL.Path, "/users"):
			w.Header().Set("Content-Range", "0-1/2")
		case r.Method == http.MethodHead && strings.HasSuffix(r.URL.Path, "/students"):
			w.Header().Set("Content-Range", "0-2/3")
		case r.Method == http.MethodGet && strings.HasSuffix(r.URL.Path, "/users"):
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[
				{"id":"u1","first_name":"Ada","last_name":"Lovelace","email":"ada@school.example","role":"admin"},
				{"id":"u2","first_name":"Grace","last_name":"Hopper","email":"grace.hopper@school.example","role":"teacher"}
			]`))
			return
		default:
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(rest.Close)

	factory := backend.NewFactory(backend.FactoryOptions{
		Config:     config.BackendConfig{URL: rest.URL, ServiceRoleKey: "service-key"},
		HTTPClient: rest.Client(),
	})
	h := &AdminHandlers{
		Diagnostics: service.NewDiagnosticsService(service.DiagnosticsServiceOptions{Clients: factory, Logger: discardLogger()}),
		Logger:      discardLogger(),
	}

	rec := httptest.NewRecorder()
	h.RunDiagnostics(rec, httptest.NewRequest(http.MethodGet, DiagnosticsPath, nil))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var body struct {
		Success bool `json:"success"`
		Data    struct {
			TotalUsers    int64 `json:"totalUsers"`
			TotalStudents int64 `json:"totalStudents"`
			Users         []struct {
				ID string `json:"id"`
			} `json:"users"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, int64(2), body.Data.TotalUsers)
	assert.Equal(t, int64(3), body.Data.TotalStudents)
	assert.Len(t, body.Data.Users, 2)
	assert.True(t, sawServiceKey.Load())
}

func TestRunDiagnostics_UnconfiguredBackend(t *testing.T) {
	factory := backend.NewFactory(backend.FactoryOptions{Config: config.BackendConfig{URL: "http://127.0.0.1:1"}})
	h := &AdminHandlers{
		Diagnostics: service.NewDiagnosticsService(service.DiagnosticsServiceOptions{Clients: factory, Logger: discardLogger()}),
		Logger:      discardLogger(),
	}

	rec := httptest.NewRecorder()
	h.RunDiagnostics(rec, httptest.NewRequest(http.MethodGet, DiagnosticsPath, nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Backend is not configured","details":"SUPABASE_SERVICE_ROLE_KEY is not set"}`, rec.Body.String())
}
