package backend

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

const (
	testServiceKey = "service-role-key"
	testAnonKey    = "anon-key"
	testJWTSecret  = "super-secret-jwt-signing-key-for-tests"
)

type fakeRow map[string]any

// fakeREST is a small stand-in for a PostgREST endpoint. Rows carrying an "owner_id" are
// only visible to that subject unless the service-role key is presented.
type fakeREST struct {
	t        *testing.T
	rows     map[string][]fakeRow
	requests atomic.Int32
	// failWith, when set, is returned as the body of a 400 response.
	failWith string
	status   int
	// lastQuery captures the last request's raw query string.
	lastQuery atomic.Value
}

func newFakeREST(t *testing.T, rows map[string][]fakeRow) (*fakeREST, *httptest.Server) {
	t.Helper()
	f := &fakeREST{t: t, rows: rows}
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeREST) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.requests.Add(1)
	f.lastQuery.Store(r.URL.RawQuery)

	if f.failWith != "" {
		w.Header().Set("Content-Type", "application/json")
		status := f.status
		if status == 0 {
			status = http.StatusBadRequest
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(f.failWith))
		return
	}

	privileged, subject, ok := f.authenticate(r)
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"code":"PGRST301","message":"JWT invalid"}`))
		return
	}

	collection := strings.TrimPrefix(r.URL.Path, restPath)
	all, exists := f.rows[collection]
	if !exists {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"code":"42P01","message":"relation does not exist"}`))
		return
	}

	visible := make([]fakeRow, 0, len(all))
	for _, row := range all {
		owner, owned := row["owner_id"]
		if privileged || !owned || owner == subject {
			visible = append(visible, row)
		}
	}

	if r.Method == http.MethodHead {
		if r.Header.Get("Prefer") != "count=exact" {
			w.Header().Set("Content-Range", "0-0/*")
		} else if len(visible) == 0 {
			w.Header().Set("Content-Range", "*/0")
		} else {
			w.Header().Set("Content-Range", fmt.Sprintf("0-%d/%d", len(visible)-1, len(visible)))
		}
		w.WriteHeader(http.StatusOK)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(visible)
}

func (f *fakeREST) authenticate(r *http.Request) (privileged bool, subject string, ok bool) {
	bearer := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	switch r.Header.Get("apikey") {
	case testServiceKey:
		return bearer == testServiceKey, "", bearer == testServiceKey
	case testAnonKey:
		claims := &rlsClaims{}
		_, err := jwt.ParseWithClaims(bearer, claims, func(*jwt.Token) (any, error) {
			return []byte(testJWTSecret), nil
		}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithAudience("authenticated"))
		if err != nil || claims.Role != "authenticated" {
			return false, "", false
		}
		return false, claims.Subject, true
	default:
		return false, "", false
	}
}
