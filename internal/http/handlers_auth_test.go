package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cookieNamed(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func signOutRequest(sessionID, accept string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, SignOutPath, nil)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	if sessionID != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: sessionID})
	}
	return req
}

func TestLogout(t *testing.T) {
	t.Run("ends every session of the user and redirects", func(t *testing.T) {
		f := newFixture(t)
		other := teacherSession()
		other.ID = "sess-teacher-laptop"
		require.NoError(t, f.store.Save(context.Background(), other))

		rec := f.do(t, signOutRequest(teacherSessionID, "text/html"))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/sign-in?signed_out=1", rec.Header().Get("Location"))
		assert.False(t, f.store.Has(teacherSessionID))
		assert.False(t, f.store.Has("sess-teacher-laptop"))
		assert.True(t, f.store.Has(adminSessionID))

		c := cookieNamed(rec, SessionCookieName)
		require.NotNil(t, c)
		assert.Empty(t, c.Value)
		assert.Negative(t, c.MaxAge)
	})

	t.Run("script callers get json", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(t, signOutRequest(teacherSessionID, "application/json"))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"success","redirect_to":"/sign-in?signed_out=1"}`, rec.Body.String())
		assert.False(t, f.store.Has(teacherSessionID))
	})

	t.Run("without a session still lands on sign-in", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(t, signOutRequest("", ""))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/sign-in?signed_out=1", rec.Header().Get("Location"))
		assert.True(t, f.store.Has(teacherSessionID))
	})

	t.Run("store failure keeps the cookie", func(t *testing.T) {
		f := newFixture(t)
		f.store.Err = errors.New("redis: connection refused")

		rec := f.do(t, signOutRequest(teacherSessionID, "text/html"))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Nil(t, cookieNamed(rec, SessionCookieName))
		assert.Empty(t, rec.Header().Get("Location"))
	})

	t.Run("store failure for json callers", func(t *testing.T) {
		f := newFixture(t)
		f.store.Err = errors.New("redis: connection refused")

		rec := f.do(t, signOutRequest(teacherSessionID, "application/json"))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"error":"sign_out_failed"}`, rec.Body.String())
	})

	t.Run("get does not sign out", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(t, browserGet(SignOutPath, teacherSessionID))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.True(t, f.store.Has(teacherSessionID))
	})
}

func TestLoginAndCallback(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, browserGet("/auth/login?redirect_uri=%2Fprotected%2Freset-password", ""))

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://mock-idp/auth", rec.Header().Get("Location"))
	state := cookieNamed(rec, stateCookieName)
	nonce := cookieNamed(rec, nonceCookieName)
	back := cookieNamed(rec, postLoginCookieName)
	require.NotNil(t, state)
	require.NotNil(t, nonce)
	require.NotNil(t, back)
	assert.Equal(t, "/protected/reset-password", back.Value)
	assert.True(t, state.HttpOnly)

	req := browserGet("/auth/callback?code=abc&state="+state.Value, "")
	req.AddCookie(state)
	req.AddCookie(nonce)
	req.AddCookie(back)
	rec = f.do(t, req)

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/protected/reset-password", rec.Header().Get("Location"))
	session := cookieNamed(rec, SessionCookieName)
	require.NotNil(t, session)
	assert.NotEmpty(t, session.Value)
	assert.True(t, f.store.Has(session.Value))
}

func TestLogin_DefaultsToDashboard(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, browserGet("/auth/login?redirect_uri=https%3A%2F%2Fevil.example", ""))

	require.Equal(t, http.StatusFound, rec.Code)
	back := cookieNamed(rec, postLoginCookieName)
	require.NotNil(t, back)
	assert.Equal(t, DashboardPath, back.Value)
}

func TestCallback_RejectsStateMismatch(t *testing.T) {
	f := newFixture(t)

	req := browserGet("/auth/callback?code=abc&state=forged", "")
	req.AddCookie(&http.Cookie{Name: stateCookieName, Value: "state-1"})
	req.AddCookie(&http.Cookie{Name: nonceCookieName, Value: "nonce-1"})
	rec := f.do(t, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"invalid_state","message":"invalid or missing state parameter"}`, rec.Body.String())
}

func TestStatus(t *testing.T) {
	t.Run("signed in", func(t *testing.T) {
		f := newFixture(t)
		rec := f.do(t, apiGet("/auth/status", adminSessionID))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"authenticated":true`)
		assert.Contains(t, rec.Body.String(), `"role":"admin"`)
	})

	t.Run("signed out", func(t *testing.T) {
		f := newFixture(t)
		rec := f.do(t, apiGet("/auth/status", "gone"))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"authenticated":false}`, rec.Body.String())
		c := cookieNamed(rec, SessionCookieName)
		require.NotNil(t, c)
		assert.Negative(t, c.MaxAge)
	})

	t.Run("store unavailable", func(t *testing.T) {
		f := newFixture(t)
		f.store.Err = errors.New("redis: i/o timeout")
		rec := f.do(t, apiGet("/auth/status", adminSessionID))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"error":"session_unavailable"}`, rec.Body.String())
	})
}
