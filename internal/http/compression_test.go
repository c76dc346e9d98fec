package httpx

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompression(t *testing.T) {
	page := strings.Repeat("<p>Assessment results</p>", 200)
	handler := func(contentType string) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", contentType)
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(page))
		})
	}

	tests := []struct {
		name           string
		acceptEncoding string
		contentType    string
		level          int
		wantGzip       bool
	}{
		{name: "html for gzip clients", acceptEncoding: "gzip, deflate", contentType: "text/html; charset=utf-8", level: 6, wantGzip: true},
		{name: "json is compressed", acceptEncoding: "gzip", contentType: "application/json", level: 1, wantGzip: true},
		{name: "client without gzip", acceptEncoding: "deflate", contentType: "text/html", level: 6},
		{name: "no accept-encoding", contentType: "text/html", level: 6},
		{name: "gzip refused with q=0", acceptEncoding: "gzip;q=0, br", contentType: "text/html", level: 6},
		{name: "images pass through", acceptEncoding: "gzip", contentType: "image/png", level: 6},
		{name: "out of range level falls back to default", acceptEncoding: "gzip", contentType: "text/css", level: 42, wantGzip: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := Compression(CompressionConfig{Level: tt.level, Logger: discardLogger()})(handler(tt.contentType))
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.acceptEncoding != "" {
				req.Header.Set("Accept-Encoding", tt.acceptEncoding)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)
			if !tt.wantGzip {
				assert.Empty(t, rec.Header().Get("Content-Encoding"))
				assert.Equal(t, page, rec.Body.String())
				return
			}
			assert.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
			assert.Contains(t, rec.Header().Values("Vary"), "Accept-Encoding")
			zr, err := gzip.NewReader(rec.Body)
			require.NoError(t, err)
			got, err := io.ReadAll(zr)
			require.NoError(t, err)
			assert.Equal(t, page, string(got))
			assert.Less(t, rec.Body.Len(), len(page))
		})
	}
}

func TestCompression_SkipsHead(t *testing.T) {
	h := Compression(CompressionConfig{})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest(http.MethodHead, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Content-Encoding"))
}

func TestAcceptsGzip(t *testing.T) {
	tests := map[string]bool{
		"":                  false,
		"gzip":              true,
		"GZIP":              true,
		"br, gzip;q=0.5":    true,
		"gzip;q=0":          false,
		"deflate, identity": false,
		"gzip;q=abc":        false,
	}
	for header, want := range tests {
		assert.Equal(t, want, acceptsGzip(header), "Accept-Encoding %q", header)
	}
}
