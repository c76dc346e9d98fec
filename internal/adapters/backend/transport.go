// Package backend talks to the hosted backend's REST data API (PostgREST dialect).
//
// Two client variants share one transport: StandardClient carries a per-user token so
// row-level security applies, PrivilegedClient carries the service-role key and sees every row.
package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	apperrors "github.com/target/gradebook/internal/errors"
	"github.com/target/gradebook/internal/ports"
)

const (
	restPath = "/rest/v1/"
	// maxErrorBody bounds how much of an error response is read.
	maxErrorBody = 64 << 10
)

// authorizer sets credentials on an outgoing request.
type authorizer func(req *http.Request) error

// transport performs PostgREST reads. It holds no session state.
type transport struct {
	baseURL string
	client  *http.Client
	auth    authorizer
}

func (t *transport) collectionURL(collection string, params url.Values) (string, error) {
	if collection == "" || strings.ContainsAny(collection, "/?#") {
		return "", apperrors.Validation(fmt.Sprintf("invalid collection name %q", collection))
	}
	u := t.baseURL + restPath + collection
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	return u, nil
}

// Select implements ports.RowReader.
func (t *transport) Select(ctx context.Context, q ports.SelectQuery, dest any) error {
	params := url.Values{}
	fields := "*"
	if len(q.Fields) > 0 {
		fields = strings.Join(q.Fields, ",")
	}
	params.Set("select", fields)
	if q.OrderBy != "" {
		order := q.OrderBy
		if !strings.Contains(order, ".") {
			order += ".asc"
		}
		params.Set("order", order)
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}

	target, err := t.collectionURL(q.Collection, params)
	if err != nil {
		return err
	}
	resp, err := t.do(ctx, http.MethodGet, target, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decodeFailure(resp, "select "+q.Collection)
	}
	if decodeErr := json.NewDecoder(resp.Body).Decode(dest); decodeErr != nil {
		return apperrors.Upstream("decode backend rows", fmt.Errorf("select %s: %w", q.Collection, decodeErr))
	}
	return nil
}

// Count implements ports.RowReader using an exact count on a HEAD request.
func (t *transport) Count(ctx context.Context, collection string) (int64, error) {
	params := url.Values{}
	params.Set("select", "*")
	target, err := t.collectionURL(collection, params)
	if err != nil {
		return 0, err
	}

	resp, err := t.do(ctx, http.MethodHead, target, http.Header{"Prefer": []string{"count=exact"}})
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		return 0, decodeFailure(resp, "count "+collection)
	}
	n, err := parseContentRangeTotal(resp.Header.Get("Content-Range"))
	if err != nil {
		return 0, apperrors.Upstream("read backend row count", fmt.Errorf("count %s: %w", collection, err))
	}
	return n, nil
}

func (t *transport) do(ctx context.Context, method, target string, extra http.Header) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build backend request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	for k, vs := range extra {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if authErr := t.auth(req); authErr != nil {
		return nil, authErr
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, apperrors.Upstream("backend request failed", fmt.Errorf("%s %s: %w", method, req.URL.Path, err))
	}
	return resp, nil
}

// parseContentRangeTotal reads N from "0-24/N" or "*/N".
func parseContentRangeTotal(h string) (int64, error) {
	i := strings.LastIndexByte(h, '/')
	if i < 0 || i == len(h)-1 {
		return 0, fmt.Errorf("malformed Content-Range %q", h)
	}
	total := h[i+1:]
	if total == "*" {
		return 0, fmt.Errorf("Content-Range %q has no exact count", h)
	}
	n, err := strconv.ParseInt(total, 10, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("malformed Content-Range %q", h)
	}
	return n, nil
}

// decodeFailure turns a non-success response into an AppError. PostgREST error bodies
// look like {"code":"42501","message":"permission denied for table users",...}.
func decodeFailure(resp *http.Response, op string) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	code := gjson.GetBytes(body, "code").String()
	msg := gjson.GetBytes(body, "message").String()
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	cause := fmt.Errorf("%s: status %d: %s", op, resp.StatusCode, msg)

	if isSQLState(code) {
		return apperrors.FromSQLState(code, msg, cause)
	}
	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return apperrors.Permission("The backend rejected the credentials.", cause)
	default:
		return apperrors.Upstream("Backend request failed.", cause)
	}
}

// isSQLState reports whether code is a five character Postgres SQLSTATE rather than a
// PostgREST "PGRSTnnn" code.
func isSQLState(code string) bool {
	return len(code) == 5 && !strings.HasPrefix(code, "PGRST")
}
