package storage

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/XJIeI5/calculator/internal/config"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "store.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, CreateTables(context.Background(), db))

	cfg := config.Default()
	cfg.BcryptCost = bcrypt.MinCost
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	srv := httptest.NewServer(newStorage(cfg, db, logger))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url, token string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func login(t *testing.T, srv *httptest.Server, name string) string {
	t.Helper()
	user := registerUser{Login: name, Password: "secret"}
	resp := do(t, "POST", srv.URL+"/register", "", user)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = do(t, "POST", srv.URL+"/login", "", user)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var token string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&token))
	return token
}

func computeExpr(t *testing.T, srv *httptest.Server, token string, req computeRequest) (int, computeResponse) {
	t.Helper()
	resp := do(t, "POST", srv.URL+"/compute", token, req)
	var res computeResponse
	if resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	}
	return resp.StatusCode, res
}

func TestRegisterAndLogin(t *testing.T) {
	srv := newTestServer(t)
	login(t, srv, "alice")

	resp := do(t, "POST", srv.URL+"/register", "", registerUser{Login: "alice", Password: "x"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = do(t, "POST", srv.URL+"/login", "", registerUser{Login: "alice", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = do(t, "POST", srv.URL+"/login", "", registerUser{Login: "bob", Password: "secret"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestComputeRequiresToken(t *testing.T) {
	srv := newTestServer(t)

	code, _ := computeExpr(t, srv, "", computeRequest{Value: "+ 2 3"})
	assert.Equal(t, http.StatusUnauthorized, code)
	code, _ = computeExpr(t, srv, "garbage", computeRequest{Value: "+ 2 3"})
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestCompute(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv, "alice")

	code, res := computeExpr(t, srv, token, computeRequest{Value: "+ 2 3"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "5", res.Result)

	code, res = computeExpr(t, srv, token, computeRequest{Value: "+ 2+3i 3+2i", Domain: "complex"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "5+5i", res.Result)

	code, res = computeExpr(t, srv, token, computeRequest{Value: "/ 2+3i 0+0i", Domain: "complex"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "+Inf+Infi", res.Result)

	code, res = computeExpr(t, srv, token, computeRequest{Value: "2 + 2 * 2", Infix: true})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "6", res.Result)
}

func TestComputeErrors(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv, "alice")

	for _, req := range []computeRequest{
		{Value: ""},
		{Value: "anime"},
		{Value: "+ 2"},
		{Value: "ln 100+5i", Domain: "complex"},
		{Value: "(2 + 2", Infix: true},
		{Value: "+ 2 3", Domain: "quaternion"},
	} {
		code, _ := computeExpr(t, srv, token, req)
		assert.Equal(t, http.StatusBadRequest, code, req.Value)
	}
}

func TestGetResultIsPerUser(t *testing.T) {
	srv := newTestServer(t)
	alice := login(t, srv, "alice")
	bob := login(t, srv, "bob")

	_, res := computeExpr(t, srv, alice, computeRequest{Value: "* 6 7"})

	resp := do(t, "GET", srv.URL+"/get_result?id="+strconv.FormatInt(res.Id, 10), alice, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var rec record
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rec))
	assert.Equal(t, "* 6 7", rec.Heading)
	assert.Equal(t, "42", rec.Contents)
	assert.Equal(t, realDomain, rec.Domain)

	resp = do(t, "GET", srv.URL+"/get_result?id="+strconv.FormatInt(res.Id, 10), bob, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = do(t, "GET", srv.URL+"/get_result?id=abc", alice, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHistory(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv, "alice")

	computeExpr(t, srv, token, computeRequest{Value: "+ 2 3"})
	computeExpr(t, srv, token, computeRequest{Value: "cos PI"})
	computeExpr(t, srv, token, computeRequest{Value: "sin PI", Domain: "complex"})

	history := func(query url.Values) []record {
		resp := do(t, "GET", srv.URL+"/history?"+query.Encode(), token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var recs []record
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&recs))
		return recs
	}

	assert.Len(t, history(url.Values{}), 3)

	recs := history(url.Values{"keyword": {"PI"}})
	require.Len(t, recs, 2)
	assert.Equal(t, "cos PI", recs[0].Heading)
	assert.Equal(t, "-1", recs[0].Contents)
	assert.Equal(t, complexDomain, recs[1].Domain)

	future := time.Now().Add(time.Hour).Format(time.RFC3339)
	assert.Empty(t, history(url.Values{"after": {future}}))
	assert.Len(t, history(url.Values{"before": {future}}), 3)

	resp := do(t, "GET", srv.URL+"/history?after=yesterday", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestInsertOperation(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv, "alice")

	code, _ := computeExpr(t, srv, token, computeRequest{Value: "anime"})
	require.Equal(t, http.StatusBadRequest, code)

	resp := do(t, "POST", srv.URL+"/operations", token, operationRequest{Name: "anime", Value: "666.666"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	code, res := computeExpr(t, srv, token, computeRequest{Value: "anime"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "666.666", res.Result)

	code, res = computeExpr(t, srv, token, computeRequest{Value: "+ anime 0+1i", Domain: "complex"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "666.666+1i", res.Result)

	resp = do(t, "POST", srv.URL+"/operations", token, operationRequest{Name: "anime", Value: "1"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp = do(t, "POST", srv.URL+"/operations", token, operationRequest{Name: "0.67", Value: "0.66"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp = do(t, "POST", srv.URL+"/operations", token, operationRequest{Name: "sqrt", Value: "1", Domain: "complex"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = do(t, "POST", srv.URL+"/operations", token, operationRequest{Name: "j", Value: "0+1i", Domain: "complex"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	code, res = computeExpr(t, srv, token, computeRequest{Value: "* j j", Domain: "complex"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "-1+0i", res.Result)
}

func TestInsertRealComplexLiteral(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv, "alice")

	resp := do(t, "POST", srv.URL+"/operations", token, operationRequest{Name: "2i", Value: "42"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp = do(t, "POST", srv.URL+"/operations", token, operationRequest{Name: "1-1i", Value: "42"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	code, res := computeExpr(t, srv, token, computeRequest{Value: "2i", Domain: "complex"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "0+2i", res.Result)
}

func TestListOperations(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, "GET", srv.URL+"/operations?domain=complex", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var names []string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&names))
	assert.Equal(t, []string{"*", "+", "-", "/", "cos", "sin"}, names)

	resp = do(t, "GET", srv.URL+"/operations?domain=octonion", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMetrics(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv, "alice")
	computeExpr(t, srv, token, computeRequest{Value: "+ 2 3"})

	resp := do(t, "GET", srv.URL+"/metrics", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "calculator_compute_total"))
}

func TestGetServerAddr(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, ":8080", GetServer(cfg, nil, slog.Default()).Addr)

	cfg.Host = "http://10.0.0.1"
	cfg.Port = 9000
	assert.Equal(t, "10.0.0.1:9000", GetServer(cfg, nil, slog.Default()).Addr)
}
