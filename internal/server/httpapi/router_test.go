package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/groupe-sii/lumext/internal/common"
	"github.com/groupe-sii/lumext/internal/logging"
	"github.com/groupe-sii/lumext/internal/server/auth"
	"github.com/groupe-sii/lumext/internal/server/config"
	"github.com/groupe-sii/lumext/internal/server/repositories/repomanager"
	"github.com/groupe-sii/lumext/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const secret = "test-secret"

type testEnv struct {
	srv    *httptest.Server
	acme   string
	globex string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()
	rm := repomanager.NewMemoryRepositoryManager()
	cfg := &config.Config{SecretKey: secret, TokenValidity: time.Hour, AdminLogin: "administrator", AdminPassword: "admin-pass"}

	orgs := services.NewOrgService(rm, logging.Nop())
	require.NoError(t, orgs.EnsureOrgs(ctx, []string{"acme", "globex"}))

	h := NewRouter(
		services.NewSessionService(rm, cfg, logging.Nop()),
		orgs,
		services.NewDirectoryService(rm, bcrypt.MinCost, logging.Nop()),
		Options{BaseURL: "https://portal.example"},
	)
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	env := &testEnv{srv: srv}
	for name, dst := range map[string]*string{"acme": &env.acme, "globex": &env.globex} {
		o, err := rm.Repos().Orgs.GetByName(ctx, name)
		require.NoError(t, err)
		*dst = o.ID
	}
	return env
}

func (e *testEnv) token(t *testing.T, system bool, orgID string) string {
	t.Helper()
	tok, err := auth.GenerateToken("someone", orgID, system, []byte(secret), time.Hour)
	require.NoError(t, err)
	return tok
}

func (e *testEnv) do(t *testing.T, method, path, token, body string) (*http.Response, []byte) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, e.srv.URL+path, rd)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set(common.AuthHeaderName, token)
	}
	resp, err := e.srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, b
}

func errorMessage(t *testing.T, b []byte) string {
	t.Helper()
	var eb errorBody
	require.NoError(t, json.Unmarshal(b, &eb))
	return eb.ErrorMessage
}

func TestSessions(t *testing.T) {
	env := newTestEnv(t)

	req, err := http.NewRequest(http.MethodPost, env.srv.URL+common.SessionsPath, nil)
	require.NoError(t, err)
	req.SetBasicAuth("administrator@System", "admin-pass")
	resp, err := env.srv.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(common.AuthHeaderName))
	assert.NotEmpty(t, resp.Header.Get(common.RequestIDHeaderName))

	req, _ = http.NewRequest(http.MethodPost, env.srv.URL+common.SessionsPath, nil)
	req.SetBasicAuth("administrator@System", "wrong")
	resp, err = env.srv.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, b := env.do(t, http.MethodPost, common.SessionsPath, "", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Missing credentials.", errorMessage(t, b))
}

func TestListOrgs(t *testing.T) {
	env := newTestEnv(t)

	resp, b := env.do(t, http.MethodGet, common.OrgsPath, env.token(t, true, ""), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, common.MediaType, resp.Header.Get("Content-Type"))

	var list orgList
	require.NoError(t, json.Unmarshal(b, &list))
	require.Len(t, list.Org, 2)
	assert.Equal(t, orgRef{Name: "acme", Href: "https://portal.example/api/org/" + env.acme}, list.Org[0])

	_, b = env.do(t, http.MethodGet, common.OrgsPath, env.token(t, false, env.globex), "")
	require.NoError(t, json.Unmarshal(b, &list))
	require.Len(t, list.Org, 1)
	assert.Equal(t, "globex", list.Org[0].Name)
}

func TestAuthorization(t *testing.T) {
	env := newTestEnv(t)
	path := common.UsersPath(env.acme)

	resp, b := env.do(t, http.MethodGet, path, "", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Missing session token.", errorMessage(t, b))

	resp, _ = env.do(t, http.MethodGet, path, "garbage", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, b = env.do(t, http.MethodGet, path, env.token(t, false, env.globex), "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Access denied.", errorMessage(t, b))

	resp, b = env.do(t, http.MethodGet, common.UsersPath("missing"), env.token(t, true, ""), "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Not found", errorMessage(t, b))
}

func TestUserCRUD(t *testing.T) {
	env := newTestEnv(t)
	tok := env.token(t, false, env.acme)
	users := common.UsersPath(env.acme)
	user := common.UserPath(env.acme, "jdoe123")

	resp, b := env.do(t, http.MethodGet, users, tok, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, string(b))

	resp, b = env.do(t, http.MethodPost, users, tok, `{"login":"jdoe123","display_name":"John Doe","password":"Abcdef1!","passwordConfirm":"Abcdef1!"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(b))
	assert.JSONEq(t, `{"login":"jdoe123","display_name":"John Doe","description":""}`, string(b))

	resp, b = env.do(t, http.MethodPost, users, tok, `{"login":"jdoe123","display_name":"John Doe","password":"Abcdef1!","passwordConfirm":"Abcdef1!"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "User jdoe123 already exists.", errorMessage(t, b))

	resp, b = env.do(t, http.MethodPost, users, tok, `{"login":"other01"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Missing mandatory attribute password for user creation.", errorMessage(t, b))

	resp, b = env.do(t, http.MethodPost, users, tok, `{not json`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid request body.", errorMessage(t, b))

	resp, b = env.do(t, http.MethodPut, user, tok, `{"description":"ops team"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"login":"jdoe123","display_name":"John Doe","description":"ops team"}`, string(b))

	resp, b = env.do(t, http.MethodGet, user, tok, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(b), "ops team")

	resp, b = env.do(t, http.MethodPut, common.UserPath(env.acme, "ghost00"), tok, `{"display_name":"Ghost"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Not found", errorMessage(t, b))

	resp, b = env.do(t, http.MethodDelete, user, tok, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"success"}`, string(b))

	resp, _ = env.do(t, http.MethodDelete, user, tok, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = env.do(t, http.MethodGet, user, tok, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestFallbackHandlers(t *testing.T) {
	env := newTestEnv(t)

	resp, b := env.do(t, http.MethodGet, "/nowhere", "", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Not found", errorMessage(t, b))

	resp, b = env.do(t, http.MethodGet, common.SessionsPath, "", "")
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	assert.Equal(t, "Method Not Allowed", errorMessage(t, b))
}

func TestMetrics(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodGet, common.OrgsPath, env.token(t, true, ""), "")

	resp, b := env.do(t, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(b), `lumext_http_requests_total{method="GET",route="/api/org",status="200"} 1`)
}

func TestBaseURL_FollowsHost(t *testing.T) {
	rm := repomanager.NewMemoryRepositoryManager()
	orgs := services.NewOrgService(rm, logging.Nop())
	require.NoError(t, orgs.EnsureOrgs(context.Background(), []string{"acme"}))
	cfg := &config.Config{SecretKey: secret, TokenValidity: time.Hour}
	h := NewRouter(services.NewSessionService(rm, cfg, logging.Nop()), orgs, services.NewDirectoryService(rm, bcrypt.MinCost, logging.Nop()), Options{})

	tok, err := auth.GenerateToken("root", "", true, []byte(secret), time.Hour)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "http://portal.local:8443/api/org", nil)
	req.Header.Set(common.AuthHeaderName, tok)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var list orgList
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Org, 1)
	assert.True(t, strings.HasPrefix(list.Org[0].Href, "http://portal.local:8443/api/org/"))
}
