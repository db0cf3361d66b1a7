package httpapi_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/groupe-sii/lumext/internal/client/directory"
	"github.com/groupe-sii/lumext/internal/client/models"
	"github.com/groupe-sii/lumext/internal/client/orgctx"
	"github.com/groupe-sii/lumext/internal/client/restc"
	"github.com/groupe-sii/lumext/internal/client/session"
	"github.com/groupe-sii/lumext/internal/client/workflow"
	"github.com/groupe-sii/lumext/internal/logging"
	"github.com/groupe-sii/lumext/internal/server/config"
	"github.com/groupe-sii/lumext/internal/server/httpapi"
	"github.com/groupe-sii/lumext/internal/server/repositories/repomanager"
	"github.com/groupe-sii/lumext/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func startBackend(t *testing.T) *httptest.Server {
	t.Helper()
	rm := repomanager.NewMemoryRepositoryManager()
	cfg := &config.Config{SecretKey: "e2e", TokenValidity: time.Hour, AdminLogin: "administrator", AdminPassword: "admin-pass"}
	orgs := services.NewOrgService(rm, logging.Nop())
	require.NoError(t, orgs.EnsureOrgs(context.Background(), []string{"acme", "globex"}))

	srv := httptest.NewServer(httpapi.NewRouter(
		services.NewSessionService(rm, cfg, logging.Nop()),
		orgs,
		services.NewDirectoryService(rm, bcrypt.MinCost, logging.Nop()),
		httpapi.Options{},
	))
	t.Cleanup(srv.Close)
	return srv
}

func newController(t *testing.T, srv *httptest.Server, token, path string) *workflow.Controller {
	t.Helper()
	sess := session.New(token, srv.URL, path)
	api, err := restc.New(sess, restc.WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	dir := directory.NewClient(api, orgctx.NewResolver(api, sess, logging.Nop()), logging.Nop())
	return workflow.NewController(dir, logging.Nop())
}

func fill(t *testing.T, c *workflow.Controller, values map[string]string) {
	t.Helper()
	for k, v := range values {
		require.NoError(t, c.SetField(k, v))
	}
}

func TestDirectoryWorkflow_AgainstBackend(t *testing.T) {
	srv := startBackend(t)
	ctx := context.Background()

	token, err := session.Login(ctx, srv.Client(), srv.URL, "administrator", "System", []byte("admin-pass"))
	require.NoError(t, err)
	c := newController(t, srv, token, "/tenant/acme/lumext/user")

	require.NoError(t, c.Refresh(ctx))
	assert.Empty(t, c.Users())

	require.NoError(t, c.OpenAdd())
	fill(t, c, map[string]string{
		models.FieldLogin:           "jdoe123",
		models.FieldDisplayName:     "John Doe",
		models.FieldDescription:     "ops",
		models.FieldPassword:        "Abcdef1!",
		models.FieldPasswordConfirm: "Abcdef1!",
	})
	require.NoError(t, c.Submit(ctx))

	st := c.State()
	assert.Equal(t, workflow.ModalNone, st.Modal)
	assert.Nil(t, st.Selected)
	require.Len(t, st.Users, 1)
	assert.Equal(t, models.User{Login: "jdoe123", DisplayName: "John Doe", Description: "ops"}, st.Users[0])

	require.NoError(t, c.Select("jdoe123"))
	require.NoError(t, c.OpenEdit())
	fill(t, c, map[string]string{models.FieldDisplayName: "Jane Doe", models.FieldDescription: ""})
	require.NoError(t, c.Submit(ctx))
	assert.Equal(t, models.User{Login: "jdoe123", DisplayName: "Jane Doe"}, c.Users()[0])

	require.NoError(t, c.Select("jdoe123"))
	require.NoError(t, c.OpenPassword())
	pw, err := c.GeneratePassword()
	require.NoError(t, err)
	require.NoError(t, c.SetField(models.FieldPasswordConfirm, pw))
	require.NoError(t, c.Submit(ctx))

	userToken, err := session.Login(ctx, srv.Client(), srv.URL, "jdoe123", "acme", []byte(pw))
	require.NoError(t, err, "the generated password must have reached the backend")

	// A tenant session sees only its own org and resolves it the same way.
	tenant := newController(t, srv, userToken, "/tenant/acme/lumext/user")
	require.NoError(t, tenant.Refresh(ctx))
	assert.Len(t, tenant.Users(), 1)

	require.NoError(t, c.Select("jdoe123"))
	require.NoError(t, c.Delete(ctx))
	st = c.State()
	assert.Empty(t, st.Users)
	assert.Nil(t, st.Selected)
	assert.False(t, st.ListLoading)
}

func TestDirectoryWorkflow_BackendRejection(t *testing.T) {
	srv := startBackend(t)
	ctx := context.Background()

	token, err := session.Login(ctx, srv.Client(), srv.URL, "administrator", "System", []byte("admin-pass"))
	require.NoError(t, err)
	c := newController(t, srv, token, "/tenant/acme/lumext/user")

	for i := 0; i < 2; i++ {
		require.NoError(t, c.OpenAdd())
		fill(t, c, map[string]string{
			models.FieldLogin:           "jdoe123",
			models.FieldDisplayName:     "John Doe",
			models.FieldPassword:        "Abcdef1!",
			models.FieldPasswordConfirm: "Abcdef1!",
		})
		err = c.Submit(ctx)
	}

	var reqErr *restc.RequestError
	require.True(t, errors.As(err, &reqErr), "got %v", err)
	assert.Equal(t, "User jdoe123 already exists.", reqErr.Message)
	assert.Equal(t, workflow.ModalNone, c.State().Modal)
	assert.Len(t, c.Users(), 1)
}

func TestResolution_ForeignTenant(t *testing.T) {
	srv := startBackend(t)
	ctx := context.Background()

	admin, err := session.Login(ctx, srv.Client(), srv.URL, "administrator", "System", []byte("admin-pass"))
	require.NoError(t, err)

	c := newController(t, srv, admin, "/tenant/initech/lumext/user")
	err = c.Refresh(ctx)
	require.ErrorIs(t, err, orgctx.ErrResolution)
	require.ErrorIs(t, err, orgctx.ErrOrgNotFound)

	_, err = session.Login(ctx, srv.Client(), srv.URL, "administrator", "System", []byte("wrong"))
	require.ErrorIs(t, err, session.ErrLoginFailed)
}
