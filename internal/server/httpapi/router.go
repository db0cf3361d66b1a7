// Package httpapi exposes the development directory backend over the
// portal REST surface: sessions, org listing and per-org user CRUD.
package httpapi

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/groupe-sii/lumext/internal/common"
	"github.com/groupe-sii/lumext/internal/logging"
	"github.com/groupe-sii/lumext/internal/server/auth"
	"github.com/groupe-sii/lumext/internal/server/models"
	"github.com/groupe-sii/lumext/internal/server/services"
	"github.com/prometheus/client_golang/prometheus"
)

type Sessions interface {
	Login(ctx context.Context, login, orgName, password string) (string, error)
	Authenticate(token string) (*auth.Claims, error)
}

type Orgs interface {
	Visible(ctx context.Context, claims *auth.Claims) ([]models.Org, error)
	Require(ctx context.Context, id string) error
}

type Directory interface {
	List(ctx context.Context, orgID string) ([]services.UserView, error)
	Get(ctx context.Context, orgID, login string) (*services.UserView, error)
	Create(ctx context.Context, orgID string, in services.UserInput) (*services.UserView, error)
	Update(ctx context.Context, orgID, login string, in services.UserInput) (*services.UserView, error)
	Delete(ctx context.Context, orgID, login string) error
}

// Options tunes the router. A nil Registry gets a private one; an empty
// BaseURL makes org hrefs follow the request Host.
type Options struct {
	BaseURL  string
	Logger   logging.Logger
	Registry *prometheus.Registry
}

type handler struct {
	sessions Sessions
	orgs     Orgs
	dir      Directory
	baseURL  string
	logger   logging.Logger
	metrics  *metrics
}

func NewRouter(sessions Sessions, orgs Orgs, dir Directory, opts Options) http.Handler {
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}
	h := &handler{
		sessions: sessions,
		orgs:     orgs,
		dir:      dir,
		baseURL:  opts.BaseURL,
		logger:   opts.Logger,
		metrics:  newMetrics(opts.Registry),
	}

	r := mux.NewRouter()
	r.Use(h.observe)
	r.NotFoundHandler = h.observe(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	}))
	r.MethodNotAllowedHandler = h.observe(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	}))

	r.Handle("/metrics", h.metrics.handler).Methods(http.MethodGet)
	r.HandleFunc(common.SessionsPath, h.login).Methods(http.MethodPost)

	api := r.PathPrefix(common.OrgsPath).Subrouter()
	api.Use(h.authenticate)
	api.HandleFunc("", h.listOrgs).Methods(http.MethodGet)

	users := api.PathPrefix("/{orgId}/lumext/user").Subrouter()
	users.Use(h.scopeOrg)
	users.HandleFunc("", h.listUsers).Methods(http.MethodGet)
	users.HandleFunc("", h.createUser).Methods(http.MethodPost)
	users.HandleFunc("/{login}", h.getUser).Methods(http.MethodGet)
	users.HandleFunc("/{login}", h.updateUser).Methods(http.MethodPut)
	users.HandleFunc("/{login}", h.deleteUser).Methods(http.MethodDelete)

	return r
}
