package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/groupe-sii/lumext/internal/client/config"
	"github.com/groupe-sii/lumext/internal/client/directory"
	"github.com/groupe-sii/lumext/internal/client/orgctx"
	"github.com/groupe-sii/lumext/internal/client/restc"
	"github.com/groupe-sii/lumext/internal/client/session"
	"github.com/groupe-sii/lumext/internal/client/workflow"
	"github.com/groupe-sii/lumext/internal/logging"
)

// ErrNoCredentials is returned when neither a token nor a user and org are
// configured.
var ErrNoCredentials = errors.New("no session token and no user@org to log in with")

// controller is the part of *workflow.Controller the commands use.
type controller interface {
	State() workflow.State
	Refresh(ctx context.Context) error
	Select(login string) error
	OpenAdd() error
	OpenEdit() error
	OpenPassword() error
	Cancel() error
	Fields() ([]string, error)
	SetField(field, value string) error
	Field(field string) (string, error)
	FieldErrors() (map[string]string, error)
	GeneratePassword() (string, error)
	Submit(ctx context.Context) error
	Delete(ctx context.Context) error
}

type App struct {
	config *config.Config
	sess   session.SessionContext
	ctrl   controller
	log    logging.Logger
	reader *bufio.Reader
	out    io.Writer
}

// NewApp opens the portal session described by c and wires the directory
// stack on top of it.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	a := &App{config: c, log: log, reader: bufio.NewReader(os.Stdin), out: os.Stdout}

	hc := &http.Client{}

	token := c.Token
	if token == "" {
		var err error
		if token, err = a.login(ctx, hc); err != nil {
			return nil, err
		}
	}
	a.sess = session.New(token, c.ServerURL, c.EffectiveTenantPath())

	api, err := restc.New(a.sess,
		restc.WithHTTPClient(hc),
		restc.WithTimeout(c.RequestTimeout),
		restc.WithHeader("User-Agent", "lumext-cli"),
		restc.WithLogger(log),
	)
	if err != nil {
		return nil, err
	}

	resolver := orgctx.NewResolver(api, a.sess, log)
	dir := directory.NewClient(api, resolver, log)
	a.ctrl = workflow.NewController(dir, log)
	return a, nil
}

func (a *App) login(ctx context.Context, hc *http.Client) (string, error) {
	if a.config.User == "" || a.config.Org == "" {
		return "", ErrNoCredentials
	}
	pw, err := GetPassword(fmt.Sprintf("Password for %s@%s", a.config.User, a.config.Org), a.out)
	if err != nil {
		return "", err
	}
	defer wipe(pw)

	if a.config.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.config.RequestTimeout)
		defer cancel()
	}
	token, err := session.Login(ctx, hc, a.config.ServerURL, a.config.User, a.config.Org, pw)
	if err != nil {
		return "", err
	}
	a.log.Info(ctx, "session opened", "user", a.config.User, "org", a.config.Org)
	return token, nil
}

func (a *App) status() string {
	s := a.ctrl.State()
	tenant := a.sess.Tenant()
	if tenant == "" {
		tenant = "?"
	}
	if s.Selected != nil {
		return fmt.Sprintf("(%s %s)", tenant, s.Selected.Login)
	}
	return fmt.Sprintf("(%s)", tenant)
}

// Run loads the user list and serves the REPL until exit or EOF.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "lumext CLI (type 'help' for commands)")
	if err := a.ctrl.Refresh(ctx); err != nil {
		a.report(err)
	}
	runREPL(ctx, a, a.status, a.reader)
}
