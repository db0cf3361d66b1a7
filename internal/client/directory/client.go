// Package directory exposes the user directory operations of one org. Every
// call first resolves the org id of the session; when that fails the call
// fails with the resolution error and nothing is sent to the backend.
package directory

import (
	"context"
	"errors"
	"fmt"

	"github.com/groupe-sii/lumext/internal/client/models"
	"github.com/groupe-sii/lumext/internal/client/orgctx"
	"github.com/groupe-sii/lumext/internal/common"
	"github.com/groupe-sii/lumext/internal/logging"
)

// ErrEmptyLogin is returned by operations addressing a user without a login.
var ErrEmptyLogin = errors.New("login must not be empty")

// Client is the set of directory operations the workflow relies on.
type Client interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, login string) (models.User, error)
	CreateUser(ctx context.Context, payload models.Payload) (models.User, error)
	UpdateUser(ctx context.Context, login string, patch models.Payload) (models.User, error)
	DeleteUser(ctx context.Context, login string) (models.DeleteResult, error)
}

// API is the transport used by the directory client. *restc.Client
// satisfies it.
type API interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, in, out any) error
	Put(ctx context.Context, path string, in, out any) error
	Delete(ctx context.Context, path string, out any) error
}

type client struct {
	api      API
	resolver orgctx.Resolver
	log      logging.Logger
}

// NewClient returns a directory Client scoped by the org resolver.
func NewClient(api API, resolver orgctx.Resolver, log logging.Logger) Client {
	if log == nil {
		log = logging.Nop()
	}
	return &client{api: api, resolver: resolver, log: log}
}

func (c *client) ListUsers(ctx context.Context) ([]models.User, error) {
	orgID, err := c.resolver.ResolveOrgID(ctx)
	if err != nil {
		return nil, err
	}

	var users []models.User
	if err := c.api.Get(ctx, common.UsersPath(orgID), &users); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	if users == nil {
		users = []models.User{}
	}
	c.log.Debug(ctx, "users listed", "org_id", orgID, "count", len(users))
	return users, nil
}

func (c *client) GetUser(ctx context.Context, login string) (models.User, error) {
	if login == "" {
		return models.User{}, ErrEmptyLogin
	}
	orgID, err := c.resolver.ResolveOrgID(ctx)
	if err != nil {
		return models.User{}, err
	}

	var u models.User
	if err := c.api.Get(ctx, common.UserPath(orgID, login), &u); err != nil {
		return models.User{}, fmt.Errorf("get user %s: %w", login, err)
	}
	return u, nil
}

func (c *client) CreateUser(ctx context.Context, payload models.Payload) (models.User, error) {
	orgID, err := c.resolver.ResolveOrgID(ctx)
	if err != nil {
		return models.User{}, err
	}

	var u models.User
	if err := c.api.Post(ctx, common.UsersPath(orgID), payload, &u); err != nil {
		return models.User{}, fmt.Errorf("create user: %w", err)
	}
	c.log.Debug(ctx, "user created", "org_id", orgID, "login", u.Login)
	return u, nil
}

func (c *client) UpdateUser(ctx context.Context, login string, patch models.Payload) (models.User, error) {
	if login == "" {
		return models.User{}, ErrEmptyLogin
	}
	orgID, err := c.resolver.ResolveOrgID(ctx)
	if err != nil {
		return models.User{}, err
	}

	var u models.User
	if err := c.api.Put(ctx, common.UserPath(orgID, login), patch, &u); err != nil {
		return models.User{}, fmt.Errorf("update user %s: %w", login, err)
	}
	c.log.Debug(ctx, "user updated", "org_id", orgID, "login", login)
	return u, nil
}

func (c *client) DeleteUser(ctx context.Context, login string) (models.DeleteResult, error) {
	if login == "" {
		return models.DeleteResult{}, ErrEmptyLogin
	}
	orgID, err := c.resolver.ResolveOrgID(ctx)
	if err != nil {
		return models.DeleteResult{}, err
	}

	var res models.DeleteResult
	if err := c.api.Delete(ctx, common.UserPath(orgID, login), &res); err != nil {
		return models.DeleteResult{}, fmt.Errorf("delete user %s: %w", login, err)
	}
	c.log.Debug(ctx, "user deleted", "org_id", orgID, "login", login)
	return res, nil
}
