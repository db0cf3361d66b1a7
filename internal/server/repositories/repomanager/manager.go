// Package repomanager vends the org and user repositories for one storage
// backend and runs schema migrations where the backend needs them.
package repomanager

import (
	"context"

	"github.com/groupe-sii/lumext/internal/server/repositories/orgs"
	"github.com/groupe-sii/lumext/internal/server/repositories/users"
)

// Repos is the set of repositories bound to one handle, either the pool or a
// transaction.
type Repos struct {
	Orgs  orgs.Repository
	Users users.Repository
}

type RepositoryManager interface {
	Repos() Repos
	// WithTx runs fn with repositories bound to a single transaction.
	WithTx(ctx context.Context, fn func(ctx context.Context, r Repos) error) error
	RunMigrations(ctx context.Context) error
	Close() error
}
