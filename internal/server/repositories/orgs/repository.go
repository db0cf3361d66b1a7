// Package orgs stores the tenant organizations known to the backend.
package orgs

import (
	"context"

	"github.com/groupe-sii/lumext/internal/server/models"
)

type Repository interface {
	// List returns every org ordered by name.
	List(ctx context.Context) ([]models.Org, error)
	GetByID(ctx context.Context, id string) (*models.Org, error)
	GetByName(ctx context.Context, name string) (*models.Org, error)
	Create(ctx context.Context, org *models.Org) error
}
