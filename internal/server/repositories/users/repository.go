// Package users stores the directory accounts of every org.
package users

import (
	"context"

	"github.com/groupe-sii/lumext/internal/server/models"
)

// Repository persists users. Lookups that match nothing return
// common.ErrorNotFound; a login taken within the org yields
// common.ErrorAlreadyExists.
type Repository interface {
	List(ctx context.Context, orgID string) ([]models.User, error)
	Get(ctx context.Context, orgID, login string) (*models.User, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
	// Update replaces the stored fields of the user currently named login.
	Update(ctx context.Context, orgID, login string, user *models.User) (*models.User, error)
	Delete(ctx context.Context, orgID, login string) error
}
