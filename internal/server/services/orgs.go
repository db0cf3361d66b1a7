package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/groupe-sii/lumext/internal/common"
	"github.com/groupe-sii/lumext/internal/logging"
	"github.com/groupe-sii/lumext/internal/server/auth"
	"github.com/groupe-sii/lumext/internal/server/models"
	"github.com/groupe-sii/lumext/internal/server/repositories/repomanager"
)

type OrgService struct {
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewOrgService(m repomanager.RepositoryManager, logger logging.Logger) *OrgService {
	return &OrgService{repomanager: m, logger: logger}
}

// EnsureOrgs creates the named orgs that do not exist yet, with random ids.
func (s *OrgService) EnsureOrgs(ctx context.Context, names []string) error {
	return s.repomanager.WithTx(ctx, func(ctx context.Context, r repomanager.Repos) error {
		for _, name := range names {
			_, err := r.Orgs.GetByName(ctx, name)
			if err == nil {
				continue
			}
			if !errors.Is(err, common.ErrorNotFound) {
				return fmt.Errorf("error looking up org %s: %w", name, err)
			}
			org := &models.Org{ID: uuid.NewString(), Name: name}
			if err := r.Orgs.Create(ctx, org); err != nil {
				return fmt.Errorf("error creating org %s: %w", name, err)
			}
			s.logger.Info(ctx, "org created", "org", name, "org_id", org.ID)
		}
		return nil
	})
}

// Visible lists the orgs the principal may see: all of them for system
// sessions, its own org otherwise.
func (s *OrgService) Visible(ctx context.Context, claims *auth.Claims) ([]models.Org, error) {
	repo := s.repomanager.Repos().Orgs
	if claims.System {
		return repo.List(ctx)
	}

	org, err := repo.GetByID(ctx, claims.OrgID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return []models.Org{}, nil
		}
		return nil, err
	}
	return []models.Org{*org}, nil
}

// Require returns a NotFound DomainError when no org has the given id.
func (s *OrgService) Require(ctx context.Context, id string) error {
	if _, err := s.repomanager.Repos().Orgs.GetByID(ctx, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return NewNotFound()
		}
		return err
	}
	return nil
}
