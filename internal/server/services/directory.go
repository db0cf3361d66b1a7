// Package services holds the business rules of the development directory
// backend: sessions, org visibility and the directory of each org.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/groupe-sii/lumext/internal/common"
	"github.com/groupe-sii/lumext/internal/logging"
	"github.com/groupe-sii/lumext/internal/server/auth"
	"github.com/groupe-sii/lumext/internal/server/models"
	"github.com/groupe-sii/lumext/internal/server/repositories/repomanager"
)

// UserInput is a create or edit request body. A nil field was absent from
// the request, which matters for description on edit.
type UserInput struct {
	Login           *string `json:"login"`
	DisplayName     *string `json:"display_name"`
	Description     *string `json:"description"`
	Password        *string `json:"password"`
	PasswordConfirm *string `json:"passwordConfirm"`
}

// UserView is the public representation of a directory user.
type UserView struct {
	Login       string `json:"login"`
	DisplayName string `json:"display_name"`
	Description string `json:"description"`
}

func viewOf(u *models.User) UserView {
	return UserView{Login: u.Login, DisplayName: u.DisplayName, Description: u.Description}
}

func value(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

type DirectoryService struct {
	repomanager repomanager.RepositoryManager
	bcryptCost  int
	logger      logging.Logger
}

func NewDirectoryService(m repomanager.RepositoryManager, bcryptCost int, logger logging.Logger) *DirectoryService {
	return &DirectoryService{repomanager: m, bcryptCost: bcryptCost, logger: logger}
}

// List returns the users of orgID in creation order.
func (s *DirectoryService) List(ctx context.Context, orgID string) ([]UserView, error) {
	users, err := s.repomanager.Repos().Users.List(ctx, orgID)
	if err != nil {
		return nil, NewInternalError(err)
	}
	out := make([]UserView, 0, len(users))
	for i := range users {
		out = append(out, viewOf(&users[i]))
	}
	return out, nil
}

func (s *DirectoryService) Get(ctx context.Context, orgID, login string) (*UserView, error) {
	u, err := s.repomanager.Repos().Users.Get(ctx, orgID, login)
	if err != nil {
		return nil, ToDomainError(err)
	}
	v := viewOf(u)
	return &v, nil
}

// Create adds a user. login, password and display_name are mandatory and
// passwordConfirm must repeat password.
func (s *DirectoryService) Create(ctx context.Context, orgID string, in UserInput) (*UserView, error) {
	mandatory := []struct {
		name  string
		value string
	}{
		{"login", value(in.Login)},
		{"password", value(in.Password)},
		{"display_name", value(in.DisplayName)},
	}
	for _, m := range mandatory {
		if m.value == "" {
			return nil, NewBadRequest(fmt.Sprintf("Missing mandatory attribute %s for user creation.", m.name))
		}
	}
	login := *in.Login
	exists := NewBadRequest(fmt.Sprintf("User %s already exists.", login))

	var created *models.User
	err := s.repomanager.WithTx(ctx, func(ctx context.Context, r repomanager.Repos) error {
		if _, err := r.Users.Get(ctx, orgID, login); err == nil {
			return exists
		} else if !errors.Is(err, common.ErrorNotFound) {
			return err
		}
		if value(in.Password) != value(in.PasswordConfirm) {
			return NewBadRequest("password and passwordConfirm mismatch.")
		}

		hash, err := auth.HashPassword(*in.Password, s.bcryptCost)
		if err != nil {
			return err
		}
		created, err = r.Users.Create(ctx, &models.User{
			OrgID:        orgID,
			Login:        login,
			DisplayName:  *in.DisplayName,
			Description:  value(in.Description),
			PasswordHash: hash,
		})
		if errors.Is(err, common.ErrorAlreadyExists) {
			return exists
		}
		return err
	})
	if err != nil {
		return nil, ToDomainError(err)
	}

	s.logger.Info(ctx, "user created", "org_id", orgID, "login", login)
	v := viewOf(created)
	return &v, nil
}

// Update edits the user named login. Empty login, display_name and password
// are ignored; a present but empty description clears it.
func (s *DirectoryService) Update(ctx context.Context, orgID, login string, in UserInput) (*UserView, error) {
	var updated *models.User
	err := s.repomanager.WithTx(ctx, func(ctx context.Context, r repomanager.Repos) error {
		u, err := r.Users.Get(ctx, orgID, login)
		if err != nil {
			return err
		}

		if v := value(in.Login); v != "" {
			u.Login = v
		}
		if v := value(in.DisplayName); v != "" {
			u.DisplayName = v
		}
		if in.Description != nil {
			u.Description = *in.Description
		}
		if v := value(in.Password); v != "" {
			if u.PasswordHash, err = auth.HashPassword(v, s.bcryptCost); err != nil {
				return err
			}
		}

		updated, err = r.Users.Update(ctx, orgID, login, u)
		if errors.Is(err, common.ErrorAlreadyExists) {
			return NewBadRequest(fmt.Sprintf("User %s already exists.", u.Login))
		}
		return err
	})
	if err != nil {
		return nil, ToDomainError(err)
	}

	s.logger.Info(ctx, "user edited", "org_id", orgID, "login", login, "new_login", updated.Login)
	v := viewOf(updated)
	return &v, nil
}

func (s *DirectoryService) Delete(ctx context.Context, orgID, login string) error {
	if err := s.repomanager.Repos().Users.Delete(ctx, orgID, login); err != nil {
		return ToDomainError(err)
	}
	s.logger.Info(ctx, "user deleted", "org_id", orgID, "login", login)
	return nil
}
