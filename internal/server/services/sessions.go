package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"github.com/groupe-sii/lumext/internal/common"
	"github.com/groupe-sii/lumext/internal/logging"
	"github.com/groupe-sii/lumext/internal/server/auth"
	"github.com/groupe-sii/lumext/internal/server/config"
	"github.com/groupe-sii/lumext/internal/server/repositories/repomanager"
)

const errBadCredentials = "Invalid credentials."

type SessionService struct {
	repomanager   repomanager.RepositoryManager
	jwtSecret     []byte
	validity      time.Duration
	adminLogin    string
	adminPassword string
	logger        logging.Logger
}

func NewSessionService(m repomanager.RepositoryManager, cfg *config.Config, logger logging.Logger) *SessionService {
	return &SessionService{
		repomanager:   m,
		jwtSecret:     []byte(cfg.SecretKey),
		validity:      cfg.TokenValidity,
		adminLogin:    cfg.AdminLogin,
		adminPassword: cfg.AdminPassword,
		logger:        logger,
	}
}

// Login opens a session. The configured administrator gets a system
// session whatever org is named; other logins must be directory users of
// orgName.
func (s *SessionService) Login(ctx context.Context, login, orgName, password string) (string, error) {
	if s.adminLogin != "" && login == s.adminLogin {
		if subtle.ConstantTimeCompare([]byte(password), []byte(s.adminPassword)) != 1 {
			return "", NewUnauthorized(errBadCredentials)
		}
		s.logger.Info(ctx, "system session opened", "login", login)
		return s.issue(login, "", true)
	}

	r := s.repomanager.Repos()
	org, err := r.Orgs.GetByName(ctx, orgName)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", NewUnauthorized(errBadCredentials)
		}
		return "", NewInternalError(err)
	}

	user, err := r.Users.Get(ctx, org.ID, login)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", NewUnauthorized(errBadCredentials)
		}
		return "", NewInternalError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return "", NewUnauthorized(errBadCredentials)
	}

	s.logger.Info(ctx, "tenant session opened", "login", login, "org", orgName)
	return s.issue(login, org.ID, false)
}

func (s *SessionService) issue(login, orgID string, system bool) (string, error) {
	token, err := auth.GenerateToken(login, orgID, system, s.jwtSecret, s.validity)
	if err != nil {
		return "", NewInternalError(err)
	}
	return token, nil
}

// Authenticate checks a session token.
func (s *SessionService) Authenticate(token string) (*auth.Claims, error) {
	if token == "" {
		return nil, NewUnauthorized("Missing session token.")
	}
	claims, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		return nil, NewUnauthorized("Invalid session token.")
	}
	return claims, nil
}
