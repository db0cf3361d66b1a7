package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/groupe-sii/lumext/internal/common"
	"github.com/groupe-sii/lumext/internal/dbx"
	"github.com/groupe-sii/lumext/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context, orgID string) ([]models.User, error) {
	query :=
		`SELECT id, org_id, login, display_name, description, password_hash, created_at FROM users
		 WHERE org_id = $1
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.OrgID, &u.Login, &u.DisplayName, &u.Description, &u.PasswordHash, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return users, nil
}

func (r *PostgresRepository) Get(ctx context.Context, orgID, login string) (*models.User, error) {
	query :=
		`SELECT id, org_id, login, display_name, description, password_hash, created_at FROM users
		 WHERE org_id = $1 AND login = $2
		 `

	u := &models.User{}
	err := r.db.QueryRowContext(ctx, query, orgID, login).
		Scan(&u.ID, &u.OrgID, &u.Login, &u.DisplayName, &u.Description, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query :=
		`INSERT INTO users (org_id, login, display_name, description, password_hash)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.OrgID, user.Login, user.DisplayName, user.Description, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

func (r *PostgresRepository) Update(ctx context.Context, orgID, login string, user *models.User) (*models.User, error) {
	query :=
		`UPDATE users SET login = $1, display_name = $2, description = $3, password_hash = $4
		 WHERE org_id = $5 AND login = $6
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.Login, user.DisplayName, user.Description, user.PasswordHash, orgID, login).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrorNotFound
		case dbx.IsUniqueViolation(err):
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	user.OrgID = orgID
	return user, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, orgID, login string) error {
	query := `DELETE FROM users WHERE org_id = $1 AND login = $2`

	res, err := r.db.ExecContext(ctx, query, orgID, login)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
