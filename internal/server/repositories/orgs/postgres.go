package orgs

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

func (r *PostgresRepository) List(ctx context.Context) ([]models.Org, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM orgs ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := make([]models.Org, 0)
	for rows.Next() {
		var o models.Org
		if err := rows.Scan(&o.ID, &o.Name); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) get(ctx context.Context, query string, arg string) (*models.Org, error) {
	o := &models.Org{}
	if err := r.db.QueryRowContext(ctx, query, arg).Scan(&o.ID, &o.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return o, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Org, error) {
	return r.get(ctx, `SELECT id, name FROM orgs WHERE id = $1`, id)
}

func (r *PostgresRepository) GetByName(ctx context.Context, name string) (*models.Org, error) {
	return r.get(ctx, `SELECT id, name FROM orgs WHERE name = $1`, name)
}

func (r *PostgresRepository) Create(ctx context.Context, org *models.Org) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO orgs (id, name) VALUES ($1, $2)`, org.ID, org.Name)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return common.ErrorAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
