package repository

import (
	"context"
	"errors"

	"github.com/gmelashvili/paraglide/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CompanyRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Company, error)
}

type PGCompanyRepository struct {
	db *pgxpool.Pool
}

func NewCompanyRepository(db *pgxpool.Pool) CompanyRepository {
	return &PGCompanyRepository{db: db}
}

// GetByID returns (nil, nil) for unknown companies so callers can downgrade
// stale references instead of failing.
func (r *PGCompanyRepository) GetByID(ctx context.Context, id int64) (*domain.Company, error) {
	row := r.db.QueryRow(ctx, `SELECT id, name FROM companies WHERE id=$1`, id)
	var c domain.Company
	if err := row.Scan(&c.ID, &c.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

var _ CompanyRepository = (*PGCompanyRepository)(nil)
