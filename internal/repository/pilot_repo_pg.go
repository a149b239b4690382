package repository

import (
	"context"
	"errors"

	"github.com/gmelashvili/paraglide/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PilotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Pilot, error)
}

type PGPilotRepository struct {
	db *pgxpool.Pool
}

func NewPilotRepository(db *pgxpool.Pool) PilotRepository {
	return &PGPilotRepository{db: db}
}

// GetByID returns (nil, nil) when the pilot does not exist.
func (r *PGPilotRepository) GetByID(ctx context.Context, id int64) (*domain.Pilot, error) {
	row := r.db.QueryRow(ctx, `SELECT id, full_name, company_id, location_ids FROM pilots WHERE id=$1`, id)
	var p domain.Pilot
	if err := row.Scan(&p.ID, &p.FullName, &p.CompanyID, &p.LocationIDs); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

var _ PilotRepository = (*PGPilotRepository)(nil)
