package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/gmelashvili/paraglide/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type LocationRepository interface {
	List(ctx context.Context) ([]domain.Location, error)
	GetByID(ctx context.Context, id int64) (*domain.Location, error)
}

type PGLocationRepository struct {
	db *pgxpool.Pool
}

func NewLocationRepository(db *pgxpool.Pool) LocationRepository {
	return &PGLocationRepository{db: db}
}

func (r *PGLocationRepository) List(ctx context.Context) ([]domain.Location, error) {
	rows, err := r.db.Query(ctx, `SELECT l.id, l.name, l.country_id, c.name, l.flight_types, l.created_at, l.updated_at FROM locations l LEFT JOIN countries c ON c.id = l.country_id ORDER BY l.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	locations := make([]domain.Location, 0)
	for rows.Next() {
		loc, err := scanLocation(rows)
		if err != nil {
			return nil, err
		}
		locations = append(locations, *loc)
	}
	return locations, rows.Err()
}

// GetByID returns (nil, nil) when the location does not exist; absence is a
// business condition, not a data-layer failure.
func (r *PGLocationRepository) GetByID(ctx context.Context, id int64) (*domain.Location, error) {
	row := r.db.QueryRow(ctx, `SELECT l.id, l.name, l.country_id, c.name, l.flight_types, l.created_at, l.updated_at FROM locations l LEFT JOIN countries c ON c.id = l.country_id WHERE l.id=$1`, id)
	loc, err := scanLocation(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return loc, nil
}

func scanLocation(row pgx.Row) (*domain.Location, error) {
	var l domain.Location
	var countryName *string
	var flightTypes []byte
	if err := row.Scan(&l.ID, &l.Name, &l.CountryID, &countryName, &flightTypes, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, err
	}
	if countryName != nil {
		l.CountryName = *countryName
	}
	// Flight types live inside the location row as a jsonb blob.
	if len(flightTypes) > 0 {
		if err := json.Unmarshal(flightTypes, &l.FlightTypes); err != nil {
			return nil, err
		}
	}
	return &l, nil
}

var _ LocationRepository = (*PGLocationRepository)(nil)
