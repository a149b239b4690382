package repository

import (
	"context"
	"errors"

	"github.com/gmelashvili/paraglide/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PromoRepository interface {
	GetByCode(ctx context.Context, code string) (*domain.PromoCode, error)
	IncrementUsage(ctx context.Context, promoID int64, people int) error
	RecordUsage(ctx context.Context, usage *domain.PromoUsage) error
}

type PGPromoRepository struct {
	db *pgxpool.Pool
}

func NewPromoRepository(db *pgxpool.Pool) PromoRepository {
	return &PGPromoRepository{db: db}
}

// GetByCode expects the code already canonicalized to uppercase. Returns
// (nil, nil) when the code does not exist.
func (r *PGPromoRepository) GetByCode(ctx context.Context, code string) (*domain.PromoCode, error) {
	row := r.db.QueryRow(ctx, `SELECT id, code, is_active, valid_from, valid_until, usage_limit, usage_count, discount_percentage FROM promo_codes WHERE code=$1`, code)
	var p domain.PromoCode
	if err := row.Scan(&p.ID, &p.Code, &p.Active, &p.ValidFrom, &p.ValidUntil, &p.UsageLimit, &p.UsageCount, &p.DiscountPercentage); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// IncrementUsage charges the booking's head count against the code. The
// limit check and this increment are deliberately separate operations; a
// concurrent race can overshoot the limit and that is accepted.
func (r *PGPromoRepository) IncrementUsage(ctx context.Context, promoID int64, people int) error {
	cmd, err := r.db.Exec(ctx, `UPDATE promo_codes SET usage_count = usage_count + $2, updated_at = now() WHERE id=$1`, promoID, people)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return errors.New("promo code not found")
	}
	return nil
}

func (r *PGPromoRepository) RecordUsage(ctx context.Context, usage *domain.PromoUsage) error {
	return r.db.QueryRow(ctx, `INSERT INTO promo_usages (promo_code_id, booking_id, people_count, discount_amount, currency)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`, usage.PromoCodeID, usage.BookingID, usage.PeopleCount, usage.DiscountAmount, usage.Currency).
		Scan(&usage.ID, &usage.CreatedAt)
}

var _ PromoRepository = (*PGPromoRepository)(nil)
