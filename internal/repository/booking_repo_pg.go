package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gmelashvili/paraglide/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByReference(ctx context.Context, reference string) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, reference string, status domain.BookingStatus) (*domain.Booking, error)
	ExpirePendingBefore(ctx context.Context, deadline time.Time) ([]domain.Booking, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

const bookingColumns = `id, reference, user_id, full_name, phone, contact_method, special_requests,
	location_id, location_name, country_id, country_name, flight_type_id, flight_date,
	number_of_people, currency, base_price, services_total, total_price,
	promo_code, promo_discount, booking_source, pilot_id, company_id, services,
	status, created_at, updated_at`

func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	services, err := json.Marshal(booking.Services)
	if err != nil {
		return err
	}

	return r.db.QueryRow(ctx, `INSERT INTO bookings (reference, user_id, full_name, phone, contact_method, special_requests,
		location_id, location_name, country_id, country_name, flight_type_id, flight_date,
		number_of_people, currency, base_price, services_total, total_price,
		promo_code, promo_discount, booking_source, pilot_id, company_id, services, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24)
		RETURNING id, created_at, updated_at`,
		booking.Reference, booking.UserID, booking.FullName, booking.Phone, booking.ContactMethod, booking.SpecialRequests,
		booking.LocationID, booking.LocationName, booking.CountryID, booking.CountryName, booking.FlightTypeID, booking.FlightDate,
		booking.NumberOfPeople, booking.Currency, booking.BasePrice, booking.ServicesTotal, booking.TotalPrice,
		booking.PromoCode, booking.PromoDiscount, booking.BookingSource, booking.PilotID, booking.CompanyID, services, booking.Status).
		Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)
}

func (r *PGBookingRepository) GetByReference(ctx context.Context, reference string) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE reference=$1`, reference)
	return scanBooking(row)
}

func (r *PGBookingRepository) UpdateStatus(ctx context.Context, reference string, status domain.BookingStatus) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `UPDATE bookings SET status=$1, updated_at=now() WHERE reference=$2 RETURNING `+bookingColumns, status, reference)
	return scanBooking(row)
}

// ExpirePendingBefore marks pending bookings whose flight date already passed
// and returns them so the caller can publish notifications.
func (r *PGBookingRepository) ExpirePendingBefore(ctx context.Context, deadline time.Time) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `UPDATE bookings SET status=$1, updated_at=now() WHERE status=$2 AND flight_date < $3 RETURNING `+bookingColumns,
		domain.BookingStatusExpired, domain.BookingStatusPending, deadline)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expired []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		expired = append(expired, *b)
	}
	return expired, rows.Err()
}

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	var services []byte
	if err := row.Scan(&b.ID, &b.Reference, &b.UserID, &b.FullName, &b.Phone, &b.ContactMethod, &b.SpecialRequests,
		&b.LocationID, &b.LocationName, &b.CountryID, &b.CountryName, &b.FlightTypeID, &b.FlightDate,
		&b.NumberOfPeople, &b.Currency, &b.BasePrice, &b.ServicesTotal, &b.TotalPrice,
		&b.PromoCode, &b.PromoDiscount, &b.BookingSource, &b.PilotID, &b.CompanyID, &services,
		&b.Status, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	if len(services) > 0 {
		if err := json.Unmarshal(services, &b.Services); err != nil {
			return nil, err
		}
	}
	return &b, nil
}

var _ BookingRepository = (*PGBookingRepository)(nil)
