package booking

import (
	"context"
	"errors"
	"log"
	"math"
	"strings"
	"time"

	"github.com/gmelashvili/paraglide/internal/domain"
	"github.com/gmelashvili/paraglide/internal/kafka"
	"github.com/gmelashvili/paraglide/internal/repository"
	"github.com/google/uuid"
)

const (
	dateLayout     = "2006-01-02"
	priceTolerance = 0.01
)

type BookingUseCase interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*CreateBookingResult, error)
	GetBooking(ctx context.Context, reference string) (*domain.Booking, error)
	ConfirmBooking(ctx context.Context, reference string) (*domain.Booking, error)
	CancelBooking(ctx context.Context, reference string) (*domain.Booking, error)
	ExpirePastPending(ctx context.Context) ([]domain.Booking, error)
}

type Cache interface {
	GetLocation(ctx context.Context, id int64) (*domain.Location, error)
	SetLocation(ctx context.Context, location *domain.Location) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	bookings           repository.BookingRepository
	locations          repository.LocationRepository
	pilots             repository.PilotRepository
	companies          repository.CompanyRepository
	promos             repository.PromoRepository
	cache              Cache
	producer           Producer
	bookingTopic       string
	notificationsTopic string
	now                func() time.Time
}

type CreateBookingInput struct {
	UserID          *int64               `json:"user_id"`
	FullName        string               `json:"full_name"`
	Phone           string               `json:"phone"`
	LocationID      int64                `json:"location_id"`
	FlightTypeID    int64                `json:"flight_type_id"`
	SelectedDate    string               `json:"selected_date"`
	NumberOfPeople  int                  `json:"number_of_people"`
	Currency        string               `json:"currency"`
	BasePrice       float64              `json:"base_price"`
	TotalPrice      float64              `json:"total_price"`
	PromoCode       string               `json:"promo_code"`
	ServicesTotal   float64              `json:"services_total"`
	Services        []domain.ServiceLine `json:"additional_services"`
	PilotID         *int64               `json:"pilot_id"`
	CompanyID       *int64               `json:"company_id"`
	ContactMethod   string               `json:"contact_method"`
	SpecialRequests string               `json:"special_requests"`
	// Whatever the client sent here is discarded; the source is always
	// re-derived from the pilot/company resolution.
	BookingSource string `json:"booking_source"`
}

// CreateBookingResult carries the persisted booking plus, when a submitted
// promo code could not be applied, the reason it was not. A rejected promo
// does not abort the booking on its own: the discount is forced to 0 and the
// request still stands or falls on the price check.
type CreateBookingResult struct {
	Booking        *domain.Booking
	PromoRejection string
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

// WithClock fixes the instant used for promo validity windows.
func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *BookingService) {
		s.now = now
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	locations repository.LocationRepository,
	pilots repository.PilotRepository,
	companies repository.CompanyRepository,
	promos repository.PromoRepository,
	cache Cache,
	producer Producer,
	bookingTopic string,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:     bookings,
		locations:    locations,
		pilots:       pilots,
		companies:    companies,
		promos:       promos,
		cache:        cache,
		producer:     producer,
		bookingTopic: bookingTopic,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// CreateBooking re-derives the authoritative price for the request and either
// persists the booking or rejects it with a *RejectionError. Client-submitted
// prices, booking source and denormalized names are never trusted.
func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*CreateBookingResult, error) {
	currency, currencyOK := domain.ParseCurrency(input.Currency)

	// Collect every missing required field in one pass. An unsupported
	// currency value counts as absent.
	var missing []string
	if strings.TrimSpace(input.FullName) == "" {
		missing = append(missing, "full_name")
	}
	if strings.TrimSpace(input.Phone) == "" {
		missing = append(missing, "phone")
	}
	if input.LocationID == 0 {
		missing = append(missing, "location_id")
	}
	if input.FlightTypeID == 0 {
		missing = append(missing, "flight_type_id")
	}
	if strings.TrimSpace(input.SelectedDate) == "" {
		missing = append(missing, "selected_date")
	}
	if input.NumberOfPeople <= 0 {
		missing = append(missing, "number_of_people")
	}
	if !currencyOK {
		missing = append(missing, "currency")
	}
	if input.BasePrice <= 0 {
		missing = append(missing, "base_price")
	}
	if input.TotalPrice <= 0 {
		missing = append(missing, "total_price")
	}
	if len(missing) > 0 {
		return nil, rejectMissingFields(missing)
	}

	flightDate, err := time.Parse(dateLayout, input.SelectedDate)
	if err != nil {
		return nil, reject(ReasonInvalidDateFormat, "selected_date %q is not a valid YYYY-MM-DD date", input.SelectedDate)
	}

	location, err := s.lookupLocation(ctx, input.LocationID)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, reject(ReasonInvalidLocation, "location %d does not exist", input.LocationID)
	}

	// Flight types are only valid within their owning location.
	flightType, ok := location.FlightTypeByID(input.FlightTypeID)
	if !ok {
		return nil, reject(ReasonInvalidFlightType, "flight type %d is not offered at location %d", input.FlightTypeID, location.ID)
	}

	source := domain.BookingSourcePlatformGeneral
	pilotID := input.PilotID
	companyID := input.CompanyID
	switch {
	case pilotID != nil:
		pilot, err := s.pilots.GetByID(ctx, *pilotID)
		if err != nil {
			return nil, err
		}
		if pilot == nil {
			return nil, reject(ReasonInvalidPilot, "pilot %d does not exist", *pilotID)
		}
		if !pilot.ServesLocation(location.ID) {
			return nil, reject(ReasonPilotLocationMismatch, "pilot %d does not serve location %d", pilot.ID, location.ID)
		}
		if companyID == nil && pilot.CompanyID != nil {
			companyID = pilot.CompanyID
		}
		source = domain.BookingSourcePilotDirect
	case companyID != nil:
		company, err := s.companies.GetByID(ctx, *companyID)
		if err != nil {
			return nil, err
		}
		if company == nil {
			// Stale company reference from the client; downgrade instead
			// of failing the whole booking.
			log.Printf("unknown company %d on booking request, downgrading to platform_general", *companyID)
			companyID = nil
		} else {
			source = domain.BookingSourceCompanyDirect
		}
	}

	now := s.now()
	promoCode := strings.ToUpper(strings.TrimSpace(input.PromoCode))
	var promo *domain.PromoCode
	var promoRejection string
	discount := 0.0
	if promoCode != "" {
		found, err := s.promos.GetByCode(ctx, promoCode)
		if err != nil {
			return nil, err
		}
		if found == nil {
			promoRejection = "promo code not found"
		} else if reason, ok := found.ApplicableAt(now, input.NumberOfPeople); !ok {
			promoRejection = reason
		} else {
			promo = found
			discount = found.DiscountPercentage
		}
	}

	pricePerPerson, ok := flightType.PriceFor(currency)
	if !ok {
		return nil, reject(ReasonInvalidFlightType, "flight type %d has no %s price", flightType.ID, currency)
	}
	basePrice := pricePerPerson * float64(input.NumberOfPeople)
	servicesTotal := input.ServicesTotal
	if len(input.Services) > 0 {
		servicesTotal = 0
		for _, line := range input.Services {
			servicesTotal += line.Amount()
		}
	}
	discountAmount := (basePrice + servicesTotal) * discount / 100
	totalPrice := basePrice + servicesTotal - discountAmount

	if !withinTolerance(input.BasePrice, basePrice) || !withinTolerance(input.TotalPrice, totalPrice) {
		if promoRejection != "" {
			// The client most likely priced in a discount that no longer
			// applies; the promo reason is the actionable one.
			return nil, reject(ReasonInvalidPromoCode, "%s", promoRejection)
		}
		return nil, rejectPriceMismatch(input.BasePrice, basePrice, input.TotalPrice, totalPrice)
	}

	booking := &domain.Booking{
		Reference:       uuid.NewString(),
		UserID:          input.UserID,
		FullName:        input.FullName,
		Phone:           input.Phone,
		ContactMethod:   input.ContactMethod,
		SpecialRequests: input.SpecialRequests,
		LocationID:      location.ID,
		LocationName:    location.Name,
		CountryID:       location.CountryID,
		CountryName:     location.CountryName,
		FlightTypeID:    flightType.ID,
		FlightDate:      flightDate,
		NumberOfPeople:  input.NumberOfPeople,
		Currency:        currency,
		BasePrice:       basePrice,
		ServicesTotal:   servicesTotal,
		TotalPrice:      totalPrice,
		PromoCode:       promoCode,
		PromoDiscount:   discount,
		BookingSource:   source,
		PilotID:         pilotID,
		CompanyID:       companyID,
		Services:        input.Services,
		Status:          domain.BookingStatusPending,
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, reject(ReasonPersistenceFailure, "failed to store booking: %v", err)
	}

	// Promo accounting is best-effort: the booking is already committed and
	// a failure here must never surface to the caller.
	if promo != nil && discount > 0 {
		if err := s.promos.IncrementUsage(ctx, promo.ID, booking.NumberOfPeople); err != nil {
			log.Printf("WARNING: failed to increment usage of promo %d for booking %s: %v", promo.ID, booking.Reference, err)
		}
		usage := &domain.PromoUsage{
			PromoCodeID:    promo.ID,
			BookingID:      booking.ID,
			PeopleCount:    booking.NumberOfPeople,
			DiscountAmount: discountAmount,
			Currency:       currency,
		}
		if err := s.promos.RecordUsage(ctx, usage); err != nil {
			log.Printf("WARNING: failed to record usage of promo %d for booking %s: %v", promo.ID, booking.Reference, err)
		}
	}

	if err := s.publish(ctx, "booking_created", booking); err != nil {
		log.Printf("WARNING: failed to publish booking_created event for booking %s: %v", booking.Reference, err)
	}

	return &CreateBookingResult{Booking: booking, PromoRejection: promoRejection}, nil
}

func (s *BookingService) GetBooking(ctx context.Context, reference string) (*domain.Booking, error) {
	return s.bookings.GetByReference(ctx, reference)
}

func (s *BookingService) ConfirmBooking(ctx context.Context, reference string) (*domain.Booking, error) {
	current, err := s.bookings.GetByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if current.Status != domain.BookingStatusPending {
		return nil, errors.New("booking is not pending")
	}

	updated, err := s.bookings.UpdateStatus(ctx, reference, domain.BookingStatusConfirmed)
	if err != nil {
		return nil, err
	}
	if err := s.publish(ctx, "booking_confirmed", updated); err != nil {
		log.Printf("WARNING: failed to publish booking_confirmed event for booking %s: %v", updated.Reference, err)
	}
	return updated, nil
}

func (s *BookingService) CancelBooking(ctx context.Context, reference string) (*domain.Booking, error) {
	current, err := s.bookings.GetByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if current.Status == domain.BookingStatusCancelled || current.Status == domain.BookingStatusExpired {
		return current, nil
	}

	updated, err := s.bookings.UpdateStatus(ctx, reference, domain.BookingStatusCancelled)
	if err != nil {
		return nil, err
	}
	if err := s.publish(ctx, "booking_cancelled", updated); err != nil {
		log.Printf("WARNING: failed to publish booking_cancelled event for booking %s: %v", updated.Reference, err)
	}
	return updated, nil
}

// ExpirePastPending marks pending bookings whose flight date has passed.
func (s *BookingService) ExpirePastPending(ctx context.Context) ([]domain.Booking, error) {
	now := s.now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	expired, err := s.bookings.ExpirePendingBefore(ctx, midnight)
	if err != nil {
		return nil, err
	}
	for _, b := range expired {
		if err := s.publish(ctx, "booking_expired", &b); err != nil {
			log.Printf("WARNING: failed to publish booking_expired event for booking %s: %v", b.Reference, err)
		}
	}
	return expired, nil
}

func (s *BookingService) lookupLocation(ctx context.Context, id int64) (*domain.Location, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetLocation(ctx, id); err == nil && cached != nil {
			return cached, nil
		}
	}

	location, err := s.locations.GetByID(ctx, id)
	if err != nil || location == nil {
		return location, err
	}
	if s.cache != nil {
		_ = s.cache.SetLocation(ctx, location)
	}
	return location, nil
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) error {
	if s.producer == nil || s.bookingTopic == "" {
		return nil
	}
	event := kafka.BookingEvent{
		Type:           eventType,
		Reference:      booking.Reference,
		FullName:       booking.FullName,
		Phone:          booking.Phone,
		LocationID:     booking.LocationID,
		LocationName:   booking.LocationName,
		FlightTypeID:   booking.FlightTypeID,
		FlightDate:     booking.FlightDate.Format(dateLayout),
		NumberOfPeople: booking.NumberOfPeople,
		TotalPrice:     booking.TotalPrice,
		Currency:       string(booking.Currency),
		Status:         string(booking.Status),
	}
	if err := s.producer.Publish(ctx, s.bookingTopic, booking.Reference, event); err != nil {
		return err
	}
	if s.notificationsTopic != "" {
		return s.producer.Publish(ctx, s.notificationsTopic, booking.Reference, event)
	}
	return nil
}

// withinTolerance absorbs floating-point rounding from the client
// recomputing the same price formula; a discrepancy of exactly one cent
// still passes.
func withinTolerance(submitted, computed float64) bool {
	return math.Abs(submitted-computed) <= priceTolerance+1e-9
}

var _ BookingUseCase = (*BookingService)(nil)
