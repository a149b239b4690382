package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
	BookingStatusExpired   BookingStatus = "EXPIRED"
)

// BookingSource records where a booking came from. The client-submitted
// value is never trusted; the service derives it from the pilot/company
// resolution.
type BookingSource string

const (
	BookingSourcePilotDirect     BookingSource = "pilot_direct"
	BookingSourceCompanyDirect   BookingSource = "company_direct"
	BookingSourcePlatformGeneral BookingSource = "platform_general"
)

// ServiceLine is an additional service (video, transfer, ...) attached to a
// booking, priced per item.
type ServiceLine struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

func (l ServiceLine) Amount() float64 {
	return l.Price * float64(l.Quantity)
}

// Booking keeps CountryName and LocationName as copied snapshots so the
// record keeps showing the names as they were at booking time.
type Booking struct {
	ID              int64
	Reference       string
	UserID          *int64
	FullName        string
	Phone           string
	ContactMethod   string
	SpecialRequests string
	LocationID      int64
	LocationName    string
	CountryID       *int64
	CountryName     string
	FlightTypeID    int64
	FlightDate      time.Time
	NumberOfPeople  int
	Currency        Currency
	BasePrice       float64
	ServicesTotal   float64
	TotalPrice      float64
	PromoCode       string
	PromoDiscount   float64
	BookingSource   BookingSource
	PilotID         *int64
	CompanyID       *int64
	Services        []ServiceLine
	Status          BookingStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
