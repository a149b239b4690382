package domain

import "time"

// PromoCode is a percentage-off discount token. A nil ValidFrom/ValidUntil
// means unbounded on that side; a nil UsageLimit means unlimited redemptions.
// Usage is counted in people, not bookings.
type PromoCode struct {
	ID                 int64
	Code               string
	Active             bool
	ValidFrom          *time.Time
	ValidUntil         *time.Time
	UsageLimit         *int
	UsageCount         int
	DiscountPercentage float64
}

// ApplicableAt checks the full applicability invariant for a booking of
// `people` persons at instant `now`. It returns a human-readable reason when
// the code cannot be applied.
func (p *PromoCode) ApplicableAt(now time.Time, people int) (string, bool) {
	if !p.Active {
		return "promo code is not active", false
	}
	if p.ValidFrom != nil && now.Before(*p.ValidFrom) {
		return "promo code is not yet valid", false
	}
	if p.ValidUntil != nil && now.After(*p.ValidUntil) {
		return "promo code has expired", false
	}
	if p.UsageLimit != nil && p.UsageCount+people > *p.UsageLimit {
		return "promo code usage limit reached", false
	}
	return "", true
}

// PromoUsage links a booking to the promo code applied to it.
type PromoUsage struct {
	ID             int64
	PromoCodeID    int64
	BookingID      int64
	PeopleCount    int
	DiscountAmount float64
	Currency       Currency
	CreatedAt      time.Time
}
