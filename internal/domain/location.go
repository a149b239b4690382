package domain

import "time"

// FlightType is a priced offering scoped to one location. It carries one
// price per supported currency and is only valid within its owning location.
type FlightType struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"duration_minutes"`
	PriceGEL        float64 `json:"price_gel"`
	PriceUSD        float64 `json:"price_usd"`
	PriceEUR        float64 `json:"price_eur"`
}

// PriceFor returns the per-person price in the given currency. The switch is
// exhaustive over the supported set; a missing price reports ok=false.
func (f FlightType) PriceFor(c Currency) (float64, bool) {
	var price float64
	switch c {
	case CurrencyGEL:
		price = f.PriceGEL
	case CurrencyUSD:
		price = f.PriceUSD
	case CurrencyEUR:
		price = f.PriceEUR
	default:
		return 0, false
	}
	if price <= 0 {
		return 0, false
	}
	return price, true
}

type Location struct {
	ID          int64
	Name        string
	CountryID   *int64
	CountryName string
	FlightTypes []FlightType
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// FlightTypeByID finds a flight type inside this location's list.
func (l *Location) FlightTypeByID(id int64) (FlightType, bool) {
	for _, ft := range l.FlightTypes {
		if ft.ID == id {
			return ft, true
		}
	}
	return FlightType{}, false
}
