package domain

type Currency string

const (
	CurrencyGEL Currency = "GEL"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
)

// ParseCurrency maps a client-submitted string onto the supported set.
func ParseCurrency(s string) (Currency, bool) {
	switch Currency(s) {
	case CurrencyGEL, CurrencyUSD, CurrencyEUR:
		return Currency(s), true
	default:
		return "", false
	}
}
