package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPromoCode_ApplicableAt(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	earlier := now.AddDate(0, -1, 0)
	later := now.AddDate(0, 1, 0)
	limit := 10

	testCases := []struct {
		name   string
		promo  PromoCode
		people int
		ok     bool
		reason string
	}{
		{
			name:   "active without window or limit",
			promo:  PromoCode{Active: true},
			people: 3,
			ok:     true,
		},
		{
			name:   "inactive",
			promo:  PromoCode{Active: false},
			people: 1,
			reason: "promo code is not active",
		},
		{
			name:   "not yet valid",
			promo:  PromoCode{Active: true, ValidFrom: &later},
			people: 1,
			reason: "promo code is not yet valid",
		},
		{
			name:   "expired",
			promo:  PromoCode{Active: true, ValidUntil: &earlier},
			people: 1,
			reason: "promo code has expired",
		},
		{
			name:   "within window",
			promo:  PromoCode{Active: true, ValidFrom: &earlier, ValidUntil: &later},
			people: 1,
			ok:     true,
		},
		{
			name:   "limit would be exceeded",
			promo:  PromoCode{Active: true, UsageLimit: &limit, UsageCount: 8},
			people: 3,
			reason: "promo code usage limit reached",
		},
		{
			name:   "limit exactly reached is still allowed",
			promo:  PromoCode{Active: true, UsageLimit: &limit, UsageCount: 7},
			people: 3,
			ok:     true,
		},
		{
			name:   "nil limit never exhausts",
			promo:  PromoCode{Active: true, UsageCount: 100000},
			people: 50,
			ok:     true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			reason, ok := tc.promo.ApplicableAt(now, tc.people)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.reason, reason)
		})
	}
}
