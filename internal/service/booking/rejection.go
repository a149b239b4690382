package booking

import (
	"fmt"
	"strings"
)

// RejectionReason is the machine-readable cause attached to every rejected
// booking request.
type RejectionReason string

const (
	ReasonMissingFields         RejectionReason = "missing_fields"
	ReasonInvalidDateFormat     RejectionReason = "invalid_date_format"
	ReasonInvalidLocation       RejectionReason = "invalid_location"
	ReasonInvalidFlightType     RejectionReason = "invalid_flight_type"
	ReasonInvalidPilot          RejectionReason = "invalid_pilot"
	ReasonPilotLocationMismatch RejectionReason = "pilot_location_mismatch"
	ReasonInvalidPromoCode      RejectionReason = "invalid_promo_code"
	ReasonPriceMismatch         RejectionReason = "price_mismatch"
	ReasonPersistenceFailure    RejectionReason = "persistence_failure"
)

type RejectionError struct {
	Reason         RejectionReason
	Message        string
	MissingFields  []string
	SubmittedBase  float64
	ComputedBase   float64
	SubmittedTotal float64
	ComputedTotal  float64
}

func (e *RejectionError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Reason, e.Message)
	}
	return string(e.Reason)
}

func reject(reason RejectionReason, format string, args ...interface{}) *RejectionError {
	return &RejectionError{Reason: reason, Message: fmt.Sprintf(format, args...)}
}

func rejectMissingFields(fields []string) *RejectionError {
	return &RejectionError{
		Reason:        ReasonMissingFields,
		Message:       "missing required fields: " + strings.Join(fields, ", "),
		MissingFields: fields,
	}
}

func rejectPriceMismatch(submittedBase, computedBase, submittedTotal, computedTotal float64) *RejectionError {
	return &RejectionError{
		Reason:         ReasonPriceMismatch,
		Message:        "submitted prices do not match the current rates, please refresh and recompute",
		SubmittedBase:  submittedBase,
		ComputedBase:   computedBase,
		SubmittedTotal: submittedTotal,
		ComputedTotal:  computedTotal,
	}
}
