package email

import (
	"context"
	"fmt"

	"github.com/gmelashvili/paraglide/internal/kafka"
)

type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	fmt.Printf("notify %s (%s) about %s: booking %s at %s on %s for %d people\n",
		event.FullName, event.Phone, event.Type, event.Reference, event.LocationName, event.FlightDate, event.NumberOfPeople)
	return nil
}
