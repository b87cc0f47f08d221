package notify

import (
	"context"
	"log/slog"

	"github.com/Domenick1991/airline/internal/domain"
	"github.com/Domenick1991/airline/internal/kafka"
)

// Notifier tells the back office about ticket movements. For now it writes
// a structured log line per event.
type Notifier struct {
	log *slog.Logger
}

func NewNotifier(log *slog.Logger) *Notifier {
	return &Notifier{log: log}
}

func (n *Notifier) Notify(ctx context.Context, event kafka.TicketEvent) error {
	msg := "ticket event"
	switch event.Type {
	case domain.TicketEventSold:
		msg = "ticket sold at counter"
	case domain.TicketEventCancelled:
		msg = "ticket returned"
	}

	n.log.InfoContext(ctx, msg,
		"event_id", event.EventID,
		"ticket_id", event.TicketID,
		"flight_number", event.FlightNumber,
		"counter_number", event.CounterNumber,
		"flight_date", event.FlightDate,
		"free_seats", event.FreeSeats)

	if event.Type == domain.TicketEventSold && event.FreeSeats == 0 {
		n.log.WarnContext(ctx, "flight sold out", "flight_number", event.FlightNumber, "flight_date", event.FlightDate)
	}
	return nil
}
