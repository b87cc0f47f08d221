package domain

import "time"

type Ticket struct {
	ID            int64
	CounterNumber int
	FlightNumber  string
	FlightDate    time.Time
	SaleTime      time.Time
	CreatedAt     time.Time
}

// TicketDetails is a ticket joined with the current state of its flight.
type TicketDetails struct {
	Ticket
	DepartureTime string
	Price         float64
	Stops         []string
	PlaneName     string
	PlaneCategory PlaneCategory
}

type TicketEventType string

const (
	TicketEventSold      TicketEventType = "ticket_sold"
	TicketEventCancelled TicketEventType = "ticket_cancelled"
)
