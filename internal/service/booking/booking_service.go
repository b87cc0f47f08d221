package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Domenick1991/airline/internal/domain"
	"github.com/Domenick1991/airline/internal/kafka"
	"github.com/Domenick1991/airline/internal/repository"
	"github.com/Domenick1991/airline/internal/validator"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("github.com/Domenick1991/airline/internal/service/booking")

const maxRangeDays = 365

type BookingUseCase interface {
	SellTicket(ctx context.Context, input SellTicketInput) (*domain.Ticket, error)
	CancelTicket(ctx context.Context, ticketID int64) (*domain.Ticket, error)
	List(ctx context.Context) ([]domain.TicketDetails, error)
	GetByID(ctx context.Context, id int64) (*domain.TicketDetails, error)
	ListByFlight(ctx context.Context, flightNumber string) ([]domain.TicketDetails, error)
	ListByFlightDate(ctx context.Context, dr domain.DateRange) ([]domain.TicketDetails, error)
}

// SeatAdjuster is the seat inventory as seen by the booking flow.
type SeatAdjuster interface {
	AdjustFreeSeats(ctx context.Context, flightNumber string, delta int) (int, error)
}

type Cache interface {
	InvalidateFlights(ctx context.Context) error
}

type Producer interface {
	PublishWithRetry(ctx context.Context, topic, key string, value interface{}, maxRetries int) error
}

type SellTicketInput struct {
	CounterNumber int
	FlightNumber  string
	FlightDate    time.Time
	// SaleTime defaults to the current time when zero.
	SaleTime time.Time
}

type BookingService struct {
	tx          repository.Transactor
	tickets     repository.TicketRepository
	seats       SeatAdjuster
	cache       Cache
	producer    Producer
	eventsTopic string
	retries     int
	log         *slog.Logger
	now         func() time.Time
	minCounter  int
	maxCounter  int
	maxSaleSkew time.Duration
}

type BookingServiceOption func(*BookingService)

func WithCache(cache Cache) BookingServiceOption {
	return func(s *BookingService) {
		s.cache = cache
	}
}

// WithEvents publishes ticket events to topic after every committed change,
// making up to retries attempts per event.
func WithEvents(producer Producer, topic string, retries int) BookingServiceOption {
	return func(s *BookingService) {
		s.producer = producer
		s.eventsTopic = topic
		s.retries = retries
	}
}

func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *BookingService) {
		s.now = now
	}
}

func WithCounterRange(min, max int) BookingServiceOption {
	return func(s *BookingService) {
		s.minCounter = min
		s.maxCounter = max
	}
}

func WithMaxSaleSkew(d time.Duration) BookingServiceOption {
	return func(s *BookingService) {
		s.maxSaleSkew = d
	}
}

func NewBookingService(
	tx repository.Transactor,
	tickets repository.TicketRepository,
	seats SeatAdjuster,
	log *slog.Logger,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		tx:          tx,
		tickets:     tickets,
		seats:       seats,
		log:         log,
		now:         time.Now,
		minCounter:  1,
		maxCounter:  100,
		maxSaleSkew: 24 * time.Hour,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// SellTicket takes one seat and records the ticket in a single transaction.
// Either both happen or neither does.
func (s *BookingService) SellTicket(ctx context.Context, input SellTicketInput) (*domain.Ticket, error) {
	ctx, span := tracer.Start(ctx, "booking.SellTicket")
	defer span.End()
	span.SetAttributes(attribute.String("flight_number", input.FlightNumber), attribute.Int("counter_number", input.CounterNumber))

	ticket, err := s.newTicket(input)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	var freeSeats int
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		left, err := s.seats.AdjustFreeSeats(ctx, ticket.FlightNumber, -1)
		if err != nil {
			return err
		}
		freeSeats = left
		return s.tickets.Create(ctx, ticket)
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	s.log.Info("ticket sold",
		"ticket_id", ticket.ID,
		"flight_number", ticket.FlightNumber,
		"counter_number", ticket.CounterNumber,
		"free_seats", freeSeats)
	s.afterCommit(ctx, domain.TicketEventSold, ticket, freeSeats)
	return ticket, nil
}

// errFlightRenamed means the ticket's flight number changed between reading
// the ticket and locking the flight row.
var errFlightRenamed = fmt.Errorf("flight renamed during cancellation: %w", domain.ErrStorageUnavailable)

const cancelAttempts = 3

// CancelTicket deletes the ticket and returns its seat in a single
// transaction. The flight row is locked before the ticket row, the same
// order sales and flight updates use.
func (s *BookingService) CancelTicket(ctx context.Context, ticketID int64) (*domain.Ticket, error) {
	ctx, span := tracer.Start(ctx, "booking.CancelTicket")
	defer span.End()
	span.SetAttributes(attribute.Int64("ticket_id", ticketID))

	var (
		ticket    *domain.Ticket
		freeSeats int
		err       error
	)
	for attempt := 1; attempt <= cancelAttempts; attempt++ {
		ticket, freeSeats, err = s.cancel(ctx, ticketID)
		if !errors.Is(err, errFlightRenamed) {
			break
		}
		s.log.Debug("ticket flight changed, retrying cancellation", "ticket_id", ticketID, "attempt", attempt)
	}
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	s.log.Info("ticket cancelled",
		"ticket_id", ticket.ID,
		"flight_number", ticket.FlightNumber,
		"free_seats", freeSeats)
	s.afterCommit(ctx, domain.TicketEventCancelled, ticket, freeSeats)
	return ticket, nil
}

func (s *BookingService) cancel(ctx context.Context, ticketID int64) (*domain.Ticket, int, error) {
	current, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, 0, err
	}
	flightNumber := current.FlightNumber

	var (
		ticket    *domain.Ticket
		freeSeats int
	)
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		left, err := s.seats.AdjustFreeSeats(ctx, flightNumber, 1)
		if errors.Is(err, domain.ErrFlightNotFound) {
			return errFlightRenamed
		}
		if err != nil {
			return err
		}
		t, err := s.tickets.LockByID(ctx, ticketID)
		if err != nil {
			return err
		}
		if t.FlightNumber != flightNumber {
			return errFlightRenamed
		}
		if err := s.tickets.Delete(ctx, ticketID); err != nil {
			return err
		}
		ticket, freeSeats = t, left
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return ticket, freeSeats, nil
}

func (s *BookingService) List(ctx context.Context) ([]domain.TicketDetails, error) {
	return s.tickets.List(ctx)
}

func (s *BookingService) GetByID(ctx context.Context, id int64) (*domain.TicketDetails, error) {
	return s.tickets.GetByID(ctx, id)
}

func (s *BookingService) ListByFlight(ctx context.Context, flightNumber string) ([]domain.TicketDetails, error) {
	return s.tickets.ListByFlight(ctx, flightNumber)
}

func (s *BookingService) ListByFlightDate(ctx context.Context, dr domain.DateRange) ([]domain.TicketDetails, error) {
	if dr.Days() > maxRangeDays {
		return nil, domain.NewValidationError("date range cannot exceed %d days", maxRangeDays)
	}
	return s.tickets.ListByFlightDate(ctx, dr)
}

func (s *BookingService) newTicket(input SellTicketInput) (*domain.Ticket, error) {
	if input.CounterNumber < s.minCounter || input.CounterNumber > s.maxCounter {
		return nil, domain.NewValidationError("counter_number must be between %d and %d", s.minCounter, s.maxCounter)
	}
	if !validator.ValidFlightNumber(input.FlightNumber) {
		return nil, domain.NewValidationError("flight_number must be 2-10 uppercase letters or digits")
	}
	if input.FlightDate.IsZero() {
		return nil, domain.NewValidationError("flight_date is required")
	}

	now := s.now()
	flightDate := domain.DateOf(input.FlightDate)
	if flightDate.Before(domain.DateOf(now)) {
		return nil, domain.NewValidationError("flight_date cannot be in the past")
	}

	saleTime := input.SaleTime
	if saleTime.IsZero() {
		saleTime = now
	}
	if saleTime.After(now.Add(s.maxSaleSkew)) {
		return nil, domain.NewValidationError("sale_time cannot be more than %s in the future", s.maxSaleSkew)
	}

	return &domain.Ticket{
		CounterNumber: input.CounterNumber,
		FlightNumber:  input.FlightNumber,
		FlightDate:    flightDate,
		SaleTime:      saleTime,
	}, nil
}

// afterCommit runs side effects of a committed change. Failures are logged
// only; the change itself already happened.
func (s *BookingService) afterCommit(ctx context.Context, eventType domain.TicketEventType, ticket *domain.Ticket, freeSeats int) {
	if s.cache != nil {
		if err := s.cache.InvalidateFlights(ctx); err != nil {
			s.log.Warn("failed to invalidate flights cache", "error", err)
		}
	}
	if err := s.publish(ctx, eventType, ticket, freeSeats); err != nil {
		s.log.Warn("failed to publish ticket event",
			"type", eventType,
			"ticket_id", ticket.ID,
			"error", err)
	}
}

func (s *BookingService) publish(ctx context.Context, eventType domain.TicketEventType, ticket *domain.Ticket, freeSeats int) error {
	if s.producer == nil || s.eventsTopic == "" {
		return nil
	}
	event := kafka.TicketEvent{
		EventID:       uuid.NewString(),
		Type:          eventType,
		TicketID:      ticket.ID,
		FlightNumber:  ticket.FlightNumber,
		CounterNumber: ticket.CounterNumber,
		FlightDate:    ticket.FlightDate.Format(time.DateOnly),
		SaleTime:      ticket.SaleTime,
		FreeSeats:     freeSeats,
		OccurredAt:    s.now(),
	}
	retries := s.retries
	if retries < 1 {
		retries = 1
	}
	return s.producer.PublishWithRetry(ctx, s.eventsTopic, ticket.FlightNumber, event, retries)
}

var _ BookingUseCase = (*BookingService)(nil)
