package booking

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/Domenick1991/airline/internal/domain"
)

// memStore is an in-memory stand-in for the flights and tickets tables.
// Transactions are serialized and roll back by restoring a snapshot.
type memStore struct {
	mu      sync.Mutex
	seats   map[string]domain.SeatState
	tickets map[int64]domain.Ticket
	nextID  int64

	failCreate  error
	failSetSeat error

	// locks records row locks in the order they were taken.
	locks []string
	// afterRead runs once after the next GetByID returns.
	afterRead func()
}

type memTxKey struct{}

func newMemStore(flights ...domain.SeatState) *memStore {
	s := &memStore{seats: map[string]domain.SeatState{}, tickets: map[int64]domain.Ticket{}}
	for _, f := range flights {
		s.seats[f.FlightNumber] = f
	}
	return s
}

func (s *memStore) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(memTxKey{}) != nil {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	seats := make(map[string]domain.SeatState, len(s.seats))
	for k, v := range s.seats {
		seats[k] = v
	}
	tickets := make(map[int64]domain.Ticket, len(s.tickets))
	for k, v := range s.tickets {
		tickets[k] = v
	}
	nextID := s.nextID

	if err := fn(context.WithValue(ctx, memTxKey{}, true)); err != nil {
		s.seats, s.tickets, s.nextID = seats, tickets, nextID
		return err
	}
	return nil
}

func (s *memStore) freeSeats(flightNumber string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seats[flightNumber].FreeSeats
}

func (s *memStore) ticketCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tickets)
}

func (s *memStore) LockSeats(_ context.Context, flightNumber string) (domain.SeatState, error) {
	s.locks = append(s.locks, "flight")
	st, ok := s.seats[flightNumber]
	if !ok {
		return domain.SeatState{}, domain.ErrFlightNotFound
	}
	return st, nil
}

func (s *memStore) SetFreeSeats(_ context.Context, flightNumber string, freeSeats int) error {
	if s.failSetSeat != nil {
		return s.failSetSeat
	}
	st := s.seats[flightNumber]
	st.FreeSeats = freeSeats
	s.seats[flightNumber] = st
	return nil
}

func (s *memStore) Create(_ context.Context, ticket *domain.Ticket) error {
	if s.failCreate != nil {
		return s.failCreate
	}
	s.nextID++
	ticket.ID = s.nextID
	s.tickets[ticket.ID] = *ticket
	return nil
}

func (s *memStore) LockByID(_ context.Context, id int64) (*domain.Ticket, error) {
	s.locks = append(s.locks, "ticket")
	t, ok := s.tickets[id]
	if !ok {
		return nil, domain.ErrTicketNotFound
	}
	return &t, nil
}

func (s *memStore) Delete(_ context.Context, id int64) error {
	if _, ok := s.tickets[id]; !ok {
		return domain.ErrTicketNotFound
	}
	delete(s.tickets, id)
	return nil
}

func (s *memStore) GetByID(ctx context.Context, id int64) (*domain.TicketDetails, error) {
	s.mu.Lock()
	t, ok := s.tickets[id]
	hook := s.afterRead
	s.afterRead = nil
	s.mu.Unlock()

	if hook != nil {
		hook()
	}
	if !ok {
		return nil, domain.ErrTicketNotFound
	}
	return &domain.TicketDetails{Ticket: t}, nil
}

// renameFlight moves the seat row and its tickets to a new flight number,
// the way ON UPDATE CASCADE does.
func (s *memStore) renameFlight(from, to string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.seats[from]
	delete(s.seats, from)
	st.FlightNumber = to
	s.seats[to] = st
	for id, t := range s.tickets {
		if t.FlightNumber == from {
			t.FlightNumber = to
			s.tickets[id] = t
		}
	}
}

func (s *memStore) filter(keep func(domain.Ticket) bool) []domain.TicketDetails {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.TicketDetails, 0)
	for _, t := range s.tickets {
		if keep(t) {
			out = append(out, domain.TicketDetails{Ticket: t})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *memStore) List(context.Context) ([]domain.TicketDetails, error) {
	return s.filter(func(domain.Ticket) bool { return true }), nil
}

func (s *memStore) ListByFlight(_ context.Context, flightNumber string) ([]domain.TicketDetails, error) {
	return s.filter(func(t domain.Ticket) bool { return t.FlightNumber == flightNumber }), nil
}

func (s *memStore) ListByFlightDate(_ context.Context, dr domain.DateRange) ([]domain.TicketDetails, error) {
	return s.filter(func(t domain.Ticket) bool { return dr.Contains(t.FlightDate) }), nil
}

func (s *memStore) ListSoldBetween(_ context.Context, dr domain.DateRange) ([]domain.TicketDetails, error) {
	return s.filter(func(t domain.Ticket) bool { return dr.Contains(t.SaleTime) }), nil
}

func (s *memStore) CountByFlight(ctx context.Context, flightNumber string) (int, error) {
	l, _ := s.ListByFlight(ctx, flightNumber)
	return len(l), nil
}

func (s *memStore) CountByFlightDate(_ context.Context, flightNumber string, dr domain.DateRange) (int, error) {
	return len(s.filter(func(t domain.Ticket) bool {
		return t.FlightNumber == flightNumber && dr.Contains(t.FlightDate)
	})), nil
}

var errInsertFailed = errors.New("insert failed")
