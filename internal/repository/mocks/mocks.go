// Package mocks holds testify mocks of the repository interfaces.
package mocks

import (
	"context"

	"github.com/Domenick1991/airline/internal/domain"
	"github.com/Domenick1991/airline/internal/repository"
	"github.com/stretchr/testify/mock"
)

// Tx runs fn directly, without a database.
type Tx struct{}

func (Tx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type FlightRepository struct {
	mock.Mock
}

func (m *FlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *FlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *FlightRepository) GetByNumber(ctx context.Context, flightNumber string) (*domain.Flight, error) {
	args := m.Called(ctx, flightNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *FlightRepository) ListByPlane(ctx context.Context, planeID int64) ([]domain.Flight, error) {
	args := m.Called(ctx, planeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *FlightRepository) CountByPlane(ctx context.Context, planeID int64) (int, error) {
	args := m.Called(ctx, planeID)
	return args.Int(0), args.Error(1)
}

func (m *FlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	args := m.Called(ctx, flight)
	return args.Error(0)
}

func (m *FlightRepository) Update(ctx context.Context, flight *domain.Flight) error {
	args := m.Called(ctx, flight)
	return args.Error(0)
}

func (m *FlightRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *FlightRepository) LockByID(ctx context.Context, id int64) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *FlightRepository) LockSeats(ctx context.Context, flightNumber string) (domain.SeatState, error) {
	args := m.Called(ctx, flightNumber)
	return args.Get(0).(domain.SeatState), args.Error(1)
}

func (m *FlightRepository) SetFreeSeats(ctx context.Context, flightNumber string, freeSeats int) error {
	args := m.Called(ctx, flightNumber, freeSeats)
	return args.Error(0)
}

type PlaneRepository struct {
	mock.Mock
}

func (m *PlaneRepository) List(ctx context.Context) ([]domain.Plane, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Plane), args.Error(1)
}

func (m *PlaneRepository) GetByID(ctx context.Context, id int64) (*domain.Plane, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Plane), args.Error(1)
}

func (m *PlaneRepository) Create(ctx context.Context, plane *domain.Plane) error {
	args := m.Called(ctx, plane)
	return args.Error(0)
}

func (m *PlaneRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type TicketRepository struct {
	mock.Mock
}

func (m *TicketRepository) List(ctx context.Context) ([]domain.TicketDetails, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TicketDetails), args.Error(1)
}

func (m *TicketRepository) GetByID(ctx context.Context, id int64) (*domain.TicketDetails, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TicketDetails), args.Error(1)
}

func (m *TicketRepository) LockByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ticket), args.Error(1)
}

func (m *TicketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	args := m.Called(ctx, ticket)
	return args.Error(0)
}

func (m *TicketRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *TicketRepository) ListByFlight(ctx context.Context, flightNumber string) ([]domain.TicketDetails, error) {
	args := m.Called(ctx, flightNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TicketDetails), args.Error(1)
}

func (m *TicketRepository) ListByFlightDate(ctx context.Context, dr domain.DateRange) ([]domain.TicketDetails, error) {
	args := m.Called(ctx, dr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TicketDetails), args.Error(1)
}

func (m *TicketRepository) ListSoldBetween(ctx context.Context, dr domain.DateRange) ([]domain.TicketDetails, error) {
	args := m.Called(ctx, dr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TicketDetails), args.Error(1)
}

func (m *TicketRepository) CountByFlight(ctx context.Context, flightNumber string) (int, error) {
	args := m.Called(ctx, flightNumber)
	return args.Int(0), args.Error(1)
}

func (m *TicketRepository) CountByFlightDate(ctx context.Context, flightNumber string, dr domain.DateRange) (int, error) {
	args := m.Called(ctx, flightNumber, dr)
	return args.Int(0), args.Error(1)
}

var (
	_ repository.Transactor       = Tx{}
	_ repository.FlightRepository = (*FlightRepository)(nil)
	_ repository.PlaneRepository  = (*PlaneRepository)(nil)
	_ repository.TicketRepository = (*TicketRepository)(nil)
)
