package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/Domenick1991/airline/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ticketColumns = []string{"id", "counter_number", "flight_number", "flight_date", "sale_time", "created_at", "departure_time", "price", "stops", "name", "category"}

func TestPGTicketRepository_Create(t *testing.T) {
	mock := newMockPool(t)
	defer mock.Close()

	flightDate := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	saleTime := time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)
	ticket := &domain.Ticket{CounterNumber: 4, FlightNumber: "SU100", FlightDate: flightDate, SaleTime: saleTime}

	mock.ExpectQuery(regexp.QuoteMeta(queryInsertTicket)).
		WithArgs(4, "SU100", flightDate, saleTime).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(77), saleTime))

	require.NoError(t, NewTicketRepository(mock).Create(context.Background(), ticket))
	assert.Equal(t, int64(77), ticket.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGTicketRepository_Create_UnknownFlight(t *testing.T) {
	mock := newMockPool(t)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta(queryInsertTicket)).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: pgForeignKeyViolation})

	err := NewTicketRepository(mock).Create(context.Background(), &domain.Ticket{FlightNumber: "XX1"})
	assert.ErrorIs(t, err, domain.ErrFlightNotFound)
}

func TestPGTicketRepository_LockByID_NotFound(t *testing.T) {
	mock := newMockPool(t)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta(queryLockTicket)).
		WithArgs(int64(5)).
		WillReturnError(pgx.ErrNoRows)

	_, err := NewTicketRepository(mock).LockByID(context.Background(), 5)
	assert.ErrorIs(t, err, domain.ErrTicketNotFound)
}

func TestPGTicketRepository_ListSoldBetween_UsesExclusiveEnd(t *testing.T) {
	mock := newMockPool(t)
	defer mock.Close()

	dr := domain.DateRange{
		Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
	}
	sale := time.Date(2024, 1, 31, 22, 0, 0, 0, time.UTC)

	rows := pgxmock.NewRows(ticketColumns).
		AddRow(int64(1), 2, "SU100", sale, sale, sale, "08:00:00", 5000.0, []string{"Moscow", "Sochi"}, "Boeing 737", domain.PlaneCategoryMedium)
	mock.ExpectQuery(regexp.QuoteMeta(queryTicketsSoldBetween)).
		WithArgs(dr.Start, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)).
		WillReturnRows(rows)

	tickets, err := NewTicketRepository(mock).ListSoldBetween(context.Background(), dr)

	require.NoError(t, err)
	require.Len(t, tickets, 1)
	assert.Equal(t, 5000.0, tickets[0].Price)
	assert.Equal(t, 2, tickets[0].CounterNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGTicketRepository_CountByFlightDate(t *testing.T) {
	mock := newMockPool(t)
	defer mock.Close()

	dr := domain.DateRange{
		Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
	}
	mock.ExpectQuery(regexp.QuoteMeta(queryCountByFlightDate)).
		WithArgs("SU100", dr.Start, dr.End).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(20))

	n, err := NewTicketRepository(mock).CountByFlightDate(context.Background(), "SU100", dr)

	require.NoError(t, err)
	assert.Equal(t, 20, n)
}

func TestPGTicketRepository_Delete(t *testing.T) {
	mock := newMockPool(t)
	defer mock.Close()

	mock.ExpectExec(regexp.QuoteMeta(queryDeleteTicket)).
		WithArgs(int64(9)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := NewTicketRepository(mock).Delete(context.Background(), 9)
	assert.ErrorIs(t, err, domain.ErrTicketNotFound)
}
