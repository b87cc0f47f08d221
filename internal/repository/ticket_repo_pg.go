package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/airline/internal/domain"
)

type TicketRepository interface {
	List(ctx context.Context) ([]domain.TicketDetails, error)
	GetByID(ctx context.Context, id int64) (*domain.TicketDetails, error)
	LockByID(ctx context.Context, id int64) (*domain.Ticket, error)
	Create(ctx context.Context, ticket *domain.Ticket) error
	Delete(ctx context.Context, id int64) error
	ListByFlight(ctx context.Context, flightNumber string) ([]domain.TicketDetails, error)
	ListByFlightDate(ctx context.Context, r domain.DateRange) ([]domain.TicketDetails, error)
	ListSoldBetween(ctx context.Context, r domain.DateRange) ([]domain.TicketDetails, error)
	CountByFlight(ctx context.Context, flightNumber string) (int, error)
	CountByFlightDate(ctx context.Context, flightNumber string, r domain.DateRange) (int, error)
}

const (
	ticketSelect = `SELECT t.id, t.counter_number, t.flight_number, t.flight_date, t.sale_time, t.created_at, to_char(f.departure_time, 'HH24:MI:SS'), f.price, f.stops, p.name, p.category FROM tickets t JOIN flights f ON f.flight_number = t.flight_number JOIN planes p ON p.id = f.plane_id`

	queryListTickets         = ticketSelect + ` ORDER BY t.sale_time DESC, t.id DESC`
	queryTicketByID          = ticketSelect + ` WHERE t.id = $1`
	queryTicketsByFlight     = ticketSelect + ` WHERE t.flight_number = $1 ORDER BY t.flight_date, t.sale_time`
	queryTicketsByFlightDate = ticketSelect + ` WHERE t.flight_date BETWEEN $1 AND $2 ORDER BY t.flight_date, t.sale_time`
	queryTicketsSoldBetween  = ticketSelect + ` WHERE t.sale_time >= $1 AND t.sale_time < $2 ORDER BY t.sale_time`
	queryLockTicket          = `SELECT id, counter_number, flight_number, flight_date, sale_time, created_at FROM tickets WHERE id = $1 FOR UPDATE`
	queryInsertTicket        = `INSERT INTO tickets (counter_number, flight_number, flight_date, sale_time) VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	queryDeleteTicket        = `DELETE FROM tickets WHERE id = $1`
	queryCountByFlight       = `SELECT count(*) FROM tickets WHERE flight_number = $1`
	queryCountByFlightDate   = `SELECT count(*) FROM tickets WHERE flight_number = $1 AND flight_date BETWEEN $2 AND $3`
)

type PGTicketRepository struct {
	db DBConn
}

func NewTicketRepository(db DBConn) TicketRepository {
	return &PGTicketRepository{db: db}
}

func scanTicketDetails(row rowScanner) (domain.TicketDetails, error) {
	var t domain.TicketDetails
	err := row.Scan(&t.ID, &t.CounterNumber, &t.FlightNumber, &t.FlightDate, &t.SaleTime, &t.CreatedAt, &t.DepartureTime, &t.Price, &t.Stops, &t.PlaneName, &t.PlaneCategory)
	return t, err
}

func (r *PGTicketRepository) list(ctx context.Context, query string, args ...any) ([]domain.TicketDetails, error) {
	rows, err := conn(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, translateError(err, nil)
	}
	defer rows.Close()

	tickets := make([]domain.TicketDetails, 0)
	for rows.Next() {
		t, err := scanTicketDetails(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, translateError(rows.Err(), nil)
}

func (r *PGTicketRepository) count(ctx context.Context, query string, args ...any) (int, error) {
	var n int
	if err := conn(ctx, r.db).QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, translateError(err, nil)
	}
	return n, nil
}

func (r *PGTicketRepository) List(ctx context.Context) ([]domain.TicketDetails, error) {
	return r.list(ctx, queryListTickets)
}

func (r *PGTicketRepository) GetByID(ctx context.Context, id int64) (*domain.TicketDetails, error) {
	t, err := scanTicketDetails(conn(ctx, r.db).QueryRow(ctx, queryTicketByID, id))
	if err != nil {
		return nil, translateError(err, domain.ErrTicketNotFound)
	}
	return &t, nil
}

// LockByID reads a ticket under a row lock so two cancellations of the same
// ticket cannot both succeed.
func (r *PGTicketRepository) LockByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	var t domain.Ticket
	err := conn(ctx, r.db).QueryRow(ctx, queryLockTicket, id).
		Scan(&t.ID, &t.CounterNumber, &t.FlightNumber, &t.FlightDate, &t.SaleTime, &t.CreatedAt)
	if err != nil {
		return nil, translateError(err, domain.ErrTicketNotFound)
	}
	return &t, nil
}

func (r *PGTicketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	err := conn(ctx, r.db).QueryRow(ctx, queryInsertTicket,
		ticket.CounterNumber, ticket.FlightNumber, ticket.FlightDate, ticket.SaleTime,
	).Scan(&ticket.ID, &ticket.CreatedAt)
	if err != nil {
		err = translateError(err, nil)
		if errors.Is(err, domain.ErrReferentialConflict) {
			return domain.ErrFlightNotFound
		}
		return err
	}
	return nil
}

func (r *PGTicketRepository) Delete(ctx context.Context, id int64) error {
	tag, err := conn(ctx, r.db).Exec(ctx, queryDeleteTicket, id)
	if err != nil {
		return translateError(err, nil)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTicketNotFound
	}
	return nil
}

func (r *PGTicketRepository) ListByFlight(ctx context.Context, flightNumber string) ([]domain.TicketDetails, error) {
	return r.list(ctx, queryTicketsByFlight, flightNumber)
}

func (r *PGTicketRepository) ListByFlightDate(ctx context.Context, dr domain.DateRange) ([]domain.TicketDetails, error) {
	return r.list(ctx, queryTicketsByFlightDate, dr.Start, dr.End)
}

func (r *PGTicketRepository) ListSoldBetween(ctx context.Context, dr domain.DateRange) ([]domain.TicketDetails, error) {
	return r.list(ctx, queryTicketsSoldBetween, dr.Start, dr.EndExclusive())
}

func (r *PGTicketRepository) CountByFlight(ctx context.Context, flightNumber string) (int, error) {
	return r.count(ctx, queryCountByFlight, flightNumber)
}

func (r *PGTicketRepository) CountByFlightDate(ctx context.Context, flightNumber string, dr domain.DateRange) (int, error) {
	return r.count(ctx, queryCountByFlightDate, flightNumber, dr.Start, dr.End)
}

var _ TicketRepository = (*PGTicketRepository)(nil)
