package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/airline/internal/domain"
)

type FlightRepository interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	GetByNumber(ctx context.Context, flightNumber string) (*domain.Flight, error)
	ListByPlane(ctx context.Context, planeID int64) ([]domain.Flight, error)
	CountByPlane(ctx context.Context, planeID int64) (int, error)
	Create(ctx context.Context, flight *domain.Flight) error
	Update(ctx context.Context, flight *domain.Flight) error
	Delete(ctx context.Context, id int64) error
	LockByID(ctx context.Context, id int64) (*domain.Flight, error)
	LockSeats(ctx context.Context, flightNumber string) (domain.SeatState, error)
	SetFreeSeats(ctx context.Context, flightNumber string, freeSeats int) error
}

const (
	flightSelect = `SELECT f.id, f.flight_number, f.plane_id, p.name, p.category, p.seats_count, f.stops, to_char(f.departure_time, 'HH24:MI:SS'), f.free_seats, f.price, f.created_at, f.updated_at FROM flights f JOIN planes p ON p.id = f.plane_id`

	queryListFlights         = flightSelect + ` ORDER BY f.departure_time, f.id`
	queryFlightByID          = flightSelect + ` WHERE f.id = $1`
	queryFlightByNumber      = flightSelect + ` WHERE f.flight_number = $1`
	queryFlightsByPlane      = flightSelect + ` WHERE f.plane_id = $1 ORDER BY f.departure_time, f.id`
	queryLockFlightByID      = flightSelect + ` WHERE f.id = $1 FOR UPDATE OF f`
	queryCountFlightsByPlane = `SELECT count(*) FROM flights WHERE plane_id = $1`
	queryInsertFlight        = `INSERT INTO flights (flight_number, plane_id, stops, departure_time, free_seats, price) VALUES ($1, $2, $3, $4::time, $5, $6) RETURNING id, created_at, updated_at`
	queryUpdateFlight        = `UPDATE flights SET flight_number = $2, plane_id = $3, stops = $4, departure_time = $5::time, free_seats = $6, price = $7, updated_at = now() WHERE id = $1 RETURNING updated_at`
	queryDeleteFlight        = `DELETE FROM flights WHERE id = $1`
	queryLockSeats           = `SELECT f.flight_number, f.free_seats, p.seats_count FROM flights f JOIN planes p ON p.id = f.plane_id WHERE f.flight_number = $1 FOR UPDATE OF f`
	querySetFreeSeats        = `UPDATE flights SET free_seats = $2, updated_at = now() WHERE flight_number = $1`
)

type PGFlightRepository struct {
	db DBConn
}

func NewFlightRepository(db DBConn) FlightRepository {
	return &PGFlightRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFlight(row rowScanner) (domain.Flight, error) {
	var f domain.Flight
	err := row.Scan(&f.ID, &f.FlightNumber, &f.PlaneID, &f.PlaneName, &f.PlaneCategory, &f.SeatsCount, &f.Stops, &f.DepartureTime, &f.FreeSeats, &f.Price, &f.CreatedAt, &f.UpdatedAt)
	return f, err
}

func (r *PGFlightRepository) list(ctx context.Context, query string, args ...any) ([]domain.Flight, error) {
	rows, err := conn(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, translateError(err, nil)
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}
	return flights, translateError(rows.Err(), nil)
}

func (r *PGFlightRepository) get(ctx context.Context, query string, args ...any) (*domain.Flight, error) {
	f, err := scanFlight(conn(ctx, r.db).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, translateError(err, domain.ErrFlightNotFound)
	}
	return &f, nil
}

func (r *PGFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	return r.list(ctx, queryListFlights)
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	return r.get(ctx, queryFlightByID, id)
}

func (r *PGFlightRepository) GetByNumber(ctx context.Context, flightNumber string) (*domain.Flight, error) {
	return r.get(ctx, queryFlightByNumber, flightNumber)
}

func (r *PGFlightRepository) ListByPlane(ctx context.Context, planeID int64) ([]domain.Flight, error) {
	return r.list(ctx, queryFlightsByPlane, planeID)
}

func (r *PGFlightRepository) CountByPlane(ctx context.Context, planeID int64) (int, error) {
	var n int
	if err := conn(ctx, r.db).QueryRow(ctx, queryCountFlightsByPlane, planeID).Scan(&n); err != nil {
		return 0, translateError(err, nil)
	}
	return n, nil
}

func (r *PGFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	err := conn(ctx, r.db).QueryRow(ctx, queryInsertFlight,
		flight.FlightNumber, flight.PlaneID, flight.Stops, flight.DepartureTime, flight.FreeSeats, flight.Price,
	).Scan(&flight.ID, &flight.CreatedAt, &flight.UpdatedAt)
	return flightWriteError(err)
}

func (r *PGFlightRepository) Update(ctx context.Context, flight *domain.Flight) error {
	err := conn(ctx, r.db).QueryRow(ctx, queryUpdateFlight,
		flight.ID, flight.FlightNumber, flight.PlaneID, flight.Stops, flight.DepartureTime, flight.FreeSeats, flight.Price,
	).Scan(&flight.UpdatedAt)
	return flightWriteError(err)
}

func (r *PGFlightRepository) Delete(ctx context.Context, id int64) error {
	tag, err := conn(ctx, r.db).Exec(ctx, queryDeleteFlight, id)
	if err != nil {
		err = translateError(err, nil)
		if errors.Is(err, domain.ErrReferentialConflict) {
			return domain.ErrFlightHasTickets
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrFlightNotFound
	}
	return nil
}

// LockByID reads the flight and holds its row lock until the surrounding
// transaction ends.
func (r *PGFlightRepository) LockByID(ctx context.Context, id int64) (*domain.Flight, error) {
	return r.get(ctx, queryLockFlightByID, id)
}

// LockSeats reads the seat counter and capacity of a flight under an
// exclusive row lock. It must run inside WithinTx for the lock to outlive
// the statement.
func (r *PGFlightRepository) LockSeats(ctx context.Context, flightNumber string) (domain.SeatState, error) {
	var s domain.SeatState
	err := conn(ctx, r.db).QueryRow(ctx, queryLockSeats, flightNumber).Scan(&s.FlightNumber, &s.FreeSeats, &s.SeatsCount)
	if err != nil {
		return domain.SeatState{}, translateError(err, domain.ErrFlightNotFound)
	}
	return s, nil
}

func (r *PGFlightRepository) SetFreeSeats(ctx context.Context, flightNumber string, freeSeats int) error {
	tag, err := conn(ctx, r.db).Exec(ctx, querySetFreeSeats, flightNumber, freeSeats)
	if err != nil {
		return translateError(err, nil)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrFlightNotFound
	}
	return nil
}

func flightWriteError(err error) error {
	if err == nil {
		return nil
	}
	err = translateError(err, domain.ErrFlightNotFound)
	switch {
	case errors.Is(err, domain.ErrDuplicate):
		return domain.ErrFlightNumberTaken
	case errors.Is(err, domain.ErrReferentialConflict):
		return domain.ErrPlaneNotFound
	}
	return err
}

var _ FlightRepository = (*PGFlightRepository)(nil)
