// Package inventory owns the free-seat counter of every flight.
package inventory

import (
	"context"
	"log/slog"

	"github.com/Domenick1991/airline/internal/domain"
	"github.com/Domenick1991/airline/internal/repository"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("github.com/Domenick1991/airline/internal/service/inventory")

// SeatStore reads and writes the seat counter. LockSeats must hold a row
// lock until the surrounding transaction ends.
type SeatStore interface {
	LockSeats(ctx context.Context, flightNumber string) (domain.SeatState, error)
	SetFreeSeats(ctx context.Context, flightNumber string, freeSeats int) error
}

type Manager struct {
	tx    repository.Transactor
	seats SeatStore
	log   *slog.Logger
}

func NewManager(tx repository.Transactor, seats SeatStore, log *slog.Logger) *Manager {
	return &Manager{tx: tx, seats: seats, log: log}
}

// AdjustFreeSeats applies delta to the flight's free seat counter under an
// exclusive row lock and returns the new value. Called inside an existing
// transaction it joins it; otherwise it runs in its own.
//
// A decrement below zero fails with ErrCapacityExhausted and leaves the
// counter untouched. An increment past the plane's capacity is clamped to
// seats_count.
func (m *Manager) AdjustFreeSeats(ctx context.Context, flightNumber string, delta int) (int, error) {
	ctx, span := tracer.Start(ctx, "inventory.AdjustFreeSeats")
	defer span.End()
	span.SetAttributes(attribute.String("flight_number", flightNumber), attribute.Int("delta", delta))

	if delta == 0 {
		return 0, domain.NewValidationError("seat delta must not be zero")
	}

	var result int
	err := m.tx.WithinTx(ctx, func(ctx context.Context) error {
		state, err := m.seats.LockSeats(ctx, flightNumber)
		if err != nil {
			return err
		}

		next := state.FreeSeats + delta
		if next < 0 {
			return domain.ErrCapacityExhausted
		}
		if delta > 0 && next > state.SeatsCount {
			m.log.Warn("free seats capped at plane capacity",
				"flight_number", flightNumber,
				"free_seats", state.FreeSeats,
				"delta", delta,
				"seats_count", state.SeatsCount)
			next = state.SeatsCount
		}

		if err := m.seats.SetFreeSeats(ctx, flightNumber, next); err != nil {
			return err
		}
		result = next
		return nil
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return 0, err
	}

	span.SetAttributes(attribute.Int("free_seats", result))
	return result, nil
}
