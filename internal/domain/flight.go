package domain

import (
	"strings"
	"time"
)

type Flight struct {
	ID            int64         `json:"id"`
	FlightNumber  string        `json:"flight_number"`
	PlaneID       int64         `json:"plane_id"`
	PlaneName     string        `json:"plane_name"`
	PlaneCategory PlaneCategory `json:"plane_category"`
	SeatsCount    int           `json:"seats_count"`
	Stops         []string      `json:"stops"`
	DepartureTime string        `json:"departure_time"`
	FreeSeats     int           `json:"free_seats"`
	Price         float64       `json:"price"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// Origin is the first stop of the route.
func (f Flight) Origin() string {
	if len(f.Stops) == 0 {
		return ""
	}
	return f.Stops[0]
}

// Destination is the last stop of the route.
func (f Flight) Destination() string {
	if len(f.Stops) == 0 {
		return ""
	}
	return f.Stops[len(f.Stops)-1]
}

// IsNonStop reports whether the route has no intermediate landings.
func (f Flight) IsNonStop() bool {
	return len(f.Stops) == 2
}

// ServesStop reports whether the route lands at the named stop.
func (f Flight) ServesStop(stop string) bool {
	stop = strings.TrimSpace(stop)
	for _, s := range f.Stops {
		if strings.EqualFold(strings.TrimSpace(s), stop) {
			return true
		}
	}
	return false
}

// FreeSeatsPercentage is free_seats / seats_count * 100, unrounded.
func (f Flight) FreeSeatsPercentage() float64 {
	if f.SeatsCount <= 0 {
		return 0
	}
	return float64(f.FreeSeats) / float64(f.SeatsCount) * 100
}

// FlightInput carries the writable fields of a flight.
type FlightInput struct {
	FlightNumber  string   `json:"flight_number" validate:"required,flight_number"`
	PlaneID       int64    `json:"plane_id" validate:"required,gt=0"`
	Stops         []string `json:"stops" validate:"required,min=2,dive,stop_name"`
	DepartureTime string   `json:"departure_time" validate:"required,clock_time"`
	FreeSeats     int      `json:"free_seats" validate:"gte=0"`
	Price         float64  `json:"price" validate:"gt=0,lte=1000000"`
}

// SeatState is the locked view of a flight used by seat adjustments.
type SeatState struct {
	FlightNumber string
	FreeSeats    int
	SeatsCount   int
}

type SeatAvailability struct {
	FlightNumber string `json:"flight_number"`
	FreeSeats    int    `json:"free_seats"`
	HasFreeSeats bool   `json:"has_free_seats"`
}

// SeatViolation describes a flight whose counter left the [0, seats_count] range.
type SeatViolation struct {
	FlightNumber string `json:"flight_number"`
	FreeSeats    int    `json:"free_seats"`
	SeatsCount   int    `json:"seats_count"`
}
