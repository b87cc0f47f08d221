package flights

import (
	"math"
	"sort"

	"github.com/Domenick1991/airline/internal/domain"
)

const DefaultReplacementThreshold = 50.0

// nearestFlight picks the earliest departure among flights landing at
// destination with at least minFreeSeats free. Ties go to the lowest id.
func nearestFlight(flights []domain.Flight, destination string, minFreeSeats int) (domain.Flight, bool) {
	var (
		best  domain.Flight
		found bool
	)
	for _, f := range flights {
		if f.FreeSeats < minFreeSeats || !f.ServesStop(destination) {
			continue
		}
		if !found || f.DepartureTime < best.DepartureTime ||
			(f.DepartureTime == best.DepartureTime && f.ID < best.ID) {
			best, found = f, true
		}
	}
	return best, found
}

func nonStopFlights(flights []domain.Flight) []domain.Flight {
	out := make([]domain.Flight, 0)
	for _, f := range flights {
		if f.IsNonStop() {
			out = append(out, f)
		}
	}
	return out
}

// mostExpensive returns the highest priced flight; ties go to the lowest id.
func mostExpensive(flights []domain.Flight) (domain.Flight, bool) {
	if len(flights) == 0 {
		return domain.Flight{}, false
	}
	best := flights[0]
	for _, f := range flights[1:] {
		if f.Price > best.Price || (f.Price == best.Price && f.ID < best.ID) {
			best = f
		}
	}
	return best, true
}

// replacementCandidates lists flights whose free seat share is at least
// threshold percent, highest share first.
func replacementCandidates(flights []domain.Flight, threshold float64) []domain.ReplacementCandidate {
	type scored struct {
		flight domain.Flight
		pct    float64
	}

	matched := make([]scored, 0)
	for _, f := range flights {
		if pct := f.FreeSeatsPercentage(); pct >= threshold {
			matched = append(matched, scored{flight: f, pct: pct})
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].pct != matched[j].pct {
			return matched[i].pct > matched[j].pct
		}
		return matched[i].flight.ID < matched[j].flight.ID
	})

	out := make([]domain.ReplacementCandidate, 0, len(matched))
	for _, m := range matched {
		out = append(out, domain.ReplacementCandidate{
			FlightNumber:        m.flight.FlightNumber,
			PlaneName:           m.flight.PlaneName,
			FreeSeats:           m.flight.FreeSeats,
			SeatsCount:          m.flight.SeatsCount,
			FreeSeatsPercentage: Round2(m.pct),
		})
	}
	return out
}

// flightLoad keeps the historical formula: occupied seats from the running
// counter plus tickets sold for flight dates in the range.
func flightLoad(f domain.Flight, ticketsSold int) domain.FlightLoad {
	occupied := (f.SeatsCount - f.FreeSeats) + ticketsSold
	load := 0.0
	if f.SeatsCount > 0 {
		load = float64(occupied) / float64(f.SeatsCount) * 100
	}
	return domain.FlightLoad{
		FlightNumber:   f.FlightNumber,
		FreeSeats:      f.FreeSeats,
		SeatsCount:     f.SeatsCount,
		TicketsSold:    ticketsSold,
		TotalOccupied:  occupied,
		LoadPercentage: Round2(load),
	}
}

func seatViolations(flights []domain.Flight) []domain.SeatViolation {
	out := make([]domain.SeatViolation, 0)
	for _, f := range flights {
		if f.FreeSeats < 0 || f.FreeSeats > f.SeatsCount {
			out = append(out, domain.SeatViolation{
				FlightNumber: f.FlightNumber,
				FreeSeats:    f.FreeSeats,
				SeatsCount:   f.SeatsCount,
			})
		}
	}
	return out
}

func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
