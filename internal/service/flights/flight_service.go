package flights

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"strings"

	"github.com/Domenick1991/airline/internal/domain"
	"github.com/Domenick1991/airline/internal/repository"
	"github.com/Domenick1991/airline/internal/validator"
)

type FlightUseCase interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	GetByNumber(ctx context.Context, flightNumber string) (*domain.Flight, error)
	ListByPlane(ctx context.Context, planeID int64) ([]domain.Flight, error)
	Create(ctx context.Context, input domain.FlightInput) (*domain.Flight, error)
	Update(ctx context.Context, id int64, input domain.FlightInput) (*domain.Flight, error)
	Delete(ctx context.Context, id int64) error

	FindNearest(ctx context.Context, destination string, minFreeSeats int) (*domain.Flight, error)
	NonStop(ctx context.Context) ([]domain.Flight, error)
	MostExpensive(ctx context.Context) (*domain.Flight, error)
	ReplacementCandidates(ctx context.Context, minFreeSeatsPercentage float64) ([]domain.ReplacementCandidate, error)
	Load(ctx context.Context, flightNumber string, dr domain.DateRange) (*domain.FlightLoad, error)
	Loads(ctx context.Context, dr domain.DateRange) ([]domain.FlightLoad, error)
	CheckSeats(ctx context.Context, flightNumber string) (*domain.SeatAvailability, error)
	AuditSeats(ctx context.Context) ([]domain.SeatViolation, error)
}

type FlightCache interface {
	GetFlights(ctx context.Context) ([]domain.Flight, error)
	SetFlights(ctx context.Context, flights []domain.Flight) error
	InvalidateFlights(ctx context.Context) error
}

type FlightService struct {
	tx        repository.Transactor
	repo      repository.FlightRepository
	planes    repository.PlaneRepository
	tickets   repository.TicketRepository
	cache     FlightCache
	validator *validator.CustomValidator
	log       *slog.Logger
}

func NewFlightService(
	tx repository.Transactor,
	repo repository.FlightRepository,
	planes repository.PlaneRepository,
	tickets repository.TicketRepository,
	cache FlightCache,
	log *slog.Logger,
) *FlightService {
	return &FlightService{
		tx:        tx,
		repo:      repo,
		planes:    planes,
		tickets:   tickets,
		cache:     cache,
		validator: validator.NewCustomValidator(),
		log:       log,
	}
}

// List serves from the cache when it can; the list may lag behind recent
// sales by up to the cache TTL.
func (s *FlightService) List(ctx context.Context) ([]domain.Flight, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetFlights(ctx); err == nil && cached != nil {
			return cached, nil
		} else if err != nil {
			s.log.Debug("flights cache unavailable", "error", err)
		}
	}

	flights, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetFlights(ctx, flights); err != nil {
			s.log.Debug("failed to fill flights cache", "error", err)
		}
	}
	return flights, nil
}

func (s *FlightService) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *FlightService) GetByNumber(ctx context.Context, flightNumber string) (*domain.Flight, error) {
	return s.repo.GetByNumber(ctx, flightNumber)
}

func (s *FlightService) ListByPlane(ctx context.Context, planeID int64) ([]domain.Flight, error) {
	return s.repo.ListByPlane(ctx, planeID)
}

func (s *FlightService) Create(ctx context.Context, input domain.FlightInput) (*domain.Flight, error) {
	input, err := s.normalize(input)
	if err != nil {
		return nil, err
	}

	flight := fromInput(input)
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		plane, err := s.checkCapacity(ctx, input)
		if err != nil {
			return err
		}
		if err := s.repo.Create(ctx, flight); err != nil {
			return err
		}
		withPlane(flight, plane)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("flight created", "flight_number", flight.FlightNumber, "plane_id", flight.PlaneID)
	s.invalidate(ctx)
	return flight, nil
}

// Update rewrites a flight, including its free seat counter. The row lock
// serializes it with concurrent sales on the same flight.
func (s *FlightService) Update(ctx context.Context, id int64, input domain.FlightInput) (*domain.Flight, error) {
	input, err := s.normalize(input)
	if err != nil {
		return nil, err
	}

	flight := fromInput(input)
	flight.ID = id
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		current, err := s.repo.LockByID(ctx, id)
		if err != nil {
			return err
		}
		plane, err := s.checkCapacity(ctx, input)
		if err != nil {
			return err
		}
		flight.CreatedAt = current.CreatedAt
		if err := s.repo.Update(ctx, flight); err != nil {
			return err
		}
		withPlane(flight, plane)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("flight updated", "id", id, "flight_number", flight.FlightNumber)
	s.invalidate(ctx)
	return flight, nil
}

// Delete refuses to remove a flight that still has tickets.
func (s *FlightService) Delete(ctx context.Context, id int64) error {
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		flight, err := s.repo.LockByID(ctx, id)
		if err != nil {
			return err
		}
		sold, err := s.tickets.CountByFlight(ctx, flight.FlightNumber)
		if err != nil {
			return err
		}
		if sold > 0 {
			return domain.ErrFlightHasTickets
		}
		return s.repo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.log.Info("flight deleted", "id", id)
	s.invalidate(ctx)
	return nil
}

func (s *FlightService) FindNearest(ctx context.Context, destination string, minFreeSeats int) (*domain.Flight, error) {
	destination = strings.TrimSpace(destination)
	if destination == "" {
		return nil, domain.NewValidationError("destination is required")
	}
	if minFreeSeats < 1 {
		minFreeSeats = 1
	}

	flights, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	f, ok := nearestFlight(flights, destination, minFreeSeats)
	if !ok {
		return nil, domain.ErrFlightNotFound
	}
	return &f, nil
}

func (s *FlightService) NonStop(ctx context.Context) ([]domain.Flight, error) {
	flights, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return nonStopFlights(flights), nil
}

func (s *FlightService) MostExpensive(ctx context.Context) (*domain.Flight, error) {
	flights, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	f, ok := mostExpensive(flights)
	if !ok {
		return nil, domain.ErrFlightNotFound
	}
	return &f, nil
}

func (s *FlightService) ReplacementCandidates(ctx context.Context, minFreeSeatsPercentage float64) ([]domain.ReplacementCandidate, error) {
	if math.IsNaN(minFreeSeatsPercentage) || minFreeSeatsPercentage < 0 || minFreeSeatsPercentage > 100 {
		return nil, domain.NewValidationError("minFreeSeatsPercentage must be between 0 and 100")
	}
	flights, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return replacementCandidates(flights, minFreeSeatsPercentage), nil
}

func (s *FlightService) Load(ctx context.Context, flightNumber string, dr domain.DateRange) (*domain.FlightLoad, error) {
	flight, err := s.repo.GetByNumber(ctx, flightNumber)
	if err != nil {
		return nil, err
	}
	sold, err := s.tickets.CountByFlightDate(ctx, flightNumber, dr)
	if err != nil {
		return nil, err
	}
	load := flightLoad(*flight, sold)
	return &load, nil
}

// Loads computes Load for every flight, busiest first.
func (s *FlightService) Loads(ctx context.Context, dr domain.DateRange) ([]domain.FlightLoad, error) {
	flights, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	loads := make([]domain.FlightLoad, 0, len(flights))
	for _, f := range flights {
		sold, err := s.tickets.CountByFlightDate(ctx, f.FlightNumber, dr)
		if err != nil {
			return nil, err
		}
		loads = append(loads, flightLoad(f, sold))
	}
	sort.SliceStable(loads, func(i, j int) bool {
		return loads[i].LoadPercentage > loads[j].LoadPercentage
	})
	return loads, nil
}

func (s *FlightService) CheckSeats(ctx context.Context, flightNumber string) (*domain.SeatAvailability, error) {
	flight, err := s.repo.GetByNumber(ctx, flightNumber)
	if err != nil {
		return nil, err
	}
	return &domain.SeatAvailability{
		FlightNumber: flight.FlightNumber,
		FreeSeats:    flight.FreeSeats,
		HasFreeSeats: flight.FreeSeats > 0,
	}, nil
}

// AuditSeats reads every flight from storage, bypassing the cache, and
// reports counters outside [0, seats_count].
func (s *FlightService) AuditSeats(ctx context.Context) ([]domain.SeatViolation, error) {
	flights, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return seatViolations(flights), nil
}

func (s *FlightService) normalize(input domain.FlightInput) (domain.FlightInput, error) {
	input.FlightNumber = strings.TrimSpace(input.FlightNumber)
	stops := make([]string, len(input.Stops))
	for i, stop := range input.Stops {
		stops[i] = strings.TrimSpace(stop)
	}
	input.Stops = stops

	if err := s.validator.Validate(input); err != nil {
		return input, err
	}
	clock, err := validator.NormalizeClock(input.DepartureTime)
	if err != nil {
		return input, err
	}
	input.DepartureTime = clock
	return input, nil
}

func (s *FlightService) checkCapacity(ctx context.Context, input domain.FlightInput) (*domain.Plane, error) {
	plane, err := s.planes.GetByID(ctx, input.PlaneID)
	if err != nil {
		return nil, err
	}
	if input.FreeSeats > plane.SeatsCount {
		return nil, domain.NewValidationError("free_seats (%d) cannot exceed plane capacity (%d)", input.FreeSeats, plane.SeatsCount)
	}
	return plane, nil
}

func (s *FlightService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateFlights(ctx); err != nil {
		s.log.Warn("failed to invalidate flights cache", "error", err)
	}
}

func fromInput(input domain.FlightInput) *domain.Flight {
	return &domain.Flight{
		FlightNumber:  input.FlightNumber,
		PlaneID:       input.PlaneID,
		Stops:         input.Stops,
		DepartureTime: input.DepartureTime,
		FreeSeats:     input.FreeSeats,
		Price:         input.Price,
	}
}

func withPlane(f *domain.Flight, p *domain.Plane) {
	f.PlaneName = p.Name
	f.PlaneCategory = p.Category
	f.SeatsCount = p.SeatsCount
}

var _ FlightUseCase = (*FlightService)(nil)
