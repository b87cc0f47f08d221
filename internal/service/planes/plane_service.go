package planes

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Domenick1991/airline/internal/domain"
	"github.com/Domenick1991/airline/internal/repository"
	"github.com/Domenick1991/airline/internal/validator"
)

type PlaneUseCase interface {
	List(ctx context.Context) ([]domain.Plane, error)
	GetByID(ctx context.Context, id int64) (*domain.Plane, error)
	Create(ctx context.Context, input domain.PlaneInput) (*domain.Plane, error)
	Delete(ctx context.Context, id int64) error
}

// FlightCounter reports how many flights use a plane.
type FlightCounter interface {
	CountByPlane(ctx context.Context, planeID int64) (int, error)
}

type PlaneService struct {
	tx        repository.Transactor
	repo      repository.PlaneRepository
	flights   FlightCounter
	validator *validator.CustomValidator
	log       *slog.Logger
}

func NewPlaneService(tx repository.Transactor, repo repository.PlaneRepository, flights FlightCounter, log *slog.Logger) *PlaneService {
	return &PlaneService{
		tx:        tx,
		repo:      repo,
		flights:   flights,
		validator: validator.NewCustomValidator(),
		log:       log,
	}
}

func (s *PlaneService) List(ctx context.Context) ([]domain.Plane, error) {
	return s.repo.List(ctx)
}

func (s *PlaneService) GetByID(ctx context.Context, id int64) (*domain.Plane, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *PlaneService) Create(ctx context.Context, input domain.PlaneInput) (*domain.Plane, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := s.validator.Validate(input); err != nil {
		return nil, err
	}

	plane := &domain.Plane{
		Name:       input.Name,
		Category:   input.Category,
		SeatsCount: input.SeatsCount,
	}
	if err := s.repo.Create(ctx, plane); err != nil {
		return nil, err
	}

	s.log.Info("plane created", "id", plane.ID, "name", plane.Name, "seats_count", plane.SeatsCount)
	return plane, nil
}

// Delete fails with ErrPlaneInUse while any flight references the plane. The
// foreign key backs this check up if a flight is created concurrently.
func (s *PlaneService) Delete(ctx context.Context, id int64) error {
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.repo.GetByID(ctx, id); err != nil {
			return err
		}
		used, err := s.flights.CountByPlane(ctx, id)
		if err != nil {
			return err
		}
		if used > 0 {
			return domain.ErrPlaneInUse
		}
		return s.repo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.log.Info("plane deleted", "id", id)
	return nil
}

var _ PlaneUseCase = (*PlaneService)(nil)
