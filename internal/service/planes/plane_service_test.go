package planes

import (
	"context"
	"testing"

	"github.com/Domenick1991/airline/internal/domain"
	"github.com/Domenick1991/airline/internal/logger"
	"github.com/Domenick1991/airline/internal/repository/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newService() (*PlaneService, *mocks.PlaneRepository, *mocks.FlightRepository) {
	planes := &mocks.PlaneRepository{}
	flights := &mocks.FlightRepository{}
	return NewPlaneService(mocks.Tx{}, planes, flights, logger.Discard()), planes, flights
}

func TestPlaneService_Create(t *testing.T) {
	service, planes, _ := newService()
	ctx := context.Background()

	planes.On("Create", ctx, mock.MatchedBy(func(p *domain.Plane) bool {
		return p.Name == "Boeing 737" && p.SeatsCount == 180
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Plane).ID = 1
	}).Return(nil)

	plane, err := service.Create(ctx, domain.PlaneInput{
		Name:       "  Boeing 737 ",
		Category:   domain.PlaneCategoryMedium,
		SeatsCount: 180,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), plane.ID)
	planes.AssertExpectations(t)
}

func TestPlaneService_Create_Validation(t *testing.T) {
	tests := []struct {
		name    string
		input   domain.PlaneInput
		wantMsg string
	}{
		{
			name:    "empty name",
			input:   domain.PlaneInput{Name: " ", Category: domain.PlaneCategoryMedium, SeatsCount: 10},
			wantMsg: "name is required",
		},
		{
			name:    "unknown category",
			input:   domain.PlaneInput{Name: "An-2", Category: "Tiny", SeatsCount: 10},
			wantMsg: "category must be one of: Regional, Medium, Long-haul",
		},
		{
			name:    "too many seats",
			input:   domain.PlaneInput{Name: "A380", Category: domain.PlaneCategoryLongHaul, SeatsCount: 1001},
			wantMsg: "seats_count must be at most 1000",
		},
		{
			name:    "no seats",
			input:   domain.PlaneInput{Name: "A380", Category: domain.PlaneCategoryLongHaul, SeatsCount: 0},
			wantMsg: "seats_count must be at least 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, planes, _ := newService()

			_, err := service.Create(context.Background(), tt.input)

			require.Error(t, err)
			assert.True(t, domain.IsValidation(err))
			assert.Equal(t, tt.wantMsg, err.Error())
			planes.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestPlaneService_Delete_InUse(t *testing.T) {
	service, planes, flights := newService()
	ctx := context.Background()

	planes.On("GetByID", ctx, int64(1)).Return(&domain.Plane{ID: 1}, nil)
	flights.On("CountByPlane", ctx, int64(1)).Return(3, nil)

	err := service.Delete(ctx, 1)

	assert.ErrorIs(t, err, domain.ErrPlaneInUse)
	assert.ErrorIs(t, err, domain.ErrReferentialConflict)
	planes.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestPlaneService_Delete(t *testing.T) {
	service, planes, flights := newService()
	ctx := context.Background()

	planes.On("GetByID", ctx, int64(1)).Return(&domain.Plane{ID: 1}, nil)
	flights.On("CountByPlane", ctx, int64(1)).Return(0, nil)
	planes.On("Delete", ctx, int64(1)).Return(nil)

	require.NoError(t, service.Delete(ctx, 1))
	planes.AssertExpectations(t)
}

func TestPlaneService_Delete_NotFound(t *testing.T) {
	service, planes, flights := newService()
	ctx := context.Background()

	planes.On("GetByID", ctx, int64(9)).Return(nil, domain.ErrPlaneNotFound)

	err := service.Delete(ctx, 9)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	flights.AssertNotCalled(t, "CountByPlane", mock.Anything, mock.Anything)
}
