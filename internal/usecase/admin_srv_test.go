package usecase

import (
	"context"
	"errors"
	"testing"

	"wheelshare/internal/data/entity"
	"wheelshare/internal/data/repository"
	"wheelshare/pkg/apperr"
	"wheelshare/test/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAdminFixture() (*mocks.MockUserRepository, *mocks.MockVehicleRepository, *mocks.MockRideRepository, *mocks.MockBookingRepository, AdminService) {
	users := new(mocks.MockUserRepository)
	vehicles := new(mocks.MockVehicleRepository)
	rides := new(mocks.MockRideRepository)
	bookings := new(mocks.MockBookingRepository)

	repo := &repository.Repository{
		User:    users,
		Vehicle: vehicles,
		Ride:    rides,
		Booking: bookings,
	}

	return users, vehicles, rides, bookings, NewAdminService(repo, zap.NewNop())
}

func TestGetDashboard_Success(t *testing.T) {
	users, vehicles, rides, bookings, service := newAdminFixture()

	users.On("CountAll", mock.Anything).Return(int64(120), nil)
	users.On("CountByRole", mock.Anything, entity.RoleDriver).Return(int64(30), nil)
	vehicles.On("CountAll", mock.Anything).Return(int64(25), nil)
	vehicles.On("CountUnverified", mock.Anything).Return(int64(4), nil)
	rides.On("CountAll", mock.Anything).Return(int64(200), nil)
	rides.On("CountByStatus", mock.Anything, entity.RideStatusOpen).Return(int64(18), nil)
	bookings.On("CountAll", mock.Anything).Return(int64(340), nil)
	bookings.On("CountByStatus", mock.Anything, entity.BookingStatusConfirmed).Return(int64(60), nil)

	dashboard, err := service.GetDashboard(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(120), dashboard.TotalUsers)
	assert.Equal(t, int64(30), dashboard.TotalDrivers)
	assert.Equal(t, int64(4), dashboard.UnverifiedVehicles)
	assert.Equal(t, int64(18), dashboard.OpenRides)
	assert.Equal(t, int64(60), dashboard.ActiveBookings)
}

func TestGetDashboard_CountFailurePropagates(t *testing.T) {
	users, _, _, _, service := newAdminFixture()

	// A failing count must fail the dashboard rather than report zeros.
	users.On("CountAll", mock.Anything).Return(int64(0), errors.New("connection reset"))

	_, err := service.GetDashboard(context.Background())

	require.Error(t, err)
	assert.Equal(t, apperr.CodeInternal, apperr.CodeOf(err))
}

func TestVerifyVehicle_AlreadyVerified(t *testing.T) {
	_, vehicles, _, _, service := newAdminFixture()

	vehicle := testVehicle(entity.VehicleCab)
	vehicles.On("FindByID", mock.Anything, vehicle.ID).Return(vehicle, nil)

	err := service.VerifyVehicle(context.Background(), vehicle.ID)

	require.Error(t, err)
	assert.Equal(t, apperr.CodeInvalidState, apperr.CodeOf(err))
	vehicles.AssertNotCalled(t, "SetVerified", mock.Anything, mock.Anything)
}

func TestVerifyVehicle_Success(t *testing.T) {
	_, vehicles, _, _, service := newAdminFixture()

	vehicle := testVehicle(entity.VehicleCab)
	vehicle.IsVerified = false
	vehicles.On("FindByID", mock.Anything, vehicle.ID).Return(vehicle, nil)
	vehicles.On("SetVerified", mock.Anything, vehicle.ID).Return(nil)

	err := service.VerifyVehicle(context.Background(), vehicle.ID)

	require.NoError(t, err)
	vehicles.AssertExpectations(t)
}
