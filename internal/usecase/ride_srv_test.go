package usecase

import (
	"context"
	"testing"
	"time"

	"wheelshare/internal/data/entity"
	"wheelshare/internal/data/repository"
	"wheelshare/internal/dto/request"
	"wheelshare/internal/geocode"
	"wheelshare/pkg/apperr"
	"wheelshare/test/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type rideFixture struct {
	rides    *mocks.MockRideRepository
	vehicles *mocks.MockVehicleRepository
	users    *mocks.MockUserRepository
	bookings *mocks.MockBookingRepository
	geocoder *mocks.MockGeocoder
	service  RideService
}

func newRideFixture() *rideFixture {
	f := &rideFixture{
		rides:    new(mocks.MockRideRepository),
		vehicles: new(mocks.MockVehicleRepository),
		users:    new(mocks.MockUserRepository),
		bookings: new(mocks.MockBookingRepository),
		geocoder: new(mocks.MockGeocoder),
	}

	repo := &repository.Repository{
		Ride:    f.rides,
		Vehicle: f.vehicles,
		User:    f.users,
		Booking: f.bookings,
	}

	f.service = NewRideService(repo, f.geocoder, zap.NewNop())
	return f
}

// rideAt builds an Open ride whose source sits latOffset degrees north of the
// origin. One degree of latitude is roughly 111.19 km.
func rideAt(vehicleID uuid.UUID, latOffset float64, seats int) *entity.Ride {
	return &entity.Ride{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		VehicleID:      vehicleID,
		Source:         "Somewhere",
		Destination:    "Elsewhere",
		SourceLatitude: latOffset,
		AvailableSeats: seats,
		FarePerSeat:    120,
		RideDateTime:   time.Now().Add(3 * time.Hour),
		Status:         entity.RideStatusOpen,
	}
}

func testVehicle(category entity.VehicleCategory) *entity.Vehicle {
	return &entity.Vehicle{
		Base:               entity.Base{ID: uuid.New()},
		DriverID:           uuid.New(),
		RegistrationNumber: "KA05MN7788",
		Category:           category,
		Make:               "Toyota",
		Model:              "Innova",
		SeatCapacity:       7,
		IsActive:           true,
		IsVerified:         true,
	}
}

func searchReq() *request.SearchRidesRequest {
	return &request.SearchRidesRequest{
		PickupAddress: "Origin Square",
		DropAddress:   "Target Plaza",
	}
}

func TestSearchRides_FiltersByRadius(t *testing.T) {
	f := newRideFixture()

	cab := testVehicle(entity.VehicleCab)
	near := rideAt(cab.ID, 0.018, 4)  // about 2.0 km
	far := rideAt(cab.ID, 0.045, 4)   // about 5.0 km

	f.geocoder.On("Geocode", mock.Anything, "Origin Square").Return(geocode.Point{}, nil)
	f.geocoder.On("Geocode", mock.Anything, "Target Plaza").Return(geocode.Point{Latitude: 1}, nil)
	f.rides.On("FindOpenSince", mock.Anything, mock.Anything).Return([]*entity.Ride{near, far}, nil)
	f.vehicles.On("FindByID", mock.Anything, cab.ID).Return(cab, nil)
	f.users.On("FindByID", mock.Anything, cab.DriverID).Return(nil, nil)

	resp, err := f.service.SearchRides(context.Background(), searchReq())

	require.NoError(t, err)
	require.Len(t, resp.Cabs, 1)
	assert.Empty(t, resp.Carpools)
	assert.Equal(t, near.ID.String(), resp.Cabs[0].RideID)
	assert.InDelta(t, 2.0, resp.Cabs[0].DistanceKm, 0.01)
}

func TestSearchRides_PartitionsByCategory(t *testing.T) {
	f := newRideFixture()

	cab := testVehicle(entity.VehicleCab)
	carpool := testVehicle(entity.VehicleCarpool)
	cabRide := rideAt(cab.ID, 0.01, 4)
	carpoolRide := rideAt(carpool.ID, 0.01, 3)

	f.geocoder.On("Geocode", mock.Anything, mock.Anything).Return(geocode.Point{}, nil)
	f.rides.On("FindOpenSince", mock.Anything, mock.Anything).Return([]*entity.Ride{cabRide, carpoolRide}, nil)
	f.vehicles.On("FindByID", mock.Anything, cab.ID).Return(cab, nil)
	f.vehicles.On("FindByID", mock.Anything, carpool.ID).Return(carpool, nil)
	f.users.On("FindByID", mock.Anything, mock.Anything).Return(nil, nil)

	resp, err := f.service.SearchRides(context.Background(), searchReq())

	require.NoError(t, err)
	require.Len(t, resp.Cabs, 1)
	require.Len(t, resp.Carpools, 1)
	assert.Equal(t, cabRide.ID.String(), resp.Cabs[0].RideID)
	assert.Equal(t, carpoolRide.ID.String(), resp.Carpools[0].RideID)
}

func TestSearchRides_SkipsFullCarpools(t *testing.T) {
	f := newRideFixture()

	carpool := testVehicle(entity.VehicleCarpool)
	full := rideAt(carpool.ID, 0.01, 0)

	f.geocoder.On("Geocode", mock.Anything, mock.Anything).Return(geocode.Point{}, nil)
	f.rides.On("FindOpenSince", mock.Anything, mock.Anything).Return([]*entity.Ride{full}, nil)
	f.vehicles.On("FindByID", mock.Anything, carpool.ID).Return(carpool, nil)

	resp, err := f.service.SearchRides(context.Background(), searchReq())

	require.NoError(t, err)
	assert.Empty(t, resp.Carpools)
	assert.Empty(t, resp.Cabs)
}

func TestSearchRides_UnknownDriverName(t *testing.T) {
	f := newRideFixture()

	cab := testVehicle(entity.VehicleCab)
	ride := rideAt(cab.ID, 0.01, 4)

	f.geocoder.On("Geocode", mock.Anything, mock.Anything).Return(geocode.Point{}, nil)
	f.rides.On("FindOpenSince", mock.Anything, mock.Anything).Return([]*entity.Ride{ride}, nil)
	f.vehicles.On("FindByID", mock.Anything, cab.ID).Return(cab, nil)
	// Driver row was deleted; the listing still renders.
	f.users.On("FindByID", mock.Anything, cab.DriverID).Return(nil, nil)

	resp, err := f.service.SearchRides(context.Background(), searchReq())

	require.NoError(t, err)
	require.Len(t, resp.Cabs, 1)
	assert.Equal(t, "Unknown", resp.Cabs[0].DriverName)
}

func TestSearchRides_UnresolvedPickup(t *testing.T) {
	f := newRideFixture()

	f.geocoder.On("Geocode", mock.Anything, "Origin Square").
		Return(geocode.Point{}, apperr.AddressNotFound("address could not be resolved"))

	_, err := f.service.SearchRides(context.Background(), searchReq())

	require.Error(t, err)
	assert.Equal(t, apperr.CodeAddressNotFound, apperr.CodeOf(err))
	f.rides.AssertNotCalled(t, "FindOpenSince", mock.Anything, mock.Anything)
}

func TestSearchRides_UnresolvedDrop(t *testing.T) {
	f := newRideFixture()

	f.geocoder.On("Geocode", mock.Anything, "Origin Square").Return(geocode.Point{}, nil)
	f.geocoder.On("Geocode", mock.Anything, "Target Plaza").
		Return(geocode.Point{}, apperr.AddressNotFound("address could not be resolved"))

	_, err := f.service.SearchRides(context.Background(), searchReq())

	require.Error(t, err)
	assert.Equal(t, apperr.CodeAddressNotFound, apperr.CodeOf(err))
}

func TestCreateRide_UnverifiedVehicle(t *testing.T) {
	f := newRideFixture()

	vehicle := testVehicle(entity.VehicleCab)
	vehicle.IsVerified = false

	f.vehicles.On("FindByID", mock.Anything, vehicle.ID).Return(vehicle, nil)

	_, err := f.service.CreateRide(context.Background(), vehicle.DriverID, &request.CreateRideRequest{
		VehicleID:      vehicle.ID.String(),
		Source:         "Connaught Place",
		Destination:    "Cyber City",
		AvailableSeats: 4,
		FarePerSeat:    150,
		RideDateTime:   time.Now().Add(4 * time.Hour).Format(time.RFC3339),
	})

	require.Error(t, err)
	assert.Equal(t, apperr.CodeInvalidState, apperr.CodeOf(err))
}

func TestCreateRide_WrongDriver(t *testing.T) {
	f := newRideFixture()

	vehicle := testVehicle(entity.VehicleCab)
	f.vehicles.On("FindByID", mock.Anything, vehicle.ID).Return(vehicle, nil)

	_, err := f.service.CreateRide(context.Background(), uuid.New(), &request.CreateRideRequest{
		VehicleID:      vehicle.ID.String(),
		Source:         "Connaught Place",
		Destination:    "Cyber City",
		AvailableSeats: 4,
		FarePerSeat:    150,
		RideDateTime:   time.Now().Add(4 * time.Hour).Format(time.RFC3339),
	})

	require.Error(t, err)
	assert.Equal(t, apperr.CodeForbidden, apperr.CodeOf(err))
}

func TestCreateRide_PastDateTime(t *testing.T) {
	f := newRideFixture()

	vehicle := testVehicle(entity.VehicleCab)

	_, err := f.service.CreateRide(context.Background(), vehicle.DriverID, &request.CreateRideRequest{
		VehicleID:      vehicle.ID.String(),
		Source:         "Connaught Place",
		Destination:    "Cyber City",
		AvailableSeats: 4,
		FarePerSeat:    150,
		RideDateTime:   time.Now().Add(-1 * time.Hour).Format(time.RFC3339),
	})

	require.Error(t, err)
	assert.Equal(t, apperr.CodeInvalidArgument, apperr.CodeOf(err))
}

func TestCreateRide_Success(t *testing.T) {
	f := newRideFixture()

	vehicle := testVehicle(entity.VehicleCarpool)
	f.vehicles.On("FindByID", mock.Anything, vehicle.ID).Return(vehicle, nil)
	f.geocoder.On("Geocode", mock.Anything, "Connaught Place").
		Return(geocode.Point{Latitude: 28.63, Longitude: 77.21}, nil)
	f.geocoder.On("Geocode", mock.Anything, "Cyber City").
		Return(geocode.Point{Latitude: 28.49, Longitude: 77.08}, nil)
	f.rides.On("Create", mock.Anything, mock.MatchedBy(func(r *entity.Ride) bool {
		return r.Status == entity.RideStatusOpen &&
			r.AvailableSeats == 4 &&
			r.SourceLatitude == 28.63 &&
			r.DestinationLongitude == 77.08
	})).Return(nil)

	ride, err := f.service.CreateRide(context.Background(), vehicle.DriverID, &request.CreateRideRequest{
		VehicleID:      vehicle.ID.String(),
		Source:         "Connaught Place",
		Destination:    "Cyber City",
		AvailableSeats: 4,
		FarePerSeat:    150,
		RideDateTime:   time.Now().Add(4 * time.Hour).Format(time.RFC3339),
	})

	require.NoError(t, err)
	assert.Equal(t, entity.RideStatusOpen, ride.Status)
	f.rides.AssertExpectations(t)
}

func TestUpdateRideStatus_OpenStraightToCompleted(t *testing.T) {
	f := newRideFixture()

	vehicle := testVehicle(entity.VehicleCab)
	ride := rideAt(vehicle.ID, 0, 4)

	f.rides.On("FindByID", mock.Anything, ride.ID).Return(ride, nil)
	f.vehicles.On("FindByID", mock.Anything, vehicle.ID).Return(vehicle, nil)
	f.rides.On("UpdateStatus", mock.Anything, ride.ID, entity.RideStatusCompleted).Return(nil)

	// InProgress is optional; a driver may close out an Open ride directly.
	err := f.service.UpdateRideStatus(context.Background(), vehicle.DriverID, ride.ID, &request.UpdateRideStatusRequest{
		Status: string(entity.RideStatusCompleted),
	})

	require.NoError(t, err)
	f.rides.AssertExpectations(t)
}

func TestUpdateRideStatus_BackwardsMoveAllowed(t *testing.T) {
	f := newRideFixture()

	vehicle := testVehicle(entity.VehicleCab)
	ride := rideAt(vehicle.ID, 0, 4)
	ride.Status = entity.RideStatusCompleted

	f.rides.On("FindByID", mock.Anything, ride.ID).Return(ride, nil)
	f.vehicles.On("FindByID", mock.Anything, vehicle.ID).Return(vehicle, nil)
	f.rides.On("UpdateStatus", mock.Anything, ride.ID, entity.RideStatusInProgress).Return(nil)

	// Status moves are unconditional apart from the ownership check.
	err := f.service.UpdateRideStatus(context.Background(), vehicle.DriverID, ride.ID, &request.UpdateRideStatusRequest{
		Status: string(entity.RideStatusInProgress),
	})

	require.NoError(t, err)
	f.rides.AssertExpectations(t)
}

func TestUpdateRideStatus_Success(t *testing.T) {
	f := newRideFixture()

	vehicle := testVehicle(entity.VehicleCab)
	ride := rideAt(vehicle.ID, 0, 4)

	f.rides.On("FindByID", mock.Anything, ride.ID).Return(ride, nil)
	f.vehicles.On("FindByID", mock.Anything, vehicle.ID).Return(vehicle, nil)
	f.rides.On("UpdateStatus", mock.Anything, ride.ID, entity.RideStatusInProgress).Return(nil)

	err := f.service.UpdateRideStatus(context.Background(), vehicle.DriverID, ride.ID, &request.UpdateRideStatusRequest{
		Status: string(entity.RideStatusInProgress),
	})

	require.NoError(t, err)
	f.rides.AssertExpectations(t)
}
