package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"wheelshare/internal/data/entity"
	"wheelshare/internal/data/repository"
	"wheelshare/internal/dto/request"
	"wheelshare/pkg/apperr"
	"wheelshare/test/mocks"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type bookingFixture struct {
	db       *mocks.FakeDB
	rides    *mocks.MockRideRepository
	bookings *mocks.MockBookingRepository
	vehicles *mocks.MockVehicleRepository
	notifier *mocks.MockNotificationService
	service  BookingService
}

func newBookingFixture() *bookingFixture {
	f := &bookingFixture{
		db:       &mocks.FakeDB{},
		rides:    new(mocks.MockRideRepository),
		bookings: new(mocks.MockBookingRepository),
		vehicles: new(mocks.MockVehicleRepository),
		notifier: new(mocks.MockNotificationService),
	}

	repo := &repository.Repository{
		Ride:    f.rides,
		Booking: f.bookings,
		Vehicle: f.vehicles,
	}

	f.notifier.On("Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil).Maybe()

	f.service = NewBookingService(f.db, repo, f.notifier, zap.NewNop())
	return f
}

func openRide(seats int, fare float64) *entity.Ride {
	return &entity.Ride{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		VehicleID:      uuid.New(),
		Source:         "Connaught Place, Delhi",
		Destination:    "Gurgaon Cyber City",
		AvailableSeats: seats,
		FarePerSeat:    fare,
		RideDateTime:   time.Now().Add(2 * time.Hour),
		Status:         entity.RideStatusOpen,
	}
}

func carpoolVehicle(driverID uuid.UUID) *entity.Vehicle {
	return &entity.Vehicle{
		Base:               entity.Base{ID: uuid.New()},
		DriverID:           driverID,
		RegistrationNumber: "DL01AB1234",
		Category:           entity.VehicleCarpool,
		Make:               "Maruti",
		Model:              "Ertiga",
		SeatCapacity:       6,
		IsActive:           true,
		IsVerified:         true,
	}
}

func TestCreateBooking_Success(t *testing.T) {
	f := newBookingFixture()
	ride := openRide(4, 150)
	customerID := uuid.New()

	f.rides.On("FindByIDTx", mock.Anything, mock.Anything, ride.ID).Return(ride, nil)
	f.vehicles.On("FindByID", mock.Anything, ride.VehicleID).Return(carpoolVehicle(uuid.New()), nil)
	f.rides.On("ReserveSeats", mock.Anything, mock.Anything, ride.ID, 3).Return(true, nil)
	f.bookings.On("CreateTx", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	booking, err := f.service.CreateBooking(context.Background(), customerID, &request.CreateBookingRequest{
		RideID: ride.ID.String(),
		Seats:  3,
	})

	require.NoError(t, err)
	assert.Equal(t, 3, booking.SeatsBooked)
	assert.Equal(t, 450.0, booking.TotalFare)
	assert.Equal(t, entity.BookingStatusConfirmed, booking.Status)
	assert.True(t, f.db.LastTx.Committed)
	f.rides.AssertExpectations(t)
	f.bookings.AssertExpectations(t)
}

func TestCreateBooking_RideNotFound(t *testing.T) {
	f := newBookingFixture()
	rideID := uuid.New()

	f.rides.On("FindByIDTx", mock.Anything, mock.Anything, rideID).Return(nil, nil)

	_, err := f.service.CreateBooking(context.Background(), uuid.New(), &request.CreateBookingRequest{
		RideID: rideID.String(),
		Seats:  1,
	})

	require.Error(t, err)
	assert.Equal(t, apperr.CodeNotFound, apperr.CodeOf(err))
	assert.True(t, f.db.LastTx.RolledBack)
}

func TestCreateBooking_RideNotOpen(t *testing.T) {
	f := newBookingFixture()
	ride := openRide(4, 100)
	ride.Status = entity.RideStatusCancelled

	f.rides.On("FindByIDTx", mock.Anything, mock.Anything, ride.ID).Return(ride, nil)

	_, err := f.service.CreateBooking(context.Background(), uuid.New(), &request.CreateBookingRequest{
		RideID: ride.ID.String(),
		Seats:  1,
	})

	require.Error(t, err)
	assert.Equal(t, apperr.CodeInvalidState, apperr.CodeOf(err))
}

func TestCreateBooking_TooManySeats(t *testing.T) {
	f := newBookingFixture()
	ride := openRide(2, 100)

	f.rides.On("FindByIDTx", mock.Anything, mock.Anything, ride.ID).Return(ride, nil)
	f.vehicles.On("FindByID", mock.Anything, ride.VehicleID).Return(carpoolVehicle(uuid.New()), nil)

	_, err := f.service.CreateBooking(context.Background(), uuid.New(), &request.CreateBookingRequest{
		RideID: ride.ID.String(),
		Seats:  3,
	})

	require.Error(t, err)
	assert.Equal(t, apperr.CodeCapacityExceeded, apperr.CodeOf(err))
	f.rides.AssertNotCalled(t, "ReserveSeats", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateBooking_DriverCannotBookOwnRide(t *testing.T) {
	f := newBookingFixture()
	ride := openRide(4, 100)
	driverID := uuid.New()

	f.rides.On("FindByIDTx", mock.Anything, mock.Anything, ride.ID).Return(ride, nil)
	f.vehicles.On("FindByID", mock.Anything, ride.VehicleID).Return(carpoolVehicle(driverID), nil)

	_, err := f.service.CreateBooking(context.Background(), driverID, &request.CreateBookingRequest{
		RideID: ride.ID.String(),
		Seats:  1,
	})

	require.Error(t, err)
	assert.Equal(t, apperr.CodeInvalidArgument, apperr.CodeOf(err))
}

func TestCreateBooking_LostRace(t *testing.T) {
	f := newBookingFixture()
	ride := openRide(2, 100)

	f.rides.On("FindByIDTx", mock.Anything, mock.Anything, ride.ID).Return(ride, nil)
	f.vehicles.On("FindByID", mock.Anything, ride.VehicleID).Return(carpoolVehicle(uuid.New()), nil)
	// The precondition read saw enough seats, but the conditional decrement
	// found them gone.
	f.rides.On("ReserveSeats", mock.Anything, mock.Anything, ride.ID, 2).Return(false, nil)

	_, err := f.service.CreateBooking(context.Background(), uuid.New(), &request.CreateBookingRequest{
		RideID: ride.ID.String(),
		Seats:  2,
	})

	require.Error(t, err)
	assert.Equal(t, apperr.CodeCapacityExceeded, apperr.CodeOf(err))
	assert.False(t, f.db.LastTx.Committed)
	f.bookings.AssertNotCalled(t, "CreateTx", mock.Anything, mock.Anything, mock.Anything)
}

func TestCancelBooking_Success(t *testing.T) {
	f := newBookingFixture()
	customerID := uuid.New()
	booking := &entity.Booking{
		Base:        entity.Base{ID: uuid.New()},
		RideID:      uuid.New(),
		CustomerID:  customerID,
		SeatsBooked: 2,
		TotalFare:   300,
		Status:      entity.BookingStatusConfirmed,
	}

	f.bookings.On("FindByIDForUpdate", mock.Anything, mock.Anything, booking.ID).Return(booking, nil)
	f.bookings.On("CancelTx", mock.Anything, mock.Anything, booking.ID, "change of plans").Return(nil)
	f.rides.On("ReleaseSeats", mock.Anything, mock.Anything, booking.RideID, 2).Return(true, nil)

	err := f.service.CancelBooking(context.Background(), customerID, booking.ID, &request.CancelBookingRequest{
		Reason: "change of plans",
	})

	require.NoError(t, err)
	assert.True(t, f.db.LastTx.Committed)
	f.rides.AssertExpectations(t)
}

func TestCancelBooking_AlreadyCancelled(t *testing.T) {
	f := newBookingFixture()
	customerID := uuid.New()
	booking := &entity.Booking{
		Base:        entity.Base{ID: uuid.New()},
		RideID:      uuid.New(),
		CustomerID:  customerID,
		SeatsBooked: 2,
		Status:      entity.BookingStatusCancelled,
	}

	f.bookings.On("FindByIDForUpdate", mock.Anything, mock.Anything, booking.ID).Return(booking, nil)

	err := f.service.CancelBooking(context.Background(), customerID, booking.ID, &request.CancelBookingRequest{})

	require.Error(t, err)
	assert.Equal(t, apperr.CodeInvalidState, apperr.CodeOf(err))
	// A repeated cancel must never release the seats a second time.
	f.rides.AssertNotCalled(t, "ReleaseSeats", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCancelBooking_WrongCustomer(t *testing.T) {
	f := newBookingFixture()
	booking := &entity.Booking{
		Base:        entity.Base{ID: uuid.New()},
		RideID:      uuid.New(),
		CustomerID:  uuid.New(),
		SeatsBooked: 1,
		Status:      entity.BookingStatusConfirmed,
	}

	f.bookings.On("FindByIDForUpdate", mock.Anything, mock.Anything, booking.ID).Return(booking, nil)

	err := f.service.CancelBooking(context.Background(), uuid.New(), booking.ID, &request.CancelBookingRequest{})

	require.Error(t, err)
	assert.Equal(t, apperr.CodeForbidden, apperr.CodeOf(err))
}

func TestCancelBooking_RideGone(t *testing.T) {
	f := newBookingFixture()
	customerID := uuid.New()
	booking := &entity.Booking{
		Base:        entity.Base{ID: uuid.New()},
		RideID:      uuid.New(),
		CustomerID:  customerID,
		SeatsBooked: 1,
		Status:      entity.BookingStatusConfirmed,
	}

	f.bookings.On("FindByIDForUpdate", mock.Anything, mock.Anything, booking.ID).Return(booking, nil)
	f.bookings.On("CancelTx", mock.Anything, mock.Anything, booking.ID, "").Return(nil)
	// The ride row no longer exists; cancellation still succeeds.
	f.rides.On("ReleaseSeats", mock.Anything, mock.Anything, booking.RideID, 1).Return(false, nil)

	err := f.service.CancelBooking(context.Background(), customerID, booking.ID, &request.CancelBookingRequest{})

	require.NoError(t, err)
	assert.True(t, f.db.LastTx.Committed)
}

func TestGetBooking_ForbiddenForStranger(t *testing.T) {
	f := newBookingFixture()
	booking := &entity.Booking{
		Base:       entity.Base{ID: uuid.New()},
		RideID:     uuid.New(),
		CustomerID: uuid.New(),
		Status:     entity.BookingStatusConfirmed,
	}
	ride := openRide(4, 100)
	ride.Base.ID = booking.RideID

	f.bookings.On("FindByID", mock.Anything, booking.ID).Return(booking, nil)
	f.rides.On("FindByID", mock.Anything, booking.RideID).Return(ride, nil)
	f.vehicles.On("FindByID", mock.Anything, ride.VehicleID).Return(carpoolVehicle(uuid.New()), nil)

	_, err := f.service.GetBooking(context.Background(), uuid.New(), string(entity.RoleCustomer), booking.ID)

	require.Error(t, err)
	assert.Equal(t, apperr.CodeForbidden, apperr.CodeOf(err))
}

func TestGetBooking_AdminSeesAll(t *testing.T) {
	f := newBookingFixture()
	booking := &entity.Booking{
		Base:        entity.Base{ID: uuid.New()},
		RideID:      uuid.New(),
		CustomerID:  uuid.New(),
		SeatsBooked: 1,
		Status:      entity.BookingStatusConfirmed,
	}
	ride := openRide(4, 100)
	ride.Base.ID = booking.RideID

	f.bookings.On("FindByID", mock.Anything, booking.ID).Return(booking, nil)
	f.rides.On("FindByID", mock.Anything, booking.RideID).Return(ride, nil)

	resp, err := f.service.GetBooking(context.Background(), uuid.New(), string(entity.RoleAdmin), booking.ID)

	require.NoError(t, err)
	assert.Equal(t, ride.Source, resp.Source)
}

func TestCreateBooking_MissingRideBeatsBadSeatCount(t *testing.T) {
	f := newBookingFixture()
	rideID := uuid.New()

	f.rides.On("FindByIDTx", mock.Anything, mock.Anything, rideID).Return(nil, nil)

	// A missing ride wins over a non-positive seat count.
	_, err := f.service.CreateBooking(context.Background(), uuid.New(), &request.CreateBookingRequest{
		RideID: rideID.String(),
		Seats:  0,
	})

	require.Error(t, err)
	assert.Equal(t, apperr.CodeNotFound, apperr.CodeOf(err))
}

func TestCreateBooking_ZeroSeats(t *testing.T) {
	f := newBookingFixture()
	ride := openRide(4, 100)

	f.rides.On("FindByIDTx", mock.Anything, mock.Anything, ride.ID).Return(ride, nil)

	_, err := f.service.CreateBooking(context.Background(), uuid.New(), &request.CreateBookingRequest{
		RideID: ride.ID.String(),
		Seats:  0,
	})

	require.Error(t, err)
	assert.Equal(t, apperr.CodeInvalidArgument, apperr.CodeOf(err))
	f.rides.AssertNotCalled(t, "ReserveSeats", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// seatLedgerRideRepo backs the seat inventory with a guarded in-memory
// counter so concurrent bookings contend on a real conditional decrement.
type seatLedgerRideRepo struct {
	mocks.MockRideRepository
	mu   sync.Mutex
	ride entity.Ride
}

func (r *seatLedgerRideRepo) FindByIDTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*entity.Ride, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	snapshot := r.ride
	return &snapshot, nil
}

func (r *seatLedgerRideRepo) ReserveSeats(ctx context.Context, tx pgx.Tx, rideID uuid.UUID, n int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ride.Status != entity.RideStatusOpen || r.ride.AvailableSeats < n {
		return false, nil
	}
	r.ride.AvailableSeats -= n
	return true, nil
}

type recordingBookingRepo struct {
	mocks.MockBookingRepository
	mu      sync.Mutex
	created []*entity.Booking
}

func (r *recordingBookingRepo) CreateTx(ctx context.Context, tx pgx.Tx, booking *entity.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created = append(r.created, booking)
	return nil
}

// freshTxDB hands every caller its own FakeTx without shared bookkeeping.
type freshTxDB struct {
	mocks.FakeDB
}

func (d *freshTxDB) Begin(ctx context.Context) (pgx.Tx, error) {
	return &mocks.FakeTx{}, nil
}

func TestCreateBooking_ConcurrentRequestsNeverOverbook(t *testing.T) {
	const (
		capacity = 5
		attempts = 16
	)

	rides := &seatLedgerRideRepo{ride: *openRide(capacity, 100)}
	bookings := &recordingBookingRepo{}
	vehicles := new(mocks.MockVehicleRepository)
	notifier := new(mocks.MockNotificationService)

	vehicles.On("FindByID", mock.Anything, rides.ride.VehicleID).
		Return(carpoolVehicle(uuid.New()), nil)
	notifier.On("Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil).Maybe()

	repo := &repository.Repository{
		Ride:    rides,
		Booking: bookings,
		Vehicle: vehicles,
	}
	service := NewBookingService(&freshTxDB{}, repo, notifier, zap.NewNop())

	req := &request.CreateBookingRequest{RideID: rides.ride.ID.String(), Seats: 1}

	var wg sync.WaitGroup
	errs := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := service.CreateBooking(context.Background(), uuid.New(), req)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	successes, losses := 0, 0
	for err := range errs {
		if err == nil {
			successes++
			continue
		}
		assert.Equal(t, apperr.CodeCapacityExceeded, apperr.CodeOf(err))
		losses++
	}

	assert.Equal(t, capacity, successes)
	assert.Equal(t, attempts-capacity, losses)
	assert.Equal(t, 0, rides.ride.AvailableSeats)
	assert.Len(t, bookings.created, capacity)
}
