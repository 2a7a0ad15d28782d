package usecase

import (
	"context"
	"fmt"
	"time"

	"wheelshare/internal/data/entity"
	"wheelshare/internal/data/repository"
	"wheelshare/internal/dto/request"
	"wheelshare/internal/dto/response"
	"wheelshare/pkg/apperr"
	"wheelshare/pkg/database"
	"wheelshare/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// notifyTimeout bounds the fire-and-forget notification writes issued after
// a booking commit.
const notifyTimeout = 5 * time.Second

type BookingService interface {
	CreateBooking(ctx context.Context, customerID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	CancelBooking(ctx context.Context, customerID, bookingID uuid.UUID, req *request.CancelBookingRequest) error
	GetBooking(ctx context.Context, userID uuid.UUID, role string, bookingID uuid.UUID) (*response.BookingResponse, error)
	GetUserBookings(ctx context.Context, customerID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetRideBookings(ctx context.Context, driverID, rideID uuid.UUID) ([]response.BookingResponse, error)
}

type bookingService struct {
	db       database.PgxIface
	repo     *repository.Repository
	notifier NotificationService
	log      *zap.Logger
}

func NewBookingService(db database.PgxIface, repo *repository.Repository, notifier NotificationService, log *zap.Logger) BookingService {
	return &bookingService{
		db:       db,
		repo:     repo,
		notifier: notifier,
		log:      log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, customerID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, apperr.InvalidArgument(utils.FormatValidationErrors(errs))
	}

	rideID, err := utils.ParseUUID(req.RideID)
	if err != nil {
		return nil, apperr.InvalidArgument("invalid ride ID format")
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "begin transaction", err)
	}
	defer tx.Rollback(ctx)

	ride, err := s.repo.Ride.FindByIDTx(ctx, tx, rideID)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "load ride", err)
	}
	if ride == nil {
		return nil, apperr.NotFound("ride not found")
	}

	if ride.Status != entity.RideStatusOpen {
		return nil, apperr.InvalidState("ride is not open for booking")
	}

	if req.Seats <= 0 {
		return nil, apperr.InvalidArgument("seats must be greater than zero")
	}

	vehicle, err := s.repo.Vehicle.FindByID(ctx, ride.VehicleID)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "load vehicle", err)
	}
	if vehicle != nil && vehicle.DriverID == customerID {
		return nil, apperr.InvalidArgument("drivers cannot book their own ride")
	}

	if req.Seats > ride.AvailableSeats {
		return nil, apperr.CapacityExceeded(
			fmt.Sprintf("only %d seats available", ride.AvailableSeats))
	}

	// The conditional decrement is the real gate; the checks above only
	// produce friendly errors. A false here means a concurrent booking won.
	reserved, err := s.repo.Ride.ReserveSeats(ctx, tx, rideID, req.Seats)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "reserve seats", err)
	}
	if !reserved {
		return nil, apperr.CapacityExceeded("seats were taken by a concurrent booking")
	}

	now := time.Now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		RideID:      rideID,
		CustomerID:  customerID,
		SeatsBooked: req.Seats,
		TotalFare:   float64(req.Seats) * ride.FarePerSeat,
		Status:      entity.BookingStatusConfirmed,
	}

	if err := s.repo.Booking.CreateTx(ctx, tx, booking); err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "create booking", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "commit booking", err)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("ride_id", rideID.String()),
		zap.String("customer_id", customerID.String()),
		zap.Int("seats", req.Seats))

	s.notifyAsync(customerID, "Booking confirmed",
		fmt.Sprintf("You booked %d seat(s) from %s to %s.", req.Seats, ride.Source, ride.Destination),
		entity.NotificationBooking)
	if vehicle != nil {
		s.notifyAsync(vehicle.DriverID, "New booking",
			fmt.Sprintf("%d seat(s) booked on your ride from %s to %s.", req.Seats, ride.Source, ride.Destination),
			entity.NotificationBooking)
	}

	resp := response.BookingWithRideToResponse(booking, ride)
	return &resp, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, customerID, bookingID uuid.UUID, req *request.CancelBookingRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return apperr.InvalidArgument(utils.FormatValidationErrors(errs))
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return apperr.Wrap(apperr.CodeInternal, "begin transaction", err)
	}
	defer tx.Rollback(ctx)

	booking, err := s.repo.Booking.FindByIDForUpdate(ctx, tx, bookingID)
	if err != nil {
		return apperr.Wrap(apperr.CodeInternal, "load booking", err)
	}
	if booking == nil {
		return apperr.NotFound("booking not found")
	}

	if booking.CustomerID != customerID {
		return apperr.Forbidden("booking belongs to another customer")
	}

	// Cancellation is not idempotent: a second cancel must not release the
	// seats twice.
	if booking.Status == entity.BookingStatusCancelled {
		return apperr.InvalidState("booking is already cancelled")
	}

	if err := s.repo.Booking.CancelTx(ctx, tx, bookingID, req.Reason); err != nil {
		return apperr.Wrap(apperr.CodeInternal, "cancel booking", err)
	}

	released, err := s.repo.Ride.ReleaseSeats(ctx, tx, booking.RideID, booking.SeatsBooked)
	if err != nil {
		return apperr.Wrap(apperr.CodeInternal, "release seats", err)
	}
	if !released {
		// The ride row is gone; the cancellation itself still stands.
		s.log.Warn("Cancelled booking references missing ride",
			zap.String("booking_id", bookingID.String()),
			zap.String("ride_id", booking.RideID.String()))
	}

	if err := tx.Commit(ctx); err != nil {
		return apperr.Wrap(apperr.CodeInternal, "commit cancellation", err)
	}

	s.log.Info("Booking cancelled",
		zap.String("booking_id", bookingID.String()),
		zap.String("customer_id", customerID.String()),
		zap.Int("seats_released", booking.SeatsBooked))

	s.notifyAsync(customerID, "Booking cancelled",
		fmt.Sprintf("Your booking of %d seat(s) was cancelled.", booking.SeatsBooked),
		entity.NotificationBooking)

	return nil
}

func (s *bookingService) GetBooking(ctx context.Context, userID uuid.UUID, role string, bookingID uuid.UUID) (*response.BookingResponse, error) {
	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "load booking", err)
	}
	if booking == nil {
		return nil, apperr.NotFound("booking not found")
	}

	if booking.CustomerID != userID && role != string(entity.RoleAdmin) {
		allowed, err := s.isRideDriver(ctx, booking.RideID, userID)
		if err != nil {
			return nil, err
		}
		if !allowed {
			return nil, apperr.Forbidden("not your booking")
		}
	}

	ride, err := s.repo.Ride.FindByID(ctx, booking.RideID)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "load ride", err)
	}

	resp := response.BookingWithRideToResponse(booking, ride)
	return &resp, nil
}

func (s *bookingService) GetUserBookings(ctx context.Context, customerID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.InvalidArgument(utils.FormatValidationErrors(errs))
	}

	bookings, err := s.repo.Booking.FindByCustomerID(ctx, customerID, req.Limit(), req.Offset())
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "load bookings", err)
	}

	total, err := s.repo.Booking.CountByCustomerID(ctx, customerID)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "count bookings", err)
	}

	// Rides repeat across bookings; resolve each once.
	rides := make(map[uuid.UUID]*entity.Ride)

	items := make([]response.BookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		ride, ok := rides[booking.RideID]
		if !ok {
			ride, err = s.repo.Ride.FindByID(ctx, booking.RideID)
			if err != nil {
				return nil, apperr.Wrap(apperr.CodeInternal, "load ride", err)
			}
			rides[booking.RideID] = ride
		}
		items = append(items, response.BookingWithRideToResponse(booking, ride))
	}

	return response.NewPaginatedResponse(items, req.Page, req.Limit(), total), nil
}

func (s *bookingService) GetRideBookings(ctx context.Context, driverID, rideID uuid.UUID) ([]response.BookingResponse, error) {
	ride, err := s.repo.Ride.FindByID(ctx, rideID)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "load ride", err)
	}
	if ride == nil {
		return nil, apperr.NotFound("ride not found")
	}

	allowed, err := s.isRideDriver(ctx, rideID, driverID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, apperr.Forbidden("ride belongs to another driver")
	}

	bookings, err := s.repo.Booking.FindByRideID(ctx, rideID)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "load ride bookings", err)
	}

	out := make([]response.BookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		out = append(out, response.BookingWithRideToResponse(booking, ride))
	}

	return out, nil
}

func (s *bookingService) isRideDriver(ctx context.Context, rideID, userID uuid.UUID) (bool, error) {
	ride, err := s.repo.Ride.FindByID(ctx, rideID)
	if err != nil {
		return false, apperr.Wrap(apperr.CodeInternal, "load ride", err)
	}
	if ride == nil {
		return false, nil
	}

	vehicle, err := s.repo.Vehicle.FindByID(ctx, ride.VehicleID)
	if err != nil {
		return false, apperr.Wrap(apperr.CodeInternal, "load vehicle", err)
	}

	return vehicle != nil && vehicle.DriverID == userID, nil
}

// notifyAsync writes a notification off the request path. The booking has
// already committed, so a failed write is only logged.
func (s *bookingService) notifyAsync(userID uuid.UUID, title, message string, typ entity.NotificationType) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := s.notifier.Notify(ctx, userID, title, message, typ); err != nil {
			s.log.Error("Failed to write notification",
				zap.Error(err),
				zap.String("user_id", userID.String()))
		}
	}()
}
