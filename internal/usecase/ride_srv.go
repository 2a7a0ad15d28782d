package usecase

import (
	"context"
	"fmt"
	"time"

	"wheelshare/internal/data/entity"
	"wheelshare/internal/data/repository"
	"wheelshare/internal/dto/request"
	"wheelshare/internal/dto/response"
	"wheelshare/internal/geocode"
	"wheelshare/pkg/apperr"
	"wheelshare/pkg/geo"
	"wheelshare/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// searchRadiusKm bounds how far a ride's source may be from the rider's
// pickup point. The boundary itself is included.
const searchRadiusKm = 3.0

type RideService interface {
	SearchRides(ctx context.Context, req *request.SearchRidesRequest) (*response.SearchRidesResponse, error)
	CreateRide(ctx context.Context, driverID uuid.UUID, req *request.CreateRideRequest) (*response.RideResponse, error)
	GetRide(ctx context.Context, rideID uuid.UUID) (*response.RideResponse, error)
	GetDriverRides(ctx context.Context, driverID uuid.UUID) ([]response.RideResponse, error)
	UpdateRideStatus(ctx context.Context, driverID, rideID uuid.UUID, req *request.UpdateRideStatusRequest) error
}

type rideService struct {
	repo     *repository.Repository
	geocoder geocode.Geocoder
	log      *zap.Logger
}

func NewRideService(repo *repository.Repository, geocoder geocode.Geocoder, log *zap.Logger) RideService {
	return &rideService{
		repo:     repo,
		geocoder: geocoder,
		log:      log.With(zap.String("service", "ride")),
	}
}

func (s *rideService) SearchRides(ctx context.Context, req *request.SearchRidesRequest) (*response.SearchRidesResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.InvalidArgument(utils.FormatValidationErrors(errs))
	}

	pickup, err := s.geocoder.Geocode(ctx, req.PickupAddress)
	if err != nil {
		return nil, err
	}

	// The drop address must resolve too, even though matching is currently
	// pickup-only: a rider typo should fail loudly here rather than produce
	// results for an unreachable destination.
	if _, err := s.geocoder.Geocode(ctx, req.DropAddress); err != nil {
		return nil, err
	}

	rides, err := s.repo.Ride.FindOpenSince(ctx, time.Now())
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "load open rides", err)
	}

	resp := &response.SearchRidesResponse{
		PickupLatitude:  pickup.Latitude,
		PickupLongitude: pickup.Longitude,
		Cabs:            []response.RideOption{},
		Carpools:        []response.RideOption{},
	}

	// Vehicles and drivers repeat across rides; resolve each once.
	vehicles := make(map[uuid.UUID]*entity.Vehicle)
	driverNames := make(map[uuid.UUID]string)

	for _, ride := range rides {
		distance := geo.Distance(pickup.Latitude, pickup.Longitude, ride.SourceLatitude, ride.SourceLongitude)
		if distance > searchRadiusKm {
			continue
		}

		vehicle, ok := vehicles[ride.VehicleID]
		if !ok {
			vehicle, err = s.repo.Vehicle.FindByID(ctx, ride.VehicleID)
			if err != nil {
				return nil, apperr.Wrap(apperr.CodeInternal, "load vehicle", err)
			}
			vehicles[ride.VehicleID] = vehicle
		}
		if vehicle == nil {
			s.log.Warn("Ride references missing vehicle",
				zap.String("ride_id", ride.ID.String()),
				zap.String("vehicle_id", ride.VehicleID.String()))
			continue
		}

		if vehicle.Category == entity.VehicleCarpool && ride.AvailableSeats <= 0 {
			continue
		}

		option := response.RideOption{
			RideID:         ride.ID.String(),
			DriverName:     s.driverName(ctx, driverNames, vehicle.DriverID),
			VehicleModel:   vehicle.Make + " " + vehicle.Model,
			Category:       vehicle.Category,
			Source:         ride.Source,
			Destination:    ride.Destination,
			DistanceKm:     geo.Round2(distance),
			FarePerSeat:    ride.FarePerSeat,
			AvailableSeats: ride.AvailableSeats,
			RideDateTime:   ride.RideDateTime,
		}

		if vehicle.Category == entity.VehicleCab {
			resp.Cabs = append(resp.Cabs, option)
		} else {
			resp.Carpools = append(resp.Carpools, option)
		}
	}

	s.log.Info("Ride search completed",
		zap.String("pickup", req.PickupAddress),
		zap.Int("cabs", len(resp.Cabs)),
		zap.Int("carpools", len(resp.Carpools)))

	return resp, nil
}

// driverName resolves the driver's display name, falling back to "Unknown"
// when the user row is missing or the lookup fails.
func (s *rideService) driverName(ctx context.Context, cache map[uuid.UUID]string, driverID uuid.UUID) string {
	if name, ok := cache[driverID]; ok {
		return name
	}

	name := "Unknown"
	driver, err := s.repo.User.FindByID(ctx, driverID)
	if err != nil {
		s.log.Warn("Failed to resolve driver name",
			zap.Error(err),
			zap.String("driver_id", driverID.String()))
	} else if driver != nil && driver.FullName != "" {
		name = driver.FullName
	}

	cache[driverID] = name
	return name
}

func (s *rideService) CreateRide(ctx context.Context, driverID uuid.UUID, req *request.CreateRideRequest) (*response.RideResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.InvalidArgument(utils.FormatValidationErrors(errs))
	}

	vehicleID, err := utils.ParseUUID(req.VehicleID)
	if err != nil {
		return nil, apperr.InvalidArgument("invalid vehicle ID format")
	}

	rideDateTime, err := time.Parse(time.RFC3339, req.RideDateTime)
	if err != nil {
		return nil, apperr.InvalidArgument("ride_datetime must be RFC3339")
	}
	if rideDateTime.Before(time.Now()) {
		return nil, apperr.InvalidArgument("ride_datetime must be in the future")
	}

	vehicle, err := s.repo.Vehicle.FindByID(ctx, vehicleID)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "load vehicle", err)
	}
	if vehicle == nil {
		return nil, apperr.NotFound("vehicle not found")
	}
	if vehicle.DriverID != driverID {
		return nil, apperr.Forbidden("vehicle belongs to another driver")
	}
	if !vehicle.CanHostRide() {
		return nil, apperr.InvalidState("vehicle must be active and verified to host rides")
	}
	if req.AvailableSeats > vehicle.SeatCapacity {
		return nil, apperr.InvalidArgument(
			fmt.Sprintf("available seats exceed vehicle capacity of %d", vehicle.SeatCapacity))
	}

	source, err := s.geocoder.Geocode(ctx, req.Source)
	if err != nil {
		return nil, err
	}
	destination, err := s.geocoder.Geocode(ctx, req.Destination)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	ride := &entity.Ride{
		Base: entity.Base{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		VehicleID:            vehicle.ID,
		Source:               req.Source,
		Destination:          req.Destination,
		SourceLatitude:       source.Latitude,
		SourceLongitude:      source.Longitude,
		DestinationLatitude:  destination.Latitude,
		DestinationLongitude: destination.Longitude,
		AvailableSeats:       req.AvailableSeats,
		FarePerSeat:          req.FarePerSeat,
		RideDateTime:         rideDateTime,
		Status:               entity.RideStatusOpen,
	}

	if err := s.repo.Ride.Create(ctx, ride); err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "create ride", err)
	}

	s.log.Info("Ride created",
		zap.String("ride_id", ride.ID.String()),
		zap.String("driver_id", driverID.String()),
		zap.String("source", ride.Source))

	resp := response.RideToResponse(ride)
	return &resp, nil
}

func (s *rideService) GetRide(ctx context.Context, rideID uuid.UUID) (*response.RideResponse, error) {
	ride, err := s.repo.Ride.FindByID(ctx, rideID)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "load ride", err)
	}
	if ride == nil {
		return nil, apperr.NotFound("ride not found")
	}

	resp := response.RideToResponse(ride)
	return &resp, nil
}

func (s *rideService) GetDriverRides(ctx context.Context, driverID uuid.UUID) ([]response.RideResponse, error) {
	rides, err := s.repo.Ride.FindByDriverID(ctx, driverID)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "load driver rides", err)
	}

	out := make([]response.RideResponse, 0, len(rides))
	for _, ride := range rides {
		bookings, err := s.repo.Booking.FindByRideID(ctx, ride.ID)
		if err != nil {
			return nil, apperr.Wrap(apperr.CodeInternal, "load ride bookings", err)
		}

		resp := response.RideToResponse(ride)
		resp.BookingsCount = len(bookings)
		out = append(out, resp)
	}

	return out, nil
}

func (s *rideService) UpdateRideStatus(ctx context.Context, driverID, rideID uuid.UUID, req *request.UpdateRideStatusRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return apperr.InvalidArgument(utils.FormatValidationErrors(errs))
	}

	ride, err := s.repo.Ride.FindByID(ctx, rideID)
	if err != nil {
		return apperr.Wrap(apperr.CodeInternal, "load ride", err)
	}
	if ride == nil {
		return apperr.NotFound("ride not found")
	}

	vehicle, err := s.repo.Vehicle.FindByID(ctx, ride.VehicleID)
	if err != nil {
		return apperr.Wrap(apperr.CodeInternal, "load vehicle", err)
	}
	if vehicle == nil || vehicle.DriverID != driverID {
		return apperr.Forbidden("ride belongs to another driver")
	}

	// Any move between statuses is allowed; only ownership gates the change.
	// Bookability is enforced where it matters, at booking time.
	target := entity.RideStatus(req.Status)
	if err := s.repo.Ride.UpdateStatus(ctx, rideID, target); err != nil {
		return apperr.Wrap(apperr.CodeInternal, "update ride status", err)
	}

	s.log.Info("Ride status updated",
		zap.String("ride_id", rideID.String()),
		zap.String("from", string(ride.Status)),
		zap.String("to", string(target)))

	return nil
}
