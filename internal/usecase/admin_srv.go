package usecase

import (
	"context"

	"wheelshare/internal/data/entity"
	"wheelshare/internal/data/repository"
	"wheelshare/internal/dto/response"
	"wheelshare/pkg/apperr"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AdminService interface {
	GetDashboard(ctx context.Context) (*response.DashboardResponse, error)
	GetAllVehicles(ctx context.Context) ([]response.VehicleResponse, error)
	VerifyVehicle(ctx context.Context, vehicleID uuid.UUID) error
}

type adminService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewAdminService(repo *repository.Repository, log *zap.Logger) AdminService {
	return &adminService{
		repo: repo,
		log:  log.With(zap.String("service", "admin")),
	}
}

// GetDashboard aggregates platform counts. Any failed count fails the whole
// call; the dashboard never serves partial or made-up numbers.
func (s *adminService) GetDashboard(ctx context.Context) (*response.DashboardResponse, error) {
	totalUsers, err := s.repo.User.CountAll(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "count users", err)
	}

	totalDrivers, err := s.repo.User.CountByRole(ctx, entity.RoleDriver)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "count drivers", err)
	}

	totalVehicles, err := s.repo.Vehicle.CountAll(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "count vehicles", err)
	}

	unverifiedVehicles, err := s.repo.Vehicle.CountUnverified(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "count unverified vehicles", err)
	}

	totalRides, err := s.repo.Ride.CountAll(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "count rides", err)
	}

	openRides, err := s.repo.Ride.CountByStatus(ctx, entity.RideStatusOpen)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "count open rides", err)
	}

	totalBookings, err := s.repo.Booking.CountAll(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "count bookings", err)
	}

	activeBookings, err := s.repo.Booking.CountByStatus(ctx, entity.BookingStatusConfirmed)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "count active bookings", err)
	}

	return &response.DashboardResponse{
		TotalUsers:         totalUsers,
		TotalDrivers:       totalDrivers,
		TotalVehicles:      totalVehicles,
		UnverifiedVehicles: unverifiedVehicles,
		TotalRides:         totalRides,
		OpenRides:          openRides,
		TotalBookings:      totalBookings,
		ActiveBookings:     activeBookings,
	}, nil
}

func (s *adminService) GetAllVehicles(ctx context.Context) ([]response.VehicleResponse, error) {
	vehicles, err := s.repo.Vehicle.FindAll(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "load vehicles", err)
	}

	return response.VehiclesToResponse(vehicles), nil
}

func (s *adminService) VerifyVehicle(ctx context.Context, vehicleID uuid.UUID) error {
	vehicle, err := s.repo.Vehicle.FindByID(ctx, vehicleID)
	if err != nil {
		return apperr.Wrap(apperr.CodeInternal, "load vehicle", err)
	}
	if vehicle == nil {
		return apperr.NotFound("vehicle not found")
	}
	if vehicle.IsVerified {
		return apperr.InvalidState("vehicle is already verified")
	}

	if err := s.repo.Vehicle.SetVerified(ctx, vehicleID); err != nil {
		return apperr.Wrap(apperr.CodeInternal, "verify vehicle", err)
	}

	s.log.Info("Vehicle verified", zap.String("vehicle_id", vehicleID.String()))

	return nil
}
