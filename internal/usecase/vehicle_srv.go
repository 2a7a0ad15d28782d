package usecase

import (
	"context"
	"time"

	"wheelshare/internal/data/entity"
	"wheelshare/internal/data/repository"
	"wheelshare/internal/dto/request"
	"wheelshare/internal/dto/response"
	"wheelshare/pkg/apperr"
	"wheelshare/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type VehicleService interface {
	RegisterVehicle(ctx context.Context, driverID uuid.UUID, req *request.CreateVehicleRequest) (*response.VehicleResponse, error)
	GetVehicle(ctx context.Context, driverID uuid.UUID, role string, vehicleID uuid.UUID) (*response.VehicleResponse, error)
	GetDriverVehicles(ctx context.Context, driverID uuid.UUID) ([]response.VehicleResponse, error)
	UpdateVehicle(ctx context.Context, driverID, vehicleID uuid.UUID, req *request.UpdateVehicleRequest) (*response.VehicleResponse, error)
	DeactivateVehicle(ctx context.Context, driverID, vehicleID uuid.UUID) error
}

type vehicleService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewVehicleService(repo *repository.Repository, log *zap.Logger) VehicleService {
	return &vehicleService{
		repo: repo,
		log:  log.With(zap.String("service", "vehicle")),
	}
}

func (s *vehicleService) RegisterVehicle(ctx context.Context, driverID uuid.UUID, req *request.CreateVehicleRequest) (*response.VehicleResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.InvalidArgument(utils.FormatValidationErrors(errs))
	}

	existing, err := s.repo.Vehicle.FindByRegistrationNumber(ctx, req.RegistrationNumber)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "check registration number", err)
	}
	if existing != nil {
		return nil, apperr.Conflict("registration number is already in use")
	}

	now := time.Now()
	vehicle := &entity.Vehicle{
		Base: entity.Base{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		DriverID:           driverID,
		RegistrationNumber: req.RegistrationNumber,
		Category:           entity.VehicleCategory(req.Category),
		Make:               req.Make,
		Model:              req.Model,
		Color:              req.Color,
		SeatCapacity:       req.SeatCapacity,
		IsActive:           true,
		// Verification is an admin action; new vehicles start unverified.
		IsVerified: false,
	}

	if err := s.repo.Vehicle.Create(ctx, vehicle); err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "create vehicle", err)
	}

	s.log.Info("Vehicle registered",
		zap.String("vehicle_id", vehicle.ID.String()),
		zap.String("driver_id", driverID.String()),
		zap.String("registration", vehicle.RegistrationNumber))

	resp := response.VehicleToResponse(vehicle)
	return &resp, nil
}

func (s *vehicleService) GetVehicle(ctx context.Context, driverID uuid.UUID, role string, vehicleID uuid.UUID) (*response.VehicleResponse, error) {
	vehicle, err := s.repo.Vehicle.FindByID(ctx, vehicleID)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "load vehicle", err)
	}
	if vehicle == nil {
		return nil, apperr.NotFound("vehicle not found")
	}

	if vehicle.DriverID != driverID && role != string(entity.RoleAdmin) {
		return nil, apperr.Forbidden("vehicle belongs to another driver")
	}

	resp := response.VehicleToResponse(vehicle)
	return &resp, nil
}

func (s *vehicleService) GetDriverVehicles(ctx context.Context, driverID uuid.UUID) ([]response.VehicleResponse, error) {
	vehicles, err := s.repo.Vehicle.FindByDriverID(ctx, driverID)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "load driver vehicles", err)
	}

	return response.VehiclesToResponse(vehicles), nil
}

func (s *vehicleService) UpdateVehicle(ctx context.Context, driverID, vehicleID uuid.UUID, req *request.UpdateVehicleRequest) (*response.VehicleResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.InvalidArgument(utils.FormatValidationErrors(errs))
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

	vehicle.Make = req.Make
	vehicle.Model = req.Model
	vehicle.Color = req.Color
	vehicle.SeatCapacity = req.SeatCapacity
	if req.IsActive != nil {
		vehicle.IsActive = *req.IsActive
	}
	vehicle.UpdatedAt = time.Now()

	if err := s.repo.Vehicle.Update(ctx, vehicle); err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "update vehicle", err)
	}

	resp := response.VehicleToResponse(vehicle)
	return &resp, nil
}

func (s *vehicleService) DeactivateVehicle(ctx context.Context, driverID, vehicleID uuid.UUID) error {
	vehicle, err := s.repo.Vehicle.FindByID(ctx, vehicleID)
	if err != nil {
		return apperr.Wrap(apperr.CodeInternal, "load vehicle", err)
	}
	if vehicle == nil {
		return apperr.NotFound("vehicle not found")
	}
	if vehicle.DriverID != driverID {
		return apperr.Forbidden("vehicle belongs to another driver")
	}

	if err := s.repo.Vehicle.Deactivate(ctx, vehicleID); err != nil {
		return apperr.Wrap(apperr.CodeInternal, "deactivate vehicle", err)
	}

	s.log.Info("Vehicle deactivated",
		zap.String("vehicle_id", vehicleID.String()),
		zap.String("driver_id", driverID.String()))

	return nil
}
