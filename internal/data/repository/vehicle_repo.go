package repository

import (
	"context"
	"fmt"

	"wheelshare/internal/data/entity"
	"wheelshare/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type VehicleRepository interface {
	Create(ctx context.Context, vehicle *entity.Vehicle) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Vehicle, error)
	FindByRegistrationNumber(ctx context.Context, regNumber string) (*entity.Vehicle, error)
	FindByDriverID(ctx context.Context, driverID uuid.UUID) ([]*entity.Vehicle, error)
	FindActiveByDriverID(ctx context.Context, driverID uuid.UUID) (*entity.Vehicle, error)
	FindAll(ctx context.Context) ([]*entity.Vehicle, error)
	Update(ctx context.Context, vehicle *entity.Vehicle) error
	SetVerified(ctx context.Context, id uuid.UUID) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	CountAll(ctx context.Context) (int64, error)
	CountUnverified(ctx context.Context) (int64, error)
}

type vehicleRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewVehicleRepository(db database.PgxIface, log *zap.Logger) VehicleRepository {
	return &vehicleRepository{
		db:  db,
		log: log.With(zap.String("repository", "vehicle")),
	}
}

const vehicleColumns = `id, driver_id, registration_number, category, make, model, color,
	seat_capacity, is_active, is_verified, verified_at, created_at, updated_at`

func scanVehicle(row pgx.Row) (*entity.Vehicle, error) {
	var vehicle entity.Vehicle
	err := row.Scan(
		&vehicle.ID,
		&vehicle.DriverID,
		&vehicle.RegistrationNumber,
		&vehicle.Category,
		&vehicle.Make,
		&vehicle.Model,
		&vehicle.Color,
		&vehicle.SeatCapacity,
		&vehicle.IsActive,
		&vehicle.IsVerified,
		&vehicle.VerifiedAt,
		&vehicle.CreatedAt,
		&vehicle.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (r *vehicleRepository) Create(ctx context.Context, vehicle *entity.Vehicle) error {
	query := `
		INSERT INTO vehicles (id, driver_id, registration_number, category, make, model, color,
		                      seat_capacity, is_active, is_verified, verified_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.Exec(ctx, query,
		vehicle.ID,
		vehicle.DriverID,
		vehicle.RegistrationNumber,
		vehicle.Category,
		vehicle.Make,
		vehicle.Model,
		vehicle.Color,
		vehicle.SeatCapacity,
		vehicle.IsActive,
		vehicle.IsVerified,
		vehicle.VerifiedAt,
		vehicle.CreatedAt,
		vehicle.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create vehicle",
			zap.Error(err),
			zap.String("registration_number", vehicle.RegistrationNumber),
			zap.String("driver_id", vehicle.DriverID.String()),
		)
		return fmt.Errorf("create vehicle %s: %w", vehicle.RegistrationNumber, err)
	}

	return nil
}

func (r *vehicleRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`

	vehicle, err := scanVehicle(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find vehicle by ID",
			zap.Error(err),
			zap.String("vehicle_id", id.String()),
		)
		return nil, fmt.Errorf("find vehicle by ID %s: %w", id.String(), err)
	}

	return vehicle, nil
}

func (r *vehicleRepository) FindByRegistrationNumber(ctx context.Context, regNumber string) (*entity.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE registration_number = $1`

	vehicle, err := scanVehicle(r.db.QueryRow(ctx, query, regNumber))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find vehicle by registration number",
			zap.Error(err),
			zap.String("registration_number", regNumber),
		)
		return nil, fmt.Errorf("find vehicle by registration number %s: %w", regNumber, err)
	}

	return vehicle, nil
}

func (r *vehicleRepository) FindByDriverID(ctx context.Context, driverID uuid.UUID) ([]*entity.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE driver_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, driverID)
	if err != nil {
		r.log.Error("Failed to find vehicles by driver ID",
			zap.Error(err),
			zap.String("driver_id", driverID.String()),
		)
		return nil, fmt.Errorf("find vehicles by driver ID %s: %w", driverID.String(), err)
	}
	defer rows.Close()

	var vehicles []*entity.Vehicle
	for rows.Next() {
		vehicle, err := scanVehicle(rows)
		if err != nil {
			r.log.Error("Failed to scan vehicle row", zap.Error(err))
			return nil, fmt.Errorf("scan vehicle row: %w", err)
		}
		vehicles = append(vehicles, vehicle)
	}

	return vehicles, nil
}

// FindActiveByDriverID returns the driver's active vehicle, or nil when none.
func (r *vehicleRepository) FindActiveByDriverID(ctx context.Context, driverID uuid.UUID) (*entity.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles
		WHERE driver_id = $1 AND is_active = true
		ORDER BY created_at DESC
		LIMIT 1`

	vehicle, err := scanVehicle(r.db.QueryRow(ctx, query, driverID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find active vehicle",
			zap.Error(err),
			zap.String("driver_id", driverID.String()),
		)
		return nil, fmt.Errorf("find active vehicle for driver %s: %w", driverID.String(), err)
	}

	return vehicle, nil
}

func (r *vehicleRepository) FindAll(ctx context.Context) ([]*entity.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list vehicles", zap.Error(err))
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []*entity.Vehicle
	for rows.Next() {
		vehicle, err := scanVehicle(rows)
		if err != nil {
			r.log.Error("Failed to scan vehicle row", zap.Error(err))
			return nil, fmt.Errorf("scan vehicle row: %w", err)
		}
		vehicles = append(vehicles, vehicle)
	}

	return vehicles, nil
}

func (r *vehicleRepository) Update(ctx context.Context, vehicle *entity.Vehicle) error {
	query := `
		UPDATE vehicles
		SET category = $2, make = $3, model = $4, color = $5,
		    seat_capacity = $6, is_active = $7, updated_at = $8
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		vehicle.ID,
		vehicle.Category,
		vehicle.Make,
		vehicle.Model,
		vehicle.Color,
		vehicle.SeatCapacity,
		vehicle.IsActive,
		vehicle.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update vehicle",
			zap.Error(err),
			zap.String("vehicle_id", vehicle.ID.String()),
		)
		return fmt.Errorf("update vehicle %s: %w", vehicle.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("vehicle %s not found", vehicle.ID.String())
	}

	return nil
}

func (r *vehicleRepository) SetVerified(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE vehicles
		SET is_verified = true, verified_at = NOW(), updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to verify vehicle",
			zap.Error(err),
			zap.String("vehicle_id", id.String()),
		)
		return fmt.Errorf("verify vehicle %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("vehicle %s not found", id.String())
	}

	return nil
}

func (r *vehicleRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE vehicles SET is_active = false, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to deactivate vehicle",
			zap.Error(err),
			zap.String("vehicle_id", id.String()),
		)
		return fmt.Errorf("deactivate vehicle %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("vehicle %s not found", id.String())
	}

	r.log.Info("Vehicle deactivated", zap.String("vehicle_id", id.String()))
	return nil
}

func (r *vehicleRepository) CountAll(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM vehicles`

	var count int64
	err := r.db.QueryRow(ctx, query).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count vehicles", zap.Error(err))
		return 0, fmt.Errorf("count vehicles: %w", err)
	}

	return count, nil
}

func (r *vehicleRepository) CountUnverified(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM vehicles WHERE is_verified = false AND is_active = true`

	var count int64
	err := r.db.QueryRow(ctx, query).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count unverified vehicles", zap.Error(err))
		return 0, fmt.Errorf("count unverified vehicles: %w", err)
	}

	return count, nil
}
