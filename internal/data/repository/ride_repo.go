package repository

import (
	"context"
	"fmt"
	"time"

	"wheelshare/internal/data/entity"
	"wheelshare/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type RideRepository interface {
	Create(ctx context.Context, ride *entity.Ride) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Ride, error)
	FindOpenSince(ctx context.Context, departAfter time.Time) ([]*entity.Ride, error)
	FindByDriverID(ctx context.Context, driverID uuid.UUID) ([]*entity.Ride, error)
	UpdateStatus(ctx context.Context, rideID uuid.UUID, status entity.RideStatus) error
	CountAll(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status entity.RideStatus) (int64, error)

	// Transactional seat inventory. ReserveSeats is the atomic
	// check-and-decrement: it succeeds only when the ride is still Open and
	// has at least n seats left, reporting the outcome via rows affected.
	FindByIDTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*entity.Ride, error)
	ReserveSeats(ctx context.Context, tx pgx.Tx, rideID uuid.UUID, n int) (bool, error)
	ReleaseSeats(ctx context.Context, tx pgx.Tx, rideID uuid.UUID, n int) (bool, error)
}

type rideRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewRideRepository(db database.PgxIface, log *zap.Logger) RideRepository {
	return &rideRepository{
		db:  db,
		log: log.With(zap.String("repository", "ride")),
	}
}

const rideColumns = `id, vehicle_id, source, destination,
	source_latitude, source_longitude, destination_latitude, destination_longitude,
	available_seats, fare_per_seat, ride_datetime, status, created_at, updated_at`

func scanRide(row pgx.Row) (*entity.Ride, error) {
	var ride entity.Ride
	err := row.Scan(
		&ride.ID,
		&ride.VehicleID,
		&ride.Source,
		&ride.Destination,
		&ride.SourceLatitude,
		&ride.SourceLongitude,
		&ride.DestinationLatitude,
		&ride.DestinationLongitude,
		&ride.AvailableSeats,
		&ride.FarePerSeat,
		&ride.RideDateTime,
		&ride.Status,
		&ride.CreatedAt,
		&ride.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &ride, nil
}

func (r *rideRepository) Create(ctx context.Context, ride *entity.Ride) error {
	query := `
		INSERT INTO rides (id, vehicle_id, source, destination,
		                   source_latitude, source_longitude, destination_latitude, destination_longitude,
		                   available_seats, fare_per_seat, ride_datetime, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.db.Exec(ctx, query,
		ride.ID,
		ride.VehicleID,
		ride.Source,
		ride.Destination,
		ride.SourceLatitude,
		ride.SourceLongitude,
		ride.DestinationLatitude,
		ride.DestinationLongitude,
		ride.AvailableSeats,
		ride.FarePerSeat,
		ride.RideDateTime,
		ride.Status,
		ride.CreatedAt,
		ride.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create ride",
			zap.Error(err),
			zap.String("vehicle_id", ride.VehicleID.String()),
			zap.String("source", ride.Source),
		)
		return fmt.Errorf("create ride: %w", err)
	}

	return nil
}

func (r *rideRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Ride, error) {
	query := `SELECT ` + rideColumns + ` FROM rides WHERE id = $1`

	ride, err := scanRide(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find ride by ID",
			zap.Error(err),
			zap.String("ride_id", id.String()),
		)
		return nil, fmt.Errorf("find ride by ID %s: %w", id.String(), err)
	}

	return ride, nil
}

// FindOpenSince returns Open rides departing at or after departAfter, in
// creation order.
func (r *rideRepository) FindOpenSince(ctx context.Context, departAfter time.Time) ([]*entity.Ride, error) {
	query := `SELECT ` + rideColumns + ` FROM rides
		WHERE status = $1 AND ride_datetime >= $2
		ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, entity.RideStatusOpen, departAfter)
	if err != nil {
		r.log.Error("Failed to find open rides", zap.Error(err))
		return nil, fmt.Errorf("find open rides: %w", err)
	}
	defer rows.Close()

	var rides []*entity.Ride
	for rows.Next() {
		ride, err := scanRide(rows)
		if err != nil {
			r.log.Error("Failed to scan ride row", zap.Error(err))
			return nil, fmt.Errorf("scan ride row: %w", err)
		}
		rides = append(rides, ride)
	}

	return rides, nil
}

func (r *rideRepository) FindByDriverID(ctx context.Context, driverID uuid.UUID) ([]*entity.Ride, error) {
	query := `SELECT r.id, r.vehicle_id, r.source, r.destination,
		r.source_latitude, r.source_longitude, r.destination_latitude, r.destination_longitude,
		r.available_seats, r.fare_per_seat, r.ride_datetime, r.status, r.created_at, r.updated_at
		FROM rides r
		JOIN vehicles v ON v.id = r.vehicle_id
		WHERE v.driver_id = $1
		ORDER BY r.ride_datetime DESC`

	rows, err := r.db.Query(ctx, query, driverID)
	if err != nil {
		r.log.Error("Failed to find rides by driver ID",
			zap.Error(err),
			zap.String("driver_id", driverID.String()),
		)
		return nil, fmt.Errorf("find rides by driver ID %s: %w", driverID.String(), err)
	}
	defer rows.Close()

	var rides []*entity.Ride
	for rows.Next() {
		ride, err := scanRide(rows)
		if err != nil {
			r.log.Error("Failed to scan ride row", zap.Error(err))
			return nil, fmt.Errorf("scan ride row: %w", err)
		}
		rides = append(rides, ride)
	}

	return rides, nil
}

func (r *rideRepository) UpdateStatus(ctx context.Context, rideID uuid.UUID, status entity.RideStatus) error {
	query := `UPDATE rides SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, rideID, status)
	if err != nil {
		r.log.Error("Failed to update ride status",
			zap.Error(err),
			zap.String("ride_id", rideID.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update ride %s status to %s: %w", rideID.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("ride %s not found", rideID.String())
	}

	return nil
}

func (r *rideRepository) CountAll(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM rides`

	var count int64
	err := r.db.QueryRow(ctx, query).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count rides", zap.Error(err))
		return 0, fmt.Errorf("count rides: %w", err)
	}

	return count, nil
}

func (r *rideRepository) CountByStatus(ctx context.Context, status entity.RideStatus) (int64, error) {
	query := `SELECT COUNT(*) FROM rides WHERE status = $1`

	var count int64
	err := r.db.QueryRow(ctx, query, status).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count rides by status",
			zap.Error(err),
			zap.String("status", string(status)),
		)
		return 0, fmt.Errorf("count rides by status %s: %w", string(status), err)
	}

	return count, nil
}

func (r *rideRepository) FindByIDTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*entity.Ride, error) {
	query := `SELECT ` + rideColumns + ` FROM rides WHERE id = $1`

	ride, err := scanRide(tx.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find ride in transaction",
			zap.Error(err),
			zap.String("ride_id", id.String()),
		)
		return nil, fmt.Errorf("find ride %s in transaction: %w", id.String(), err)
	}

	return ride, nil
}

// ReserveSeats performs the conditional decrement. A false return means the
// ride is gone, no longer Open, or short of seats; the caller re-reads to
// report the precise reason.
func (r *rideRepository) ReserveSeats(ctx context.Context, tx pgx.Tx, rideID uuid.UUID, n int) (bool, error) {
	query := `
		UPDATE rides
		SET available_seats = available_seats - $2, updated_at = NOW()
		WHERE id = $1 AND status = $3 AND available_seats >= $2
	`

	result, err := tx.Exec(ctx, query, rideID, n, entity.RideStatusOpen)
	if err != nil {
		r.log.Error("Failed to reserve seats",
			zap.Error(err),
			zap.String("ride_id", rideID.String()),
			zap.Int("seats", n),
		)
		return false, fmt.Errorf("reserve %d seats on ride %s: %w", n, rideID.String(), err)
	}

	return result.RowsAffected() > 0, nil
}

// ReleaseSeats returns seats to the ride. A false return means the ride row
// no longer exists, which cancellation tolerates.
func (r *rideRepository) ReleaseSeats(ctx context.Context, tx pgx.Tx, rideID uuid.UUID, n int) (bool, error) {
	query := `
		UPDATE rides
		SET available_seats = available_seats + $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := tx.Exec(ctx, query, rideID, n)
	if err != nil {
		r.log.Error("Failed to release seats",
			zap.Error(err),
			zap.String("ride_id", rideID.String()),
			zap.Int("seats", n),
		)
		return false, fmt.Errorf("release %d seats on ride %s: %w", n, rideID.String(), err)
	}

	return result.RowsAffected() > 0, nil
}
