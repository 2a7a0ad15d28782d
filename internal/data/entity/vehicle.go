package entity

import (
	"time"

	"github.com/google/uuid"
)

type VehicleCategory string

const (
	// VehicleCab is an exclusive-use ride.
	VehicleCab VehicleCategory = "Cab"
	// VehicleCarpool is a shared, seat-metered ride.
	VehicleCarpool VehicleCategory = "Carpool"
)

type Vehicle struct {
	Base
	DriverID           uuid.UUID       `db:"driver_id"`
	RegistrationNumber string          `db:"registration_number"`
	Category           VehicleCategory `db:"category"`
	Make               string          `db:"make"`
	Model              string          `db:"model"`
	Color              string          `db:"color"`
	SeatCapacity       int             `db:"seat_capacity"`
	IsActive           bool            `db:"is_active"`
	IsVerified         bool            `db:"is_verified"`
	VerifiedAt         *time.Time      `db:"verified_at"`
}

// CanHostRide reports whether a new ride may be created for this vehicle.
func (v *Vehicle) CanHostRide() bool {
	return v.IsActive && v.IsVerified
}
