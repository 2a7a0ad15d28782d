package entity

import (
	"time"

	"github.com/google/uuid"
)

type RideStatus string

const (
	RideStatusOpen       RideStatus = "Open"
	RideStatusInProgress RideStatus = "InProgress"
	RideStatusCompleted  RideStatus = "Completed"
	RideStatusCancelled  RideStatus = "Cancelled"
)

// ValidRideStatus reports whether s is a known lifecycle state.
func ValidRideStatus(s string) bool {
	switch RideStatus(s) {
	case RideStatusOpen, RideStatusInProgress, RideStatusCompleted, RideStatusCancelled:
		return true
	}
	return false
}

// Ride is a single offered trip. AvailableSeats is the remaining inventory
// and is mutated only by booking create/cancel; rides are never deleted, only
// status-transitioned.
type Ride struct {
	Base
	VehicleID            uuid.UUID  `db:"vehicle_id"`
	Source               string     `db:"source"`
	Destination          string     `db:"destination"`
	SourceLatitude       float64    `db:"source_latitude"`
	SourceLongitude      float64    `db:"source_longitude"`
	DestinationLatitude  float64    `db:"destination_latitude"`
	DestinationLongitude float64    `db:"destination_longitude"`
	AvailableSeats       int        `db:"available_seats"`
	FarePerSeat          float64    `db:"fare_per_seat"`
	RideDateTime         time.Time  `db:"ride_datetime"`
	Status               RideStatus `db:"status"`
}

// Bookable reports whether the ride can accept new bookings.
func (r *Ride) Bookable() bool {
	return r.Status == RideStatusOpen && r.AvailableSeats > 0
}
