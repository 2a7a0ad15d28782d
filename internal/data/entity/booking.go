package entity

import (
	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "Confirmed"
	BookingStatusCancelled BookingStatus = "Cancelled"
)

// Booking reserves seats on one ride. SeatsBooked and TotalFare are fixed at
// creation; TotalFare is a snapshot of seats * fare-per-seat at booking time.
type Booking struct {
	Base
	RideID       uuid.UUID     `db:"ride_id"`
	CustomerID   uuid.UUID     `db:"customer_id"`
	SeatsBooked  int           `db:"seats_booked"`
	TotalFare    float64       `db:"total_fare"`
	Status       BookingStatus `db:"status"`
	CancelReason *string       `db:"cancel_reason"`
}
