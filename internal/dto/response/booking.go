package response

import (
	"time"

	"wheelshare/internal/data/entity"
)

type BookingResponse struct {
	ID           string               `json:"id"`
	RideID       string               `json:"ride_id"`
	CustomerID   string               `json:"customer_id"`
	Source       string               `json:"source,omitempty"`
	Destination  string               `json:"destination,omitempty"`
	RideDateTime *time.Time           `json:"ride_datetime,omitempty"`
	SeatsBooked  int                  `json:"seats_booked"`
	TotalFare    float64              `json:"total_fare"`
	Status       entity.BookingStatus `json:"status"`
	CancelReason *string              `json:"cancel_reason,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
}

// Helper converters
func BookingToResponse(booking *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:           booking.ID.String(),
		RideID:       booking.RideID.String(),
		CustomerID:   booking.CustomerID.String(),
		SeatsBooked:  booking.SeatsBooked,
		TotalFare:    booking.TotalFare,
		Status:       booking.Status,
		CancelReason: booking.CancelReason,
		CreatedAt:    booking.CreatedAt,
	}
}

// BookingWithRideToResponse enriches the booking with its ride details when
// the ride still exists.
func BookingWithRideToResponse(booking *entity.Booking, ride *entity.Ride) BookingResponse {
	resp := BookingToResponse(booking)
	if ride != nil {
		resp.Source = ride.Source
		resp.Destination = ride.Destination
		dt := ride.RideDateTime
		resp.RideDateTime = &dt
	}
	return resp
}
