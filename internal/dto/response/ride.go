package response

import (
	"time"

	"wheelshare/internal/data/entity"
)

// RideOption is one search hit. DistanceKm is the pickup-to-source haversine
// distance rounded to two decimals.
type RideOption struct {
	RideID         string                 `json:"ride_id"`
	DriverName     string                 `json:"driver_name"`
	VehicleModel   string                 `json:"vehicle_model"`
	Category       entity.VehicleCategory `json:"category"`
	Source         string                 `json:"source"`
	Destination    string                 `json:"destination"`
	DistanceKm     float64                `json:"distance_km"`
	FarePerSeat    float64                `json:"fare_per_seat"`
	AvailableSeats int                    `json:"available_seats"`
	RideDateTime   time.Time              `json:"ride_datetime"`
}

type SearchRidesResponse struct {
	PickupLatitude  float64      `json:"pickup_latitude"`
	PickupLongitude float64      `json:"pickup_longitude"`
	Cabs            []RideOption `json:"cabs"`
	Carpools        []RideOption `json:"carpools"`
}

type RideResponse struct {
	ID             string            `json:"id"`
	VehicleID      string            `json:"vehicle_id"`
	Source         string            `json:"source"`
	Destination    string            `json:"destination"`
	AvailableSeats int               `json:"available_seats"`
	FarePerSeat    float64           `json:"fare_per_seat"`
	RideDateTime   time.Time         `json:"ride_datetime"`
	Status         entity.RideStatus `json:"status"`
	BookingsCount  int               `json:"bookings_count,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
}

// Helper converters
func RideToResponse(ride *entity.Ride) RideResponse {
	return RideResponse{
		ID:             ride.ID.String(),
		VehicleID:      ride.VehicleID.String(),
		Source:         ride.Source,
		Destination:    ride.Destination,
		AvailableSeats: ride.AvailableSeats,
		FarePerSeat:    ride.FarePerSeat,
		RideDateTime:   ride.RideDateTime,
		Status:         ride.Status,
		CreatedAt:      ride.CreatedAt,
	}
}
