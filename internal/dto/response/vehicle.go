package response

import (
	"time"

	"wheelshare/internal/data/entity"
)

type VehicleResponse struct {
	ID                 string                 `json:"id"`
	DriverID           string                 `json:"driver_id"`
	RegistrationNumber string                 `json:"registration_number"`
	Category           entity.VehicleCategory `json:"category"`
	Make               string                 `json:"make"`
	Model              string                 `json:"model"`
	Color              string                 `json:"color"`
	SeatCapacity       int                    `json:"seat_capacity"`
	IsActive           bool                   `json:"is_active"`
	IsVerified         bool                   `json:"is_verified"`
	VerifiedAt         *time.Time             `json:"verified_at,omitempty"`
	CreatedAt          time.Time              `json:"created_at"`
}

// Helper converters
func VehicleToResponse(vehicle *entity.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:                 vehicle.ID.String(),
		DriverID:           vehicle.DriverID.String(),
		RegistrationNumber: vehicle.RegistrationNumber,
		Category:           vehicle.Category,
		Make:               vehicle.Make,
		Model:              vehicle.Model,
		Color:              vehicle.Color,
		SeatCapacity:       vehicle.SeatCapacity,
		IsActive:           vehicle.IsActive,
		IsVerified:         vehicle.IsVerified,
		VerifiedAt:         vehicle.VerifiedAt,
		CreatedAt:          vehicle.CreatedAt,
	}
}

func VehiclesToResponse(vehicles []*entity.Vehicle) []VehicleResponse {
	out := make([]VehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		out = append(out, VehicleToResponse(v))
	}
	return out
}
