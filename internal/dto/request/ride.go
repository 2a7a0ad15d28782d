package request

type SearchRidesRequest struct {
	PickupAddress string `json:"pickup_address" validate:"required,min=3"`
	DropAddress   string `json:"drop_address" validate:"required,min=3"`
}

type CreateRideRequest struct {
	VehicleID      string  `json:"vehicle_id" validate:"required,uuid4"`
	Source         string  `json:"source" validate:"required,min=3"`
	Destination    string  `json:"destination" validate:"required,min=3"`
	AvailableSeats int     `json:"available_seats" validate:"required,min=1,max=20"`
	FarePerSeat    float64 `json:"fare_per_seat" validate:"required,gt=0"`
	RideDateTime   string  `json:"ride_datetime" validate:"required"`
}

type UpdateRideStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Open InProgress Completed Cancelled"`
}
