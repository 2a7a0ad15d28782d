package request

type CreateVehicleRequest struct {
	RegistrationNumber string `json:"registration_number" validate:"required,min=4,max=20"`
	Category           string `json:"category" validate:"required,oneof=Cab Carpool"`
	Make               string `json:"make" validate:"required,min=2,max=50"`
	Model              string `json:"model" validate:"required,min=1,max=50"`
	Color              string `json:"color" validate:"required,min=2,max=30"`
	SeatCapacity       int    `json:"seat_capacity" validate:"required,min=1,max=20"`
}

type UpdateVehicleRequest struct {
	Make         string `json:"make" validate:"required,min=2,max=50"`
	Model        string `json:"model" validate:"required,min=1,max=50"`
	Color        string `json:"color" validate:"required,min=2,max=30"`
	SeatCapacity int    `json:"seat_capacity" validate:"required,min=1,max=20"`
	IsActive     *bool  `json:"is_active,omitempty"`
}
