package request

type CreateBookingRequest struct {
	RideID string `json:"ride_id" validate:"required,uuid4"`
	// Seats carries no validate tag: a non-positive count must lose to a
	// missing or closed ride, so the service checks it after the lookup.
	Seats int `json:"seats"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason" validate:"max=255"`
}
