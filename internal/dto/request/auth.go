package request

type RegisterRequest struct {
	FullName      string  `json:"full_name" validate:"required,min=2,max=100"`
	Email         string  `json:"email" validate:"required,email"`
	Password      string  `json:"password" validate:"required,min=8"`
	Phone         *string `json:"phone,omitempty" validate:"omitempty,min=7,max=20"`
	Role          string  `json:"role" validate:"required,oneof=customer driver"`
	LicenseNumber *string `json:"license_number,omitempty" validate:"omitempty,min=4,max=30"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type SendOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,len=6,numeric"`
}
