package response

type DashboardResponse struct {
	TotalUsers         int64 `json:"total_users"`
	TotalDrivers       int64 `json:"total_drivers"`
	TotalVehicles      int64 `json:"total_vehicles"`
	UnverifiedVehicles int64 `json:"unverified_vehicles"`
	TotalRides         int64 `json:"total_rides"`
	OpenRides          int64 `json:"open_rides"`
	TotalBookings      int64 `json:"total_bookings"`
	ActiveBookings     int64 `json:"active_bookings"`
}
