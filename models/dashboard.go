package models

// DashboardStats are the admin headline counters.
type DashboardStats struct {
	TotalBookings     int64   `json:"totalBookings"`
	PendingBookings   int64   `json:"pendingBookings"`
	CompletedBookings int64   `json:"completedBookings"`
	TotalUsers        int64   `json:"totalUsers"`
	TodayPickups      int64   `json:"todayPickups"`
	MonthlyRevenue    float64 `json:"monthlyRevenue"`
}
