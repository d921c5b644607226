package model

// DashboardStats are the portfolio-wide aggregates shown on the dashboard.
// All values are raw numbers; rounding and currency formatting belong to
// the presentation layer.
type DashboardStats struct {
	TotalProperties  int     `json:"totalProperties"`
	TotalTenants     int     `json:"totalTenants"`
	TotalMonthlyRent float64 `json:"totalMonthlyRent"`
	OccupancyRate    float64 `json:"occupancyRate"`
	LatePayments     int     `json:"latePayments"`
}

// PropertyStats is the per-property rollup used by property cards and
// detail views. Only active tenants count.
type PropertyStats struct {
	ActiveTenants int     `json:"activeTenants"`
	MonthlyRent   float64 `json:"monthlyRent"`
}
