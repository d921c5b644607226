// Package stats derives dashboard aggregates from the current collections.
// Everything here is pure: no side effects, no persistence, safe to call
// on every render of a consuming view.
package stats

import (
	"github.com/rentfolio/property-management-service/internal/model"
)

// Compute returns the portfolio-wide dashboard aggregates.
//
// Only tenants with status "active" count toward tenant totals, revenue
// and occupancy. Occupancy treats a property without a declared unit
// count as a single unit, and an empty portfolio (zero total units)
// yields an occupancy of 0 rather than dividing by zero.
func Compute(properties []model.Property, tenants []model.Tenant) model.DashboardStats {
	s := model.DashboardStats{TotalProperties: len(properties)}

	for _, t := range tenants {
		switch t.Status {
		case model.TenantActive:
			s.TotalTenants++
			s.TotalMonthlyRent += t.RentAmount
		case model.TenantLate:
			s.LatePayments++
		}
	}

	totalUnits := 0
	for _, p := range properties {
		totalUnits += p.UnitCount()
	}
	if totalUnits > 0 {
		s.OccupancyRate = float64(s.TotalTenants) / float64(totalUnits) * 100
	}
	return s
}

// ForProperty returns the rollup for a single property: its active
// tenant count and the summed rent of those tenants.
func ForProperty(propertyID string, tenants []model.Tenant) model.PropertyStats {
	var s model.PropertyStats
	for _, t := range tenants {
		if t.PropertyID != propertyID || t.Status != model.TenantActive {
			continue
		}
		s.ActiveTenants++
		s.MonthlyRent += t.RentAmount
	}
	return s
}
