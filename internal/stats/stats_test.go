package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rentfolio/property-management-service/internal/model"
)

func intPtr(v int) *int { return &v }

func property(id string, units *int) model.Property {
	return model.Property{ID: id, Name: id, Type: model.PropertyApartment, Units: units}
}

func tenant(propertyID string, rent float64, status model.TenantStatus) model.Tenant {
	return model.Tenant{PropertyID: propertyID, RentAmount: rent, Status: status}
}

func TestCompute_Empty(t *testing.T) {
	got := Compute(nil, nil)
	assert.Equal(t, model.DashboardStats{}, got)
}

func TestCompute_OnlyActiveTenantsCount(t *testing.T) {
	properties := []model.Property{property("a", intPtr(10))}
	tenants := []model.Tenant{
		tenant("a", 1000, model.TenantActive),
		tenant("a", 2000, model.TenantLate),
		tenant("a", 3000, model.TenantInactive),
	}

	got := Compute(properties, tenants)
	assert.Equal(t, 1, got.TotalTenants)
	assert.Equal(t, 1000.0, got.TotalMonthlyRent)
	assert.Equal(t, 1, got.LatePayments)
	assert.Equal(t, 10.0, got.OccupancyRate)
}

func TestCompute_UndeclaredUnitsCountAsOne(t *testing.T) {
	properties := []model.Property{
		property("a", nil),
		property("b", intPtr(3)),
	}
	tenants := []model.Tenant{
		tenant("a", 500, model.TenantActive),
		tenant("b", 600, model.TenantActive),
	}

	// 2 active tenants over 1+3 units
	got := Compute(properties, tenants)
	assert.Equal(t, 50.0, got.OccupancyRate)
}

func TestCompute_TenantsWithoutPropertiesYieldZeroOccupancy(t *testing.T) {
	tenants := []model.Tenant{tenant("gone", 500, model.TenantActive)}

	got := Compute(nil, tenants)
	assert.Equal(t, 0.0, got.OccupancyRate)
	assert.Equal(t, 1, got.TotalTenants)
}

func TestForProperty(t *testing.T) {
	tenants := []model.Tenant{
		tenant("a", 800, model.TenantActive),
		tenant("a", 900, model.TenantLate),
		tenant("b", 700, model.TenantActive),
	}

	got := ForProperty("a", tenants)
	assert.Equal(t, 1, got.ActiveTenants)
	assert.Equal(t, 800.0, got.MonthlyRent)

	assert.Equal(t, model.PropertyStats{}, ForProperty("missing", tenants))
}
