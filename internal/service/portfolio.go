// Package service wraps the store with defensive validation. The store
// itself trusts its inputs; callers that cannot be trusted to pre-validate
// (anything driven by user input) should go through Portfolio instead.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/rentfolio/property-management-service/internal/model"
	"github.com/rentfolio/property-management-service/internal/store"
)

// ErrPropertyNotFound is returned when a tenant is created against a
// property id that does not exist.
var ErrPropertyNotFound = errors.New("property not found")

// Portfolio validates mutations before handing them to the store.
type Portfolio struct {
	store *store.Store
}

func NewPortfolio(s *store.Store) *Portfolio {
	return &Portfolio{store: s}
}

// Store exposes the underlying store for read paths that need no
// validation.
func (p *Portfolio) Store() *store.Store {
	return p.store
}

// AddProperty validates and creates a property.
func (p *Portfolio) AddProperty(ctx context.Context, data model.NewProperty) (model.Property, error) {
	if err := validateNewProperty(data); err != nil {
		return model.Property{}, err
	}
	return p.store.AddProperty(ctx, data)
}

// UpdateProperty validates the supplied fields and applies the update.
func (p *Portfolio) UpdateProperty(ctx context.Context, id string, updates model.PropertyUpdate) error {
	if err := validatePropertyUpdate(updates); err != nil {
		return err
	}
	return p.store.UpdateProperty(ctx, id, updates)
}

// AddTenant validates and creates a tenant. Unlike the store, it rejects
// creation when the referenced property does not exist, so a tenant can
// never be born dangling.
func (p *Portfolio) AddTenant(ctx context.Context, data model.NewTenant) (model.Tenant, error) {
	if err := validateNewTenant(data); err != nil {
		return model.Tenant{}, err
	}
	if _, ok := p.store.GetProperty(data.PropertyID); !ok {
		log.Warn().Str("property_id", data.PropertyID).Msg("Rejected tenant creation against unknown property")
		return model.Tenant{}, ErrPropertyNotFound
	}
	return p.store.AddTenant(ctx, data)
}

// UpdateTenant validates the supplied fields and applies the update.
func (p *Portfolio) UpdateTenant(ctx context.Context, id string, updates model.TenantUpdate) error {
	if err := validateTenantUpdate(updates); err != nil {
		return err
	}
	if updates.PropertyID != nil {
		if _, ok := p.store.GetProperty(*updates.PropertyID); !ok {
			return ErrPropertyNotFound
		}
	}
	return p.store.UpdateTenant(ctx, id, updates)
}

func validateNewProperty(data model.NewProperty) error {
	if data.Name == "" {
		return errors.New("name is required")
	}
	if !model.ValidPropertyType(data.Type) {
		return fmt.Errorf("invalid property type %q", data.Type)
	}
	if data.Address == "" {
		return errors.New("address is required")
	}
	if data.Units != nil && *data.Units < 1 {
		return errors.New("units must be at least 1")
	}
	if data.PurchasePrice != nil && *data.PurchasePrice < 0 {
		return errors.New("purchase price must not be negative")
	}
	return nil
}

func validatePropertyUpdate(updates model.PropertyUpdate) error {
	if updates.Name != nil && *updates.Name == "" {
		return errors.New("name must not be empty")
	}
	if updates.Type != nil && !model.ValidPropertyType(*updates.Type) {
		return fmt.Errorf("invalid property type %q", *updates.Type)
	}
	if updates.Units != nil && *updates.Units < 1 {
		return errors.New("units must be at least 1")
	}
	if updates.PurchasePrice != nil && *updates.PurchasePrice < 0 {
		return errors.New("purchase price must not be negative")
	}
	return nil
}

func validateNewTenant(data model.NewTenant) error {
	if data.Name == "" {
		return errors.New("name is required")
	}
	if data.Email != "" && !isValidEmail(data.Email) {
		return errors.New("invalid email format")
	}
	if data.RentAmount < 0 {
		return errors.New("rent amount must not be negative")
	}
	if data.RentDueDay < 1 || data.RentDueDay > 31 {
		return errors.New("rent due day must be between 1 and 31")
	}
	if !model.ValidTenantStatus(data.Status) {
		return fmt.Errorf("invalid tenant status %q", data.Status)
	}
	if !data.LeaseEnd.IsZero() && data.LeaseEnd.Before(data.LeaseStart) {
		return errors.New("lease end must not precede lease start")
	}
	return nil
}

func validateTenantUpdate(updates model.TenantUpdate) error {
	if updates.Name != nil && *updates.Name == "" {
		return errors.New("name must not be empty")
	}
	if updates.Email != nil && *updates.Email != "" && !isValidEmail(*updates.Email) {
		return errors.New("invalid email format")
	}
	if updates.RentAmount != nil && *updates.RentAmount < 0 {
		return errors.New("rent amount must not be negative")
	}
	if updates.RentDueDay != nil && (*updates.RentDueDay < 1 || *updates.RentDueDay > 31) {
		return errors.New("rent due day must be between 1 and 31")
	}
	if updates.Status != nil && !model.ValidTenantStatus(*updates.Status) {
		return fmt.Errorf("invalid tenant status %q", *updates.Status)
	}
	return nil
}

// isValidEmail performs a basic email validation
func isValidEmail(email string) bool {
	// Simple check: contains @ and .
	if len(email) < 3 || !strings.Contains(email, "@") || !strings.Contains(email, ".") {
		return false
	}
	return true
}
