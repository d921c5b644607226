// Package store owns the canonical in-memory collections of properties
// and tenants and mirrors them to durable storage after every mutation.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/rentfolio/property-management-service/internal/model"
	"github.com/rentfolio/property-management-service/internal/monitoring"
	"github.com/rentfolio/property-management-service/internal/stats"
	"github.com/rentfolio/property-management-service/internal/storage"
)

// Store is the single source of truth for the portfolio during a run.
// The in-memory collections are authoritative; durable storage is a
// mirror that becomes authoritative again only on the next load.
//
// One Store instance is constructed at startup and shared by reference.
// The handle is safe for concurrent use within a process. Two processes
// (or two stores) over the same backend are not coordinated: the last
// writer wins, with no locking, versioning or merge.
type Store struct {
	mu      sync.RWMutex
	backend storage.Backend

	properties []model.Property
	tenants    []model.Tenant
	loading    bool
}

// Open loads both collections from the backend and returns a ready
// store. A missing entry yields an empty collection; an entry that fails
// to parse is logged and likewise treated as empty, since it only
// affects display and the next persist rewrites it. Any other read
// failure means storage is unavailable and is returned as an error.
func Open(ctx context.Context, backend storage.Backend) (*Store, error) {
	s := &Store{backend: backend, loading: true}

	if err := loadEntry(ctx, backend, storage.PropertiesKey, &s.properties); err != nil {
		return nil, err
	}
	if err := loadEntry(ctx, backend, storage.TenantsKey, &s.tenants); err != nil {
		return nil, err
	}
	s.loading = false

	monitoring.EntityCount.WithLabelValues("property").Set(float64(len(s.properties)))
	monitoring.EntityCount.WithLabelValues("tenant").Set(float64(len(s.tenants)))
	return s, nil
}

func loadEntry[T any](ctx context.Context, backend storage.Backend, key string, out *[]T) error {
	payload, err := backend.Read(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load %s: %w", key, err)
	}
	if err := json.Unmarshal(payload, out); err != nil {
		log.Warn().Err(err).Str("entry", key).Msg("Stored entry is corrupt, starting from an empty collection")
		*out = nil
	}
	return nil
}

// Loading reports whether the initial load is still in progress.
// Consumers must treat loading as "data not yet authoritative".
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Close releases the underlying backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

// AddProperty assigns identity and timestamps, appends the property and
// persists the collection. The record is created in memory even when the
// persist fails; a non-nil error is a recoverable warning, not a rollback.
func (s *Store) AddProperty(ctx context.Context, data model.NewProperty) (model.Property, error) {
	now := time.Now()
	p := model.Property{
		ID:            uuid.NewString(),
		Name:          data.Name,
		Type:          data.Type,
		Address:       data.Address,
		City:          data.City,
		State:         data.State,
		ZipCode:       data.ZipCode,
		Units:         data.Units,
		PurchasePrice: data.PurchasePrice,
		PurchaseDate:  data.PurchaseDate,
		Notes:         data.Notes,
		Image:         data.Image,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.properties = append(s.properties, p)
	monitoring.Mutations.WithLabelValues("property", "add").Inc()
	return p, s.persistProperties(ctx)
}

// UpdateProperty merges the non-nil fields of updates onto the property
// with the given id and persists. Updating a nonexistent id is a no-op.
func (s *Store) UpdateProperty(ctx context.Context, id string, updates model.PropertyUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOfProperty(s.properties, id)
	if i < 0 {
		return nil
	}
	p := &s.properties[i]
	if updates.Name != nil {
		p.Name = *updates.Name
	}
	if updates.Type != nil {
		p.Type = *updates.Type
	}
	if updates.Address != nil {
		p.Address = *updates.Address
	}
	if updates.City != nil {
		p.City = *updates.City
	}
	if updates.State != nil {
		p.State = *updates.State
	}
	if updates.ZipCode != nil {
		p.ZipCode = *updates.ZipCode
	}
	if updates.Units != nil {
		p.Units = updates.Units
	}
	if updates.PurchasePrice != nil {
		p.PurchasePrice = updates.PurchasePrice
	}
	if updates.PurchaseDate != nil {
		p.PurchaseDate = updates.PurchaseDate
	}
	if updates.Notes != nil {
		p.Notes = updates.Notes
	}
	if updates.Image != nil {
		p.Image = updates.Image
	}
	p.UpdatedAt = time.Now()

	monitoring.Mutations.WithLabelValues("property", "update").Inc()
	return s.persistProperties(ctx)
}

// DeleteProperty removes the property and cascades to every tenant
// referencing it, so no tenant is ever left dangling. Both collections
// are persisted. Deleting a nonexistent id is a no-op.
func (s *Store) DeleteProperty(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOfProperty(s.properties, id)
	if i < 0 {
		return nil
	}
	s.properties = append(s.properties[:i], s.properties[i+1:]...)

	kept := s.tenants[:0]
	for _, t := range s.tenants {
		if t.PropertyID != id {
			kept = append(kept, t)
		}
	}
	s.tenants = kept

	monitoring.Mutations.WithLabelValues("property", "delete").Inc()
	if err := s.persistProperties(ctx); err != nil {
		// still try to persist the cascade
		_ = s.persistTenants(ctx)
		return err
	}
	return s.persistTenants(ctx)
}

// GetProperty returns a copy of the property with the given id.
func (s *Store) GetProperty(id string) (model.Property, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := indexOfProperty(s.properties, id)
	if i < 0 {
		return model.Property{}, false
	}
	return s.properties[i], true
}

// Properties returns a copy of the property collection in insertion order.
func (s *Store) Properties() []model.Property {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Property, len(s.properties))
	copy(out, s.properties)
	return out
}

// AddTenant assigns identity and timestamps, appends the tenant and
// persists. The store does not verify that data.PropertyID references a
// live property; callers wanting that check go through the service layer.
func (s *Store) AddTenant(ctx context.Context, data model.NewTenant) (model.Tenant, error) {
	now := time.Now()
	t := model.Tenant{
		ID:         uuid.NewString(),
		PropertyID: data.PropertyID,
		Name:       data.Name,
		Email:      data.Email,
		Phone:      data.Phone,
		Unit:       data.Unit,
		RentAmount: data.RentAmount,
		RentDueDay: data.RentDueDay,
		LeaseStart: data.LeaseStart,
		LeaseEnd:   data.LeaseEnd,
		Lease:      data.Lease.Clone(),
		Status:     data.Status,
		Notes:      data.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tenants = append(s.tenants, t)
	monitoring.Mutations.WithLabelValues("tenant", "add").Inc()
	return *cloneTenant(&t), s.persistTenants(ctx)
}

// UpdateTenant merges the non-nil fields of updates onto the tenant with
// the given id and persists. Updating a nonexistent id is a no-op.
// Attaching a lease replaces the previous one; RemoveLease detaches it.
func (s *Store) UpdateTenant(ctx context.Context, id string, updates model.TenantUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOfTenant(s.tenants, id)
	if i < 0 {
		return nil
	}
	t := &s.tenants[i]
	if updates.PropertyID != nil {
		t.PropertyID = *updates.PropertyID
	}
	if updates.Name != nil {
		t.Name = *updates.Name
	}
	if updates.Email != nil {
		t.Email = *updates.Email
	}
	if updates.Phone != nil {
		t.Phone = *updates.Phone
	}
	if updates.Unit != nil {
		t.Unit = updates.Unit
	}
	if updates.RentAmount != nil {
		t.RentAmount = *updates.RentAmount
	}
	if updates.RentDueDay != nil {
		t.RentDueDay = *updates.RentDueDay
	}
	if updates.LeaseStart != nil {
		t.LeaseStart = *updates.LeaseStart
	}
	if updates.LeaseEnd != nil {
		t.LeaseEnd = *updates.LeaseEnd
	}
	switch {
	case updates.RemoveLease:
		t.Lease = nil
	case updates.Lease != nil:
		t.Lease = updates.Lease.Clone()
	}
	if updates.Status != nil {
		t.Status = *updates.Status
	}
	if updates.Notes != nil {
		t.Notes = updates.Notes
	}
	t.UpdatedAt = time.Now()

	monitoring.Mutations.WithLabelValues("tenant", "update").Inc()
	return s.persistTenants(ctx)
}

// DeleteTenant removes the tenant with the given id and persists.
// Deleting a nonexistent id is a no-op.
func (s *Store) DeleteTenant(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOfTenant(s.tenants, id)
	if i < 0 {
		return nil
	}
	s.tenants = append(s.tenants[:i], s.tenants[i+1:]...)

	monitoring.Mutations.WithLabelValues("tenant", "delete").Inc()
	return s.persistTenants(ctx)
}

// GetTenant returns a copy of the tenant with the given id.
func (s *Store) GetTenant(id string) (model.Tenant, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := indexOfTenant(s.tenants, id)
	if i < 0 {
		return model.Tenant{}, false
	}
	return *cloneTenant(&s.tenants[i]), true
}

// GetTenantsByProperty returns copies of all tenants attached to the
// given property, in insertion order.
func (s *Store) GetTenantsByProperty(propertyID string) []model.Tenant {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Tenant
	for i := range s.tenants {
		if s.tenants[i].PropertyID == propertyID {
			out = append(out, *cloneTenant(&s.tenants[i]))
		}
	}
	return out
}

// Tenants returns a copy of the tenant collection in insertion order.
func (s *Store) Tenants() []model.Tenant {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Tenant, 0, len(s.tenants))
	for i := range s.tenants {
		out = append(out, *cloneTenant(&s.tenants[i]))
	}
	return out
}

// Stats derives the dashboard aggregates from the current collections.
func (s *Store) Stats() model.DashboardStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return stats.Compute(s.properties, s.tenants)
}

// StatsForProperty derives the rollup for a single property.
func (s *Store) StatsForProperty(propertyID string) model.PropertyStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return stats.ForProperty(propertyID, s.tenants)
}

// persistProperties writes the full property collection to its storage
// entry. Callers hold the write lock. A failed write is logged, alerted
// and counted; the in-memory state is kept as-is.
func (s *Store) persistProperties(ctx context.Context) error {
	err := persistEntry(ctx, s.backend, storage.PropertiesKey, s.properties)
	if err == nil {
		monitoring.EntityCount.WithLabelValues("property").Set(float64(len(s.properties)))
	}
	return err
}

func (s *Store) persistTenants(ctx context.Context) error {
	err := persistEntry(ctx, s.backend, storage.TenantsKey, s.tenants)
	if err == nil {
		monitoring.EntityCount.WithLabelValues("tenant").Set(float64(len(s.tenants)))
	}
	return err
}

func persistEntry[T any](ctx context.Context, backend storage.Backend, key string, records []T) error {
	payload, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	start := time.Now()
	err = backend.Write(ctx, key, payload)
	monitoring.PersistDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		monitoring.PersistFailures.Inc()
		monitoring.Alert("durable storage write failed", map[string]string{"entry": key})
		log.Error().Err(err).Str("entry", key).Msg("Failed to persist collection")
		return fmt.Errorf("persist %s: %w", key, err)
	}
	return nil
}

func indexOfProperty(properties []model.Property, id string) int {
	for i := range properties {
		if properties[i].ID == id {
			return i
		}
	}
	return -1
}

func indexOfTenant(tenants []model.Tenant, id string) int {
	for i := range tenants {
		if tenants[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneTenant(t *model.Tenant) *model.Tenant {
	c := *t
	c.Lease = t.Lease.Clone()
	return &c
}
