package model

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TenantStatus tracks a tenant's rent standing.
type TenantStatus string

const (
	TenantActive   TenantStatus = "active"
	TenantLate     TenantStatus = "late"
	TenantInactive TenantStatus = "inactive"
)

// ValidTenantStatus reports whether s is one of the known tenant statuses.
func ValidTenantStatus(s TenantStatus) bool {
	switch s {
	case TenantActive, TenantLate, TenantInactive:
		return true
	}
	return false
}

// Tenant is a renter attached to exactly one property.
type Tenant struct {
	ID         string       `json:"id"`
	PropertyID string       `json:"propertyId"`
	Name       string       `json:"name"`
	Email      string       `json:"email"`
	Phone      string       `json:"phone"`
	Unit       *string      `json:"unit,omitempty"`
	RentAmount float64      `json:"rentAmount"`
	RentDueDay int          `json:"rentDueDay"`
	LeaseStart time.Time    `json:"leaseStart"`
	LeaseEnd   time.Time    `json:"leaseEnd"`
	Lease      *Lease       `json:"lease,omitempty"`
	Status     TenantStatus `json:"status"`
	Notes      *string      `json:"notes,omitempty"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}

// NewTenant carries the caller-supplied fields for tenant creation.
type NewTenant struct {
	PropertyID string
	Name       string
	Email      string
	Phone      string
	Unit       *string
	RentAmount float64
	RentDueDay int
	LeaseStart time.Time
	LeaseEnd   time.Time
	Lease      *Lease
	Status     TenantStatus
	Notes      *string
}

// TenantUpdate is a partial update; nil fields are left unchanged.
// RemoveLease detaches the current lease document; it takes precedence
// over Lease when both are set.
type TenantUpdate struct {
	PropertyID  *string
	Name        *string
	Email       *string
	Phone       *string
	Unit        *string
	RentAmount  *float64
	RentDueDay  *int
	LeaseStart  *time.Time
	LeaseEnd    *time.Time
	Lease       *Lease
	RemoveLease bool
	Status      *TenantStatus
	Notes       *string
}

// Lease is a lease document attached to a tenant. The file content is
// embedded as a data URI so the record is self-contained in storage; a
// tenant holds at most one lease and attaching a new one replaces it.
type Lease struct {
	ID         string    `json:"id"`
	FileName   string    `json:"fileName"`
	FileSize   int64     `json:"fileSize"`
	UploadedAt time.Time `json:"uploadedAt"`
	FileData   string    `json:"fileData,omitempty"`
}

// NewLease builds a lease attachment from an already-decoded file blob.
func NewLease(fileName, contentType string, content []byte) *Lease {
	return &Lease{
		ID:         uuid.NewString(),
		FileName:   fileName,
		FileSize:   int64(len(content)),
		UploadedAt: time.Now(),
		FileData:   fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(content)),
	}
}

// Clone returns an independent copy of the lease.
func (l *Lease) Clone() *Lease {
	if l == nil {
		return nil
	}
	c := *l
	return &c
}
