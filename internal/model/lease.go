package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LeaseStatus is the lifecycle state of a lease.
//
// A lease is created PENDING or ACTIVE. ACTIVE can move to TERMINATED,
// EXPIRED or INACTIVE; those three are terminal. A terminated lease is never
// resurrected: a transfer creates a fresh lease row chained through
// PreviousLeaseID.
type LeaseStatus string

const (
	LeaseStatusPending    LeaseStatus = "PENDING"
	LeaseStatusActive     LeaseStatus = "ACTIVE"
	LeaseStatusExpired    LeaseStatus = "EXPIRED"
	LeaseStatusTerminated LeaseStatus = "TERMINATED"
	LeaseStatusInactive   LeaseStatus = "INACTIVE"
)

// Valid reports whether s is a known lease status.
func (s LeaseStatus) Valid() bool {
	switch s {
	case LeaseStatusPending, LeaseStatusActive, LeaseStatusExpired, LeaseStatusTerminated, LeaseStatusInactive:
		return true
	}
	return false
}

// Terminal reports whether no transitions are defined out of s.
func (s LeaseStatus) Terminal() bool {
	switch s {
	case LeaseStatusExpired, LeaseStatusTerminated, LeaseStatusInactive:
		return true
	}
	return false
}

// Lease represents a tenant's rental agreement for a specific unit.
//
// The partial unique index on (unit_id) WHERE status='ACTIVE' backs the
// one-active-lease-per-unit invariant at the storage level; historical
// leases for the same unit coexist freely.
type Lease struct {
	ID       uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UnitID   uuid.UUID `json:"unit_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_leases_one_active_per_unit,where:status = 'ACTIVE'"`
	Unit     *Unit     `json:"unit,omitempty" gorm:"foreignKey:UnitID"`
	TenantID uuid.UUID `json:"tenant_id" gorm:"type:uuid;not null;index"`
	Tenant   *Tenant   `json:"tenant,omitempty" gorm:"foreignKey:TenantID"`

	StartDate time.Time `json:"start_date" gorm:"type:date;not null"`
	EndDate   time.Time `json:"end_date" gorm:"type:date;not null"`

	MonthlyRent     decimal.Decimal `json:"monthly_rent" gorm:"type:decimal(10,2);not null"`
	SecurityDeposit decimal.Decimal `json:"security_deposit" gorm:"type:decimal(10,2);not null"`
	PaymentPeriod   PaymentPeriod   `json:"payment_period" gorm:"type:varchar(20);not null;default:'MONTHLY'"`

	Status LeaseStatus `json:"status" gorm:"type:varchar(20);not null;default:'ACTIVE'"`

	// Set only by a transfer, forming an append-only chain back through
	// the unit's tenant turnover history.
	PreviousLeaseID *uuid.UUID `json:"previous_lease_id,omitempty" gorm:"type:uuid"`
	PreviousLease   *Lease     `json:"previous_lease,omitempty" gorm:"foreignKey:PreviousLeaseID"`

	Notes string `json:"notes,omitempty" gorm:"type:text"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (l *Lease) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
