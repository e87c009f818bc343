package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TenantStatus tracks whether a tenant currently holds an active lease.
// ACTIVE and INACTIVE are derived from lease state by the status cascade;
// EVICTED is a terminal override set by staff, never assigned automatically.
type TenantStatus string

const (
	TenantStatusActive   TenantStatus = "ACTIVE"
	TenantStatusInactive TenantStatus = "INACTIVE"
	TenantStatusEvicted  TenantStatus = "EVICTED"
)

// Tenant represents an individual renting (or having rented) a unit.
// Email and identification number are unique when present; blank values
// may repeat.
type Tenant struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	FirstName   string    `json:"first_name" gorm:"type:varchar(100);not null"`
	LastName    string    `json:"last_name" gorm:"type:varchar(100);not null"`
	Email       string    `json:"email,omitempty" gorm:"type:varchar(100);uniqueIndex:idx_tenants_email,where:email <> '' AND deleted_at IS NULL"`
	PhoneNumber string    `json:"phone_number" gorm:"type:varchar(20);not null"`

	IdentificationType   IdentificationType `json:"identification_type,omitempty" gorm:"type:varchar(20)"`
	IdentificationNumber string             `json:"identification_number,omitempty" gorm:"type:varchar(50);uniqueIndex:idx_tenants_identification,where:identification_number <> '' AND deleted_at IS NULL"`

	Occupation    string           `json:"occupation,omitempty" gorm:"type:varchar(100)"`
	MonthlyIncome *decimal.Decimal `json:"monthly_income,omitempty" gorm:"type:decimal(10,2)"`

	Status TenantStatus `json:"status" gorm:"type:varchar(20);not null;default:'INACTIVE'"`

	EmergencyContactName  string `json:"emergency_contact_name,omitempty" gorm:"type:varchar(100)"`
	EmergencyContactPhone string `json:"emergency_contact_phone,omitempty" gorm:"type:varchar(20)"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Leases []Lease `json:"leases,omitempty" gorm:"foreignKey:TenantID"`
}

func (t *Tenant) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// FullName returns the tenant's display name.
func (t *Tenant) FullName() string {
	return t.FirstName + " " + t.LastName
}
