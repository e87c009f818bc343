package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MaintenanceStatus is the workflow state of a maintenance request:
// PENDING -> APPROVED -> COMPLETED, or PENDING -> REJECTED.
type MaintenanceStatus string

const (
	MaintenanceStatusPending   MaintenanceStatus = "PENDING"
	MaintenanceStatusApproved  MaintenanceStatus = "APPROVED"
	MaintenanceStatusRejected  MaintenanceStatus = "REJECTED"
	MaintenanceStatusCompleted MaintenanceStatus = "COMPLETED"
)

// MaintenancePriority orders requests for triage.
type MaintenancePriority string

const (
	MaintenancePriorityLow    MaintenancePriority = "LOW"
	MaintenancePriorityMedium MaintenancePriority = "MEDIUM"
	MaintenancePriorityHigh   MaintenancePriority = "HIGH"
	MaintenancePriorityUrgent MaintenancePriority = "URGENT"
)

// MaintenanceRequest is a tenant-initiated repair request against their
// currently leased unit. UnitID and PropertyID are denormalized from the
// tenant's active lease at creation time for query convenience.
type MaintenanceRequest struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	TenantID   uuid.UUID `json:"tenant_id" gorm:"type:uuid;not null;index"`
	Tenant     *Tenant   `json:"tenant,omitempty" gorm:"foreignKey:TenantID"`
	UnitID     uuid.UUID `json:"unit_id" gorm:"type:uuid;not null;index"`
	Unit       *Unit     `json:"unit,omitempty" gorm:"foreignKey:UnitID"`
	PropertyID uuid.UUID `json:"property_id" gorm:"type:uuid;not null;index"`
	Property   *Property `json:"property,omitempty" gorm:"foreignKey:PropertyID"`

	Title       string              `json:"title" gorm:"type:varchar(200);not null"`
	Description string              `json:"description" gorm:"type:text"`
	Priority    MaintenancePriority `json:"priority" gorm:"type:varchar(10);not null;default:'MEDIUM'"`
	Status      MaintenanceStatus   `json:"status" gorm:"type:varchar(20);not null;default:'PENDING'"`

	RequestedDate time.Time `json:"requested_date"`

	// Set when the request leaves PENDING
	ApprovedRejectedByID *uuid.UUID `json:"approved_rejected_by_id,omitempty" gorm:"type:uuid"`
	ApprovedRejectedBy   *Profile   `json:"approved_rejected_by,omitempty" gorm:"foreignKey:ApprovedRejectedByID"`
	ApprovedRejectedDate *time.Time `json:"approved_rejected_date,omitempty"`

	// Set only on completion
	RepairCost    *decimal.Decimal `json:"repair_cost,omitempty" gorm:"type:decimal(10,2)"`
	CompletedDate *time.Time       `json:"completed_date,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (m *MaintenanceRequest) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
