package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Property represents a rental property holding one or more units. It is
// owned by exactly one OWNER profile and optionally administered by a
// MANAGER profile.
type Property struct {
	ID   uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name string    `json:"name" gorm:"type:varchar(200);not null"`

	AddressLine1 string `json:"address_line1" gorm:"type:varchar(255);not null"`
	AddressLine2 string `json:"address_line2,omitempty" gorm:"type:varchar(255)"`
	City         string `json:"city" gorm:"type:varchar(100);not null"`
	State        string `json:"state" gorm:"type:varchar(100);not null"`
	PostalCode   string `json:"postal_code" gorm:"type:varchar(20);not null"`
	Country      string `json:"country" gorm:"type:varchar(100);not null"`

	OwnerID   uuid.UUID  `json:"owner_id" gorm:"type:uuid;not null;index"`
	Owner     *Profile   `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	ManagerID *uuid.UUID `json:"manager_id,omitempty" gorm:"type:uuid;index"`
	Manager   *Profile   `json:"manager,omitempty" gorm:"foreignKey:ManagerID"`

	// TotalUnits is a cached count, recomputed whenever a unit under this
	// property is created or deleted. count(units) stays the owner of truth.
	TotalUnits  int    `json:"total_units" gorm:"default:0"`
	Description string `json:"description,omitempty" gorm:"type:text"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Units []Unit `json:"units,omitempty" gorm:"foreignKey:PropertyID"`
}

func (p *Property) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
