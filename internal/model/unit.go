package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// UnitType enumerates the predefined unit layouts, with a CUSTOM escape hatch.
type UnitType string

const (
	UnitTypeStudio       UnitType = "STUDIO"
	UnitTypeOneBedroom   UnitType = "ONE_BEDROOM"
	UnitTypeTwoBedroom   UnitType = "TWO_BEDROOM"
	UnitTypeThreeBedroom UnitType = "THREE_BEDROOM"
	UnitTypePenthouse    UnitType = "PENTHOUSE"
	UnitTypeBedsitter    UnitType = "BEDSITTER"
	UnitTypeDuplex       UnitType = "DUPLEX"
	UnitTypeMaisonette   UnitType = "MAISONETTE"
	UnitTypeCustom       UnitType = "CUSTOM"
)

// PaymentPeriod is the billing cadence for rent.
type PaymentPeriod string

const (
	PaymentPeriodMonthly    PaymentPeriod = "MONTHLY"
	PaymentPeriodBimonthly  PaymentPeriod = "BIMONTHLY"
	PaymentPeriodHalfYearly PaymentPeriod = "HALF_YEARLY"
	PaymentPeriodYearly     PaymentPeriod = "YEARLY"
)

// RentMultiplier returns how many months of rent fall due in one period.
func (p PaymentPeriod) RentMultiplier() int64 {
	switch p {
	case PaymentPeriodBimonthly:
		return 2
	case PaymentPeriodHalfYearly:
		return 6
	case PaymentPeriodYearly:
		return 12
	default:
		return 1
	}
}

// Valid reports whether p is a known payment period.
func (p PaymentPeriod) Valid() bool {
	switch p {
	case PaymentPeriodMonthly, PaymentPeriodBimonthly, PaymentPeriodHalfYearly, PaymentPeriodYearly:
		return true
	}
	return false
}

// Unit represents an individual rental unit within a property.
//
// IsOccupied is derived state: it is true exactly when an ACTIVE lease
// references this unit, and is only written by the lease status cascade.
// Unit numbers are unique among a property's live units only, so deleting
// a unit frees its number for reuse.
type Unit struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UnitNumber string    `json:"unit_number" gorm:"type:varchar(50);not null;uniqueIndex:idx_units_property_number,where:deleted_at IS NULL"`
	PropertyID uuid.UUID `json:"property_id" gorm:"type:uuid;not null;uniqueIndex:idx_units_property_number;index"`
	Property   *Property `json:"property,omitempty" gorm:"foreignKey:PropertyID"`

	UnitType       UnitType `json:"unit_type" gorm:"type:varchar(50);not null;default:'STUDIO'"`
	CustomUnitType string   `json:"custom_unit_type,omitempty" gorm:"type:varchar(100)"`

	Rent          decimal.Decimal `json:"rent" gorm:"type:decimal(10,2);not null"`
	PaymentPeriod PaymentPeriod   `json:"payment_period" gorm:"type:varchar(20);not null;default:'MONTHLY'"`

	Floor         string           `json:"floor,omitempty" gorm:"type:varchar(20)"`
	SquareFootage *decimal.Decimal `json:"square_footage,omitempty" gorm:"type:decimal(10,2)"`

	IsOccupied bool `json:"is_occupied" gorm:"default:false"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Leases []Lease `json:"leases,omitempty" gorm:"foreignKey:UnitID"`
}

func (u *Unit) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
