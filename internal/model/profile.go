package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is the staff or tenant role attached to a profile.
type Role string

const (
	RoleOwner   Role = "OWNER"
	RoleManager Role = "MANAGER"
	RoleClerk   Role = "CLERK"
	RoleTenant  Role = "TENANT"
)

// IdentificationType enumerates accepted identity documents.
type IdentificationType string

const (
	IdentificationNationalID     IdentificationType = "id"
	IdentificationPassport       IdentificationType = "passport"
	IdentificationWorkPermit     IdentificationType = "workPermit"
	IdentificationMilitaryID     IdentificationType = "militaryId"
	IdentificationDriversLicense IdentificationType = "driversLicense"
)

// Profile represents an account that can act on the system: property owners,
// managers, clerks and tenants. Passwords are stored as bcrypt hashes.
type Profile struct {
	ID                   uuid.UUID          `json:"id" gorm:"type:uuid;primaryKey"`
	Email                string             `json:"email" gorm:"type:varchar(100);uniqueIndex;not null"`
	Password             string             `json:"-" gorm:"type:varchar(255)"`
	FirstName            string             `json:"first_name" gorm:"type:varchar(100)"`
	LastName             string             `json:"last_name" gorm:"type:varchar(100)"`
	PhoneNumber          string             `json:"phone_number" gorm:"type:varchar(20)"`
	Role                 Role               `json:"role" gorm:"type:varchar(10);not null;default:'CLERK'"`
	IdentificationType   IdentificationType `json:"identification_type,omitempty" gorm:"type:varchar(20)"`
	IdentificationNumber string             `json:"identification_number,omitempty" gorm:"type:varchar(50)"`

	// Fine-grained permission flags, layered on top of the role
	CanManageProperties  bool `json:"can_manage_properties" gorm:"default:false"`
	CanAddUnits          bool `json:"can_add_units" gorm:"default:false"`
	CanEditUnits         bool `json:"can_edit_units" gorm:"default:false"`
	CanDeleteUnits       bool `json:"can_delete_units" gorm:"default:false"`
	CanViewFinancialData bool `json:"can_view_financial_data" gorm:"default:false"`

	LastSession *time.Time     `json:"last_session,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// FullName returns the display name for notifications and logs.
func (p *Profile) FullName() string {
	if p.FirstName == "" && p.LastName == "" {
		return p.Email
	}
	return p.FirstName + " " + p.LastName
}

// IsStaff reports whether the profile may administer properties at all.
func (p *Profile) IsStaff() bool {
	return p.Role == RoleOwner || p.Role == RoleManager || p.Role == RoleClerk
}
