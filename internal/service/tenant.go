package service

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/CodeDreamers777/Assettone/internal/apperr"
	"github.com/CodeDreamers777/Assettone/internal/model"
)

// CreateTenantInput carries a new tenant's personal details.
type CreateTenantInput struct {
	FirstName             string
	LastName              string
	Email                 string
	PhoneNumber           string
	IdentificationType    model.IdentificationType
	IdentificationNumber  string
	Occupation            string
	MonthlyIncome         *decimal.Decimal
	EmergencyContactName  string
	EmergencyContactPhone string
}

// CreateTenant registers a tenant record. Tenants start INACTIVE; the lease
// status cascade promotes them when a lease goes active.
func (s *Service) CreateTenant(in CreateTenantInput, actor *model.Profile) (*model.Tenant, error) {
	if err := requireStaff(actor); err != nil {
		return nil, err
	}
	if in.FirstName == "" || in.LastName == "" {
		return nil, apperr.New(apperr.Validation, "first and last name are required")
	}
	if in.PhoneNumber == "" {
		return nil, apperr.New(apperr.Validation, "phone number is required")
	}
	if err := validateIdentification(in.IdentificationType, in.IdentificationNumber); err != nil {
		return nil, err
	}

	var tenant *model.Tenant
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if in.Email != "" {
			var count int64
			if err := tx.Model(&model.Tenant{}).Where("email = ?", in.Email).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return apperr.New(apperr.Conflict, "a tenant with this email already exists")
			}
		}
		if in.IdentificationNumber != "" {
			var count int64
			if err := tx.Model(&model.Tenant{}).
				Where("identification_number = ?", in.IdentificationNumber).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return apperr.New(apperr.Conflict, "this identification number is already in use")
			}
		}

		tenant = &model.Tenant{
			FirstName:             in.FirstName,
			LastName:              in.LastName,
			Email:                 in.Email,
			PhoneNumber:           in.PhoneNumber,
			IdentificationType:    in.IdentificationType,
			IdentificationNumber:  in.IdentificationNumber,
			Occupation:            in.Occupation,
			MonthlyIncome:         in.MonthlyIncome,
			Status:                model.TenantStatusInactive,
			EmergencyContactName:  in.EmergencyContactName,
			EmergencyContactPhone: in.EmergencyContactPhone,
		}
		if err := tx.Create(tenant).Error; err != nil {
			if isUniqueViolation(err) {
				return apperr.Wrap(apperr.Conflict, "tenant email or identification number is already in use", err)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tenant, nil
}

// TenantFilter narrows tenant listings.
type TenantFilter struct {
	Status model.TenantStatus
	Search string
}

// ListTenants returns tenants holding leases in the actor's properties.
func (s *Service) ListTenants(filter TenantFilter, actor *model.Profile) ([]model.Tenant, error) {
	q := s.db.Model(&model.Tenant{}).Distinct("tenants.*").
		Joins("JOIN leases ON leases.tenant_id = tenants.id").
		Joins("JOIN units ON units.id = leases.unit_id").
		Joins("JOIN properties ON properties.id = units.property_id")

	switch actor.Role {
	case model.RoleOwner:
		q = q.Where("properties.owner_id = ?", actor.ID)
	case model.RoleManager:
		q = q.Where("properties.manager_id = ?", actor.ID)
	default:
		return []model.Tenant{}, nil
	}

	if filter.Status != "" {
		q = q.Where("tenants.status = ?", filter.Status)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where(
			"tenants.first_name LIKE ? OR tenants.last_name LIKE ? OR tenants.email LIKE ? OR tenants.phone_number LIKE ?",
			like, like, like, like)
	}

	var tenants []model.Tenant
	err := q.Order("tenants.last_name, tenants.first_name").Find(&tenants).Error
	return tenants, err
}

// GetTenant loads one tenant visible to the actor, leases included.
func (s *Service) GetTenant(id uuid.UUID, actor *model.Profile) (*model.Tenant, error) {
	if err := requireStaff(actor); err != nil {
		return nil, err
	}
	var tenant model.Tenant
	if err := s.db.Preload("Leases").First(&tenant, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, "tenant not found")
	}
	return &tenant, nil
}

// SetTenantStatus is the out-of-band staff override for tenant status, used
// to mark a tenant EVICTED (or un-mark them). The lease cascade never sets
// EVICTED on its own.
func (s *Service) SetTenantStatus(id uuid.UUID, status model.TenantStatus, actor *model.Profile) (*model.Tenant, error) {
	switch status {
	case model.TenantStatusActive, model.TenantStatusInactive, model.TenantStatusEvicted:
	default:
		return nil, apperr.Newf(apperr.Validation, "unknown tenant status %s", status)
	}

	var tenant model.Tenant
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&tenant, "id = ?", id).Error; err != nil {
			return notFoundOr(err, "tenant not found")
		}
		if err := s.requireActOnTenant(tx, &tenant, actor); err != nil {
			return err
		}
		tenant.Status = status
		return tx.Model(&tenant).Update("status", status).Error
	})
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

// requireActOnTenant verifies the tenant holds at least one lease in a
// property the actor owns or manages.
func (s *Service) requireActOnTenant(tx *gorm.DB, tenant *model.Tenant, actor *model.Profile) error {
	if actor == nil {
		return apperr.New(apperr.Permission, "you do not have permission to modify this tenant")
	}

	q := tx.Model(&model.Lease{}).
		Joins("JOIN units ON units.id = leases.unit_id").
		Joins("JOIN properties ON properties.id = units.property_id").
		Where("leases.tenant_id = ?", tenant.ID)

	switch actor.Role {
	case model.RoleOwner:
		q = q.Where("properties.owner_id = ?", actor.ID)
	case model.RoleManager:
		q = q.Where("properties.manager_id = ?", actor.ID)
	default:
		return apperr.New(apperr.Permission, "you do not have permission to modify tenants")
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return apperr.New(apperr.Permission, "you do not have permission to modify this tenant")
	}
	return nil
}

// validateIdentification enforces the both-or-neither rule on identity
// documents.
func validateIdentification(idType model.IdentificationType, idNumber string) error {
	if idType != "" && idNumber == "" {
		return apperr.New(apperr.Validation, "identification number is required when identification type is specified")
	}
	if idType == "" && idNumber != "" {
		return apperr.New(apperr.Validation, "identification type is required when identification number is specified")
	}
	return nil
}
