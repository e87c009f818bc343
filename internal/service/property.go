package service

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/CodeDreamers777/Assettone/internal/apperr"
	"github.com/CodeDreamers777/Assettone/internal/model"
)

// CreatePropertyInput carries a new property's details. The actor becomes
// the owner.
type CreatePropertyInput struct {
	Name         string
	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	PostalCode   string
	Country      string
	ManagerID    *uuid.UUID
	Description  string
}

// CreateProperty registers a property owned by the acting profile.
func (s *Service) CreateProperty(in CreatePropertyInput, actor *model.Profile) (*model.Property, error) {
	if actor == nil || actor.Role != model.RoleOwner {
		return nil, apperr.New(apperr.Permission, "only property owners can create properties")
	}
	if in.Name == "" {
		return nil, apperr.New(apperr.Validation, "name is required")
	}
	if in.PostalCode == "" {
		return nil, apperr.New(apperr.Validation, "postal code is required")
	}

	property := &model.Property{
		Name:         in.Name,
		AddressLine1: in.AddressLine1,
		AddressLine2: in.AddressLine2,
		City:         in.City,
		State:        in.State,
		PostalCode:   in.PostalCode,
		Country:      in.Country,
		OwnerID:      actor.ID,
		ManagerID:    in.ManagerID,
		Description:  in.Description,
	}
	if err := s.db.Create(property).Error; err != nil {
		return nil, err
	}
	return property, nil
}

// ListProperties returns the properties the actor owns or manages.
func (s *Service) ListProperties(actor *model.Profile) ([]model.Property, error) {
	q := s.db.Model(&model.Property{})
	switch actor.Role {
	case model.RoleOwner:
		q = q.Where("owner_id = ?", actor.ID)
	case model.RoleManager:
		q = q.Where("manager_id = ?", actor.ID)
	default:
		return []model.Property{}, nil
	}

	var properties []model.Property
	err := q.Order("created_at DESC").Find(&properties).Error
	return properties, err
}

// GetProperty loads one property the actor may act on, units included.
func (s *Service) GetProperty(id uuid.UUID, actor *model.Profile) (*model.Property, error) {
	var property model.Property
	if err := s.db.Preload("Units").First(&property, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, "property not found")
	}
	if err := requireCanAct(actor, &property); err != nil {
		return nil, err
	}
	return &property, nil
}

// UpdatePropertyInput carries the editable property fields.
type UpdatePropertyInput struct {
	Name         *string
	AddressLine1 *string
	AddressLine2 *string
	City         *string
	State        *string
	PostalCode   *string
	Country      *string
	ManagerID    *uuid.UUID
	Description  *string
}

// UpdateProperty edits a property the actor owns or manages.
func (s *Service) UpdateProperty(id uuid.UUID, in UpdatePropertyInput, actor *model.Profile) (*model.Property, error) {
	var property model.Property
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&property, "id = ?", id).Error; err != nil {
			return notFoundOr(err, "property not found")
		}
		if err := requireCanAct(actor, &property); err != nil {
			return err
		}

		updates := map[string]interface{}{}
		if in.Name != nil {
			updates["name"] = *in.Name
		}
		if in.AddressLine1 != nil {
			updates["address_line1"] = *in.AddressLine1
		}
		if in.AddressLine2 != nil {
			updates["address_line2"] = *in.AddressLine2
		}
		if in.City != nil {
			updates["city"] = *in.City
		}
		if in.State != nil {
			updates["state"] = *in.State
		}
		if in.PostalCode != nil {
			if *in.PostalCode == "" {
				return apperr.New(apperr.Validation, "postal code is required")
			}
			updates["postal_code"] = *in.PostalCode
		}
		if in.Country != nil {
			updates["country"] = *in.Country
		}
		if in.ManagerID != nil {
			updates["manager_id"] = *in.ManagerID
		}
		if in.Description != nil {
			updates["description"] = *in.Description
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&property).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return &property, nil
}

// CreateUnitInput carries a new unit's details.
type CreateUnitInput struct {
	PropertyID     uuid.UUID
	UnitNumber     string
	UnitType       model.UnitType
	CustomUnitType string
	Rent           decimal.Decimal
	PaymentPeriod  model.PaymentPeriod
	Floor          string
	SquareFootage  *decimal.Decimal
}

// CreateUnit adds a unit under a property and recomputes the property's
// cached unit count in the same transaction.
func (s *Service) CreateUnit(in CreateUnitInput, actor *model.Profile) (*model.Unit, error) {
	if in.UnitNumber == "" {
		return nil, apperr.New(apperr.Validation, "unit number is required")
	}
	if !in.Rent.IsPositive() {
		return nil, apperr.New(apperr.Validation, "rent must be positive")
	}
	if in.UnitType == model.UnitTypeCustom && in.CustomUnitType == "" {
		return nil, apperr.New(apperr.Validation, "custom unit type name is required when unit type is CUSTOM")
	}
	if in.UnitType == "" {
		in.UnitType = model.UnitTypeStudio
	}
	if in.PaymentPeriod == "" {
		in.PaymentPeriod = model.PaymentPeriodMonthly
	}
	if !in.PaymentPeriod.Valid() {
		return nil, apperr.Newf(apperr.Validation, "unknown payment period %s", in.PaymentPeriod)
	}

	var unit *model.Unit
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var property model.Property
		if err := lockForUpdate(tx).First(&property, "id = ?", in.PropertyID).Error; err != nil {
			return notFoundOr(err, "property not found")
		}
		if err := requireCanAct(actor, &property); err != nil {
			return err
		}

		var existing int64
		if err := tx.Model(&model.Unit{}).
			Where("property_id = ? AND unit_number = ?", property.ID, in.UnitNumber).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return apperr.New(apperr.Conflict, "unit number must be unique within the property")
		}

		unit = &model.Unit{
			UnitNumber:     in.UnitNumber,
			PropertyID:     property.ID,
			UnitType:       in.UnitType,
			CustomUnitType: in.CustomUnitType,
			Rent:           in.Rent,
			PaymentPeriod:  in.PaymentPeriod,
			Floor:          in.Floor,
			SquareFootage:  in.SquareFootage,
		}
		if err := tx.Create(unit).Error; err != nil {
			if isUniqueViolation(err) {
				return apperr.Wrap(apperr.Conflict, "unit number must be unique within the property", err)
			}
			return err
		}
		return s.recomputeTotalUnits(tx, property.ID)
	})
	if err != nil {
		return nil, err
	}
	return unit, nil
}

// DeleteUnit removes a vacant unit and recomputes the property's cached
// unit count in the same transaction.
func (s *Service) DeleteUnit(unitID uuid.UUID, actor *model.Profile) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var unit model.Unit
		if err := tx.Preload("Property").First(&unit, "id = ?", unitID).Error; err != nil {
			return notFoundOr(err, "unit not found")
		}
		if err := requireCanAct(actor, unit.Property); err != nil {
			return err
		}
		if unit.IsOccupied {
			return apperr.New(apperr.Conflict, "occupied units cannot be deleted")
		}
		if err := tx.Delete(&unit).Error; err != nil {
			return err
		}
		return s.recomputeTotalUnits(tx, unit.PropertyID)
	})
}

// recomputeTotalUnits refreshes the property's cached unit count from the
// owner of truth, count(units).
func (s *Service) recomputeTotalUnits(tx *gorm.DB, propertyID uuid.UUID) error {
	var count int64
	if err := tx.Model(&model.Unit{}).Where("property_id = ?", propertyID).Count(&count).Error; err != nil {
		return err
	}
	return tx.Model(&model.Property{}).Where("id = ?", propertyID).
		Update("total_units", count).Error
}

// UnitFilter narrows unit listings.
type UnitFilter struct {
	PropertyID *uuid.UUID
	UnitType   model.UnitType
	Vacant     *bool
}

// ListUnits returns units in the actor's properties, optionally filtered by
// property, type or occupancy.
func (s *Service) ListUnits(filter UnitFilter, actor *model.Profile) ([]model.Unit, error) {
	q := s.db.Model(&model.Unit{}).
		Joins("JOIN properties ON properties.id = units.property_id")

	switch actor.Role {
	case model.RoleOwner:
		q = q.Where("properties.owner_id = ?", actor.ID)
	case model.RoleManager:
		q = q.Where("properties.manager_id = ?", actor.ID)
	default:
		return []model.Unit{}, nil
	}

	if filter.PropertyID != nil {
		q = q.Where("units.property_id = ?", *filter.PropertyID)
	}
	if filter.UnitType != "" {
		q = q.Where("units.unit_type = ?", filter.UnitType)
	}
	if filter.Vacant != nil {
		q = q.Where("units.is_occupied = ?", !*filter.Vacant)
	}

	var units []model.Unit
	err := q.Order("units.unit_number").Find(&units).Error
	return units, err
}

// GetUnit loads one unit the actor may act on.
func (s *Service) GetUnit(id uuid.UUID, actor *model.Profile) (*model.Unit, error) {
	var unit model.Unit
	if err := s.db.Preload("Property").First(&unit, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, "unit not found")
	}
	if err := requireCanAct(actor, unit.Property); err != nil {
		return nil, err
	}
	return &unit, nil
}
