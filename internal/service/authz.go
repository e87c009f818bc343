package service

import (
	"github.com/CodeDreamers777/Assettone/internal/apperr"
	"github.com/CodeDreamers777/Assettone/internal/model"
)

// CanAct is the single authorization predicate consulted by every mutating
// core operation: owners may act on properties they own, managers on
// properties they manage. Clerks and tenants never pass.
func CanAct(actor *model.Profile, property *model.Property) bool {
	if actor == nil || property == nil {
		return false
	}
	switch actor.Role {
	case model.RoleOwner:
		return property.OwnerID == actor.ID
	case model.RoleManager:
		return property.ManagerID != nil && *property.ManagerID == actor.ID
	}
	return false
}

// requireCanAct returns a permission error unless the actor owns or manages
// the property.
func requireCanAct(actor *model.Profile, property *model.Property) error {
	if !CanAct(actor, property) {
		return apperr.New(apperr.Permission, "you do not have permission to act on this property")
	}
	return nil
}

// requireStaff returns a permission error unless the actor holds a staff role.
func requireStaff(actor *model.Profile) error {
	if actor == nil || !actor.IsStaff() {
		return apperr.New(apperr.Permission, "staff role required")
	}
	return nil
}
