package service

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/CodeDreamers777/Assettone/internal/apperr"
	"github.com/CodeDreamers777/Assettone/internal/model"
)

// ErrNoActiveLease rejects maintenance requests from tenants who do not
// currently hold an active lease.
var ErrNoActiveLease = apperr.New(apperr.InvalidState, "tenant has no active lease")

// CreateMaintenanceRequestInput carries a tenant-initiated repair request.
// Unit and property are resolved from the tenant's active lease, never
// supplied by the caller.
type CreateMaintenanceRequestInput struct {
	Title       string
	Description string
	Priority    model.MaintenancePriority
}

// CreateMaintenanceRequest creates a PENDING request for the tenant matching
// the actor's email, against the unit of their active lease.
func (s *Service) CreateMaintenanceRequest(in CreateMaintenanceRequestInput, actor *model.Profile) (*model.MaintenanceRequest, error) {
	if actor == nil || actor.Role != model.RoleTenant {
		return nil, apperr.New(apperr.Permission, "only tenants can create maintenance requests")
	}
	if in.Title == "" {
		return nil, apperr.New(apperr.Validation, "title is required")
	}
	if in.Priority == "" {
		in.Priority = model.MaintenancePriorityMedium
	}

	var request *model.MaintenanceRequest
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var tenant model.Tenant
		if err := tx.First(&tenant, "email = ?", actor.Email).Error; err != nil {
			return notFoundOr(err, "no tenant record found for this account")
		}

		var lease model.Lease
		err := tx.Where("tenant_id = ? AND status = ?", tenant.ID, model.LeaseStatusActive).
			First(&lease).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoActiveLease
		}
		if err != nil {
			return err
		}

		var unit model.Unit
		if err := tx.First(&unit, "id = ?", lease.UnitID).Error; err != nil {
			return err
		}

		request = &model.MaintenanceRequest{
			TenantID:      tenant.ID,
			UnitID:        unit.ID,
			PropertyID:    unit.PropertyID,
			Title:         in.Title,
			Description:   in.Description,
			Priority:      in.Priority,
			Status:        model.MaintenanceStatusPending,
			RequestedDate: today(),
		}
		return tx.Create(request).Error
	})
	if err != nil {
		return nil, err
	}
	return request, nil
}

// ApproveMaintenanceRequest moves a PENDING request to APPROVED.
func (s *Service) ApproveMaintenanceRequest(id uuid.UUID, actor *model.Profile) (*model.MaintenanceRequest, error) {
	return s.resolveMaintenanceRequest(id, actor, model.MaintenanceStatusApproved)
}

// RejectMaintenanceRequest moves a PENDING request to REJECTED.
func (s *Service) RejectMaintenanceRequest(id uuid.UUID, actor *model.Profile) (*model.MaintenanceRequest, error) {
	return s.resolveMaintenanceRequest(id, actor, model.MaintenanceStatusRejected)
}

func (s *Service) resolveMaintenanceRequest(id uuid.UUID, actor *model.Profile, decision model.MaintenanceStatus) (*model.MaintenanceRequest, error) {
	var request model.MaintenanceRequest
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Property").First(&request, "id = ?", id).Error; err != nil {
			return notFoundOr(err, "maintenance request not found")
		}
		if err := requireCanAct(actor, request.Property); err != nil {
			return err
		}
		if request.Status != model.MaintenanceStatusPending {
			verb := "approve"
			if decision == model.MaintenanceStatusRejected {
				verb = "reject"
			}
			return apperr.Newf(apperr.InvalidState, "can only %s pending maintenance requests", verb)
		}

		now := today()
		request.Status = decision
		request.ApprovedRejectedByID = &actor.ID
		request.ApprovedRejectedDate = &now
		return tx.Model(&request).Updates(map[string]interface{}{
			"status":                  decision,
			"approved_rejected_by_id": actor.ID,
			"approved_rejected_date":  now,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// CompleteMaintenanceRequest moves an APPROVED request to COMPLETED,
// recording the repair cost. Completed requests are immutable.
func (s *Service) CompleteMaintenanceRequest(id uuid.UUID, repairCost decimal.Decimal, actor *model.Profile) (*model.MaintenanceRequest, error) {
	if repairCost.IsNegative() {
		return nil, apperr.New(apperr.Validation, "repair cost cannot be negative")
	}

	var request model.MaintenanceRequest
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Property").First(&request, "id = ?", id).Error; err != nil {
			return notFoundOr(err, "maintenance request not found")
		}
		if err := requireCanAct(actor, request.Property); err != nil {
			return err
		}
		if request.Status != model.MaintenanceStatusApproved {
			return apperr.New(apperr.InvalidState, "can only complete approved maintenance requests")
		}

		now := today()
		request.Status = model.MaintenanceStatusCompleted
		request.RepairCost = &repairCost
		request.CompletedDate = &now
		return tx.Model(&request).Updates(map[string]interface{}{
			"status":         model.MaintenanceStatusCompleted,
			"repair_cost":    repairCost,
			"completed_date": now,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// UpdateMaintenanceRequestInput carries the editable fields of a request.
type UpdateMaintenanceRequestInput struct {
	Title       *string
	Description *string
	Priority    *model.MaintenancePriority
}

// UpdateMaintenanceRequest edits title, description or priority. Requests
// that have reached COMPLETED reject any further edits.
func (s *Service) UpdateMaintenanceRequest(id uuid.UUID, in UpdateMaintenanceRequestInput, actor *model.Profile) (*model.MaintenanceRequest, error) {
	var request model.MaintenanceRequest
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Property").First(&request, "id = ?", id).Error; err != nil {
			return notFoundOr(err, "maintenance request not found")
		}
		if err := requireCanAct(actor, request.Property); err != nil {
			return err
		}
		if request.Status == model.MaintenanceStatusCompleted {
			return apperr.New(apperr.InvalidState, "completed maintenance requests cannot be modified")
		}

		updates := map[string]interface{}{}
		if in.Title != nil {
			if *in.Title == "" {
				return apperr.New(apperr.Validation, "title is required")
			}
			updates["title"] = *in.Title
			request.Title = *in.Title
		}
		if in.Description != nil {
			updates["description"] = *in.Description
			request.Description = *in.Description
		}
		if in.Priority != nil {
			updates["priority"] = *in.Priority
			request.Priority = *in.Priority
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&request).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// MaintenanceRequestFilter narrows maintenance listings.
type MaintenanceRequestFilter struct {
	PropertyID *uuid.UUID
	TenantID   *uuid.UUID
	UnitID     *uuid.UUID
	Status     model.MaintenanceStatus
	Priority   model.MaintenancePriority
}

// ListMaintenanceRequests returns requests visible to the actor: tenants see
// their own, owners and managers see their properties', clerks see all.
func (s *Service) ListMaintenanceRequests(filter MaintenanceRequestFilter, actor *model.Profile) ([]model.MaintenanceRequest, error) {
	q := s.db.Model(&model.MaintenanceRequest{}).
		Preload("Tenant").Preload("Unit").Preload("Property")

	switch actor.Role {
	case model.RoleTenant:
		q = q.Joins("JOIN tenants ON tenants.id = maintenance_requests.tenant_id").
			Where("tenants.email = ?", actor.Email)
	case model.RoleOwner:
		q = q.Joins("JOIN properties ON properties.id = maintenance_requests.property_id").
			Where("properties.owner_id = ?", actor.ID)
	case model.RoleManager:
		q = q.Joins("JOIN properties ON properties.id = maintenance_requests.property_id").
			Where("properties.manager_id = ?", actor.ID)
	}

	if filter.PropertyID != nil {
		q = q.Where("maintenance_requests.property_id = ?", *filter.PropertyID)
	}
	if filter.TenantID != nil {
		q = q.Where("maintenance_requests.tenant_id = ?", *filter.TenantID)
	}
	if filter.UnitID != nil {
		q = q.Where("maintenance_requests.unit_id = ?", *filter.UnitID)
	}
	if filter.Status != "" {
		q = q.Where("maintenance_requests.status = ?", filter.Status)
	}
	if filter.Priority != "" {
		q = q.Where("maintenance_requests.priority = ?", filter.Priority)
	}

	var requests []model.MaintenanceRequest
	err := q.Order("maintenance_requests.created_at DESC").Find(&requests).Error
	return requests, err
}
