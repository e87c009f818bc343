package service

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/CodeDreamers777/Assettone/internal/model"
)

// LeaseFilter narrows lease listings.
type LeaseFilter struct {
	Status   model.LeaseStatus
	UnitID   *uuid.UUID
	TenantID *uuid.UUID
}

// ListLeases returns leases for units in the actor's properties.
func (s *Service) ListLeases(filter LeaseFilter, actor *model.Profile) ([]model.Lease, error) {
	q := s.db.Model(&model.Lease{}).
		Preload("Unit").Preload("Tenant").
		Joins("JOIN units ON units.id = leases.unit_id").
		Joins("JOIN properties ON properties.id = units.property_id")

	switch actor.Role {
	case model.RoleOwner:
		q = q.Where("properties.owner_id = ?", actor.ID)
	case model.RoleManager:
		q = q.Where("properties.manager_id = ?", actor.ID)
	default:
		return []model.Lease{}, nil
	}

	if filter.Status != "" {
		q = q.Where("leases.status = ?", filter.Status)
	}
	if filter.UnitID != nil {
		q = q.Where("leases.unit_id = ?", *filter.UnitID)
	}
	if filter.TenantID != nil {
		q = q.Where("leases.tenant_id = ?", *filter.TenantID)
	}

	var leases []model.Lease
	err := q.Order("leases.created_at DESC").Find(&leases).Error
	return leases, err
}

// GetLease loads one lease the actor may act on.
func (s *Service) GetLease(id uuid.UUID, actor *model.Profile) (*model.Lease, error) {
	var lease model.Lease
	if err := s.db.Preload("Unit.Property").Preload("Tenant").Preload("PreviousLease").
		First(&lease, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, "lease not found")
	}
	if err := requireCanAct(actor, lease.Unit.Property); err != nil {
		return nil, err
	}
	return &lease, nil
}

// DashboardMetrics aggregates occupancy, financial and maintenance figures
// over the actor's properties for the current calendar month.
type DashboardMetrics struct {
	TotalProperties     int64           `json:"total_properties"`
	TotalUnits          int64           `json:"total_units"`
	OccupiedUnits       int64           `json:"occupied_units"`
	VacantUnits         int64           `json:"vacant_units"`
	OccupancyRate       float64         `json:"occupancy_rate"`
	ActiveLeases        int64           `json:"active_leases"`
	ExpectedRent        decimal.Decimal `json:"expected_rent"`
	RentCollected       decimal.Decimal `json:"rent_collected"`
	MaintenanceExpenses decimal.Decimal `json:"maintenance_expenses"`
	NetIncome           decimal.Decimal `json:"net_income"`
	PendingMaintenance  int64           `json:"pending_maintenance"`
}

// GetDashboardMetrics computes the read-only dashboard for an owner or
// manager. Other roles see empty metrics.
func (s *Service) GetDashboardMetrics(actor *model.Profile) (*DashboardMetrics, error) {
	metrics := &DashboardMetrics{
		ExpectedRent:        decimal.Zero,
		RentCollected:       decimal.Zero,
		MaintenanceExpenses: decimal.Zero,
		NetIncome:           decimal.Zero,
	}

	var propertyIDs []uuid.UUID
	q := s.db.Model(&model.Property{})
	switch actor.Role {
	case model.RoleOwner:
		q = q.Where("owner_id = ?", actor.ID)
	case model.RoleManager:
		q = q.Where("manager_id = ?", actor.ID)
	default:
		return metrics, nil
	}
	if err := q.Pluck("id", &propertyIDs).Error; err != nil {
		return nil, err
	}
	metrics.TotalProperties = int64(len(propertyIDs))
	if len(propertyIDs) == 0 {
		return metrics, nil
	}

	if err := s.db.Model(&model.Unit{}).Where("property_id IN ?", propertyIDs).
		Count(&metrics.TotalUnits).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&model.Unit{}).
		Where("property_id IN ? AND is_occupied = ?", propertyIDs, true).
		Count(&metrics.OccupiedUnits).Error; err != nil {
		return nil, err
	}
	metrics.VacantUnits = metrics.TotalUnits - metrics.OccupiedUnits
	if metrics.TotalUnits > 0 {
		metrics.OccupancyRate = float64(metrics.OccupiedUnits) / float64(metrics.TotalUnits) * 100
	}

	monthStart := firstOfMonth(today())
	monthEnd := monthStart.AddDate(0, 1, 0).AddDate(0, 0, -1)

	var activeLeases []model.Lease
	if err := s.db.
		Joins("JOIN units ON units.id = leases.unit_id").
		Where("units.property_id IN ? AND leases.status = ?", propertyIDs, model.LeaseStatusActive).
		Find(&activeLeases).Error; err != nil {
		return nil, err
	}
	metrics.ActiveLeases = int64(len(activeLeases))

	leaseIDs := make([]uuid.UUID, 0, len(activeLeases))
	for _, lease := range activeLeases {
		metrics.ExpectedRent = metrics.ExpectedRent.Add(lease.MonthlyRent)
		leaseIDs = append(leaseIDs, lease.ID)
	}

	if len(leaseIDs) > 0 {
		var payments []model.RentPayment
		if err := s.db.
			Where("lease_id IN ? AND payment_date BETWEEN ? AND ?", leaseIDs, monthStart, monthEnd).
			Find(&payments).Error; err != nil {
			return nil, err
		}
		for _, p := range payments {
			metrics.RentCollected = metrics.RentCollected.Add(p.Amount)
		}
	}

	var completed []model.MaintenanceRequest
	if err := s.db.
		Where("property_id IN ? AND status = ? AND completed_date BETWEEN ? AND ?",
			propertyIDs, model.MaintenanceStatusCompleted, monthStart, monthEnd).
		Find(&completed).Error; err != nil {
		return nil, err
	}
	for _, m := range completed {
		if m.RepairCost != nil {
			metrics.MaintenanceExpenses = metrics.MaintenanceExpenses.Add(*m.RepairCost)
		}
	}

	if err := s.db.Model(&model.MaintenanceRequest{}).
		Where("property_id IN ? AND status = ?", propertyIDs, model.MaintenanceStatusPending).
		Count(&metrics.PendingMaintenance).Error; err != nil {
		return nil, err
	}

	metrics.NetIncome = metrics.RentCollected.Sub(metrics.MaintenanceExpenses)
	return metrics, nil
}
