package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/CodeDreamers777/Assettone/internal/apperr"
	"github.com/CodeDreamers777/Assettone/internal/model"
)

var depositMultiplier = decimal.RequireFromString("1.5")

// CreateLeaseInput carries the terms for a new lease. MonthlyRent and
// SecurityDeposit are optional: when absent they default from the unit's
// current rent (deposit at 1.5x the monthly rent).
type CreateLeaseInput struct {
	UnitID          uuid.UUID
	TenantID        uuid.UUID
	StartDate       time.Time
	EndDate         time.Time
	MonthlyRent     *decimal.Decimal
	SecurityDeposit *decimal.Decimal
	PaymentPeriod   model.PaymentPeriod
	Status          model.LeaseStatus
	Notes           string
}

// TransferResult reports both halves of a completed lease transfer.
type TransferResult struct {
	OldLease *model.Lease `json:"old_lease"`
	NewLease *model.Lease `json:"new_lease"`
}

// CreateLease creates a lease for a unit. When the lease is created ACTIVE,
// the unit must not already hold an active lease, and the occupancy cascade
// runs in the same transaction.
func (s *Service) CreateLease(in CreateLeaseInput, actor *model.Profile) (*model.Lease, error) {
	if in.Status == "" {
		in.Status = model.LeaseStatusActive
	}
	if in.Status != model.LeaseStatusPending && in.Status != model.LeaseStatusActive {
		return nil, apperr.Newf(apperr.Validation, "a lease cannot be created in status %s", in.Status)
	}
	in.StartDate = dateOnly(in.StartDate)
	in.EndDate = dateOnly(in.EndDate)
	if !in.EndDate.After(in.StartDate) {
		return nil, apperr.New(apperr.Validation, "end date must be after start date")
	}

	var lease *model.Lease
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var unit model.Unit
		if err := lockForUpdate(tx).Preload("Property").First(&unit, "id = ?", in.UnitID).Error; err != nil {
			return notFoundOr(err, "unit not found")
		}
		if err := requireCanAct(actor, unit.Property); err != nil {
			return err
		}

		var tenant model.Tenant
		if err := tx.First(&tenant, "id = ?", in.TenantID).Error; err != nil {
			return notFoundOr(err, "tenant not found")
		}

		if in.Status == model.LeaseStatusActive {
			if err := ensureUnitVacant(tx, unit.ID, uuid.Nil); err != nil {
				return err
			}
		}

		rent := unit.Rent
		if in.MonthlyRent != nil {
			rent = *in.MonthlyRent
		}
		if !rent.IsPositive() {
			return apperr.New(apperr.Validation, "monthly rent must be positive")
		}
		deposit := rent.Mul(depositMultiplier)
		if in.SecurityDeposit != nil {
			deposit = *in.SecurityDeposit
		}
		period := unit.PaymentPeriod
		if in.PaymentPeriod != "" {
			if !in.PaymentPeriod.Valid() {
				return apperr.Newf(apperr.Validation, "unknown payment period %s", in.PaymentPeriod)
			}
			period = in.PaymentPeriod
		}

		lease = &model.Lease{
			UnitID:          unit.ID,
			TenantID:        tenant.ID,
			StartDate:       in.StartDate,
			EndDate:         in.EndDate,
			MonthlyRent:     rent,
			SecurityDeposit: deposit,
			PaymentPeriod:   period,
			Status:          in.Status,
			Notes:           in.Notes,
		}
		if err := tx.Create(lease).Error; err != nil {
			return conflictOnDuplicateActive(err)
		}

		if in.Status == model.LeaseStatusActive {
			return s.applyLeaseStatusCascade(tx, lease)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return lease, nil
}

// ChangeLeaseStatus moves a lease to a new status and runs the occupancy
// cascade. Changing to the current status is a no-op and skips the cascade.
func (s *Service) ChangeLeaseStatus(leaseID uuid.UUID, newStatus model.LeaseStatus, actor *model.Profile) (*model.Lease, error) {
	if !newStatus.Valid() {
		return nil, apperr.Newf(apperr.Validation, "unknown lease status %s", newStatus)
	}

	var lease model.Lease
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Unit.Property").First(&lease, "id = ?", leaseID).Error; err != nil {
			return notFoundOr(err, "lease not found")
		}
		if err := requireCanAct(actor, lease.Unit.Property); err != nil {
			return err
		}
		if lease.Status == newStatus {
			return nil
		}
		return s.transition(tx, &lease, newStatus)
	})
	if err != nil {
		return nil, err
	}
	return &lease, nil
}

// TerminateLease terminates an active lease, setting its end date to today.
func (s *Service) TerminateLease(leaseID uuid.UUID, actor *model.Profile) (*model.Lease, error) {
	var lease model.Lease
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).Preload("Unit.Property").Preload("Tenant").First(&lease, "id = ?", leaseID).Error; err != nil {
			return notFoundOr(err, "lease not found")
		}
		if err := requireCanAct(actor, lease.Unit.Property); err != nil {
			return err
		}
		if lease.Status != model.LeaseStatusActive {
			return apperr.New(apperr.InvalidState, "only active leases can be terminated")
		}

		lease.EndDate = today()
		if err := tx.Model(&lease).Update("end_date", lease.EndDate).Error; err != nil {
			return err
		}
		return s.transition(tx, &lease, model.LeaseStatusTerminated)
	})
	if err != nil {
		return nil, err
	}
	return &lease, nil
}

// TransferLease closes an active lease and opens a new one for a different
// tenant on the same unit, chained through PreviousLeaseID. The old lease is
// terminated before the new one is created, both inside one transaction, so
// the unit never observably has zero or two active leases.
//
// The new lease keeps the old lease's original end date even though its start
// date resets to today; that carried-over term is deliberate and may already
// lie in the past.
func (s *Service) TransferLease(leaseID, newTenantID uuid.UUID, notes string, actor *model.Profile) (*TransferResult, error) {
	var result TransferResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var oldLease model.Lease
		if err := tx.Preload("Unit.Property").Preload("Tenant").First(&oldLease, "id = ?", leaseID).Error; err != nil {
			return notFoundOr(err, "lease not found")
		}
		if err := requireCanAct(actor, oldLease.Unit.Property); err != nil {
			return err
		}
		if oldLease.Status != model.LeaseStatusActive {
			return apperr.New(apperr.InvalidState, "only active leases can be transferred")
		}
		if newTenantID == oldLease.TenantID {
			return apperr.New(apperr.Validation, "lease is already held by this tenant")
		}

		var newTenant model.Tenant
		if err := tx.First(&newTenant, "id = ?", newTenantID).Error; err != nil {
			return notFoundOr(err, "tenant not found")
		}

		var activeCount int64
		if err := tx.Model(&model.Lease{}).
			Where("tenant_id = ? AND status = ?", newTenant.ID, model.LeaseStatusActive).
			Count(&activeCount).Error; err != nil {
			return err
		}
		if activeCount > 0 {
			return apperr.New(apperr.Conflict, "tenant already holds an active lease")
		}

		// Serialize against concurrent transfers/creates on the same unit.
		var unit model.Unit
		if err := lockForUpdate(tx).First(&unit, "id = ?", oldLease.UnitID).Error; err != nil {
			return err
		}

		originalEndDate := oldLease.EndDate

		oldLease.EndDate = today()
		if err := tx.Model(&oldLease).Update("end_date", oldLease.EndDate).Error; err != nil {
			return err
		}
		if err := s.transition(tx, &oldLease, model.LeaseStatusTerminated); err != nil {
			return err
		}

		newLease := &model.Lease{
			UnitID:          oldLease.UnitID,
			TenantID:        newTenant.ID,
			StartDate:       today(),
			EndDate:         originalEndDate,
			MonthlyRent:     oldLease.MonthlyRent,
			SecurityDeposit: oldLease.SecurityDeposit,
			PaymentPeriod:   oldLease.PaymentPeriod,
			Status:          model.LeaseStatusActive,
			PreviousLeaseID: &oldLease.ID,
			Notes:           notes,
		}
		if err := tx.Create(newLease).Error; err != nil {
			return conflictOnDuplicateActive(err)
		}
		if err := s.applyLeaseStatusCascade(tx, newLease); err != nil {
			return err
		}

		result.OldLease = &oldLease
		result.NewLease = newLease
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// transition writes a status change and runs the cascade. Callers have
// already verified authorization and loaded the lease inside tx.
func (s *Service) transition(tx *gorm.DB, lease *model.Lease, newStatus model.LeaseStatus) error {
	if lease.Status.Terminal() {
		return apperr.Newf(apperr.InvalidState, "no transitions defined out of %s", lease.Status)
	}
	if newStatus == model.LeaseStatusActive {
		if err := ensureUnitVacant(tx, lease.UnitID, lease.ID); err != nil {
			return err
		}
	}

	lease.Status = newStatus
	if err := tx.Model(lease).Update("status", newStatus).Error; err != nil {
		return conflictOnDuplicateActive(err)
	}
	return s.applyLeaseStatusCascade(tx, lease)
}

// applyLeaseStatusCascade is the single place Unit.IsOccupied and
// Tenant.Status are written. Every state-changing entry point invokes it
// explicitly; no persistence hook touches these rows.
func (s *Service) applyLeaseStatusCascade(tx *gorm.DB, lease *model.Lease) error {
	switch {
	case lease.Status == model.LeaseStatusActive:
		if err := tx.Model(&model.Unit{}).Where("id = ?", lease.UnitID).
			Update("is_occupied", true).Error; err != nil {
			return err
		}
		return tx.Model(&model.Tenant{}).Where("id = ?", lease.TenantID).
			Update("status", model.TenantStatusActive).Error

	case lease.Status.Terminal():
		if err := tx.Model(&model.Unit{}).Where("id = ?", lease.UnitID).
			Update("is_occupied", false).Error; err != nil {
			return err
		}
		// A tenant may hold leases on multiple units; demote only when no
		// other lease of theirs is still active. EVICTED stays untouched.
		var otherActive int64
		if err := tx.Model(&model.Lease{}).
			Where("tenant_id = ? AND status = ? AND id <> ?",
				lease.TenantID, model.LeaseStatusActive, lease.ID).
			Count(&otherActive).Error; err != nil {
			return err
		}
		if otherActive == 0 {
			return tx.Model(&model.Tenant{}).
				Where("id = ? AND status = ?", lease.TenantID, model.TenantStatusActive).
				Update("status", model.TenantStatusInactive).Error
		}
	}
	return nil
}

// ensureUnitVacant fails with a conflict when another lease for the unit is
// already active. The partial unique index on leases(unit_id) WHERE
// status='ACTIVE' backs this check against concurrent writers.
func ensureUnitVacant(tx *gorm.DB, unitID, excludeLeaseID uuid.UUID) error {
	q := tx.Model(&model.Lease{}).Where("unit_id = ? AND status = ?", unitID, model.LeaseStatusActive)
	if excludeLeaseID != uuid.Nil {
		q = q.Where("id <> ?", excludeLeaseID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperr.New(apperr.Conflict, "unit already leased")
	}
	return nil
}

// conflictOnDuplicateActive maps a unique-index violation on the
// one-active-lease index to the same conflict error the pre-check raises.
func conflictOnDuplicateActive(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
		return apperr.Wrap(apperr.Conflict, "unit already leased", err)
	}
	return err
}

// notFoundOr converts gorm's record-not-found into a domain error.
func notFoundOr(err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.New(apperr.NotFound, message)
	}
	return err
}
