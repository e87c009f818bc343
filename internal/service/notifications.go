package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/CodeDreamers777/Assettone/internal/apperr"
	"github.com/CodeDreamers777/Assettone/internal/model"
	"github.com/CodeDreamers777/Assettone/internal/notify"
)

// EmailTenants fans one message out to many tenants, reporting per-recipient
// outcomes. Tenants without an email address are skipped.
func (s *Service) EmailTenants(ctx context.Context, sender notify.Sender, tenantIDs []uuid.UUID, subject, body string, actor *model.Profile) (*notify.Result, error) {
	if err := requireStaff(actor); err != nil {
		return nil, err
	}
	if subject == "" || body == "" {
		return nil, apperr.New(apperr.Validation, "subject and message are required")
	}

	var tenants []model.Tenant
	if err := s.db.Where("id IN ?", tenantIDs).Find(&tenants).Error; err != nil {
		return nil, err
	}
	if len(tenants) == 0 {
		return nil, apperr.New(apperr.NotFound, "no valid tenants found")
	}

	messages := make([]notify.Message, 0, len(tenants))
	for _, tenant := range tenants {
		if tenant.Email == "" {
			continue
		}
		messages = append(messages, notify.Message{
			Recipient: tenant.Email,
			Name:      tenant.FullName(),
			Subject:   subject,
			Body:      body,
		})
	}

	return notify.Fanout(ctx, sender, messages), nil
}

// SendRentalNotice emails the tenant on a unit's active lease when their
// current billing period is underpaid. Returns nil without sending when
// nothing is overdue.
func (s *Service) SendRentalNotice(ctx context.Context, sender notify.Sender, unitID uuid.UUID, actor *model.Profile) (*notify.Result, error) {
	unit, err := s.GetUnit(unitID, actor)
	if err != nil {
		return nil, err
	}

	var lease model.Lease
	if err := s.db.Preload("Tenant").
		Where("unit_id = ? AND status = ?", unit.ID, model.LeaseStatusActive).
		First(&lease).Error; err != nil {
		return nil, notFoundOr(err, "no active lease for this unit")
	}

	status, err := s.GetPaymentStatus(unit.ID)
	if err != nil {
		return nil, err
	}
	if status == nil || status.PaymentStatus == model.PaymentStatusPaidInFull {
		return nil, nil
	}
	if lease.Tenant.Email == "" {
		return nil, apperr.New(apperr.Validation, "tenant has no email address on file")
	}

	daysOverdue := int(today().Sub(status.PeriodStart).Hours() / 24)
	body := fmt.Sprintf(
		"Rent of %s for unit %s is outstanding. The current period started on %s (%d days ago).",
		status.RemainingBalance.StringFixed(2), unit.UnitNumber,
		status.PeriodStart.Format("January 2, 2006"), daysOverdue,
	)

	return notify.Fanout(ctx, sender, []notify.Message{{
		Recipient: lease.Tenant.Email,
		Name:      lease.Tenant.FullName(),
		Subject:   "Important: Rent Payment Reminder",
		Body:      body,
	}}), nil
}
