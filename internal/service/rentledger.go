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

// RecordPaymentInput carries one rent payment against a lease.
type RecordPaymentInput struct {
	LeaseID       uuid.UUID
	Amount        decimal.Decimal
	PaymentDate   time.Time
	PaymentMethod string
	Notes         string
}

// PaymentResult reports the ledger entry and the updated period bucket.
type PaymentResult struct {
	PaymentID        uuid.UUID               `json:"payment_id"`
	Period           *model.RentPeriodStatus `json:"period_status"`
	RemainingBalance decimal.Decimal         `json:"remaining_balance"`
}

// PaymentStatusView is the current-period snapshot for a unit's active lease.
type PaymentStatusView struct {
	TotalRent        decimal.Decimal     `json:"total_rent"`
	TotalPaid        decimal.Decimal     `json:"total_paid"`
	RemainingBalance decimal.Decimal     `json:"remaining_balance"`
	PaymentStatus    model.PaymentStatus `json:"payment_status"`
	PeriodStart      time.Time           `json:"period_start"`
	PeriodEnd        time.Time           `json:"period_end"`
}

// RecordPayment appends a payment to the lease's ledger and reconciles the
// billing period containing the payment date. The period row is created
// lazily on the first payment inside its window, with the due amount seeded
// from the lease terms.
func (s *Service) RecordPayment(in RecordPaymentInput, actor *model.Profile) (*PaymentResult, error) {
	if !in.Amount.IsPositive() {
		return nil, apperr.New(apperr.Validation, "payment amount must be positive")
	}
	in.PaymentDate = dateOnly(in.PaymentDate)

	var result PaymentResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var lease model.Lease
		if err := lockForUpdate(tx).Preload("Unit.Property").First(&lease, "id = ?", in.LeaseID).Error; err != nil {
			return notFoundOr(err, "lease not found")
		}
		if err := requireCanAct(actor, lease.Unit.Property); err != nil {
			return err
		}
		if lease.Status != model.LeaseStatusActive {
			return apperr.New(apperr.InvalidState, "cannot pay inactive lease")
		}

		payment := &model.RentPayment{
			LeaseID:       lease.ID,
			Amount:        in.Amount,
			PaymentDate:   in.PaymentDate,
			PaymentMethod: in.PaymentMethod,
			Notes:         in.Notes,
		}
		if err := tx.Create(payment).Error; err != nil {
			return err
		}

		window := periodWindowFor(&lease, in.PaymentDate)
		period, err := s.upsertPeriod(tx, &lease, window, in.Amount)
		if err != nil {
			return err
		}

		result = PaymentResult{
			PaymentID:        payment.ID,
			Period:           period,
			RemainingBalance: period.RemainingBalance(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// upsertPeriod finds or creates the period bucket for the window and
// accumulates the payment into it.
func (s *Service) upsertPeriod(tx *gorm.DB, lease *model.Lease, window PeriodWindow, amount decimal.Decimal) (*model.RentPeriodStatus, error) {
	var period model.RentPeriodStatus
	err := lockForUpdate(tx).
		Where("lease_id = ? AND period_start_date = ?", lease.ID, window.Start).
		First(&period).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		period = model.RentPeriodStatus{
			LeaseID:         lease.ID,
			PeriodStartDate: window.Start,
			PeriodEndDate:   window.End,
			AmountDue:       amountDueFor(lease),
			AmountPaid:      decimal.Zero,
		}
		if err := tx.Create(&period).Error; err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	period.AmountPaid = period.AmountPaid.Add(amount)
	period.IsPaid = period.AmountPaid.GreaterThanOrEqual(period.AmountDue)
	if err := tx.Model(&period).
		Updates(map[string]interface{}{"amount_paid": period.AmountPaid, "is_paid": period.IsPaid}).Error; err != nil {
		return nil, err
	}
	return &period, nil
}

// GetPaymentStatus returns the current billing-period snapshot for the
// unit's active lease, or nil when the unit has none.
func (s *Service) GetPaymentStatus(unitID uuid.UUID) (*PaymentStatusView, error) {
	var lease model.Lease
	err := s.db.
		Where("unit_id = ? AND status = ?", unitID, model.LeaseStatusActive).
		First(&lease).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	window := periodWindowFor(&lease, today())
	due := amountDueFor(&lease)
	paid := decimal.Zero
	isPaidStatus := model.PaymentStatusNotPaid

	var period model.RentPeriodStatus
	err = s.db.
		Where("lease_id = ? AND period_start_date = ?", lease.ID, window.Start).
		First(&period).Error
	if err == nil {
		due = period.AmountDue
		paid = period.AmountPaid
		isPaidStatus = period.Classify()
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	remaining := due.Sub(paid)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	return &PaymentStatusView{
		TotalRent:        due,
		TotalPaid:        paid,
		RemainingBalance: remaining,
		PaymentStatus:    isPaidStatus,
		PeriodStart:      window.Start,
		PeriodEnd:        window.End,
	}, nil
}

// PaymentsForLease lists the append-only ledger for a lease, newest first.
func (s *Service) PaymentsForLease(leaseID uuid.UUID) ([]model.RentPayment, error) {
	var payments []model.RentPayment
	err := s.db.
		Where("lease_id = ?", leaseID).
		Order("payment_date DESC, created_at DESC").
		Find(&payments).Error
	return payments, err
}
