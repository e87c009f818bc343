package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RentPayment is one append-only ledger entry against a lease. Payments are
// immutable once created; corrections are recorded as further entries.
type RentPayment struct {
	ID      uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	LeaseID uuid.UUID `json:"lease_id" gorm:"type:uuid;not null;index"`
	Lease   *Lease    `json:"lease,omitempty" gorm:"foreignKey:LeaseID"`

	Amount        decimal.Decimal `json:"amount" gorm:"type:decimal(10,2);not null"`
	PaymentDate   time.Time       `json:"payment_date" gorm:"type:date;not null;index"`
	PaymentMethod string          `json:"payment_method,omitempty" gorm:"type:varchar(50)"`
	Notes         string          `json:"notes,omitempty" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *RentPayment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// RentPeriodStatus accumulates the payments of one billing period of a lease.
// One row per (lease, period); created lazily on the first payment recorded
// inside that period, with AmountDue seeded from the lease terms.
type RentPeriodStatus struct {
	ID      uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	LeaseID uuid.UUID `json:"lease_id" gorm:"type:uuid;not null;uniqueIndex:idx_rent_periods_lease_window"`
	Lease   *Lease    `json:"lease,omitempty" gorm:"foreignKey:LeaseID"`

	PeriodStartDate time.Time `json:"period_start_date" gorm:"type:date;not null;uniqueIndex:idx_rent_periods_lease_window"`
	PeriodEndDate   time.Time `json:"period_end_date" gorm:"type:date;not null"`

	AmountDue  decimal.Decimal `json:"amount_due" gorm:"type:decimal(10,2);not null"`
	AmountPaid decimal.Decimal `json:"amount_paid" gorm:"type:decimal(10,2);not null;default:0"`
	IsPaid     bool            `json:"is_paid" gorm:"default:false"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *RentPeriodStatus) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// RemainingBalance returns how much of the period's due amount is unpaid,
// floored at zero for overpayments.
func (r *RentPeriodStatus) RemainingBalance() decimal.Decimal {
	balance := r.AmountDue.Sub(r.AmountPaid)
	if balance.IsNegative() {
		return decimal.Zero
	}
	return balance
}

// PaymentStatus classifies how settled the period is.
type PaymentStatus string

const (
	PaymentStatusPaidInFull    PaymentStatus = "PAID_IN_FULL"
	PaymentStatusPartiallyPaid PaymentStatus = "PARTIALLY_PAID"
	PaymentStatusNotPaid       PaymentStatus = "NOT_PAID"
)

// Classify derives the payment status from the accumulated amounts.
func (r *RentPeriodStatus) Classify() PaymentStatus {
	switch {
	case r.AmountPaid.GreaterThanOrEqual(r.AmountDue):
		return PaymentStatusPaidInFull
	case r.AmountPaid.IsPositive():
		return PaymentStatusPartiallyPaid
	default:
		return PaymentStatusNotPaid
	}
}
