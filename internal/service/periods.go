package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/CodeDreamers777/Assettone/internal/model"
)

// PeriodWindow is one billing window of a lease, end date inclusive.
type PeriodWindow struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether the date falls inside the window.
func (w PeriodWindow) Contains(date time.Time) bool {
	d := dateOnly(date)
	return !d.Before(w.Start) && !d.After(w.End)
}

const (
	halfYearlyWindowDays = 180
	yearlyWindowDays     = 365
)

// periodWindowFor resolves the billing window of a lease containing the
// given date.
//
// MONTHLY and BIMONTHLY windows are calendar-anchored: they start on the
// first of the month the date falls in. HALF_YEARLY and YEARLY windows are
// anchored at the lease start date in fixed blocks of 180 and 365 days, so
// their boundaries can fall mid-month. The asymmetry is intentional and
// load-bearing for existing ledgers.
func periodWindowFor(lease *model.Lease, date time.Time) PeriodWindow {
	d := dateOnly(date)

	switch lease.PaymentPeriod {
	case model.PaymentPeriodBimonthly:
		start := firstOfMonth(d)
		return PeriodWindow{Start: start, End: start.AddDate(0, 2, 0).AddDate(0, 0, -1)}
	case model.PaymentPeriodHalfYearly:
		return anchoredWindow(dateOnly(lease.StartDate), d, halfYearlyWindowDays)
	case model.PaymentPeriodYearly:
		return anchoredWindow(dateOnly(lease.StartDate), d, yearlyWindowDays)
	default: // MONTHLY
		start := firstOfMonth(d)
		return PeriodWindow{Start: start, End: start.AddDate(0, 1, 0).AddDate(0, 0, -1)}
	}
}

// amountDueFor is the rent owed over one billing window of the lease.
func amountDueFor(lease *model.Lease) decimal.Decimal {
	return lease.MonthlyRent.Mul(decimal.NewFromInt(lease.PaymentPeriod.RentMultiplier()))
}

func firstOfMonth(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// anchoredWindow finds the fixed-length block, counted from the lease start
// date, that contains the given date. Dates before the lease start fall into
// the first block.
func anchoredWindow(anchor, date time.Time, days int) PeriodWindow {
	k := 0
	if date.After(anchor) {
		k = int(date.Sub(anchor).Hours()) / 24 / days
	}
	start := anchor.AddDate(0, 0, k*days)
	return PeriodWindow{Start: start, End: start.AddDate(0, 0, days-1)}
}
