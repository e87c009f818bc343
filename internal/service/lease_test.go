package service

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodeDreamers777/Assettone/internal/apperr"
	"github.com/CodeDreamers777/Assettone/internal/model"
)

func TestCreateLeaseDefaultsFromUnit(t *testing.T) {
	svc := newTestService(t)
	owner := seedProfile(t, svc.DB(), model.RoleOwner)
	property := seedProperty(t, svc.DB(), owner, nil)
	unit := seedUnit(t, svc.DB(), property, "A1", "1000", model.PaymentPeriodMonthly)
	tenant := seedTenant(t, svc.DB(), "tina@example.com")

	lease := activeLease(t, svc, unit, tenant, owner)

	assert.Equal(t, model.LeaseStatusActive, lease.Status)
	assert.True(t, lease.MonthlyRent.Equal(money("1000")), "rent defaults from the unit")
	assert.True(t, lease.SecurityDeposit.Equal(money("1500")), "deposit defaults to 1.5x rent")
	assert.Equal(t, model.PaymentPeriodMonthly, lease.PaymentPeriod)

	assert.True(t, reloadUnit(t, svc.DB(), unit.ID).IsOccupied)
	assert.Equal(t, model.TenantStatusActive, reloadTenant(t, svc.DB(), tenant.ID).Status)
}

func TestCreateLeaseExplicitTerms(t *testing.T) {
	svc := newTestService(t)
	owner := seedProfile(t, svc.DB(), model.RoleOwner)
	property := seedProperty(t, svc.DB(), owner, nil)
	unit := seedUnit(t, svc.DB(), property, "A1", "1000", model.PaymentPeriodMonthly)
	tenant := seedTenant(t, svc.DB(), "tina@example.com")

	rent := money("1200")
	deposit := money("500")
	start, end := leaseTerm()
	lease, err := svc.CreateLease(CreateLeaseInput{
		UnitID:          unit.ID,
		TenantID:        tenant.ID,
		StartDate:       start,
		EndDate:         end,
		MonthlyRent:     &rent,
		SecurityDeposit: &deposit,
		PaymentPeriod:   model.PaymentPeriodBimonthly,
	}, owner)
	require.NoError(t, err)

	assert.True(t, lease.MonthlyRent.Equal(rent))
	assert.True(t, lease.SecurityDeposit.Equal(deposit))
	assert.Equal(t, model.PaymentPeriodBimonthly, lease.PaymentPeriod)
}

func TestCreateLeasePendingSkipsCascade(t *testing.T) {
	svc := newTestService(t)
	owner := seedProfile(t, svc.DB(), model.RoleOwner)
	property := seedProperty(t, svc.DB(), owner, nil)
	unit := seedUnit(t, svc.DB(), property, "A1", "1000", model.PaymentPeriodMonthly)
	tenant := seedTenant(t, svc.DB(), "tina@example.com")

	start, end := leaseTerm()
	lease, err := svc.CreateLease(CreateLeaseInput{
		UnitID:    unit.ID,
		TenantID:  tenant.ID,
		StartDate: start,
		EndDate:   end,
		Status:    model.LeaseStatusPending,
	}, owner)
	require.NoError(t, err)

	assert.Equal(t, model.LeaseStatusPending, lease.Status)
	assert.False(t, reloadUnit(t, svc.DB(), unit.ID).IsOccupied)
	assert.Equal(t, model.TenantStatusInactive, reloadTenant(t, svc.DB(), tenant.ID).Status)
}

func TestCreateLeaseRejectsOccupiedUnit(t *testing.T) {
	svc := newTestService(t)
	owner := seedProfile(t, svc.DB(), model.RoleOwner)
	property := seedProperty(t, svc.DB(), owner, nil)
	unit := seedUnit(t, svc.DB(), property, "A1", "1000", model.PaymentPeriodMonthly)
	first := seedTenant(t, svc.DB(), "first@example.com")
	second := seedTenant(t, svc.DB(), "second@example.com")

	activeLease(t, svc, unit, first, owner)

	start, end := leaseTerm()
	_, err := svc.CreateLease(CreateLeaseInput{
		UnitID:    unit.ID,
		TenantID:  second.ID,
		StartDate: start,
		EndDate:   end,
	}, owner)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.Conflict))
}

func TestCreateLeaseValidation(t *testing.T) {
	svc := newTestService(t)
	owner := seedProfile(t, svc.DB(), model.RoleOwner)
	property := seedProperty(t, svc.DB(), owner, nil)
	unit := seedUnit(t, svc.DB(), property, "A1", "1000", model.PaymentPeriodMonthly)
	tenant := seedTenant(t, svc.DB(), "tina@example.com")

	start, end := leaseTerm()

	// end date not after start date
	_, err := svc.CreateLease(CreateLeaseInput{
		UnitID: unit.ID, TenantID: tenant.ID, StartDate: start, EndDate: start,
	}, owner)
	assert.True(t, apperr.Is(err, apperr.Validation))

	// a lease cannot be born terminated
	_, err = svc.CreateLease(CreateLeaseInput{
		UnitID: unit.ID, TenantID: tenant.ID, StartDate: start, EndDate: end,
		Status: model.LeaseStatusTerminated,
	}, owner)
	assert.True(t, apperr.Is(err, apperr.Validation))
}

func TestCreateLeaseAuthorization(t *testing.T) {
	svc := newTestService(t)
	owner := seedProfile(t, svc.DB(), model.RoleOwner)
	otherOwner := seedProfile(t, svc.DB(), model.RoleOwner)
	clerk := seedProfile(t, svc.DB(), model.RoleClerk)
	property := seedProperty(t, svc.DB(), owner, nil)
	unit := seedUnit(t, svc.DB(), property, "A1", "1000", model.PaymentPeriodMonthly)
	tenant := seedTenant(t, svc.DB(), "tina@example.com")

	start, end := leaseTerm()
	for _, actor := range []*model.Profile{otherOwner, clerk} {
		_, err := svc.CreateLease(CreateLeaseInput{
			UnitID: unit.ID, TenantID: tenant.ID, StartDate: start, EndDate: end,
		}, actor)
		require.Error(t, err)
		assert.True(t, apperr.Is(err, apperr.Permission))
	}
}

func TestTerminateLease(t *testing.T) {
	svc := newTestService(t)
	owner := seedProfile(t, svc.DB(), model.RoleOwner)
	property := seedProperty(t, svc.DB(), owner, nil)
	unit := seedUnit(t, svc.DB(), property, "A1", "1000", model.PaymentPeriodMonthly)
	tenant := seedTenant(t, svc.DB(), "tina@example.com")
	lease := activeLease(t, svc, unit, tenant, owner)

	terminated, err := svc.TerminateLease(lease.ID, owner)
	require.NoError(t, err)

	assert.Equal(t, model.LeaseStatusTerminated, terminated.Status)
	assert.True(t, terminated.EndDate.Equal(today()), "end date moves to the termination date")
	assert.False(t, reloadUnit(t, svc.DB(), unit.ID).IsOccupied)
	assert.Equal(t, model.TenantStatusInactive, reloadTenant(t, svc.DB(), tenant.ID).Status)
}

func TestTerminateRequiresActiveLease(t *testing.T) {
	svc := newTestService(t)
	owner := seedProfile(t, svc.DB(), model.RoleOwner)
	property := seedProperty(t, svc.DB(), owner, nil)
	unit := seedUnit(t, svc.DB(), property, "A1", "1000", model.PaymentPeriodMonthly)
	tenant := seedTenant(t, svc.DB(), "tina@example.com")
	lease := activeLease(t, svc, unit, tenant, owner)

	_, err := svc.TerminateLease(lease.ID, owner)
	require.NoError(t, err)

	_, err = svc.TerminateLease(lease.ID, owner)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.InvalidState))
}

func TestCascadeKeepsTenantActiveWithOtherLease(t *testing.T) {
	svc := newTestService(t)
	owner := seedProfile(t, svc.DB(), model.RoleOwner)
	property := seedProperty(t, svc.DB(), owner, nil)
	unitA := seedUnit(t, svc.DB(), property, "A1", "1000", model.PaymentPeriodMonthly)
	unitB := seedUnit(t, svc.DB(), property, "B1", "1500", model.PaymentPeriodMonthly)
	tenant := seedTenant(t, svc.DB(), "tina@example.com")

	leaseA := activeLease(t, svc, unitA, tenant, owner)
	activeLease(t, svc, unitB, tenant, owner)

	_, err := svc.TerminateLease(leaseA.ID, owner)
	require.NoError(t, err)

	assert.False(t, reloadUnit(t, svc.DB(), unitA.ID).IsOccupied)
	assert.Equal(t, model.TenantStatusActive, reloadTenant(t, svc.DB(), tenant.ID).Status,
		"tenant keeps ACTIVE while another lease of theirs is still active")
}

func TestCascadeLeavesEvictedTenantAlone(t *testing.T) {
	svc := newTestService(t)
	owner := seedProfile(t, svc.DB(), model.RoleOwner)
	property := seedProperty(t, svc.DB(), owner, nil)
	unit := seedUnit(t, svc.DB(), property, "A1", "1000", model.PaymentPeriodMonthly)
	tenant := seedTenant(t, svc.DB(), "tina@example.com")
	lease := activeLease(t, svc, unit, tenant, owner)

	require.NoError(t, svc.DB().Model(&model.Tenant{}).
		Where("id = ?", tenant.ID).
		Update("status", model.TenantStatusEvicted).Error)

	_, err := svc.TerminateLease(lease.ID, owner)
	require.NoError(t, err)

	assert.Equal(t, model.TenantStatusEvicted, reloadTenant(t, svc.DB(), tenant.ID).Status)
}

func TestChangeLeaseStatusNoOp(t *testing.T) {
	svc := newTestService(t)
	owner := seedProfile(t, svc.DB(), model.RoleOwner)
	property := seedProperty(t, svc.DB(), owner, nil)
	unit := seedUnit(t, svc.DB(), property, "A1", "1000", model.PaymentPeriodMonthly)
	tenant := seedTenant(t, svc.DB(), "tina@example.com")
	lease := activeLease(t, svc, unit, tenant, owner)

	same, err := svc.ChangeLeaseStatus(lease.ID, model.LeaseStatusActive, owner)
	require.NoError(t, err)
	assert.Equal(t, model.LeaseStatusActive, same.Status)
}

func TestNoTransitionsOutOfTerminalStatus(t *testing.T) {
	svc := newTestService(t)
	owner := seedProfile(t, svc.DB(), model.RoleOwner)
	property := seedProperty(t, svc.DB(), owner, nil)
	unit := seedUnit(t, svc.DB(), property, "A1", "1000", model.PaymentPeriodMonthly)
	tenant := seedTenant(t, svc.DB(), "tina@example.com")
	lease := activeLease(t, svc, unit, tenant, owner)

	_, err := svc.TerminateLease(lease.ID, owner)
	require.NoError(t, err)

	for _, status := range []model.LeaseStatus{
		model.LeaseStatusActive, model.LeaseStatusPending, model.LeaseStatusExpired,
	} {
		_, err := svc.ChangeLeaseStatus(lease.ID, status, owner)
		require.Error(t, err)
		assert.True(t, apperr.Is(err, apperr.InvalidState))
	}
}

func TestActivatePendingLeaseChecksVacancy(t *testing.T) {
	svc := newTestService(t)
	owner := seedProfile(t, svc.DB(), model.RoleOwner)
	property := seedProperty(t, svc.DB(), owner, nil)
	unit := seedUnit(t, svc.DB(), property, "A1", "1000", model.PaymentPeriodMonthly)
	first := seedTenant(t, svc.DB(), "first@example.com")
	second := seedTenant(t, svc.DB(), "second@example.com")

	activeLease(t, svc, unit, first, owner)

	start, end := leaseTerm()
	pending, err := svc.CreateLease(CreateLeaseInput{
		UnitID: unit.ID, TenantID: second.ID, StartDate: start, EndDate: end,
		Status: model.LeaseStatusPending,
	}, owner)
	require.NoError(t, err)

	_, err = svc.ChangeLeaseStatus(pending.ID, model.LeaseStatusActive, owner)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.Conflict))
}

func TestTransferLease(t *testing.T) {
	svc := newTestService(t)
	owner := seedProfile(t, svc.DB(), model.RoleOwner)
	property := seedProperty(t, svc.DB(), owner, nil)
	unit := seedUnit(t, svc.DB(), property, "A1", "1000", model.PaymentPeriodMonthly)
	oldTenant := seedTenant(t, svc.DB(), "old@example.com")
	newTenant := seedTenant(t, svc.DB(), "new@example.com")
	lease := activeLease(t, svc, unit, oldTenant, owner)
	originalEndDate := lease.EndDate

	result, err := svc.TransferLease(lease.ID, newTenant.ID, "handover", owner)
	require.NoError(t, err)

	assert.Equal(t, model.LeaseStatusTerminated, result.OldLease.Status)
	assert.True(t, result.OldLease.EndDate.Equal(today()))

	assert.Equal(t, model.LeaseStatusActive, result.NewLease.Status)
	assert.Equal(t, newTenant.ID, result.NewLease.TenantID)
	assert.True(t, result.NewLease.StartDate.Equal(today()))
	assert.True(t, result.NewLease.EndDate.Equal(originalEndDate),
		"the new lease carries the old lease's original end date")
	require.NotNil(t, result.NewLease.PreviousLeaseID)
	assert.Equal(t, lease.ID, *result.NewLease.PreviousLeaseID)
	assert.True(t, result.NewLease.MonthlyRent.Equal(lease.MonthlyRent))

	assert.True(t, reloadUnit(t, svc.DB(), unit.ID).IsOccupied)
	assert.Equal(t, model.TenantStatusInactive, reloadTenant(t, svc.DB(), oldTenant.ID).Status)
	assert.Equal(t, model.TenantStatusActive, reloadTenant(t, svc.DB(), newTenant.ID).Status)
}

func TestTransferRejectsSameTenant(t *testing.T) {
	svc := newTestService(t)
	owner := seedProfile(t, svc.DB(), model.RoleOwner)
	property := seedProperty(t, svc.DB(), owner, nil)
	unit := seedUnit(t, svc.DB(), property, "A1", "1000", model.PaymentPeriodMonthly)
	tenant := seedTenant(t, svc.DB(), "tina@example.com")
	lease := activeLease(t, svc, unit, tenant, owner)

	_, err := svc.TransferLease(lease.ID, tenant.ID, "", owner)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.Validation))
}

func TestTransferRejectsTenantWithActiveLease(t *testing.T) {
	svc := newTestService(t)
	owner := seedProfile(t, svc.DB(), model.RoleOwner)
	property := seedProperty(t, svc.DB(), owner, nil)
	unitA := seedUnit(t, svc.DB(), property, "A1", "1000", model.PaymentPeriodMonthly)
	unitB := seedUnit(t, svc.DB(), property, "B1", "1500", model.PaymentPeriodMonthly)
	tenantA := seedTenant(t, svc.DB(), "a@example.com")
	tenantB := seedTenant(t, svc.DB(), "b@example.com")

	leaseA := activeLease(t, svc, unitA, tenantA, owner)
	activeLease(t, svc, unitB, tenantB, owner)

	_, err := svc.TransferLease(leaseA.ID, tenantB.ID, "", owner)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.Conflict))

	// nothing changed: the transaction rolled back whole
	assert.Equal(t, model.LeaseStatusActive, reloadLease(t, svc.DB(), leaseA.ID).Status)
	assert.True(t, reloadUnit(t, svc.DB(), unitA.ID).IsOccupied)
}

func TestTransferRequiresActiveLease(t *testing.T) {
	svc := newTestService(t)
	owner := seedProfile(t, svc.DB(), model.RoleOwner)
	property := seedProperty(t, svc.DB(), owner, nil)
	unit := seedUnit(t, svc.DB(), property, "A1", "1000", model.PaymentPeriodMonthly)
	oldTenant := seedTenant(t, svc.DB(), "old@example.com")
	newTenant := seedTenant(t, svc.DB(), "new@example.com")
	lease := activeLease(t, svc, unit, oldTenant, owner)

	_, err := svc.TerminateLease(lease.ID, owner)
	require.NoError(t, err)

	_, err = svc.TransferLease(lease.ID, newTenant.ID, "", owner)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.InvalidState))
}

func TestManagerCanActOnManagedProperty(t *testing.T) {
	svc := newTestService(t)
	owner := seedProfile(t, svc.DB(), model.RoleOwner)
	manager := seedProfile(t, svc.DB(), model.RoleManager)
	property := seedProperty(t, svc.DB(), owner, &manager.ID)
	unit := seedUnit(t, svc.DB(), property, "A1", "1000", model.PaymentPeriodMonthly)
	tenant := seedTenant(t, svc.DB(), "tina@example.com")

	lease := activeLease(t, svc, unit, tenant, manager)
	_, err := svc.TerminateLease(lease.ID, manager)
	require.NoError(t, err)
}

func TestConcurrentLeaseCreationOneWinner(t *testing.T) {
	svc := newTestService(t)
	owner := seedProfile(t, svc.DB(), model.RoleOwner)
	property := seedProperty(t, svc.DB(), owner, nil)
	unit := seedUnit(t, svc.DB(), property, "A1", "1000", model.PaymentPeriodMonthly)
	tenants := []*model.Tenant{
		seedTenant(t, svc.DB(), "a@example.com"),
		seedTenant(t, svc.DB(), "b@example.com"),
	}

	start, end := leaseTerm()
	errs := make([]error, len(tenants))
	var wg sync.WaitGroup
	for i, tenant := range tenants {
		wg.Add(1)
		go func(i int, tenant *model.Tenant) {
			defer wg.Done()
			_, errs[i] = svc.CreateLease(CreateLeaseInput{
				UnitID: unit.ID, TenantID: tenant.ID, StartDate: start, EndDate: end,
			}, owner)
		}(i, tenant)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			assert.True(t, apperr.Is(err, apperr.Conflict), "loser sees a conflict, got: %v", err)
		}
	}
	assert.Equal(t, 1, winners, "exactly one lease creation wins")

	var active int64
	require.NoError(t, svc.DB().Model(&model.Lease{}).
		Where("unit_id = ? AND status = ?", unit.ID, model.LeaseStatusActive).
		Count(&active).Error)
	assert.Equal(t, int64(1), active)
}
