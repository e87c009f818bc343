package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodeDreamers777/Assettone/internal/model"
)

func TestDashboardMetrics(t *testing.T) {
	svc := newTestService(t)
	owner := seedProfile(t, svc.DB(), model.RoleOwner)
	property := seedProperty(t, svc.DB(), owner, nil)
	occupied := seedUnit(t, svc.DB(), property, "A1", "1000", model.PaymentPeriodMonthly)
	seedUnit(t, svc.DB(), property, "A2", "800", model.PaymentPeriodMonthly)
	tenant := seedTenant(t, svc.DB(), "tina@example.com")
	lease := activeLease(t, svc, occupied, tenant, owner)

	_, err := svc.RecordPayment(RecordPaymentInput{
		LeaseID: lease.ID, Amount: money("600"), PaymentDate: today(),
	}, owner)
	require.NoError(t, err)

	metrics, err := svc.GetDashboardMetrics(owner)
	require.NoError(t, err)

	assert.Equal(t, int64(1), metrics.TotalProperties)
	assert.Equal(t, int64(2), metrics.TotalUnits)
	assert.Equal(t, int64(1), metrics.OccupiedUnits)
	assert.Equal(t, int64(1), metrics.VacantUnits)
	assert.InDelta(t, 50.0, metrics.OccupancyRate, 0.001)
	assert.Equal(t, int64(1), metrics.ActiveLeases)
	assert.True(t, metrics.ExpectedRent.Equal(money("1000")))
	assert.True(t, metrics.RentCollected.Equal(money("600")))
	assert.True(t, metrics.NetIncome.Equal(money("600")))
}

func TestDashboardMetricsEmptyForTenants(t *testing.T) {
	svc := newTestService(t)
	tenantActor := seedProfile(t, svc.DB(), model.RoleTenant)

	metrics, err := svc.GetDashboardMetrics(tenantActor)
	require.NoError(t, err)
	assert.Equal(t, int64(0), metrics.TotalProperties)
	assert.True(t, metrics.ExpectedRent.IsZero())
}

func TestListLeasesTransferHistory(t *testing.T) {
	svc := newTestService(t)
	owner := seedProfile(t, svc.DB(), model.RoleOwner)
	property := seedProperty(t, svc.DB(), owner, nil)
	unit := seedUnit(t, svc.DB(), property, "A1", "1000", model.PaymentPeriodMonthly)
	oldTenant := seedTenant(t, svc.DB(), "old@example.com")
	newTenant := seedTenant(t, svc.DB(), "new@example.com")
	lease := activeLease(t, svc, unit, oldTenant, owner)

	result, err := svc.TransferLease(lease.ID, newTenant.ID, "", owner)
	require.NoError(t, err)

	// both halves of the transfer show up for the unit
	leases, err := svc.ListLeases(LeaseFilter{UnitID: &unit.ID}, owner)
	require.NoError(t, err)
	assert.Len(t, leases, 2)

	// the chain back through the unit's history survives a reload
	loaded, err := svc.GetLease(result.NewLease.ID, owner)
	require.NoError(t, err)
	require.NotNil(t, loaded.PreviousLease)
	assert.Equal(t, lease.ID, loaded.PreviousLease.ID)
	assert.Equal(t, model.LeaseStatusTerminated, loaded.PreviousLease.Status)
}

func TestListLeasesStatusFilter(t *testing.T) {
	svc := newTestService(t)
	owner := seedProfile(t, svc.DB(), model.RoleOwner)
	property := seedProperty(t, svc.DB(), owner, nil)
	unit := seedUnit(t, svc.DB(), property, "A1", "1000", model.PaymentPeriodMonthly)
	tenant := seedTenant(t, svc.DB(), "tina@example.com")
	lease := activeLease(t, svc, unit, tenant, owner)

	_, err := svc.TerminateLease(lease.ID, owner)
	require.NoError(t, err)

	active, err := svc.ListLeases(LeaseFilter{Status: model.LeaseStatusActive}, owner)
	require.NoError(t, err)
	assert.Empty(t, active)

	terminated, err := svc.ListLeases(LeaseFilter{Status: model.LeaseStatusTerminated}, owner)
	require.NoError(t, err)
	assert.Len(t, terminated, 1)
}
