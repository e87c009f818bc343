package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodeDreamers777/Assettone/internal/apperr"
	"github.com/CodeDreamers777/Assettone/internal/model"
)

func TestCreateTenantStartsInactive(t *testing.T) {
	svc := newTestService(t)
	owner := seedProfile(t, svc.DB(), model.RoleOwner)

	tenant, err := svc.CreateTenant(CreateTenantInput{
		FirstName:   "Tina",
		LastName:    "Tenant",
		Email:       "tina@example.com",
		PhoneNumber: "0700000000",
	}, owner)
	require.NoError(t, err)
	assert.Equal(t, model.TenantStatusInactive, tenant.Status,
		"tenants start INACTIVE until a lease activates them")
}

func TestCreateTenantRequiresStaff(t *testing.T) {
	svc := newTestService(t)
	tenantActor := seedProfile(t, svc.DB(), model.RoleTenant)

	_, err := svc.CreateTenant(CreateTenantInput{
		FirstName: "Tina", LastName: "Tenant", PhoneNumber: "0700000000",
	}, tenantActor)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.Permission))
}

func TestCreateTenantIdentificationBothOrNeither(t *testing.T) {
	svc := newTestService(t)
	owner := seedProfile(t, svc.DB(), model.RoleOwner)

	_, err := svc.CreateTenant(CreateTenantInput{
		FirstName: "Tina", LastName: "Tenant", PhoneNumber: "0700000000",
		IdentificationType: model.IdentificationPassport,
	}, owner)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.Validation))

	_, err = svc.CreateTenant(CreateTenantInput{
		FirstName: "Tina", LastName: "Tenant", PhoneNumber: "0700000000",
		IdentificationNumber: "AB123456",
	}, owner)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.Validation))

	_, err = svc.CreateTenant(CreateTenantInput{
		FirstName: "Tina", LastName: "Tenant", PhoneNumber: "0700000000",
		IdentificationType: model.IdentificationPassport, IdentificationNumber: "AB123456",
	}, owner)
	require.NoError(t, err)
}

func TestCreateTenantDuplicateEmail(t *testing.T) {
	svc := newTestService(t)
	owner := seedProfile(t, svc.DB(), model.RoleOwner)

	in := CreateTenantInput{
		FirstName: "Tina", LastName: "Tenant", PhoneNumber: "0700000000",
		Email: "dup@example.com",
	}
	_, err := svc.CreateTenant(in, owner)
	require.NoError(t, err)

	_, err = svc.CreateTenant(in, owner)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.Conflict))
}

func TestCreateTenantDuplicateIdentification(t *testing.T) {
	svc := newTestService(t)
	owner := seedProfile(t, svc.DB(), model.RoleOwner)

	_, err := svc.CreateTenant(CreateTenantInput{
		FirstName: "A", LastName: "One", PhoneNumber: "0700000001",
		IdentificationType: model.IdentificationNationalID, IdentificationNumber: "XYZ-1",
	}, owner)
	require.NoError(t, err)

	_, err = svc.CreateTenant(CreateTenantInput{
		FirstName: "B", LastName: "Two", PhoneNumber: "0700000002",
		IdentificationType: model.IdentificationPassport, IdentificationNumber: "XYZ-1",
	}, owner)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.Conflict))
}

func TestTenantUniquenessBackedByIndex(t *testing.T) {
	svc := newTestService(t)
	owner := seedProfile(t, svc.DB(), model.RoleOwner)

	_, err := svc.CreateTenant(CreateTenantInput{
		FirstName: "Tina", LastName: "Tenant", PhoneNumber: "0700000001",
		Email:              "indexed@example.com",
		IdentificationType: model.IdentificationNationalID, IdentificationNumber: "NID-1",
	}, owner)
	require.NoError(t, err)

	// writers that slip past the pre-check still hit the store's index
	err = svc.DB().Create(&model.Tenant{
		FirstName: "Race", LastName: "Email", PhoneNumber: "0700000002",
		Email: "indexed@example.com",
	}).Error
	require.Error(t, err)

	err = svc.DB().Create(&model.Tenant{
		FirstName: "Race", LastName: "Identification", PhoneNumber: "0700000003",
		IdentificationType: model.IdentificationPassport, IdentificationNumber: "NID-1",
	}).Error
	require.Error(t, err)
}

func TestCreateTenantTwoWithoutEmail(t *testing.T) {
	svc := newTestService(t)
	owner := seedProfile(t, svc.DB(), model.RoleOwner)

	// the uniqueness rules ignore empty fields
	for _, phone := range []string{"0700000001", "0700000002"} {
		_, err := svc.CreateTenant(CreateTenantInput{
			FirstName: "No", LastName: "Email", PhoneNumber: phone,
		}, owner)
		require.NoError(t, err)
	}
}

func TestSetTenantStatusEviction(t *testing.T) {
	svc := newTestService(t)
	owner := seedProfile(t, svc.DB(), model.RoleOwner)
	property := seedProperty(t, svc.DB(), owner, nil)
	unit := seedUnit(t, svc.DB(), property, "A1", "1000", model.PaymentPeriodMonthly)
	tenant := seedTenant(t, svc.DB(), "tina@example.com")
	lease := activeLease(t, svc, unit, tenant, owner)

	evicted, err := svc.SetTenantStatus(tenant.ID, model.TenantStatusEvicted, owner)
	require.NoError(t, err)
	assert.Equal(t, model.TenantStatusEvicted, evicted.Status)

	// the cascade never resurrects an evicted tenant
	_, err = svc.TerminateLease(lease.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, model.TenantStatusEvicted, reloadTenant(t, svc.DB(), tenant.ID).Status)
}

func TestSetTenantStatusRequiresRelationship(t *testing.T) {
	svc := newTestService(t)
	owner := seedProfile(t, svc.DB(), model.RoleOwner)
	property := seedProperty(t, svc.DB(), owner, nil)
	unit := seedUnit(t, svc.DB(), property, "A1", "1000", model.PaymentPeriodMonthly)
	tenant := seedTenant(t, svc.DB(), "tina@example.com")
	activeLease(t, svc, unit, tenant, owner)

	stranger := seedProfile(t, svc.DB(), model.RoleOwner)
	_, err := svc.SetTenantStatus(tenant.ID, model.TenantStatusEvicted, stranger)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.Permission))
}

func TestListTenantsScopedToActorProperties(t *testing.T) {
	svc := newTestService(t)
	owner := seedProfile(t, svc.DB(), model.RoleOwner)
	property := seedProperty(t, svc.DB(), owner, nil)
	unit := seedUnit(t, svc.DB(), property, "A1", "1000", model.PaymentPeriodMonthly)
	tenant := seedTenant(t, svc.DB(), "mine@example.com")
	activeLease(t, svc, unit, tenant, owner)

	otherOwner := seedProfile(t, svc.DB(), model.RoleOwner)
	otherProperty := seedProperty(t, svc.DB(), otherOwner, nil)
	otherUnit := seedUnit(t, svc.DB(), otherProperty, "B1", "800", model.PaymentPeriodMonthly)
	otherTenant := seedTenant(t, svc.DB(), "theirs@example.com")
	activeLease(t, svc, otherUnit, otherTenant, otherOwner)

	tenants, err := svc.ListTenants(TenantFilter{}, owner)
	require.NoError(t, err)
	require.Len(t, tenants, 1)
	assert.Equal(t, "mine@example.com", tenants[0].Email)

	// search narrows further
	tenants, err = svc.ListTenants(TenantFilter{Search: "nosuch"}, owner)
	require.NoError(t, err)
	assert.Empty(t, tenants)
}
