package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/CodeDreamers777/Assettone/internal/model"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps the in-memory database alive across the
	// whole test and serializes writers the way file-backed sqlite does.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.Profile{},
		&model.Property{},
		&model.Unit{},
		&model.Tenant{},
		&model.Lease{},
		&model.RentPayment{},
		&model.RentPeriodStatus{},
		&model.MaintenanceRequest{},
	))
	return db
}

func newTestService(t *testing.T) *Service {
	return New(setupTestDB(t))
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func seedProfile(t *testing.T, db *gorm.DB, role model.Role) *model.Profile {
	profile := &model.Profile{
		Email:     fmt.Sprintf("%s-%s@example.com", role, uuid.NewString()[:8]),
		FirstName: "Test",
		LastName:  string(role),
		Role:      role,
	}
	require.NoError(t, db.Create(profile).Error)
	return profile
}

func seedProperty(t *testing.T, db *gorm.DB, owner *model.Profile, managerID *uuid.UUID) *model.Property {
	property := &model.Property{
		Name:         "Riverside Court",
		AddressLine1: "12 River Road",
		City:         "Nairobi",
		State:        "Nairobi",
		PostalCode:   "00100",
		Country:      "Kenya",
		OwnerID:      owner.ID,
		ManagerID:    managerID,
	}
	require.NoError(t, db.Create(property).Error)
	return property
}

func seedUnit(t *testing.T, db *gorm.DB, property *model.Property, number, rent string, period model.PaymentPeriod) *model.Unit {
	unit := &model.Unit{
		UnitNumber:    number,
		PropertyID:    property.ID,
		UnitType:      model.UnitTypeOneBedroom,
		Rent:          money(rent),
		PaymentPeriod: period,
	}
	require.NoError(t, db.Create(unit).Error)
	return unit
}

func seedTenant(t *testing.T, db *gorm.DB, email string) *model.Tenant {
	tenant := &model.Tenant{
		FirstName:   "Tina",
		LastName:    "Tenant",
		Email:       email,
		PhoneNumber: "0700000000",
		Status:      model.TenantStatusInactive,
	}
	require.NoError(t, db.Create(tenant).Error)
	return tenant
}

// leaseTerm returns a one-year lease window starting today.
func leaseTerm() (time.Time, time.Time) {
	start := today()
	return start, start.AddDate(1, 0, 0)
}

func activeLease(t *testing.T, svc *Service, unit *model.Unit, tenant *model.Tenant, actor *model.Profile) *model.Lease {
	start, end := leaseTerm()
	lease, err := svc.CreateLease(CreateLeaseInput{
		UnitID:    unit.ID,
		TenantID:  tenant.ID,
		StartDate: start,
		EndDate:   end,
	}, actor)
	require.NoError(t, err)
	return lease
}

func reloadUnit(t *testing.T, db *gorm.DB, id uuid.UUID) *model.Unit {
	var unit model.Unit
	require.NoError(t, db.First(&unit, "id = ?", id).Error)
	return &unit
}

func reloadTenant(t *testing.T, db *gorm.DB, id uuid.UUID) *model.Tenant {
	var tenant model.Tenant
	require.NoError(t, db.First(&tenant, "id = ?", id).Error)
	return &tenant
}

func reloadLease(t *testing.T, db *gorm.DB, id uuid.UUID) *model.Lease {
	var lease model.Lease
	require.NoError(t, db.First(&lease, "id = ?", id).Error)
	return &lease
}
