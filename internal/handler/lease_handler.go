package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/CodeDreamers777/Assettone/internal/apperr"
	"github.com/CodeDreamers777/Assettone/internal/model"
	"github.com/CodeDreamers777/Assettone/internal/service"
	"github.com/CodeDreamers777/Assettone/pkg/logger"
	"github.com/CodeDreamers777/Assettone/prometheus"
)

func CreateLease(c echo.Context) error {
	log := logger.FromEcho(c)
	profile, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}

	var req struct {
		UnitID          uuid.UUID        `json:"unit_id"`
		TenantID        uuid.UUID        `json:"tenant_id"`
		StartDate       string           `json:"start_date"`
		EndDate         string           `json:"end_date"`
		MonthlyRent     *decimal.Decimal `json:"monthly_rent"`
		SecurityDeposit *decimal.Decimal `json:"security_deposit"`
		PaymentPeriod   string           `json:"payment_period"`
		Status          string           `json:"status"`
		Notes           string           `json:"notes"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	startDate, err := parseDate(req.StartDate, "start_date")
	if err != nil {
		return writeError(c, err)
	}
	endDate, err := parseDate(req.EndDate, "end_date")
	if err != nil {
		return writeError(c, err)
	}

	lease, err := svc.CreateLease(service.CreateLeaseInput{
		UnitID:          req.UnitID,
		TenantID:        req.TenantID,
		StartDate:       startDate,
		EndDate:         endDate,
		MonthlyRent:     req.MonthlyRent,
		SecurityDeposit: req.SecurityDeposit,
		PaymentPeriod:   model.PaymentPeriod(req.PaymentPeriod),
		Status:          model.LeaseStatus(req.Status),
		Notes:           req.Notes,
	}, profile)
	if err != nil {
		if apperr.Is(err, apperr.Conflict) {
			prometheus.LeaseConflictCounter.Inc()
		}
		return writeError(c, err)
	}

	prometheus.RecordLeaseTransition(string(lease.Status))
	log.Info("Lease created",
		zap.String("lease_id", lease.ID.String()),
		zap.String("unit_id", lease.UnitID.String()),
		zap.String("tenant_id", lease.TenantID.String()),
		zap.String("status", string(lease.Status)))
	return c.JSON(http.StatusCreated, echo.Map{"lease": lease})
}

func ListLeases(c echo.Context) error {
	profile, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}

	filter := service.LeaseFilter{
		Status: model.LeaseStatus(c.QueryParam("status")),
	}
	if raw := c.QueryParam("unit_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid unit id"})
		}
		filter.UnitID = &id
	}
	if raw := c.QueryParam("tenant_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid tenant id"})
		}
		filter.TenantID = &id
	}

	leases, err := svc.ListLeases(filter, profile)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"leases": leases})
}

func GetLease(c echo.Context) error {
	profile, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid lease id"})
	}

	lease, err := svc.GetLease(id, profile)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"lease": lease})
}

// ChangeLeaseStatus handles explicit status transitions on a lease
func ChangeLeaseStatus(c echo.Context) error {
	log := logger.FromEcho(c)
	profile, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid lease id"})
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	lease, err := svc.ChangeLeaseStatus(id, model.LeaseStatus(req.Status), profile)
	if err != nil {
		if apperr.Is(err, apperr.Conflict) {
			prometheus.LeaseConflictCounter.Inc()
		}
		return writeError(c, err)
	}

	prometheus.RecordLeaseTransition(string(lease.Status))
	log.Info("Lease status changed",
		zap.String("lease_id", lease.ID.String()),
		zap.String("status", string(lease.Status)))
	return c.JSON(http.StatusOK, echo.Map{"lease": lease})
}

// TerminateLease ends an active lease as of today
func TerminateLease(c echo.Context) error {
	log := logger.FromEcho(c)
	profile, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid lease id"})
	}

	lease, err := svc.TerminateLease(id, profile)
	if err != nil {
		return writeError(c, err)
	}

	prometheus.RecordLeaseTransition(string(lease.Status))
	log.Info("Lease terminated",
		zap.String("lease_id", lease.ID.String()),
		zap.String("unit_id", lease.UnitID.String()))
	return c.JSON(http.StatusOK, echo.Map{"lease": lease})
}

// TransferLease moves a unit's active lease to a new tenant
func TransferLease(c echo.Context) error {
	log := logger.FromEcho(c)
	profile, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid lease id"})
	}

	var req struct {
		NewTenantID uuid.UUID `json:"new_tenant_id"`
		Notes       string    `json:"notes"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	result, err := svc.TransferLease(id, req.NewTenantID, req.Notes, profile)
	if err != nil {
		if apperr.Is(err, apperr.Conflict) {
			prometheus.LeaseConflictCounter.Inc()
		}
		return writeError(c, err)
	}

	prometheus.LeaseTransferCounter.Inc()
	log.Info("Lease transferred",
		zap.String("old_lease_id", result.OldLease.ID.String()),
		zap.String("new_lease_id", result.NewLease.ID.String()),
		zap.String("new_tenant_id", result.NewLease.TenantID.String()))
	return c.JSON(http.StatusOK, result)
}
