package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/CodeDreamers777/Assettone/internal/model"
	"github.com/CodeDreamers777/Assettone/internal/service"
	"github.com/CodeDreamers777/Assettone/pkg/logger"
)

func CreateTenant(c echo.Context) error {
	log := logger.FromEcho(c)
	profile, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}

	var req struct {
		FirstName             string           `json:"first_name"`
		LastName              string           `json:"last_name"`
		Email                 string           `json:"email"`
		PhoneNumber           string           `json:"phone_number"`
		IdentificationType    string           `json:"identification_type"`
		IdentificationNumber  string           `json:"identification_number"`
		Occupation            string           `json:"occupation"`
		MonthlyIncome         *decimal.Decimal `json:"monthly_income"`
		EmergencyContactName  string           `json:"emergency_contact_name"`
		EmergencyContactPhone string           `json:"emergency_contact_phone"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	tenant, err := svc.CreateTenant(service.CreateTenantInput{
		FirstName:             req.FirstName,
		LastName:              req.LastName,
		Email:                 req.Email,
		PhoneNumber:           req.PhoneNumber,
		IdentificationType:    model.IdentificationType(req.IdentificationType),
		IdentificationNumber:  req.IdentificationNumber,
		Occupation:            req.Occupation,
		MonthlyIncome:         req.MonthlyIncome,
		EmergencyContactName:  req.EmergencyContactName,
		EmergencyContactPhone: req.EmergencyContactPhone,
	}, profile)
	if err != nil {
		return writeError(c, err)
	}

	log.Info("Tenant created", zap.String("tenant_id", tenant.ID.String()))
	return c.JSON(http.StatusCreated, echo.Map{"tenant": tenant})
}

func ListTenants(c echo.Context) error {
	profile, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}

	tenants, err := svc.ListTenants(service.TenantFilter{
		Status: model.TenantStatus(c.QueryParam("status")),
		Search: c.QueryParam("search"),
	}, profile)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"tenants": tenants})
}

func GetTenant(c echo.Context) error {
	profile, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid tenant id"})
	}

	tenant, err := svc.GetTenant(id, profile)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"tenant": tenant})
}

// SetTenantStatus handles manual tenant status changes, including eviction
func SetTenantStatus(c echo.Context) error {
	log := logger.FromEcho(c)
	profile, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid tenant id"})
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	tenant, err := svc.SetTenantStatus(id, model.TenantStatus(req.Status), profile)
	if err != nil {
		return writeError(c, err)
	}

	log.Info("Tenant status changed",
		zap.String("tenant_id", tenant.ID.String()),
		zap.String("status", string(tenant.Status)))
	return c.JSON(http.StatusOK, echo.Map{"tenant": tenant})
}
