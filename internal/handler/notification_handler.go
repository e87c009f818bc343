package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/CodeDreamers777/Assettone/pkg/logger"
)

// EmailTenants sends a bulk message to selected tenants
func EmailTenants(c echo.Context) error {
	log := logger.FromEcho(c)
	profile, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}

	var req struct {
		TenantIDs []uuid.UUID `json:"tenant_ids"`
		Subject   string      `json:"subject"`
		Body      string      `json:"body"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if len(req.TenantIDs) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "tenant_ids is required"})
	}
	if req.Subject == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "subject is required"})
	}

	result, err := svc.EmailTenants(c.Request().Context(), sender, req.TenantIDs, req.Subject, req.Body, profile)
	if err != nil {
		return writeError(c, err)
	}

	log.Info("Tenant emails dispatched",
		zap.Int("recipients", len(req.TenantIDs)),
		zap.Int("delivered", result.SuccessCount),
		zap.String("status", result.Status()))
	return c.JSON(http.StatusOK, echo.Map{
		"status":        result.Status(),
		"success_count": result.SuccessCount,
		"failures":      result.Failures,
	})
}

// SendRentalNotice emails a balance-due notice to a unit's active tenant
func SendRentalNotice(c echo.Context) error {
	log := logger.FromEcho(c)
	profile, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}

	unitID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid unit id"})
	}

	result, err := svc.SendRentalNotice(c.Request().Context(), sender, unitID, profile)
	if err != nil {
		return writeError(c, err)
	}
	if result == nil {
		return c.JSON(http.StatusOK, echo.Map{"message": "rent is fully paid for the current period"})
	}

	log.Info("Rental notice sent",
		zap.String("unit_id", unitID.String()),
		zap.String("status", result.Status()))
	return c.JSON(http.StatusOK, echo.Map{
		"status":        result.Status(),
		"success_count": result.SuccessCount,
		"failures":      result.Failures,
	})
}
