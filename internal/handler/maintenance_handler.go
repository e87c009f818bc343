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
	"github.com/CodeDreamers777/Assettone/prometheus"
)

func CreateMaintenanceRequest(c echo.Context) error {
	log := logger.FromEcho(c)
	profile, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}

	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Priority    string `json:"priority"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	request, err := svc.CreateMaintenanceRequest(service.CreateMaintenanceRequestInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    model.MaintenancePriority(req.Priority),
	}, profile)
	if err != nil {
		return writeError(c, err)
	}

	prometheus.RecordMaintenanceTransition(string(request.Status))
	log.Info("Maintenance request created",
		zap.String("request_id", request.ID.String()),
		zap.String("unit_id", request.UnitID.String()),
		zap.String("priority", string(request.Priority)))
	return c.JSON(http.StatusCreated, echo.Map{"maintenance_request": request})
}

func ApproveMaintenanceRequest(c echo.Context) error {
	return resolveMaintenance(c, model.MaintenanceStatusApproved)
}

func RejectMaintenanceRequest(c echo.Context) error {
	return resolveMaintenance(c, model.MaintenanceStatusRejected)
}

func resolveMaintenance(c echo.Context, decision model.MaintenanceStatus) error {
	log := logger.FromEcho(c)
	profile, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid maintenance request id"})
	}

	var request *model.MaintenanceRequest
	if decision == model.MaintenanceStatusApproved {
		request, err = svc.ApproveMaintenanceRequest(id, profile)
	} else {
		request, err = svc.RejectMaintenanceRequest(id, profile)
	}
	if err != nil {
		return writeError(c, err)
	}

	prometheus.RecordMaintenanceTransition(string(request.Status))
	log.Info("Maintenance request resolved",
		zap.String("request_id", request.ID.String()),
		zap.String("status", string(request.Status)))
	return c.JSON(http.StatusOK, echo.Map{"maintenance_request": request})
}

func CompleteMaintenanceRequest(c echo.Context) error {
	log := logger.FromEcho(c)
	profile, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid maintenance request id"})
	}

	var req struct {
		RepairCost decimal.Decimal `json:"repair_cost"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	request, err := svc.CompleteMaintenanceRequest(id, req.RepairCost, profile)
	if err != nil {
		return writeError(c, err)
	}

	prometheus.RecordMaintenanceTransition(string(request.Status))
	log.Info("Maintenance request completed",
		zap.String("request_id", request.ID.String()),
		zap.String("repair_cost", req.RepairCost.String()))
	return c.JSON(http.StatusOK, echo.Map{"maintenance_request": request})
}

func UpdateMaintenanceRequest(c echo.Context) error {
	log := logger.FromEcho(c)
	profile, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid maintenance request id"})
	}

	var req struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Priority    *string `json:"priority"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	in := service.UpdateMaintenanceRequestInput{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Priority != nil {
		priority := model.MaintenancePriority(*req.Priority)
		in.Priority = &priority
	}

	request, err := svc.UpdateMaintenanceRequest(id, in, profile)
	if err != nil {
		return writeError(c, err)
	}

	log.Info("Maintenance request updated", zap.String("request_id", request.ID.String()))
	return c.JSON(http.StatusOK, echo.Map{"maintenance_request": request})
}

func ListMaintenanceRequests(c echo.Context) error {
	profile, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}

	filter := service.MaintenanceRequestFilter{
		Status:   model.MaintenanceStatus(c.QueryParam("status")),
		Priority: model.MaintenancePriority(c.QueryParam("priority")),
	}
	if raw := c.QueryParam("property_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid property id"})
		}
		filter.PropertyID = &id
	}
	if raw := c.QueryParam("tenant_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid tenant id"})
		}
		filter.TenantID = &id
	}
	if raw := c.QueryParam("unit_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid unit id"})
		}
		filter.UnitID = &id
	}

	requests, err := svc.ListMaintenanceRequests(filter, profile)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"maintenance_requests": requests})
}
