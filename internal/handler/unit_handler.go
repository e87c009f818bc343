package handler

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/CodeDreamers777/Assettone/internal/model"
	"github.com/CodeDreamers777/Assettone/internal/service"
	"github.com/CodeDreamers777/Assettone/pkg/logger"
)

func CreateUnit(c echo.Context) error {
	log := logger.FromEcho(c)
	profile, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}

	var req struct {
		PropertyID     uuid.UUID        `json:"property_id"`
		UnitNumber     string           `json:"unit_number"`
		UnitType       string           `json:"unit_type"`
		CustomUnitType string           `json:"custom_unit_type"`
		Rent           decimal.Decimal  `json:"rent"`
		PaymentPeriod  string           `json:"payment_period"`
		Floor          string           `json:"floor"`
		SquareFootage  *decimal.Decimal `json:"square_footage"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	unit, err := svc.CreateUnit(service.CreateUnitInput{
		PropertyID:     req.PropertyID,
		UnitNumber:     req.UnitNumber,
		UnitType:       model.UnitType(req.UnitType),
		CustomUnitType: req.CustomUnitType,
		Rent:           req.Rent,
		PaymentPeriod:  model.PaymentPeriod(req.PaymentPeriod),
		Floor:          req.Floor,
		SquareFootage:  req.SquareFootage,
	}, profile)
	if err != nil {
		return writeError(c, err)
	}

	log.Info("Unit created",
		zap.String("unit_id", unit.ID.String()),
		zap.String("unit_number", unit.UnitNumber),
		zap.String("property_id", unit.PropertyID.String()))
	return c.JSON(http.StatusCreated, echo.Map{"unit": unit})
}

func ListUnits(c echo.Context) error {
	profile, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}

	filter := service.UnitFilter{
		UnitType: model.UnitType(c.QueryParam("unit_type")),
	}
	if raw := c.QueryParam("property_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid property id"})
		}
		filter.PropertyID = &id
	}
	if raw := c.QueryParam("vacant"); raw != "" {
		vacant, err := strconv.ParseBool(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "vacant must be true or false"})
		}
		filter.Vacant = &vacant
	}

	units, err := svc.ListUnits(filter, profile)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"units": units})
}

func GetUnit(c echo.Context) error {
	profile, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid unit id"})
	}

	unit, err := svc.GetUnit(id, profile)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"unit": unit})
}

func DeleteUnit(c echo.Context) error {
	log := logger.FromEcho(c)
	profile, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid unit id"})
	}

	if err := svc.DeleteUnit(id, profile); err != nil {
		return writeError(c, err)
	}

	log.Info("Unit deleted", zap.String("unit_id", id.String()))
	return c.JSON(http.StatusOK, echo.Map{"message": "Unit deleted successfully"})
}
