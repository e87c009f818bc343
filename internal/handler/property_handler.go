package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/CodeDreamers777/Assettone/internal/service"
	"github.com/CodeDreamers777/Assettone/pkg/logger"
)

func CreateProperty(c echo.Context) error {
	log := logger.FromEcho(c)
	profile, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}

	var req struct {
		Name         string     `json:"name"`
		AddressLine1 string     `json:"address_line1"`
		AddressLine2 string     `json:"address_line2"`
		City         string     `json:"city"`
		State        string     `json:"state"`
		PostalCode   string     `json:"postal_code"`
		Country      string     `json:"country"`
		ManagerID    *uuid.UUID `json:"manager_id"`
		Description  string     `json:"description"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	property, err := svc.CreateProperty(service.CreatePropertyInput{
		Name:         req.Name,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
		State:        req.State,
		PostalCode:   req.PostalCode,
		Country:      req.Country,
		ManagerID:    req.ManagerID,
		Description:  req.Description,
	}, profile)
	if err != nil {
		return writeError(c, err)
	}

	log.Info("Property created",
		zap.String("property_id", property.ID.String()),
		zap.String("name", property.Name))
	return c.JSON(http.StatusCreated, echo.Map{"property": property})
}

func ListProperties(c echo.Context) error {
	profile, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}

	properties, err := svc.ListProperties(profile)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"properties": properties})
}

func GetProperty(c echo.Context) error {
	profile, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid property id"})
	}

	property, err := svc.GetProperty(id, profile)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"property": property})
}

func UpdateProperty(c echo.Context) error {
	log := logger.FromEcho(c)
	profile, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid property id"})
	}

	var req struct {
		Name         *string    `json:"name"`
		AddressLine1 *string    `json:"address_line1"`
		AddressLine2 *string    `json:"address_line2"`
		City         *string    `json:"city"`
		State        *string    `json:"state"`
		PostalCode   *string    `json:"postal_code"`
		Country      *string    `json:"country"`
		ManagerID    *uuid.UUID `json:"manager_id"`
		Description  *string    `json:"description"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	property, err := svc.UpdateProperty(id, service.UpdatePropertyInput{
		Name:         req.Name,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
		State:        req.State,
		PostalCode:   req.PostalCode,
		Country:      req.Country,
		ManagerID:    req.ManagerID,
		Description:  req.Description,
	}, profile)
	if err != nil {
		return writeError(c, err)
	}

	log.Info("Property updated", zap.String("property_id", property.ID.String()))
	return c.JSON(http.StatusOK, echo.Map{"property": property})
}
