package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/CodeDreamers777/Assettone/prometheus"
)

// GetDashboardMetrics returns occupancy and financial figures for the
// actor's portfolio over the current calendar month
func GetDashboardMetrics(c echo.Context) error {
	profile, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}

	defer prometheus.TrackDBOperation("dashboard")(time.Now())
	metrics, err := svc.GetDashboardMetrics(profile)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, metrics)
}
