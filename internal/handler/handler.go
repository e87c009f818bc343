package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/CodeDreamers777/Assettone/internal/apperr"
	"github.com/CodeDreamers777/Assettone/internal/middleware"
	"github.com/CodeDreamers777/Assettone/internal/model"
	"github.com/CodeDreamers777/Assettone/internal/notify"
	"github.com/CodeDreamers777/Assettone/internal/service"
	"github.com/CodeDreamers777/Assettone/pkg/jwtutil"
	"github.com/CodeDreamers777/Assettone/pkg/logger"
)

var (
	svc     *service.Service
	jwtUtil *jwtutil.JWTUtil
	sender  notify.Sender
)

// InitHandlers wires the service layer, JWT utility and notification sender
// used by all handlers
func InitHandlers(s *service.Service, j *jwtutil.JWTUtil, n notify.Sender) {
	svc = s
	jwtUtil = j
	sender = n
}

// actor returns the authenticated profile set by the auth middleware
func actor(c echo.Context) (*model.Profile, bool) {
	return middleware.ProfileFromContext(c)
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
}

// writeError maps service errors to HTTP responses
func writeError(c echo.Context, err error) error {
	log := logger.FromEcho(c)
	if kind, ok := apperr.KindOf(err); ok {
		status := http.StatusInternalServerError
		switch kind {
		case apperr.Validation:
			status = http.StatusBadRequest
		case apperr.Conflict:
			status = http.StatusConflict
		case apperr.InvalidState:
			status = http.StatusUnprocessableEntity
		case apperr.Permission:
			status = http.StatusForbidden
		case apperr.NotFound:
			status = http.StatusNotFound
		}
		log.Warn("Request rejected", zap.String("kind", kind.String()), zap.Error(err))
		return c.JSON(status, echo.Map{"error": err.Error()})
	}
	log.Error("Request failed", zap.Error(err))
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
}

// parseDate parses a YYYY-MM-DD date from a request body field
func parseDate(value, field string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, apperr.Newf(apperr.Validation, "%s must be a YYYY-MM-DD date", field)
	}
	return t, nil
}
