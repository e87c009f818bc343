package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/CodeDreamers777/Assettone/internal/model"
	"github.com/CodeDreamers777/Assettone/pkg/database"
	"github.com/CodeDreamers777/Assettone/pkg/jwtutil"
	"github.com/CodeDreamers777/Assettone/pkg/logger"
)

const (
	// ClaimsContextKey is the context key holding the validated token claims
	ClaimsContextKey = "claims"
	// ProfileContextKey is the context key holding the authenticated profile
	ProfileContextKey = "profile"
)

var jwtUtil *jwtutil.JWTUtil

// InitAuthMiddleware wires the JWT utility used for token validation
func InitAuthMiddleware(j *jwtutil.JWTUtil) {
	jwtUtil = j
}

// JWTAuthMiddleware validates bearer tokens and loads the authenticated profile
func JWTAuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromEcho(c)

		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			log.Warn("Missing access token")
			return c.JSON(http.StatusUnauthorized, echo.Map{
				"error": "authentication required",
			})
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			log.Warn("Invalid token scheme", zap.String("scheme", strings.Split(authHeader, " ")[0]))
			return c.JSON(http.StatusUnauthorized, echo.Map{
				"error": "token must use Bearer scheme",
			})
		}

		tokenString := authHeader[7:]

		claims, err := jwtUtil.ValidateToken(tokenString)
		if err != nil {
			log.Warn("Invalid access token", zap.Error(err))
			return c.JSON(http.StatusUnauthorized, echo.Map{
				"error": "the access token is invalid",
			})
		}

		var profile model.Profile
		if err := database.GetDB().Where("id = ?", claims.ProfileID).First(&profile).Error; err != nil {
			log.Warn("Profile not found for token", zap.String("profile_id", claims.ProfileID.String()))
			return c.JSON(http.StatusUnauthorized, echo.Map{
				"error": "the access token is invalid",
			})
		}

		c.Set(ClaimsContextKey, claims)
		c.Set(ProfileContextKey, &profile)

		log = log.With(
			zap.String("profile_id", profile.ID.String()),
			zap.String("role", string(profile.Role)),
		)
		c.Set(logger.EchoLoggerKey, log)

		return next(c)
	}
}

// ProfileFromContext returns the authenticated profile set by JWTAuthMiddleware
func ProfileFromContext(c echo.Context) (*model.Profile, bool) {
	profile, ok := c.Get(ProfileContextKey).(*model.Profile)
	return profile, ok
}
