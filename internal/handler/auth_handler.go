package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/CodeDreamers777/Assettone/internal/model"
	"github.com/CodeDreamers777/Assettone/pkg/database"
	"github.com/CodeDreamers777/Assettone/pkg/logger"
	"github.com/CodeDreamers777/Assettone/prometheus"
)

func Register(c echo.Context) error {
	log := logger.FromEcho(c)

	var req struct {
		Email                string `json:"email"`
		Password             string `json:"password"`
		FirstName            string `json:"first_name"`
		LastName             string `json:"last_name"`
		PhoneNumber          string `json:"phone_number"`
		Role                 string `json:"role"`
		IdentificationType   string `json:"identification_type"`
		IdentificationNumber string `json:"identification_number"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse registration request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email and password are required"})
	}

	role := model.Role(req.Role)
	switch role {
	case "":
		role = model.RoleClerk
	case model.RoleOwner, model.RoleManager, model.RoleClerk, model.RoleTenant:
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid role"})
	}

	// Check if profile already exists
	defer prometheus.TrackDBOperation("query")(time.Now())
	var existing model.Profile
	if result := database.GetDB().Where("email = ?", req.Email).First(&existing); result.Error == nil {
		log.Warn("Profile already exists", zap.String("email", req.Email))
		return c.JSON(http.StatusConflict, echo.Map{"error": "email already registered"})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("Failed to hash password", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
	}

	profile := model.Profile{
		Email:                req.Email,
		Password:             string(hashedPassword),
		FirstName:            req.FirstName,
		LastName:             req.LastName,
		PhoneNumber:          req.PhoneNumber,
		Role:                 role,
		IdentificationType:   model.IdentificationType(req.IdentificationType),
		IdentificationNumber: req.IdentificationNumber,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := database.GetDB().Create(&profile); result.Error != nil {
		log.Error("Failed to create profile", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
	}

	log.Info("Profile registered", zap.String("email", profile.Email), zap.String("role", string(profile.Role)))
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Profile registered successfully",
		"profile": profile,
	})
}

func Login(c echo.Context) error {
	log := logger.FromEcho(c)

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var profile model.Profile
	if result := database.GetDB().Where("email = ?", req.Email).First(&profile); result.Error != nil {
		log.Warn("Profile not found", zap.String("email", req.Email))
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.Password), []byte(req.Password)); err != nil {
		log.Warn("Invalid password", zap.String("email", req.Email))
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	token, err := jwtUtil.GenerateToken(profile.Email, profile.ID, string(profile.Role))
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token error"})
	}

	now := time.Now()
	if err := database.GetDB().Model(&profile).Update("last_session", now).Error; err != nil {
		log.Warn("Failed to record last session", zap.Error(err))
	}

	log.Info("Profile logged in", zap.String("email", profile.Email), zap.String("role", string(profile.Role)))
	return c.JSON(http.StatusOK, echo.Map{
		"token":   token,
		"profile": profile,
	})
}

// GetProfile returns the authenticated profile
func GetProfile(c echo.Context) error {
	profile, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}
	return c.JSON(http.StatusOK, echo.Map{"profile": profile})
}

// UpdateProfile updates contact details on the authenticated profile
func UpdateProfile(c echo.Context) error {
	log := logger.FromEcho(c)
	profile, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}

	var req struct {
		FirstName   *string `json:"first_name"`
		LastName    *string `json:"last_name"`
		PhoneNumber *string `json:"phone_number"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	updates := map[string]interface{}{}
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.PhoneNumber != nil {
		updates["phone_number"] = *req.PhoneNumber
	}
	if len(updates) == 0 {
		return c.JSON(http.StatusOK, echo.Map{"profile": profile})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	if err := database.GetDB().Model(profile).Updates(updates).Error; err != nil {
		log.Error("Failed to update profile", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "profile update failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{"profile": profile})
}

// ChangePassword updates the authenticated profile's password
func ChangePassword(c echo.Context) error {
	log := logger.FromEcho(c)
	profile, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}

	var req struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.NewPassword == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "new password is required"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.Password), []byte(req.CurrentPassword)); err != nil {
		log.Warn("Password change rejected", zap.String("email", profile.Email))
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Error("Failed to hash password", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "password change failed"})
	}

	if err := database.GetDB().Model(profile).Update("password", string(hashed)).Error; err != nil {
		log.Error("Failed to update password", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "password change failed"})
	}

	log.Info("Password changed", zap.String("email", profile.Email))
	return c.JSON(http.StatusOK, echo.Map{"message": "Password changed successfully"})
}
