package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"confhub_backend/internals/features/admin/model"
	helper "confhub_backend/internals/helpers"
)

const tokenTTL = 8 * time.Hour

type AdminAuthController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Log       *zap.Logger
	JWTSecret string
}

func NewAdminAuthController(db *gorm.DB, log *zap.Logger, jwtSecret string) *AdminAuthController {
	return &AdminAuthController{
		DB:        db,
		Validator: validator.New(),
		Log:       log,
		JWTSecret: jwtSecret,
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// POST /api/admin/login
func (h *AdminAuthController) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "invalid json: "+err.Error())
	}
	if err := h.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var u model.AdminUser
	if err := h.DB.WithContext(c.UserContext()).
		First(&u, "admin_email = ? AND admin_active = true", req.Email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// same response as a wrong password, no account probing
			return helper.Error(c, fiber.StatusUnauthorized, "invalid credentials")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "login failed")
	}

	if !u.CheckPassword(req.Password) {
		h.Log.Warn("failed admin login", zap.String("email", req.Email), zap.String("ip", c.IP()))
		return helper.Error(c, fiber.StatusUnauthorized, "invalid credentials")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"admin_id": u.AdminID.String(),
		"email":    u.AdminEmail,
		"role":     "admin",
		"iat":      now.Unix(),
		"exp":      now.Add(tokenTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(h.JWTSecret))
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "could not issue token")
	}

	_ = h.DB.WithContext(c.UserContext()).
		Model(&model.AdminUser{}).
		Where("admin_id = ?", u.AdminID).
		Update("admin_last_login_at", now).Error

	return helper.Success(c, fiber.Map{
		"token":      token,
		"expires_at": now.Add(tokenTTL),
		"admin": fiber.Map{
			"admin_id": u.AdminID,
			"email":    u.AdminEmail,
			"name":     u.AdminName,
		},
	})
}
