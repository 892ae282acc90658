package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"confhub_backend/internals/features/registrations/dto"
	"confhub_backend/internals/features/registrations/model"
	helper "confhub_backend/internals/helpers"
)

type RegistrationController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewRegistrationController(db *gorm.DB) *RegistrationController {
	return &RegistrationController{DB: db, Validator: validator.New()}
}

// GET /api/a/registrations
func (h *RegistrationController) List(c *fiber.Ctx) error {
	params := helper.ParsePageWith(c, "created_at", "desc", helper.AdminPageOpts)

	q := h.DB.WithContext(c.UserContext()).Model(&model.Registration{})
	if s := strings.TrimSpace(c.Query("status")); s != "" {
		q = q.Where("registration_status = ?", s)
	}
	if t := strings.TrimSpace(c.Query("type")); t != "" {
		q = q.Where("registration_type = ?", t)
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + search + "%"
		q = q.Where("registration_full_name ILIKE ? OR registration_email ILIKE ? OR registration_organization ILIKE ?", like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "count failed")
	}

	order, err := params.SafeOrderClause(map[string]string{
		"created_at": "registration_created_at",
		"name":       "registration_full_name",
		"status":     "registration_status",
	}, "created_at")
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.Registration
	if err := q.Order(order).Limit(params.Limit()).Offset(params.Offset()).Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "list failed")
	}

	out := make([]dto.RegistrationResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.FromModel(&rows[i]))
	}

	return helper.Success(c, fiber.Map{
		"registrations": out,
		"meta":          helper.BuildPageMeta(total, params),
	})
}

// GET /api/a/registrations/:id
func (h *RegistrationController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "invalid id")
	}

	var m model.Registration
	if err := h.DB.WithContext(c.UserContext()).
		First(&m, "registration_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "registration not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "lookup failed")
	}

	return helper.Success(c, dto.FromModel(&m))
}

// PATCH /api/a/registrations/:id/status
func (h *RegistrationController) UpdateStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "invalid id")
	}

	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "invalid json: "+err.Error())
	}
	if err := h.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	res := h.DB.WithContext(c.UserContext()).
		Model(&model.Registration{}).
		Where("registration_id = ?", id).
		Update("registration_status", req.Status)
	if res.Error != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "update failed")
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "registration not found")
	}

	return helper.Success(c, fiber.Map{"registration_id": id, "status": req.Status})
}
