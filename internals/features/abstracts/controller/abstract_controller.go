package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"confhub_backend/internals/features/abstracts/dto"
	"confhub_backend/internals/features/abstracts/model"
	helper "confhub_backend/internals/helpers"
)

type AbstractController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewAbstractController(db *gorm.DB) *AbstractController {
	return &AbstractController{DB: db, Validator: validator.New()}
}

// POST /api/abstracts
func (h *AbstractController) Submit(c *fiber.Ctx) error {
	var req dto.SubmitAbstractRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "invalid json: "+err.Error())
	}
	if err := h.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	m := req.ToModel()
	if err := h.DB.WithContext(c.UserContext()).Create(m).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "could not save submission")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, fiber.Map{
		"abstract_id": m.AbstractID,
		"status":      m.AbstractStatus,
	})
}

// GET /api/abstracts/:id
// Public status check for submitters; exposes no review notes.
func (h *AbstractController) GetStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "invalid id")
	}

	var m model.Abstract
	if err := h.DB.WithContext(c.UserContext()).
		Select("abstract_id, abstract_title, abstract_status, abstract_created_at").
		First(&m, "abstract_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "abstract not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "lookup failed")
	}

	return helper.Success(c, fiber.Map{
		"abstract_id": m.AbstractID,
		"title":       m.AbstractTitle,
		"status":      m.AbstractStatus,
	})
}

// GET /api/a/abstracts
func (h *AbstractController) List(c *fiber.Ctx) error {
	params := helper.ParsePageWith(c, "created_at", "desc", helper.AdminPageOpts)

	q := h.DB.WithContext(c.UserContext()).Model(&model.Abstract{})
	if s := strings.TrimSpace(c.Query("status")); s != "" {
		q = q.Where("abstract_status = ?", s)
	}
	if cat := strings.TrimSpace(c.Query("category")); cat != "" {
		q = q.Where("abstract_category = ?", cat)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "count failed")
	}

	order, err := params.SafeOrderClause(map[string]string{
		"created_at": "abstract_created_at",
		"title":      "abstract_title",
	}, "created_at")
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.Abstract
	if err := q.Order(order).Limit(params.Limit()).Offset(params.Offset()).Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "list failed")
	}

	return helper.Success(c, fiber.Map{
		"abstracts": rows,
		"meta":      helper.BuildPageMeta(total, params),
	})
}

// PATCH /api/a/abstracts/:id/review
func (h *AbstractController) Review(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "invalid id")
	}

	var req dto.ReviewAbstractRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "invalid json: "+err.Error())
	}
	if err := h.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	updates := map[string]interface{}{"abstract_status": req.Status}
	if req.ReviewNote != nil {
		updates["abstract_review_note"] = *req.ReviewNote
	}

	res := h.DB.WithContext(c.UserContext()).
		Model(&model.Abstract{}).
		Where("abstract_id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "update failed")
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "abstract not found")
	}

	return helper.Success(c, fiber.Map{"abstract_id": id, "status": req.Status})
}
