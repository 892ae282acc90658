package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"confhub_backend/internals/features/payments/dto"
	"confhub_backend/internals/features/payments/model"
	svc "confhub_backend/internals/features/payments/service"
	helper "confhub_backend/internals/helpers"
)

/* =======================================================================
   Admin console: payment review
======================================================================= */

// GET /api/a/payments
func (h *PaymentController) ListPayments(c *fiber.Ctx) error {
	params := helper.ParsePageWith(c, "created_at", "desc", helper.AdminPageOpts)

	q := h.DB.WithContext(c.UserContext()).Model(&model.Payment{})
	if s := strings.TrimSpace(c.Query("status")); s != "" {
		if !model.Status(s).Valid() {
			return helper.Error(c, fiber.StatusBadRequest, "unknown status "+s)
		}
		q = q.Where("payment_status = ?", s)
	}
	if t := strings.TrimSpace(c.Query("type")); t != "" {
		q = q.Where("payment_type = ?", t)
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + search + "%"
		q = q.Where("payment_reference ILIKE ? OR payment_email ILIKE ? OR payment_name ILIKE ?", like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "count failed")
	}

	order, err := params.SafeOrderClause(map[string]string{
		"created_at": "payment_created_at",
		"amount":     "payment_amount",
		"status":     "payment_status",
	}, "created_at")
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.Payment
	if err := q.Order(order).Limit(params.Limit()).Offset(params.Offset()).Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "list failed")
	}

	return helper.Success(c, fiber.Map{
		"payments": rows,
		"meta":     helper.BuildPageMeta(total, params),
	})
}

// GET /api/a/payments/:reference
func (h *PaymentController) GetPaymentDetail(c *fiber.Ctx) error {
	reference := c.Params("reference")

	var p model.Payment
	if err := h.DB.WithContext(c.UserContext()).
		First(&p, "payment_reference = ?", reference).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "payment not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "lookup failed")
	}

	var events []model.PaymentGatewayEvent
	_ = h.DB.WithContext(c.UserContext()).
		Where("gateway_event_reference = ?", reference).
		Order("gateway_event_received_at DESC").
		Limit(50).
		Find(&events).Error

	return helper.Success(c, fiber.Map{
		"payment": p,
		"events":  events,
	})
}

// POST /api/a/payments/:reference/resolve
// Settles a pending_manual (bank transfer) attempt once the admin has
// sighted (or given up on) the funds.
func (h *PaymentController) ResolveManualPayment(c *fiber.Ctx) error {
	reference := c.Params("reference")

	var req dto.ResolveManualRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "invalid json: "+err.Error())
	}

	out, err := h.Reconciler.AdminResolve(c.UserContext(), reference, req.Confirmed)
	if err != nil {
		if errors.Is(err, svc.ErrPaymentNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "payment not found")
		}
		if errors.Is(err, model.ErrIllegalTransition) {
			return helper.Error(c, fiber.StatusConflict, err.Error())
		}
		h.Log.Error("manual resolution failed", zap.String("reference", reference), zap.Error(err))
		return helper.Error(c, fiber.StatusInternalServerError, "could not resolve payment")
	}

	return helper.Success(c, out)
}
