package controller

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"confhub_backend/internals/constants"
	"confhub_backend/internals/features/payments/dto"
	"confhub_backend/internals/features/payments/model"
	svc "confhub_backend/internals/features/payments/service"
	helper "confhub_backend/internals/helpers"
)

/* =======================================================================
   Controller
======================================================================= */

type PaymentController struct {
	DB         *gorm.DB
	Validator  *validator.Validate
	Gateway    *svc.Flutterwave
	Reconciler *svc.Reconciler
	Log        *zap.Logger
	BaseURL    string
}

func NewPaymentController(db *gorm.DB, gw *svc.Flutterwave, rec *svc.Reconciler, log *zap.Logger, baseURL string) *PaymentController {
	return &PaymentController{
		DB:         db,
		Validator:  validator.New(),
		Gateway:    gw,
		Reconciler: rec,
		Log:        log,
		BaseURL:    baseURL,
	}
}

/* =======================================================================
   POST /api/payments
======================================================================= */

func (h *PaymentController) CreatePayment(c *fiber.Ctx) error {
	var req dto.CreatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "invalid json: "+err.Error())
	}
	if err := req.Validate(h.Validator); err != nil {
		if _, ok := err.(validator.ValidationErrors); ok {
			return helper.ValidationError(c, err)
		}
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	}

	price, err := constants.LookupPrice(req.PaymentType, req.Tier())
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	}

	form, err := req.ToFormData(h.Validator)
	if err != nil {
		if _, ok := err.(validator.ValidationErrors); ok {
			return helper.ValidationError(c, err)
		}
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	}
	formJSON, err := form.ToJSON()
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	}

	reference := helper.PaymentReference(req.PaymentType)

	p := model.Payment{
		PaymentReference: reference,
		PaymentType:      req.PaymentType,
		PaymentTier:      price.TierID,
		PaymentAmount:    price.Amount,
		PaymentCurrency:  price.Currency,
		PaymentEmail:     req.UserEmail,
		PaymentName:      req.UserName,
		PaymentPhone:     req.UserPhone,
		PaymentStatus:    model.StatusPending,
		PaymentFormData:  formJSON,
	}

	resp := dto.CreatePaymentResponse{
		Reference:       reference,
		Amount:          price.Amount,
		Currency:        price.Currency,
		FormattedAmount: constants.FormatAmount(price.Amount, price.Currency),
	}

	link, gwErr := h.Gateway.CreatePaymentLink(c.UserContext(), svc.PaymentLinkRequest{
		TxRef:         reference,
		Amount:        price.Amount,
		Currency:      price.Currency,
		RedirectURL:   h.BaseURL + "/payment/complete",
		CustomerEmail: req.UserEmail,
		CustomerName:  req.UserName,
		CustomerPhone: strOrEmpty(req.UserPhone),
		Title:         "Conference " + req.PaymentType,
		Description:   price.Description,
		Meta: map[string]interface{}{
			"payment_type": req.PaymentType,
			"tier":         price.TierID,
		},
	})
	if gwErr != nil {
		// Gateway degraded: offer the bank-transfer path instead of failing
		// the funnel. The attempt is kept as pending_manual for the admin
		// console to settle.
		h.Log.Warn("payment link creation failed, falling back to bank transfer",
			zap.String("reference", reference),
			zap.Error(gwErr))
		p.PaymentStatus = model.StatusPendingManual
		errJSON, _ := json.Marshal(fiber.Map{"error": gwErr.Error()})
		p.PaymentGatewayResponse = datatypes.JSON(errJSON)

		resp.FallbackPayment = true
		bd := constants.TransferBankDetails
		resp.BankDetails = &bd
	} else {
		p.PaymentCheckoutURL = &link.CheckoutURL
		p.PaymentGatewayResponse = datatypes.JSON(link.Raw)
		resp.PaymentURL = link.CheckoutURL
	}

	if err := h.DB.WithContext(c.UserContext()).Create(&p).Error; err != nil {
		h.Log.Error("payment row insert failed",
			zap.String("reference", reference),
			zap.Error(err))
		return helper.Error(c, fiber.StatusInternalServerError, "could not record payment attempt")
	}

	return helper.Success(c, resp)
}

/* =======================================================================
   GET /api/payments?reference=
======================================================================= */

func (h *PaymentController) GetPaymentByReference(c *fiber.Ctx) error {
	reference := strings.TrimSpace(c.Query("reference"))
	if reference == "" {
		return helper.Error(c, fiber.StatusBadRequest, "reference is required")
	}

	var p model.Payment
	if err := h.DB.WithContext(c.UserContext()).
		First(&p, "payment_reference = ?", reference).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "payment not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "lookup failed")
	}

	return helper.Success(c, dto.FromPayment(&p))
}

/* =======================================================================
   POST /api/payments/verify
======================================================================= */

func (h *PaymentController) VerifyPayment(c *fiber.Ctx) error {
	var req dto.VerifyPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "invalid json: "+err.Error())
	}
	if err := req.Validate(); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	}

	var (
		v   *svc.Verification
		err error
	)
	if req.TransactionID != nil && *req.TransactionID != "" {
		v, err = h.Gateway.VerifyTransaction(c.UserContext(), *req.TransactionID)
	} else {
		v, err = h.Gateway.VerifyByReference(c.UserContext(), *req.Reference)
	}
	if err != nil {
		h.Log.Warn("gateway verification unavailable", zap.Error(err))
		return helper.Error(c, fiber.StatusBadGateway, "payment verification is temporarily unavailable")
	}

	reference := v.TxRef
	if reference == "" && req.Reference != nil {
		reference = *req.Reference
	}

	out, err := h.Reconciler.Reconcile(c.UserContext(), reference, v)
	if err != nil {
		if errors.Is(err, svc.ErrPaymentNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "payment not found")
		}
		h.Log.Error("reconciliation failed", zap.String("reference", reference), zap.Error(err))
		return helper.Error(c, fiber.StatusInternalServerError, "could not reconcile payment")
	}

	var p model.Payment
	if err := h.DB.WithContext(c.UserContext()).
		First(&p, "payment_reference = ?", out.Reference).Error; err != nil {
		// reconciliation already persisted; a misread must not look like a
		// zero-amount success
		h.Log.Error("payment reload failed after reconciliation",
			zap.String("reference", out.Reference),
			zap.Error(err))
		return helper.Error(c, fiber.StatusInternalServerError, "could not load payment")
	}

	return helper.Success(c, dto.VerifyPaymentResponse{
		Reference: out.Reference,
		Status:    out.Status,
		Amount:    p.PaymentAmount,
		Currency:  p.PaymentCurrency,
	})
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func strPtr(s string) *string { return &s }

func nowPtr() *time.Time {
	now := time.Now()
	return &now
}
