package controller

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"confhub_backend/internals/features/payments/dto"
	"confhub_backend/internals/features/payments/model"
	svc "confhub_backend/internals/features/payments/service"
	helper "confhub_backend/internals/helpers"
)

/* =======================================================================
   POST /api/payments/webhook

   Flutterwave pushes an event envelope with a verif-hash header.
   The signature check runs against the raw body BEFORE any parsing;
   a mismatch is a security boundary, not a transient fault.
======================================================================= */

func (h *PaymentController) Webhook(c *fiber.Ctx) error {
	raw := c.Body()
	signature := c.Get("verif-hash")

	if !h.Gateway.VerifyWebhookSignature(raw, signature) {
		h.Log.Warn("webhook rejected: bad signature", zap.String("ip", c.IP()))
		return helper.Error(c, fiber.StatusUnauthorized, "invalid signature")
	}

	var env dto.WebhookEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "invalid payload: "+err.Error())
	}

	ev := h.logGatewayEvent(c, &env, raw, signature)

	if env.Event != "charge.completed" {
		h.markEvent(c, ev, model.GatewayEventIgnored, "unhandled event type "+env.Event)
		return helper.Success(c, fiber.Map{"received": true})
	}

	// Never trust the pushed status: re-verify with the gateway before
	// touching local state, same as the client poll path.
	var (
		v   *svc.Verification
		err error
	)
	if env.Data.ID != 0 {
		v, err = h.Gateway.VerifyTransaction(c.UserContext(), strconv.FormatInt(env.Data.ID, 10))
	} else {
		v, err = h.Gateway.VerifyByReference(c.UserContext(), env.Data.TxRef)
	}
	if err != nil {
		h.Log.Error("webhook: gateway re-verification failed",
			zap.String("tx_ref", env.Data.TxRef),
			zap.Error(err))
		h.markEvent(c, ev, model.GatewayEventFailed, err.Error())
		// 5xx so the gateway retries later
		return helper.Error(c, fiber.StatusBadGateway, "verification failed")
	}

	reference := v.TxRef
	if reference == "" {
		reference = env.Data.TxRef
	}

	out, err := h.Reconciler.Reconcile(c.UserContext(), reference, v)
	if err != nil {
		if errors.Is(err, svc.ErrPaymentNotFound) {
			// Answer 200 so the gateway stops retrying an event we can
			// never match; the audit row keeps it investigable.
			h.markEvent(c, ev, model.GatewayEventIgnored, "no payment for tx_ref "+reference)
			return helper.Success(c, fiber.Map{"received": true, "matched": false})
		}
		h.Log.Error("webhook reconciliation failed",
			zap.String("reference", reference),
			zap.Error(err))
		h.markEvent(c, ev, model.GatewayEventFailed, err.Error())
		return helper.Error(c, fiber.StatusInternalServerError, "reconciliation failed")
	}

	h.markEvent(c, ev, model.GatewayEventProcessed, "")
	return helper.Success(c, fiber.Map{
		"received":  true,
		"reference": out.Reference,
		"status":    out.Status,
	})
}

/* =======================================================================
   Gateway event audit log
======================================================================= */

func (h *PaymentController) logGatewayEvent(c *fiber.Ctx, env *dto.WebhookEnvelope, raw []byte, signature string) *model.PaymentGatewayEvent {
	headers := map[string]string{}
	for k, v := range c.GetReqHeaders() {
		headers[k] = strings.Join(v, ",")
	}
	headersJSON, _ := json.Marshal(headers)

	txnID := strconv.FormatInt(env.Data.ID, 10)
	ev := model.PaymentGatewayEvent{
		GatewayEventProvider:  model.PaymentProviderFlutterwave,
		GatewayEventType:      strPtr(env.Event),
		GatewayEventReference: strPtr(env.Data.TxRef),
		GatewayEventTxnID:     strPtr(txnID),
		GatewayEventHeaders:   datatypes.JSON(headersJSON),
		GatewayEventPayload:   datatypes.JSON(raw),
		GatewayEventSignature: strPtr(signature),
		GatewayEventStatus:    model.GatewayEventReceived,
	}

	if err := h.DB.WithContext(c.UserContext()).Create(&ev).Error; err != nil {
		// The audit row is secondary bookkeeping: keep handling the event,
		// but make the failure visible to operators.
		h.Log.Error("gateway event insert failed",
			zap.String("tx_ref", env.Data.TxRef),
			zap.Error(err))
		return nil
	}
	return &ev
}

func (h *PaymentController) markEvent(c *fiber.Ctx, ev *model.PaymentGatewayEvent, status, errMsg string) {
	if ev == nil {
		return
	}
	updates := map[string]interface{}{
		"gateway_event_status":       status,
		"gateway_event_processed_at": nowPtr(),
	}
	if errMsg != "" {
		updates["gateway_event_error"] = errMsg
	}
	if err := h.DB.WithContext(c.UserContext()).
		Model(&model.PaymentGatewayEvent{}).
		Where("gateway_event_id = ?", ev.GatewayEventID).
		Updates(updates).Error; err != nil {
		h.Log.Error("gateway event status update failed",
			zap.String("event_id", ev.GatewayEventID.String()),
			zap.Error(err))
	}
}
