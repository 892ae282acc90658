package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* ===================== Enums (string) ===================== */
/* Aligned with the Postgres ENUMs payment_type and payment_status. */

const (
	PaymentTypeRegistration = "registration"
	PaymentTypeSponsorship  = "sponsorship"
)

const (
	PaymentProviderFlutterwave = "flutterwave"
)

/* ===================== Model ===================== */

// Payment is one initiated payment attempt. Amount and currency are copied
// from the pricing table at creation and never recomputed. The original form
// payload is stashed in payment_form_data so the registration/sponsorship
// row can be materialized only after the gateway confirms payment.
type Payment struct {
	PaymentID uuid.UUID `gorm:"column:payment_id;type:uuid;default:gen_random_uuid();primaryKey" json:"payment_id"`

	// Correlation key with the gateway (tx_ref). Unique, immutable.
	PaymentReference string `gorm:"column:payment_reference;uniqueIndex;not null" json:"payment_reference"`

	PaymentType string `gorm:"column:payment_type;type:payment_type;not null" json:"payment_type"`
	PaymentTier string `gorm:"column:payment_tier;not null" json:"payment_tier"`

	PaymentAmount   int64  `gorm:"column:payment_amount;not null;check:payment_amount >= 0" json:"payment_amount"`
	PaymentCurrency string `gorm:"column:payment_currency;type:varchar(8);not null;default:UGX" json:"payment_currency"`

	// Contact snapshot from the submitting form
	PaymentEmail string  `gorm:"column:payment_email;not null" json:"payment_email"`
	PaymentName  string  `gorm:"column:payment_name;not null" json:"payment_name"`
	PaymentPhone *string `gorm:"column:payment_phone" json:"payment_phone,omitempty"`

	PaymentStatus Status `gorm:"column:payment_status;type:payment_status;not null;default:'pending'" json:"payment_status"`

	// Gateway bookkeeping
	PaymentCheckoutURL     *string        `gorm:"column:payment_checkout_url" json:"payment_checkout_url,omitempty"`
	PaymentTransactionID   *string        `gorm:"column:payment_transaction_id" json:"payment_transaction_id,omitempty"`
	PaymentGatewayResponse datatypes.JSON `gorm:"column:payment_gateway_response;type:jsonb" json:"payment_gateway_response,omitempty"`

	// Tagged snapshot of the original form (see form_data.go)
	PaymentFormData datatypes.JSON `gorm:"column:payment_form_data;type:jsonb" json:"payment_form_data,omitempty"`

	// Populated only after successful reconciliation
	PaymentRegistrationID *uuid.UUID `gorm:"column:payment_registration_id;type:uuid" json:"payment_registration_id,omitempty"`
	PaymentSponsorshipID  *uuid.UUID `gorm:"column:payment_sponsorship_id;type:uuid" json:"payment_sponsorship_id,omitempty"`

	PaymentCompletedAt *time.Time `gorm:"column:payment_completed_at" json:"payment_completed_at,omitempty"`
	PaymentFailedAt    *time.Time `gorm:"column:payment_failed_at" json:"payment_failed_at,omitempty"`

	CreatedAt time.Time      `gorm:"column:payment_created_at;autoCreateTime" json:"payment_created_at"`
	UpdatedAt time.Time      `gorm:"column:payment_updated_at;autoUpdateTime" json:"payment_updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:payment_deleted_at;index" json:"payment_deleted_at,omitempty"`
}

func (Payment) TableName() string { return "payments" }

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.PaymentID == uuid.Nil {
		p.PaymentID = uuid.New()
	}
	return nil
}

/* ===================== Helpers ===================== */

func (p *Payment) IsFinal() bool {
	return p.PaymentStatus == StatusCompleted || p.PaymentStatus == StatusFailed
}

func (p *Payment) IsOpen() bool {
	return p.PaymentStatus == StatusPending || p.PaymentStatus == StatusPendingManual
}

// LinkedEntityID returns the materialized entity id, if any.
func (p *Payment) LinkedEntityID() *uuid.UUID {
	switch p.PaymentType {
	case PaymentTypeRegistration:
		return p.PaymentRegistrationID
	case PaymentTypeSponsorship:
		return p.PaymentSponsorshipID
	}
	return nil
}
