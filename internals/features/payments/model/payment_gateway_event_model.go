package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

/*
  payment_gateway_events = audit log of every webhook / verify interaction.
  - Many rows per payment (each callback or poll).
  - Keeps raw headers, payload and signature for debugging and replay.
*/

const (
	GatewayEventReceived  = "received"
	GatewayEventProcessed = "processed"
	GatewayEventFailed    = "failed"
	GatewayEventIgnored   = "ignored"
)

type PaymentGatewayEvent struct {
	GatewayEventID uuid.UUID `gorm:"column:gateway_event_id;type:uuid;default:gen_random_uuid();primaryKey" json:"gateway_event_id"`

	GatewayEventPaymentID *uuid.UUID `gorm:"column:gateway_event_payment_id;type:uuid" json:"gateway_event_payment_id"`

	GatewayEventProvider  string  `gorm:"column:gateway_event_provider;not null" json:"gateway_event_provider"`
	GatewayEventType      *string `gorm:"column:gateway_event_type" json:"gateway_event_type"`
	GatewayEventReference *string `gorm:"column:gateway_event_reference" json:"gateway_event_reference"`
	GatewayEventTxnID     *string `gorm:"column:gateway_event_txn_id" json:"gateway_event_txn_id"`

	GatewayEventHeaders   datatypes.JSON `gorm:"column:gateway_event_headers;type:jsonb" json:"gateway_event_headers"`
	GatewayEventPayload   datatypes.JSON `gorm:"column:gateway_event_payload;type:jsonb" json:"gateway_event_payload"`
	GatewayEventSignature *string        `gorm:"column:gateway_event_signature" json:"gateway_event_signature"`

	GatewayEventStatus string  `gorm:"column:gateway_event_status;not null;default:'received'" json:"gateway_event_status"`
	GatewayEventError  *string `gorm:"column:gateway_event_error" json:"gateway_event_error"`

	GatewayEventReceivedAt  time.Time  `gorm:"column:gateway_event_received_at;not null;default:now()" json:"gateway_event_received_at"`
	GatewayEventProcessedAt *time.Time `gorm:"column:gateway_event_processed_at" json:"gateway_event_processed_at"`

	GatewayEventCreatedAt time.Time `gorm:"column:gateway_event_created_at;autoCreateTime" json:"gateway_event_created_at"`
}

func (PaymentGatewayEvent) TableName() string { return "payment_gateway_events" }
