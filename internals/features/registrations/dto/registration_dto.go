package dto

import (
	"time"

	"github.com/google/uuid"

	"confhub_backend/internals/features/registrations/model"
)

type RegistrationResponse struct {
	RegistrationID uuid.UUID `json:"registration_id"`
	FullName       string    `json:"full_name"`
	Email          string    `json:"email"`
	Phone          *string   `json:"phone,omitempty"`
	Organization   *string   `json:"organization,omitempty"`
	Country        *string   `json:"country,omitempty"`
	Type           string    `json:"registration_type"`
	Dietary        *string   `json:"dietary_requirements,omitempty"`
	Status         string    `json:"status"`
	PaymentStatus  string    `json:"payment_status"`
	PaymentRef     *string   `json:"payment_reference,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func FromModel(m *model.Registration) RegistrationResponse {
	return RegistrationResponse{
		RegistrationID: m.RegistrationID,
		FullName:       m.RegistrationFullName,
		Email:          m.RegistrationEmail,
		Phone:          m.RegistrationPhone,
		Organization:   m.RegistrationOrganization,
		Country:        m.RegistrationCountry,
		Type:           m.RegistrationType,
		Dietary:        m.RegistrationDietary,
		Status:         m.RegistrationStatus,
		PaymentStatus:  m.RegistrationPaymentStatus,
		PaymentRef:     m.RegistrationPaymentReference,
		CreatedAt:      m.CreatedAt,
	}
}

// UpdateStatusRequest lets the admin console cancel or reinstate a
// registration.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled"`
}
