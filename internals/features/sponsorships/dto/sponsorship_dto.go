package dto

import (
	"time"

	"github.com/google/uuid"

	"confhub_backend/internals/features/sponsorships/model"
)

type SponsorshipResponse struct {
	SponsorshipID uuid.UUID `json:"sponsorship_id"`
	CompanyName   string    `json:"company_name"`
	ContactPerson string    `json:"contact_person"`
	Email         string    `json:"email"`
	Phone         *string   `json:"phone,omitempty"`
	Website       *string   `json:"website,omitempty"`
	PackageType   string    `json:"package_type"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	PaymentRef    *string   `json:"payment_reference,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func FromModel(m *model.Sponsorship) SponsorshipResponse {
	return SponsorshipResponse{
		SponsorshipID: m.SponsorshipID,
		CompanyName:   m.SponsorshipCompanyName,
		ContactPerson: m.SponsorshipContactPerson,
		Email:         m.SponsorshipEmail,
		Phone:         m.SponsorshipPhone,
		Website:       m.SponsorshipWebsite,
		PackageType:   m.SponsorshipPackageType,
		Status:        m.SponsorshipStatus,
		PaymentStatus: m.SponsorshipPaymentStatus,
		PaymentRef:    m.SponsorshipPaymentReference,
		CreatedAt:     m.CreatedAt,
	}
}
