package dto

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"confhub_backend/internals/constants"
	"confhub_backend/internals/features/payments/model"
)

/* =========================================================
   REQUEST DTOs
========================================================= */

// CreatePaymentRequest starts a payment for a registration or sponsorship.
// Tier-specific fields are enforced in Validate, not by tags, because the
// required set depends on payment_type.
type CreatePaymentRequest struct {
	PaymentType string `json:"payment_type" validate:"required,oneof=registration sponsorship"`

	// registration
	RegistrationType string `json:"registration_type,omitempty"`
	// sponsorship
	PackageType string `json:"package_type,omitempty"`

	UserEmail string  `json:"user_email" validate:"required,email"`
	UserName  string  `json:"user_name" validate:"required,min=2,max=200"`
	UserPhone *string `json:"user_phone,omitempty" validate:"omitempty,min=7,max=20"`

	CompanyName   *string `json:"company_name,omitempty" validate:"omitempty,max=200"`
	ContactPerson *string `json:"contact_person,omitempty" validate:"omitempty,max=200"`
	Website       *string `json:"website,omitempty" validate:"omitempty,url"`

	Organization        *string `json:"organization,omitempty" validate:"omitempty,max=200"`
	Country             *string `json:"country,omitempty" validate:"omitempty,max=100"`
	DietaryRequirements *string `json:"dietary_requirements,omitempty" validate:"omitempty,max=500"`
}

// Validate runs tag validation plus the per-type required-field rules, and
// reports missing fields the way the route layer surfaces them.
func (r *CreatePaymentRequest) Validate(v *validator.Validate) error {
	if err := v.Struct(r); err != nil {
		return err
	}

	var missing []string
	switch r.PaymentType {
	case model.PaymentTypeRegistration:
		if strings.TrimSpace(r.RegistrationType) == "" {
			missing = append(missing, "registration_type")
		}
	case model.PaymentTypeSponsorship:
		if strings.TrimSpace(r.PackageType) == "" {
			missing = append(missing, "package_type")
		}
		if r.CompanyName == nil || strings.TrimSpace(*r.CompanyName) == "" {
			missing = append(missing, "company_name")
		}
	}
	if len(missing) > 0 {
		return errors.New("missing required fields: " + strings.Join(missing, ", "))
	}
	return nil
}

// Tier returns the pricing key for this request's payment type.
func (r *CreatePaymentRequest) Tier() string {
	if r.PaymentType == model.PaymentTypeSponsorship {
		return r.PackageType
	}
	return r.RegistrationType
}

// ToFormData builds the tagged snapshot stored on the payment row.
func (r *CreatePaymentRequest) ToFormData(v *validator.Validate) (*model.FormData, error) {
	switch r.PaymentType {
	case model.PaymentTypeRegistration:
		form := &model.RegistrationForm{
			FullName:            r.UserName,
			Email:               r.UserEmail,
			Phone:               r.UserPhone,
			Organization:        r.Organization,
			Country:             r.Country,
			RegistrationType:    r.RegistrationType,
			DietaryRequirements: r.DietaryRequirements,
		}
		if err := v.Struct(form); err != nil {
			return nil, err
		}
		return &model.FormData{Type: model.PaymentTypeRegistration, Registration: form}, nil

	case model.PaymentTypeSponsorship:
		contact := r.UserName
		if r.ContactPerson != nil && *r.ContactPerson != "" {
			contact = *r.ContactPerson
		}
		form := &model.SponsorshipForm{
			CompanyName:   strVal(r.CompanyName),
			ContactPerson: contact,
			Email:         r.UserEmail,
			Phone:         r.UserPhone,
			Website:       r.Website,
			PackageType:   r.PackageType,
		}
		if err := v.Struct(form); err != nil {
			return nil, err
		}
		return &model.FormData{Type: model.PaymentTypeSponsorship, Sponsorship: form}, nil
	}
	return nil, model.ErrFormDataMismatch
}

// VerifyPaymentRequest accepts a transaction id, a reference, or both.
type VerifyPaymentRequest struct {
	TransactionID *string `json:"transaction_id,omitempty"`
	Reference     *string `json:"reference,omitempty"`
}

func (r *VerifyPaymentRequest) Validate() error {
	hasTxn := r.TransactionID != nil && strings.TrimSpace(*r.TransactionID) != ""
	hasRef := r.Reference != nil && strings.TrimSpace(*r.Reference) != ""
	if !hasTxn && !hasRef {
		return errors.New("transaction_id or reference is required")
	}
	return nil
}

// ResolveManualRequest settles a bank-transfer attempt from the admin
// console.
type ResolveManualRequest struct {
	Confirmed bool    `json:"confirmed"`
	Note      *string `json:"note,omitempty"`
}

// WebhookEnvelope is the gateway's event payload. Parsed only after the
// verif-hash signature check has passed.
type WebhookEnvelope struct {
	Event string `json:"event"`
	Data  struct {
		ID     int64  `json:"id"`
		TxRef  string `json:"tx_ref"`
		Status string `json:"status"`
	} `json:"data"`
}

/* =========================================================
   RESPONSE DTOs
========================================================= */

type CreatePaymentResponse struct {
	Reference       string                 `json:"reference"`
	Amount          int64                  `json:"amount"`
	Currency        string                 `json:"currency"`
	FormattedAmount string                 `json:"formatted_amount"`
	PaymentURL      string                 `json:"payment_url,omitempty"`
	FallbackPayment bool                   `json:"fallback_payment,omitempty"`
	BankDetails     *constants.BankDetails `json:"bank_details,omitempty"`
}

type PaymentStatusResponse struct {
	Reference       string                 `json:"reference"`
	PaymentType     string                 `json:"payment_type"`
	Amount          int64                  `json:"amount"`
	Currency        string                 `json:"currency"`
	FormattedAmount string                 `json:"formatted_amount"`
	Status          model.Status           `json:"status"`
	BankDetails     *constants.BankDetails `json:"bank_details,omitempty"`
}

func FromPayment(p *model.Payment) PaymentStatusResponse {
	resp := PaymentStatusResponse{
		Reference:       p.PaymentReference,
		PaymentType:     p.PaymentType,
		Amount:          p.PaymentAmount,
		Currency:        p.PaymentCurrency,
		FormattedAmount: constants.FormatAmount(p.PaymentAmount, p.PaymentCurrency),
		Status:          p.PaymentStatus,
	}
	if p.PaymentStatus == model.StatusPendingManual {
		bd := constants.TransferBankDetails
		resp.BankDetails = &bd
	}
	return resp
}

type VerifyPaymentResponse struct {
	Reference string       `json:"reference"`
	Status    model.Status `json:"status"`
	Amount    int64        `json:"amount"`
	Currency  string       `json:"currency"`
}

func strVal(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
