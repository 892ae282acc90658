package model

import (
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/datatypes"
)

/* =========================================================
   Tagged form snapshot

   The original submission is validated here, at the boundary,
   before it is stored on the payment row. Reconciliation
   parses it back and materializes exactly one entity.
========================================================= */

type RegistrationForm struct {
	FullName            string  `json:"full_name" validate:"required,min=2,max=200"`
	Email               string  `json:"email" validate:"required,email"`
	Phone               *string `json:"phone,omitempty" validate:"omitempty,min=7,max=20"`
	Organization        *string `json:"organization,omitempty" validate:"omitempty,max=200"`
	Country             *string `json:"country,omitempty" validate:"omitempty,max=100"`
	RegistrationType    string  `json:"registration_type" validate:"required"`
	DietaryRequirements *string `json:"dietary_requirements,omitempty" validate:"omitempty,max=500"`
}

type SponsorshipForm struct {
	CompanyName   string  `json:"company_name" validate:"required,min=2,max=200"`
	ContactPerson string  `json:"contact_person" validate:"required,min=2,max=200"`
	Email         string  `json:"email" validate:"required,email"`
	Phone         *string `json:"phone,omitempty" validate:"omitempty,min=7,max=20"`
	Website       *string `json:"website,omitempty" validate:"omitempty,url"`
	PackageType   string  `json:"package_type" validate:"required"`
}

// FormData is a closed sum: exactly one variant is set, matching Type.
type FormData struct {
	Type         string            `json:"type"`
	Registration *RegistrationForm `json:"registration,omitempty"`
	Sponsorship  *SponsorshipForm  `json:"sponsorship,omitempty"`
}

var ErrFormDataMismatch = errors.New("form data does not match payment type")

// Check enforces the tag/variant pairing.
func (f *FormData) Check() error {
	switch f.Type {
	case PaymentTypeRegistration:
		if f.Registration == nil || f.Sponsorship != nil {
			return ErrFormDataMismatch
		}
	case PaymentTypeSponsorship:
		if f.Sponsorship == nil || f.Registration != nil {
			return ErrFormDataMismatch
		}
	default:
		return fmt.Errorf("%w: unknown type %q", ErrFormDataMismatch, f.Type)
	}
	return nil
}

// ToJSON serializes the snapshot for the payment row.
func (f *FormData) ToJSON() (datatypes.JSON, error) {
	if err := f.Check(); err != nil {
		return nil, err
	}
	b, err := json.Marshal(f)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

// ParseFormData reads the stored snapshot back at reconciliation time.
func ParseFormData(j datatypes.JSON) (*FormData, error) {
	if len(j) == 0 {
		return nil, errors.New("payment has no stored form data")
	}
	var f FormData
	if err := json.Unmarshal(j, &f); err != nil {
		return nil, err
	}
	if err := f.Check(); err != nil {
		return nil, err
	}
	return &f, nil
}
