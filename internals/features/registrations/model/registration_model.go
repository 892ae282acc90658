package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RegistrationStatusPending   = "pending"
	RegistrationStatusConfirmed = "confirmed"
	RegistrationStatusCancelled = "cancelled"
)

// Registration rows are created exactly once per completed payment, by the
// reconciliation path, from the payment's stored form snapshot.
type Registration struct {
	RegistrationID uuid.UUID `gorm:"column:registration_id;type:uuid;default:gen_random_uuid();primaryKey" json:"registration_id"`

	RegistrationFullName     string  `gorm:"column:registration_full_name;not null" json:"registration_full_name"`
	RegistrationEmail        string  `gorm:"column:registration_email;not null;index" json:"registration_email"`
	RegistrationPhone        *string `gorm:"column:registration_phone" json:"registration_phone,omitempty"`
	RegistrationOrganization *string `gorm:"column:registration_organization" json:"registration_organization,omitempty"`
	RegistrationCountry      *string `gorm:"column:registration_country" json:"registration_country,omitempty"`

	RegistrationType    string  `gorm:"column:registration_type;not null" json:"registration_type"`
	RegistrationDietary *string `gorm:"column:registration_dietary" json:"registration_dietary,omitempty"`

	RegistrationStatus        string `gorm:"column:registration_status;not null;default:'pending'" json:"registration_status"`
	RegistrationPaymentStatus string `gorm:"column:registration_payment_status;not null;default:'pending'" json:"registration_payment_status"`

	// Back-link to the payment attempt that funded this row
	RegistrationPaymentReference *string `gorm:"column:registration_payment_reference;index" json:"registration_payment_reference,omitempty"`

	CreatedAt time.Time      `gorm:"column:registration_created_at;autoCreateTime" json:"registration_created_at"`
	UpdatedAt time.Time      `gorm:"column:registration_updated_at;autoUpdateTime" json:"registration_updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:registration_deleted_at;index" json:"registration_deleted_at,omitempty"`
}

func (Registration) TableName() string { return "registrations" }

func (r *Registration) BeforeCreate(tx *gorm.DB) error {
	if r.RegistrationID == uuid.Nil {
		r.RegistrationID = uuid.New()
	}
	return nil
}
