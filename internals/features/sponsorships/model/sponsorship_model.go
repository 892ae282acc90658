package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SponsorshipStatusPending   = "pending"
	SponsorshipStatusConfirmed = "confirmed"
	SponsorshipStatusCancelled = "cancelled"
)

// Sponsorship rows follow the same pay-first lifecycle as registrations:
// materialized only by reconciliation, from the stored form snapshot.
type Sponsorship struct {
	SponsorshipID uuid.UUID `gorm:"column:sponsorship_id;type:uuid;default:gen_random_uuid();primaryKey" json:"sponsorship_id"`

	SponsorshipCompanyName   string  `gorm:"column:sponsorship_company_name;not null" json:"sponsorship_company_name"`
	SponsorshipContactPerson string  `gorm:"column:sponsorship_contact_person;not null" json:"sponsorship_contact_person"`
	SponsorshipEmail         string  `gorm:"column:sponsorship_email;not null;index" json:"sponsorship_email"`
	SponsorshipPhone         *string `gorm:"column:sponsorship_phone" json:"sponsorship_phone,omitempty"`
	SponsorshipWebsite       *string `gorm:"column:sponsorship_website" json:"sponsorship_website,omitempty"`

	SponsorshipPackageType string `gorm:"column:sponsorship_package_type;not null" json:"sponsorship_package_type"`

	SponsorshipStatus        string `gorm:"column:sponsorship_status;not null;default:'pending'" json:"sponsorship_status"`
	SponsorshipPaymentStatus string `gorm:"column:sponsorship_payment_status;not null;default:'pending'" json:"sponsorship_payment_status"`

	SponsorshipPaymentReference *string `gorm:"column:sponsorship_payment_reference;index" json:"sponsorship_payment_reference,omitempty"`

	CreatedAt time.Time      `gorm:"column:sponsorship_created_at;autoCreateTime" json:"sponsorship_created_at"`
	UpdatedAt time.Time      `gorm:"column:sponsorship_updated_at;autoUpdateTime" json:"sponsorship_updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:sponsorship_deleted_at;index" json:"sponsorship_deleted_at,omitempty"`
}

func (Sponsorship) TableName() string { return "sponsorships" }

func (s *Sponsorship) BeforeCreate(tx *gorm.DB) error {
	if s.SponsorshipID == uuid.Nil {
		s.SponsorshipID = uuid.New()
	}
	return nil
}
