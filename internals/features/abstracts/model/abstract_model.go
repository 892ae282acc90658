package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AbstractStatusSubmitted   = "submitted"
	AbstractStatusUnderReview = "under_review"
	AbstractStatusAccepted    = "accepted"
	AbstractStatusRejected    = "rejected"
)

// Abstract is a talk/poster submission. Full papers are collected by email
// after acceptance; this table holds the metadata and the abstract text.
type Abstract struct {
	AbstractID uuid.UUID `gorm:"column:abstract_id;type:uuid;default:gen_random_uuid();primaryKey" json:"abstract_id"`

	AbstractTitle          string  `gorm:"column:abstract_title;not null" json:"abstract_title"`
	AbstractAuthors        string  `gorm:"column:abstract_authors;not null" json:"abstract_authors"`
	AbstractPresenterEmail string  `gorm:"column:abstract_presenter_email;not null;index" json:"abstract_presenter_email"`
	AbstractCategory       string  `gorm:"column:abstract_category;not null" json:"abstract_category"`
	AbstractBody           string  `gorm:"column:abstract_body;type:text;not null" json:"abstract_body"`
	AbstractKeywords       *string `gorm:"column:abstract_keywords" json:"abstract_keywords,omitempty"`

	AbstractStatus     string  `gorm:"column:abstract_status;not null;default:'submitted'" json:"abstract_status"`
	AbstractReviewNote *string `gorm:"column:abstract_review_note" json:"abstract_review_note,omitempty"`

	CreatedAt time.Time      `gorm:"column:abstract_created_at;autoCreateTime" json:"abstract_created_at"`
	UpdatedAt time.Time      `gorm:"column:abstract_updated_at;autoUpdateTime" json:"abstract_updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:abstract_deleted_at;index" json:"abstract_deleted_at,omitempty"`
}

func (Abstract) TableName() string { return "abstracts" }
