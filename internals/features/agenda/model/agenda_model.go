package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Speaker is public site content, managed from the admin console.
type Speaker struct {
	SpeakerID uuid.UUID `gorm:"column:speaker_id;type:uuid;default:gen_random_uuid();primaryKey" json:"speaker_id"`

	SpeakerName         string  `gorm:"column:speaker_name;not null" json:"speaker_name"`
	SpeakerTitle        *string `gorm:"column:speaker_title" json:"speaker_title,omitempty"`
	SpeakerOrganization *string `gorm:"column:speaker_organization" json:"speaker_organization,omitempty"`
	SpeakerBio          *string `gorm:"column:speaker_bio;type:text" json:"speaker_bio,omitempty"`
	SpeakerPhotoURL     *string `gorm:"column:speaker_photo_url" json:"speaker_photo_url,omitempty"`
	SpeakerKeynote      bool    `gorm:"column:speaker_keynote;not null;default:false" json:"speaker_keynote"`

	CreatedAt time.Time      `gorm:"column:speaker_created_at;autoCreateTime" json:"speaker_created_at"`
	UpdatedAt time.Time      `gorm:"column:speaker_updated_at;autoUpdateTime" json:"speaker_updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:speaker_deleted_at;index" json:"speaker_deleted_at,omitempty"`
}

func (Speaker) TableName() string { return "speakers" }

// Session is one agenda slot.
type Session struct {
	SessionID uuid.UUID `gorm:"column:session_id;type:uuid;default:gen_random_uuid();primaryKey" json:"session_id"`

	SessionDay     int       `gorm:"column:session_day;not null" json:"session_day"`
	SessionStartAt time.Time `gorm:"column:session_start_at;not null" json:"session_start_at"`
	SessionEndAt   time.Time `gorm:"column:session_end_at;not null" json:"session_end_at"`

	SessionTitle string  `gorm:"column:session_title;not null" json:"session_title"`
	SessionRoom  *string `gorm:"column:session_room" json:"session_room,omitempty"`
	SessionTrack *string `gorm:"column:session_track" json:"session_track,omitempty"`

	SessionSpeakerID *uuid.UUID `gorm:"column:session_speaker_id;type:uuid" json:"session_speaker_id,omitempty"`
	Speaker          *Speaker   `gorm:"foreignKey:SessionSpeakerID;references:SpeakerID" json:"speaker,omitempty"`

	CreatedAt time.Time      `gorm:"column:session_created_at;autoCreateTime" json:"session_created_at"`
	UpdatedAt time.Time      `gorm:"column:session_updated_at;autoUpdateTime" json:"session_updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:session_deleted_at;index" json:"session_deleted_at,omitempty"`
}

func (Session) TableName() string { return "sessions" }
