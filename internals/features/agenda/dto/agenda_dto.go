package dto

import (
	"time"

	"github.com/google/uuid"
)

type UpsertSpeakerRequest struct {
	Name         string  `json:"name" validate:"required,min=2,max=200"`
	Title        *string `json:"title,omitempty" validate:"omitempty,max=200"`
	Organization *string `json:"organization,omitempty" validate:"omitempty,max=200"`
	Bio          *string `json:"bio,omitempty" validate:"omitempty,max=5000"`
	PhotoURL     *string `json:"photo_url,omitempty" validate:"omitempty,url"`
	Keynote      bool    `json:"keynote"`
}

type UpsertSessionRequest struct {
	Day       int        `json:"day" validate:"required,min=1,max=14"`
	StartAt   time.Time  `json:"start_at" validate:"required"`
	EndAt     time.Time  `json:"end_at" validate:"required"`
	Title     string     `json:"title" validate:"required,min=3,max=300"`
	Room      *string    `json:"room,omitempty" validate:"omitempty,max=100"`
	Track     *string    `json:"track,omitempty" validate:"omitempty,max=100"`
	SpeakerID *uuid.UUID `json:"speaker_id,omitempty"`
}
