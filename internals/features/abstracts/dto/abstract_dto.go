package dto

import (
	"confhub_backend/internals/features/abstracts/model"
)

// SubmitAbstractRequest comes from the public submission form.
type SubmitAbstractRequest struct {
	Title          string  `json:"title" validate:"required,min=5,max=300"`
	Authors        string  `json:"authors" validate:"required,min=2,max=500"`
	PresenterEmail string  `json:"presenter_email" validate:"required,email"`
	Category       string  `json:"category" validate:"required,oneof=research case_study policy poster workshop"`
	Body           string  `json:"body" validate:"required,min=100,max=5000"`
	Keywords       *string `json:"keywords,omitempty" validate:"omitempty,max=300"`
}

func (r *SubmitAbstractRequest) ToModel() *model.Abstract {
	return &model.Abstract{
		AbstractTitle:          r.Title,
		AbstractAuthors:        r.Authors,
		AbstractPresenterEmail: r.PresenterEmail,
		AbstractCategory:       r.Category,
		AbstractBody:           r.Body,
		AbstractKeywords:       r.Keywords,
		AbstractStatus:         model.AbstractStatusSubmitted,
	}
}

// ReviewAbstractRequest records the committee's decision.
type ReviewAbstractRequest struct {
	Status     string  `json:"status" validate:"required,oneof=under_review accepted rejected"`
	ReviewNote *string `json:"review_note,omitempty" validate:"omitempty,max=2000"`
}
