package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"confhub_backend/internals/features/agenda/dto"
	"confhub_backend/internals/features/agenda/model"
	"confhub_backend/internals/features/agenda/service"
	helper "confhub_backend/internals/helpers"
)

type AgendaController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Cache     *service.ContentCache
}

func NewAgendaController(db *gorm.DB, cache *service.ContentCache) *AgendaController {
	return &AgendaController{DB: db, Validator: validator.New(), Cache: cache}
}

/* =======================================================================
   Public
======================================================================= */

// GET /api/agenda
func (h *AgendaController) ListSessions(c *fiber.Ctx) error {
	var sessions []model.Session
	err := h.Cache.GetOrLoad(c.UserContext(), service.KeyAgendaList, &sessions, func() (interface{}, error) {
		var rows []model.Session
		err := h.DB.WithContext(c.UserContext()).
			Preload("Speaker").
			Order("session_day ASC, session_start_at ASC").
			Find(&rows).Error
		return rows, err
	})
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "could not load agenda")
	}

	return helper.Success(c, fiber.Map{"sessions": sessions})
}

// GET /api/speakers
func (h *AgendaController) ListSpeakers(c *fiber.Ctx) error {
	var speakers []model.Speaker
	err := h.Cache.GetOrLoad(c.UserContext(), service.KeySpeakersList, &speakers, func() (interface{}, error) {
		var rows []model.Speaker
		err := h.DB.WithContext(c.UserContext()).
			Order("speaker_keynote DESC, speaker_name ASC").
			Find(&rows).Error
		return rows, err
	})
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "could not load speakers")
	}

	return helper.Success(c, fiber.Map{"speakers": speakers})
}

/* =======================================================================
   Admin
======================================================================= */

// POST /api/a/speakers
func (h *AgendaController) CreateSpeaker(c *fiber.Ctx) error {
	var req dto.UpsertSpeakerRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "invalid json: "+err.Error())
	}
	if err := h.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	m := model.Speaker{
		SpeakerName:         req.Name,
		SpeakerTitle:        req.Title,
		SpeakerOrganization: req.Organization,
		SpeakerBio:          req.Bio,
		SpeakerPhotoURL:     req.PhotoURL,
		SpeakerKeynote:      req.Keynote,
	}
	if err := h.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "create failed")
	}

	h.Cache.Invalidate(c.UserContext(), service.KeySpeakersList, service.KeyAgendaList)
	return helper.SuccessWithCode(c, fiber.StatusCreated, m)
}

// PATCH /api/a/speakers/:id
func (h *AgendaController) UpdateSpeaker(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "invalid id")
	}

	var req dto.UpsertSpeakerRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "invalid json: "+err.Error())
	}
	if err := h.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	res := h.DB.WithContext(c.UserContext()).
		Model(&model.Speaker{}).
		Where("speaker_id = ?", id).
		Updates(map[string]interface{}{
			"speaker_name":         req.Name,
			"speaker_title":        req.Title,
			"speaker_organization": req.Organization,
			"speaker_bio":          req.Bio,
			"speaker_photo_url":    req.PhotoURL,
			"speaker_keynote":      req.Keynote,
		})
	if res.Error != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "update failed")
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "speaker not found")
	}

	h.Cache.Invalidate(c.UserContext(), service.KeySpeakersList, service.KeyAgendaList)
	return helper.Success(c, fiber.Map{"speaker_id": id})
}

// DELETE /api/a/speakers/:id
func (h *AgendaController) DeleteSpeaker(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "invalid id")
	}

	res := h.DB.WithContext(c.UserContext()).Delete(&model.Speaker{}, "speaker_id = ?", id)
	if res.Error != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "delete failed")
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "speaker not found")
	}

	h.Cache.Invalidate(c.UserContext(), service.KeySpeakersList, service.KeyAgendaList)
	return helper.Success(c, fiber.Map{"speaker_id": id, "deleted": true})
}

// POST /api/a/sessions
func (h *AgendaController) CreateSession(c *fiber.Ctx) error {
	var req dto.UpsertSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "invalid json: "+err.Error())
	}
	if err := h.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	if !req.EndAt.After(req.StartAt) {
		return helper.Error(c, fiber.StatusBadRequest, "end_at must be after start_at")
	}

	m := model.Session{
		SessionDay:       req.Day,
		SessionStartAt:   req.StartAt,
		SessionEndAt:     req.EndAt,
		SessionTitle:     req.Title,
		SessionRoom:      req.Room,
		SessionTrack:     req.Track,
		SessionSpeakerID: req.SpeakerID,
	}
	if err := h.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "create failed")
	}

	h.Cache.Invalidate(c.UserContext(), service.KeyAgendaList)
	return helper.SuccessWithCode(c, fiber.StatusCreated, m)
}

// DELETE /api/a/sessions/:id
func (h *AgendaController) DeleteSession(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "invalid id")
	}

	res := h.DB.WithContext(c.UserContext()).Delete(&model.Session{}, "session_id = ?", id)
	if res.Error != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "delete failed")
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "session not found")
	}

	h.Cache.Invalidate(c.UserContext(), service.KeyAgendaList)
	return helper.Success(c, fiber.Map{"session_id": id, "deleted": true})
}
