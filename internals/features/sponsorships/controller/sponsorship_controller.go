package controller

import (
	"errors"
	"sort"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"confhub_backend/internals/constants"
	"confhub_backend/internals/features/sponsorships/dto"
	"confhub_backend/internals/features/sponsorships/model"
	helper "confhub_backend/internals/helpers"
)

type SponsorshipController struct {
	DB *gorm.DB
}

func NewSponsorshipController(db *gorm.DB) *SponsorshipController {
	return &SponsorshipController{DB: db}
}

// GET /api/sponsorships/packages
// Public tier catalog for the sponsorship page, priced from the same table
// the payment route uses.
func (h *SponsorshipController) ListPackages(c *fiber.Ctx) error {
	packages := make([]constants.PricingEntry, 0, len(constants.SponsorshipTiers))
	for _, entry := range constants.SponsorshipTiers {
		packages = append(packages, entry)
	}
	// Stable order, most expensive first
	sort.Slice(packages, func(i, j int) bool { return packages[i].Amount > packages[j].Amount })

	return helper.Success(c, fiber.Map{"packages": packages})
}

// GET /api/a/sponsorships
func (h *SponsorshipController) List(c *fiber.Ctx) error {
	params := helper.ParsePageWith(c, "created_at", "desc", helper.AdminPageOpts)

	q := h.DB.WithContext(c.UserContext()).Model(&model.Sponsorship{})
	if s := strings.TrimSpace(c.Query("status")); s != "" {
		q = q.Where("sponsorship_status = ?", s)
	}
	if p := strings.TrimSpace(c.Query("package")); p != "" {
		q = q.Where("sponsorship_package_type = ?", p)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "count failed")
	}

	order, err := params.SafeOrderClause(map[string]string{
		"created_at": "sponsorship_created_at",
		"company":    "sponsorship_company_name",
	}, "created_at")
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.Sponsorship
	if err := q.Order(order).Limit(params.Limit()).Offset(params.Offset()).Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "list failed")
	}

	out := make([]dto.SponsorshipResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.FromModel(&rows[i]))
	}

	return helper.Success(c, fiber.Map{
		"sponsorships": out,
		"meta":         helper.BuildPageMeta(total, params),
	})
}

// GET /api/a/sponsorships/:id
func (h *SponsorshipController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "invalid id")
	}

	var m model.Sponsorship
	if err := h.DB.WithContext(c.UserContext()).
		First(&m, "sponsorship_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "sponsorship not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "lookup failed")
	}

	return helper.Success(c, dto.FromModel(&m))
}
