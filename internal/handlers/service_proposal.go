package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ndamdavid/servicelink_backend/internal/middleware"
	"github.com/ndamdavid/servicelink_backend/internal/models"
	"github.com/ndamdavid/servicelink_backend/internal/store"
)

type ServiceProposalHandler struct {
	Proposals *store.ProposalStore
	Taxonomy  *store.TaxonomyStore
}

func NewServiceProposalHandler(proposals *store.ProposalStore, taxonomy *store.TaxonomyStore) *ServiceProposalHandler {
	return &ServiceProposalHandler{Proposals: proposals, Taxonomy: taxonomy}
}

type CreateProposalReq struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	HourlyRate   int      `json:"hourly_rate"`
	Skills       []string `json:"skills"`
	CategoryUUID string   `json:"category_uuid"`
}

func (h *ServiceProposalHandler) Create(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)

	var req CreateProposalReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid body")
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return fail(c, fiber.StatusBadRequest, "Title is required")
	}
	if req.HourlyRate <= 0 {
		return fail(c, fiber.StatusBadRequest, "Hourly rate must be positive")
	}

	skills, err := h.Taxonomy.ResolveSkills(req.Skills)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Could not resolve skills")
	}

	category, err := h.Taxonomy.ResolveCategory(strings.TrimSpace(req.CategoryUUID))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fail(c, fiber.StatusNotFound, "Category not found")
		}
		return fail(c, fiber.StatusInternalServerError, "Could not resolve category")
	}

	proposal := models.ServiceProposal{
		UserID:      user.ID,
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		HourlyRate:  req.HourlyRate,
		CategoryID:  &category.ID,
	}
	if err := h.Proposals.Create(&proposal, skills); err != nil {
		return fail(c, fiber.StatusInternalServerError, "Could not create service proposal")
	}

	proposal.Category = category
	proposal.Skills = skills
	proposal.User = user
	return okData(c, fiber.StatusCreated, proposalProjection(&proposal))
}

func (h *ServiceProposalHandler) List(c *fiber.Ctx) error {
	page, err := pageQuery(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	filter := store.ProposalFilter{
		CategoryID: strings.TrimSpace(c.Query("category_uuid")),
	}

	result, err := h.Proposals.List(filter, page)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Could not list service proposals")
	}

	items := make([]fiber.Map, 0, len(result.Items))
	for i := range result.Items {
		items = append(items, proposalProjection(&result.Items[i]))
	}
	return c.JSON(fiber.Map{
		"page":      result.Page,
		"size":      result.Size,
		"total":     result.Total,
		"more":      result.More,
		"proposals": items,
	})
}

type UpdateProposalReq struct {
	Title        *string   `json:"title"`
	Description  *string   `json:"description"`
	HourlyRate   *int      `json:"hourly_rate"`
	Skills       *[]string `json:"skills"`
	CategoryUUID *string   `json:"category_uuid"`
}

func (h *ServiceProposalHandler) Update(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)

	proposal, err := h.Proposals.GetOwned(c.Params("id"), user.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fail(c, fiber.StatusNotFound, "Service proposal not found or you do not have permission to edit it")
		}
		return fail(c, fiber.StatusInternalServerError, "Could not load service proposal")
	}

	var req UpdateProposalReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid body")
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return fail(c, fiber.StatusBadRequest, "Title cannot be empty")
		}
		proposal.Title = title
	}
	if req.Description != nil {
		proposal.Description = strings.TrimSpace(*req.Description)
	}
	if req.HourlyRate != nil {
		if *req.HourlyRate <= 0 {
			return fail(c, fiber.StatusBadRequest, "Hourly rate must be positive")
		}
		proposal.HourlyRate = *req.HourlyRate
	}
	if req.CategoryUUID != nil {
		category, err := h.Taxonomy.ResolveCategory(strings.TrimSpace(*req.CategoryUUID))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fail(c, fiber.StatusNotFound, "Category not found")
			}
			return fail(c, fiber.StatusInternalServerError, "Could not resolve category")
		}
		proposal.CategoryID = &category.ID
		proposal.Category = category
	}

	var skills []models.ServiceProposalSkill
	if req.Skills != nil {
		skills, err = h.Taxonomy.ResolveSkills(*req.Skills)
		if err != nil {
			return fail(c, fiber.StatusInternalServerError, "Could not resolve skills")
		}
	}

	if err := h.Proposals.Update(proposal, skills, req.Skills != nil); err != nil {
		return fail(c, fiber.StatusInternalServerError, "Could not update service proposal")
	}
	if req.Skills != nil {
		proposal.Skills = skills
	}

	proposal.User = user
	return okData(c, fiber.StatusOK, proposalProjection(proposal))
}
