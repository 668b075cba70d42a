package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ndamdavid/servicelink_backend/internal/store"
)

type TaxonomyHandler struct {
	Taxonomy *store.TaxonomyStore
}

func NewTaxonomyHandler(taxonomy *store.TaxonomyStore) *TaxonomyHandler {
	return &TaxonomyHandler{Taxonomy: taxonomy}
}

func (h *TaxonomyHandler) GetSkills(c *fiber.Ctx) error {
	skills, err := h.Taxonomy.ListSkills()
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Could not load skills")
	}
	return okData(c, fiber.StatusOK, skills)
}

func (h *TaxonomyHandler) GetCategories(c *fiber.Ctx) error {
	categories, err := h.Taxonomy.ListCategories()
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Could not load categories")
	}
	return okData(c, fiber.StatusOK, categories)
}
