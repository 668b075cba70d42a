package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ndamdavid/servicelink_backend/internal/middleware"
	"github.com/ndamdavid/servicelink_backend/internal/models"
	"github.com/ndamdavid/servicelink_backend/internal/store"
)

type ServiceRequestHandler struct {
	Requests *store.RequestStore
	Taxonomy *store.TaxonomyStore
}

func NewServiceRequestHandler(requests *store.RequestStore, taxonomy *store.TaxonomyStore) *ServiceRequestHandler {
	return &ServiceRequestHandler{Requests: requests, Taxonomy: taxonomy}
}

type CreateRequestReq struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	City        string `json:"city"`
	District    string `json:"district"`
	Duration    int    `json:"duration"`
	FixedAmount int    `json:"fixed_amount"`

	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Whatsapp string `json:"whatsapp"`
	Telegram string `json:"telegram"`

	CategoryUUID string `json:"category_uuid"`
}

func (h *ServiceRequestHandler) Create(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)

	var req CreateRequestReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid body")
	}

	title := strings.TrimSpace(req.Title)
	city := strings.TrimSpace(req.City)
	district := strings.TrimSpace(req.District)

	switch {
	case title == "":
		return fail(c, fiber.StatusBadRequest, "Title is required")
	case city == "" || district == "":
		return fail(c, fiber.StatusBadRequest, "City and district are required")
	case req.Duration <= 0:
		return fail(c, fiber.StatusBadRequest, "Duration must be a positive number of days")
	case req.FixedAmount <= 0:
		return fail(c, fiber.StatusBadRequest, "Fixed amount must be positive")
	}

	contacts := models.ServiceRequestContacts{
		Email:    strings.TrimSpace(req.Email),
		Phone:    strings.TrimSpace(req.Phone),
		Whatsapp: strings.TrimSpace(req.Whatsapp),
		Telegram: strings.TrimSpace(req.Telegram),
	}
	if !contacts.HasChannel() {
		return fail(c, fiber.StatusBadRequest, "At least one contact information is required")
	}

	category, err := h.Taxonomy.ResolveCategory(strings.TrimSpace(req.CategoryUUID))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fail(c, fiber.StatusNotFound, "Category not found")
		}
		return fail(c, fiber.StatusInternalServerError, "Could not resolve category")
	}

	request := models.ServiceRequest{
		UserID:      user.ID,
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		Status:      models.RequestActive,
		City:        city,
		District:    district,
		Duration:    req.Duration,
		FixedAmount: req.FixedAmount,
		CategoryID:  category.ID,
	}
	if err := h.Requests.Create(&request, &contacts); err != nil {
		return fail(c, fiber.StatusInternalServerError, "Could not create service request")
	}

	request.Category = category
	request.Contacts = &contacts
	request.User = user
	return okData(c, fiber.StatusCreated, requestProjection(&request))
}

// List is the public ACTIVE-only listing with conjunctive filters.
func (h *ServiceRequestHandler) List(c *fiber.Ctx) error {
	page, err := pageQuery(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	minAmount, err := queryInt(c, "min_amount", 0)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	maxAmount, err := queryInt(c, "max_amount", 0)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	filter := store.RequestFilter{
		City:       strings.TrimSpace(c.Query("city")),
		CategoryID: strings.TrimSpace(c.Query("category_uuid")),
		MinAmount:  minAmount,
		MaxAmount:  maxAmount,
	}

	result, err := h.Requests.List(filter, page)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Could not list service requests")
	}

	items := make([]fiber.Map, 0, len(result.Items))
	for i := range result.Items {
		items = append(items, requestProjection(&result.Items[i]))
	}
	return c.JSON(fiber.Map{
		"page":     result.Page,
		"size":     result.Size,
		"total":    result.Total,
		"more":     result.More,
		"requests": items,
	})
}

func (h *ServiceRequestHandler) Get(c *fiber.Ctx) error {
	request, err := h.Requests.GetByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fail(c, fiber.StatusNotFound, "Service request not found")
		}
		return fail(c, fiber.StatusInternalServerError, "Could not load service request")
	}
	return okData(c, fiber.StatusOK, requestProjection(request))
}

type UpdateRequestReq struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	City         *string `json:"city"`
	District     *string `json:"district"`
	Duration     *int    `json:"duration"`
	FixedAmount  *int    `json:"fixed_amount"`
	Status       *string `json:"status"`
	CategoryUUID *string `json:"category_uuid"`
}

// Update is owner-scoped: a request that exists but belongs to someone else
// looks exactly like one that does not exist.
func (h *ServiceRequestHandler) Update(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)

	request, err := h.Requests.GetOwned(c.Params("id"), user.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fail(c, fiber.StatusNotFound, "Service request not found or you do not have permission to edit it")
		}
		return fail(c, fiber.StatusInternalServerError, "Could not load service request")
	}

	var req UpdateRequestReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid body")
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return fail(c, fiber.StatusBadRequest, "Title cannot be empty")
		}
		request.Title = title
	}
	if req.Description != nil {
		request.Description = strings.TrimSpace(*req.Description)
	}
	if req.City != nil {
		request.City = strings.TrimSpace(*req.City)
	}
	if req.District != nil {
		request.District = strings.TrimSpace(*req.District)
	}
	if req.Duration != nil {
		if *req.Duration <= 0 {
			return fail(c, fiber.StatusBadRequest, "Duration must be a positive number of days")
		}
		request.Duration = *req.Duration
	}
	if req.FixedAmount != nil {
		if *req.FixedAmount <= 0 {
			return fail(c, fiber.StatusBadRequest, "Fixed amount must be positive")
		}
		request.FixedAmount = *req.FixedAmount
	}
	if req.Status != nil {
		status := models.RequestStatus(strings.ToLower(strings.TrimSpace(*req.Status)))
		if !status.Valid() {
			return fail(c, fiber.StatusBadRequest, "Invalid status")
		}
		request.Status = status
	}
	if req.CategoryUUID != nil {
		category, err := h.Taxonomy.ResolveCategory(strings.TrimSpace(*req.CategoryUUID))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fail(c, fiber.StatusNotFound, "Category not found")
			}
			return fail(c, fiber.StatusInternalServerError, "Could not resolve category")
		}
		request.CategoryID = category.ID
		request.Category = category
	}

	if err := h.Requests.Save(request); err != nil {
		return fail(c, fiber.StatusInternalServerError, "Could not update service request")
	}
	request.User = user
	return okData(c, fiber.StatusOK, requestProjection(request))
}
