package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ndamdavid/servicelink_backend/internal/store"
)

// AdminHandler is the back-office review side channel. It is guarded by the
// admin key middleware, not by user tokens.
type AdminHandler struct {
	Users         *store.UserStore
	Verifications *store.VerificationStore
}

func NewAdminHandler(users *store.UserStore, verifications *store.VerificationStore) *AdminHandler {
	return &AdminHandler{Users: users, Verifications: verifications}
}

type ReviewReq struct {
	UserUUIDs []string `json:"user_uuids"`
}

// ApproveVerifications sets is_verified and is_active together for every
// listed user.
func (h *AdminHandler) ApproveVerifications(c *fiber.Ctx) error {
	return h.review(c, true)
}

// RejectVerifications clears both trust flags for every listed user.
func (h *AdminHandler) RejectVerifications(c *fiber.Ctx) error {
	return h.review(c, false)
}

func (h *AdminHandler) review(c *fiber.Ctx, approve bool) error {
	var req ReviewReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid body")
	}
	if len(req.UserUUIDs) == 0 {
		return fail(c, fiber.StatusBadRequest, "user_uuids is required")
	}

	// Only users with a submitted verification record are reviewable.
	records, err := h.Verifications.ListByUsers(req.UserUUIDs)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Could not load verifications")
	}
	userIDs := make([]string, 0, len(records))
	for _, r := range records {
		userIDs = append(userIDs, r.UserID)
	}
	if len(userIDs) == 0 {
		return fail(c, fiber.StatusNotFound, "No verification records for the given users")
	}

	if err := h.Users.SetVerified(userIDs, approve); err != nil {
		return fail(c, fiber.StatusInternalServerError, "Could not update users")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"reviewed": len(userIDs),
			"approved": approve,
		},
	})
}
