package handlers

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ndamdavid/servicelink_backend/internal/storage"
	"github.com/ndamdavid/servicelink_backend/internal/store"
	"github.com/ndamdavid/servicelink_backend/internal/utils"
)

type UserHandler struct {
	Users         *store.UserStore
	Verifications *store.VerificationStore
	Photos        storage.Store
}

func NewUserHandler(users *store.UserStore, verifications *store.VerificationStore, photos storage.Store) *UserHandler {
	return &UserHandler{Users: users, Verifications: verifications, Photos: photos}
}

// Profile is the public user projection, served without authentication.
func (h *UserHandler) Profile(c *fiber.Ctx) error {
	user, err := h.Users.GetProfile(c.Params("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fail(c, fiber.StatusNotFound, "User not found")
		}
		return fail(c, fiber.StatusInternalServerError, "Could not load user")
	}

	proposals := make([]fiber.Map, 0, len(user.Proposals))
	for i := range user.Proposals {
		proposals = append(proposals, proposalProjection(&user.Proposals[i]))
	}

	return okData(c, fiber.StatusOK, fiber.Map{
		"uuid":        user.ID,
		"first_name":  user.FirstName,
		"last_name":   user.LastName,
		"city":        user.City,
		"district":    user.District,
		"is_verified": user.IsVerified,
		"proposals":   proposals,
	})
}

// SubmitVerification receives the identity photo (multipart: user_id, photo)
// and replaces any previous submission. The new photo is written before the
// old one is removed, so a storage failure never loses both.
func (h *UserHandler) SubmitVerification(c *fiber.Ctx) error {
	userID := strings.TrimSpace(c.FormValue("user_id"))
	if userID == "" {
		return fail(c, fiber.StatusBadRequest, "user_id is required")
	}

	user, err := h.Users.GetByID(userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fail(c, fiber.StatusNotFound, "User not found")
		}
		return fail(c, fiber.StatusInternalServerError, "Could not load user")
	}

	file, err := c.FormFile("photo")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Photo file is required")
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" && ext != ".webp" {
		return fail(c, fiber.StatusBadRequest, "Unsupported image format")
	}

	src, err := file.Open()
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Could not read photo")
	}
	defer src.Close()

	// Deterministic name derived from the user's full name.
	name := "verif_" + utils.FileSlug(user.FullName()) + ext
	path, err := h.Photos.Save(name, src)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Could not store photo")
	}

	previous, err := h.Verifications.GetByUser(user.ID)
	if err == nil && previous.PhotoPath != path {
		if err := h.Photos.Remove(previous.PhotoPath); err != nil {
			return fail(c, fiber.StatusInternalServerError, "Could not replace previous photo")
		}
	}

	if _, err := h.Verifications.Upsert(user.ID, path); err != nil {
		return fail(c, fiber.StatusInternalServerError, "Could not save verification")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Verification photo submitted",
	})
}
