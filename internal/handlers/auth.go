package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ndamdavid/servicelink_backend/internal/auth"
	"github.com/ndamdavid/servicelink_backend/internal/middleware"
	"github.com/ndamdavid/servicelink_backend/internal/models"
	"github.com/ndamdavid/servicelink_backend/internal/store"
)

type AuthHandler struct {
	Users      *store.UserStore
	Denylist   auth.Denylist
	JWTSecret  string
	AccessMin  int
	RefreshMin int
}

type RegisterReq struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	City            string `json:"city"`
	District        string `json:"district"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid body")
	}

	firstName := strings.TrimSpace(req.FirstName)
	lastName := strings.TrimSpace(req.LastName)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	phone := strings.TrimSpace(req.Phone)

	switch {
	case firstName == "" || lastName == "":
		return fail(c, fiber.StatusBadRequest, "First name and last name are required")
	case email == "" && phone == "":
		return fail(c, fiber.StatusBadRequest, "Either email or phone is required")
	case email != "" && !strings.Contains(email, "@"):
		return fail(c, fiber.StatusBadRequest, "Invalid email format")
	case len(req.Password) < 6:
		return fail(c, fiber.StatusBadRequest, "Password must be at least 6 characters")
	case req.Password != req.ConfirmPassword:
		return fail(c, fiber.StatusBadRequest, "Password does not match")
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Could not process password")
	}

	u := models.User{
		FirstName: firstName,
		LastName:  lastName,
		City:      strings.TrimSpace(req.City),
		District:  strings.TrimSpace(req.District),
		Password:  hashed,
		IsActive:  true,
	}
	if email != "" {
		u.Email = &email
	}
	if phone != "" {
		u.Phone = &phone
	}

	if err := h.Users.Create(&u); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return fail(c, fiber.StatusConflict, "Email or phone already registered")
		}
		return fail(c, fiber.StatusInternalServerError, "Could not register user")
	}

	return okData(c, fiber.StatusCreated, userMin(&u))
}

type LoginReq struct {
	Username string `json:"username"` // email or phone
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid body")
	}

	identifier := strings.TrimSpace(req.Username)
	if identifier == "" || req.Password == "" {
		return fail(c, fiber.StatusBadRequest, "Username and password are required")
	}

	// The identifier is an email iff it contains "@".
	var (
		user *models.User
		err  error
	)
	if strings.Contains(identifier, "@") {
		user, err = h.Users.GetByEmail(strings.ToLower(identifier))
	} else {
		user, err = h.Users.GetByPhone(identifier)
	}
	if err != nil {
		return fail(c, fiber.StatusUnauthorized, "Invalid email/phone or password")
	}
	if !auth.CheckPassword(user.Password, req.Password) {
		return fail(c, fiber.StatusUnauthorized, "Invalid email/phone or password")
	}
	if !user.IsActive {
		return fail(c, fiber.StatusUnauthorized, "Account is not active")
	}

	token, refresh, err := auth.SignPair(h.JWTSecret, user.Username, h.AccessMin, h.RefreshMin)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Could not issue tokens")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"token":   token,
			"refresh": refresh,
		},
	})
}

type RefreshReq struct {
	Refresh string `json:"refresh"`
}

// Refresh exchanges a live refresh token for a fresh pair.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req RefreshReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid body")
	}

	claims, err := auth.ParseToken(h.JWTSecret, req.Refresh)
	if err != nil || claims.Type != auth.TypeRefresh {
		return fail(c, fiber.StatusUnauthorized, "Invalid or expired refresh token")
	}

	user, err := h.Users.GetByUsername(claims.Username)
	if err != nil || !user.IsActive {
		return fail(c, fiber.StatusUnauthorized, "Invalid or expired refresh token")
	}

	token, refresh, err := auth.SignPair(h.JWTSecret, user.Username, h.AccessMin, h.RefreshMin)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Could not issue tokens")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"token":   token,
			"refresh": refresh,
		},
	})
}

// Logout denylists the presented access token for the rest of its lifetime.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	tokenStr, claims, ok := middleware.BearerToken(c)
	if ok && claims.ExpiresAt != nil {
		ttl := time.Until(claims.ExpiresAt.Time)
		if err := h.Denylist.Revoke(c.Context(), tokenStr, ttl); err != nil {
			return fail(c, fiber.StatusInternalServerError, "Could not revoke token")
		}
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Logged out",
	})
}

// Me returns the rich projection of the connected user.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	current, _ := middleware.CurrentUser(c)

	user, err := h.Users.GetProfile(current.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fail(c, fiber.StatusUnauthorized, "User not found")
		}
		return fail(c, fiber.StatusInternalServerError, "Could not load profile")
	}

	requests := make([]fiber.Map, 0, len(user.Requests))
	for i := range user.Requests {
		requests = append(requests, requestProjection(&user.Requests[i]))
	}
	proposals := make([]fiber.Map, 0, len(user.Proposals))
	for i := range user.Proposals {
		proposals = append(proposals, proposalProjection(&user.Proposals[i]))
	}

	data := fiber.Map{
		"uuid":        user.ID,
		"first_name":  user.FirstName,
		"last_name":   user.LastName,
		"email":       user.Email,
		"phone":       user.Phone,
		"city":        user.City,
		"district":    user.District,
		"is_active":   user.IsActive,
		"is_verified": user.IsVerified,
		"requests":    requests,
		"proposals":   proposals,
	}
	if user.Socials != nil {
		data["socials"] = fiber.Map{
			"whatsapp": user.Socials.Whatsapp,
			"telegram": user.Socials.Telegram,
		}
	}
	return okData(c, fiber.StatusOK, data)
}
