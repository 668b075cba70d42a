package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ndamdavid/servicelink_backend/internal/models"
	"github.com/ndamdavid/servicelink_backend/internal/store"
)

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

func okData(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

var errBadQueryInt = fmt.Errorf("invalid numeric parameter")

// queryInt parses an optional numeric query parameter strictly: blank means
// "absent" (def), anything unparsable is an error, never a silent default.
func queryInt(c *fiber.Ctx, key string, def int) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", errBadQueryInt, key)
	}
	return n, nil
}

// pageQuery reads page/size/sort from the query string.
func pageQuery(c *fiber.Ctx) (store.PageQuery, error) {
	page, err := queryInt(c, "page", 1)
	if err != nil {
		return store.PageQuery{}, err
	}
	size, err := queryInt(c, "size", 10)
	if err != nil {
		return store.PageQuery{}, err
	}
	return store.PageQuery{
		Page: page,
		Size: size,
		Asc:  strings.EqualFold(c.Query("sort"), "asc"),
	}, nil
}

// ==== PROJECTIONS ====

func userMin(u *models.User) fiber.Map {
	return fiber.Map{
		"uuid":        u.ID,
		"first_name":  u.FirstName,
		"last_name":   u.LastName,
		"email":       u.Email,
		"phone":       u.Phone,
		"is_verified": u.IsVerified,
	}
}

func categoryLabel(cat *models.ServiceCategory) any {
	if cat == nil {
		return nil
	}
	return cat.Label()
}

func requestProjection(r *models.ServiceRequest) fiber.Map {
	out := fiber.Map{
		"uuid":         r.ID,
		"title":        r.Title,
		"description":  r.Description,
		"status":       r.Status,
		"city":         r.City,
		"district":     r.District,
		"duration":     r.Duration,
		"fixed_amount": r.FixedAmount,
		"category":     categoryLabel(r.Category),
		"created_at":   r.CreatedAt,
		"updated_at":   r.UpdatedAt,
	}
	if r.User != nil {
		out["user"] = userMin(r.User)
	}
	if r.Contacts != nil {
		out["socials"] = fiber.Map{
			"email":    r.Contacts.Email,
			"phone":    r.Contacts.Phone,
			"whatsapp": r.Contacts.Whatsapp,
			"telegram": r.Contacts.Telegram,
		}
	}
	return out
}

func proposalProjection(p *models.ServiceProposal) fiber.Map {
	skills := make([]string, 0, len(p.Skills))
	for _, s := range p.Skills {
		skills = append(skills, s.Name)
	}
	out := fiber.Map{
		"uuid":        p.ID,
		"title":       p.Title,
		"description": p.Description,
		"hourly_rate": p.HourlyRate,
		"skills":      skills,
		"category":    categoryLabel(p.Category),
		"created_at":  p.CreatedAt,
		"updated_at":  p.UpdatedAt,
	}
	if p.User != nil {
		out["user"] = userMin(p.User)
	}
	return out
}
