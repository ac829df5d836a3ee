package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/leeder-app/leeder-api/internal/models"
	"github.com/leeder-app/leeder-api/internal/store"
)

type DashboardHandler struct {
	Profiles *store.ProfileStore
}

func NewDashboardHandler(profiles *store.ProfileStore) *DashboardHandler {
	return &DashboardHandler{Profiles: profiles}
}

func (h *DashboardHandler) profileState(c *fiber.Ctx) (*models.Profile, bool, error) {
	userID, err := getAuth(c)
	if err != nil {
		return nil, false, err
	}

	p, err := h.Profiles.Get(userID)
	if err != nil {
		// a valid token for a deleted account is a dead session
		if errors.Is(err, store.ErrNotFound) {
			return nil, false, fiber.ErrUnauthorized
		}
		return nil, false, fiber.NewError(fiber.StatusInternalServerError, "failed to load profile")
	}

	completed := true
	switch p.Role {
	case models.RoleFreelancer:
		ext, err := h.Profiles.GetFreelancer(userID)
		if err != nil {
			return nil, false, fiber.NewError(fiber.StatusInternalServerError, "failed to load freelancer profile")
		}
		completed = ext.ProfileCompleted
	case models.RoleCompany:
		ext, err := h.Profiles.GetCompany(userID)
		if err != nil {
			return nil, false, fiber.NewError(fiber.StatusInternalServerError, "failed to load company profile")
		}
		completed = ext.ProfileCompleted
	}

	return p, completed, nil
}

// Me returns the signed-in identity the SPA hydrates its session from.
func (h *DashboardHandler) Me(c *fiber.Ctx) error {
	p, completed, err := h.profileState(c)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"id":                p.ID,
			"name":              p.Name,
			"email":             p.Email,
			"role":              p.Role,
			"photo_url":         p.PhotoURL,
			"profile_completed": completed,
		},
	})
}

// Dashboard is pure dispatch: it tells the client which view to render
// and whether onboarding still gates it. Admin may preview any view via
// ?view=; other roles always get their own.
func (h *DashboardHandler) Dashboard(c *fiber.Ctx) error {
	p, completed, err := h.profileState(c)
	if err != nil {
		return err
	}

	view := string(p.Role)
	if p.Role == models.RoleAdmin {
		switch v := c.Query("view"); v {
		case string(models.RoleFreelancer), string(models.RoleCompany):
			view = v
		default:
			view = string(models.RoleAdmin)
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"view":              view,
			"role":              p.Role,
			"profile_completed": completed,
		},
	})
}
