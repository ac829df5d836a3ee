package handlers

import "github.com/gofiber/fiber/v2"

// Option lists the onboarding and mission forms select from. Kept in
// code: they change with product releases, not with user actions.
var (
	skillOptions = []string{
		"Merchandising",
		"Mise en rayon",
		"PLV",
		"Animation commerciale",
		"Inventaire",
		"Facing",
		"Théâtralisation",
		"Implantation",
	}

	missionTypeOptions = []string{
		"Merchandising",
		"Mise en rayon",
		"PLV",
		"Animation commerciale",
		"Inventaire",
		"Facing",
		"Théâtralisation",
		"Implantation",
		"Audit terrain",
		"Formation",
	}

	sectorOptions = []string{
		"Grande distribution",
		"Commerce spécialisé",
		"Retail",
		"Cosmétique",
		"Alimentaire",
		"Textile",
		"Électronique",
		"Bricolage",
		"Autre",
	}
)

type ReferentialHandler struct{}

func NewReferentialHandler() *ReferentialHandler {
	return &ReferentialHandler{}
}

// List returns every option list in one call; the SPA caches them.
func (h *ReferentialHandler) List(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"skills":        skillOptions,
			"mission_types": missionTypeOptions,
			"sectors":       sectorOptions,
		},
	})
}
