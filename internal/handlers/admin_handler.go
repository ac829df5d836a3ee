package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/leeder-app/leeder-api/internal/models"
	"github.com/leeder-app/leeder-api/internal/store"
)

// AdminHandler is a capability overlay on the same stores: unrestricted
// listing, status toggles and hard deletes, but no arbitrary field edits.
type AdminHandler struct {
	Profiles     *store.ProfileStore
	Missions     *store.MissionStore
	Applications *store.ApplicationStore
}

func NewAdminHandler(profiles *store.ProfileStore, missions *store.MissionStore, applications *store.ApplicationStore) *AdminHandler {
	return &AdminHandler{Profiles: profiles, Missions: missions, Applications: applications}
}

func parseIDParam(c *fiber.Ctx) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params("id"))
	return id, err == nil
}

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	profiles, err := h.Profiles.ListAll()
	if err != nil {
		return fail500(c, "Erreur lors du chargement des utilisateurs")
	}
	return c.JSON(fiber.Map{"success": true, "data": profiles})
}

func (h *AdminHandler) ListMissions(c *fiber.Ctx) error {
	missions, err := h.Missions.ListAll()
	if err != nil {
		return fail500(c, "Erreur lors du chargement des missions")
	}
	return c.JSON(fiber.Map{"success": true, "data": missions})
}

func (h *AdminHandler) ListApplications(c *fiber.Ctx) error {
	apps, err := h.Applications.ListAll()
	if err != nil {
		return fail500(c, "Erreur lors du chargement des candidatures")
	}

	out := make([]ApplicationResponse, 0, len(apps))
	for i := range apps {
		out = append(out, toApplicationResponse(&apps[i]))
	}
	return c.JSON(fiber.Map{"success": true, "data": out})
}

type adminStatusReq struct {
	Status string `json:"status"`
}

// SetMissionStatus moves any mission to any status, no ownership check.
func (h *AdminHandler) SetMissionStatus(c *fiber.Ctx) error {
	id, ok := parseIDParam(c)
	if !ok {
		return fail200(c, "Identifiant invalide")
	}

	var req adminStatusReq
	if err := c.BodyParser(&req); err != nil {
		return fail200(c, "invalid body")
	}

	status := models.MissionStatus(strings.TrimSpace(req.Status))
	if !models.ValidMissionStatus(status) {
		return fail200(c, "Statut de mission invalide")
	}

	if err := h.Missions.SetStatus(id, status); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "Mission introuvable",
			})
		}
		return fail500(c, "Erreur lors de la mise à jour du statut")
	}

	return c.JSON(fiber.Map{"success": true, "message": "Statut mis à jour"})
}

func (h *AdminHandler) SetApplicationStatus(c *fiber.Ctx) error {
	id, ok := parseIDParam(c)
	if !ok {
		return fail200(c, "Identifiant invalide")
	}

	var req adminStatusReq
	if err := c.BodyParser(&req); err != nil {
		return fail200(c, "invalid body")
	}

	status := models.ApplicationStatus(strings.TrimSpace(req.Status))
	if !models.ValidApplicationStatus(status) {
		return fail200(c, "Statut de candidature invalide")
	}

	if err := h.Applications.SetStatus(id, status); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "Candidature introuvable",
			})
		}
		return fail500(c, "Erreur lors de la mise à jour du statut")
	}

	return c.JSON(fiber.Map{"success": true, "message": "Statut mis à jour"})
}

func (h *AdminHandler) DeleteMission(c *fiber.Ctx) error {
	id, ok := parseIDParam(c)
	if !ok {
		return fail200(c, "Identifiant invalide")
	}

	if err := h.Missions.Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "Mission introuvable",
			})
		}
		return fail500(c, "Erreur lors de la suppression")
	}

	return c.JSON(fiber.Map{"success": true, "message": "Mission supprimée définitivement"})
}

func (h *AdminHandler) DeleteApplication(c *fiber.Ctx) error {
	id, ok := parseIDParam(c)
	if !ok {
		return fail200(c, "Identifiant invalide")
	}

	if err := h.Applications.Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "Candidature introuvable",
			})
		}
		return fail500(c, "Erreur lors de la suppression")
	}

	return c.JSON(fiber.Map{"success": true, "message": "Candidature supprimée définitivement"})
}

// DeleteUser removes the profile and everything hanging off it: the
// extension row, their missions (with applications) or applications.
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	id, ok := parseIDParam(c)
	if !ok {
		return fail200(c, "Identifiant invalide")
	}

	if err := h.Profiles.Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "Utilisateur introuvable",
			})
		}
		return fail500(c, "Erreur lors de la suppression")
	}

	return c.JSON(fiber.Map{"success": true, "message": "Utilisateur supprimé définitivement"})
}

// Stats powers the admin dashboard cards.
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	freelancers, err := h.Profiles.CountByRole(models.RoleFreelancer)
	if err != nil {
		return fail500(c, "Erreur lors du calcul des statistiques")
	}
	companies, err := h.Profiles.CountByRole(models.RoleCompany)
	if err != nil {
		return fail500(c, "Erreur lors du calcul des statistiques")
	}
	openMissions, err := h.Missions.CountByStatus(models.MissionOpen)
	if err != nil {
		return fail500(c, "Erreur lors du calcul des statistiques")
	}
	completedMissions, err := h.Missions.CountByStatus(models.MissionCompleted)
	if err != nil {
		return fail500(c, "Erreur lors du calcul des statistiques")
	}
	applications, err := h.Applications.Count()
	if err != nil {
		return fail500(c, "Erreur lors du calcul des statistiques")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"freelancers":        freelancers,
			"companies":          companies,
			"open_missions":      openMissions,
			"completed_missions": completedMissions,
			"applications":       applications,
		},
	})
}
