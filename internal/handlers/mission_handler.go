package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/leeder-app/leeder-api/internal/models"
	"github.com/leeder-app/leeder-api/internal/notify"
	"github.com/leeder-app/leeder-api/internal/store"
)

type MissionHandler struct {
	Missions *store.MissionStore
	Notifier *notify.Publisher
}

func NewMissionHandler(missions *store.MissionStore, notifier *notify.Publisher) *MissionHandler {
	return &MissionHandler{Missions: missions, Notifier: notifier}
}

type CreateMissionReq struct {
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	Location        string  `json:"location"`
	HourlyRate      float64 `json:"hourly_rate"`
	Duration        string  `json:"duration"`
	Skills          string  `json:"skills"` // comma-separated
	EquipmentNeeded string  `json:"equipment_needed"`
}

// Create posts a new mission for the signed-in company. The mission
// always starts open.
func (h *MissionHandler) Create(c *fiber.Ctx) error {
	companyID, err := getAuth(c)
	if err != nil {
		return err
	}

	var req CreateMissionReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid body",
		})
	}

	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)
	location := strings.TrimSpace(req.Location)

	errs := FieldErrors{}
	if title == "" {
		errs.Add("title", "Le titre est obligatoire")
	}
	if description == "" {
		errs.Add("description", "La description est obligatoire")
	}
	if location == "" {
		errs.Add("location", "La localisation est obligatoire")
	}
	if req.HourlyRate <= 0 {
		errs.Add("hourly_rate", "Le taux horaire doit être un nombre positif")
	}
	if len(errs) > 0 {
		return validationFail(c, errs)
	}

	m := models.Mission{
		CompanyID:       companyID,
		Title:           title,
		Description:     description,
		Location:        location,
		HourlyRate:      req.HourlyRate,
		Duration:        strings.TrimSpace(req.Duration),
		SkillsRequired:  models.SplitSkills(req.Skills),
		EquipmentNeeded: strings.TrimSpace(req.EquipmentNeeded),
	}

	if err := h.Missions.Create(&m); err != nil {
		return fail500(c, "Erreur lors de la création de la mission")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Mission créée avec succès",
		"data":    m,
	})
}

// ListMine returns the company's own missions, newest first.
func (h *MissionHandler) ListMine(c *fiber.Ctx) error {
	companyID, err := getAuth(c)
	if err != nil {
		return err
	}

	missions, err := h.Missions.ListByCompany(companyID)
	if err != nil {
		return fail500(c, "Erreur lors du chargement des missions")
	}

	return c.JSON(fiber.Map{"success": true, "data": missions})
}

// Browse is the freelancer view: every open mission, newest first.
func (h *MissionHandler) Browse(c *fiber.Ctx) error {
	missions, err := h.Missions.ListOpen()
	if err != nil {
		return fail500(c, "Erreur lors du chargement des missions")
	}

	return c.JSON(fiber.Map{"success": true, "data": missions})
}

type setMissionStatusReq struct {
	Status string `json:"status"`
}

// SetStatus moves an owned mission to any of the four statuses. There is
// no transition graph: completed back to open is allowed.
func (h *MissionHandler) SetStatus(c *fiber.Ctx) error {
	companyID, err := getAuth(c)
	if err != nil {
		return err
	}

	missionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail200(c, "Identifiant de mission invalide")
	}

	var req setMissionStatusReq
	if err := c.BodyParser(&req); err != nil {
		return fail200(c, "invalid body")
	}

	newStatus := models.MissionStatus(strings.TrimSpace(req.Status))
	if !models.ValidMissionStatus(newStatus) {
		return fail200(c, "Statut de mission invalide")
	}

	m, err := h.Missions.Get(missionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "Mission introuvable",
			})
		}
		return fail500(c, "Erreur serveur")
	}
	if m.CompanyID != companyID {
		return fiber.NewError(fiber.StatusForbidden, "forbidden: not the mission owner")
	}

	if err := h.Missions.SetStatus(missionID, newStatus); err != nil {
		return fail500(c, "Erreur lors de la mise à jour du statut")
	}

	if m.AssignedFreelancerID != nil {
		h.Notifier.Publish(context.Background(), notify.EventsChannel, notify.Event{
			Type:   notify.EventMissionStatus,
			UserID: *m.AssignedFreelancerID,
			Payload: map[string]any{
				"mission_id":    m.ID,
				"mission_title": m.Title,
				"status":        newStatus,
			},
		})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Statut mis à jour"})
}

// Delete hard-deletes an owned mission and its applications. The action
// is irreversible; the client confirms before calling.
func (h *MissionHandler) Delete(c *fiber.Ctx) error {
	companyID, err := getAuth(c)
	if err != nil {
		return err
	}

	missionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail200(c, "Identifiant de mission invalide")
	}

	m, err := h.Missions.Get(missionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "Mission introuvable",
			})
		}
		return fail500(c, "Erreur serveur")
	}
	if m.CompanyID != companyID {
		return fiber.NewError(fiber.StatusForbidden, "forbidden: not the mission owner")
	}

	if err := h.Missions.Delete(missionID); err != nil {
		return fail500(c, "Erreur lors de la suppression")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Mission supprimée définitivement",
	})
}
