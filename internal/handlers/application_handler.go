package handlers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/leeder-app/leeder-api/internal/models"
	"github.com/leeder-app/leeder-api/internal/notify"
	"github.com/leeder-app/leeder-api/internal/store"
)

type ApplicationHandler struct {
	Applications *store.ApplicationStore
	Missions     *store.MissionStore
	Notifier     *notify.Publisher
}

func NewApplicationHandler(applications *store.ApplicationStore, missions *store.MissionStore, notifier *notify.Publisher) *ApplicationHandler {
	return &ApplicationHandler{Applications: applications, Missions: missions, Notifier: notifier}
}

type ApplyReq struct {
	Message      string   `json:"message"`
	Availability string   `json:"availability"`  // "Immédiate" or "dd/mm/yyyy"
	ProposedRate *float64 `json:"proposed_rate"` // defaults to the mission rate client-side
}

// Apply submits a pending application from the signed-in freelancer to an
// open mission. A second application to the same mission fails with a
// dedicated conflict answer, never a generic error.
func (h *ApplicationHandler) Apply(c *fiber.Ctx) error {
	freelancerID, err := getAuth(c)
	if err != nil {
		return err
	}

	missionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail200(c, "Identifiant de mission invalide")
	}

	var req ApplyReq
	if err := c.BodyParser(&req); err != nil {
		return fail200(c, "invalid body")
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
	if m.Status != models.MissionOpen {
		return fail200(c, "Cette mission n'est plus ouverte aux candidatures")
	}

	a := models.Application{
		MissionID:    missionID,
		FreelancerID: freelancerID,
		Message:      strings.TrimSpace(req.Message),
		Availability: strings.TrimSpace(req.Availability),
		ProposedRate: req.ProposedRate,
	}

	if err := h.Applications.Create(&a); err != nil {
		if errors.Is(err, store.ErrDuplicateApplication) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"success": false,
				"message": "Vous avez déjà postulé à cette mission",
			})
		}
		return fail500(c, "Erreur lors de l'envoi de la candidature")
	}

	h.Notifier.Publish(context.Background(), notify.EventsChannel, notify.Event{
		Type:   notify.EventApplicationSubmitted,
		UserID: m.CompanyID,
		Payload: map[string]any{
			"application_id": a.ID,
			"mission_id":     m.ID,
			"mission_title":  m.Title,
			"freelancer_id":  freelancerID,
		},
	})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Candidature envoyée",
		"data":    a,
	})
}

// ListMine returns the freelancer's own applications, newest first.
func (h *ApplicationHandler) ListMine(c *fiber.Ctx) error {
	freelancerID, err := getAuth(c)
	if err != nil {
		return err
	}

	apps, err := h.Applications.ListByFreelancer(freelancerID)
	if err != nil {
		return fail500(c, "Erreur lors du chargement des candidatures")
	}

	out := make([]fiber.Map, 0, len(apps))
	for i := range apps {
		a := &apps[i]
		item := fiber.Map{
			"id":            a.ID,
			"status":        a.Status,
			"message":       a.Message,
			"availability":  a.Availability,
			"proposed_rate": a.ProposedRate,
			"created_at":    a.CreatedAt,
		}
		if a.Mission != nil {
			companyName := ""
			if a.Mission.Company != nil {
				companyName = a.Mission.Company.Name
			}
			item["mission"] = fiber.Map{
				"id":           a.Mission.ID,
				"title":        a.Mission.Title,
				"location":     a.Mission.Location,
				"hourly_rate":  a.Mission.HourlyRate,
				"status":       a.Mission.Status,
				"company_name": companyName,
			}
		}
		out = append(out, item)
	}

	return c.JSON(fiber.Map{"success": true, "data": out})
}

// ApplicationResponse is the company-side DTO: the application with the
// freelancer identity and extension profile inline plus the mission
// summary.
type ApplicationResponse struct {
	ID           string    `json:"id"`
	Status       string    `json:"status"`
	Message      string    `json:"message"`
	Availability string    `json:"availability"`
	ProposedRate *float64  `json:"proposed_rate,omitempty"`
	CreatedAt    time.Time `json:"created_at"`

	Freelancer *FreelancerMini `json:"freelancer,omitempty"`
	Mission    *MissionMini    `json:"mission,omitempty"`
}

type FreelancerMini struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	PhotoURL string `json:"photo_url,omitempty"`

	Skills        []string `json:"skills,omitempty"`
	RatingAverage float64  `json:"rating_average"`
	Location      string   `json:"location,omitempty"`
	DistanceLimit int      `json:"distance_limit,omitempty"`
	HourlyRate    float64  `json:"hourly_rate,omitempty"`
	Experience    string   `json:"experience,omitempty"`
}

type MissionMini struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	HourlyRate float64 `json:"hourly_rate"`
}

func toApplicationResponse(a *models.Application) ApplicationResponse {
	resp := ApplicationResponse{
		ID:           a.ID.String(),
		Status:       string(a.Status),
		Message:      a.Message,
		Availability: a.Availability,
		ProposedRate: a.ProposedRate,
		CreatedAt:    a.CreatedAt,
	}

	if a.Freelancer != nil {
		resp.Freelancer = &FreelancerMini{
			ID:       a.Freelancer.ID.String(),
			Name:     a.Freelancer.Name,
			PhotoURL: a.Freelancer.PhotoURL,
		}
		if fp := a.Freelancer.FreelancerProfile; fp != nil {
			resp.Freelancer.Skills = fp.Skills
			resp.Freelancer.RatingAverage = fp.RatingAverage
			resp.Freelancer.Location = fp.Location
			resp.Freelancer.DistanceLimit = fp.DistanceLimit
			resp.Freelancer.HourlyRate = fp.HourlyRate
			resp.Freelancer.Experience = fp.Experience
		}
	}

	if a.Mission != nil {
		resp.Mission = &MissionMini{
			ID:         a.Mission.ID.String(),
			Title:      a.Mission.Title,
			HourlyRate: a.Mission.HourlyRate,
		}
	}

	return resp
}

// ListForCompany returns every application received on the company's
// missions, enriched with the freelancer profiles.
func (h *ApplicationHandler) ListForCompany(c *fiber.Ctx) error {
	companyID, err := getAuth(c)
	if err != nil {
		return err
	}

	apps, err := h.Applications.ListForCompany(companyID)
	if err != nil {
		return fail500(c, "Erreur lors du chargement des candidatures")
	}

	out := make([]ApplicationResponse, 0, len(apps))
	for i := range apps {
		out = append(out, toApplicationResponse(&apps[i]))
	}

	return c.JSON(fiber.Map{"success": true, "data": out})
}

type setApplicationStatusReq struct {
	Status string `json:"status"`
}

// SetStatus lets the mission's owning company accept or reject an
// application. Acceptance publishes the contract-generation trigger for
// the downstream service; nothing is generated here.
func (h *ApplicationHandler) SetStatus(c *fiber.Ctx) error {
	companyID, err := getAuth(c)
	if err != nil {
		return err
	}

	appID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail200(c, "Identifiant de candidature invalide")
	}

	var req setApplicationStatusReq
	if err := c.BodyParser(&req); err != nil {
		return fail200(c, "invalid body")
	}

	newStatus := models.ApplicationStatus(strings.TrimSpace(req.Status))
	if !models.ValidApplicationStatus(newStatus) {
		return fail200(c, "Statut de candidature invalide")
	}

	a, err := h.Applications.Get(appID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "Candidature introuvable",
			})
		}
		return fail500(c, "Erreur serveur")
	}
	if a.Mission == nil || a.Mission.CompanyID != companyID {
		return fiber.NewError(fiber.StatusForbidden, "forbidden: not the mission owner")
	}

	if err := h.Applications.SetStatus(appID, newStatus); err != nil {
		return fail500(c, "Erreur lors de la mise à jour du statut")
	}

	h.Notifier.Publish(context.Background(), notify.EventsChannel, notify.Event{
		Type:   notify.EventApplicationStatus,
		UserID: a.FreelancerID,
		Payload: map[string]any{
			"application_id": a.ID,
			"mission_id":     a.MissionID,
			"status":         newStatus,
		},
	})

	message := "Statut de candidature mis à jour"
	if newStatus == models.ApplicationAccepted {
		h.Notifier.Publish(context.Background(), notify.ContractsChannel, notify.Event{
			Type:   notify.EventContractGenerate,
			UserID: a.FreelancerID,
			Payload: map[string]any{
				"application_id": a.ID,
				"mission_id":     a.MissionID,
				"company_id":     companyID,
			},
		})
		message = "Candidature acceptée. Le contrat va être généré automatiquement."
	}

	return c.JSON(fiber.Map{"success": true, "message": message})
}
