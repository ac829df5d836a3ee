package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/leeder-app/leeder-api/internal/models"
	"github.com/leeder-app/leeder-api/internal/onboarding"
	"github.com/leeder-app/leeder-api/internal/store"
)

type FreelancerOnboardingHandler struct {
	Profiles *store.ProfileStore
}

func NewFreelancerOnboardingHandler(profiles *store.ProfileStore) *FreelancerOnboardingHandler {
	return &FreelancerOnboardingHandler{Profiles: profiles}
}

func freelancerFormFromState(p *models.Profile, ext *models.FreelancerProfile) *onboarding.FreelancerForm {
	return &onboarding.FreelancerForm{
		Name:          p.Name,
		BirthDate:     ext.BirthDate,
		Nationality:   ext.Nationality,
		Address:       ext.Address,
		Email:         p.Email,
		Phone:         ext.Phone,
		Skills:        ext.Skills,
		Experience:    ext.Experience,
		Location:      ext.Location,
		MaxTravelTime: ext.MaxTravelTime,
		DistanceLimit: ext.DistanceLimit,
		IsAvailable:   ext.IsAvailable,
	}
}

func (h *FreelancerOnboardingHandler) loadState(c *fiber.Ctx) (*models.Profile, *models.FreelancerProfile, error) {
	userID, err := getAuth(c)
	if err != nil {
		return nil, nil, err
	}
	p, err := h.Profiles.Get(userID)
	if err != nil {
		return nil, nil, fiber.NewError(fiber.StatusInternalServerError, "failed to load profile")
	}
	ext, err := h.Profiles.GetFreelancer(userID)
	if err != nil {
		return nil, nil, fiber.NewError(fiber.StatusInternalServerError, "failed to load freelancer profile")
	}
	return p, ext, nil
}

// Get returns the saved wizard state: previously persisted values are
// pre-filled and the step points at the first incomplete one, so the
// wizard resumes where the user left off.
func (h *FreelancerOnboardingHandler) Get(c *fiber.Ctx) error {
	p, ext, err := h.loadState(c)
	if err != nil {
		return err
	}

	form := freelancerFormFromState(p, ext)

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"step":              onboarding.FirstIncompleteStep(form),
			"profile_completed": ext.ProfileCompleted,
			"profile": fiber.Map{
				"name":      p.Name,
				"email":     p.Email,
				"photo_url": p.PhotoURL,
			},
			"freelancer_profile": ext,
		},
	})
}

// Step 1 - identity
type freelancerStep1Req struct {
	Name        string `json:"name"`
	BirthDate   string `json:"birth_date"`
	Nationality string `json:"nationality"`
}

// Step 2 - contact (email is fixed from the profile)
type freelancerStep2Req struct {
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// Step 3 - skills & experience
type freelancerStep3Req struct {
	Skills     []string `json:"skills"`
	Experience string   `json:"experience"`
}

// Step 4 - location & availability
type freelancerStep4Req struct {
	Location      string `json:"location"`
	MaxTravelTime int    `json:"max_travel_time"`
	DistanceLimit int    `json:"distance_limit"`
	IsAvailable   *bool  `json:"is_available"`
}

// SaveStep validates and persists one step's fields. Validation failures
// save nothing; a successful save keeps profile_completed false so the
// dashboard gate stays closed until the final submit.
func (h *FreelancerOnboardingHandler) SaveStep(c *fiber.Ctx) error {
	p, ext, err := h.loadState(c)
	if err != nil {
		return err
	}
	if ext.ProfileCompleted {
		return fail200(c, "Profil déjà complété")
	}

	stepNum, err := c.ParamsInt("step")
	if err != nil {
		return fail200(c, "Étape invalide")
	}
	step := onboarding.Step(stepNum)
	if step < onboarding.FirstStep || step > onboarding.LastStep {
		return fail200(c, "Étape invalide")
	}

	form := freelancerFormFromState(p, ext)
	name := p.Name

	switch step {
	case 1:
		var req freelancerStep1Req
		if err := c.BodyParser(&req); err != nil {
			return fail200(c, "invalid body")
		}
		form.Name = strings.TrimSpace(req.Name)
		form.BirthDate = strings.TrimSpace(req.BirthDate)
		form.Nationality = strings.TrimSpace(req.Nationality)
		name = form.Name
	case 2:
		var req freelancerStep2Req
		if err := c.BodyParser(&req); err != nil {
			return fail200(c, "invalid body")
		}
		form.Address = strings.TrimSpace(req.Address)
		form.Phone = strings.TrimSpace(req.Phone)
	case 3:
		var req freelancerStep3Req
		if err := c.BodyParser(&req); err != nil {
			return fail200(c, "invalid body")
		}
		form.Skills = req.Skills
		form.Experience = strings.TrimSpace(req.Experience)
	case 4:
		var req freelancerStep4Req
		if err := c.BodyParser(&req); err != nil {
			return fail200(c, "invalid body")
		}
		form.Location = strings.TrimSpace(req.Location)
		form.MaxTravelTime = req.MaxTravelTime
		form.DistanceLimit = req.DistanceLimit
		if req.IsAvailable != nil {
			form.IsAvailable = *req.IsAvailable
		}
	}

	if missing := form.ValidateStep(step); len(missing) > 0 {
		return fail200(c, "Veuillez remplir tous les champs obligatoires",
			fiber.Map{"missing": missing})
	}

	applyFreelancerForm(ext, form)
	if err := h.Profiles.SaveFreelancerOnboarding(p.ID, name, p.PhotoURL, ext, false); err != nil {
		return fail500(c, "Erreur lors de la sauvegarde du profil")
	}

	return c.JSON(fiber.Map{"success": true, "data": ext})
}

// Submit persists the full accumulated form and opens the dashboard gate.
// Every step must validate; the first missing fields are reported.
func (h *FreelancerOnboardingHandler) Submit(c *fiber.Ctx) error {
	p, ext, err := h.loadState(c)
	if err != nil {
		return err
	}
	if ext.ProfileCompleted {
		return fail200(c, "Profil déjà complété")
	}

	form := freelancerFormFromState(p, ext)
	w := onboarding.Resume(form, onboarding.LastStep)

	if missing := w.Complete(); len(missing) > 0 {
		return fail200(c, "Profil incomplet", fiber.Map{"missing": missing})
	}

	applyFreelancerForm(ext, form)
	if err := h.Profiles.SaveFreelancerOnboarding(p.ID, form.Name, p.PhotoURL, ext, true); err != nil {
		return fail500(c, "Erreur lors de la sauvegarde du profil")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Profil complété avec succès",
		"data":    ext,
	})
}

func applyFreelancerForm(ext *models.FreelancerProfile, form *onboarding.FreelancerForm) {
	ext.BirthDate = form.BirthDate
	ext.Nationality = form.Nationality
	ext.Address = form.Address
	ext.Phone = form.Phone
	ext.Skills = form.Skills
	ext.Experience = form.Experience
	ext.Location = form.Location
	ext.MaxTravelTime = form.MaxTravelTime
	ext.DistanceLimit = form.DistanceLimit
	ext.IsAvailable = form.IsAvailable
}
