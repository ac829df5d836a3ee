package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/leeder-app/leeder-api/internal/models"
	"github.com/leeder-app/leeder-api/internal/onboarding"
	"github.com/leeder-app/leeder-api/internal/store"
)

type CompanyOnboardingHandler struct {
	Profiles *store.ProfileStore
}

func NewCompanyOnboardingHandler(profiles *store.ProfileStore) *CompanyOnboardingHandler {
	return &CompanyOnboardingHandler{Profiles: profiles}
}

func companyFormFromState(ext *models.CompanyProfile) *onboarding.CompanyForm {
	return &onboarding.CompanyForm{
		CompanyName:         ext.CompanyName,
		Siret:               ext.Siret,
		Activity:            ext.Activity,
		ContactName:         ext.ContactName,
		Address:             ext.Address,
		Sector:              ext.Sector,
		Location:            ext.Location,
		MissionTypes:        ext.MissionTypes,
		SpecialRequirements: ext.SpecialRequirements,
	}
}

func (h *CompanyOnboardingHandler) loadState(c *fiber.Ctx) (*models.Profile, *models.CompanyProfile, error) {
	userID, err := getAuth(c)
	if err != nil {
		return nil, nil, err
	}
	p, err := h.Profiles.Get(userID)
	if err != nil {
		return nil, nil, fiber.NewError(fiber.StatusInternalServerError, "failed to load profile")
	}
	ext, err := h.Profiles.GetCompany(userID)
	if err != nil {
		return nil, nil, fiber.NewError(fiber.StatusInternalServerError, "failed to load company profile")
	}
	return p, ext, nil
}

// Get returns the saved wizard state with the resumable step.
func (h *CompanyOnboardingHandler) Get(c *fiber.Ctx) error {
	p, ext, err := h.loadState(c)
	if err != nil {
		return err
	}

	form := companyFormFromState(ext)

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"step":              onboarding.FirstIncompleteStep(form),
			"profile_completed": ext.ProfileCompleted,
			"profile": fiber.Map{
				"name":  p.Name,
				"email": p.Email,
			},
			"company_profile": ext,
		},
	})
}

type companyStep1Req struct {
	CompanyName string `json:"company_name"`
	Siret       string `json:"siret"`
	Activity    string `json:"activity"`
}

type companyStep2Req struct {
	ContactName string `json:"contact_name"`
	Address     string `json:"address"`
}

type companyStep3Req struct {
	Sector   string `json:"sector"`
	Location string `json:"location"`
}

type companyStep4Req struct {
	MissionTypes        []string `json:"mission_types"`
	SpecialRequirements string   `json:"special_requirements"`
}

// SaveStep validates and persists one step; profile_completed stays
// false until Submit.
func (h *CompanyOnboardingHandler) SaveStep(c *fiber.Ctx) error {
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

	form := companyFormFromState(ext)

	switch step {
	case 1:
		var req companyStep1Req
		if err := c.BodyParser(&req); err != nil {
			return fail200(c, "invalid body")
		}
		form.CompanyName = strings.TrimSpace(req.CompanyName)
		form.Siret = strings.TrimSpace(req.Siret)
		form.Activity = strings.TrimSpace(req.Activity)
	case 2:
		var req companyStep2Req
		if err := c.BodyParser(&req); err != nil {
			return fail200(c, "invalid body")
		}
		form.ContactName = strings.TrimSpace(req.ContactName)
		form.Address = strings.TrimSpace(req.Address)
	case 3:
		var req companyStep3Req
		if err := c.BodyParser(&req); err != nil {
			return fail200(c, "invalid body")
		}
		form.Sector = strings.TrimSpace(req.Sector)
		form.Location = strings.TrimSpace(req.Location)
	case 4:
		var req companyStep4Req
		if err := c.BodyParser(&req); err != nil {
			return fail200(c, "invalid body")
		}
		form.MissionTypes = req.MissionTypes
		form.SpecialRequirements = strings.TrimSpace(req.SpecialRequirements)
	}

	if missing := form.ValidateStep(step); len(missing) > 0 {
		return fail200(c, "Veuillez remplir tous les champs obligatoires",
			fiber.Map{"missing": missing})
	}

	applyCompanyForm(ext, form)
	if err := h.Profiles.SaveCompanyOnboarding(p.ID, ext, false); err != nil {
		return fail500(c, "Erreur lors de la sauvegarde du profil")
	}

	return c.JSON(fiber.Map{"success": true, "data": ext})
}

// Submit validates the whole form and opens the dashboard gate.
func (h *CompanyOnboardingHandler) Submit(c *fiber.Ctx) error {
	p, ext, err := h.loadState(c)
	if err != nil {
		return err
	}
	if ext.ProfileCompleted {
		return fail200(c, "Profil déjà complété")
	}

	form := companyFormFromState(ext)
	w := onboarding.Resume(form, onboarding.LastStep)

	if missing := w.Complete(); len(missing) > 0 {
		return fail200(c, "Profil incomplet", fiber.Map{"missing": missing})
	}

	applyCompanyForm(ext, form)
	if err := h.Profiles.SaveCompanyOnboarding(p.ID, ext, true); err != nil {
		return fail500(c, "Erreur lors de la sauvegarde du profil")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Profil complété avec succès",
		"data":    ext,
	})
}

func applyCompanyForm(ext *models.CompanyProfile, form *onboarding.CompanyForm) {
	ext.CompanyName = form.CompanyName
	ext.Siret = form.Siret
	ext.Activity = form.Activity
	ext.ContactName = form.ContactName
	ext.Address = form.Address
	ext.Sector = form.Sector
	ext.Location = form.Location
	ext.MissionTypes = form.MissionTypes
	ext.SpecialRequirements = form.SpecialRequirements
}
