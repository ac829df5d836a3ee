package onboarding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filledFreelancerForm() *FreelancerForm {
	return &FreelancerForm{
		Name:          "Alex Martin",
		BirthDate:     "1995-04-02",
		Nationality:   "Française",
		Address:       "12 rue des Halles",
		Email:         "alex@test",
		Phone:         "0601020304",
		Skills:        []string{"Merchandising"},
		Experience:    "3 ans en grande distribution",
		Location:      "Paris",
		MaxTravelTime: 45,
		DistanceLimit: 30,
	}
}

func filledCompanyForm() *CompanyForm {
	return &CompanyForm{
		CompanyName:  "Retail Force",
		Siret:        "12345678900011",
		Activity:     "Merchandising externalisé",
		ContactName:  "Claire Dupont",
		Address:      "8 avenue de l'Opéra",
		Sector:       "Grande distribution",
		Location:     "Paris",
		MissionTypes: []string{"Facing", "Inventaire"},
	}
}

func TestStepValidationIndependentOfLaterSteps(t *testing.T) {
	// only step 1 filled: step 1 passes even though steps 2-4 are blank
	f := &FreelancerForm{Name: "Alex", BirthDate: "1995-04-02", Nationality: "Française"}

	assert.Empty(t, f.ValidateStep(1))
	assert.NotEmpty(t, f.ValidateStep(2))
	assert.NotEmpty(t, f.ValidateStep(3))
	assert.NotEmpty(t, f.ValidateStep(4))
}

func TestValidateStepReportsBlankFields(t *testing.T) {
	f := &FreelancerForm{Name: "  ", BirthDate: "1995-04-02"}
	missing := f.ValidateStep(1)
	assert.ElementsMatch(t, []string{"name", "nationality"}, missing,
		"whitespace-only counts as blank")
}

func TestMultiSelectNeedsAtLeastOne(t *testing.T) {
	f := filledFreelancerForm()
	f.Skills = nil
	assert.Contains(t, f.ValidateStep(3), "skills")

	c := filledCompanyForm()
	c.MissionTypes = []string{}
	assert.Equal(t, []string{"mission_types"}, c.ValidateStep(4))
}

func TestCompanySpecialRequirementsOptional(t *testing.T) {
	c := filledCompanyForm()
	c.SpecialRequirements = ""
	assert.Empty(t, c.ValidateStep(4))
}

func TestNextBlockedByCurrentStep(t *testing.T) {
	w := New(&FreelancerForm{})

	missing := w.Next()
	assert.NotEmpty(t, missing)
	assert.Equal(t, FirstStep, w.Step, "a blocked Next does not move")
}

func TestNextAdvancesThroughValidSteps(t *testing.T) {
	w := New(filledFreelancerForm())

	for i := 0; i < 3; i++ {
		require.Empty(t, w.Next())
	}
	assert.Equal(t, LastStep, w.Step)

	// Next on the last step is a no-op, not an overflow
	assert.Empty(t, w.Next())
	assert.Equal(t, LastStep, w.Step)
}

func TestPreviousFloorsAtFirstStep(t *testing.T) {
	w := New(filledFreelancerForm())
	w.Previous()
	assert.Equal(t, FirstStep, w.Step)

	require.Empty(t, w.Next())
	w.Previous()
	assert.Equal(t, FirstStep, w.Step)
}

func TestResumeClamps(t *testing.T) {
	f := filledFreelancerForm()
	assert.Equal(t, FirstStep, Resume(f, -2).Step)
	assert.Equal(t, Step(3), Resume(f, 3).Step)
	assert.Equal(t, LastStep, Resume(f, 9).Step)
}

func TestCompleteCollectsEveryMissingField(t *testing.T) {
	f := filledCompanyForm()
	f.Siret = ""
	f.MissionTypes = nil

	w := Resume(f, LastStep)
	missing := w.Complete()
	assert.ElementsMatch(t, []string{"siret", "mission_types"}, missing)

	f.Siret = "12345678900011"
	f.MissionTypes = []string{"Facing"}
	assert.Empty(t, w.Complete())
}

func TestFirstIncompleteStep(t *testing.T) {
	f := filledFreelancerForm()
	assert.Equal(t, LastStep, FirstIncompleteStep(f), "a finished form resumes at the last step")

	f.Phone = ""
	assert.Equal(t, Step(2), FirstIncompleteStep(f))

	empty := &FreelancerForm{}
	assert.Equal(t, FirstStep, FirstIncompleteStep(empty))
}
