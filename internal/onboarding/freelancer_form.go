package onboarding

import "strings"

// FreelancerForm holds the freelancer wizard fields, grouped by the step
// that owns them: identity, contact, skills/experience,
// location/availability.
type FreelancerForm struct {
	// Step 1 - identity
	Name        string
	BirthDate   string
	Nationality string

	// Step 2 - contact
	Address string
	Email   string
	Phone   string

	// Step 3 - skills & experience
	Skills     []string
	Experience string

	// Step 4 - location & availability
	Location      string
	MaxTravelTime int
	DistanceLimit int
	IsAvailable   bool
}

func (f *FreelancerForm) ValidateStep(step Step) []string {
	var missing []string
	switch step {
	case 1:
		if blank(f.Name) {
			missing = append(missing, "name")
		}
		if blank(f.BirthDate) {
			missing = append(missing, "birth_date")
		}
		if blank(f.Nationality) {
			missing = append(missing, "nationality")
		}
	case 2:
		if blank(f.Address) {
			missing = append(missing, "address")
		}
		if blank(f.Email) {
			missing = append(missing, "email")
		}
		if blank(f.Phone) {
			missing = append(missing, "phone")
		}
	case 3:
		if len(f.Skills) == 0 {
			missing = append(missing, "skills")
		}
		if blank(f.Experience) {
			missing = append(missing, "experience")
		}
	case 4:
		if blank(f.Location) {
			missing = append(missing, "location")
		}
		if f.MaxTravelTime <= 0 {
			missing = append(missing, "max_travel_time")
		}
		if f.DistanceLimit <= 0 {
			missing = append(missing, "distance_limit")
		}
	}
	return missing
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
