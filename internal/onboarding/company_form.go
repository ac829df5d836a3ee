package onboarding

// CompanyForm holds the company wizard fields: identity, contact,
// sector/location, mission types.
type CompanyForm struct {
	// Step 1 - identity
	CompanyName string
	Siret       string
	Activity    string

	// Step 2 - contact
	ContactName string
	Address     string

	// Step 3 - sector & location
	Sector   string
	Location string

	// Step 4 - mission types & requirements
	MissionTypes        []string
	SpecialRequirements string // optional
}

func (f *CompanyForm) ValidateStep(step Step) []string {
	var missing []string
	switch step {
	case 1:
		if blank(f.CompanyName) {
			missing = append(missing, "company_name")
		}
		if blank(f.Siret) {
			missing = append(missing, "siret")
		}
		if blank(f.Activity) {
			missing = append(missing, "activity")
		}
	case 2:
		if blank(f.ContactName) {
			missing = append(missing, "contact_name")
		}
		if blank(f.Address) {
			missing = append(missing, "address")
		}
	case 3:
		if blank(f.Sector) {
			missing = append(missing, "sector")
		}
		if blank(f.Location) {
			missing = append(missing, "location")
		}
	case 4:
		if len(f.MissionTypes) == 0 {
			missing = append(missing, "mission_types")
		}
	}
	return missing
}
