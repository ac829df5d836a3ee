package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// CompanyProfile is the 1:1 extension of a company Profile. Same lifecycle
// shape as FreelancerProfile: empty at sign-up, completed by the wizard.
type CompanyProfile struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"` // = profiles.id

	// Step 1 - identity
	CompanyName string `gorm:"type:varchar(150)" json:"company_name"`
	Siret       string `gorm:"type:varchar(14)" json:"siret"`
	Activity    string `gorm:"type:varchar(150)" json:"activity"`

	// Step 2 - contact
	ContactName string `gorm:"type:varchar(120)" json:"contact_name"`
	Address     string `gorm:"type:text" json:"address"`

	// Step 3 - sector & location
	Sector   string `gorm:"type:varchar(80)" json:"sector"`
	Location string `gorm:"type:varchar(120)" json:"location"`

	// Step 4 - mission types & requirements
	MissionTypes        datatypes.JSONSlice[string] `json:"mission_types"`
	SpecialRequirements string                      `gorm:"type:text" json:"special_requirements"`

	ProfileCompleted bool    `gorm:"default:false" json:"profile_completed"`
	RatingAverage    float64 `gorm:"default:0" json:"rating_average"`

	KbisDocumentURL string `gorm:"type:text" json:"kbis_document_url"` // upload not implemented

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (CompanyProfile) TableName() string { return "company_profiles" }
