package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// FreelancerProfile is the 1:1 extension of a freelancer Profile.
// Created empty at sign-up, filled by the onboarding wizard;
// ProfileCompleted gates dashboard access.
type FreelancerProfile struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"` // = profiles.id

	// Step 1 - identity
	BirthDate   string `gorm:"type:varchar(10)" json:"birth_date"` // YYYY-MM-DD
	Nationality string `gorm:"type:varchar(80)" json:"nationality"`

	// Step 2 - contact
	Address string `gorm:"type:text" json:"address"`
	Phone   string `gorm:"type:varchar(30)" json:"phone"`

	// Step 3 - skills & experience
	Skills     datatypes.JSONSlice[string] `json:"skills"`
	Experience string                      `gorm:"type:text" json:"experience"`

	// Step 4 - location & availability
	Location      string `gorm:"type:varchar(120)" json:"location"`
	MaxTravelTime int    `json:"max_travel_time"` // minutes
	DistanceLimit int    `json:"distance_limit"`  // km
	IsAvailable   bool   `gorm:"default:true" json:"is_available"`

	HourlyRate       float64 `json:"hourly_rate"`
	ProfileCompleted bool    `gorm:"default:false" json:"profile_completed"`

	RatingAverage     float64 `gorm:"default:0" json:"rating_average"`
	MissionsCompleted int     `gorm:"default:0" json:"missions_completed"`

	IDDocumentURL string `gorm:"type:text" json:"id_document_url"` // upload not implemented

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (FreelancerProfile) TableName() string { return "freelancer_profiles" }
