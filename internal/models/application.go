package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationAccepted ApplicationStatus = "accepted"
	ApplicationRejected ApplicationStatus = "rejected"
)

func ValidApplicationStatus(s ApplicationStatus) bool {
	switch s {
	case ApplicationPending, ApplicationAccepted, ApplicationRejected:
		return true
	}
	return false
}

// Application is a freelancer's request to be assigned to a mission.
// The (mission_id, freelancer_id) pair is unique: a second application to
// the same mission by the same freelancer fails at the store.
type Application struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	MissionID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_mission_freelancer" json:"mission_id"`
	FreelancerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_mission_freelancer" json:"freelancer_id"`

	Message      string   `gorm:"type:text" json:"message"`
	Availability string   `gorm:"type:varchar(40)" json:"availability"` // "Immédiate" or a date
	ProposedRate *float64 `json:"proposed_rate,omitempty"`

	Status ApplicationStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Mission    *Mission `gorm:"foreignKey:MissionID" json:"mission,omitempty"`
	Freelancer *Profile `gorm:"foreignKey:FreelancerID" json:"freelancer,omitempty"`
}

func (Application) TableName() string { return "applications" }

func (a *Application) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}
