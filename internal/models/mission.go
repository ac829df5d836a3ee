package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type MissionStatus string

const (
	MissionOpen       MissionStatus = "open"
	MissionInProgress MissionStatus = "in_progress"
	MissionCompleted  MissionStatus = "completed"
	MissionCancelled  MissionStatus = "cancelled"
)

// ValidMissionStatus checks enum membership only. Any status is reachable
// from any other; there is no transition graph.
func ValidMissionStatus(s MissionStatus) bool {
	switch s {
	case MissionOpen, MissionInProgress, MissionCompleted, MissionCancelled:
		return true
	}
	return false
}

type Mission struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index" json:"company_id"` // owner, immutable

	Title       string  `gorm:"not null" json:"title"`
	Description string  `gorm:"type:text;not null" json:"description"`
	Location    string  `gorm:"not null" json:"location"`
	HourlyRate  float64 `gorm:"not null" json:"hourly_rate"`
	Duration    string  `gorm:"type:varchar(80)" json:"duration"`

	SkillsRequired  datatypes.JSONSlice[string] `json:"skills_required"`
	EquipmentNeeded string                      `gorm:"type:text" json:"equipment_needed"`

	Status               MissionStatus `gorm:"type:varchar(20);not null;default:'open';index" json:"status"`
	AssignedFreelancerID *uuid.UUID    `gorm:"type:uuid;index" json:"assigned_freelancer_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Company *Profile `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
}

func (Mission) TableName() string { return "missions" }

func (m *Mission) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return
}

// SplitSkills turns a comma-separated input into a skills list,
// trimming each token and dropping empty ones.
func SplitSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
