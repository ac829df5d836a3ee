package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleFreelancer Role = "freelancer"
	RoleCompany    Role = "company"
	RoleAdmin      Role = "admin"
)

func ValidRole(r Role) bool {
	return r == RoleFreelancer || r == RoleCompany || r == RoleAdmin
}

// Profile is the base identity record, one per account. The role decides
// which extension row and dashboard apply and is immutable after sign-up.
type Profile struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email    string    `gorm:"uniqueIndex;not null" json:"email"`
	Name     string    `gorm:"not null" json:"name"`
	Role     Role      `gorm:"type:varchar(20);not null;index" json:"role"`
	PhotoURL string    `gorm:"type:text" json:"photo_url"`

	Password string `gorm:"not null" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	FreelancerProfile *FreelancerProfile `gorm:"foreignKey:ID;references:ID" json:"freelancer_profile,omitempty"`
	CompanyProfile    *CompanyProfile    `gorm:"foreignKey:ID;references:ID" json:"company_profile,omitempty"`
}

func (Profile) TableName() string { return "profiles" }

func (p *Profile) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}
