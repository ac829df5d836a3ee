package store

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/leeder-app/leeder-api/internal/models"
)

type ApplicationStore struct {
	DB *gorm.DB
}

func NewApplicationStore(db *gorm.DB) *ApplicationStore {
	return &ApplicationStore{DB: db}
}

// Create inserts a pending application. The unique (mission_id,
// freelancer_id) index makes the duplicate check atomic: a second insert
// for the same pair fails here with ErrDuplicateApplication and never
// creates a row.
func (s *ApplicationStore) Create(a *models.Application) error {
	a.Status = models.ApplicationPending
	if err := s.DB.Create(a).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateApplication
		}
		return err
	}
	return nil
}

func (s *ApplicationStore) Get(id uuid.UUID) (*models.Application, error) {
	var a models.Application
	err := s.DB.
		Preload("Mission").
		Preload("Freelancer").
		Preload("Freelancer.FreelancerProfile").
		First(&a, "id = ?", id).Error
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &a, nil
}

// ListForCompany returns every application against the company's missions,
// newest first, each carrying the freelancer identity, the freelancer's
// extension profile and the mission summary inline (one joined query,
// not a per-application follow-up fetch).
func (s *ApplicationStore) ListForCompany(companyID uuid.UUID) ([]models.Application, error) {
	var out []models.Application
	err := s.DB.
		Joins("JOIN missions ON missions.id = applications.mission_id").
		Where("missions.company_id = ?", companyID).
		Preload("Mission").
		Preload("Freelancer").
		Preload("Freelancer.FreelancerProfile").
		Order("applications.created_at DESC").
		Find(&out).Error
	return out, err
}

// ListByFreelancer returns the freelancer's own applications, newest first.
func (s *ApplicationStore) ListByFreelancer(freelancerID uuid.UUID) ([]models.Application, error) {
	var out []models.Application
	err := s.DB.
		Where("freelancer_id = ?", freelancerID).
		Preload("Mission").
		Preload("Mission.Company").
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

// ListAll is the admin view across every mission and freelancer.
func (s *ApplicationStore) ListAll() ([]models.Application, error) {
	var out []models.Application
	err := s.DB.
		Preload("Mission").
		Preload("Freelancer").
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

// SetStatus moves an application to newStatus. As with missions there is
// no transition graph; the admin override can push any status, including
// back to pending.
func (s *ApplicationStore) SetStatus(id uuid.UUID, newStatus models.ApplicationStatus) error {
	res := s.DB.Model(&models.Application{}).
		Where("id = ?", id).
		Update("status", newStatus)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete hard-deletes an application.
func (s *ApplicationStore) Delete(id uuid.UUID) error {
	res := s.DB.Delete(&models.Application{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *ApplicationStore) Count() (int64, error) {
	var n int64
	err := s.DB.Model(&models.Application{}).Count(&n).Error
	return n, err
}
