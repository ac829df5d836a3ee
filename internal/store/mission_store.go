package store

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/leeder-app/leeder-api/internal/models"
)

type MissionStore struct {
	DB *gorm.DB
}

func NewMissionStore(db *gorm.DB) *MissionStore {
	return &MissionStore{DB: db}
}

// Create inserts a new mission owned by companyID. Status always starts
// at open regardless of what the caller set.
func (s *MissionStore) Create(m *models.Mission) error {
	m.Status = models.MissionOpen
	return s.DB.Create(m).Error
}

func (s *MissionStore) Get(id uuid.UUID) (*models.Mission, error) {
	var m models.Mission
	if err := s.DB.Preload("Company").First(&m, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &m, nil
}

// ListOpen returns every open mission, newest first. No pagination:
// the freelancer browse view fetches the full set each time.
func (s *MissionStore) ListOpen() ([]models.Mission, error) {
	var out []models.Mission
	err := s.DB.
		Preload("Company").
		Where("status = ?", models.MissionOpen).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

// ListByCompany returns all missions owned by companyID, newest first.
func (s *MissionStore) ListByCompany(companyID uuid.UUID) ([]models.Mission, error) {
	var out []models.Mission
	err := s.DB.
		Where("company_id = ?", companyID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

// ListAll is the admin view: every mission regardless of owner.
func (s *MissionStore) ListAll() ([]models.Mission, error) {
	var out []models.Mission
	err := s.DB.
		Preload("Company").
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

// SetStatus moves a mission to newStatus. Membership in the enum is the
// only check: any status is reachable from any other.
func (s *MissionStore) SetStatus(id uuid.UUID, newStatus models.MissionStatus) error {
	res := s.DB.Model(&models.Mission{}).
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

// Delete hard-deletes a mission and cascades to its applications in the
// same transaction, so no application can point at a missing mission.
func (s *MissionStore) Delete(id uuid.UUID) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("mission_id = ?", id).
			Delete(&models.Application{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Mission{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (s *MissionStore) CountByStatus(status models.MissionStatus) (int64, error) {
	var n int64
	err := s.DB.Model(&models.Mission{}).
		Where("status = ?", status).
		Count(&n).Error
	return n, err
}
