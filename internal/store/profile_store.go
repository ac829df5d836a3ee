package store

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/leeder-app/leeder-api/internal/models"
)

type ProfileStore struct {
	DB *gorm.DB
}

func NewProfileStore(db *gorm.DB) *ProfileStore {
	return &ProfileStore{DB: db}
}

// CreateWithExtension inserts the base profile and its empty role-specific
// extension row in one transaction (the sign-up shape: the extension is
// filled later by the onboarding wizard).
func (s *ProfileStore) CreateWithExtension(p *models.Profile) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			return err
		}
		switch p.Role {
		case models.RoleFreelancer:
			return tx.Create(&models.FreelancerProfile{ID: p.ID, IsAvailable: true}).Error
		case models.RoleCompany:
			return tx.Create(&models.CompanyProfile{
				ID:          p.ID,
				CompanyName: p.Name,
				ContactName: p.Name,
			}).Error
		}
		return nil
	})
}

func (s *ProfileStore) Get(id uuid.UUID) (*models.Profile, error) {
	var p models.Profile
	if err := s.DB.First(&p, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &p, nil
}

func (s *ProfileStore) GetByEmail(email string) (*models.Profile, error) {
	var p models.Profile
	if err := s.DB.First(&p, "email = ?", email).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &p, nil
}

func (s *ProfileStore) GetFreelancer(id uuid.UUID) (*models.FreelancerProfile, error) {
	var fp models.FreelancerProfile
	if err := s.DB.First(&fp, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &fp, nil
}

func (s *ProfileStore) GetCompany(id uuid.UUID) (*models.CompanyProfile, error) {
	var cp models.CompanyProfile
	if err := s.DB.First(&cp, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &cp, nil
}

// SaveFreelancerOnboarding persists the accumulated wizard form in one
// transaction: base profile (name, photo) plus the extension row.
// completed=false on intermediate step saves keeps the dashboard gate
// closed; only the final submit passes true.
func (s *ProfileStore) SaveFreelancerOnboarding(id uuid.UUID, name, photoURL string, ext *models.FreelancerProfile, completed bool) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{"name": name}
		if photoURL != "" {
			updates["photo_url"] = photoURL
		}
		res := tx.Model(&models.Profile{}).Where("id = ?", id).Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}

		ext.ID = id
		ext.ProfileCompleted = completed
		return tx.Save(ext).Error
	})
}

// SaveCompanyOnboarding is the company counterpart: the base profile name
// mirrors the company name.
func (s *ProfileStore) SaveCompanyOnboarding(id uuid.UUID, ext *models.CompanyProfile, completed bool) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Profile{}).
			Where("id = ?", id).
			Update("name", ext.CompanyName)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}

		ext.ID = id
		ext.ProfileCompleted = completed
		return tx.Save(ext).Error
	})
}

func (s *ProfileStore) ListAll() ([]models.Profile, error) {
	var out []models.Profile
	err := s.DB.Order("created_at DESC").Find(&out).Error
	return out, err
}

// Delete removes a profile and everything hanging off it: its extension
// rows, its applications, and for companies its missions together with
// their applications. One transaction, hard deletes throughout.
func (s *ProfileStore) Delete(id uuid.UUID) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var missionIDs []uuid.UUID
		if err := tx.Model(&models.Mission{}).
			Where("company_id = ?", id).
			Pluck("id", &missionIDs).Error; err != nil {
			return err
		}
		if len(missionIDs) > 0 {
			if err := tx.Where("mission_id IN ?", missionIDs).
				Delete(&models.Application{}).Error; err != nil {
				return err
			}
			if err := tx.Where("company_id = ?", id).
				Delete(&models.Mission{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("freelancer_id = ?", id).
			Delete(&models.Application{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.FreelancerProfile{}, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.CompanyProfile{}, "id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Profile{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (s *ProfileStore) CountByRole(role models.Role) (int64, error) {
	var n int64
	err := s.DB.Model(&models.Profile{}).
		Where("role = ?", role).
		Count(&n).Error
	return n, err
}
