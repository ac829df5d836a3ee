package store

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/leeder-app/leeder-api/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Unique in-memory database per test to avoid cross-test collisions.
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Profile{},
		&models.FreelancerProfile{},
		&models.CompanyProfile{},
		&models.Mission{},
		&models.Application{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedProfile(t *testing.T, db *gorm.DB, role models.Role, email string) *models.Profile {
	t.Helper()
	p := &models.Profile{
		Name:     "Test " + email,
		Email:    email,
		Password: "x",
		Role:     role,
	}
	if err := (&ProfileStore{DB: db}).CreateWithExtension(p); err != nil {
		t.Fatalf("seed profile %s: %v", email, err)
	}
	return p
}

func seedMission(t *testing.T, db *gorm.DB, companyID uuid.UUID, title string, createdAt time.Time) *models.Mission {
	t.Helper()
	m := &models.Mission{
		CompanyID:   companyID,
		Title:       title,
		Description: "desc",
		Location:    "Paris",
		HourlyRate:  25,
	}
	if err := (&MissionStore{DB: db}).Create(m); err != nil {
		t.Fatalf("seed mission %s: %v", title, err)
	}
	if !createdAt.IsZero() {
		if err := db.Model(m).Update("created_at", createdAt).Error; err != nil {
			t.Fatalf("backdate mission %s: %v", title, err)
		}
	}
	return m
}
