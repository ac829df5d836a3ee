package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/leeder-app/leeder-api/internal/models"
)

func TestApplicationDuplicateRejectedAtomically(t *testing.T) {
	db := setupTestDB(t)
	company := seedProfile(t, db, models.RoleCompany, "c@test")
	freelancer := seedProfile(t, db, models.RoleFreelancer, "f@test")
	other := seedProfile(t, db, models.RoleFreelancer, "f2@test")
	s := &ApplicationStore{DB: db}

	m := seedMission(t, db, company.ID, "m", time.Time{})

	require.NoError(t, s.Create(&models.Application{MissionID: m.ID, FreelancerID: freelancer.ID}))

	err := s.Create(&models.Application{MissionID: m.ID, FreelancerID: freelancer.ID})
	assert.ErrorIs(t, err, ErrDuplicateApplication)

	var n int64
	require.NoError(t, db.Model(&models.Application{}).
		Where("mission_id = ? AND freelancer_id = ?", m.ID, freelancer.ID).
		Count(&n).Error)
	assert.EqualValues(t, 1, n, "the duplicate must not leave a second row")

	// a different freelancer on the same mission is fine
	require.NoError(t, s.Create(&models.Application{MissionID: m.ID, FreelancerID: other.ID}))

	// same freelancer on a different mission is fine too
	m2 := seedMission(t, db, company.ID, "m2", time.Time{})
	require.NoError(t, s.Create(&models.Application{MissionID: m2.ID, FreelancerID: freelancer.ID}))
}

func TestApplicationCreateAlwaysStartsPending(t *testing.T) {
	db := setupTestDB(t)
	company := seedProfile(t, db, models.RoleCompany, "c@test")
	freelancer := seedProfile(t, db, models.RoleFreelancer, "f@test")
	s := &ApplicationStore{DB: db}
	m := seedMission(t, db, company.ID, "m", time.Time{})

	a := &models.Application{
		MissionID:    m.ID,
		FreelancerID: freelancer.ID,
		Status:       models.ApplicationAccepted, // caller cannot pick
	}
	require.NoError(t, s.Create(a))

	got, err := s.Get(a.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationPending, got.Status)
}

func TestApplicationSetStatusReadback(t *testing.T) {
	db := setupTestDB(t)
	company := seedProfile(t, db, models.RoleCompany, "c@test")
	freelancer := seedProfile(t, db, models.RoleFreelancer, "f@test")
	s := &ApplicationStore{DB: db}
	m := seedMission(t, db, company.ID, "m", time.Time{})

	a := &models.Application{MissionID: m.ID, FreelancerID: freelancer.ID}
	require.NoError(t, s.Create(a))

	require.NoError(t, s.SetStatus(a.ID, models.ApplicationAccepted))

	got, err := s.Get(a.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationAccepted, got.Status)
}

func TestApplicationListForCompanyEnriched(t *testing.T) {
	db := setupTestDB(t)
	company := seedProfile(t, db, models.RoleCompany, "c@test")
	otherCompany := seedProfile(t, db, models.RoleCompany, "c2@test")
	freelancer := seedProfile(t, db, models.RoleFreelancer, "f@test")
	s := &ApplicationStore{DB: db}

	// give the freelancer a filled extension so enrichment has something
	require.NoError(t, db.Model(&models.FreelancerProfile{}).
		Where("id = ?", freelancer.ID).
		Updates(map[string]any{
			"skills":   datatypes.NewJSONSlice([]string{"Merchandising", "Facing"}),
			"location": "Lille",
		}).Error)

	m := seedMission(t, db, company.ID, "mine", time.Time{})
	foreign := seedMission(t, db, otherCompany.ID, "not mine", time.Time{})

	require.NoError(t, s.Create(&models.Application{MissionID: m.ID, FreelancerID: freelancer.ID, Message: "dispo"}))
	require.NoError(t, s.Create(&models.Application{MissionID: foreign.ID, FreelancerID: freelancer.ID}))

	apps, err := s.ListForCompany(company.ID)
	require.NoError(t, err)
	require.Len(t, apps, 1, "only applications on the company's own missions")

	a := apps[0]
	require.NotNil(t, a.Mission)
	assert.Equal(t, "mine", a.Mission.Title)
	require.NotNil(t, a.Freelancer)
	assert.Equal(t, freelancer.ID, a.Freelancer.ID)
	require.NotNil(t, a.Freelancer.FreelancerProfile)
	assert.Equal(t, "Lille", a.Freelancer.FreelancerProfile.Location)
	assert.ElementsMatch(t, []string{"Merchandising", "Facing"}, []string(a.Freelancer.FreelancerProfile.Skills))
}

func TestApplicationListByFreelancerNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	company := seedProfile(t, db, models.RoleCompany, "c@test")
	freelancer := seedProfile(t, db, models.RoleFreelancer, "f@test")
	s := &ApplicationStore{DB: db}

	m1 := seedMission(t, db, company.ID, "m1", time.Time{})
	m2 := seedMission(t, db, company.ID, "m2", time.Time{})

	base := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	a1 := &models.Application{MissionID: m1.ID, FreelancerID: freelancer.ID}
	require.NoError(t, s.Create(a1))
	require.NoError(t, db.Model(a1).Update("created_at", base).Error)

	a2 := &models.Application{MissionID: m2.ID, FreelancerID: freelancer.ID}
	require.NoError(t, s.Create(a2))
	require.NoError(t, db.Model(a2).Update("created_at", base.Add(time.Hour)).Error)

	apps, err := s.ListByFreelancer(freelancer.ID)
	require.NoError(t, err)
	require.Len(t, apps, 2)
	assert.Equal(t, a2.ID, apps[0].ID)
	assert.Equal(t, a1.ID, apps[1].ID)
	require.NotNil(t, apps[0].Mission)
	require.NotNil(t, apps[0].Mission.Company)
	assert.Equal(t, company.ID, apps[0].Mission.Company.ID)
}
