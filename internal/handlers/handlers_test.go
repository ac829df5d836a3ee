package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/leeder-app/leeder-api/internal/middleware"
	"github.com/leeder-app/leeder-api/internal/models"
	"github.com/leeder-app/leeder-api/internal/notify"
	"github.com/leeder-app/leeder-api/internal/store"
	"github.com/leeder-app/leeder-api/internal/utils"
)

const testSecret = "test-secret"

type testEnv struct {
	app      *fiber.App
	db       *gorm.DB
	profiles *store.ProfileStore
}

// newTestEnv wires the real route tree against an in-memory database so
// handler tests exercise the same middleware chain as production.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

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

	profiles := &store.ProfileStore{DB: db}
	missions := &store.MissionStore{DB: db}
	applications := &store.ApplicationStore{DB: db}
	notifier := notify.NewPublisher(nil) // nil-safe: publishes are dropped

	authH := NewAuthHandler(profiles, testSecret, 60)
	dashH := NewDashboardHandler(profiles)
	missionH := NewMissionHandler(missions, notifier)
	applicationH := NewApplicationHandler(applications, missions, notifier)
	fOnboardH := NewFreelancerOnboardingHandler(profiles)
	cOnboardH := NewCompanyOnboardingHandler(profiles)
	adminH := NewAdminHandler(profiles, missions, applications)
	refH := NewReferentialHandler()

	app := fiber.New()
	api := app.Group("/api")

	api.Post("/auth/register", authH.Register)
	api.Post("/auth/login", authH.Login)
	api.Post("/auth/logout", authH.Logout)
	api.Get("/referentials", refH.List)

	protected := api.Group("/",
		middleware.JWTFromCookie(testSecret),
		middleware.AttachJWTLocals(),
	)

	protected.Get("/me", dashH.Me)
	protected.Get("/dashboard", dashH.Dashboard)

	freelancer := protected.Group("/freelancer",
		middleware.RequireRoles("freelancer", "admin"))
	freelancer.Get("/onboarding", fOnboardH.Get)
	freelancer.Patch("/onboarding/step/:step", fOnboardH.SaveStep)
	freelancer.Post("/onboarding/submit", fOnboardH.Submit)
	freelancer.Get("/missions", missionH.Browse)
	freelancer.Post("/missions/:id/apply", applicationH.Apply)
	freelancer.Get("/applications", applicationH.ListMine)

	company := protected.Group("/company",
		middleware.RequireRoles("company", "admin"))
	company.Get("/onboarding", cOnboardH.Get)
	company.Patch("/onboarding/step/:step", cOnboardH.SaveStep)
	company.Post("/onboarding/submit", cOnboardH.Submit)
	company.Post("/missions", missionH.Create)
	company.Get("/missions", missionH.ListMine)
	company.Patch("/missions/:id/status", missionH.SetStatus)
	company.Delete("/missions/:id", missionH.Delete)
	company.Get("/applications", applicationH.ListForCompany)
	company.Patch("/applications/:id/status", applicationH.SetStatus)

	admin := protected.Group("/admin", middleware.RequireRoles("admin"))
	admin.Get("/users", adminH.ListUsers)
	admin.Delete("/users/:id", adminH.DeleteUser)
	admin.Get("/missions", adminH.ListMissions)
	admin.Patch("/missions/:id/status", adminH.SetMissionStatus)
	admin.Delete("/missions/:id", adminH.DeleteMission)
	admin.Get("/applications", adminH.ListApplications)
	admin.Patch("/applications/:id/status", adminH.SetApplicationStatus)
	admin.Delete("/applications/:id", adminH.DeleteApplication)
	admin.Get("/stats", adminH.Stats)

	return &testEnv{app: app, db: db, profiles: profiles}
}

func (e *testEnv) seedUser(t *testing.T, role models.Role, email string) (*models.Profile, string) {
	t.Helper()
	p := &models.Profile{Name: "Test " + email, Email: email, Password: "x", Role: role}
	if err := e.profiles.CreateWithExtension(p); err != nil {
		t.Fatalf("seed %s: %v", email, err)
	}
	token, err := utils.SignJWT(testSecret, p.ID.String(), string(role), 60)
	if err != nil {
		t.Fatalf("sign jwt: %v", err)
	}
	return p, token
}

func (e *testEnv) request(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		buf = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: middleware.CookieName, Value: token})
	}
	resp, err := e.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return out
}
