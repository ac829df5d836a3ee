package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
	"github.com/joho/godotenv"

	"github.com/leeder-app/leeder-api/internal/config"
	"github.com/leeder-app/leeder-api/internal/db"
	"github.com/leeder-app/leeder-api/internal/handlers"
	"github.com/leeder-app/leeder-api/internal/middleware"
	"github.com/leeder-app/leeder-api/internal/models"
	"github.com/leeder-app/leeder-api/internal/notify"
	"github.com/leeder-app/leeder-api/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	gdb, err := db.Connect(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	if err := gdb.AutoMigrate(
		&models.Profile{},
		&models.FreelancerProfile{},
		&models.CompanyProfile{},
		&models.Mission{},
		&models.Application{},
	); err != nil {
		log.Fatal(err)
	}

	rdb := notify.NewRedis()
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Redis not reachable:", err)
	}

	hub := notify.NewHub()
	go hub.Run()
	go hub.RunRelay(context.Background(), rdb)

	notifier := notify.NewPublisher(rdb)

	profiles := &store.ProfileStore{DB: gdb}
	missions := &store.MissionStore{DB: gdb}
	applications := &store.ApplicationStore{DB: gdb}

	authH := handlers.NewAuthHandler(profiles, cfg.JWTSecret, cfg.JWTExpiresMin)
	googleH := &handlers.GoogleOAuthHandler{
		Profiles:        profiles,
		JWTSecret:       cfg.JWTSecret,
		Expires:         cfg.JWTExpiresMin,
		GoogleClientID:  cfg.GoogleClientID,
		GoogleSecret:    cfg.GoogleSecret,
		GoogleRedirect:  cfg.GoogleRedirect,
		FrontendBaseURL: cfg.FrontendBaseURL,
	}
	dashH := handlers.NewDashboardHandler(profiles)
	missionH := handlers.NewMissionHandler(missions, notifier)
	applicationH := handlers.NewApplicationHandler(applications, missions, notifier)
	fOnboardH := handlers.NewFreelancerOnboardingHandler(profiles)
	cOnboardH := handlers.NewCompanyOnboardingHandler(profiles)
	adminH := handlers.NewAdminHandler(profiles, missions, applications)
	refH := handlers.NewReferentialHandler()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendBaseURL,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		ExposeHeaders:    "Content-Length",
		AllowCredentials: true,
	}))

	api := app.Group("/api")

	// public
	api.Post("/auth/register", authH.Register)
	api.Post("/auth/login", authH.Login)
	api.Post("/auth/logout", authH.Logout)
	api.Get("/auth/google/start", googleH.GoogleStart)
	api.Get("/auth/google/callback", googleH.GoogleCallback)
	api.Get("/referentials", refH.List)

	// protected (JWT cookie)
	protected := api.Group("/",
		middleware.JWTFromCookie(cfg.JWTSecret),
		middleware.AttachJWTLocals(),
	)

	protected.Get("/me", dashH.Me)
	protected.Get("/dashboard", dashH.Dashboard)

	// freelancer scope (admin listed explicitly where it may look in)
	freelancer := protected.Group("/freelancer",
		middleware.RequireRoles("freelancer", "admin"))
	freelancer.Get("/onboarding", fOnboardH.Get)
	freelancer.Patch("/onboarding/step/:step", fOnboardH.SaveStep)
	freelancer.Post("/onboarding/submit", fOnboardH.Submit)
	freelancer.Get("/missions", missionH.Browse)
	freelancer.Post("/missions/:id/apply", applicationH.Apply)
	freelancer.Get("/applications", applicationH.ListMine)

	// company scope
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

	// admin scope
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

	// notifications socket: auth via ?token= since upgrades skip cookies
	app.Get("/ws/notifications", websocket.New(notify.WebSocketHandler(hub, cfg.JWTSecret)))

	log.Fatal(app.Listen(":" + cfg.AppPort))
}
