package main

import (
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"

	"teambridge/api-gateway/config"
	"teambridge/api-gateway/handlers"
	"teambridge/api-gateway/internal/authroutes"
	"teambridge/api-gateway/internal/gateway"
	"teambridge/api-gateway/middleware"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	log := config.NewLogger()

	supabaseCfg, err := config.LoadSupabaseConfig()
	if err != nil {
		log.Fatalf("Failed to load Supabase config: %v", err)
	}

	gw, err := gateway.New(supabaseCfg, log)
	if err != nil {
		log.Fatalf("Failed to initialize gateway: %v", err)
	}

	h := handlers.NewApplicationHandler(log, gw)

	app := fiber.New()

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*", // Allow all origins for development
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.RequestLogger(log))

	// Health check route
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "ok",
			"message": "API Gateway is healthy",
		})
	})

	// Auth route discovery: resolve where the front-end's signup and login
	// flows live against the routes it registered, falling back to "/".
	knownRoutes := map[string]bool{}
	for _, r := range strings.Split(os.Getenv("AUTH_KNOWN_ROUTES"), ",") {
		if r = strings.TrimSpace(r); r != "" {
			knownRoutes[r] = true
		}
	}
	app.Get("/auth/routes", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"signup": authroutes.Resolve(authroutes.SignupCandidates, knownRoutes),
			"login":  authroutes.Resolve(authroutes.LoginCandidates, knownRoutes),
		})
	})

	// API v1 routes
	apiV1 := app.Group("/api/v1")

	// Payment processor client config
	apiV1.Get("/payments/config", h.PaymentConfig)

	// Project routes
	apiV1.Post("/projects", h.CreateProject)
	apiV1.Get("/projects", h.GetProjects)
	apiV1.Get("/projects/:id", h.GetProject)
	apiV1.Patch("/projects/:id", h.UpdateProject)
	apiV1.Delete("/projects/:id", h.DeleteProject)

	// Aggregated reads
	apiV1.Get("/projects/:projectId/dashboard", h.GetProjectDashboard)
	apiV1.Get("/projects/:projectId/team", h.GetProjectTeam)

	// File routes within a project
	projectFiles := apiV1.Group("/projects/:projectId/files")
	projectFiles.Get("", h.ListProjectFiles)
	projectFiles.Post("", h.UploadProjectFile)
	projectFiles.Delete("/:fileId", h.DeleteProjectFile)

	// Milestone routes within a project
	projectMilestones := apiV1.Group("/projects/:projectId/milestones")
	projectMilestones.Get("", h.ListMilestones)
	projectMilestones.Post("", h.CreateMilestone)
	projectMilestones.Patch("/:milestoneId/status", h.UpdateMilestoneStatus)

	// Payment routes within a project
	projectPayments := apiV1.Group("/projects/:projectId/payments")
	projectPayments.Get("", h.ListPayments)
	projectPayments.Post("", h.RecordPayment)
	projectPayments.Post("/intents", h.CreatePaymentIntent)
	projectPayments.Post("/confirm", h.ConfirmPayment)

	// Team matching routes within a project
	apiV1.Post("/projects/:projectId/match", h.MatchTeams)
	apiV1.Post("/projects/:projectId/select-team", h.SelectTeam)
	apiV1.Post("/projects/:projectId/interest", h.SendProjectInterest)

	// Admin routes
	adminGroup := apiV1.Group("/admin")
	adminGroup.Get("/check", h.CheckAdmin)
	adminGroup.Get("/users", h.ListAdmins)
	adminGroup.Post("/users", h.AddAdmin)
	adminGroup.Delete("/users/:userId", h.RemoveAdmin)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Infof("Starting API Gateway on port %s...", port)
	log.Fatal(app.Listen(":" + port))
}
