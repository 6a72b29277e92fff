package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/artem13815/screening/api/http/handlers"
	"github.com/artem13815/screening/pkg/logger"
	"github.com/artem13815/screening/pkg/metrics"
)

type Handlers struct {
	Auth       *handlers.AuthHandler
	Health     *handlers.HealthHandler
	Jobs       *handlers.JobHandler
	Candidates *handlers.CandidateHandler
	Interview  *handlers.InterviewHandler
}

type Options struct {
	// CORSOrigins is a comma separated allow list; empty allows any origin.
	CORSOrigins string
	Log         *zap.Logger
}

// Register wires all HTTP routes onto given Fiber app.
func Register(app *fiber.App, h Handlers, authMW fiber.Handler, opts Options) {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	origins := opts.CORSOrigins
	if origins == "" {
		origins = "*"
	}
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(logger.Access(log))
	app.Use(metrics.Middleware())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/swagger/*", swagger.HandlerDefault)

	api := app.Group("/api")

	// Health and readiness endpoints for probes/monitoring
	v1 := api.Group("/v1")
	v1.Get("/health", h.Health.Health)
	v1.Get("/ready", h.Health.Ready)

	a := api.Group("/auth")
	a.Post("/register", h.Auth.Register)
	a.Post("/login", h.Auth.Login)

	// Ссылка кандидата: токен в пути и есть авторизация.
	iv := api.Group("/interview/:token")
	iv.Get("/", h.Interview.Get)
	iv.Post("/start", h.Interview.Start)
	iv.Post("/answers", h.Interview.Answer)
	iv.Post("/signals", h.Interview.Signal)
	iv.Post("/complete", h.Interview.Complete)

	// HR routes
	jobs := api.Group("/jobs", authMW)
	jobs.Post("/", h.Jobs.Create)
	jobs.Get("/", h.Jobs.List)
	jobs.Get("/:id", h.Jobs.Get)
	jobs.Post("/:id/upload_candidates", h.Candidates.Upload)
	jobs.Get("/:id/status", h.Jobs.Status)
	jobs.Get("/:id/ranking", h.Jobs.Ranking)
	jobs.Get("/:id/ranking/export", h.Jobs.ExportRanking)

	api.Get("/candidates/:id/detail", authMW, h.Candidates.Detail)
}
