package v1

import (
	"log"

	"skill-ready/internal/config"
	"skill-ready/internal/database"
	"skill-ready/internal/delivery/http/handler"
	"skill-ready/internal/delivery/http/middleware"
	"skill-ready/internal/extraction"
	"skill-ready/internal/infrastructure/cache"
	"skill-ready/internal/infrastructure/persistence/postgres"
	"skill-ready/internal/pkg/jwt"
	"skill-ready/internal/repository"
	"skill-ready/internal/usecase"
	"skill-ready/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Deps struct {
	Config config.Config
	DB     database.DB
	Cache  *cache.Redis
	Hub    *ws.Hub
	Logger *log.Logger
}

func Register(r fiber.Router, deps Deps) {
	if r == nil {
		return
	}

	cfg := deps.Config
	db := deps.DB

	jwtSvc := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)
	authMw := middleware.NewAuthMiddleware(jwtSvc)

	userRepo := postgres.NewUserRepository(db)
	skillRepo := repository.NewPostgresSkillRepository(db)
	roleRepo := repository.NewPostgresRoleRepository(db)
	benchmarkRepo := repository.NewPostgresBenchmarkRepository(db)
	userSkillRepo := repository.NewPostgresUserSkillRepository(db)
	resumeRepo := repository.NewPostgresResumeRepository(db)
	snapshotRepo := repository.NewPostgresSnapshotRepository(db)
	suggestionRepo := repository.NewPostgresSuggestionRepository(db)

	authUC := usecase.NewAuthUsecase(userRepo, jwtSvc)
	userUC := usecase.NewUserUsecase(userRepo)
	skillUC := usecase.NewSkillUsecase(skillRepo, deps.Cache)
	roleUC := usecase.NewRoleUsecase(roleRepo)
	benchmarkUC := usecase.NewBenchmarkUsecase(roleRepo, benchmarkRepo, skillRepo, deps.Cache, cfg.Redis.TTL)
	userSkillUC := usecase.NewUserSkillUsecase(userSkillRepo, skillRepo)
	readinessUC := usecase.NewReadinessUsecase(roleRepo, benchmarkRepo, userSkillRepo, snapshotRepo, ws.NewNotifier(deps.Hub))
	suggestionUC := usecase.NewSuggestionUsecase(resumeRepo, suggestionRepo, skillRepo, userSkillRepo, extraction.NewPlainText(), deps.Cache)
	reportUC := usecase.NewReportUsecase(readinessUC, usecase.GapRoadmap{})

	authHandler := handler.NewAuthHandler(authUC)
	userHandler := handler.NewUserHandler(userUC)
	skillHandler := handler.NewSkillHandler(skillUC)
	roleHandler := handler.NewRoleHandler(roleUC, benchmarkUC)
	userSkillHandler := handler.NewUserSkillHandler(userSkillUC)
	resumeHandler := handler.NewResumeHandler(suggestionUC)
	readinessHandler := handler.NewReadinessHandler(readinessUC, reportUC)

	authGroup := r.Group("/auth")
	authHandler.RegisterRoutes(authGroup)

	protected := r.Group("", authMw.Middleware())

	usersGroup := protected.Group("/users")
	userHandler.RegisterRoutes(usersGroup)

	protected.Get("/skills", skillHandler.List)
	protected.Get("/roles", roleHandler.List)
	protected.Get("/roles/:id/benchmark", roleHandler.Benchmark)

	me := protected.Group("/me")
	me.Get("/skills", userSkillHandler.List)
	me.Post("/skills", userSkillHandler.Add)
	me.Post("/skills/demo", userSkillHandler.AddDemo)
	me.Delete("/skills/:skillId", userSkillHandler.Delete)

	me.Post("/resumes", resumeHandler.Upload)
	me.Post("/resumes/:id/rescan", resumeHandler.Rescan)
	me.Get("/suggestions", resumeHandler.ListSuggestions)
	me.Post("/suggestions/confirm", resumeHandler.Confirm)
	me.Post("/suggestions/reject-all", resumeHandler.RejectAll)

	me.Post("/readiness/:roleId", readinessHandler.Calculate)
	me.Get("/readiness/:roleId", readinessHandler.Latest)
	me.Get("/readiness/:roleId/history", readinessHandler.History)
	me.Get("/readiness/:roleId/report", readinessHandler.Report)

	protected.Get("/snapshots/:snapshotId/breakdown", readinessHandler.Breakdown)

	admin := protected.Group("/admin", authMw.RequireAdmin())
	admin.Get("/skills", skillHandler.ListAll)
	admin.Post("/skills", skillHandler.Create)
	admin.Put("/skills/:id", skillHandler.Rename)
	admin.Delete("/skills/:id", skillHandler.Deactivate)
	admin.Post("/roles", roleHandler.Create)
	admin.Post("/roles/:id/benchmark", roleHandler.AddBenchmarkEntry)
	admin.Put("/benchmark/entries/:entryId", roleHandler.UpdateBenchmarkEntry)
}
