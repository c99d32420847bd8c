package v1

import (
	"log"

	"career-hub/internal/config"
	"career-hub/internal/database"
	"career-hub/internal/delivery/http/handler"
	"career-hub/internal/delivery/http/middleware"
	"career-hub/internal/domain/scoring"
	"career-hub/internal/infrastructure/cache"
	"career-hub/internal/infrastructure/persistence/postgres"
	"career-hub/internal/pkg/jwt"
	"career-hub/internal/repository"
	"career-hub/internal/usecase"
	"career-hub/internal/ws"

	"github.com/gofiber/fiber/v3"
)

func Register(r fiber.Router, cfg config.Config, db database.DB, rc *cache.Redis, hub *ws.Hub, policy scoring.Policy, logger *log.Logger) {
	if r == nil {
		return
	}

	jwtSvc := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)

	authMw := middleware.NewAuthMiddleware(jwtSvc)

	employeeRepo := postgres.NewEmployeeRepository(db)
	skillRepo := repository.NewPostgresSkillRepository(db)
	proficiencyRepo := repository.NewPostgresProficiencyRepository(db)
	requirementRepo := repository.NewPostgresRequirementRepository(db)
	positionRepo := repository.NewPostgresPositionRepository(db)
	requestRepo := repository.NewPostgresRequestRepository(db)
	successionRepo := repository.NewPostgresSuccessionRepository(db)
	auditRepo := repository.NewPostgresAuditRepository(db)

	var rankingCache usecase.RankingCache
	if rc != nil {
		rankingCache = rc
	}

	authUC := usecase.NewAuthUsecase(employeeRepo, jwtSvc)
	skillUC := usecase.NewSkillUsecase(skillRepo, rankingCache, logger)
	proficiencyUC := usecase.NewProficiencyUsecase(proficiencyRepo, skillRepo, employeeRepo, rankingCache, logger)
	requirementUC := usecase.NewRequirementUsecase(requirementRepo, skillRepo, positionRepo, rankingCache, logger)
	scoringUC := usecase.NewScoringUsecase(positionRepo, requirementRepo, proficiencyRepo, policy)
	rankingUC := usecase.NewRankingUsecase(
		positionRepo, employeeRepo, requirementRepo, proficiencyRepo,
		rankingCache, policy, cfg.Ranking.Workers, cfg.Ranking.CacheTTL, logger,
	)
	gapUC := usecase.NewGapUsecase(skillRepo, proficiencyRepo, requirementRepo)
	successionUC := usecase.NewSuccessionUsecase(rankingUC, scoringUC, successionRepo)
	requestUC := usecase.NewRequestUsecase(
		requestRepo, employeeRepo, auditRepo,
		usecase.NotifierFunc(ws.NotifyRequestUpdated), logger,
	)

	authGroup := r.Group("/auth")
	handler.NewAuthHandler(authUC).RegisterRoutes(authGroup)

	protected := r.Group("", authMw.Middleware())

	handler.NewSkillHandler(skillUC, authMw).RegisterRoutes(protected)
	handler.NewProficiencyHandler(proficiencyUC).RegisterRoutes(protected)
	handler.NewRequirementHandler(requirementUC, authMw).RegisterRoutes(protected)
	handler.NewRequestHandler(requestUC).RegisterRoutes(protected)
	handler.NewRankingHandler(rankingUC, scoringUC).RegisterRoutes(protected)
	handler.NewGapHandler(gapUC).RegisterRoutes(protected)
	handler.NewSuccessionHandler(successionUC, authMw).RegisterRoutes(protected)

	if hub != nil {
		wsHandler := ws.NewHandler(hub, logger)
		protected.Get("/ws/requests", wsHandler.HandleRequestsWS)
	}
}
