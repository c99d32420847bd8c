package routes

import (
	"log"

	"career-hub/internal/config"
	"career-hub/internal/database"
	v1 "career-hub/internal/delivery/http/routes/v1"
	"career-hub/internal/domain/scoring"
	"career-hub/internal/infrastructure/cache"
	"career-hub/internal/ws"

	"github.com/gofiber/fiber/v3"
)

func RegisterV1(r fiber.Router, cfg config.Config, db database.DB, rc *cache.Redis, hub *ws.Hub, policy scoring.Policy, logger *log.Logger) {
	if r == nil {
		return
	}

	v1.Register(r, cfg, db, rc, hub, policy, logger)
}
