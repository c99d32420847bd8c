package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"career-hub/internal/config"
	"career-hub/internal/database"
	"career-hub/internal/database/migration"
	dbpostgres "career-hub/internal/database/postgres"
	"career-hub/internal/database/seeder"
	"career-hub/internal/domain/scoring"
	"career-hub/internal/infrastructure/cache"
	"career-hub/internal/ws"
)

const migrationsDir = "migrations"

type Container struct {
	Config config.Config
	DB     database.DB
	Cache  *cache.Redis
	Hub    *ws.Hub
	Policy scoring.Policy
	Logger *log.Logger
}

func NewContainer(cfg config.Config) (*Container, error) {
	logger := log.New(os.Stdout, "", log.LstdFlags)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	runner := migration.Runner{Dir: migrationsDir}
	if err := runner.Run(ctx, db.SQLDB()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	if err := seeder.RunAll(ctx, db, seeder.SkillsSeeder{}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("seed database: %w", err)
	}

	rc := cache.NewRedis(cfg.Redis, logger)

	hub := ws.NewHub(logger)
	go hub.Run()
	ws.SetDefaultHub(hub)

	return &Container{
		Config: cfg,
		DB:     db,
		Cache:  rc,
		Hub:    hub,
		Policy: resolveScoringPolicy(cfg.Scoring, logger),
		Logger: logger,
	}, nil
}

// resolveScoringPolicy layers the optional YAML policy file and the env
// override on top of the built-in defaults.
func resolveScoringPolicy(cfg config.ScoringConfig, logger *log.Logger) scoring.Policy {
	policy := scoring.DefaultPolicy()

	if cfg.PolicyFile != "" {
		loaded, err := scoring.LoadPolicyFile(cfg.PolicyFile)
		if err != nil {
			logger.Printf("app | scoring policy file ignored | path=%s err=%v", cfg.PolicyFile, err)
		} else {
			policy = loaded
		}
	}
	if cfg.MandatoryPenaltyFactor > 0 {
		policy.MandatoryPenaltyFactor = cfg.MandatoryPenaltyFactor
	}
	return policy
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
