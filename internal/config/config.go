package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Redis    RedisConfig
	Ranking  RankingConfig
	Scoring  ScoringConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

type DatabaseConfig struct {
	Host           string
	Port           string
	Name           string
	User           string
	Password       string
	SSLMode        string
	PoolMaxConns   int32
	ConnectTimeout time.Duration
}

type JWTConfig struct {
	AccessSecret     string
	RefreshSecret    string
	AccessExpiresIn  time.Duration
	RefreshExpiresIn time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	TTL      time.Duration
}

type RankingConfig struct {
	Workers  int
	CacheTTL time.Duration
}

type ScoringConfig struct {
	// PolicyFile optionally points at a YAML file overriding the scoring
	// policy defaults.
	PolicyFile             string
	MandatoryPenaltyFactor float64
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

func Load() (Config, error) {
	cfg := Config{}

	var missing []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
	}

	cfg.Database = DatabaseConfig{
		Host:           opt("DB_HOST"),
		Port:           opt("DB_PORT"),
		Name:           opt("DB_NAME"),
		User:           opt("DB_USER"),
		Password:       opt("DB_PASSWORD"),
		SSLMode:        opt("DB_SSL_MODE"),
		PoolMaxConns:   int32(optInt("DB_POOL_MAX_CONNS", 0)),
		ConnectTimeout: optDuration("DB_CONNECT_TIMEOUT_SECONDS", 0),
	}

	cfg.JWT = JWTConfig{
		AccessSecret:     req("JWT_ACCESS_SECRET"),
		RefreshSecret:    req("JWT_REFRESH_SECRET"),
		AccessExpiresIn:  optDuration("JWT_ACCESS_EXPIRES_SECONDS", 15*60),
		RefreshExpiresIn: optDuration("JWT_REFRESH_EXPIRES_SECONDS", 7*24*3600),
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST"),
		Port:     opt("REDIS_PORT"),
		Password: opt("REDIS_PASSWORD"),
		TTL:      optDuration("REDIS_TTL_SECONDS", 600),
	}

	cfg.Ranking = RankingConfig{
		Workers:  optInt("RANKING_WORKERS", 8),
		CacheTTL: optDuration("RANKING_CACHE_TTL_SECONDS", 300),
	}

	cfg.Scoring = ScoringConfig{
		PolicyFile:             opt("SCORING_POLICY_FILE"),
		MandatoryPenaltyFactor: optFloat("SCORING_MANDATORY_PENALTY_FACTOR", 0),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}

func optInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return def
	}
	return v
}

func optFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return def
	}
	return v
}

func optDuration(key string, defSeconds int) time.Duration {
	return time.Duration(optInt(key, defSeconds)) * time.Second
}
