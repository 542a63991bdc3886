package main

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"staffing-backend/internal/config"
	"staffing-backend/internal/db"
	"staffing-backend/internal/metrics"
	"staffing-backend/internal/middleware"
	"staffing-backend/internal/routes"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("config error")
	}

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
		logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	database, err := db.Open(cfg.DbDsn)
	if err != nil {
		logger.Fatal().Err(err).Msg("db error")
	}

	metrics.Register()

	router := gin.New()
	router.Use(middleware.RequestLogger(&logger), gin.Recovery())

	routes.Register(router, database, cfg)

	logger.Info().Str("addr", cfg.Addr).Msg("server listening")
	if err := router.Run(cfg.Addr); err != nil {
		logger.Fatal().Err(err).Msg("server error")
	}
}
