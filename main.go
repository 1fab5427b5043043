package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spendsense/backend/internal/cache"
	v1 "github.com/spendsense/backend/internal/controllers/v1"
	"github.com/spendsense/backend/internal/models"
	"github.com/spendsense/backend/internal/router"
)

func main() {
	// gin uses debug as the default mode, we use release for
	// security reasons
	ginMode, ok := os.LookupEnv("GIN_MODE")
	if !ok {
		gin.SetMode("release")
	} else {
		gin.SetMode(ginMode)
	}

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	logFormat, ok := os.LookupEnv("LOG_FORMAT")
	output := io.Writer(os.Stdout)
	if (!ok && gin.IsDebugging()) || (ok && logFormat == "human") {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	dataDir := filepath.Join(".", "data")
	err := os.MkdirAll(dataDir, os.ModePerm)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	err = models.Connect(filepath.Join(dataDir, "gorm.db"))
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// The summary cache is optional, a missing REDIS_URL disables it.
	summaryCache, err := cache.FromEnv()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}
	v1.SummaryCache = summaryCache

	r, err := router.Router()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	addr := ":8080"
	if port, ok := os.LookupEnv("API_PORT"); ok {
		addr = ":" + port
	}

	if err := r.Run(addr); err != nil {
		log.Fatal().Msg(err.Error())
	}
}
