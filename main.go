package main

import (
	"log"
	"time"

	"wheelshare/cmd"
	"wheelshare/internal/data/repository"
	"wheelshare/internal/geocode"
	"wheelshare/internal/wire"
	"wheelshare/pkg/database"
	"wheelshare/pkg/mailer"
	"wheelshare/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Geocoder, with an optional Redis cache in front
	geocoder := geocode.NewNominatim(
		config.Geocode.BaseURL,
		config.Geocode.UserAgent,
		time.Duration(config.Geocode.TimeoutSeconds)*time.Second,
		logger,
	)
	if config.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     config.Redis.Addr,
			Password: config.Redis.Password,
			DB:       config.Redis.DB,
		})
		geocoder = geocode.NewCached(geocoder, rdb,
			time.Duration(config.Redis.CacheMinutes)*time.Minute, logger)
		logger.Info("Geocode cache enabled", zap.String("redis", config.Redis.Addr))
	}

	// Mailer for OTP delivery
	mail := mailer.NewMailer(config.Email, logger)

	// Wire all dependencies
	app := wire.Wiring(db, repos, geocoder, mail, config, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
