package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"weatherdash/weather-dashboard/config"
	"weatherdash/weather-dashboard/internal/api/v1/handlers"
	"weatherdash/weather-dashboard/internal/db/history"
	"weatherdash/weather-dashboard/internal/providers"
	"weatherdash/weather-dashboard/internal/ratelimit"
	"weatherdash/weather-dashboard/internal/scheduler"
	"weatherdash/weather-dashboard/internal/service"
	"weatherdash/weather-dashboard/internal/ttlcache"
	"weatherdash/weather-dashboard/internal/weather"
)

func main() {
	conf, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	logLevel, err := zerolog.ParseLevel(conf.LogLevel)
	if err != nil {
		logLevel = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stdout).
		Level(logLevel).
		With().
		Str("service_name", conf.ServiceName).
		Timestamp().
		Logger()
	log.Logger = logger

	ctx, mainCtxStop := context.WithCancel(context.Background())

	httpClient := &http.Client{Timeout: conf.HTTPTimeoutDuration()}

	currentCache := ttlcache.New[weather.CurrentConditions](conf.CacheTTL)
	forecastCache := ttlcache.New[[]weather.ForecastDay](conf.ForecastCacheTTL)
	limiter := ratelimit.NewDailyLimiter(conf.DailyRateLimit)

	sources := []service.Source{
		providers.NewOpenWeatherClient(httpClient, conf.OpenWeatherAPIKey),
		providers.NewOpenMeteoClient(httpClient),
	}
	aggregator := service.NewAggregator(sources, limiter, currentCache, forecastCache)
	geocoder := providers.NewGeocodingClient(httpClient)

	var store history.Repository
	if conf.HistoryEnabled {
		db, dbErr := initializeDatabase(conf)
		if dbErr != nil {
			logger.Fatal().Err(dbErr).Msg("failed to initialize database")
		}
		store = history.NewRepository(db)
	}

	jobs := scheduler.New(
		aggregator,
		store,
		[]scheduler.Sweeper{currentCache, forecastCache},
		conf.ParseTrackedLocations(),
		conf.SnapshotInterval,
		conf.HistoryRetention(),
	)
	if err := jobs.Start(); err != nil {
		logger.Fatal().Err(err).Msg("failed to start background jobs")
	}

	handler := handlers.NewWeatherHandler(aggregator, geocoder, conf.HTTPTimeoutDuration())

	httpServer := &http.Server{
		Addr:              conf.ServerAddress,
		Handler:           handler,
		ReadHeaderTimeout: conf.HTTPTimeoutDuration(),
	}

	handleSignals(ctx, mainCtxStop, func() {
		jobs.Stop()
		shutdownErr := httpServer.Shutdown(ctx)
		if shutdownErr != nil {
			log.Fatal().Err(shutdownErr).Msg("server shutdown failed")
		}
	})

	log.Info().Msgf("started server on %s", conf.ServerAddress)

	serverErr := httpServer.ListenAndServe()
	if serverErr != nil {
		log.Err(serverErr).Msg("server stopped")
	}
	<-ctx.Done()
}

func initializeDatabase(config *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		config.DBHost, config.DBPort, config.DBUser, config.DBPassword, config.DBName,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&history.Snapshot{}); err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(3 * time.Minute)

	return db, nil
}

func handleSignals(ctx context.Context, cancelCtx context.CancelFunc, callback func()) {
	sig := make(chan os.Signal, 1)

	signal.Notify(sig, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	const shutdownDuration = 30 * time.Second

	go func() {
		<-sig

		shutdownCtx, cancel := context.WithTimeout(ctx, shutdownDuration)

		go func() {
			<-shutdownCtx.Done()

			if shutdownCtx.Err() == context.DeadlineExceeded {
				panic("graceful shutdown timed out.. forcing exit.")
			}
		}()

		callback()

		cancel()
		cancelCtx()
	}()
}
