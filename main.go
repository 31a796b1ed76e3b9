// File: voicedesk/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"voicedesk/config"
	"voicedesk/cron"
	"voicedesk/database"
	bookingRepo "voicedesk/database/repository/booking"
	"voicedesk/handlers"
	"voicedesk/middleware"
	"voicedesk/routes"
	"voicedesk/services/dialog"
	"voicedesk/services/intent"
	"voicedesk/services/session"
	"voicedesk/services/telephony"
	"voicedesk/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitSessionCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	var bookings bookingRepo.Repository
	if database.MongoClient != nil {
		bookings = bookingRepo.NewMongoBookingRepo()
	}

	// services.
	sessionManager := session.NewManager(
		session.NewRedisStore(utils.GetSessionCacheClient()),
		time.Duration(config.AppConfig.SessionTTLSeconds)*time.Second,
		config.AppConfig.DefaultLanguage,
		logger,
	)

	var classifier intent.Classifier
	if key := config.AppConfig.GeminiAPIKey; key != "" {
		gemini, err := intent.NewGeminiClassifier(key)
		if err != nil {
			logger.Warn("intent classifier unavailable, menu input falls back to rule matching", zap.Error(err))
		} else {
			classifier = gemini
		}
	}
	interpreter := intent.NewInterpreter(classifier, logger)

	engine := &dialog.DefaultEngine{
		Sessions:       sessionManager,
		Bookings:       bookings,
		Interpreter:    interpreter,
		Renderer:       telephony.NewTwimlRenderer(),
		Logger:         logger,
		CompanyName:    config.AppConfig.CompanyName,
		RetryThreshold: config.AppConfig.RetryEscalationLimit,
	}

	voiceBotHandler := handlers.NewVoiceBotHandler(engine, logger)
	adminHandler := handlers.NewAdminHandler(bookings, sessionManager, logger)

	// Register routes.
	routes.RegisterRoutes(router, voiceBotHandler, adminHandler)

	// Background workers.
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	cron.StartSessionSweeper(
		workerCtx,
		sessionManager,
		time.Duration(config.AppConfig.FallbackSweepIntervalMin)*time.Minute,
		time.Duration(config.AppConfig.FallbackSweepMaxAgeMin)*time.Minute,
		logger,
	)
	cron.StartRedisMonitor(workerCtx, utils.GetSessionCacheClient(), logger)
	utils.StartHealthMonitor(utils.GetSessionCacheClient(), database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	stopWorkers()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
