package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"prepwise/server/internal/auth"
	"prepwise/server/internal/config"
	"prepwise/server/internal/handlers"
	"prepwise/server/internal/jobs"
	"prepwise/server/internal/llm"
	_ "prepwise/server/internal/llm/gemini"
	"prepwise/server/internal/metrics"
	"prepwise/server/internal/prompts"
	mongorepo "prepwise/server/internal/repositories/mongo"
	"prepwise/server/internal/routers"
	"prepwise/server/internal/speech"
)

func registerRoutes(router *chi.Mux, authHandler *handlers.AuthHandler, interviewHandler *handlers.InterviewHandler, feedbackHandler *handlers.FeedbackHandler, speechHandler *handlers.SpeechHandler, healthHandler *handlers.HealthHandler, verifier *auth.Verifier) {
	routers.HealthRoutes(router, healthHandler)
	routers.AuthRoutes(router, authHandler)
	routers.InterviewRoutes(router, verifier, interviewHandler, feedbackHandler, speechHandler)
}

func main() {
	_ = godotenv.Load()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	logger.Info("Configuration loaded",
		zap.String("provider", cfg.Provider),
		zap.String("env", cfg.Env))

	// prompt manager
	promptManager, err := prompts.NewPromptManager()
	if err != nil {
		logger.Fatal("Failed to initialize prompt manager", zap.Error(err))
	}

	// AI provider based on configuration
	aiProvider, err := llm.NewProvider(cfg.Provider)
	if err != nil {
		logger.Fatal("Failed to initialize AI provider", zap.Error(err))
	}

	// database
	mongoClient, err := mongorepo.NewClient(context.Background(), cfg.MongoURI)
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	db, err := mongoClient.Database(cfg.DatabaseName)
	if err != nil {
		logger.Fatal("Failed to open database", zap.Error(err))
	}

	userRepo := mongorepo.NewUserRepo(db)
	interviewRepo := mongorepo.NewInterviewRepo(db)
	feedbackRepo := mongorepo.NewFeedbackRepo(db)

	verifier := auth.NewVerifier(cfg.SessionSecret, cfg.SessionTTL)

	// speech-to-text client; routes stay mounted but answer 500 when the
	// vendor key is missing
	var transcriber handlers.Transcriber
	speechClient, err := speech.NewClient(&speech.Config{
		APIKey:          cfg.AssemblyAIKey,
		BaseURL:         cfg.AssemblyAIBaseURL,
		PollInterval:    cfg.PollInterval,
		MaxPollAttempts: cfg.MaxPollAttempts,
	})
	if err != nil {
		logger.Warn("Speech-to-text disabled", zap.Error(err))
	} else {
		transcriber = speechClient
	}

	authHandler := handlers.NewAuthHandler(userRepo, verifier, cfg.IsProduction(), logger)
	interviewHandler := handlers.NewInterviewHandler(aiProvider, promptManager, interviewRepo, logger)
	feedbackHandler := handlers.NewFeedbackHandler(aiProvider, promptManager, interviewRepo, feedbackRepo, logger)
	speechHandler := handlers.NewSpeechHandler(transcriber, logger)
	healthHandler := handlers.NewHealthHandler(aiProvider, mongoClient.Ping)

	// nightly feedback export
	exporterJob := jobs.NewFeedbackExporterJob(feedbackRepo, &jobs.ExporterConfig{
		Schedule:  cfg.ExportSchedule,
		ExportDir: cfg.ExportDir,
		Enabled:   cfg.ExportEnabled,
	}, logger)
	if err := exporterJob.Start(); err != nil {
		logger.Error("Failed to start feedback exporter job", zap.Error(err))
	}

	router := chi.NewRouter()

	// cors middleware
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	router.Use(chimiddleware.RequestID, chimiddleware.RealIP, chimiddleware.Logger, chimiddleware.Recoverer, chimiddleware.Timeout(3*time.Minute))
	router.Use(metrics.Middleware("prepwise"))

	registerRoutes(router, authHandler, interviewHandler, feedbackHandler, speechHandler, healthHandler, verifier)

	serverAddr := ":" + cfg.Port

	// http server with timeouts; write timeout leaves room for the
	// 2-minute transcription poll ceiling
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 3 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	// starting server in a goroutine
	go func() {
		logger.Info("PrepWise server starting", zap.String("addr", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// wait for interrupt signal to gracefully shutdown the server
	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)
	<-shutdownChan

	logger.Info("PrepWise server shutting down...")

	exporterJob.Stop()

	// graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	if err := mongoClient.Disconnect(ctx); err != nil {
		logger.Error("Failed to disconnect MongoDB", zap.Error(err))
	}

	logger.Info("PrepWise server exited")
}
