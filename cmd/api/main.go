package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/KRISHNASAKTHIESWAR/Lap-Lens/config"
	"github.com/KRISHNASAKTHIESWAR/Lap-Lens/handlers"
	"github.com/KRISHNASAKTHIESWAR/Lap-Lens/middleware"
	"github.com/KRISHNASAKTHIESWAR/Lap-Lens/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found, using system environment")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Model bundle: loaded once, read-only for the process lifetime.
	engine := services.NewInferenceEngine(cfg.Models.Dir)
	if !engine.Ready() {
		log.Printf("warning: model bundle incomplete, some predictions will be unavailable")
	}

	// Redis is optional: without it story caching and live updates are
	// disabled but predictions keep working.
	cache, err := services.NewCacheService(cfg.Redis)
	if err != nil {
		log.Printf("redis unavailable, story caching and live updates disabled: %v", err)
	}
	defer cache.Close()

	authService := services.NewAuthService(cfg.JWT)
	authHandler, err := handlers.NewAuthHandler(authService, cfg.Auth)
	if err != nil {
		log.Fatalf("failed to init auth handler: %v", err)
	}

	genai := services.NewGenAIClient(cfg.Gemini)
	if !genai.Available() {
		log.Printf("GEMINI_API_KEY not set, narrative generation will return placeholder text")
	}
	storyGenerator := services.NewStoryGenerator(genai)
	explainer := services.NewExplainer(genai)

	store := services.NewInMemoryStore()

	sessionHandler := handlers.NewSessionHandler(store)
	predictionHandler := handlers.NewPredictionHandler(store, engine, explainer, cache)
	storyHandler := handlers.NewStoryHandler(store, storyGenerator, cache)

	router := gin.Default()
	router.Use(middleware.SetupCORS(cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":          "healthy",
			"service":         "Lap-Lens Telemetry Prediction API",
			"models_loaded":   engine.Ready(),
			"cache_available": cache.Available(),
			"story_available": storyGenerator.Available(),
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/ws/live", handlers.LiveWebSocket(cache, authService))

	api := router.Group("/api")
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("")
	if cfg.Auth.Enabled {
		protected.Use(middleware.AuthRequired(authService))
	}

	protected.POST("/sessions", sessionHandler.CreateSession)
	protected.GET("/sessions/:id", sessionHandler.GetSession)
	protected.POST("/sessions/:id/close", sessionHandler.CloseSession)
	protected.GET("/sessions/:id/predictions", sessionHandler.ListPredictions)
	protected.GET("/sessions/:id/events", storyHandler.GetEvents)
	protected.POST("/sessions/:id/story", storyHandler.GenerateStoryAuto)

	protected.POST("/predict/lap-time", predictionHandler.PredictLapTime)
	protected.POST("/predict/pit", predictionHandler.PredictPit)
	protected.POST("/predict/tire", predictionHandler.PredictTire)
	protected.POST("/predict/all", predictionHandler.PredictAll)

	protected.POST("/race/story", storyHandler.GenerateStory)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("forced shutdown: %v", err)
	}
}
