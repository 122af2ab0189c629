package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"wanderwise/cmd/fx/ai_fx"
	"wanderwise/cmd/fx/db_fx"
	"wanderwise/cmd/fx/itinerary_fx"
	"wanderwise/internal/api/controllers"
	"wanderwise/pkg/config"
	"wanderwise/pkg/logger"
	"wanderwise/pkg/middleware"
	"wanderwise/pkg/utils"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	utils.SetJWTSecret(cfg.JWTSecret)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	app := fx.New(
		fx.Supply(cfg, zlog),

		db_fx.Module,
		ai_fx.Module,
		itinerary_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, cfg *config.Config, zlog *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				zlog.Info("starting HTTP server", zap.String("port", cfg.AppPort))
				if err := engine.Run(":" + cfg.AppPort); err != nil {
					zlog.Fatal("failed to start server", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			zlog.Info("stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	aiController *controllers.AIController,
	itineraryController *controllers.ItineraryController) *gin.Engine {

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.CORSMiddleware())

	RegisterRoutes(r, aiController, itineraryController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	aiController *controllers.AIController,
	itineraryController *controllers.ItineraryController) {

	api := r.Group("/api")

	aiGroup := api.Group("/ai")
	aiGroup.GET("/insights", aiController.GetDestinationInsights)
	aiGroup.POST("/suggest-activities", aiController.SuggestActivities)
	aiGroup.POST("/generate-itinerary", middleware.JWTAuthMiddleware(), aiController.GenerateItinerary)

	itineraryGroup := api.Group("/itineraries")
	itineraryGroup.Use(middleware.JWTAuthMiddleware())
	itineraryGroup.GET("", itineraryController.GetItinerariesByUserId)
	itineraryGroup.GET("/:itineraryId", itineraryController.GetItineraryById)
	itineraryGroup.PATCH("/:itineraryId/status", itineraryController.UpdateStatus)
	itineraryGroup.POST("/:itineraryId/share", itineraryController.ShareItinerary)
	itineraryGroup.DELETE("/:itineraryId", itineraryController.DeleteItinerary)
}
