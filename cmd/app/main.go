package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"github.com/briculinos/voyana/cmd/fx/intent_fx"
	"github.com/briculinos/voyana/cmd/fx/planner_fx"
	"github.com/briculinos/voyana/cmd/fx/search_fx"
	"github.com/briculinos/voyana/internal/api/controllers"
	"github.com/briculinos/voyana/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	app := fx.New(
		intent_fx.Module,
		search_fx.Module,
		planner_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := os.Getenv("PORT")
				if port == "" {
					port = "8080"
				}
				log.Printf("Starting HTTP server at :%s", port)
				if err := engine.Run(":" + port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(planController *controllers.PlanController) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, planController)

	return r
}

func RegisterRoutes(r *gin.Engine, planController *controllers.PlanController) {
	api := r.Group("/api")
	api.POST("/plan", planController.PlanTripHandler)
	api.POST("/plan/stream", planController.StreamPlanHandler)

	r.GET("/health", planController.HealthHandler)
}
