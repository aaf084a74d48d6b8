package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"trailmap/cmd/fx/cache_fx"
	"trailmap/cmd/fx/config_fx"
	"trailmap/cmd/fx/controllers_fx"
	"trailmap/cmd/fx/db_fx"
	"trailmap/cmd/fx/osm_fx"
	"trailmap/cmd/fx/poisfx"
	"trailmap/cmd/fx/search_fx"
	"trailmap/cmd/fx/taggingfx"
	"trailmap/internal/api/controllers"
	"trailmap/internal/config"
	"trailmap/internal/infra"
	"trailmap/pkg/middleware"
)

func main() {
	app := fx.New(
		config_fx.Module,
		db_fx.Module,
		cache_fx.Module,
		osm_fx.Module,
		taggingfx.Module,
		search_fx.Module,
		poisfx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, cfg *config.Config, db *gorm.DB) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Printf("Starting HTTP server at :%s", cfg.Port)
				if err := engine.Run(":" + cfg.Port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			infra.ClosePostgresql(db)
			return nil
		},
	})
}

func ProvideRouter(
	poisController *controllers.POIsController,
	indexController *controllers.IndexController,
	vocabularyController *controllers.VocabularyController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, poisController, indexController, vocabularyController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	poisController *controllers.POIsController,
	indexController *controllers.IndexController,
	vocabularyController *controllers.VocabularyController) {

	poisGroup := r.Group("/pois")
	poisGroup.GET("", poisController.ListPois)
	poisGroup.GET("/:source/:id", poisController.GetPoiById)

	editGroup := r.Group("/pois", middleware.EditorAuthMiddleware())
	editGroup.POST("", poisController.CreatePoi)
	editGroup.PUT("", poisController.UpdatePoi)

	indexGroup := r.Group("/index", middleware.EditorAuthMiddleware())
	indexGroup.POST("/bulk", indexController.BulkIndex)

	r.GET("/icons", vocabularyController.ListIcons)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
