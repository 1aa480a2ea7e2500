package api

import (
	"github.com/gin-gonic/gin"

	"github.com/menustudio/menustudio-api/internal/api/handlers"
	apimiddleware "github.com/menustudio/menustudio-api/internal/api/middleware"
	"github.com/menustudio/menustudio-api/internal/assets"
	"github.com/menustudio/menustudio-api/internal/config"
	"github.com/menustudio/menustudio-api/internal/services"
)

// SetupRouter wires middleware, handlers and static asset serving.
func SetupRouter(
	cfg *config.Config,
	store *assets.Store,
	variants *services.VariantService,
	menus *services.MenuService,
) *gin.Engine {
	router := gin.New()

	// Recovery middleware (must be first)
	router.Use(apimiddleware.RecoverWithSentry())

	// Sentry middleware for error tracking
	router.Use(apimiddleware.SentryMiddleware())

	// Request tracking and structured logging
	router.Use(apimiddleware.RequestTracking())

	// CORS middleware
	router.Use(apimiddleware.CORS())

	// Generated images
	router.Static(assets.URLPrefix, store.Dir())

	// Health check
	healthHandler := handlers.NewHealthHandler(cfg)
	router.GET("/health", healthHandler.HealthCheck)

	apiGroup := router.Group("/api")
	{
		// Variant session orchestration
		variantsHandler := handlers.NewVariantsHandler(variants)
		apiGroup.POST("/generate-variants", variantsHandler.GenerateVariants)
		apiGroup.GET("/check-variant-status/:sessionId", variantsHandler.CheckVariantStatus)

		// Single-shot generation, content-only generation and edits
		menuHandler := handlers.NewMenuHandler(menus)
		apiGroup.POST("/surprise", menuHandler.Surprise)
		apiGroup.POST("/generate", menuHandler.Generate)
		apiGroup.POST("/edit", menuHandler.Edit)
		apiGroup.GET("/menus", menuHandler.ListMenus)
	}

	return router
}
