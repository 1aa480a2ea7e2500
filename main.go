package main

import (
	"context"
	"log"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/menustudio/menustudio-api/internal/ai"
	"github.com/menustudio/menustudio-api/internal/api"
	"github.com/menustudio/menustudio-api/internal/assets"
	"github.com/menustudio/menustudio-api/internal/config"
	"github.com/menustudio/menustudio-api/internal/database"
	"github.com/menustudio/menustudio-api/internal/metrics"
	"github.com/menustudio/menustudio-api/internal/observability"
	"github.com/menustudio/menustudio-api/internal/services"
	"github.com/menustudio/menustudio-api/internal/session"
)

const (
	sentryFlushTimeout    = 2 * time.Second
	environmentProduction = "production"
)

// releaseVersion is set via ldflags during build
var releaseVersion = "dev"

// GetVersion returns the current release version
func GetVersion() string {
	return releaseVersion
}

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()

	// Initialize Sentry
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.Environment,
			Release:          "menustudio-api@" + releaseVersion,
			EnableTracing:    true,
			TracesSampleRate: 1.0,
			EnableLogs:       true,
			Debug:            cfg.Environment != environmentProduction,
			BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
				// Filter out sensitive data
				if event.Request != nil {
					event.Request.Headers = filterSensitiveHeaders(event.Request.Headers)
				}
				return event
			},
		}); err != nil {
			log.Printf("Failed to initialize Sentry: %v", err)
		} else {
			log.Printf("✅ Sentry initialized (environment: %s, release: %s)", cfg.Environment, releaseVersion)
			// Flush on shutdown
			defer sentry.Flush(sentryFlushTimeout)
		}
	} else {
		log.Println("⚠️  Sentry not configured (SENTRY_DSN not set)")
	}

	ctx := context.Background()

	// Initialize Langfuse for LLM observability
	observability.InitializeLangfuse(ctx, cfg)

	// Initialize CloudWatch metrics (no-op outside production)
	cloudwatchClient, err := metrics.NewClient(ctx, cfg.Environment)
	if err != nil {
		log.Printf("⚠️  CloudWatch metrics unavailable: %v", err)
	}

	// Local storage for generated images, served under /assets
	assetStore, err := assets.NewStore(cfg.AssetsDir)
	if err != nil {
		sentry.CaptureException(err)
		log.Fatal("Failed to prepare assets directory:", err)
	}

	// AI providers: OpenAI for menu content, Gemini for images and edits
	caps, err := ai.NewCapabilities(ctx, cfg, assetStore)
	if err != nil {
		sentry.CaptureException(err)
		log.Fatal("Failed to initialize AI providers:", err)
	}

	// Menu archive is optional: without DATABASE_URL the API runs with
	// in-memory sessions only and GET /api/menus returns an empty list.
	var archive *database.Archive
	if cfg.HasDatabase() {
		db, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			sentry.CaptureException(err)
			log.Fatal("Failed to connect to database:", err)
		}
		if err := database.Migrate(db); err != nil {
			sentry.CaptureException(err)
			log.Fatal("Failed to run migrations:", err)
		}
		archive = database.NewArchive(db)
		log.Println("✅ Menu archive enabled")
	} else {
		log.Println("⚠️  Menu archive disabled (DATABASE_URL not set)")
	}

	// In-memory variant session store with TTL eviction
	sessionStore := session.NewStore(cfg.SessionTTL, cfg.SweepInterval)
	defer sessionStore.Close()

	variantService := services.NewVariantService(sessionStore, caps, cloudwatchClient, cfg.VariantDeadline)
	menuService := services.NewMenuService(caps, assetStore, archive, cloudwatchClient)

	// Set Gin mode
	if cfg.Environment == environmentProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	router := api.SetupRouter(cfg, assetStore, variantService, menuService)

	// Start server
	log.Printf("🚀 Starting server on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		sentry.CaptureException(err)
		log.Fatal("Failed to start server:", err)
	}
}

func filterSensitiveHeaders(headers map[string]string) map[string]string {
	filtered := make(map[string]string)
	sensitiveKeys := map[string]bool{
		"authorization": true,
		"cookie":        true,
		"x-api-key":     true,
	}

	for k, v := range headers {
		if sensitiveKeys[k] {
			filtered[k] = "[REDACTED]"
		} else {
			filtered[k] = v
		}
	}
	return filtered
}
