package main

import (
	"log"

	api "studysync-backend/cmd/api"
	"studysync-backend/internal/bot"
	scheduleUsecase "studysync-backend/internal/schedule/usecase"
	syncdomain "studysync-backend/internal/sync/domain"
	syncRepo "studysync-backend/internal/sync/repository"
	"studysync-backend/internal/sync/scheduler"
	syncUsecase "studysync-backend/internal/sync/usecase"
	"studysync-backend/pkg/ai"
	"studysync-backend/pkg/canvas"
	"studysync-backend/pkg/config"
	"studysync-backend/pkg/database"
	"studysync-backend/pkg/gcal"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize sync store
	db, err := database.NewSQLiteConnection(cfg.SyncDBPath)
	if err != nil {
		log.Fatal("Failed to open sync store:", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(&syncdomain.AssignmentTaskMapping{}); err != nil {
		log.Fatal("Failed to migrate sync store:", err)
	}

	// Initialize repositories (dependency injection)
	mappingRepo := syncRepo.NewMappingRepository(db)

	// Initialize external services
	canvasClient := canvas.NewClient(cfg.CanvasBaseURL, cfg.CanvasToken)
	googleService := gcal.NewService(cfg.GoogleClientID, cfg.GoogleClientSecret)
	tokenStore := gcal.NewTokenStore(cfg.GoogleTokenPath)

	// Initialize use cases (dependency injection)
	taskProvider := syncUsecase.NewGoogleTaskProvider(googleService, tokenStore, cfg.GoogleTasklistID)
	syncUsecaseInstance := syncUsecase.NewSyncUsecase(canvasClient, taskProvider, mappingRepo)

	// Initialize HTTP handler. It owns the runtime-adjustable Ollama
	// settings, so the parser reads them through its getters.
	handler := api.NewHandler(syncUsecaseInstance, googleService, tokenStore, cfg)

	parser, err := ai.NewParser(ai.DynamicConfig{
		Provider:         ai.ProviderType(cfg.AIProvider),
		OpenAIAPIKey:     cfg.OpenAIAPIKey,
		OpenAIModel:      cfg.OpenAIModel,
		GetOllamaBaseURL: handler.OllamaBaseURL,
		GetOllamaModel:   handler.OllamaModel,
		Timezone:         cfg.UserTimezone,
	})
	if err != nil {
		log.Fatal("Failed to initialize AI parser:", err)
	}

	googleProvider := scheduleUsecase.NewGoogleProvider(googleService, tokenStore, cfg.GoogleTasklistID, cfg.GoogleCalendarID)
	scheduleUsecaseInstance := scheduleUsecase.NewScheduleUsecase(parser, googleProvider)

	// Periodic background sync
	syncScheduler := scheduler.NewSyncScheduler(syncUsecaseInstance, cfg.SyncInterval)
	syncScheduler.Start()
	defer syncScheduler.Stop()

	// Discord bot (optional, skipped when no token is configured)
	if cfg.DiscordToken != "" {
		discordBot, err := bot.New(cfg.DiscordToken, cfg.DiscordGuildID, scheduleUsecaseInstance, syncUsecaseInstance)
		if err != nil {
			log.Fatal("Failed to create Discord bot:", err)
		}
		if err := discordBot.Start(); err != nil {
			log.Fatal("Failed to start Discord bot:", err)
		}
		defer discordBot.Stop()
	} else {
		log.Printf("[WARN] DISCORD_TOKEN not configured, bot disabled")
	}

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
