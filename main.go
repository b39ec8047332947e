package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	api "github.com/tinkertanker/discord-summariser/cmd/api"
	authdomain "github.com/tinkertanker/discord-summariser/internal/auth/domain"
	authRepo "github.com/tinkertanker/discord-summariser/internal/auth/repository"
	authUsecase "github.com/tinkertanker/discord-summariser/internal/auth/usecase"
	guildDelivery "github.com/tinkertanker/discord-summariser/internal/guild/delivery"
	guilddomain "github.com/tinkertanker/discord-summariser/internal/guild/domain"
	guildRepo "github.com/tinkertanker/discord-summariser/internal/guild/repository"
	guildUsecase "github.com/tinkertanker/discord-summariser/internal/guild/usecase"
	responseDelivery "github.com/tinkertanker/discord-summariser/internal/response/delivery"
	responsedomain "github.com/tinkertanker/discord-summariser/internal/response/domain"
	responseRepo "github.com/tinkertanker/discord-summariser/internal/response/repository"
	responseUsecase "github.com/tinkertanker/discord-summariser/internal/response/usecase"
	summaryDelivery "github.com/tinkertanker/discord-summariser/internal/summary/delivery"
	summarydomain "github.com/tinkertanker/discord-summariser/internal/summary/domain"
	summaryRepo "github.com/tinkertanker/discord-summariser/internal/summary/repository"
	"github.com/tinkertanker/discord-summariser/internal/summary/scheduler"
	summaryUsecase "github.com/tinkertanker/discord-summariser/internal/summary/usecase"
	"github.com/tinkertanker/discord-summariser/pkg/ai"
	"github.com/tinkertanker/discord-summariser/pkg/cache"
	"github.com/tinkertanker/discord-summariser/pkg/config"
	"github.com/tinkertanker/discord-summariser/pkg/crypto"
	"github.com/tinkertanker/discord-summariser/pkg/database"
	"github.com/tinkertanker/discord-summariser/pkg/discord"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(
		&authdomain.User{},
		&authdomain.RefreshToken{},
		&guilddomain.MonitoredServer{},
		&summarydomain.ChannelSummary{},
		&responsedomain.SuggestedResponse{},
	); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize repositories (dependency injection)
	userRepo := authRepo.NewUserRepository(db)
	serverRepository := guildRepo.NewServerRepository(db)
	summaryRepository := summaryRepo.NewSummaryRepository(db)
	responseRepository := responseRepo.NewResponseRepository(db)

	// OAuth state lives in Redis when configured so logins survive restarts
	var states cache.StateStore
	if cfg.RedisURL != "" {
		states = cache.NewRedisStateStore(cache.MustRedis(cfg.RedisURL))
		log.Println("OAuth state store: redis")
	} else {
		states = cache.NewMemoryStateStore()
		log.Println("[WARN] REDIS_URL not set, OAuth state kept in memory")
	}

	cipher := crypto.NewTokenCipher(cfg.TokenEncryptionKey)
	if !cipher.Enabled() {
		log.Println("[WARN] TOKEN_ENCRYPTION_KEY not set, Discord tokens stored in plain text")
	}

	discordClient := discord.NewClient(&http.Client{Timeout: 30 * time.Second})

	oauthCfg := discord.NewOAuthConfig(cfg.DiscordClientID, cfg.DiscordClientSecret, cfg.DiscordRedirectURI)
	if cfg.DiscordClientID == "" || cfg.DiscordClientSecret == "" {
		log.Println("[WARN] DISCORD_CLIENT_ID/DISCORD_CLIENT_SECRET not set, Discord sign-in disabled")
		oauthCfg = nil
	}

	completer, err := ai.NewCompleter(ai.Config{
		Provider:      ai.ProviderType(cfg.AIProvider),
		OpenAIAPIKey:  cfg.OpenAIAPIKey,
		OpenAIModel:   cfg.OpenAIModel,
		GeminiAPIKey:  cfg.GeminiAPIKey,
		OllamaBaseURL: cfg.OllamaBaseURL,
		OllamaModel:   cfg.OllamaModel,
	})
	if err != nil {
		log.Fatal("Failed to initialize AI service:", err)
	}
	log.Printf("AI service initialized with provider: %s", completer.Name())

	// Initialize use cases (dependency injection)
	authUsecaseInstance := authUsecase.NewAuthUsecase(userRepo, states, oauthCfg, discordClient, cipher, cfg)
	serverUsecaseInstance := guildUsecase.NewServerUsecase(serverRepository, discordClient, authUsecaseInstance)
	scanUsecaseInstance := summaryUsecase.NewScanUsecase(
		serverRepository,
		summaryRepository,
		discordClient,
		authUsecaseInstance,
		completer,
		summaryUsecase.OptionsFromConfig(cfg),
	)
	summaryUsecaseInstance := summaryUsecase.NewSummaryUsecase(summaryRepository, serverRepository)
	responseUsecaseInstance := responseUsecase.NewResponseUsecase(responseRepository, summaryRepository, completer)

	// Scheduled scans
	scanScheduler, err := scheduler.NewScanScheduler(scanUsecaseInstance, cfg.ScanCron)
	if err != nil {
		log.Fatal("Failed to initialize scan scheduler:", err)
	}
	scanScheduler.Start()

	// Initialize HTTP handler
	handler := api.NewHandler(
		authUsecaseInstance,
		cfg,
		guildDelivery.NewServerHandler(serverUsecaseInstance),
		summaryDelivery.NewSummaryHandler(scanUsecaseInstance, summaryUsecaseInstance, cfg.CronSecret),
		responseDelivery.NewResponseHandler(responseUsecaseInstance),
	)

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: handler.Engine(),
	}

	go func() {
		log.Printf("Server starting on port %s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	scanScheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}
