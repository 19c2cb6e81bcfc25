package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"shopchat/config"
	cartRepo "shopchat/internal/cart/repository/sqlite"
	cartUsecase "shopchat/internal/cart/usecase"
	catalogRepo "shopchat/internal/catalog/repository/sqlite"
	catalogUsecase "shopchat/internal/catalog/usecase"
	chatHTTP "shopchat/internal/chat/delivery/http"
	chatWhatsApp "shopchat/internal/chat/delivery/whatsapp"
	chatUsecase "shopchat/internal/chat/usecase"
	"shopchat/internal/httpserver"
	"shopchat/internal/intent"
	"shopchat/internal/session"
	"shopchat/internal/storage"
	"shopchat/pkg/llmprovider"
	"shopchat/pkg/log"
	"shopchat/pkg/twilio"
)

func main() {
	// 1. Configuration
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting shopchat...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Storage
	db, err := storage.Open(cfg.Database.Path)
	if err != nil {
		logger.Error(ctx, "Failed to open database: ", err)
		return
	}
	defer db.Close()

	if err := storage.SeedDemoCatalog(db); err != nil {
		logger.Error(ctx, "Failed to seed catalog: ", err)
		return
	}

	// 4. LLM providers
	specs := make([]llmprovider.ProviderSpec, 0, len(cfg.LLM.Providers))
	for _, p := range cfg.LLM.Providers {
		specs = append(specs, llmprovider.ProviderSpec{
			Name:     p.Name,
			Enabled:  p.Enabled,
			Priority: p.Priority,
			APIKey:   p.APIKey,
			BaseURL:  p.BaseURL,
			Model:    p.Model,
			Timeout:  p.Timeout,
		})
	}
	providers, err := llmprovider.BuildProviders(specs)
	if err != nil {
		logger.Error(ctx, "Failed to build LLM providers: ", err)
		return
	}
	llm := llmprovider.NewManager(providers, &llmprovider.Config{
		FallbackEnabled: cfg.LLM.FallbackEnabled,
		RetryAttempts:   cfg.LLM.RetryAttempts,
		RetryDelay:      cfg.LLM.RetryDelay,
		MaxTotalTimeout: cfg.LLM.MaxTotalTimeout,
	}, logger)
	logger.Infof(ctx, "LLM providers configured: %d", len(providers))

	// 5. Domain wiring
	cartUC := cartUsecase.New(cartRepo.New(db, logger), logger)
	catalogUC := catalogUsecase.New(catalogRepo.New(db, logger), logger)

	sessions := session.New(session.Config{
		TTL:         cfg.Session.TTL,
		MaxMessages: cfg.Session.MaxMessages,
	})

	resolver := intent.New(llm, cartUC, logger)
	chatUC := chatUsecase.New(sessions, resolver, cartUC, catalogUC, llm, logger)

	// 6. Delivery
	chatHandler := chatHTTP.New(logger, chatUC, catalogUC, cartUC)

	var whatsappHandler chatWhatsApp.Handler
	if cfg.Twilio.AccountSID != "" && cfg.Twilio.AuthToken != "" {
		sender, twErr := twilio.New(twilio.Config{
			AccountSID:     cfg.Twilio.AccountSID,
			AuthToken:      cfg.Twilio.AuthToken,
			WhatsAppNumber: cfg.Twilio.WhatsAppNumber,
		})
		if twErr != nil {
			logger.Error(ctx, "Failed to initialize Twilio client: ", twErr)
			return
		}
		whatsappHandler = chatWhatsApp.New(logger, chatUC, sender)
		logger.Info(ctx, "WhatsApp webhook enabled")

		announceWebhookURL(ctx, logger)
	} else {
		logger.Warn(ctx, "WhatsApp skipped: TWILIO_ACCOUNT_SID or TWILIO_AUTH_TOKEN is missing")
	}

	// 7. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Port:            cfg.HTTPServer.Port,
		Mode:            cfg.HTTPServer.Mode,
		Environment:     cfg.Environment.Name,
		RateLimitPerMin: cfg.HTTPServer.RateLimitPerMin,
		ChatHandler:     chatHandler,
		WhatsAppHandler: whatsappHandler,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 8. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
