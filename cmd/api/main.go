package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/selimk/drivefeed/internal/adapters/dify"
	"github.com/selimk/drivefeed/internal/adapters/drive"
	httpadapter "github.com/selimk/drivefeed/internal/adapters/http"
	"github.com/selimk/drivefeed/internal/adapters/state"
	"github.com/selimk/drivefeed/internal/config"
	"github.com/selimk/drivefeed/internal/core/sync"
)

func main() {
	// 1. Configuration (environment, optional .env for local runs)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	// 2. Initialize Adapters (Infrastructure)
	// Drive and Firestore clients are created lazily on first use, so a
	// container with missing credentials still starts and serves /.
	driveAdapter := drive.NewAdapter(sugar.Named("drive"))
	stateStore := state.NewFirestore(cfg.ProjectID)
	difyClient := dify.NewClient(cfg.DifyAPIBase, cfg.DifyDatasetID, cfg.DifyAPIKey, sugar.Named("dify"))

	// 3. Core sync service
	syncService := sync.New(driveAdapter, difyClient, stateStore, sync.Options{
		WebhookURL:     cfg.WebhookURL,
		ChannelToken:   cfg.ChannelToken,
		TargetFolderID: cfg.TargetFolderID,
	}, sugar.Named("sync"))

	// 4. Initialize HTTP Handlers (Interface Adapters)
	handler := httpadapter.NewSyncHandler(syncService, stateStore, cfg, sugar.Named("http"))

	// 5. Setup Framework (Fiber) and Define Routes
	app := fiber.New()
	app.Get("/", handler.Health)
	app.Get("/debug/info", handler.Info)
	app.Post("/debug/pull", handler.Pull)
	app.Get("/init", handler.Init)
	app.Post("/drive-webhook", handler.Webhook)

	// 6. Start Server
	sugar.Infow("server starting", "addr", cfg.Addr())
	if err := app.Listen(cfg.Addr()); err != nil {
		sugar.Fatalw("server failed to start", "error", err)
	}
}
