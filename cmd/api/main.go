package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-inventory-sheets/internal/config"
	"go-inventory-sheets/internal/handler"
	"go-inventory-sheets/internal/metrics"
	"go-inventory-sheets/internal/middleware"
	"go-inventory-sheets/internal/model"
	"go-inventory-sheets/internal/repository"
	"go-inventory-sheets/internal/service"
	"go-inventory-sheets/internal/sheets"
	"go-inventory-sheets/internal/store"
	"go-inventory-sheets/internal/syncer"
	"go-inventory-sheets/internal/ws"
	"go-inventory-sheets/pkg/database"
	"go-inventory-sheets/pkg/jwt"
	"go-inventory-sheets/pkg/logger"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

func main() {
	// 1. Config + logging
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.L()

	// 2. Setup Database
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("failed to migrate database", zap.Error(err))
	}
	kv := repository.NewKVRepo(db)
	metrics.MustRegister(nil)

	// 3. WebSocket Hub
	wsHub := ws.NewHub(log)
	go wsHub.Run()

	// 4. Sheets sources and sync engines
	client := sheets.NewClient(sheets.ClientConfig{
		BaseURL: cfg.Sheets.BaseURL,
		APIKey:  cfg.Sheets.APIKey,
		Timeout: cfg.Sheets.Timeout,
	})
	scheduler := syncer.NewCronScheduler(cron.PrintfLogger(zap.NewStdLog(log.Named("cron"))))

	inventoryEngine := syncer.NewEngine(syncer.Options[model.InventoryItem]{
		Name:        service.DomainInventory,
		Source:      sheets.NewInventorySource(client, cfg.Sheets.InventorySheetID, cfg.Sheets.InventoryRange, log),
		Store:       kv,
		CacheKey:    store.KeyItemsCache,
		LastSyncKey: store.KeyLastItemsSync,
		Scheduler:   scheduler,
		Logger:      log,
	})
	usersEngine := syncer.NewEngine(syncer.Options[model.User]{
		Name:        service.DomainUsers,
		Source:      sheets.NewUserSource(client, cfg.Sheets.UsersSheetID, cfg.Sheets.UsersRange, log),
		Store:       kv,
		CacheKey:    store.KeyUsersCache,
		LastSyncKey: store.KeyLastUsersSync,
		Scheduler:   scheduler,
		Logger:      log,
	})

	// 5. Dependency Injection (Wiring Layers)
	userStore := store.NewUserStore(kv, cfg.Sheets.UsersConfigured(), log)
	itemStore := store.NewInventoryStore(kv, cfg.Sheets.InventoryConfigured(), log)
	sessionStore := store.NewSessionStore(kv, userStore, log)
	auditLogger := service.NewAuditLogger(store.NewAuditLogStore(kv, log))
	tokens := jwt.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	syncService := service.NewSyncService(inventoryEngine, usersEngine, wsHub)
	authService := service.NewAuthService(userStore, sessionStore, tokens)

	handlers := handler.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Inventory: handler.NewInventoryHandler(service.NewInventoryService(itemStore, auditLogger, wsHub)),
		Transfer:  handler.NewTransferHandler(service.NewTransferService(itemStore, auditLogger, wsHub)),
		User:      handler.NewUserHandler(service.NewUserService(userStore, auditLogger, wsHub, cfg.Auth.HashPasswords)),
		Role:      handler.NewRoleHandler(),
		Audit:     handler.NewAuditHandler(auditLogger),
		Sync:      handler.NewSyncHandler(syncService),
		Setup:     handler.NewSetupHandler(service.NewSetupService(cfg.Sheets, client)),
		Dashboard: handler.NewDashboardHandler(service.NewDashboardService(itemStore, syncService, cfg.Server.AppName)),
	}

	stopBroadcast := syncService.BroadcastTransitions()
	if cfg.Sheets.AutoStart {
		interval := cfg.Sheets.SyncInterval()
		if cfg.Sheets.InventoryConfigured() {
			inventoryEngine.Start(interval)
		}
		if cfg.Sheets.UsersConfigured() {
			usersEngine.Start(interval)
		}
		log.Info("sheets sync scheduled",
			zap.Duration("interval", interval),
			zap.Bool("inventory", inventoryEngine.Active()),
			zap.Bool("users", usersEngine.Active()),
		)
	}

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: cfg.Server.AppName,
	})

	// Middleware
	app.Use(fiberlogger.New())    // Logging request
	app.Use(recover.New())        // Panic recovery
	app.Use(cors.New())           // CORS
	app.Use(middleware.Metrics()) // Prometheus

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "sync": syncService.Status()})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// 7. Routes
	handler.Register(app, handlers, middleware.RequireAuth(tokens, authService))

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(wsHub.Serve))

	// 8. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			log.Panic("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	inventoryEngine.Stop()
	usersEngine.Stop()
	stopBroadcast()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}
	wsHub.Close()

	log.Info("server exited")
}
