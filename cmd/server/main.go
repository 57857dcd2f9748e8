package main

import (
	"context"
	"encoding/base64"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"pizzapos-backend/internal/board"
	"pizzapos-backend/internal/catalog"
	"pizzapos-backend/internal/config"
	"pizzapos-backend/internal/db"
	"pizzapos-backend/internal/domain"
	"pizzapos-backend/internal/handler"
	"pizzapos-backend/internal/localstore"
	"pizzapos-backend/internal/repository"
	"pizzapos-backend/internal/server"
	"pizzapos-backend/internal/service"
	"pizzapos-backend/internal/store"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	if cfg.Env == "development" {
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	local, err := localstore.Open(cfg.DataDir, cfg.OrderCounterSeed)
	if err != nil {
		logger.Error("failed to open local store", "err", err)
		os.Exit(1)
	}

	// The database is optional: without DATABASE_URL every collection
	// lives in the local snapshot only.
	var pg *db.Postgres
	var remote store.Remote
	var userDir service.UserDirectory = service.LocalUsers{Store: local}
	if cfg.DatabaseURL != "" {
		pg, err = db.New(ctx, cfg)
		if err != nil {
			logger.Error("failed to connect database", "err", err)
			os.Exit(1)
		}
		defer pg.Close()
		if err := repository.EnsureSchema(ctx, pg); err != nil {
			logger.Error("failed to ensure schema", "err", err)
			os.Exit(1)
		}
		remote = store.Remote{
			Orders:    repository.OrderRepository{DB: pg, CounterSeed: cfg.OrderCounterSeed},
			Customers: repository.CustomerRepository{DB: pg},
			Employees: repository.EmployeeRepository{DB: pg},
			Blocked:   repository.BlockedRepository{DB: pg},
			Settings:  repository.SettingsRepository{DB: pg},
		}
		userDir = repository.UserRepository{DB: pg}
	}

	syncStore := store.New(remote, local, logger, cfg.ForceOffline)
	syncStore.SetDefaultSettings(domain.Settings{
		StoreOpen:      true,
		DeliverySLAMin: int(cfg.DeliverySLA / time.Minute),
		PickupSLAMin:   int(cfg.PickupSLA / time.Minute),
		CurrencyCode:   cfg.DefaultCurrency,
	})

	boardCache := board.NewCache()
	go boardCache.Follow(ctx, syncStore.SubscribeOrders(ctx))

	// Firebase Auth (optional)
	var firebaseAuth *fbauth.Client
	if cfg.FirebaseProjectID != "" {
		app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.FirebaseProjectID}, firebaseOptions(cfg)...)
		if err != nil {
			logger.Error("failed to init firebase app", "err", err)
			os.Exit(1)
		}
		client, err := app.Auth(ctx)
		if err != nil {
			logger.Error("failed to init firebase auth", "err", err)
			os.Exit(1)
		}
		firebaseAuth = client
	}

	menu := catalog.Default()

	// services
	authSvc := service.AuthService{Config: cfg, Users: userDir, Logger: logger, FirebaseAuth: firebaseAuth}
	orderSvc := service.OrderService{Store: syncStore, Logger: logger}
	userSvc := service.UserService{Users: userDir}

	// handlers
	var health handler.HealthHandler
	if pg != nil {
		health = handler.HealthHandler{DB: pg, Store: syncStore}
	} else {
		health = handler.HealthHandler{Store: syncStore}
	}

	router := server.NewRouter(cfg, logger,
		health,
		handler.HomeHandler{},
		handler.AuthHandler{Service: &authSvc},
		handler.ProductHandler{Catalog: menu, Store: syncStore},
		handler.OrderHandler{Catalog: menu, Store: syncStore, Orders: orderSvc},
		handler.BoardHandler{Store: syncStore, Cache: boardCache},
		handler.CustomerHandler{Store: syncStore},
		handler.EmployeeHandler{Store: syncStore},
		handler.ShiftHandler{Store: syncStore},
		handler.BlockedHandler{Store: syncStore},
		handler.ReportHandler{Store: syncStore},
		handler.ExportHandler{Store: syncStore},
		handler.SettingsHandler{Store: syncStore},
		handler.SyncHandler{Store: syncStore},
		handler.UserHandler{Service: userSvc},
	)

	if err := server.Start(ctx, cfg, router, logger); err != nil {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
}

func firebaseOptions(cfg config.Config) []option.ClientOption {
	if cfg.FirebaseCredFile == "" {
		return nil
	}

	cred := cfg.FirebaseCredFile
	// Inline JSON or base64-encoded JSON avoids shipping a file.
	if strings.HasPrefix(strings.TrimSpace(cred), "{") {
		return []option.ClientOption{option.WithCredentialsJSON([]byte(cred))}
	}
	if decoded, err := base64.StdEncoding.DecodeString(cred); err == nil && strings.HasPrefix(strings.TrimSpace(string(decoded)), "{") {
		return []option.ClientOption{option.WithCredentialsJSON(decoded)}
	}

	return []option.ClientOption{option.WithCredentialsFile(cred)}
}
