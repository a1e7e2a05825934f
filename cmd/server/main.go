package main

import (
	"log"
	"time"

	"go.uber.org/zap"

	"mandalart/config"
	"mandalart/internal/ai"
	"mandalart/internal/api"
	"mandalart/internal/db"
	"mandalart/internal/history"
	redisclient "mandalart/internal/redis"
	"mandalart/internal/repository"
	"mandalart/internal/service"
	"mandalart/internal/store"
	"mandalart/pkg/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	zlog := logger.NewLogger()
	defer zlog.Sync()

	// History backend: relational or keyed-blob.
	var (
		dbConn    *pgxpool.Pool
		histStore history.Store
		userStore service.UserStore
		gate      service.Gate
	)
	switch cfg.App.HistoryBackend {
	case "postgres":
		dbConn, err = db.NewConnection(cfg.DB, zlog)
		if err != nil {
			zlog.Fatal("DB initialization failed", zap.Error(err))
		}
		defer dbConn.Close()
		histStore = history.NewPostgres(dbConn, zlog)
		userStore = repository.NewUserRepository(dbConn)
	case "redis":
		rdb := redisclient.NewRedisClient(cfg.Redis)
		defer rdb.Close()
		kv := store.NewRedis(rdb)
		histStore = history.NewKVStore(kv, zlog)
		userStore = repository.NewKVUserStore(kv)
		gate = service.NewRedisGate(rdb, 5*time.Minute)
	default:
		kv := store.NewMemory()
		histStore = history.NewKVStore(kv, zlog)
		userStore = repository.NewKVUserStore(kv)
	}

	// Generation pipeline
	client := ai.NewClient(
		cfg.AI.APIKey,
		cfg.AI.BaseURL,
		cfg.AI.Model,
		time.Duration(cfg.AI.TimeoutSeconds)*time.Second,
		zlog,
	)
	generator := ai.NewGenerator(client, cfg.App.Locale, zlog)

	// Services
	planner := service.NewPlanner(generator, histStore, gate, zlog)
	authService := service.NewAuthService(userStore, cfg.JWT.Secret, zlog)

	// Handlers
	authHandler := api.NewAuthHandler(authService, cfg.App.Locale)
	planHandler := api.NewPlanHandler(planner, cfg.App.Locale, zlog)
	historyHandler := api.NewHistoryHandler(histStore, planner, cfg.App.Locale)

	router := api.NewRouter(authHandler, planHandler, historyHandler, cfg.JWT.Secret, zlog, dbConn)

	zlog.Info("server starting", zap.String("port", cfg.Server.Port))
	if err := router.Run(cfg.Server.Port); err != nil {
		zlog.Fatal("server start failed", zap.Error(err))
	}
}
