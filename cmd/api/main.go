package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/01moynul/travelsite/internal/ai"
	"github.com/01moynul/travelsite/internal/auth"
	"github.com/01moynul/travelsite/internal/cache"
	"github.com/01moynul/travelsite/internal/config"
	"github.com/01moynul/travelsite/internal/database"
	"github.com/01moynul/travelsite/internal/handlers"
	"github.com/01moynul/travelsite/internal/live"
	"github.com/01moynul/travelsite/internal/logger"
	"github.com/01moynul/travelsite/internal/routes"
	"github.com/01moynul/travelsite/internal/upload"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// 0. --- Load Environment Variables (.env) ---
	envErr := godotenv.Load()
	cfg := config.Load()

	// 1. --- Logger ---
	zlog, err := logger.New(cfg.Log.Level, cfg.Log.Format, "travelsite-api")
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zlog.Sync()

	if envErr != nil {
		zlog.Warn("could not load .env file, relying on system environment variables")
	}
	if cfg.Auth.Secret == config.DevSecret {
		zlog.Warn("SESSION_SECRET is not set, using the development secret")
	}
	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 2. --- Database ---
	db, err := database.Open(database.Options{
		Driver:       cfg.Database.Driver,
		DSN:          cfg.Database.DSN,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
	})
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.String("driver", cfg.Database.Driver), zap.Error(err))
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		zlog.Fatal("failed to migrate database", zap.Error(err))
	}

	ctx := context.Background()
	created, err := handlers.SeedAdmin(ctx, db, cfg.Admin.Name, cfg.Admin.Email, cfg.Admin.Password)
	if err != nil {
		zlog.Fatal("failed to seed admin user", zap.Error(err))
	}
	if created {
		zlog.Info("admin user created", zap.String("email", cfg.Admin.Email))
	}

	// 3. --- Cache ---
	app := &handlers.Handlers{
		DB:            db,
		Log:           zlog,
		Sessions:      auth.NewManager(cfg.Auth.Secret, cfg.Auth.TTL),
		Cache:         cache.NewJSON(newKV(ctx, cfg, zlog), cfg.Cache.TTL, zlog),
		Uploads:       upload.NewStore(cfg.Upload.Dir, cfg.HTTP.BaseURL, cfg.Upload.MaxImageBytes, cfg.Upload.MaxVideoBytes),
		Hub:           live.NewHub(cfg.HTTP.AllowedOrigin, zlog),
		SecureCookies: strings.HasPrefix(cfg.HTTP.BaseURL, "https://"),
	}

	// 4. --- AI Service (optional) ---
	if cfg.AI.APIKey != "" {
		aiService, err := ai.NewService(ctx, cfg.AI.APIKey, cfg.AI.Model, db)
		if err != nil {
			zlog.Error("failed to initialize AI service, assistant disabled", zap.Error(err))
		} else {
			defer aiService.Close()
			app.AI = aiService
		}
	}

	// --- Router Setup ---
	router := routes.SetupRouter(app, cfg.HTTP.AllowedOrigin)

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// --- Start Server ---
	go func() {
		zlog.Info("starting API server", zap.String("addr", cfg.HTTP.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zlog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("forced shutdown", zap.Error(err))
	}
}

// newKV returns Redis when configured and reachable, else the in-process cache.
func newKV(ctx context.Context, cfg *config.Config, zlog *zap.Logger) cache.KV {
	if cfg.Redis.Addr == "" {
		return cache.NewMemoryKV()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		zlog.Warn("redis unreachable, using in-process cache", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		client.Close()
		return cache.NewMemoryKV()
	}
	zlog.Info("using redis cache", zap.String("addr", cfg.Redis.Addr))
	return cache.NewRedisKV(client)
}
