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

	"github.com/redis/go-redis/v9"

	"github.com/GabrielMorais2/system-management-usegm/internal/backend"
	adminhttp "github.com/GabrielMorais2/system-management-usegm/internal/http"
	"github.com/GabrielMorais2/system-management-usegm/internal/session"
)

type Config struct {
	HTTPPort        string
	BackendURL      string
	RedisAddr       string
	SessionTTL      time.Duration
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	PageSize        int
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		BackendURL:      getEnv("BACKEND_URL", "http://localhost:8081"),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		SessionTTL:      12 * time.Hour,
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		PageSize:        10,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	cfg := loadConfig()

	var store session.Store
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer client.Close()
		store = session.NewRedisStore(client, cfg.SessionTTL)
		log.Printf("sessions stored in redis at %s", cfg.RedisAddr)
	} else {
		store = session.NewMemoryStore(cfg.SessionTTL)
		log.Println("sessions stored in memory")
	}

	var panels *adminhttp.Panels
	client := backend.NewClient(cfg.BackendURL, cfg.RequestTimeout, func(ctx context.Context, sessionID string) {
		// The backend refused the token: tear the session down so the next
		// page load lands on /login.
		if err := store.Delete(ctx, sessionID); err != nil {
			log.Printf("session teardown failed: %v", err)
		}
		panels.Drop(sessionID)
	})
	panels = adminhttp.NewPanels(client, cfg.PageSize)

	pages, err := adminhttp.NewPages()
	if err != nil {
		log.Fatalf("failed to parse page templates: %v", err)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      adminhttp.NewRouter(client, store, panels, pages),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("USEGM admin panel starting on :%s (backend %s)", cfg.HTTPPort, cfg.BackendURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}
