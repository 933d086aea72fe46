package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/natefinch/lumberjack.v2"

	"ignisplay/config"
	"ignisplay/handlers"
	"ignisplay/internal/database"
	"ignisplay/services/accounts"
	"ignisplay/services/catalog"
	"ignisplay/services/lists"
	"ignisplay/services/playback"
	"ignisplay/services/session"
	"ignisplay/utils"
)

func main() {
	// Optional .env for local development; absence is not an error.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[server] warning: could not load .env: %v", err)
	}

	settingsPath := os.Getenv("IGNISPLAY_SETTINGS")
	if settingsPath == "" {
		settingsPath = "data/settings.json"
	}

	configManager := config.NewManager(settingsPath)
	settings, err := configManager.Load()
	if err != nil {
		log.Fatalf("[server] failed to load settings: %v", err)
	}

	setupLogging(settings.Logging)

	if settings.TMDB.APIKey == "" {
		log.Printf("[server] warning: no TMDB API key configured; catalog requests will fail")
	}

	db, err := database.NewDB(database.Config{DatabasePath: settings.Database.Path})
	if err != nil {
		log.Fatalf("[server] failed to open database: %v", err)
	}
	defer db.Close()

	accountsSvc := accounts.NewService(db)
	listsSvc := lists.NewService(db)
	sess := session.New(accountsSvc)
	catalogClient := catalog.NewClient(settings.TMDB.APIKey, settings.TMDB.Language)
	playbackSvc := playback.NewService(listsSvc)

	router := utils.NewRouter()
	handlers.NewAuthHandler(sess).RegisterRoutes(router)
	handlers.NewCatalogHandler(catalogClient).RegisterRoutes(router)
	handlers.NewListsHandler(sess, listsSvc).RegisterRoutes(router)
	handlers.NewPlaybackHandler(sess, playbackSvc).RegisterRoutes(router)

	server := &http.Server{
		Addr:         settings.Server.ListenAddr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		log.Printf("[server] listening on %s", settings.Server.ListenAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[server] listen failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Printf("[server] shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("[server] shutdown error: %v", err)
	}
}

// setupLogging routes the standard logger to a rotated file when one is
// configured, keeping stderr as a second sink.
func setupLogging(cfg config.LoggingSettings) {
	if cfg.File == "" {
		return
	}

	rotator := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   true,
	}
	log.SetOutput(io.MultiWriter(os.Stderr, rotator))
}
