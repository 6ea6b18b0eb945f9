package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/hifz-tracker/internal/cache"
	"github.com/mrlokans/hifz-tracker/internal/config"
	"github.com/mrlokans/hifz-tracker/internal/database"
	"github.com/mrlokans/hifz-tracker/internal/database/qul"
	"github.com/mrlokans/hifz-tracker/internal/database/recitations"
	http_controllers "github.com/mrlokans/hifz-tracker/internal/http"
	"github.com/mrlokans/hifz-tracker/internal/quran"
	"github.com/mrlokans/hifz-tracker/internal/scheduler"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Call shutdown callback first (e.g., to stop the backup scheduler)
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Hifz Tracker v%s", version)

	// Initialize the recitation database
	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	// Open the QUL reference databases read-only. The server still
	// serves the recitation log when they are missing.
	var quranService *quran.Service
	qulStore, err := qul.NewStore(cfg.QUL.LayoutPath, cfg.QUL.ScriptPath)
	if err != nil {
		log.Printf("WARNING: QUL databases unavailable, quran endpoints disabled: %v", err)
	} else {
		defer func() {
			if err := qulStore.Close(); err != nil {
				log.Printf("Error closing QUL databases: %v", err)
			}
		}()

		cacheStore, err := newCacheStore(cfg)
		if err != nil {
			log.Fatalf("Failed to initialize cache backend: %v", err)
		}
		quranService = quran.NewService(qulStore, cacheStore, cfg.Cache.TTL)
	}

	recitationRepo := recitations.NewRepository(db.DB)

	backupScheduler := scheduler.NewBackupScheduler(db, cfg.Backup.Dir, cfg.Backup.Schedule)
	if err := backupScheduler.Start(); err != nil {
		log.Fatalf("Failed to start backup scheduler: %v", err)
	}

	routerCfg := http_controllers.RouterConfig{
		Database:    db,
		Recitations: recitationRepo,
		BackupDir:   cfg.Backup.Dir,
		Version:     version,
	}
	if quranService != nil {
		routerCfg.Quran = quranService
	}

	router := http_controllers.NewRouter(routerCfg)

	Serve(router, cfg, func(ctx context.Context) {
		backupScheduler.Stop()
	})
}

func newCacheStore(cfg *config.Config) (cache.Store, error) {
	switch cfg.Cache.Backend {
	case config.CacheBackendRedis:
		return cache.NewRedis(cfg.Cache.RedisAddr)
	case config.CacheBackendMemory, "":
		return cache.NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}
