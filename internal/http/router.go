// Package http exposes the study log and reference data over a JSON
// API.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies, improving testability
// and reducing parameter count.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(RequestIDMiddleware())

	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/api/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	if cfg.Quran != nil {
		quranController := NewQuranController(cfg.Quran)
		router.GET("/api/quran/page/:number", quranController.GetPage)
		router.GET("/api/quran/page-layout/:number", quranController.GetPageLayout)
		router.GET("/api/quran/juz/:number", quranController.GetJuz)
		router.GET("/api/quran/surah/:number", quranController.GetSurah)
		router.GET("/api/quran/surah-names", quranController.GetSurahNames)
	}

	if cfg.Recitations != nil {
		recitationsController := NewRecitationsController(cfg.Recitations, cfg.Database, cfg.BackupDir)
		router.POST("/api/recitations", recitationsController.Create)
		router.GET("/api/recitations", recitationsController.List)
		router.GET("/api/recitations/stats", recitationsController.Stats)
		router.GET("/api/recitations/export/csv", recitationsController.ExportCSV)
		router.POST("/api/recitations/backup", recitationsController.Backup)
		router.GET("/api/recitations/:id", recitationsController.Get)
		router.PUT("/api/recitations/:id", recitationsController.Update)
		router.DELETE("/api/recitations/:id", recitationsController.Delete)
	}

	return router
}
