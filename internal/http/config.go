package http

import (
	"github.com/mrlokans/hifz-tracker/internal/database"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router. This replaces the long parameter list
// in NewRouter for better maintainability.
type RouterConfig struct {
	// Core dependencies
	Database    *database.Database
	Recitations RecitationStore
	Quran       QuranService

	// Backup destination for the on-demand backup endpoint
	BackupDir string

	// Application info
	Version string
}
