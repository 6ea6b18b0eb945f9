package database

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
)

// Backup snapshots the database into dir and returns the path of the
// backup file. VACUUM INTO produces a consistent copy even while other
// connections are writing.
func (d *Database) Backup(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create backup directory %s: %w", dir, err)
	}

	name := fmt.Sprintf("hifz_tracker_backup_%s.db", time.Now().Format("20060102_150405"))
	dst := filepath.Join(dir, name)

	if err := d.DB.Exec("VACUUM INTO ?", dst).Error; err != nil {
		return "", fmt.Errorf("failed to back up database: %w", err)
	}

	log.Printf("Database backed up to %s", dst)
	return dst, nil
}
