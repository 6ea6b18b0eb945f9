// Package scheduler runs periodic maintenance jobs.
package scheduler

import (
	"fmt"
	"log"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/mrlokans/hifz-tracker/internal/database"
)

// BackupScheduler snapshots the recitation database on a cron
// schedule. An empty schedule disables it.
type BackupScheduler struct {
	db       *database.Database
	dir      string
	schedule string

	cron      *cron.Cron
	mu        sync.Mutex
	isRunning bool
}

func NewBackupScheduler(db *database.Database, dir, schedule string) *BackupScheduler {
	return &BackupScheduler{
		db:       db,
		dir:      dir,
		schedule: schedule,
		cron:     cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

func (s *BackupScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}
	if s.schedule == "" {
		log.Printf("Backup scheduler: disabled")
		return nil
	}

	if _, err := s.cron.AddFunc(s.schedule, s.runBackup); err != nil {
		return fmt.Errorf("invalid backup schedule %q: %w", s.schedule, err)
	}

	s.cron.Start()
	s.isRunning = true
	log.Printf("Backup scheduler: started with schedule %q", s.schedule)
	return nil
}

// Stop waits for a running backup to finish before returning.
func (s *BackupScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()
	s.isRunning = false
	log.Printf("Backup scheduler: stopped")
}

func (s *BackupScheduler) runBackup() {
	path, err := s.db.Backup(s.dir)
	if err != nil {
		log.Printf("Backup scheduler: backup failed: %v", err)
		return
	}
	log.Printf("Backup scheduler: wrote %s", path)
}
