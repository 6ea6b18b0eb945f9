// Command generate_demo creates a demo database with a few weeks of
// sample recitation history.
// Usage: go run cmd/generate_demo/main.go [-db path/to/demo.db]
package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/mrlokans/hifz-tracker/internal/database"
	"github.com/mrlokans/hifz-tracker/internal/database/recitations"
	"github.com/mrlokans/hifz-tracker/internal/entities"
)

const defaultDemoDatabasePath = "./demo/demo.db"

type demoEntry struct {
	page      int
	surah     string
	juz       int
	daysAgo   int
	rating    entities.Rating
	mistakes  entities.MistakeList
	notes     string
	fixedDays int // days ago the mistake was fixed, 0 means unfixed
}

func main() {
	dbPath := flag.String("db", defaultDemoDatabasePath, "path to the demo database file")
	flag.Parse()

	log.Printf("Generating demo database at %s...", *dbPath)

	// Delete existing demo database to start fresh
	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing demo database: %v", err)
	}

	db, err := database.NewDatabase(*dbPath)
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	repo := recitations.NewRepository(db.DB)
	now := time.Now()

	for _, entry := range demoEntries() {
		rec := &entities.Recitation{
			PageNumber:     entry.page,
			SurahName:      entry.surah,
			Juz:            entry.juz,
			RecitationDate: now.AddDate(0, 0, -entry.daysAgo),
			Rating:         entry.rating,
			ManualMistakes: entry.mistakes,
			Notes:          entry.notes,
		}
		if err := repo.Create(rec); err != nil {
			log.Printf("Failed to save recitation for page %d: %v", entry.page, err)
			continue
		}

		if entry.fixedDays > 0 {
			fixed := now.AddDate(0, 0, -entry.fixedDays)
			prev := entry.rating
			_, err := repo.Update(rec.ID, recitations.Update{
				FixedItDate: &fixed,
				PrevRating:  &prev,
			})
			if err != nil {
				log.Printf("Failed to mark page %d as fixed: %v", entry.page, err)
			}
		}

		log.Printf("Saved: page %d (%s, juz %d) rated %s", entry.page, entry.surah, entry.juz, entry.rating)
	}

	log.Printf("Demo database generated at %s", *dbPath)
}

func demoEntries() []demoEntry {
	return []demoEntry{
		{page: 1, surah: "Al-Fatihah", juz: 1, daysAgo: 21, rating: entities.RatingPerfect},
		{page: 2, surah: "Al-Baqarah", juz: 1, daysAgo: 20, rating: entities.RatingGood, mistakes: entities.MistakeList{14}},
		{page: 3, surah: "Al-Baqarah", juz: 1, daysAgo: 18, rating: entities.RatingOkay, mistakes: entities.MistakeList{41, 44}, notes: "hesitated on the second line"},
		{page: 3, surah: "Al-Baqarah", juz: 1, daysAgo: 12, rating: entities.RatingGood, mistakes: entities.MistakeList{44}, fixedDays: 10},
		{page: 4, surah: "Al-Baqarah", juz: 1, daysAgo: 11, rating: entities.RatingBad, mistakes: entities.MistakeList{60, 63, 71}, notes: "needs a full review"},
		{page: 4, surah: "Al-Baqarah", juz: 1, daysAgo: 6, rating: entities.RatingOkay, mistakes: entities.MistakeList{63}, fixedDays: 4},
		{page: 5, surah: "Al-Baqarah", juz: 1, daysAgo: 5, rating: entities.RatingGood},
		{page: 22, surah: "Al-Baqarah", juz: 2, daysAgo: 4, rating: entities.RatingRememorize, notes: "long gap since last review"},
		{page: 23, surah: "Al-Baqarah", juz: 2, daysAgo: 2, rating: entities.RatingOkay, mistakes: entities.MistakeList{1205}},
		{page: 1, surah: "Al-Fatihah", juz: 1, daysAgo: 1, rating: entities.RatingPerfect},
	}
}
