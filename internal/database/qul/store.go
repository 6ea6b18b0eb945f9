// Package qul provides read-only access to the pre-built QUL reference
// databases: the mushaf layout database (pages table) and the word
// script database (words table).
//
// This package implements the quran.Store interface.
//
//	var _ quran.Store = (*Store)(nil)
package qul

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/hifz-tracker/internal/entities"
)

// Store holds one read-only handle per QUL database. It exposes no
// mutation capability.
type Store struct {
	layout *gorm.DB
	script *gorm.DB
}

func NewStore(layoutPath, scriptPath string) (*Store, error) {
	layout, err := openReadOnly(layoutPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open layout database %s: %w", layoutPath, err)
	}
	script, err := openReadOnly(scriptPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open script database %s: %w", scriptPath, err)
	}
	return &Store{layout: layout, script: script}, nil
}

func openReadOnly(path string) (*gorm.DB, error) {
	dsn := fmt.Sprintf("file:%s?mode=ro", path)
	return gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
}

func (s *Store) Close() error {
	for _, db := range []*gorm.DB{s.layout, s.script} {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		if err := sqlDB.Close(); err != nil {
			return err
		}
	}
	return nil
}

// lineRow mirrors the pages table. QUL stores optional numeric columns
// as NULL or '' depending on the layout variant, so they are scanned
// as strings and normalized in toLine.
type lineRow struct {
	PageNumber  int
	LineNumber  int
	LineType    string
	IsCentered  bool
	FirstWordID sql.NullString
	LastWordID  sql.NullString
	SurahNumber sql.NullString
	AyahNumber  sql.NullString
}

func toLine(row lineRow) entities.Line {
	return entities.Line{
		LineNumber:  row.LineNumber,
		LineType:    row.LineType,
		IsCentered:  row.IsCentered,
		FirstWordID: optionalInt(row.FirstWordID),
		LastWordID:  optionalInt(row.LastWordID),
		PageNumber:  row.PageNumber,
		SurahNumber: optionalInt(row.SurahNumber),
		AyahNumber:  optionalInt(row.AyahNumber),
	}
}

// optionalInt normalizes the NULL/''/garbage sentinels to absent.
func optionalInt(ns sql.NullString) *int {
	if !ns.Valid {
		return nil
	}
	trimmed := strings.TrimSpace(ns.String)
	if trimmed == "" {
		return nil
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return nil
	}
	return &n
}

// PageLines returns a page's layout lines in display order. A page
// with no rows yields an empty slice, not an error.
func (s *Store) PageLines(pageNumber int) ([]entities.Line, error) {
	var rows []lineRow
	err := s.layout.Table("pages").
		Where("page_number = ?", pageNumber).
		Order("line_number").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page %d: %w", pageNumber, err)
	}

	lines := make([]entities.Line, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, toLine(row))
	}
	return lines, nil
}

type wordRow struct {
	ID    int
	Text  string
	Surah int
	Ayah  int
	Word  int // position within the ayah
}

// Words returns the words for the given IDs, keyed by ID. IDs missing
// from the dataset are silently omitted.
func (s *Store) Words(ids []int) (map[int]entities.Word, error) {
	words := make(map[int]entities.Word, len(ids))
	if len(ids) == 0 {
		return words, nil
	}

	var rows []wordRow
	err := s.script.Table("words").Where("id IN ?", ids).Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch words: %w", err)
	}

	for _, row := range rows {
		words[row.ID] = entities.Word{
			ID:       row.ID,
			Text:     row.Text,
			Surah:    row.Surah,
			Ayah:     row.Ayah,
			Position: row.Word,
		}
	}
	return words, nil
}

// JuzPages returns the distinct page numbers belonging to a juz.
func (s *Store) JuzPages(juz int) ([]int, error) {
	return s.distinctPages("juz = ?", juz)
}

// SurahPages returns the distinct page numbers belonging to a surah.
func (s *Store) SurahPages(surah int) ([]int, error) {
	return s.distinctPages("surah_number = ?", surah)
}

func (s *Store) distinctPages(condition string, value int) ([]int, error) {
	var pages []int
	err := s.layout.Table("pages").
		Distinct().
		Where(condition, value).
		Order("page_number").
		Pluck("page_number", &pages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to resolve pages for %q: %w", condition, err)
	}
	return pages, nil
}

// SurahNames returns the surah number to name mapping recorded in the
// layout database. Rows with blank numbers or names are skipped; the
// aggregation layer fills gaps from a static table.
func (s *Store) SurahNames() (map[int]string, error) {
	var rows []struct {
		SurahNumber sql.NullString
		SurahName   sql.NullString
	}
	err := s.layout.Table("pages").
		Select("DISTINCT surah_number, surah_name").
		Where("surah_number IS NOT NULL AND surah_number != ''").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch surah names: %w", err)
	}

	names := make(map[int]string, len(rows))
	for _, row := range rows {
		number := optionalInt(row.SurahNumber)
		if number == nil || !row.SurahName.Valid {
			continue
		}
		name := strings.TrimSpace(row.SurahName.String)
		if name == "" {
			continue
		}
		names[*number] = name
	}
	return names, nil
}
