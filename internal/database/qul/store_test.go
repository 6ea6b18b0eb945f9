package qul

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupQULStore builds small layout and script fixture databases and
// opens a Store over them.
func setupQULStore(t *testing.T) (*Store, func()) {
	t.Helper()
	suffix := strings.ReplaceAll(t.Name(), "/", "_")
	layoutPath := "./test_layout_" + suffix + ".db"
	scriptPath := "./test_script_" + suffix + ".db"

	layout, err := gorm.Open(sqlite.Open(layoutPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, layout.Exec(`CREATE TABLE pages (
		page_number INTEGER,
		line_number INTEGER,
		line_type TEXT,
		is_centered INTEGER,
		first_word_id TEXT,
		last_word_id TEXT,
		surah_number TEXT,
		ayah_number TEXT,
		juz INTEGER,
		surah_name TEXT
	)`).Error)

	fixtures := []string{
		`INSERT INTO pages VALUES (1, 1, 'surah_name', 1, '', '', '1', '', 1, 'Al-Fatiha')`,
		`INSERT INTO pages VALUES (1, 2, 'basmallah', 1, NULL, NULL, '1', NULL, 1, 'Al-Fatiha')`,
		`INSERT INTO pages VALUES (1, 3, 'ayah', 0, '1', '4', '1', '1', 1, 'Al-Fatiha')`,
		`INSERT INTO pages VALUES (1, 4, 'ayah', 0, '5', '8', '1', '2', 1, 'Al-Fatiha')`,
		`INSERT INTO pages VALUES (2, 1, 'ayah', 0, '9', '12', '2', '1', 1, '  ')`,
		`INSERT INTO pages VALUES (3, 1, 'ayah', 0, '13', '15', '2', '2', 2, '')`,
	}
	for _, stmt := range fixtures {
		require.NoError(t, layout.Exec(stmt).Error)
	}

	script, err := gorm.Open(sqlite.Open(scriptPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, script.Exec(`CREATE TABLE words (
		id INTEGER PRIMARY KEY,
		surah INTEGER,
		ayah INTEGER,
		word INTEGER,
		text TEXT
	)`).Error)
	for id := 1; id <= 8; id++ {
		require.NoError(t, script.Exec(
			`INSERT INTO words (id, surah, ayah, word, text) VALUES (?, 1, 1, ?, ?)`,
			id, id, "word-"+string(rune('a'+id-1)),
		).Error)
	}

	closeDB := func(db *gorm.DB) {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	}
	closeDB(layout)
	closeDB(script)

	store, err := NewStore(layoutPath, scriptPath)
	require.NoError(t, err)

	cleanup := func() {
		store.Close()
		os.Remove(layoutPath)
		os.Remove(scriptPath)
	}
	return store, cleanup
}

func TestStore_PageLines(t *testing.T) {
	store, cleanup := setupQULStore(t)
	defer cleanup()

	lines, err := store.PageLines(1)
	require.NoError(t, err)
	require.Len(t, lines, 4)

	// Ordered by line number.
	for i, line := range lines {
		assert.Equal(t, i+1, line.LineNumber)
		assert.Equal(t, 1, line.PageNumber)
	}

	// Empty-string and NULL sentinels normalize to absent.
	assert.Equal(t, "surah_name", lines[0].LineType)
	assert.Nil(t, lines[0].FirstWordID)
	assert.Nil(t, lines[0].LastWordID)
	assert.Nil(t, lines[1].FirstWordID)
	assert.Nil(t, lines[1].AyahNumber)

	// Ayah lines carry their word range.
	require.NotNil(t, lines[2].FirstWordID)
	require.NotNil(t, lines[2].LastWordID)
	assert.Equal(t, 1, *lines[2].FirstWordID)
	assert.Equal(t, 4, *lines[2].LastWordID)
	require.NotNil(t, lines[2].SurahNumber)
	assert.Equal(t, 1, *lines[2].SurahNumber)
}

func TestStore_PageLines_MissingPage(t *testing.T) {
	store, cleanup := setupQULStore(t)
	defer cleanup()

	lines, err := store.PageLines(604)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestStore_Words(t *testing.T) {
	store, cleanup := setupQULStore(t)
	defer cleanup()

	words, err := store.Words([]int{1, 2, 3})
	require.NoError(t, err)
	require.Len(t, words, 3)
	assert.Equal(t, "word-a", words[1].Text)
	assert.Equal(t, 1, words[1].Surah)
}

func TestStore_Words_PartialMiss(t *testing.T) {
	store, cleanup := setupQULStore(t)
	defer cleanup()

	// IDs beyond the dataset are silently omitted, not an error.
	words, err := store.Words([]int{7, 8, 9000, 9001})
	require.NoError(t, err)
	assert.Len(t, words, 2)
	assert.NotContains(t, words, 9000)
}

func TestStore_Words_Empty(t *testing.T) {
	store, cleanup := setupQULStore(t)
	defer cleanup()

	words, err := store.Words(nil)
	require.NoError(t, err)
	assert.NotNil(t, words)
	assert.Empty(t, words)
}

func TestStore_JuzPages(t *testing.T) {
	store, cleanup := setupQULStore(t)
	defer cleanup()

	pages, err := store.JuzPages(1)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, pages)

	pages, err = store.JuzPages(30)
	require.NoError(t, err)
	assert.Empty(t, pages)
}

func TestStore_SurahPages(t *testing.T) {
	store, cleanup := setupQULStore(t)
	defer cleanup()

	pages, err := store.SurahPages(2)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, pages)
}

func TestStore_SurahNames(t *testing.T) {
	store, cleanup := setupQULStore(t)
	defer cleanup()

	names, err := store.SurahNames()
	require.NoError(t, err)
	// Surah 2 only has blank names in the fixture and is skipped.
	assert.Equal(t, map[int]string{1: "Al-Fatiha"}, names)
}
