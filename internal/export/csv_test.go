package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/hifz-tracker/internal/entities"
)

func TestWriteRecitationsCSV(t *testing.T) {
	recited := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	fixed := recited.Add(48 * time.Hour)
	prev := entities.RatingBad

	recitations := []entities.Recitation{
		{
			ID:             1,
			PageNumber:     7,
			SurahName:      "Al-Baqarah",
			Juz:            1,
			RecitationDate: recited,
			Rating:         entities.RatingGood,
			ManualMistakes: entities.MistakeList{101, 105},
			Notes:          "notes, with a comma",
			FixedItDate:    &fixed,
			PrevRating:     &prev,
			CreatedAt:      recited,
			UpdatedAt:      fixed,
		},
		{
			ID:             2,
			PageNumber:     8,
			SurahName:      "Al-Baqarah",
			Juz:            1,
			RecitationDate: recited,
			Rating:         entities.RatingPerfect,
			CreatedAt:      recited,
			UpdatedAt:      recited,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteRecitationsCSV(&buf, recitations))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, csvHeader, rows[0])

	assert.Equal(t, "1", rows[1][0])
	assert.Equal(t, "7", rows[1][1])
	assert.Equal(t, "Al-Baqarah", rows[1][2])
	assert.Equal(t, "2025-03-14T09:30:00Z", rows[1][4])
	assert.Equal(t, "Good", rows[1][5])
	assert.Equal(t, "101,105", rows[1][6])
	assert.Equal(t, "notes, with a comma", rows[1][7])
	assert.Equal(t, "2025-03-16T09:30:00Z", rows[1][8])
	assert.Equal(t, "Bad", rows[1][9])

	// Optional fields render empty, not "null".
	assert.Equal(t, "", rows[2][6])
	assert.Equal(t, "", rows[2][8])
	assert.Equal(t, "", rows[2][9])
}

func TestWriteRecitationsCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRecitationsCSV(&buf, nil))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, csvHeader, rows[0])
}
