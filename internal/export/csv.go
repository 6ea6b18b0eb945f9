// Package export renders recitation records for download.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/mrlokans/hifz-tracker/internal/entities"
)

// csvHeader follows the column order of the recitations table.
var csvHeader = []string{
	"id",
	"page_number",
	"surah_name",
	"juz",
	"recitation_date",
	"rating",
	"manual_mistakes",
	"notes",
	"fixed_it_date",
	"prev_rating",
	"created_at",
	"updated_at",
}

// WriteRecitationsCSV streams recitations as CSV, header first.
// Mistake word IDs are joined with commas inside their field.
func WriteRecitationsCSV(w io.Writer, recitations []entities.Recitation) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, rec := range recitations {
		record := []string{
			strconv.FormatUint(uint64(rec.ID), 10),
			strconv.Itoa(rec.PageNumber),
			rec.SurahName,
			strconv.Itoa(rec.Juz),
			formatTime(rec.RecitationDate),
			string(rec.Rating),
			formatMistakes(rec.ManualMistakes),
			rec.Notes,
			formatTimePtr(rec.FixedItDate),
			formatRatingPtr(rec.PrevRating),
			formatTime(rec.CreatedAt),
			formatTime(rec.UpdatedAt),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write recitation %d: %w", rec.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatMistakes(mistakes entities.MistakeList) string {
	if len(mistakes) == 0 {
		return ""
	}
	parts := make([]string, len(mistakes))
	for i, wordID := range mistakes {
		parts[i] = strconv.Itoa(wordID)
	}
	return strings.Join(parts, ",")
}

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTime(*t)
}

func formatRatingPtr(r *entities.Rating) string {
	if r == nil {
		return ""
	}
	return string(*r)
}
