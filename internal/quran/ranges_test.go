package quran

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mrlokans/hifz-tracker/internal/entities"
)

func intp(n int) *int { return &n }

func TestWordRange(t *testing.T) {
	lines := []entities.Line{
		{LineNumber: 1, LineType: entities.LineTypeSurahName},
		{LineNumber: 2, LineType: entities.LineTypeBasmallah},
		{LineNumber: 3, LineType: entities.LineTypeAyah, FirstWordID: intp(1), LastWordID: intp(4)},
		{LineNumber: 4, LineType: entities.LineTypeAyah, FirstWordID: intp(5), LastWordID: intp(5)},
	}

	assert.Equal(t, []int{1, 2, 3, 4, 5}, WordRange(lines))
}

func TestWordRange_SkipsLinesWithoutEndpoints(t *testing.T) {
	lines := []entities.Line{
		// Ayah line missing an endpoint contributes nothing.
		{LineNumber: 1, LineType: entities.LineTypeAyah, FirstWordID: intp(1)},
		{LineNumber: 2, LineType: entities.LineTypeAyah, LastWordID: intp(9)},
		// Non-ayah lines never contribute, even with endpoints set.
		{LineNumber: 3, LineType: entities.LineTypeSurahName, FirstWordID: intp(10), LastWordID: intp(12)},
	}

	assert.Empty(t, WordRange(lines))
}

func TestWordRange_InvertedRange(t *testing.T) {
	lines := []entities.Line{
		{LineNumber: 1, LineType: entities.LineTypeAyah, FirstWordID: intp(9), LastWordID: intp(3)},
	}

	assert.Empty(t, WordRange(lines))
}

func TestWordRange_NoLines(t *testing.T) {
	assert.Empty(t, WordRange(nil))
}
