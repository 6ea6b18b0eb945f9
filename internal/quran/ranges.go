package quran

import "github.com/mrlokans/hifz-tracker/internal/entities"

// WordRange computes the word IDs a page needs: every ayah line with
// both endpoints present contributes the inclusive [first, last] run.
// Word storage is keyed by a global monotonic ID and ayah lines
// reference contiguous runs, so one expansion per line replaces
// per-word queries. Layout marker lines contribute nothing.
func WordRange(lines []entities.Line) []int {
	var ids []int
	for _, line := range lines {
		if line.LineType != entities.LineTypeAyah || line.FirstWordID == nil || line.LastWordID == nil {
			continue
		}
		for id := *line.FirstWordID; id <= *line.LastWordID; id++ {
			ids = append(ids, id)
		}
	}
	return ids
}
