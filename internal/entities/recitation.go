package entities

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Rating grades a single memorization review session.
type Rating string

const (
	RatingPerfect    Rating = "Perfect"
	RatingGood       Rating = "Good"
	RatingOkay       Rating = "Okay"
	RatingBad        Rating = "Bad"
	RatingRememorize Rating = "Rememorize"
)

// AllRatings lists every accepted rating value, best to worst.
var AllRatings = []Rating{RatingPerfect, RatingGood, RatingOkay, RatingBad, RatingRememorize}

func (r Rating) Valid() bool {
	for _, known := range AllRatings {
		if r == known {
			return true
		}
	}
	return false
}

// MistakeList is an ordered list of word IDs the reciter got wrong.
// Stored as a JSON array in a TEXT column; serialized as [] rather
// than null when empty so clients always receive a list.
type MistakeList []int

func (m MistakeList) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	raw, err := json.Marshal([]int(m))
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

func (m *MistakeList) Scan(value any) error {
	if value == nil {
		*m = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("cannot scan %T into MistakeList", value)
	}
}

func (m MistakeList) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]int(m))
}

// Recitation logs one review session of memorized material.
//
// page_number, surah_name, juz, rating and recitation_date are fixed at
// creation; later corrections only touch fixed_it_date, prev_rating and
// notes. prev_rating records what the rating was before a correction —
// the original rating column is never rewritten.
type Recitation struct {
	ID             uint        `gorm:"primaryKey" json:"id"`
	PageNumber     int         `gorm:"index;not null" json:"page_number"`
	SurahName      string      `gorm:"index;size:100;not null" json:"surah_name"`
	Juz            int         `gorm:"index;not null" json:"juz"`
	RecitationDate time.Time   `gorm:"index;not null" json:"recitation_date"`
	Rating         Rating      `gorm:"index;size:20;not null" json:"rating"`
	ManualMistakes MistakeList `gorm:"type:text" json:"manual_mistakes"`
	Notes          string      `gorm:"type:text" json:"notes,omitempty"`
	FixedItDate    *time.Time  `json:"fixed_it_date,omitempty"`
	PrevRating     *Rating     `gorm:"size:20" json:"prev_rating,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// Validate checks the write-side invariants before anything is persisted.
func (r *Recitation) Validate() error {
	if !r.Rating.Valid() {
		return fmt.Errorf("%w: invalid rating %q, must be one of Perfect, Good, Okay, Bad, Rememorize", ErrValidation, r.Rating)
	}
	for _, wordID := range r.ManualMistakes {
		if wordID < 0 {
			return fmt.Errorf("%w: manual_mistakes must be non-negative word IDs, got %d", ErrValidation, wordID)
		}
	}
	return nil
}

// RecitationStats aggregates the whole recitation log.
type RecitationStats struct {
	TotalRecitations   int64            `json:"total_recitations"`
	RatingDistribution map[Rating]int64 `json:"rating_distribution"`
	PagesCovered       int64            `json:"pages_covered"`
	SurahsCovered      int64            `json:"surahs_covered"`
	RecentActivity     int64            `json:"recent_activity_7_days"`
}
