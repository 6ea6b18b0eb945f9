// Package recitations provides database operations for the recitation log.
//
// This package implements the RecitationStore interface defined in
// internal/http/recitations.go.
//
//	var _ http.RecitationStore = (*Repository)(nil)
package recitations

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/hifz-tracker/internal/entities"
)

// orderColumns is the allow-list of sortable fields. Anything outside
// it silently falls back to the default ordering instead of reaching
// the query.
var orderColumns = map[string]string{
	"recitation_date": "recitation_date",
	"page_number":     "page_number",
	"surah_name":      "surah_name",
	"juz":             "juz",
	"rating":          "rating",
	"created_at":      "created_at",
}

const defaultOrder = "recitation_date DESC"

// recentActivityWindow bounds the Stats recent-activity count.
const recentActivityWindow = 7 * 24 * time.Hour

// Filter narrows and pages a recitation listing. Nil/empty fields are
// ignored. OrderBy takes "column" or "column DIRECTION" form.
type Filter struct {
	PageNumber *int
	SurahName  string
	Juz        *int
	Rating     string
	Limit      int
	Offset     int
	OrderBy    string
}

// Update carries the only fields a recitation allows to change after
// creation. Nil pointers mean "leave untouched"; ClearFixedItDate
// resets fixed_it_date to NULL.
type Update struct {
	FixedItDate      *time.Time
	ClearFixedItDate bool
	PrevRating       *entities.Rating
	Notes            *string
}

// Empty reports whether the update carries no recognized fields.
func (u Update) Empty() bool {
	return u.FixedItDate == nil && !u.ClearFixedItDate && u.PrevRating == nil && u.Notes == nil
}

// Repository handles all recitation database operations.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create validates and persists a new recitation. RecitationDate
// defaults to the current time when unset.
func (r *Repository) Create(rec *entities.Recitation) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	if rec.RecitationDate.IsZero() {
		rec.RecitationDate = time.Now()
	}
	if err := r.db.Create(rec).Error; err != nil {
		return fmt.Errorf("failed to create recitation: %w", err)
	}
	return nil
}

// GetByID returns a recitation or gorm.ErrRecordNotFound.
func (r *Repository) GetByID(id uint) (*entities.Recitation, error) {
	var rec entities.Recitation
	if err := r.db.First(&rec, id).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

// List returns recitations matching the filter plus the total count of
// matches before pagination.
func (r *Repository) List(f Filter) ([]entities.Recitation, int64, error) {
	if f.Rating != "" && !entities.Rating(f.Rating).Valid() {
		return nil, 0, fmt.Errorf("%w: invalid rating %q", entities.ErrValidation, f.Rating)
	}

	var total int64
	if err := r.filtered(f).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count recitations: %w", err)
	}

	query := r.filtered(f).Order(orderClause(f.OrderBy))
	if f.Limit > 0 {
		query = query.Limit(f.Limit)
	}
	if f.Offset > 0 {
		query = query.Offset(f.Offset)
	}

	var recs []entities.Recitation
	if err := query.Find(&recs).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list recitations: %w", err)
	}
	return recs, total, nil
}

func (r *Repository) filtered(f Filter) *gorm.DB {
	query := r.db.Model(&entities.Recitation{})
	if f.PageNumber != nil {
		query = query.Where("page_number = ?", *f.PageNumber)
	}
	if f.SurahName != "" {
		query = query.Where("surah_name = ?", f.SurahName)
	}
	if f.Juz != nil {
		query = query.Where("juz = ?", *f.Juz)
	}
	if f.Rating != "" {
		query = query.Where("rating = ?", f.Rating)
	}
	return query
}

// orderClause maps an order_by request onto the allow-list, falling
// back to recitation_date DESC for anything unrecognized.
func orderClause(orderBy string) string {
	fields := strings.Fields(orderBy)
	if len(fields) == 0 || len(fields) > 2 {
		return defaultOrder
	}

	column, ok := orderColumns[strings.ToLower(fields[0])]
	if !ok {
		return defaultOrder
	}

	direction := "ASC"
	if len(fields) == 2 {
		switch strings.ToUpper(fields[1]) {
		case "ASC":
		case "DESC":
			direction = "DESC"
		default:
			return defaultOrder
		}
	}
	return column + " " + direction
}

// Update applies a partial correction to a recitation. It returns true
// when a row was changed. An update with no recognized fields is a
// no-op: no query runs and updated_at keeps its value.
func (r *Repository) Update(id uint, u Update) (bool, error) {
	if u.PrevRating != nil && !u.PrevRating.Valid() {
		return false, fmt.Errorf("%w: invalid prev_rating %q", entities.ErrValidation, *u.PrevRating)
	}
	if u.Empty() {
		return false, nil
	}

	values := map[string]any{}
	switch {
	case u.ClearFixedItDate:
		values["fixed_it_date"] = nil
	case u.FixedItDate != nil:
		values["fixed_it_date"] = *u.FixedItDate
	}
	if u.PrevRating != nil {
		values["prev_rating"] = string(*u.PrevRating)
	}
	if u.Notes != nil {
		values["notes"] = *u.Notes
	}

	res := r.db.Model(&entities.Recitation{}).Where("id = ?", id).Updates(values)
	if res.Error != nil {
		return false, fmt.Errorf("failed to update recitation %d: %w", id, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Delete removes a recitation permanently. Returns true when a row
// existed and was removed.
func (r *Repository) Delete(id uint) (bool, error) {
	res := r.db.Delete(&entities.Recitation{}, id)
	if res.Error != nil {
		return false, fmt.Errorf("failed to delete recitation %d: %w", id, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Stats aggregates the whole recitation log. An empty log yields zero
// counts and an empty (non-nil) rating distribution.
func (r *Repository) Stats() (*entities.RecitationStats, error) {
	stats := &entities.RecitationStats{
		RatingDistribution: map[entities.Rating]int64{},
	}

	if err := r.db.Model(&entities.Recitation{}).Count(&stats.TotalRecitations).Error; err != nil {
		return nil, fmt.Errorf("failed to count recitations: %w", err)
	}

	var distribution []struct {
		Rating entities.Rating
		Count  int64
	}
	err := r.db.Model(&entities.Recitation{}).
		Select("rating, COUNT(*) as count").
		Group("rating").
		Scan(&distribution).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate ratings: %w", err)
	}
	for _, row := range distribution {
		stats.RatingDistribution[row.Rating] = row.Count
	}

	err = r.db.Model(&entities.Recitation{}).
		Select("COUNT(DISTINCT page_number)").
		Scan(&stats.PagesCovered).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count pages covered: %w", err)
	}

	err = r.db.Model(&entities.Recitation{}).
		Select("COUNT(DISTINCT surah_name)").
		Scan(&stats.SurahsCovered).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count surahs covered: %w", err)
	}

	cutoff := time.Now().Add(-recentActivityWindow)
	err = r.db.Model(&entities.Recitation{}).
		Where("recitation_date >= ?", cutoff).
		Count(&stats.RecentActivity).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count recent activity: %w", err)
	}

	return stats, nil
}
