package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mrlokans/hifz-tracker/internal/database/recitations"
	"github.com/mrlokans/hifz-tracker/internal/entities"
	"github.com/mrlokans/hifz-tracker/internal/export"
)

const defaultListLimit = 50

// fixedItDateFormats are accepted on input, tried in order.
var fixedItDateFormats = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// RecitationStore is the persistence contract the controller consumes,
// implemented by recitations.Repository.
type RecitationStore interface {
	Create(rec *entities.Recitation) error
	GetByID(id uint) (*entities.Recitation, error)
	List(f recitations.Filter) ([]entities.Recitation, int64, error)
	Update(id uint, u recitations.Update) (bool, error)
	Delete(id uint) (bool, error)
	Stats() (*entities.RecitationStats, error)
}

// DatabaseBackupper snapshots the recitation database into a directory
// and returns the path of the snapshot.
type DatabaseBackupper interface {
	Backup(dir string) (string, error)
}

// RecitationsController handles the recitation log API.
type RecitationsController struct {
	store     RecitationStore
	backupper DatabaseBackupper
	backupDir string
}

func NewRecitationsController(store RecitationStore, backupper DatabaseBackupper, backupDir string) *RecitationsController {
	return &RecitationsController{
		store:     store,
		backupper: backupper,
		backupDir: backupDir,
	}
}

// createRecitationRequest uses pointers for required fields so that
// absent and zero-valued inputs are distinguishable.
type createRecitationRequest struct {
	PageNumber     *int                 `json:"page_number"`
	SurahName      *string              `json:"surah_name"`
	Juz            *int                 `json:"juz"`
	Rating         *string              `json:"rating"`
	RecitationDate *string              `json:"recitation_date"`
	ManualMistakes entities.MistakeList `json:"manual_mistakes"`
	Notes          string               `json:"notes"`
}

// Create logs a new recitation.
// POST /api/recitations
func (r *RecitationsController) Create(c *gin.Context) {
	var req createRecitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	required := []struct {
		field   string
		missing bool
	}{
		{"page_number", req.PageNumber == nil},
		{"surah_name", req.SurahName == nil || *req.SurahName == ""},
		{"juz", req.Juz == nil},
		{"rating", req.Rating == nil || *req.Rating == ""},
	}
	for _, check := range required {
		if check.missing {
			respondBadRequest(c, "Missing required field: "+check.field)
			return
		}
	}

	rec := entities.Recitation{
		PageNumber:     *req.PageNumber,
		SurahName:      *req.SurahName,
		Juz:            *req.Juz,
		Rating:         entities.Rating(*req.Rating),
		ManualMistakes: req.ManualMistakes,
		Notes:          req.Notes,
	}

	if req.RecitationDate != nil && *req.RecitationDate != "" {
		recited, ok := parseFlexibleTime(*req.RecitationDate)
		if !ok {
			respondBadRequest(c, "Invalid recitation_date format")
			return
		}
		rec.RecitationDate = recited
	}

	if err := r.store.Create(&rec); err != nil {
		if errors.Is(err, entities.ErrValidation) {
			respondBadRequest(c, err.Error())
			return
		}
		respondInternalError(c, err, "create recitation")
		return
	}
	respondCreated(c, rec)
}

// List returns recitations matching optional filters, newest first by
// default, with the total match count.
// GET /api/recitations
func (r *RecitationsController) List(c *gin.Context) {
	filter := recitations.Filter{
		SurahName: c.Query("surah_name"),
		Rating:    c.Query("rating"),
		OrderBy:   c.Query("order_by"),
		Limit:     defaultListLimit,
	}

	if raw := c.Query("page_number"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			respondBadRequest(c, "invalid page_number")
			return
		}
		filter.PageNumber = &n
	}
	if raw := c.Query("juz"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			respondBadRequest(c, "invalid juz")
			return
		}
		filter.Juz = &n
	}
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			respondBadRequest(c, "invalid limit")
			return
		}
		filter.Limit = n
	}
	if raw := c.Query("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			respondBadRequest(c, "invalid offset")
			return
		}
		filter.Offset = n
	}

	recs, total, err := r.store.List(filter)
	if err != nil {
		if errors.Is(err, entities.ErrValidation) {
			respondBadRequest(c, err.Error())
			return
		}
		respondInternalError(c, err, "list recitations")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recitations": recs,
		"total":       total,
	})
}

// Get returns a single recitation.
// GET /api/recitations/:id
func (r *RecitationsController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	rec, err := r.store.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Recitation")
			return
		}
		respondInternalError(c, err, "get recitation")
		return
	}
	c.JSON(http.StatusOK, rec)
}

// updateRecitationRequest carries the only fields open to change after
// creation. An empty fixed_it_date string clears the stored value.
type updateRecitationRequest struct {
	FixedItDate *string `json:"fixed_it_date"`
	PrevRating  *string `json:"prev_rating"`
	Notes       *string `json:"notes"`
}

// Update applies a partial correction to a recitation. The original
// observation fields (page, rating, mistakes) stay immutable.
// PUT /api/recitations/:id
func (r *RecitationsController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := r.store.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Recitation")
			return
		}
		respondInternalError(c, err, "get recitation")
		return
	}

	var req updateRecitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	update := recitations.Update{Notes: req.Notes}
	if req.FixedItDate != nil {
		if *req.FixedItDate == "" {
			update.ClearFixedItDate = true
		} else {
			fixed, ok := parseFlexibleTime(*req.FixedItDate)
			if !ok {
				respondBadRequest(c, "Invalid fixed_it_date format")
				return
			}
			update.FixedItDate = &fixed
		}
	}
	if req.PrevRating != nil {
		rating := entities.Rating(*req.PrevRating)
		update.PrevRating = &rating
	}

	if update.Empty() {
		respondBadRequest(c, "No changes made to recitation")
		return
	}

	changed, err := r.store.Update(id, update)
	if err != nil {
		if errors.Is(err, entities.ErrValidation) {
			respondBadRequest(c, err.Error())
			return
		}
		respondInternalError(c, err, "update recitation")
		return
	}
	if !changed {
		respondBadRequest(c, "No changes made to recitation")
		return
	}

	rec, err := r.store.GetByID(id)
	if err != nil {
		respondInternalError(c, err, "reload recitation")
		return
	}
	c.JSON(http.StatusOK, rec)
}

// Delete removes a recitation permanently.
// DELETE /api/recitations/:id
func (r *RecitationsController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	existed, err := r.store.Delete(id)
	if err != nil {
		respondInternalError(c, err, "delete recitation")
		return
	}
	if !existed {
		respondNotFound(c, "Recitation")
		return
	}
	respondSuccess(c, "Recitation deleted")
}

// Stats aggregates the whole recitation log.
// GET /api/recitations/stats
func (r *RecitationsController) Stats(c *gin.Context) {
	stats, err := r.store.Stats()
	if err != nil {
		respondInternalError(c, err, "recitation stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ExportCSV streams the full recitation log as a CSV download.
// GET /api/recitations/export/csv
func (r *RecitationsController) ExportCSV(c *gin.Context) {
	recs, _, err := r.store.List(recitations.Filter{OrderBy: "recitation_date ASC"})
	if err != nil {
		respondInternalError(c, err, "export recitations")
		return
	}

	filename := fmt.Sprintf("recitations_export_%s.csv", time.Now().Format("20060102_150405"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := export.WriteRecitationsCSV(c.Writer, recs); err != nil {
		// Headers are already out; all we can do is log.
		_ = c.Error(err)
	}
}

// Backup snapshots the recitation database on demand.
// POST /api/recitations/backup
func (r *RecitationsController) Backup(c *gin.Context) {
	path, err := r.backupper.Backup(r.backupDir)
	if err != nil {
		respondInternalError(c, err, "backup database")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":     "Backup created",
		"backup_path": path,
	})
}

// parseFlexibleTime accepts the timestamp shapes clients actually send.
func parseFlexibleTime(raw string) (time.Time, bool) {
	for _, layout := range fixedItDateFormats {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}
