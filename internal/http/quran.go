package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/hifz-tracker/internal/entities"
)

// QuranService provides read access to the assembled reference data,
// implemented by quran.Service.
type QuranService interface {
	GetPage(ctx context.Context, pageNumber int) (*entities.PageView, error)
	GetPageLayout(pageNumber int) (*entities.PageLayout, error)
	GetJuz(ctx context.Context, juz int) (map[int]*entities.PageView, error)
	GetSurah(ctx context.Context, surah int) (map[int]*entities.PageView, error)
	SurahNames() (map[int]string, error)
}

// QuranController serves the read-only reference endpoints.
type QuranController struct {
	service QuranService
}

func NewQuranController(service QuranService) *QuranController {
	return &QuranController{service: service}
}

// GetPage returns one page with line layout and normalized words.
// GET /api/quran/page/:number
func (q *QuranController) GetPage(c *gin.Context) {
	number, ok := parseNumberParam(c, "number")
	if !ok {
		return
	}

	view, err := q.service.GetPage(c.Request.Context(), number)
	if err != nil {
		if errors.Is(err, entities.ErrNotFound) {
			respondNotFound(c, "Page")
			return
		}
		respondInternalError(c, err, "get page")
		return
	}
	c.JSON(http.StatusOK, view)
}

// GetPageLayout returns the raw layout of one page, without
// normalization or caching.
// GET /api/quran/page-layout/:number
func (q *QuranController) GetPageLayout(c *gin.Context) {
	number, ok := parseNumberParam(c, "number")
	if !ok {
		return
	}

	layout, err := q.service.GetPageLayout(number)
	if err != nil {
		if errors.Is(err, entities.ErrNotFound) {
			respondNotFound(c, "Page")
			return
		}
		respondInternalError(c, err, "get page layout")
		return
	}
	c.JSON(http.StatusOK, layout)
}

// GetJuz returns every page of a juz keyed by page number.
// GET /api/quran/juz/:number
func (q *QuranController) GetJuz(c *gin.Context) {
	number, ok := parseNumberParam(c, "number")
	if !ok {
		return
	}

	views, err := q.service.GetJuz(c.Request.Context(), number)
	if err != nil {
		if errors.Is(err, entities.ErrNotFound) {
			respondNotFound(c, "Juz")
			return
		}
		respondInternalError(c, err, "get juz")
		return
	}
	c.JSON(http.StatusOK, views)
}

// GetSurah returns every page of a surah keyed by page number.
// GET /api/quran/surah/:number
func (q *QuranController) GetSurah(c *gin.Context) {
	number, ok := parseNumberParam(c, "number")
	if !ok {
		return
	}

	views, err := q.service.GetSurah(c.Request.Context(), number)
	if err != nil {
		if errors.Is(err, entities.ErrNotFound) {
			respondNotFound(c, "Surah")
			return
		}
		respondInternalError(c, err, "get surah")
		return
	}
	c.JSON(http.StatusOK, views)
}

// GetSurahNames returns the full surah number to name map.
// GET /api/quran/surah-names
func (q *QuranController) GetSurahNames(c *gin.Context) {
	names, err := q.service.SurahNames()
	if err != nil {
		respondInternalError(c, err, "get surah names")
		return
	}
	c.JSON(http.StatusOK, names)
}
