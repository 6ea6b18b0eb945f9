package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/hifz-tracker/internal/entities"
)

// fakeQuranService serves a two-page corpus: page 1 belongs to juz 1
// and surah 1, page 2 exists but belongs to nothing.
type fakeQuranService struct {
	failing bool
}

func (f *fakeQuranService) page(number int) (*entities.PageView, error) {
	if f.failing {
		return nil, errors.New("layout database locked")
	}
	if number > 2 {
		return nil, fmt.Errorf("page %d: %w", number, entities.ErrNotFound)
	}
	wordID := number * 10
	return &entities.PageView{
		Lines: []entities.Line{{PageNumber: number, LineNumber: 1, LineType: entities.LineTypeAyah, IsCentered: false, FirstWordID: &wordID, LastWordID: &wordID}},
		Words: map[int]entities.Word{wordID: {ID: wordID, Text: "بِسْمِ", TextNormalized: "بسم"}},
	}, nil
}

func (f *fakeQuranService) GetPage(_ context.Context, number int) (*entities.PageView, error) {
	return f.page(number)
}

func (f *fakeQuranService) GetPageLayout(number int) (*entities.PageLayout, error) {
	view, err := f.page(number)
	if err != nil {
		return nil, err
	}
	return &entities.PageLayout{Lines: view.Lines, Words: map[int]string{number * 10: "بِسْمِ"}}, nil
}

func (f *fakeQuranService) GetJuz(ctx context.Context, juz int) (map[int]*entities.PageView, error) {
	if juz != 1 {
		return nil, fmt.Errorf("juz %d: %w", juz, entities.ErrNotFound)
	}
	view, err := f.page(1)
	if err != nil {
		return nil, err
	}
	return map[int]*entities.PageView{1: view}, nil
}

func (f *fakeQuranService) GetSurah(ctx context.Context, surah int) (map[int]*entities.PageView, error) {
	if surah != 1 {
		return nil, fmt.Errorf("surah %d: %w", surah, entities.ErrNotFound)
	}
	view, err := f.page(1)
	if err != nil {
		return nil, err
	}
	return map[int]*entities.PageView{1: view}, nil
}

func (f *fakeQuranService) SurahNames() (map[int]string, error) {
	if f.failing {
		return nil, errors.New("layout database locked")
	}
	return map[int]string{1: "Al-Fatihah", 2: "Al-Baqarah"}, nil
}

func setupQuranTest(t *testing.T, service QuranService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return NewRouter(RouterConfig{Quran: service, Version: "test"})
}

func TestQuranController_GetPage(t *testing.T) {
	t.Run("returns page with line and word data", func(t *testing.T) {
		router := setupQuranTest(t, &fakeQuranService{})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/quran/page/1", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var view entities.PageView
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
		require.Len(t, view.Lines, 1)
		assert.Equal(t, 1, view.Lines[0].PageNumber)
		assert.Equal(t, "بسم", view.Words[10].TextNormalized)
	})

	t.Run("returns 404 for unknown page", func(t *testing.T) {
		router := setupQuranTest(t, &fakeQuranService{})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/quran/page/900", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("rejects non-numeric page number", func(t *testing.T) {
		router := setupQuranTest(t, &fakeQuranService{})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/quran/page/one", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("returns 500 when the store fails", func(t *testing.T) {
		router := setupQuranTest(t, &fakeQuranService{failing: true})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/quran/page/1", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestQuranController_GetPageLayout(t *testing.T) {
	router := setupQuranTest(t, &fakeQuranService{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/quran/page-layout/2", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var layout entities.PageLayout
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &layout))
	assert.Equal(t, "بِسْمِ", layout.Words[20])
}

func TestQuranController_GetJuz(t *testing.T) {
	t.Run("returns pages keyed by page number", func(t *testing.T) {
		router := setupQuranTest(t, &fakeQuranService{})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/quran/juz/1", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var views map[int]*entities.PageView
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &views))
		require.Contains(t, views, 1)
		assert.Len(t, views[1].Lines, 1)
	})

	t.Run("returns 404 for unknown juz", func(t *testing.T) {
		router := setupQuranTest(t, &fakeQuranService{})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/quran/juz/31", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestQuranController_GetSurah(t *testing.T) {
	router := setupQuranTest(t, &fakeQuranService{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/quran/surah/1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var views map[int]*entities.PageView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &views))
	assert.Contains(t, views, 1)
}

func TestQuranController_GetSurahNames(t *testing.T) {
	router := setupQuranTest(t, &fakeQuranService{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/quran/surah-names", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var names map[int]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &names))
	assert.Equal(t, "Al-Fatihah", names[1])
}

func TestRouter_RequestID(t *testing.T) {
	t.Run("generates a request id", func(t *testing.T) {
		router := setupQuranTest(t, &fakeQuranService{})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/ping", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	})

	t.Run("honors a client-supplied request id", func(t *testing.T) {
		router := setupQuranTest(t, &fakeQuranService{})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/ping", nil)
		req.Header.Set(RequestIDHeader, "trace-me-123")
		router.ServeHTTP(w, req)

		assert.Equal(t, "trace-me-123", w.Header().Get(RequestIDHeader))
	})
}
