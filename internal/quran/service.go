// Package quran assembles page, juz and surah views from the QUL
// reference databases, with a TTL cache in front of the read path and
// diacritic normalization applied per response.
package quran

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mrlokans/hifz-tracker/internal/cache"
	"github.com/mrlokans/hifz-tracker/internal/entities"
)

// Cache keys are a flat namespace partitioned by prefix.
const (
	pageKeyPrefix  = "page:"
	juzKeyPrefix   = "juz:"
	surahKeyPrefix = "surah:"
)

// Store is the read-only reference data contract the service consumes,
// implemented by database/qul.Store.
type Store interface {
	PageLines(pageNumber int) ([]entities.Line, error)
	Words(ids []int) (map[int]entities.Word, error)
	JuzPages(juz int) ([]int, error)
	SurahPages(surah int) ([]int, error)
	SurahNames() (map[int]string, error)
}

// Service composes the reference store, word-range resolver, cache and
// normalizer. All collaborators are injected at construction; the
// service holds no global state.
type Service struct {
	store Store
	cache cache.Store
	ttl   time.Duration
}

func NewService(store Store, cacheStore cache.Store, ttl time.Duration) *Service {
	return &Service{
		store: store,
		cache: cacheStore,
		ttl:   ttl,
	}
}

// GetPage returns the assembled view of one page with normalized word
// text. The raw assembly is cached; normalization happens on the fresh
// copy every call so cached entries stay diacritic-preserving.
func (s *Service) GetPage(ctx context.Context, pageNumber int) (*entities.PageView, error) {
	view, err := s.cachedPage(ctx, pageNumber)
	if err != nil {
		return nil, err
	}
	normalizeWords(view.Words)
	return view, nil
}

func (s *Service) cachedPage(ctx context.Context, pageNumber int) (*entities.PageView, error) {
	var view entities.PageView
	key := fmt.Sprintf("%s%d", pageKeyPrefix, pageNumber)
	err := s.cache.GetOrCompute(ctx, key, s.ttl, &view, func() (any, error) {
		return s.assemblePage(pageNumber)
	})
	if err != nil {
		return nil, err
	}
	return &view, nil
}

func (s *Service) assemblePage(pageNumber int) (*entities.PageView, error) {
	lines, err := s.store.PageLines(pageNumber)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("page %d: %w", pageNumber, entities.ErrNotFound)
	}

	words, err := s.store.Words(WordRange(lines))
	if err != nil {
		return nil, err
	}
	return &entities.PageView{Lines: lines, Words: words}, nil
}

// GetJuz returns every page of a juz, keyed by page number.
func (s *Service) GetJuz(ctx context.Context, juz int) (map[int]*entities.PageView, error) {
	return s.cachedSpan(ctx, juzKeyPrefix, juz, s.store.JuzPages)
}

// GetSurah returns every page of a surah, keyed by page number.
func (s *Service) GetSurah(ctx context.Context, surah int) (map[int]*entities.PageView, error) {
	return s.cachedSpan(ctx, surahKeyPrefix, surah, s.store.SurahPages)
}

// cachedSpan caches the page-number-to-view map of a juz or surah as a
// whole, while building each member through the page cache so the two
// levels share work.
func (s *Service) cachedSpan(ctx context.Context, prefix string, number int, resolve func(int) ([]int, error)) (map[int]*entities.PageView, error) {
	var views map[int]*entities.PageView
	key := fmt.Sprintf("%s%d", prefix, number)
	err := s.cache.GetOrCompute(ctx, key, s.ttl, &views, func() (any, error) {
		pageNumbers, err := resolve(number)
		if err != nil {
			return nil, err
		}
		if len(pageNumbers) == 0 {
			return nil, fmt.Errorf("%s%d: %w", prefix, number, entities.ErrNotFound)
		}

		result := make(map[int]*entities.PageView, len(pageNumbers))
		for _, pageNumber := range pageNumbers {
			view, err := s.cachedPage(ctx, pageNumber)
			if err != nil {
				return nil, err
			}
			result[pageNumber] = view
		}
		return result, nil
	})
	if err != nil {
		return nil, err
	}

	for _, view := range views {
		normalizeWords(view.Words)
	}
	return views, nil
}

// GetPageLayout returns the QUL-shaped layout of a page with raw word
// text only. This path bypasses the cache.
func (s *Service) GetPageLayout(pageNumber int) (*entities.PageLayout, error) {
	lines, err := s.store.PageLines(pageNumber)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("page %d: %w", pageNumber, entities.ErrNotFound)
	}

	words, err := s.store.Words(WordRange(lines))
	if err != nil {
		return nil, err
	}

	texts := make(map[int]string, len(words))
	for id, word := range words {
		texts[id] = word.Text
	}
	return &entities.PageLayout{Lines: lines, Words: texts}, nil
}

// SurahNames returns a complete 114-entry surah number to name map:
// names recorded in the layout database where present, the standard
// transliteration table everywhere else.
func (s *Service) SurahNames() (map[int]string, error) {
	fromDB, err := s.store.SurahNames()
	if err != nil {
		return nil, err
	}

	names := make(map[int]string, SurahCount)
	for number := 1; number <= SurahCount; number++ {
		if name := strings.TrimSpace(fromDB[number]); name != "" {
			names[number] = name
			continue
		}
		names[number] = standardSurahNames[number]
	}
	return names, nil
}

func normalizeWords(words map[int]entities.Word) {
	for id, word := range words {
		word.TextNormalized = RemoveDiacritics(word.Text)
		words[id] = word
	}
}
