package entities

// Line types as stored in the QUL layout database. Only ayah lines
// reference word IDs; the rest are layout markers.
const (
	LineTypeAyah      = "ayah"
	LineTypeSurahName = "surah_name"
	LineTypeBasmallah = "basmallah"
)

// Line is one layout line of a mushaf page, loaded from the QUL layout
// database. FirstWordID/LastWordID are only present on ayah lines;
// NULL and empty-string sentinels in the source data are normalized to
// nil at the adapter boundary.
type Line struct {
	LineNumber  int    `json:"line_number"`
	LineType    string `json:"line_type"`
	IsCentered  bool   `json:"is_centered"`
	FirstWordID *int   `json:"first_word_id"`
	LastWordID  *int   `json:"last_word_id"`
	PageNumber  int    `json:"page_number"`
	SurahNumber *int   `json:"surah_number"`
	AyahNumber  *int   `json:"ayah_number,omitempty"`
}

// Word is one word of the Quran script database, keyed by a globally
// unique ID that is monotonic across pages. TextNormalized is filled
// at response time and never stored.
type Word struct {
	ID             int    `json:"id"`
	Text           string `json:"text"`
	Surah          int    `json:"surah,omitempty"`
	Ayah           int    `json:"ayah,omitempty"`
	Position       int    `json:"word,omitempty"`
	TextNormalized string `json:"text_normalized,omitempty"`
}

// PageView is the assembled view of one page: its ordered lines plus
// the words referenced by its ayah lines, keyed by word ID.
type PageView struct {
	Lines []Line       `json:"pageData"`
	Words map[int]Word `json:"wordData"`
}

// PageLayout is the QUL-shaped variant of a page view: the same lines
// but only raw word text, keyed by word ID.
type PageLayout struct {
	Lines []Line         `json:"pageLayout"`
	Words map[int]string `json:"wordData"`
}
