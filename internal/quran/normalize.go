package quran

import "strings"

// RemoveDiacritics strips Arabic diacritical marks (tashkeel and
// Qur'anic annotation signs) from text. Letters and everything else
// pass through untouched, so the operation is idempotent.
func RemoveDiacritics(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if isDiacritic(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isDiacritic(r rune) bool {
	switch {
	case r >= 0x0610 && r <= 0x061A: // honorific and other signs above letters
		return true
	case r >= 0x064B && r <= 0x065F: // tashkeel: fathatan through wavy hamza below
		return true
	case r >= 0x06D6 && r <= 0x06ED: // Qur'anic annotation signs
		return true
	}
	return false
}
