package quran

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoveDiacritics(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "tashkeel stripped",
			in:   "بِسْمِ",
			want: "بسم",
		},
		{
			name: "fathatan and shadda stripped",
			in:   "مُحَمَّدٌ",
			want: "محمد",
		},
		{
			name: "quranic annotation sign stripped",
			in:   "قفۘ",
			want: "قف",
		},
		{
			name: "bare letters untouched",
			in:   "الله",
			want: "الله",
		},
		{
			name: "empty string",
			in:   "",
			want: "",
		},
		{
			name: "non-arabic text untouched",
			in:   "page 7",
			want: "page 7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RemoveDiacritics(tt.in))
		})
	}
}

func TestRemoveDiacritics_Idempotent(t *testing.T) {
	inputs := []string{"بِسْمِ اللَّهِ الرَّحْمَٰنِ الرَّحِيمِ", "الله", ""}
	for _, in := range inputs {
		once := RemoveDiacritics(in)
		assert.Equal(t, once, RemoveDiacritics(once))
	}
}
