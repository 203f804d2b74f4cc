package reviewservice

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "simple", input: "Drama", expected: "drama"},
		{name: "spaces", input: "Science Fiction", expected: "science-fiction"},
		{name: "punctuation runs", input: "Rock & Roll!!", expected: "rock-roll"},
		{name: "leading and trailing junk", input: "  --Movies--  ", expected: "movies"},
		{name: "digits", input: "Top 10", expected: "top-10"},
		{name: "cyrillic", input: "Война и мир", expected: "война-и-мир"},
		{name: "empty", input: "!!!", expected: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, slugify(tc.input))
		})
	}
}

func TestSlugifyTruncates(t *testing.T) {
	slug := slugify(strings.Repeat("a", 80))
	assert.Len(t, slug, maxSlugLength)

	// truncation must not leave a trailing hyphen
	slug = slugify(strings.Repeat("abcd ", 20))
	assert.LessOrEqual(t, len(slug), maxSlugLength)
	assert.False(t, strings.HasSuffix(slug, "-"))

	// truncation counts runes, never splitting a multibyte character
	slug = slugify("a" + strings.Repeat("п", 60))
	assert.True(t, utf8.ValidString(slug))
	assert.Equal(t, maxSlugLength, utf8.RuneCountInString(slug))
}
