package reviewservice

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

const maxSlugLength = 50

// truncateRunes cuts s to at most max runes without splitting a multibyte
// character.
func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}

// slugify lowercases the name, replaces runs of non-alphanumeric characters
// with a single hyphen and truncates to maxSlugLength characters.
func slugify(name string) string {
	var b strings.Builder
	lastHyphen := true

	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteByte('-')
			lastHyphen = true
		}
	}

	slug := strings.Trim(b.String(), "-")
	return strings.Trim(truncateRunes(slug, maxSlugLength), "-")
}

// uniqueSlug derives a slug from name and suffixes a counter until it is free
// in the given table. Slugifying alone does not guarantee uniqueness when the
// same name is submitted twice.
func (m *ReviewModel) uniqueSlug(ctx context.Context, table, name string) (string, error) {
	base := slugify(name)
	if base == "" {
		base = "term"
	}

	slug := base
	for n := 2; ; n++ {
		taken, err := m.slugExists(ctx, table, slug)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}

		suffix := fmt.Sprintf("-%d", n)
		trimmed := base
		if utf8.RuneCountInString(trimmed)+len(suffix) > maxSlugLength {
			trimmed = strings.Trim(truncateRunes(trimmed, maxSlugLength-len(suffix)), "-")
		}
		slug = trimmed + suffix
	}
}
