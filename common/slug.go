package common

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	ErrEmptySlug = errors.New("slug cannot be empty")
	nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)
)

// Slugify lowercases input, folds accents ("Café" -> "cafe") and collapses every
// run of characters outside [a-z0-9] into a single hyphen. fallback is used when
// input has nothing slug-worthy left.
func Slugify(input, fallback string) (string, error) {
	slug := slugify(input)
	if slug == "" {
		slug = slugify(fallback)
	}
	if slug == "" {
		return "", ErrEmptySlug
	}
	return slug, nil
}

// WithSuffix disambiguates slug with a numeric id: "need-help" -> "need-help-42".
func WithSuffix(slug string, id int64) string {
	return slug + "-" + strconv.FormatInt(id, 10)
}

func slugify(s string) string {
	lower := strings.ToLower(strings.TrimSpace(foldAccents(s)))
	slug := nonSlugChars.ReplaceAllString(lower, "-")
	return strings.Trim(slug, "-")
}

func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
