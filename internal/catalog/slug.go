package catalog

import (
	"strings"
	"unicode"
)

// Slugify lowercases title and collapses every run of non-alphanumeric characters
// into a single hyphen, with no leading or trailing hyphen.
func Slugify(title string) string {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(title) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	return b.String()
}

// SlugOrDefault returns slug trimmed, or the slugified title when slug is blank.
func SlugOrDefault(slug, title string) string {
	if s := strings.TrimSpace(slug); s != "" {
		return s
	}
	return Slugify(title)
}

// NextCategoryLetter returns the letter for a new category given how many exist
// now: 0 → A, 25 → Z, 26 → AA. It is derived from the count alone, so it can
// repeat a letter still in use after a deletion.
func NextCategoryLetter(count int) string {
	if count < 0 {
		count = 0
	}
	var out []byte
	n := count + 1
	for n > 0 {
		n--
		out = append([]byte{byte('A' + n%26)}, out...)
		n /= 26
	}
	return string(out)
}
