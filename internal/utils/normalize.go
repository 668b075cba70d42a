package utils

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NewID returns a fresh uuid as an opaque 32-char hex string.
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// accent folding: decompose, drop combining marks, recompose.
var foldAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeSkillName maps user-submitted skill names onto their canonical
// stored form: trimmed, lower-cased, diacritics stripped. The catalog is
// bilingual FR/EN and French entries arrive with and without accents, so
// "Développement" and "developpement" are the same skill.
func NormalizeSkillName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	folded, _, err := transform.String(foldAccents, name)
	if err != nil {
		return name
	}
	return folded
}

// DeriveUsername returns the login identifier mirrored from the user's
// contact fields: email when present, otherwise phone.
func DeriveUsername(email, phone *string) string {
	if email != nil && *email != "" {
		return *email
	}
	if phone != nil {
		return *phone
	}
	return ""
}

// FileSlug lowercases a display name into a filesystem-safe token, used for
// deterministic verification photo names.
func FileSlug(name string) string {
	folded, _, err := transform.String(foldAccents, strings.ToLower(strings.TrimSpace(name)))
	if err != nil {
		folded = strings.ToLower(name)
	}
	var b strings.Builder
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteByte('_')
		}
	}
	return b.String()
}
