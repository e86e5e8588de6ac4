package vault

import (
	"path"
	"regexp"
	"strings"

	"github.com/quakeboy/qmd-search-obsidian/internal/domain"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// CleanPath strips a collection-scoped prefix (qmd://<collection>/ or
// <collection>/) and a trailing .md marker from a qmd document reference.
func CleanPath(ref, collection string) string {
	ref = strings.TrimPrefix(ref, "qmd://"+collection+"/")
	ref = strings.TrimPrefix(ref, collection+"/")
	return strings.TrimSuffix(ref, ".md")
}

// NormalizeName lowercases a name and collapses any whitespace run to a
// single hyphen. qmd derives document identifiers from paths at index time,
// so matching has to survive case drift and space/hyphen substitution.
func NormalizeName(name string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
}

// Resolve maps a raw qmd file reference onto a note in the vault snapshot.
// Base names are tried first so renamed or moved notes still resolve; when
// several notes share a base name the full relative path disambiguates.
// nil means no match, and the caller falls back to a direct open of the
// cleaned reference.
func Resolve(ref, collection string, notes []domain.Note) *domain.Note {
	cleaned := CleanPath(ref, collection)
	wantBase := NormalizeName(path.Base(cleaned))

	var baseMatches []int
	for i, n := range notes {
		if NormalizeName(n.Base) == wantBase {
			baseMatches = append(baseMatches, i)
		}
	}
	if len(baseMatches) == 1 {
		return &notes[baseMatches[0]]
	}

	// Ambiguous or absent base name: compare full relative paths
	wantPath := NormalizeName(cleaned)
	for i, n := range notes {
		if NormalizeName(strings.TrimSuffix(n.Path, ".md")) == wantPath {
			return &notes[i]
		}
	}

	return nil
}
