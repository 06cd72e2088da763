package linkage

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalizer maps provider spellings of team names onto the canonical form
// used for match identity. The correction table is the fast path; when a
// spelling is not listed verbatim, a folded comparison (diacritics stripped,
// case-folded, whitespace collapsed) is tried before giving up. Unknown
// names pass through unchanged and become their own key.
type Normalizer struct {
	exact  map[string]string
	folded map[string]string
}

// NewNormalizer builds a normalizer from an alias -> canonical table. The
// table is copied; callers can reuse or mutate their map afterwards.
func NewNormalizer(corrections map[string]string) *Normalizer {
	exact := make(map[string]string, len(corrections))
	folded := make(map[string]string, len(corrections)*2)
	for alias, canonical := range corrections {
		exact[alias] = canonical
		folded[Fold(alias)] = canonical
		folded[Fold(canonical)] = canonical
	}
	return &Normalizer{exact: exact, folded: folded}
}

// Normalize returns the canonical name for a provider spelling, or the
// input unchanged when no correction applies. Pure.
func (n *Normalizer) Normalize(name string) string {
	if canonical, ok := n.exact[name]; ok {
		return canonical
	}
	if canonical, ok := n.folded[Fold(name)]; ok {
		return canonical
	}
	return name
}

// DefaultCorrections covers the spellings observed across the stats
// provider (plain ASCII) and the tactics provider (accented official
// names) for La Liga. Accuracy depends on this table staying exhaustive
// for the observed vocabulary.
func DefaultCorrections() map[string]string {
	return map[string]string{
		"Deportivo Alavés":   "Alaves",
		"Alavés":             "Alaves",
		"UD Almería":         "Almeria",
		"Almería":            "Almeria",
		"Cádiz":              "Cadiz",
		"Cádiz CF":           "Cadiz",
		"Sevilla FC":         "Sevilla",
		"Atlético de Madrid": "Atletico Madrid",
		"Atlético Madrid":    "Atletico Madrid",
		"Athletic Club":      "Athletic Club",
		"Real Betis":         "Real Betis",
		"Rayo Vallecano":     "Rayo Vallecano",
		"Girona FC":          "Girona",
	}
}

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold strips diacritics, lowercases and collapses whitespace. Used for
// the normalizer fallback and for news context comparison.
func Fold(s string) string {
	out, _, err := transform.String(foldTransformer, s)
	if err != nil {
		out = s
	}
	return strings.Join(strings.Fields(strings.ToLower(out)), " ")
}
