package linkage

import (
	"sort"
	"strings"

	"github.com/primera-data/primera/internal/domain/match"
	"github.com/primera-data/primera/internal/domain/news"
)

// HalfwayRound splits a 38-round season into its two legs. An ambiguous
// article from the first half resolves to the earlier fixture of a pair,
// otherwise to the later one.
const HalfwayRound = 19

const minTokenLength = 3

// NewsLinker resolves a free-text article to a fixture using fuzzy
// substring evidence over team-name tokens, with a round-number tie-break
// when a season contains both legs of the same pairing.
type NewsLinker struct {
	stopWords map[string]struct{}
}

// DefaultStopWords are generic football words that would otherwise make a
// token like "real" match every "Real *" club. Stored folded.
func DefaultStopWords() []string {
	return []string{
		"real", "club", "deportivo", "sociedad", "athletic",
		"atletico", "futbol", "cf", "fc", "sad",
	}
}

func NewNewsLinker(stopWords []string) *NewsLinker {
	set := make(map[string]struct{}, len(stopWords))
	for _, w := range stopWords {
		set[Fold(w)] = struct{}{}
	}
	return &NewsLinker{stopWords: set}
}

// UniqueNameParts splits a canonical team name into its distinguishing
// tokens: folded words minus stop words and words shorter than three
// runes. If filtering removes everything (a name made only of generic
// words), the unfiltered word list is the fallback so the team stays
// matchable.
func (l *NewsLinker) UniqueNameParts(teamName string) []string {
	parts := strings.Fields(Fold(teamName))
	unique := make([]string, 0, len(parts))
	for _, p := range parts {
		if len(p) < minTokenLength {
			continue
		}
		if _, generic := l.stopWords[p]; generic {
			continue
		}
		unique = append(unique, p)
	}
	if len(unique) > 0 {
		return unique
	}

	fallback := make([]string, 0, len(parts))
	for _, p := range parts {
		if len(p) >= minTokenLength {
			fallback = append(fallback, p)
		}
	}
	return fallback
}

// Link resolves an article against a season's matches. A match is a
// candidate when at least one home token and one away token appear as
// substrings of the folded context text. Zero candidates means the
// article stays unlinked; multiple candidates tie-break on the article's
// round number against the season's halfway point.
func (l *NewsLinker) Link(article news.Article, seasonMatches []match.Match) (int64, bool) {
	if strings.TrimSpace(article.ContextText) == "" {
		return 0, false
	}
	context := Fold(article.ContextText)

	candidates := make([]match.Match, 0, 2)
	for _, m := range seasonMatches {
		if l.anyTokenIn(context, m.HomeTeam) && l.anyTokenIn(context, m.AwayTeam) {
			candidates = append(candidates, m)
		}
	}

	switch len(candidates) {
	case 0:
		return 0, false
	case 1:
		return candidates[0].ID, true
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Date < candidates[j].Date
	})
	if article.Round <= HalfwayRound {
		return candidates[0].ID, true
	}
	return candidates[len(candidates)-1].ID, true
}

func (l *NewsLinker) anyTokenIn(context, teamName string) bool {
	for _, token := range l.UniqueNameParts(teamName) {
		if strings.Contains(context, token) {
			return true
		}
	}
	return false
}
