package news

// Article is one scraped chronicle before linking. ContextText is the
// listing-row text surrounding the article link, used as fuzzy evidence for
// match resolution; Round is the matchday number taken from the listing URL.
type Article struct {
	URL         string
	Headline    string
	Subheader   string
	DateFromURL string
	ContextText string
	Round       int
}

// Headline is a linked article ready to persist. Articles that resolve to
// no match are never stored.
type Headline struct {
	MatchID   int64
	URL       string
	Headline  string
	Subheader string
}
